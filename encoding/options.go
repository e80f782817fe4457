package encoding

import (
	"github.com/baetyl/baetyl-go/v2/errors"
	"github.com/baetyl/baetyl-go/v2/log"
	"github.com/baetyl/baetyl-go/v2/utils"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"
)

//Options tunes how permissive decoding is. The zero value is usable:
//non strict, no APDU length limit, global logger.
type Options struct {
	// Strict rejects encodings that are understood but not canonical,
	// like an application boolean with a value other than 0 or 1
	Strict bool `yaml:"strict" json:"strict"`
	// MaxAPDULength is only enforced in strict mode
	MaxAPDULength uint32 `yaml:"maxApduLength" json:"maxApduLength" default:"1476" validate:"min=50,max=65535"`

	logger *log.Logger
}

var validate = validator.New()

//DefaultOptions returns the options with every default applied
func DefaultOptions() Options {
	var o Options
	_ = utils.SetDefaults(&o)
	return o
}

//LoadOptions parses a yaml document into Options, applies the defaults
//and validates the result
func LoadOptions(data []byte) (Options, error) {
	var o Options
	if err := yaml.Unmarshal(data, &o); err != nil {
		return Options{}, errors.Trace(err)
	}
	if err := utils.SetDefaults(&o); err != nil {
		return Options{}, errors.Trace(err)
	}
	if err := o.Validate(); err != nil {
		return Options{}, errors.Trace(err)
	}
	return o, nil
}

func (o Options) Validate() error {
	return validate.Struct(o)
}

//WithLogger returns a copy of o logging to l
func (o Options) WithLogger(l *log.Logger) Options {
	o.logger = l
	return o
}

//Log returns the logger set with WithLogger, or the global one
func (o Options) Log() *log.Logger {
	if o.logger != nil {
		return o.logger
	}
	return log.L()
}
