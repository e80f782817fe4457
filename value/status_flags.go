package value

import (
	"fmt"

	"github.com/baetyl/baetyl-bacnet-codec/bacnet"
	"github.com/baetyl/baetyl-bacnet-codec/encoding"
	"github.com/baetyl/baetyl-bacnet-codec/internal/bitrange"
)

const (
	statusFlagsLength     = 2
	statusFlagsUnusedBits = 4

	inAlarmBit      = 7
	faultBit        = 6
	overriddenBit   = 5
	outOfServiceBit = 4
)

// Keys accepted by StatusFlags.SetValue
const (
	InAlarmKey      = "inAlarm"
	FaultKey        = "fault"
	OverriddenKey   = "overridden"
	OutOfServiceKey = "outOfService"
)

//StatusFlags is the four bit status-flags bit string
type StatusFlags struct {
	tag   encoding.Tag
	flags bacnet.StatusFlags
}

func NewStatusFlags(f bacnet.StatusFlags) *StatusFlags {
	return &StatusFlags{tag: encoding.NewApplicationTag(bacnet.TagBitString, statusFlagsLength), flags: f}
}

func (s *StatusFlags) ReadValue(r *encoding.Reader, opts encoding.Options) error {
	t, start, err := readTag(r, "status-flags")
	if err != nil {
		return err
	}
	if !t.IsContext() && !t.IsApplication(bacnet.TagBitString) {
		return unsupported("status-flags", t, start)
	}
	if t.Length < statusFlagsLength || (opts.Strict && t.Length > statusFlagsLength) {
		return &bacnet.MalformedEncodingError{
			Field:  "status-flags",
			Offset: start,
			Reason: fmt.Sprintf("bit string of length %d", t.Length),
		}
	}
	// The unused bits count is not checked against the payload
	if _, err := r.ReadUint8(); err != nil {
		return fmt.Errorf("read status-flags unused bits: %w", err)
	}
	payload, err := r.ReadUint8()
	if err != nil {
		return fmt.Errorf("read status-flags payload: %w", err)
	}
	if extra := int(t.Length - statusFlagsLength); extra > 0 {
		if _, err := r.ReadBytes(extra); err != nil {
			return fmt.Errorf("skip status-flags trailing bytes: %w", err)
		}
	}
	s.tag = t
	s.flags = bacnet.StatusFlags{
		InAlarm:      bitrange.Bit(payload, inAlarmBit),
		Fault:        bitrange.Bit(payload, faultBit),
		Overridden:   bitrange.Bit(payload, overriddenBit),
		OutOfService: bitrange.Bit(payload, outOfServiceBit),
	}
	return nil
}

func (s *StatusFlags) payload() []byte {
	var b byte
	b = bitrange.SetBit(b, inAlarmBit, s.flags.InAlarm)
	b = bitrange.SetBit(b, faultBit, s.flags.Fault)
	b = bitrange.SetBit(b, overriddenBit, s.flags.Overridden)
	b = bitrange.SetBit(b, outOfServiceBit, s.flags.OutOfService)
	return []byte{statusFlagsUnusedBits, b}
}

func (s *StatusFlags) WriteValue(w *encoding.Writer) (int, error) {
	t := encoding.NewApplicationTag(bacnet.TagBitString, statusFlagsLength)
	n, err := writeTagged(w, "status-flags", t, s.payload())
	if err != nil {
		return n, err
	}
	s.tag = t
	return n, nil
}

func (s *StatusFlags) WriteParam(w *encoding.Writer, tagNumber byte) (int, error) {
	t := encoding.NewContextTag(tagNumber, statusFlagsLength)
	n, err := writeTagged(w, "status-flags", t, s.payload())
	if err != nil {
		return n, err
	}
	s.tag = t
	return n, nil
}

//Flags returns a copy of the current flags
func (s *StatusFlags) Flags() bacnet.StatusFlags {
	return s.flags
}

func (s *StatusFlags) Value() interface{} {
	return s.flags
}

//SetValue accepts a bacnet.StatusFlags or a map keyed by flag name.
//Flags missing from the map are cleared.
func (s *StatusFlags) SetValue(v interface{}) error {
	switch x := v.(type) {
	case bacnet.StatusFlags:
		s.flags = x
	case *bacnet.StatusFlags:
		if x == nil {
			return &bacnet.ValidationError{Field: "status-flags", Value: v, Reason: "nil pointer"}
		}
		s.flags = *x
	case map[string]bool:
		f, err := statusFlagsFromMap(x)
		if err != nil {
			return err
		}
		s.flags = f
	case map[string]interface{}:
		m := make(map[string]bool, len(x))
		for k, raw := range x {
			b, ok := raw.(bool)
			if !ok {
				return &bacnet.ValidationError{Field: k, Value: raw, Reason: fmt.Sprintf("expected a bool, got %T", raw)}
			}
			m[k] = b
		}
		f, err := statusFlagsFromMap(m)
		if err != nil {
			return err
		}
		s.flags = f
	default:
		return &bacnet.ValidationError{Field: "status-flags", Value: v, Reason: fmt.Sprintf("unsupported type %T", v)}
	}
	return nil
}

func (s *StatusFlags) Tag() encoding.Tag {
	return s.tag
}

func (s *StatusFlags) String() string {
	return s.flags.String()
}

func statusFlagsFromMap(m map[string]bool) (bacnet.StatusFlags, error) {
	var f bacnet.StatusFlags
	for k, v := range m {
		switch k {
		case InAlarmKey:
			f.InAlarm = v
		case FaultKey:
			f.Fault = v
		case OverriddenKey:
			f.Overridden = v
		case OutOfServiceKey:
			f.OutOfService = v
		default:
			return f, &bacnet.ValidationError{Field: "status-flags", Value: k, Reason: "unknown flag"}
		}
	}
	return f, nil
}
