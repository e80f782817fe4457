package value

import (
	"fmt"

	"github.com/baetyl/baetyl-bacnet-codec/bacnet"
	"github.com/baetyl/baetyl-bacnet-codec/encoding"
)

//Boolean is encoded in the length field of its application tag, and as
//a one byte payload under a context tag
type Boolean struct {
	tag  encoding.Tag
	data bool
}

func NewBoolean(v bool) *Boolean {
	return &Boolean{tag: encoding.NewApplicationTag(bacnet.TagBoolean, boolToUint(v)), data: v}
}

func (b *Boolean) ReadValue(r *encoding.Reader, opts encoding.Options) error {
	t, start, err := readTag(r, "boolean")
	if err != nil {
		return err
	}
	var v bool
	switch {
	case t.IsContext():
		if t.Length != 1 {
			return &bacnet.MalformedEncodingError{
				Field:  "boolean",
				Offset: start,
				Reason: fmt.Sprintf("context boolean of length %d", t.Length),
			}
		}
		c, err := r.ReadUint8()
		if err != nil {
			return fmt.Errorf("read boolean payload: %w", err)
		}
		v = c != 0
	case t.IsApplication(bacnet.TagBoolean):
		if opts.Strict && t.Length > 1 {
			return &bacnet.MalformedEncodingError{
				Field:  "boolean",
				Offset: start,
				Reason: fmt.Sprintf("application boolean with value %d", t.Length),
			}
		}
		v = t.Length != 0
	default:
		return unsupported("boolean", t, start)
	}
	b.tag, b.data = t, v
	return nil
}

func (b *Boolean) WriteValue(w *encoding.Writer) (int, error) {
	t := encoding.NewApplicationTag(bacnet.TagBoolean, boolToUint(b.data))
	n, err := encoding.EncodeTag(w, t)
	if err != nil {
		return n, err
	}
	b.tag = t
	return n, nil
}

func (b *Boolean) WriteParam(w *encoding.Writer, tagNumber byte) (int, error) {
	t := encoding.NewContextTag(tagNumber, 1)
	n, err := writeTagged(w, "boolean", t, []byte{byte(boolToUint(b.data))})
	if err != nil {
		return n, err
	}
	b.tag = t
	return n, nil
}

func (b *Boolean) Bool() bool {
	return b.data
}

func (b *Boolean) Value() interface{} {
	return b.data
}

func (b *Boolean) SetValue(v interface{}) error {
	switch x := v.(type) {
	case bool:
		b.data = x
	case *bool:
		if x == nil {
			return &bacnet.ValidationError{Field: "boolean", Value: v, Reason: "nil pointer"}
		}
		b.data = *x
	default:
		return &bacnet.ValidationError{Field: "boolean", Value: v, Reason: fmt.Sprintf("expected a bool, got %T", v)}
	}
	return nil
}

func (b *Boolean) Tag() encoding.Tag {
	return b.tag
}

func (b *Boolean) String() string {
	return fmt.Sprintf("%t", b.data)
}

func boolToUint(v bool) uint32 {
	if v {
		return 1
	}
	return 0
}
