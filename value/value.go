package value

import (
	"fmt"

	"github.com/baetyl/baetyl-go/v2/log"

	"github.com/baetyl/baetyl-bacnet-codec/bacnet"
	"github.com/baetyl/baetyl-bacnet-codec/encoding"
)

//Value is a typed BACnet primitive that can be decoded from and encoded
//into a tagged buffer.
type Value interface {
	// ReadValue decodes a tag and its payload at the reader position.
	// On error the value is left untouched
	ReadValue(r *encoding.Reader, opts encoding.Options) error
	// WriteValue encodes the value under its application tag
	WriteValue(w *encoding.Writer) (int, error)
	// WriteParam encodes the value under the context tag tagNumber
	WriteParam(w *encoding.Writer, tagNumber byte) (int, error)
	Value() interface{}
	SetValue(v interface{}) error
	// Tag is the last tag read or written
	Tag() encoding.Tag
}

//Kind names the application types handled by this package
type Kind string

const (
	KindBoolean          Kind = "boolean"
	KindStatusFlags      Kind = "statusFlags"
	KindObjectIdentifier Kind = "objectIdentifier"
)

//New returns an empty value for the application tag t. Context tags
//don't carry their type so they can't be resolved here.
func New(t encoding.Tag) (Value, error) {
	if t.IsContext() || t.Opening || t.Closing {
		return nil, &bacnet.UnsupportedTagError{Field: "value", Number: t.Number, Class: t.Class}
	}
	switch bacnet.ApplicationTag(t.Number) {
	case bacnet.TagBoolean:
		return NewBoolean(false), nil
	case bacnet.TagBitString:
		return NewStatusFlags(bacnet.StatusFlags{}), nil
	case bacnet.TagObjectID:
		return &ObjectIdentifier{tag: encoding.NewApplicationTag(bacnet.TagObjectID, objectIDLength)}, nil
	}
	return nil, &bacnet.UnsupportedTagError{Field: "value", Number: t.Number, Class: t.Class}
}

//FromValue builds a value of the given kind from a dynamic payload,
//validated the same way as SetValue
func FromValue(k Kind, v interface{}) (Value, error) {
	var val Value
	switch k {
	case KindBoolean:
		val = NewBoolean(false)
	case KindStatusFlags:
		val = NewStatusFlags(bacnet.StatusFlags{})
	case KindObjectIdentifier:
		val = &ObjectIdentifier{tag: encoding.NewApplicationTag(bacnet.TagObjectID, objectIDLength)}
	default:
		return nil, &bacnet.ValidationError{Field: "kind", Value: k, Reason: "unknown value kind"}
	}
	if err := val.SetValue(v); err != nil {
		return nil, err
	}
	return val, nil
}

//Decode peeks the application tag at the reader position, then decodes
//the value it announces
func Decode(r *encoding.Reader, opts encoding.Options) (Value, error) {
	start := r.Pos()
	t, err := encoding.PeekTag(r)
	if err != nil {
		return nil, fmt.Errorf("peek value tag: %w", err)
	}
	v, err := New(t)
	if err != nil {
		if e, ok := err.(*bacnet.UnsupportedTagError); ok {
			e.Offset = start
		}
		opts.Log().Debug("unsupported value tag", log.Any("tag", t.String()), log.Any("offset", start))
		return nil, err
	}
	if err := v.ReadValue(r, opts); err != nil {
		return nil, err
	}
	return v, nil
}

//Read decodes v from buf starting at offset and returns the offset of
//the first byte after it
func Read(v Value, buf []byte, offset int, opts encoding.Options) (int, error) {
	r := encoding.NewReader(buf, offset)
	if err := v.ReadValue(r, opts); err != nil {
		return offset, err
	}
	return r.Pos(), nil
}

func unsupported(field string, t encoding.Tag, offset int) error {
	return &bacnet.UnsupportedTagError{Field: field, Number: t.Number, Class: t.Class, Offset: offset}
}

func readTag(r *encoding.Reader, field string) (encoding.Tag, int, error) {
	start := r.Pos()
	t, err := encoding.DecodeTag(r)
	if err != nil {
		return t, start, fmt.Errorf("read %s tag: %w", field, err)
	}
	if t.Opening || t.Closing {
		return t, start, unsupported(field, t, start)
	}
	return t, start, nil
}

//writeTagged writes t followed by payload, or nothing if it doesn't fit
func writeTagged(w *encoding.Writer, field string, t encoding.Tag, payload []byte) (int, error) {
	if err := w.Require(field, encoding.TagSize(t)+len(payload)); err != nil {
		return 0, err
	}
	n, err := encoding.EncodeTag(w, t)
	if err != nil {
		return 0, err
	}
	if err := w.WriteBytes(payload); err != nil {
		return n, err
	}
	return n + len(payload), nil
}
