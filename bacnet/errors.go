package bacnet

import (
	"errors"
	"fmt"
)

// Sentinel errors matched by errors.Is against the typed errors below.
var (
	ErrValidation        = errors.New("bacnet: invalid value")
	ErrMalformedEncoding = errors.New("bacnet: malformed encoding")
	ErrUnsupportedTag    = errors.New("bacnet: unsupported tag")
)

//ValidationError is returned when a value given to a constructor or a
//setter doesn't have the expected shape
type ValidationError struct {
	Field  string
	Value  interface{}
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s (%v): %s", e.Field, e.Value, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

//MalformedEncodingError is returned when the bytes can't be decoded:
//inconsistent tag or length, or the buffer ends in the middle of a field
type MalformedEncodingError struct {
	Field  string
	Offset int
	Reason string
	Err    error
}

func (e *MalformedEncodingError) Error() string {
	msg := fmt.Sprintf("malformed %s at offset %d: %s", e.Field, e.Offset, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedEncodingError) Unwrap() error {
	return e.Err
}

func (e *MalformedEncodingError) Is(target error) bool {
	return target == ErrMalformedEncoding
}

//UnsupportedTagError is returned when a codec reads a tag that doesn't
//announce the type it decodes
type UnsupportedTagError struct {
	Field  string
	Number byte
	Class  TagClass
	Offset int
}

func (e *UnsupportedTagError) Error() string {
	return fmt.Sprintf("unsupported %s tag %d for %s at offset %d", e.Class, e.Number, e.Field, e.Offset)
}

func (e *UnsupportedTagError) Is(target error) bool {
	return target == ErrUnsupportedTag
}
