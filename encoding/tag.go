package encoding

import (
	"fmt"

	"github.com/baetyl/baetyl-bacnet-codec/bacnet"
	"github.com/baetyl/baetyl-bacnet-codec/internal/bitrange"
)

const (
	flag16bits byte = 0xFE
	flag32bits byte = 0xFF

	extendedTagNumber = 15
	extendedValue     = 5
	openingTag        = 6
	closingTag        = 7

	maxShortTagNumber = 14
	maxShortValue     = 4
	maxTagNumber      = 254
)

//Tag is the header in front of every encoded value.
type Tag struct {
	// Tag number. For application tags it is the type of the value
	// (see bacnet.ApplicationTag), for context tags it is given by the
	// enclosing structure
	Number byte
	Class  bacnet.TagClass
	// Length of the value that follows. For application booleans it is
	// the value itself
	Length  uint32
	Opening bool
	Closing bool
}

//NewApplicationTag returns the tag of an application value of type n
func NewApplicationTag(n bacnet.ApplicationTag, length uint32) Tag {
	return Tag{Number: byte(n), Class: bacnet.ApplicationClass, Length: length}
}

//NewContextTag returns a context tag
func NewContextTag(n byte, length uint32) Tag {
	return Tag{Number: n, Class: bacnet.ContextClass, Length: length}
}

func (t Tag) IsContext() bool {
	return t.Class == bacnet.ContextClass
}

//IsApplication reports whether t is an application tag of type n
func (t Tag) IsApplication(n bacnet.ApplicationTag) bool {
	return t.Class == bacnet.ApplicationClass && t.Number == byte(n)
}

func (t Tag) String() string {
	switch {
	case t.Opening:
		return fmt.Sprintf("opening %s tag %d", t.Class, t.Number)
	case t.Closing:
		return fmt.Sprintf("closing %s tag %d", t.Class, t.Number)
	}
	return fmt.Sprintf("%s tag %d length %d", t.Class, t.Number, t.Length)
}

//TagSize returns the number of bytes EncodeTag writes for t
func TagSize(t Tag) int {
	size := 1
	if t.Number > maxShortTagNumber {
		size++
	}
	if t.Opening || t.Closing {
		return size
	}
	switch {
	case t.Length <= maxShortValue:
	case t.Length <= 253:
		size++
	case t.Length <= 65535:
		size += 3
	default:
		size += 5
	}
	return size
}

//EncodeTag writes t using the shortest form possible and returns the
//number of bytes written. Nothing is written if w doesn't have enough
//space for the whole header.
func EncodeTag(w *Writer, t Tag) (int, error) {
	if t.Number > maxTagNumber {
		return 0, &bacnet.ValidationError{Field: "tag-number", Value: t.Number, Reason: "255 is reserved"}
	}
	if t.Opening && t.Closing {
		return 0, &bacnet.ValidationError{Field: "tag", Value: t, Reason: "both opening and closing"}
	}
	if (t.Opening || t.Closing) && !t.IsContext() {
		return 0, &bacnet.ValidationError{Field: "tag", Value: t, Reason: "opening and closing tags are context tags"}
	}
	size := TagSize(t)
	if err := w.Require("tag", size); err != nil {
		return 0, err
	}

	var header uint32
	header = bitrange.Set(header, 3, 1, uint32(t.Class))
	switch {
	case t.Opening:
		header = bitrange.Set(header, 0, 3, openingTag)
	case t.Closing:
		header = bitrange.Set(header, 0, 3, closingTag)
	case t.Length <= maxShortValue:
		header = bitrange.Set(header, 0, 3, t.Length)
	default:
		header = bitrange.Set(header, 0, 3, extendedValue)
	}
	if t.Number <= maxShortTagNumber {
		header = bitrange.Set(header, 4, 4, uint32(t.Number))
		_ = w.WriteUint8(byte(header))
	} else {
		// We don't have enough space so make it in a new byte
		header = bitrange.Set(header, 4, 4, extendedTagNumber)
		_ = w.WriteUint8(byte(header))
		_ = w.WriteUint8(t.Number)
	}

	if !t.Opening && !t.Closing && t.Length > maxShortValue {
		// Depending on the length, we will either write it as an 8 bit, 16 bit, or 32 bit integer
		switch {
		case t.Length <= 253:
			_ = w.WriteUint8(byte(t.Length))
		case t.Length <= 65535:
			_ = w.WriteUint8(flag16bits)
			_ = w.WriteUint16(uint16(t.Length))
		default:
			_ = w.WriteUint8(flag32bits)
			_ = w.WriteUint32(t.Length)
		}
	}
	return size, nil
}

//DecodeTag reads a tag header. Every valid width is accepted, even when
//a shorter form exists.
func DecodeTag(r *Reader) (t Tag, err error) {
	start := r.Pos()
	firstByte, err := r.ReadUint8()
	if err != nil {
		return t, fmt.Errorf("read tag header: %w", err)
	}
	header := uint32(firstByte)
	t.Number = byte(bitrange.Get(header, 4, 4))
	t.Class = bacnet.TagClass(bitrange.Get(header, 3, 1))
	lvt := bitrange.Get(header, 0, 3)

	if t.Number == extendedTagNumber {
		tagNumber, err := r.ReadUint8()
		if err != nil {
			return t, fmt.Errorf("read extended tag number: %w", err)
		}
		if tagNumber > maxTagNumber {
			return t, &bacnet.MalformedEncodingError{Field: "tag-number", Offset: start + 1, Reason: "255 is reserved"}
		}
		t.Number = tagNumber
	}

	switch lvt {
	case openingTag, closingTag:
		if !t.IsContext() {
			return t, &bacnet.MalformedEncodingError{
				Field:  "tag",
				Offset: start,
				Reason: fmt.Sprintf("length/value/type %d on an application tag", lvt),
			}
		}
		t.Opening = lvt == openingTag
		t.Closing = lvt == closingTag
	case extendedValue:
		firstValueByte, err := r.ReadUint8()
		if err != nil {
			return t, fmt.Errorf("read first byte of extended length: %w", err)
		}
		switch firstValueByte {
		case flag16bits:
			v, err := r.ReadUint16()
			if err != nil {
				return t, fmt.Errorf("read extended 16bits tag length: %w", err)
			}
			t.Length = uint32(v)
		case flag32bits:
			t.Length, err = r.ReadUint32()
			if err != nil {
				return t, fmt.Errorf("read extended 32bits tag length: %w", err)
			}
		default:
			t.Length = uint32(firstValueByte)
		}
	default:
		t.Length = lvt
	}
	return t, nil
}

//PeekTag decodes the next tag and moves the cursor back before it
func PeekTag(r *Reader) (Tag, error) {
	start := r.Pos()
	t, err := DecodeTag(r)
	if seekErr := r.Seek(start); seekErr != nil && err == nil {
		err = seekErr
	}
	return t, err
}
