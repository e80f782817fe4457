package encoding

import (
	"encoding/binary"
	"io"

	"github.com/baetyl/baetyl-bacnet-codec/bacnet"
)

//Writer is a cursor writing into a fixed byte slice. It never grows
//the slice: callers size it beforehand, and a write that doesn't fit
//fails with a bacnet.MalformedEncodingError without writing anything.
type Writer struct {
	buf []byte
	pos int
}

//NewWriter returns a Writer over b positioned at offset.
func NewWriter(b []byte, offset int) *Writer {
	return &Writer{buf: b, pos: offset}
}

func (w *Writer) Pos() int {
	return w.pos
}

func (w *Writer) Seek(pos int) error {
	if pos < 0 || pos > len(w.buf) {
		return &bacnet.ValidationError{Field: "writer-position", Value: pos, Reason: "outside of buffer"}
	}
	w.pos = pos
	return nil
}

//Remaining returns the free space after the cursor
func (w *Writer) Remaining() int {
	if w.pos < 0 || w.pos > len(w.buf) {
		return 0
	}
	return len(w.buf) - w.pos
}

//Bytes returns the buffer up to the cursor
func (w *Writer) Bytes() []byte {
	if w.pos < 0 || w.pos > len(w.buf) {
		return nil
	}
	return w.buf[:w.pos]
}

//Require fails if fewer than n bytes are left. Codecs call it before
//writing a header and its payload so that nothing is written on error.
func (w *Writer) Require(field string, n int) error {
	if w.pos < 0 || w.pos > len(w.buf) || len(w.buf)-w.pos < n {
		return &bacnet.MalformedEncodingError{
			Field:  field,
			Offset: w.pos,
			Reason: "no space left in output buffer",
			Err:    io.ErrShortBuffer,
		}
	}
	return nil
}

func (w *Writer) WriteUint8(v byte) error {
	if err := w.Require("uint8", 1); err != nil {
		return err
	}
	w.buf[w.pos] = v
	w.pos++
	return nil
}

func (w *Writer) WriteUint16(v uint16) error {
	if err := w.Require("uint16", 2); err != nil {
		return err
	}
	binary.BigEndian.PutUint16(w.buf[w.pos:], v)
	w.pos += 2
	return nil
}

func (w *Writer) WriteUint32(v uint32) error {
	if err := w.Require("uint32", 4); err != nil {
		return err
	}
	binary.BigEndian.PutUint32(w.buf[w.pos:], v)
	w.pos += 4
	return nil
}

//WriteUint writes v in big endian on n bytes, n being between 1 and 4.
//Bits of v that don't fit are dropped.
func (w *Writer) WriteUint(v uint32, n int) error {
	if n < 1 || n > 4 {
		return &bacnet.ValidationError{Field: "uint-width", Value: n, Reason: "must be between 1 and 4"}
	}
	if err := w.Require("uint", n); err != nil {
		return err
	}
	for i := n - 1; i >= 0; i-- {
		w.buf[w.pos+i] = byte(v)
		v >>= 8
	}
	w.pos += n
	return nil
}

func (w *Writer) WriteBytes(b []byte) error {
	if err := w.Require("bytes", len(b)); err != nil {
		return err
	}
	w.pos += copy(w.buf[w.pos:], b)
	return nil
}

//UintLen returns the number of bytes needed to hold v
func UintLen(v uint32) int {
	switch {
	case v <= 0xFF:
		return 1
	case v <= 0xFFFF:
		return 2
	case v <= 0xFFFFFF:
		return 3
	}
	return 4
}
