package encoding

import (
	"encoding/binary"
	"io"

	"github.com/baetyl/baetyl-bacnet-codec/bacnet"
)

//Reader is a cursor over a fixed byte slice. Every read advances the
//position. Reading past the end of the slice fails with a
//bacnet.MalformedEncodingError and leaves the position unchanged.
type Reader struct {
	buf []byte
	pos int
}

//NewReader returns a Reader over b positioned at offset.
func NewReader(b []byte, offset int) *Reader {
	return &Reader{buf: b, pos: offset}
}

func (r *Reader) Pos() int {
	return r.pos
}

//Seek moves the cursor to pos. It is used to go back after a tag
//look-ahead.
func (r *Reader) Seek(pos int) error {
	if pos < 0 || pos > len(r.buf) {
		return &bacnet.ValidationError{Field: "reader-position", Value: pos, Reason: "outside of buffer"}
	}
	r.pos = pos
	return nil
}

func (r *Reader) Len() int {
	return len(r.buf)
}

//Remaining returns the number of bytes left after the cursor
func (r *Reader) Remaining() int {
	if r.pos < 0 || r.pos > len(r.buf) {
		return 0
	}
	return len(r.buf) - r.pos
}

func (r *Reader) require(field string, n int) error {
	if r.pos < 0 || r.pos > len(r.buf) || len(r.buf)-r.pos < n {
		return &bacnet.MalformedEncodingError{
			Field:  field,
			Offset: r.pos,
			Reason: "buffer exhausted",
			Err:    io.ErrUnexpectedEOF,
		}
	}
	return nil
}

func (r *Reader) ReadUint8() (byte, error) {
	if err := r.require("uint8", 1); err != nil {
		return 0, err
	}
	v := r.buf[r.pos]
	r.pos++
	return v, nil
}

func (r *Reader) ReadUint16() (uint16, error) {
	if err := r.require("uint16", 2); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint16(r.buf[r.pos:])
	r.pos += 2
	return v, nil
}

func (r *Reader) ReadUint32() (uint32, error) {
	if err := r.require("uint32", 4); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint32(r.buf[r.pos:])
	r.pos += 4
	return v, nil
}

//ReadUint reads a big endian unsigned integer stored on n bytes, n
//being between 1 and 4.
func (r *Reader) ReadUint(n int) (uint32, error) {
	if n < 1 || n > 4 {
		return 0, &bacnet.ValidationError{Field: "uint-width", Value: n, Reason: "must be between 1 and 4"}
	}
	if err := r.require("uint", n); err != nil {
		return 0, err
	}
	var v uint32
	for _, b := range r.buf[r.pos : r.pos+n] {
		v = v<<8 | uint32(b)
	}
	r.pos += n
	return v, nil
}

//ReadBytes returns the next n bytes. The returned slice shares the
//Reader buffer, its capacity is limited to n so appending to it never
//overwrites the rest of the buffer.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, &bacnet.ValidationError{Field: "length", Value: n, Reason: "negative"}
	}
	if err := r.require("bytes", n); err != nil {
		return nil, err
	}
	b := r.buf[r.pos : r.pos+n : r.pos+n]
	r.pos += n
	return b, nil
}
