package encoding

import (
	"encoding/hex"
	"errors"
	"fmt"
	"testing"

	"github.com/matryer/is"

	"github.com/baetyl/baetyl-bacnet-codec/bacnet"
)

func TestValidTag(t *testing.T) {
	ttc := []struct {
		data     string //hex string
		expected Tag
	}{
		{
			data:     "09",
			expected: Tag{Number: 0, Length: 1, Class: bacnet.ContextClass},
		},
		{
			data:     "1a",
			expected: Tag{Number: 1, Length: 2, Class: bacnet.ContextClass},
		},
		{
			data:     "c4",
			expected: Tag{Number: 12, Length: 4},
		},
		{
			data:     "22",
			expected: Tag{Number: 2, Length: 2},
		},
		{
			data:     "91",
			expected: Tag{Number: 9, Length: 1},
		},
		{
			data:     "3e",
			expected: Tag{Number: 3, Class: bacnet.ContextClass, Opening: true},
		},
		{
			data:     "3f",
			expected: Tag{Number: 3, Class: bacnet.ContextClass, Closing: true},
		},
		{
			data:     "7511",
			expected: Tag{Number: byte(bacnet.TagCharacterString), Length: 17},
		},
		{
			data:     "65fd",
			expected: Tag{Number: 6, Length: 253},
		},
		{
			data:     "65fe00fe",
			expected: Tag{Number: 6, Length: 254},
		},
		{
			data:     "65feffff",
			expected: Tag{Number: 6, Length: 65535},
		},
		{
			data:     "65ff00010000",
			expected: Tag{Number: 6, Length: 65536},
		},
		{
			data:     "f91e",
			expected: Tag{Number: 30, Length: 1, Class: bacnet.ContextClass},
		},
		{
			data:     "f50f05",
			expected: Tag{Number: 15, Length: 5},
		},
		{
			data:     "fdc8fe03e8",
			expected: Tag{Number: 200, Length: 1000, Class: bacnet.ContextClass},
		},
		{
			data:     "fefe",
			expected: Tag{Number: 254, Class: bacnet.ContextClass, Opening: true},
		},
	}
	for _, tc := range ttc {
		t.Run(fmt.Sprintf("Tag decode %s", tc.data), func(t *testing.T) {
			is := is.New(t)
			b, err := hex.DecodeString(tc.data)
			is.NoErr(err)
			r := NewReader(b, 0)
			tag, err := DecodeTag(r)
			is.NoErr(err)
			is.Equal(tag, tc.expected)
			is.Equal(r.Pos(), len(b))
		})
		t.Run(fmt.Sprintf("Tag encode %s", tc.data), func(t *testing.T) {
			is := is.New(t)
			buf := make([]byte, TagSize(tc.expected))
			w := NewWriter(buf, 0)
			n, err := EncodeTag(w, tc.expected)
			is.NoErr(err)
			is.Equal(n, len(buf))
			is.Equal(hex.EncodeToString(w.Bytes()), tc.data)
		})
	}
}

func TestShortTagsUseOneByte(t *testing.T) {
	is := is.New(t)
	for n := byte(0); n <= 14; n++ {
		for l := uint32(0); l <= 4; l++ {
			for _, class := range []bacnet.TagClass{bacnet.ApplicationClass, bacnet.ContextClass} {
				tag := Tag{Number: n, Class: class, Length: l}
				buf := make([]byte, 8)
				w := NewWriter(buf, 0)
				size, err := EncodeTag(w, tag)
				is.NoErr(err)
				is.Equal(size, 1)
				is.Equal(buf[0], n<<4|byte(class)<<3|byte(l))
			}
		}
	}
}

func TestExtendedFormsAreAccepted(t *testing.T) {
	ttc := []struct {
		data      string //hex string, not the shortest form
		expected  Tag
		canonical string
	}{
		{data: "0d03", expected: Tag{Number: 0, Length: 3, Class: bacnet.ContextClass}, canonical: "0b"},
		{data: "0dfe0003", expected: Tag{Number: 0, Length: 3, Class: bacnet.ContextClass}, canonical: "0b"},
		{data: "0dff00000003", expected: Tag{Number: 0, Length: 3, Class: bacnet.ContextClass}, canonical: "0b"},
		{data: "f803", expected: Tag{Number: 3, Class: bacnet.ContextClass}, canonical: "38"},
		{data: "f50c04", expected: Tag{Number: 12, Length: 4}, canonical: "c4"},
		{data: "65fe0010", expected: Tag{Number: 6, Length: 16}, canonical: "6510"},
	}
	for _, tc := range ttc {
		t.Run(tc.data, func(t *testing.T) {
			is := is.New(t)
			b, err := hex.DecodeString(tc.data)
			is.NoErr(err)
			tag, err := DecodeTag(NewReader(b, 0))
			is.NoErr(err)
			is.Equal(tag, tc.expected)

			buf := make([]byte, 8)
			w := NewWriter(buf, 0)
			_, err = EncodeTag(w, tag)
			is.NoErr(err)
			is.Equal(hex.EncodeToString(w.Bytes()), tc.canonical)
		})
	}
}

func TestInvalidTag(t *testing.T) {
	ttc := []struct {
		data   string
		offset int
	}{
		{data: "", offset: 0},
		{data: "f9", offset: 1},
		{data: "f9ff", offset: 1},
		{data: "0d", offset: 1},
		{data: "0dfe00", offset: 2},
		{data: "0dff000000", offset: 2},
		{data: "26", offset: 0},
		{data: "27", offset: 0},
	}
	for _, tc := range ttc {
		t.Run(tc.data, func(t *testing.T) {
			is := is.New(t)
			b, err := hex.DecodeString(tc.data)
			is.NoErr(err)
			_, err = DecodeTag(NewReader(b, 0))
			is.True(errors.Is(err, bacnet.ErrMalformedEncoding))
			var e *bacnet.MalformedEncodingError
			is.True(errors.As(err, &e))
			is.Equal(e.Offset, tc.offset)
		})
	}
}

func TestEncodeTagErrors(t *testing.T) {
	is := is.New(t)
	buf := make([]byte, 8)

	_, err := EncodeTag(NewWriter(buf, 0), Tag{Number: 255})
	is.True(errors.Is(err, bacnet.ErrValidation))

	_, err = EncodeTag(NewWriter(buf, 0), Tag{Number: 1, Opening: true})
	is.True(errors.Is(err, bacnet.ErrValidation))

	// not enough space: nothing is written
	w := NewWriter(buf[:2], 0)
	_, err = EncodeTag(w, Tag{Number: 6, Length: 300})
	is.True(errors.Is(err, bacnet.ErrMalformedEncoding))
	is.Equal(w.Pos(), 0)
}

func TestPeekTag(t *testing.T) {
	is := is.New(t)
	r := NewReader([]byte{0xAA, 0xc4, 0x02, 0x00, 0x75, 0xe9}, 1)
	tag, err := PeekTag(r)
	is.NoErr(err)
	is.True(tag.IsApplication(bacnet.TagObjectID))
	is.Equal(r.Pos(), 1)
	tag2, err := DecodeTag(r)
	is.NoErr(err)
	is.Equal(tag, tag2)
	is.Equal(r.Pos(), 2)
}
