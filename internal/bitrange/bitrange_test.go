package bitrange

import (
	"fmt"
	"testing"

	"github.com/matryer/is"
)

func TestGet(t *testing.T) {
	ttc := []struct {
		word         uint32
		start, width uint
		expected     uint32
	}{
		{word: 0x30, start: 4, width: 4, expected: 3},
		{word: 0x3c, start: 3, width: 1, expected: 1},
		{word: 0x3c, start: 2, width: 1, expected: 1},
		{word: 0x38, start: 2, width: 1, expected: 0},
		{word: 0x020075e9, start: 22, width: 10, expected: 8},
		{word: 0x020075e9, start: 0, width: 22, expected: 30185},
		{word: 0xFFFFFFFF, start: 0, width: 32, expected: 0xFFFFFFFF},
		{word: 0xFFFFFFFF, start: 22, width: 10, expected: 1023},
	}
	for _, tc := range ttc {
		t.Run(fmt.Sprintf("%#x[%d:%d]", tc.word, tc.start, tc.width), func(t *testing.T) {
			is := is.New(t)
			is.Equal(Get(tc.word, tc.start, tc.width), tc.expected)
		})
	}
}

func TestSet(t *testing.T) {
	is := is.New(t)
	is.Equal(Set(0, 22, 10, 8)|Set(0, 0, 22, 30185), uint32(0x020075e9))
	// value wider than the field is truncated
	is.Equal(Set(0, 4, 4, 0x1F), uint32(0xF0))
	// neighbouring bits are preserved
	is.Equal(Set(0xFF, 4, 4, 0), uint32(0x0F))
	is.Equal(Set(0, 0, 32, 0xDEADBEEF), uint32(0xDEADBEEF))
}

func TestBit(t *testing.T) {
	is := is.New(t)
	is.True(Bit(0x80, 7))
	is.True(!Bit(0x80, 6))
	is.Equal(SetBit(0, 7, true), byte(0x80))
	is.Equal(SetBit(0xFF, 3, false), byte(0xF7))
	is.Equal(SetBit(0x10, 4, true), byte(0x10))
}
