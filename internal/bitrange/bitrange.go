//Package bitrange reads and writes fixed bit fields packed inside an
//unsigned word. Bits are indexed from the least significant bit, so
//bit 0 is the rightmost bit of the word.
package bitrange

// Get returns the width bits of word starting at bit start.
func Get(word uint32, start, width uint) uint32 {
	return (word >> start) & mask(width)
}

// Set returns word with the width bits starting at bit start replaced by
// the low bits of v. Bits of v above width are discarded.
func Set(word uint32, start, width uint, v uint32) uint32 {
	m := mask(width) << start
	return (word &^ m) | ((v << start) & m)
}

// Bit reports whether bit n of b is set.
func Bit(b byte, n uint) bool {
	return Get(uint32(b), n, 1) == 1
}

// SetBit returns b with bit n set to on.
func SetBit(b byte, n uint, on bool) byte {
	var v uint32
	if on {
		v = 1
	}
	return byte(Set(uint32(b), n, 1, v))
}

func mask(width uint) uint32 {
	if width >= 32 {
		return 0xFFFFFFFF
	}
	return (1 << width) - 1
}
