package huffcoder

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/chronos-tachyon/assert"
)

// Code represents a sequence of bits assigned to one Symbol.
//
// The bits are packed most-significant-first: the first bit of the Code is
// the high bit of the first byte.  Codes have no fixed maximum length, since
// a badly skewed tree can be deeper than any machine word.
type Code struct {
	size int
	bits []byte
}

// MakeCode constructs a Code from the low size bits of value.  The most
// significant of those bits is the first bit of the Code.
func MakeCode(size int, value uint64) Code {
	assert.Assertf(size >= 0 && size <= 64, "size %d out of range [0, 64]", size)
	path := make([]byte, size)
	for index := 0; index < size; index++ {
		path[index] = byte(value>>uint(size-1-index)) & 1
	}
	return packPath(path)
}

// ParseCode parses a string of '0' and '1' characters into a Code.
func ParseCode(str string) (Code, error) {
	path := make([]byte, len(str))
	for index := 0; index < len(str); index++ {
		switch str[index] {
		case '0':
			path[index] = 0
		case '1':
			path[index] = 1
		default:
			return Code{}, fmt.Errorf("invalid character %q at index %d in code %q", str[index], index, str)
		}
	}
	return packPath(path), nil
}

// Size returns the number of bits in this Code.
func (hc Code) Size() int {
	return hc.size
}

// Bit returns the index'th bit of this Code, either 0 or 1.
func (hc Code) Bit(index int) byte {
	assert.Assertf(index >= 0 && index < hc.size, "index %d out of range [0, %d)", index, hc.size)
	return (hc.bits[index>>3] >> (7 - uint(index&7))) & 1
}

// HasPrefix returns true iff prefix is a prefix of this Code.  Every Code is
// a prefix of itself.
func (hc Code) HasPrefix(prefix Code) bool {
	if prefix.size > hc.size {
		return false
	}
	full := prefix.size >> 3
	if !bytes.Equal(hc.bits[:full], prefix.bits[:full]) {
		return false
	}
	rest := uint(prefix.size & 7)
	if rest == 0 {
		return true
	}
	mask := byte(0xff) << (8 - rest)
	return hc.bits[full]&mask == prefix.bits[full]
}

// Equal returns true iff the two Codes hold the same bits.
func (hc Code) Equal(other Code) bool {
	return hc.size == other.size && bytes.Equal(hc.bits, other.bits)
}

// Digits returns the bits of this Code as a string of '0' and '1'.
func (hc Code) Digits() string {
	return digits(hc.bits, uint64(hc.size))
}

// String returns the string representation of this Code.
func (hc Code) String() string {
	return strconv.Quote(hc.Digits())
}

var _ fmt.Stringer = Code{}

func (hc Code) writeTo(w bitWriter) error {
	return writePacked(w, hc.bits, uint64(hc.size))
}

// packPath packs a slice of 0/1 values into a Code.  The result does not
// alias path.
func packPath(path []byte) Code {
	size := len(path)
	bits := make([]byte, (size+7)>>3)
	for index, bit := range path {
		if bit != 0 {
			bits[index>>3] |= 0x80 >> uint(index&7)
		}
	}
	return Code{size: size, bits: bits}
}

func digits(data []byte, size uint64) string {
	var sb strings.Builder
	sb.Grow(int(size))
	for index := uint64(0); index < size; index++ {
		if (data[index>>3]>>(7-uint(index&7)))&1 != 0 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
