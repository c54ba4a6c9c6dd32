package huffcoder

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/chronos-tachyon/assert"
	"github.com/icza/bitio"
)

// Bits is a packed Bit Sequence: the encoded payload produced by Encode and
// consumed by Decode.
//
// The bits are packed most-significant-first into Bytes().  Only the first
// Len() bits are meaningful; the unused low bits of the final byte are
// always zero.
type Bits struct {
	data []byte
	size uint64
}

// MakeBits constructs a Bits from packed data and an explicit bit length.
// The data must be exactly long enough to hold size bits.  The data is
// copied, and any unused bits in the final byte are cleared.
func MakeBits(data []byte, size uint64) (Bits, error) {
	needed := (size + 7) >> 3
	if uint64(len(data)) != needed {
		return Bits{}, fmt.Errorf("bit length %d requires %d bytes, got %d", size, needed, len(data))
	}
	out := make([]byte, len(data))
	copy(out, data)
	if rest := uint(size & 7); rest != 0 {
		out[len(out)-1] &= byte(0xff) << (8 - rest)
	}
	return Bits{data: out, size: size}, nil
}

// ParseBits parses a string of '0' and '1' characters into a Bits.
func ParseBits(str string) (Bits, error) {
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)
	for index := 0; index < len(str); index++ {
		switch str[index] {
		case '0':
			w.TryWriteBool(false)
		case '1':
			w.TryWriteBool(true)
		default:
			return Bits{}, fmt.Errorf("invalid character %q at index %d in bit string", str[index], index)
		}
	}
	if err := w.Close(); err != nil {
		return Bits{}, err
	}
	if w.TryError != nil {
		return Bits{}, w.TryError
	}
	return Bits{data: buf.Bytes(), size: uint64(len(str))}, nil
}

// Len returns the number of valid bits.
func (b Bits) Len() uint64 {
	return b.size
}

// Bytes returns the packed bits.  The caller must not modify the result.
func (b Bits) Bytes() []byte {
	return b.data
}

// TrailingBits returns the number of valid bits in the final byte, in the
// range [1, 8], or 0 if the sequence is empty.
func (b Bits) TrailingBits() uint8 {
	if b.size == 0 {
		return 0
	}
	if rest := uint8(b.size & 7); rest != 0 {
		return rest
	}
	return 8
}

// Bit returns the index'th bit, either 0 or 1.
func (b Bits) Bit(index uint64) byte {
	assert.Assertf(index < b.size, "index %d out of range [0, %d)", index, b.size)
	return (b.data[index>>3] >> (7 - uint(index&7))) & 1
}

// Append returns the concatenation of b followed by other.  Neither input
// is modified.
func (b Bits) Append(other Bits) Bits {
	if other.size == 0 {
		return b
	}
	if b.size == 0 {
		return other
	}

	var buf bytes.Buffer
	buf.Grow(int((b.size + other.size + 7) >> 3))
	w := bitio.NewWriter(&buf)
	err := writePacked(w, b.data, b.size)
	if err == nil {
		err = writePacked(w, other.data, other.size)
	}
	if err == nil {
		err = w.Close()
	}
	if err != nil {
		// bytes.Buffer never fails a write
		panic(err)
	}
	return Bits{data: buf.Bytes(), size: b.size + other.size}
}

// Equal returns true iff both sequences hold the same bits.
func (b Bits) Equal(other Bits) bool {
	return b.size == other.size && bytes.Equal(b.data, other.data)
}

// Digits returns the bits as a string of '0' and '1'.
func (b Bits) Digits() string {
	return digits(b.data, b.size)
}

// String returns the string representation of this Bits.
func (b Bits) String() string {
	return strconv.Quote(b.Digits())
}

var _ fmt.Stringer = Bits{}

// bitWriter is satisfied by *bitio.Writer and *bitio.CountWriter.
type bitWriter interface {
	WriteByte(b byte) error
	WriteBits(r uint64, n uint8) error
}

var (
	_ bitWriter = (*bitio.Writer)(nil)
	_ bitWriter = (*bitio.CountWriter)(nil)
)

// writePacked writes the first size bits of MSB-first data to w.
func writePacked(w bitWriter, data []byte, size uint64) error {
	full := size >> 3
	for index := uint64(0); index < full; index++ {
		if err := w.WriteByte(data[index]); err != nil {
			return err
		}
	}
	if rest := uint8(size & 7); rest != 0 {
		return w.WriteBits(uint64(data[full]>>(8-rest)), rest)
	}
	return nil
}
