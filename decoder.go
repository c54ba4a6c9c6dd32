package huffcoder

import (
	"bytes"
	"io"

	"github.com/chronos-tachyon/assert"
	"github.com/icza/bitio"
)

// Decoder recovers symbols from a packed bit stream by walking a Tree.
//
// Starting at the root, each 0 bit moves to the left child and each 1 bit
// to the right child.  Reaching a leaf emits its symbol and returns to the
// root.  When the root itself is a leaf, each 0 bit emits that symbol.
//
type Decoder struct {
	r       *bitio.Reader
	tree    *Tree
	size    uint64
	offset  uint64
	decoded int
	err     error
}

// NewDecoder returns a Decoder that reads exactly size bits from r.
func NewDecoder(r io.Reader, size uint64, tree *Tree) *Decoder {
	assert.Assertf(tree != nil, "NewDecoder: nil Tree")
	return &Decoder{r: bitio.NewReader(r), tree: tree, size: size}
}

// Next decodes and returns the next Symbol.
//
// Next returns io.EOF once all size bits have been consumed on a code
// boundary.  It returns a *DecodeError wrapping ErrTruncatedInput if the
// bits end (or the underlying reader runs dry) inside a code, or wrapping
// ErrCorruptStream if a bit selects a missing edge.  Errors are sticky.
//
func (d *Decoder) Next() (Symbol, error) {
	if d.err != nil {
		return InvalidSymbol, d.err
	}
	if d.offset >= d.size {
		return InvalidSymbol, io.EOF
	}

	t := d.tree
	cur := t.root
	for {
		if d.offset >= d.size {
			return InvalidSymbol, d.fail(ErrTruncatedInput)
		}

		bit, err := d.r.ReadBool()
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return InvalidSymbol, d.fail(ErrTruncatedInput)
		}
		if err != nil {
			d.err = err
			return InvalidSymbol, err
		}

		n := &t.nodes[cur]
		if n.kind == leafNode {
			// Only reachable when the root is a leaf.
			if bit {
				return InvalidSymbol, d.fail(ErrCorruptStream)
			}
			d.offset++
			d.decoded++
			return n.symbol, nil
		}

		next := n.left
		if bit {
			next = n.right
		}
		if next == NoNode {
			return InvalidSymbol, d.fail(ErrCorruptStream)
		}

		d.offset++
		cur = next
		if child := &t.nodes[cur]; child.kind == leafNode {
			d.decoded++
			return child.symbol, nil
		}
	}
}

// Decoded returns the number of symbols decoded so far.
func (d *Decoder) Decoded() int {
	return d.decoded
}

// Offset returns the number of bits consumed so far.
func (d *Decoder) Offset() uint64 {
	return d.offset
}

func (d *Decoder) fail(sentinel error) error {
	d.err = &DecodeError{Err: sentinel, BitOffset: d.offset, Decoded: d.decoded}
	return d.err
}

// Decode recovers the symbol sequence encoded in bits, using tree as the
// decoding automaton.  On failure it returns no symbols and a *DecodeError
// wrapping ErrTruncatedInput or ErrCorruptStream.
func Decode(bits Bits, tree *Tree) ([]Symbol, error) {
	d := NewDecoder(bytes.NewReader(bits.data), bits.size, tree)
	out := make([]Symbol, 0, estimateSymbols(bits.size))
	for {
		symbol, err := d.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, symbol)
	}
}

// DecodeBytes is like Decode, but narrows each decoded Symbol into a byte.
func DecodeBytes(bits Bits, tree *Tree) ([]byte, error) {
	symbols, err := Decode(bits, tree)
	if err != nil {
		return nil, err
	}
	return SymbolsToBytes(symbols)
}

// estimateSymbols guesses an output capacity, assuming about 4 bits per
// symbol, capped to keep a bogus size from allocating too much up front.
func estimateSymbols(size uint64) int {
	const maxEstimate = 1 << 20
	n := size / 4
	if n > maxEstimate {
		n = maxEstimate
	}
	return int(n)
}
