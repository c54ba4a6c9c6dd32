package huffcoder

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/chronos-tachyon/assert"
)

// CodeTable maps each Symbol to its Code.  No Code in a CodeTable is a
// prefix of another.  A CodeTable is read-only once built and is safe for
// concurrent use.
type CodeTable struct {
	codes   map[Symbol]Code
	minSize int
	maxSize int
}

// DeriveCodes assigns a Code to every leaf of the tree: the path from the
// root, with 0 for each left edge and 1 for each right edge.
//
// A tree that is a single leaf has no edges at all.  That leaf is assigned
// the one-bit code "0", so that every encoded symbol still costs one bit.
func DeriveCodes(t *Tree) CodeTable {
	assert.Assertf(t != nil, "DeriveCodes: nil Tree")

	ct := CodeTable{codes: make(map[Symbol]Code, t.numLeaves)}
	t.walk(func(id NodeID, path []byte) {
		n := &t.nodes[id]
		if n.kind != leafNode {
			return
		}

		var hc Code
		if len(path) == 0 {
			hc = MakeCode(1, 0)
		} else {
			hc = packPath(path)
		}
		ct.codes[n.symbol] = hc
		ct.observe(hc.size)
	})

	assert.Assertf(len(ct.codes) == t.numLeaves, "derived %d codes for %d leaves", len(ct.codes), t.numLeaves)
	return ct
}

// Lookup returns the Code for symbol.  The second result is false if the
// symbol has no Code.
func (ct CodeTable) Lookup(symbol Symbol) (Code, bool) {
	hc, found := ct.codes[symbol]
	return hc, found
}

// Len returns the number of symbols with a Code.
func (ct CodeTable) Len() int {
	return len(ct.codes)
}

// Symbols returns the symbols with a Code, in ascending order.
func (ct CodeTable) Symbols() []Symbol {
	out := make([]Symbol, 0, len(ct.codes))
	for symbol := range ct.codes {
		out = append(out, symbol)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// MinSize is the bit length of the shortest Code.
func (ct CodeTable) MinSize() int {
	return ct.minSize
}

// MaxSize is the bit length of the longest Code.
func (ct CodeTable) MaxSize() int {
	return ct.maxSize
}

// SizeBySymbol returns the bit length of each symbol's Code, indexed by
// symbol, up to and including the largest symbol in the table.  Symbols
// without a Code have length 0.
func (ct CodeTable) SizeBySymbol() []int {
	var maxSymbol Symbol = InvalidSymbol
	for symbol := range ct.codes {
		if symbol > maxSymbol {
			maxSymbol = symbol
		}
	}
	out := make([]int, int(maxSymbol)+1)
	for symbol, hc := range ct.codes {
		out[symbol] = hc.size
	}
	return out
}

// EncodedBits returns the exact number of bits that encoding an input with
// the given frequencies would produce.  It fails with ErrUnknownSymbol if
// the table lacks a Code for any symbol in ft.
func (ct CodeTable) EncodedBits(ft FrequencyTable) (uint64, error) {
	var total uint64
	for _, symbol := range ft.Symbols() {
		hc, found := ct.codes[symbol]
		if !found {
			return 0, fmt.Errorf("symbol %d: %w", symbol, ErrUnknownSymbol)
		}
		total += ft.Count(symbol) * uint64(hc.size)
	}
	return total, nil
}

// Dump writes a programmer-readable debugging dump of this CodeTable to the
// given writer.
func (ct CodeTable) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("CodeTable{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", ct.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", ct.maxSize)
	for _, symbol := range ct.Symbols() {
		fmt.Fprintf(&buf, "\tLookup(%d) = %s\n", symbol, ct.codes[symbol])
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

func (ct *CodeTable) observe(size int) {
	if len(ct.codes) == 1 || size < ct.minSize {
		ct.minSize = size
	}
	if size > ct.maxSize {
		ct.maxSize = size
	}
}
