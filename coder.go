package huffcoder

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/chronos-tachyon/assert"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Coder bundles the Tree and CodeTable built from one FrequencyTable.  It is
// immutable, so one Coder may encode and decode from many goroutines at
// once.
type Coder struct {
	freqs FrequencyTable
	tree  *Tree
	codes CodeTable
}

// NewCoder builds the Huffman code for the given frequencies.  It fails with
// ErrEmptyAlphabet if the table is empty.
func NewCoder(ft FrequencyTable) (*Coder, error) {
	tree, err := BuildTree(ft)
	if err != nil {
		return nil, err
	}
	return &Coder{
		freqs: ft.Clone(),
		tree:  tree,
		codes: DeriveCodes(tree),
	}, nil
}

// Train builds a Coder from the symbol frequencies of symbols.
func Train(symbols []Symbol) (*Coder, error) {
	return NewCoder(CountFrequencies(symbols))
}

// TrainBytes builds a Coder from the byte frequencies of data.
func TrainBytes(data []byte) (*Coder, error) {
	return NewCoder(CountBytes(data))
}

// Frequencies returns the table this Coder was built from.  The caller must
// not modify it.
func (c *Coder) Frequencies() FrequencyTable {
	return c.freqs
}

// Tree returns the Huffman tree.
func (c *Coder) Tree() *Tree {
	return c.tree
}

// Codes returns the code table.
func (c *Coder) Codes() CodeTable {
	return c.codes
}

// Encode is Encode(symbols, c.Codes()).
func (c *Coder) Encode(symbols []Symbol) (Bits, error) {
	return Encode(symbols, c.codes)
}

// EncodeBytes is EncodeBytes(data, c.Codes()).
func (c *Coder) EncodeBytes(data []byte) (Bits, error) {
	return EncodeBytes(data, c.codes)
}

// EncodeParallel is EncodeParallel(ctx, symbols, c.Codes(), workers).
func (c *Coder) EncodeParallel(ctx context.Context, symbols []Symbol, workers int) (Bits, error) {
	return EncodeParallel(ctx, symbols, c.codes, workers)
}

// Decode is Decode(bits, c.Tree()).
func (c *Coder) Decode(bits Bits) ([]Symbol, error) {
	return Decode(bits, c.tree)
}

// DecodeBytes is DecodeBytes(bits, c.Tree()).
func (c *Coder) DecodeBytes(bits Bits) ([]byte, error) {
	return DecodeBytes(bits, c.tree)
}

// Dump writes a human-readable table of every symbol's count, probability,
// and code, followed by the total payload size, to the given writer.
func (c *Coder) Dump(w io.Writer) (int64, error) {
	p := message.NewPrinter(language.English)

	var buf bytes.Buffer
	buf.WriteString("Coder{\n")
	for _, stat := range c.freqs.Stats(0) {
		hc := c.codes.codes[stat.Symbol]
		fmt.Fprintf(&buf, "\tSymbol(%d): ", int32(stat.Symbol))
		p.Fprintf(&buf, "count=%d p=%.4f code=%s\n", stat.Count, stat.Probability, hc)
	}
	size, err := c.codes.EncodedBits(c.freqs)
	assert.Assertf(err == nil, "EncodedBits failed for the table the codes were built from: %v", err)
	p.Fprintf(&buf, "\tEntropy() = %.4f\n", c.freqs.Entropy())
	p.Fprintf(&buf, "\tEncodedBits() = %d\n", size)
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}
