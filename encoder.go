package huffcoder

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/chronos-tachyon/assert"
	"github.com/icza/bitio"
	"golang.org/x/sync/errgroup"
)

// Encoder writes the Huffman codes for a stream of symbols to an io.Writer,
// packed most-significant-bit first.
//
// The output is not framed: the caller must record the bit length returned
// by Close if it needs to decode the stream later.
type Encoder struct {
	w      *bitio.CountWriter
	codes  CodeTable
	count  int64
	size   uint64
	closed bool
}

// NewEncoder returns an Encoder that writes to w using the given codes.  The
// Encoder must be closed to flush its final partial byte.
func NewEncoder(w io.Writer, codes CodeTable) *Encoder {
	return &Encoder{w: bitio.NewCountWriter(w), codes: codes}
}

// WriteSymbols encodes each symbol in order.
//
// If a symbol has no Code, WriteSymbols stops there and returns an
// *UnknownSymbolError; the symbols before it have already been written.
func (e *Encoder) WriteSymbols(symbols []Symbol) error {
	assert.Assertf(!e.closed, "WriteSymbols called on closed Encoder")
	for index, symbol := range symbols {
		if err := e.writeSymbol(symbol); err != nil {
			return e.wrap(err, symbol, index)
		}
	}
	return nil
}

// WriteBytes encodes each byte of data as a Symbol, in order.
func (e *Encoder) WriteBytes(data []byte) error {
	assert.Assertf(!e.closed, "WriteBytes called on closed Encoder")
	for index, b := range data {
		if err := e.writeSymbol(Symbol(b)); err != nil {
			return e.wrap(err, Symbol(b), index)
		}
	}
	return nil
}

// Count returns the number of symbols encoded so far.
func (e *Encoder) Count() int64 {
	return e.count
}

// BitsWritten returns the number of payload bits encoded so far, not
// counting the padding that Close adds.  After Close it keeps returning the
// value that Close returned.
func (e *Encoder) BitsWritten() uint64 {
	if e.closed {
		return e.size
	}
	return uint64(e.w.BitsCount)
}

// Close pads the output to a byte boundary with zero bits and flushes it.
// It returns the number of payload bits written, excluding the padding.
// Close does not close the underlying io.Writer.
func (e *Encoder) Close() (uint64, error) {
	assert.Assertf(!e.closed, "Close called twice on Encoder")
	size := uint64(e.w.BitsCount)
	e.size = size
	e.closed = true
	if err := e.w.Close(); err != nil {
		return size, err
	}
	return size, nil
}

func (e *Encoder) writeSymbol(symbol Symbol) error {
	hc, found := e.codes.codes[symbol]
	if !found {
		return ErrUnknownSymbol
	}
	if err := hc.writeTo(e.w); err != nil {
		return err
	}
	e.count++
	return nil
}

func (e *Encoder) wrap(err error, symbol Symbol, index int) error {
	if err == ErrUnknownSymbol {
		return &UnknownSymbolError{Symbol: symbol, Index: e.count}
	}
	return fmt.Errorf("writing symbol at index %d: %w", index, err)
}

// Encode returns the concatenation of the Codes for each symbol in order.
// It fails with ErrUnknownSymbol if any symbol lacks a Code.
func Encode(symbols []Symbol, codes CodeTable) (Bits, error) {
	var buf bytes.Buffer
	e := NewEncoder(&buf, codes)
	if err := e.WriteSymbols(symbols); err != nil {
		return Bits{}, err
	}
	size, err := e.Close()
	if err != nil {
		return Bits{}, err
	}
	return Bits{data: buf.Bytes(), size: size}, nil
}

// EncodeBytes is like Encode, treating each byte of data as a Symbol.
func EncodeBytes(data []byte, codes CodeTable) (Bits, error) {
	var buf bytes.Buffer
	e := NewEncoder(&buf, codes)
	if err := e.WriteBytes(data); err != nil {
		return Bits{}, err
	}
	size, err := e.Close()
	if err != nil {
		return Bits{}, err
	}
	return Bits{data: buf.Bytes(), size: size}, nil
}

// EncodeParallel is like Encode, but encodes up to workers chunks of
// symbols concurrently and joins them.  The output is identical to
// Encode(symbols, codes).
func EncodeParallel(ctx context.Context, symbols []Symbol, codes CodeTable, workers int) (Bits, error) {
	if workers < 1 {
		return Bits{}, fmt.Errorf("invalid worker count %d: must be at least 1", workers)
	}

	chunks := splitChunks(len(symbols), workers)
	partial := make([]Bits, len(chunks))

	g, ctx := errgroup.WithContext(ctx)
	for index, c := range chunks {
		index, c := index, c
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			bits, err := Encode(symbols[c.start:c.end], codes)
			if err != nil {
				if use, ok := err.(*UnknownSymbolError); ok {
					use.Index += int64(c.start)
				}
				return err
			}
			partial[index] = bits
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Bits{}, err
	}

	var out Bits
	for _, bits := range partial {
		out = out.Append(bits)
	}
	return out, nil
}
