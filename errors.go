package huffcoder

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyAlphabet is returned when a tree is requested for a
	// FrequencyTable with no symbols.
	ErrEmptyAlphabet = errors.New("empty alphabet: cannot build a Huffman tree without symbols")

	// ErrUnknownSymbol is returned when the input to an encoder contains a
	// symbol that has no entry in the CodeTable.
	ErrUnknownSymbol = errors.New("unknown symbol: no code assigned")

	// ErrTruncatedInput is returned when a bit sequence ends in the middle
	// of a code.
	ErrTruncatedInput = errors.New("truncated input: bit sequence ends inside a code")

	// ErrCorruptStream is returned when a bit sequence selects a tree edge
	// that does not exist.
	ErrCorruptStream = errors.New("corrupt stream: bit selects a missing tree edge")
)

// UnknownSymbolError reports which symbol could not be encoded, and where.
type UnknownSymbolError struct {
	Symbol Symbol
	Index  int64
}

// Error fulfills the error interface.
func (err *UnknownSymbolError) Error() string {
	return fmt.Sprintf("unknown symbol %d at index %d: no code assigned", err.Symbol, err.Index)
}

// Is returns true for ErrUnknownSymbol.
func (err *UnknownSymbolError) Is(target error) bool {
	return target == ErrUnknownSymbol
}

var _ error = (*UnknownSymbolError)(nil)

// DecodeError reports the position at which decoding failed.  Err is either
// ErrTruncatedInput or ErrCorruptStream.
type DecodeError struct {
	Err error

	// BitOffset is the offset of the bit that failed to decode, or the
	// total bit length for ErrTruncatedInput.
	BitOffset uint64

	// Decoded is the number of symbols emitted before the failure.
	Decoded int
}

// Error fulfills the error interface.
func (err *DecodeError) Error() string {
	return fmt.Sprintf("decode failed at bit %d after %d symbols: %v", err.BitOffset, err.Decoded, err.Err)
}

// Unwrap returns the underlying sentinel.
func (err *DecodeError) Unwrap() error {
	return err.Err
}

var _ error = (*DecodeError)(nil)
