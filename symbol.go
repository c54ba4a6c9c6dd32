package huffcoder

import (
	"fmt"
	"math"
)

// Symbol represents a symbol in an arbitrary alphabet.  Negative symbols are
// not valid.  Byte-oriented callers use the values 0 through 255.
type Symbol int32

// MaxSymbol is the maximum valid symbol.
const MaxSymbol = Symbol(math.MaxInt32)

// MaxByteSymbol is the largest symbol that fits in a byte.
const MaxByteSymbol = Symbol(math.MaxUint8)

// InvalidSymbol is returned by some functions to clearly indicate that no
// symbol is being returned.
const InvalidSymbol = Symbol(-1)

// IsValid returns true iff this Symbol is in the range [0, MaxSymbol].
func (s Symbol) IsValid() bool {
	return s >= 0
}

// BytesToSymbols widens each byte of data into a Symbol.
func BytesToSymbols(data []byte) []Symbol {
	out := make([]Symbol, len(data))
	for index, b := range data {
		out[index] = Symbol(b)
	}
	return out
}

// SymbolsToBytes narrows each Symbol into a byte.  It fails if any symbol
// lies outside [0, MaxByteSymbol].
func SymbolsToBytes(symbols []Symbol) ([]byte, error) {
	out := make([]byte, len(symbols))
	for index, symbol := range symbols {
		if symbol < 0 || symbol > MaxByteSymbol {
			return nil, fmt.Errorf("symbol %d at index %d does not fit in a byte", symbol, index)
		}
		out[index] = byte(symbol)
	}
	return out, nil
}
