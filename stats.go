package huffcoder

import (
	"math"
	"sort"

	"github.com/chronos-tachyon/assert"
)

// SymbolStat describes how often one Symbol occurs.
type SymbolStat struct {
	Symbol      Symbol
	Count       uint64
	Probability float64
}

// Stats returns per-symbol statistics, sorted by ascending probability and
// then by ascending symbol.
//
// If numSymbols is positive, the statistics cover the fixed alphabet
// [0, numSymbols) and include symbols with a count of 0; symbols outside
// that range are omitted.  Otherwise only observed symbols are reported.
// numSymbols must not exceed MaxSymbol+1.
//
// Probabilities are 0 for an empty table.
func (ft FrequencyTable) Stats(numSymbols int) []SymbolStat {
	var out []SymbolStat
	if numSymbols > 0 {
		assert.Assertf(uint64(numSymbols) <= uint64(MaxSymbol)+1, "numSymbols %d > MaxSymbol+1", numSymbols)
		out = make([]SymbolStat, 0, numSymbols)
		for index := 0; index < numSymbols; index++ {
			out = append(out, ft.stat(Symbol(index)))
		}
	} else {
		out = make([]SymbolStat, 0, len(ft.counts))
		for symbol := range ft.counts {
			out = append(out, ft.stat(symbol))
		}
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Count != b.Count {
			return a.Count < b.Count
		}
		return a.Symbol < b.Symbol
	})
	return out
}

// Entropy returns the Shannon entropy of the distribution, in bits per
// symbol.  It is a lower bound on the average code length of any prefix
// code for this table.
func (ft FrequencyTable) Entropy() float64 {
	if ft.total == 0 {
		return 0
	}
	total := float64(ft.total)
	var sum float64
	for _, count := range ft.counts {
		p := float64(count) / total
		sum -= p * math.Log2(p)
	}
	return sum
}

func (ft FrequencyTable) stat(symbol Symbol) SymbolStat {
	count := ft.counts[symbol]
	var probability float64
	if ft.total != 0 {
		probability = float64(count) / float64(ft.total)
	}
	return SymbolStat{Symbol: symbol, Count: count, Probability: probability}
}
