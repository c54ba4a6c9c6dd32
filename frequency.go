package huffcoder

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/chronos-tachyon/assert"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FrequencyTable maps each Symbol to the number of times it occurs.
//
// Only symbols with a non-zero count are stored, so Len() is the number of
// distinct symbols observed and Total() is the sum of all counts.  The zero
// value is an empty table ready to use.
//
// Copying a FrequencyTable shares its storage.  Use Clone before mutating a
// copy.
type FrequencyTable struct {
	counts map[Symbol]uint64
	total  uint64
}

// CountFrequencies tallies the occurrences of each Symbol in symbols.  The
// result for an empty input is an empty table.
func CountFrequencies(symbols []Symbol) FrequencyTable {
	var ft FrequencyTable
	for _, symbol := range symbols {
		ft.Add(symbol)
	}
	return ft
}

// CountBytes tallies the occurrences of each byte value in data.
func CountBytes(data []byte) FrequencyTable {
	var counts [256]uint64
	for _, b := range data {
		counts[b]++
	}
	return FrequencyTableFromCounts(counts[:])
}

// FrequencyTableFromCounts builds a table over a fixed-size alphabet, where
// counts[symbol] is the count of symbol.  Entries with a count of 0 are not
// retained.
func FrequencyTableFromCounts(counts []uint64) FrequencyTable {
	assert.Assertf(uint64(len(counts)) <= uint64(MaxSymbol)+1, "len(counts) %d > MaxSymbol+1", len(counts))

	var ft FrequencyTable
	for symbol, count := range counts {
		ft.AddN(Symbol(symbol), count)
	}
	return ft
}

// CountFrequenciesParallel is like CountFrequencies, but splits symbols into
// up to workers chunks which are tallied concurrently and then merged.  The
// result is identical to CountFrequencies(symbols).
func CountFrequenciesParallel(ctx context.Context, symbols []Symbol, workers int) (FrequencyTable, error) {
	if workers < 1 {
		return FrequencyTable{}, fmt.Errorf("invalid worker count %d: must be at least 1", workers)
	}

	chunks := splitChunks(len(symbols), workers)
	partial := make([]FrequencyTable, len(chunks))

	g, ctx := errgroup.WithContext(ctx)
	for index, c := range chunks {
		index, c := index, c
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			partial[index] = CountFrequencies(symbols[c.start:c.end])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return FrequencyTable{}, err
	}

	var ft FrequencyTable
	for _, part := range partial {
		ft.Merge(part)
	}
	return ft, nil
}

// Add records one occurrence of symbol.
func (ft *FrequencyTable) Add(symbol Symbol) {
	ft.AddN(symbol, 1)
}

// AddN records n occurrences of symbol.  Adding 0 occurrences is a no-op.
func (ft *FrequencyTable) AddN(symbol Symbol, n uint64) {
	assert.Assertf(symbol.IsValid(), "invalid symbol %d", symbol)
	if n == 0 {
		return
	}
	if ft.counts == nil {
		ft.counts = make(map[Symbol]uint64)
	}
	ft.counts[symbol] += n
	ft.total += n
}

// Merge adds every count in other to this table.
func (ft *FrequencyTable) Merge(other FrequencyTable) {
	for symbol, count := range other.counts {
		ft.AddN(symbol, count)
	}
}

// Clone returns a deep copy of this table.
func (ft FrequencyTable) Clone() FrequencyTable {
	var out FrequencyTable
	out.Merge(ft)
	return out
}

// Count returns the number of occurrences of symbol, or 0 if it never
// occurred.
func (ft FrequencyTable) Count(symbol Symbol) uint64 {
	return ft.counts[symbol]
}

// Total returns the sum of all counts, i.e. the length of the analyzed
// input.
func (ft FrequencyTable) Total() uint64 {
	return ft.total
}

// Len returns the number of distinct symbols with a non-zero count.
func (ft FrequencyTable) Len() int {
	return len(ft.counts)
}

// Symbols returns the symbols with a non-zero count, in ascending order.
func (ft FrequencyTable) Symbols() []Symbol {
	out := make([]Symbol, 0, len(ft.counts))
	for symbol := range ft.counts {
		out = append(out, symbol)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Equal returns true iff both tables hold the same counts.
func (ft FrequencyTable) Equal(other FrequencyTable) bool {
	if ft.total != other.total || len(ft.counts) != len(other.counts) {
		return false
	}
	for symbol, count := range ft.counts {
		if other.counts[symbol] != count {
			return false
		}
	}
	return true
}

// Dump writes a programmer-readable debugging dump of this table to the
// given writer.  Counts are grouped in the English style; symbols are not.
func (ft FrequencyTable) Dump(w io.Writer) (int64, error) {
	p := message.NewPrinter(language.English)

	var buf bytes.Buffer
	buf.WriteString("FrequencyTable{\n")
	p.Fprintf(&buf, "\tTotal() = %d\n", ft.total)
	p.Fprintf(&buf, "\tLen() = %d\n", len(ft.counts))
	for _, symbol := range ft.Symbols() {
		fmt.Fprintf(&buf, "\tCount(%d) = ", int32(symbol))
		p.Fprintf(&buf, "%d\n", ft.counts[symbol])
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}
