package huffcoder

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"strings"
	"testing"
)

func TestCountFrequencies(t *testing.T) {
	ft := CountFrequencies(symbolsOf("aabbbcc"))

	if ft.Total() != 7 {
		t.Errorf("expected Total() 7, got %d", ft.Total())
	}
	if ft.Len() != 3 {
		t.Errorf("expected Len() 3, got %d", ft.Len())
	}
	expectSymbols := []Symbol{'a', 'b', 'c'}
	if actual := ft.Symbols(); !equalSymbols(expectSymbols, actual) {
		t.Errorf("wrong symbols:\n\texpect: %v\n\tactual: %v", expectSymbols, actual)
	}

	type testRow struct {
		sym   Symbol
		count uint64
	}
	testData := [...]testRow{
		{sym: 'a', count: 2},
		{sym: 'b', count: 3},
		{sym: 'c', count: 2},
		{sym: 'd', count: 0},
	}
	for _, row := range testData {
		if actual := ft.Count(row.sym); actual != row.count {
			t.Errorf("Count(%q): expected %d, got %d", rune(row.sym), row.count, actual)
		}
	}
}

func TestCountFrequencies_Empty(t *testing.T) {
	ft := CountFrequencies(nil)
	if ft.Len() != 0 || ft.Total() != 0 {
		t.Errorf("expected empty table, got Len()=%d Total()=%d", ft.Len(), ft.Total())
	}
	if syms := ft.Symbols(); len(syms) != 0 {
		t.Errorf("expected no symbols, got %v", syms)
	}

	tree, err := BuildTree(ft)
	if !errors.Is(err, ErrEmptyAlphabet) {
		t.Errorf("expected ErrEmptyAlphabet, got %v", err)
	}
	if tree != nil {
		t.Errorf("expected nil tree, got %p", tree)
	}
}

func TestCountBytes_Conservation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, size := range []int{0, 1, 17, 4096} {
		data := make([]byte, size)
		rng.Read(data)

		ft := CountBytes(data)
		if ft.Total() != uint64(size) {
			t.Errorf("size %d: expected Total() %d, got %d", size, size, ft.Total())
		}
		var sum uint64
		for _, symbol := range ft.Symbols() {
			count := ft.Count(symbol)
			if count == 0 {
				t.Errorf("size %d: symbol %d stored with count 0", size, symbol)
			}
			sum += count
		}
		if sum != uint64(size) {
			t.Errorf("size %d: counts sum to %d", size, sum)
		}
		if !ft.Equal(CountFrequencies(BytesToSymbols(data))) {
			t.Errorf("size %d: CountBytes disagrees with CountFrequencies", size)
		}
	}
}

func TestFrequencyTableFromCounts(t *testing.T) {
	ft := FrequencyTableFromCounts([]uint64{5, 0, 9, 0, 0, 1})

	expectSymbols := []Symbol{0, 2, 5}
	if actual := ft.Symbols(); !equalSymbols(expectSymbols, actual) {
		t.Errorf("wrong symbols:\n\texpect: %v\n\tactual: %v", expectSymbols, actual)
	}
	if ft.Total() != 15 {
		t.Errorf("expected Total() 15, got %d", ft.Total())
	}
	if ft.Count(1) != 0 {
		t.Errorf("expected Count(1) 0, got %d", ft.Count(1))
	}
}

func TestFrequencyTable_MergeAndClone(t *testing.T) {
	a := CountFrequencies(symbolsOf("abc"))
	b := CountFrequencies(symbolsOf("cdd"))

	c := a.Clone()
	c.Merge(b)

	if !c.Equal(CountFrequencies(symbolsOf("abccdd"))) {
		t.Errorf("Merge produced the wrong table")
	}
	if !a.Equal(CountFrequencies(symbolsOf("abc"))) {
		t.Errorf("Merge into a Clone modified the original")
	}
}

func TestCountFrequenciesParallel(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	symbols := make([]Symbol, 10007)
	for index := range symbols {
		symbols[index] = Symbol(rng.Intn(40))
	}
	expect := CountFrequencies(symbols)

	for _, workers := range []int{1, 2, 3, 8, 20000} {
		actual, err := CountFrequenciesParallel(context.Background(), symbols, workers)
		if err != nil {
			t.Errorf("workers=%d: unexpected error: %v", workers, err)
			continue
		}
		if !expect.Equal(actual) {
			t.Errorf("workers=%d: result differs from CountFrequencies", workers)
		}
	}

	empty, err := CountFrequenciesParallel(context.Background(), nil, 4)
	if err != nil || empty.Len() != 0 {
		t.Errorf("empty input: got Len()=%d err=%v", empty.Len(), err)
	}

	if _, err := CountFrequenciesParallel(context.Background(), symbols, 0); err == nil {
		t.Errorf("workers=0: expected an error")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := CountFrequenciesParallel(ctx, symbols, 4); !errors.Is(err, context.Canceled) {
		t.Errorf("canceled context: expected context.Canceled, got %v", err)
	}
}

func TestFrequencyTable_Dump(t *testing.T) {
	var ft FrequencyTable
	ft.AddN('a', 1500)
	ft.AddN('b', 3)
	ft.AddN('c', 0)
	ft.AddN(1000, 2)

	expectDump := strings.Join([]string{
		"FrequencyTable{\n",
		"\tTotal() = 1,505\n",
		"\tLen() = 3\n",
		"\tCount(97) = 1,500\n",
		"\tCount(98) = 3\n",
		"\tCount(1000) = 2\n",
		"}\n",
	}, "")

	var buf strings.Builder
	_, _ = ft.Dump(&buf)
	actualDump := buf.String()

	if expectDump != actualDump {
		t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", expectDump, actualDump)
	}
}

func TestFrequencyTable_Stats(t *testing.T) {
	ft := CountFrequencies(symbolsOf("aabbbcc"))

	type testRow struct {
		sym   Symbol
		count uint64
	}

	stats := ft.Stats(0)
	expect := [...]testRow{{'a', 2}, {'c', 2}, {'b', 3}}
	if len(stats) != len(expect) {
		t.Fatalf("expected %d stats, got %d", len(expect), len(stats))
	}
	var sum float64
	for index, row := range expect {
		stat := stats[index]
		if stat.Symbol != row.sym || stat.Count != row.count {
			t.Errorf("stats[%d]: expected {%d, %d}, got {%d, %d}", index, row.sym, row.count, stat.Symbol, stat.Count)
		}
		if want := float64(row.count) / 7; math.Abs(stat.Probability-want) > 1e-12 {
			t.Errorf("stats[%d]: expected probability %f, got %f", index, want, stat.Probability)
		}
		sum += stat.Probability
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("probabilities sum to %f, expected 1", sum)
	}

	fixed := CountFrequencies([]Symbol{1, 1, 3}).Stats(4)
	expectFixed := [...]testRow{{0, 0}, {2, 0}, {3, 1}, {1, 2}}
	if len(fixed) != len(expectFixed) {
		t.Fatalf("expected %d fixed stats, got %d", len(expectFixed), len(fixed))
	}
	for index, row := range expectFixed {
		stat := fixed[index]
		if stat.Symbol != row.sym || stat.Count != row.count {
			t.Errorf("fixed[%d]: expected {%d, %d}, got {%d, %d}", index, row.sym, row.count, stat.Symbol, stat.Count)
		}
	}
	if fixed[0].Probability != 0 {
		t.Errorf("expected probability 0 for an absent symbol, got %f", fixed[0].Probability)
	}
}

func TestFrequencyTable_Entropy(t *testing.T) {
	type testRow struct {
		name   string
		input  string
		expect float64
	}
	testData := [...]testRow{
		{"empty", "", 0},
		{"single", "aaaa", 0},
		{"uniform2", "abab", 1},
		{"uniform4", "abcd", 2},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			actual := CountFrequencies(symbolsOf(row.input)).Entropy()
			if math.Abs(actual-row.expect) > 1e-12 {
				t.Errorf("expected %f, got %f", row.expect, actual)
			}
		})
	}
}

func TestFrequencyTable_Stats_AlphabetTooLarge(t *testing.T) {
	numSymbols := int64(MaxSymbol) + 2
	if int64(int(numSymbols)) != numSymbols {
		t.Skip("int cannot hold an alphabet larger than MaxSymbol+1")
	}

	ft := CountFrequencies(symbolsOf("ab"))
	defer func() {
		if recover() == nil {
			t.Errorf("expected Stats(%d) to panic", numSymbols)
		}
	}()
	ft.Stats(int(numSymbols))
}
