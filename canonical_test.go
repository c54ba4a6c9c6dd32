package huffcoder

import (
	"errors"
	"strings"
	"testing"
)

func TestCanonicalCodes(t *testing.T) {
	codes, err := CanonicalCodes([]int{4, 4, 3, 3, 3, 1})
	if err != nil {
		t.Fatalf("CanonicalCodes failed: %v", err)
	}

	expectDump := strings.Join([]string{
		"CodeTable{\n",
		"\tMinSize() = 1\n",
		"\tMaxSize() = 4\n",
		"\tLookup(0) = \"1110\"\n",
		"\tLookup(1) = \"1111\"\n",
		"\tLookup(2) = \"100\"\n",
		"\tLookup(3) = \"101\"\n",
		"\tLookup(4) = \"110\"\n",
		"\tLookup(5) = \"0\"\n",
		"}\n",
	}, "")

	var buf strings.Builder
	_, _ = codes.Dump(&buf)
	actualDump := buf.String()

	if expectDump != actualDump {
		t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", expectDump, actualDump)
	}
}

func TestCanonicalCodes_Invalid(t *testing.T) {
	type testRow struct {
		name  string
		sizes []int
	}

	testData := [...]testRow{
		{"oversubscribed", []int{1, 1, 1}},
		{"incomplete", []int{1, 2}},
		{"lone-long-code", []int{0, 2}},
		{"negative", []int{1, -1}},
		{"too-long", []int{1, 5}},
		{"deeper-than-alphabet", []int{1, 2, 3, 3, 70}},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			if _, err := CanonicalCodes(row.sizes); err == nil {
				t.Errorf("expected an error for sizes %v", row.sizes)
			}
		})
	}

	if _, err := CanonicalCodes([]int{0, 0}); !errors.Is(err, ErrEmptyAlphabet) {
		t.Errorf("expected ErrEmptyAlphabet, got %v", err)
	}
}

func TestCodeTable_Canonical_RoundTrip(t *testing.T) {
	input := symbolsOf("this is an example of a huffman tree")
	ft := CountFrequencies(input)
	codes := DeriveCodes(mustBuildTree(t, ft))

	canonical, err := codes.Canonical()
	if err != nil {
		t.Fatalf("Canonical failed: %v", err)
	}
	if canonical.Len() != codes.Len() {
		t.Fatalf("expected %d codes, got %d", codes.Len(), canonical.Len())
	}
	for _, symbol := range codes.Symbols() {
		a, _ := codes.Lookup(symbol)
		b, found := canonical.Lookup(symbol)
		if !found || a.Size() != b.Size() {
			t.Errorf("symbol %d: size %d became %d", symbol, a.Size(), b.Size())
		}
	}

	bits, err := Encode(input, canonical)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	expectSize, _ := codes.EncodedBits(ft)
	if bits.Len() != expectSize {
		t.Errorf("expected %d bits, got %d", expectSize, bits.Len())
	}

	tree, err := TreeFromCodes(canonical)
	if err != nil {
		t.Fatalf("TreeFromCodes failed: %v", err)
	}
	decoded, err := Decode(bits, tree)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !equalSymbols(input, decoded) {
		t.Errorf("round trip mismatch")
	}

	rederived := DeriveCodes(tree)
	for _, symbol := range canonical.Symbols() {
		a, _ := canonical.Lookup(symbol)
		b, _ := rederived.Lookup(symbol)
		if !a.Equal(b) {
			t.Errorf("symbol %d: tree path %s differs from code %s", symbol, b, a)
		}
	}
}

func TestTreeFromCodes_Incomplete(t *testing.T) {
	sizes := make([]int, 'a'+1)
	sizes['a'] = 1
	codes, err := CanonicalCodes(sizes)
	if err != nil {
		t.Fatalf("CanonicalCodes failed: %v", err)
	}

	tree, err := TreeFromCodes(codes)
	if err != nil {
		t.Fatalf("TreeFromCodes failed: %v", err)
	}

	decoded, err := Decode(mustParseBits(t, "000"), tree)
	if err != nil {
		t.Errorf("Decode failed: %v", err)
	} else if string(mustBytes(t, decoded)) != "aaa" {
		t.Errorf("expected \"aaa\", got %v", decoded)
	}

	_, err = Decode(mustParseBits(t, "01"), tree)
	if !errors.Is(err, ErrCorruptStream) {
		t.Errorf("expected ErrCorruptStream, got %v", err)
	}
}

func TestTreeFromCodes_Conflict(t *testing.T) {
	type testRow struct {
		name  string
		codes map[Symbol]string
	}

	testData := [...]testRow{
		{"prefix", map[Symbol]string{1: "0", 2: "01"}},
		{"extends", map[Symbol]string{1: "01", 2: "0"}},
		{"duplicate", map[Symbol]string{1: "10", 2: "10"}},
		{"empty", map[Symbol]string{1: ""}},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			ct := CodeTable{codes: make(map[Symbol]Code, len(row.codes))}
			for symbol, str := range row.codes {
				hc, err := ParseCode(str)
				if err != nil {
					t.Fatalf("ParseCode(%q) failed: %v", str, err)
				}
				ct.codes[symbol] = hc
			}
			if _, err := TreeFromCodes(ct); err == nil {
				t.Errorf("expected an error for codes %v", row.codes)
			}
		})
	}

	if _, err := TreeFromCodes(CodeTable{}); !errors.Is(err, ErrEmptyAlphabet) {
		t.Errorf("expected ErrEmptyAlphabet, got %v", err)
	}
}

func mustBytes(t *testing.T, symbols []Symbol) []byte {
	t.Helper()
	out, err := SymbolsToBytes(symbols)
	if err != nil {
		t.Fatalf("SymbolsToBytes failed: %v", err)
	}
	return out
}
