package huffcoder

import (
	"testing"
)

func symbolsOf(str string) []Symbol {
	return BytesToSymbols([]byte(str))
}

func mustParseBits(t *testing.T, str string) Bits {
	t.Helper()
	bits, err := ParseBits(str)
	if err != nil {
		t.Fatalf("ParseBits(%q) failed: %v", str, err)
	}
	return bits
}

func mustBuildTree(t *testing.T, ft FrequencyTable) *Tree {
	t.Helper()
	tree, err := BuildTree(ft)
	if err != nil {
		t.Fatalf("BuildTree failed: %v", err)
	}
	return tree
}

func equalSymbols(a, b []Symbol) bool {
	if len(a) != len(b) {
		return false
	}
	for index := range a {
		if a[index] != b[index] {
			return false
		}
	}
	return true
}
