package huffcoder

import (
	"fmt"
	"math/big"
	"sort"
)

// CanonicalCodes assigns canonical Huffman codes from a set of bit lengths,
// per the algorithm in RFC 1951 Section 3.2.2.  Symbols with a length of 0
// are omitted.  Codes of equal length are assigned consecutive values in
// ascending symbol order, and shorter codes sort before longer ones.
//
// The lengths must describe a complete prefix code.  A single symbol of
// length 1 is also permitted, as there is no complete code for one symbol.
// Lengths have no fixed maximum, but a complete code for n symbols is never
// deeper than n-1 bits.
//
// Lengths from Canonical() or from any Huffman CodeTable always qualify, so
// a peer only needs SizeBySymbol() to rebuild the same canonical table.
func CanonicalCodes(sizes []int) (CodeTable, error) {
	var numSymbolsWithNonZeroSizes int
	var minSize, maxSize int
	for symbol, size := range sizes {
		if size == 0 {
			continue
		}

		if size < 0 {
			return CodeTable{}, fmt.Errorf("invalid bit length for symbol %d: got %d", symbol, size)
		}

		if numSymbolsWithNonZeroSizes == 0 {
			minSize = size
			maxSize = size
		} else if minSize > size {
			minSize = size
		} else if maxSize < size {
			maxSize = size
		}

		numSymbolsWithNonZeroSizes++
	}

	if numSymbolsWithNonZeroSizes == 0 {
		return CodeTable{}, ErrEmptyAlphabet
	}

	depthLimit := numSymbolsWithNonZeroSizes - 1
	if depthLimit < 1 {
		depthLimit = 1
	}
	if maxSize > depthLimit {
		return CodeTable{}, fmt.Errorf("incomplete Huffman code: length %d is too long for %d symbols", maxSize, numSymbolsWithNonZeroSizes)
	}

	countArray := make([]uint64, maxSize+1)
	for _, size := range sizes {
		if size != 0 {
			countArray[size]++
		}
	}

	nextCodeArray := make([]*big.Int, maxSize+1)
	code := new(big.Int)
	limit := new(big.Int)
	used := new(big.Int)
	for bits := minSize; bits <= maxSize; bits++ {
		code.Add(code, new(big.Int).SetUint64(countArray[bits-1]))
		code.Lsh(code, 1)
		nextCodeArray[bits] = new(big.Int).Set(code)
		limit.Lsh(big.NewInt(1), uint(bits))
		used.Add(code, new(big.Int).SetUint64(countArray[bits]))
		if used.Cmp(limit) > 0 {
			return CodeTable{}, fmt.Errorf("oversubscribed Huffman code: too many codes of length %d", bits)
		}
	}
	code.Add(code, new(big.Int).SetUint64(countArray[maxSize]))

	// permit degenerate code with 1 symbol
	// forbid all other incomplete codes
	limit.Lsh(big.NewInt(1), uint(maxSize))
	if code.IsUint64() && code.Uint64() == 1 && maxSize == 1 {
		// pass
	} else if code.Cmp(limit) != 0 {
		return CodeTable{}, fmt.Errorf("incomplete Huffman code: expected %d, got %d", limit, code)
	}

	sorted := make(bySize, 0, numSymbolsWithNonZeroSizes)
	for symbol, size := range sizes {
		if size != 0 {
			sorted = append(sorted, symbolAndSize{Symbol(symbol), size})
		}
	}
	sorted.Sort()

	one := big.NewInt(1)
	ct := CodeTable{codes: make(map[Symbol]Code, len(sorted))}
	for _, item := range sorted {
		next := nextCodeArray[item.size]
		hc := codeFromInt(item.size, next)
		next.Add(next, one)
		ct.codes[item.symbol] = hc
		ct.observe(hc.size)
	}
	return ct, nil
}

// codeFromInt is like MakeCode, but takes its value from an arbitrarily
// large integer.
func codeFromInt(size int, value *big.Int) Code {
	path := make([]byte, size)
	for index := 0; index < size; index++ {
		path[index] = byte(value.Bit(size - 1 - index))
	}
	return packPath(path)
}

// Canonical returns the canonical CodeTable with the same code lengths as
// this one.  Encoded output keeps its length but not its bits, so data
// encoded with the canonical table must be decoded with TreeFromCodes.
func (ct CodeTable) Canonical() (CodeTable, error) {
	return CanonicalCodes(ct.SizeBySymbol())
}

// TreeFromCodes builds a decoding Tree from any prefix-free CodeTable.
//
// Unlike BuildTree, the result need not be full: edges that no code uses are
// left missing, and Decode reports ErrCorruptStream if a bit selects one.
// Leaves carry a frequency of 0, since a CodeTable records none.
func TreeFromCodes(ct CodeTable) (*Tree, error) {
	symbols := ct.Symbols()
	if len(symbols) == 0 {
		return nil, ErrEmptyAlphabet
	}

	t := &Tree{numLeaves: len(symbols)}
	t.root = t.addNode(node{kind: internalNode, symbol: InvalidSymbol, left: NoNode, right: NoNode})

	for _, symbol := range symbols {
		hc := ct.codes[symbol]
		if hc.size == 0 {
			return nil, fmt.Errorf("symbol %d has an empty code", symbol)
		}

		cur := t.root
		for index := 0; index < hc.size; index++ {
			bit := hc.Bit(index)
			child := t.child(cur, bit)
			last := index == hc.size-1

			switch {
			case child != NoNode && t.nodes[child].kind == leafNode:
				return nil, fmt.Errorf("code %s for symbol %d extends the code of symbol %d", hc, symbol, t.nodes[child].symbol)

			case child != NoNode && last:
				return nil, fmt.Errorf("code %s for symbol %d is a prefix of another code", hc, symbol)

			case last:
				id := t.addNode(node{kind: leafNode, symbol: symbol, left: NoNode, right: NoNode})
				t.setChild(cur, bit, id)

			case child == NoNode:
				id := t.addNode(node{kind: internalNode, symbol: InvalidSymbol, left: NoNode, right: NoNode})
				t.setChild(cur, bit, id)
				cur = id

			default:
				cur = child
			}
		}
	}
	return t, nil
}

func (t *Tree) child(id NodeID, bit byte) NodeID {
	if bit == 0 {
		return t.nodes[id].left
	}
	return t.nodes[id].right
}

func (t *Tree) setChild(id NodeID, bit byte, child NodeID) {
	if bit == 0 {
		t.nodes[id].left = child
	} else {
		t.nodes[id].right = child
	}
}

// type symbolAndSize + type bySize {{{

type symbolAndSize struct {
	symbol Symbol
	size   int
}

type bySize []symbolAndSize

func (list bySize) Len() int {
	return len(list)
}

func (list bySize) Swap(i, j int) {
	list[i], list[j] = list[j], list[i]
}

func (list bySize) Less(i, j int) bool {
	a, b := list[i], list[j]
	if a.size != b.size {
		return a.size < b.size
	}
	return a.symbol < b.symbol
}

func (list bySize) Sort() {
	sort.Sort(list)
}

var _ sort.Interface = bySize(nil)

// }}}
