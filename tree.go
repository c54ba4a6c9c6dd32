package huffcoder

import (
	"bytes"
	"container/heap"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/chronos-tachyon/assert"
)

// NodeID identifies a node within one Tree.
type NodeID int32

// NoNode is the NodeID of a missing child.
const NoNode = NodeID(-1)

// Tree is a Huffman code tree.  Leaves hold symbols; internal nodes hold
// the sum of their children's frequencies.  Trees from BuildTree are full,
// i.e. every internal node has exactly two children.
//
// Nodes are stored in an arena and addressed by NodeID.  A Tree is never
// modified once constructed, so it is safe for concurrent use.
type Tree struct {
	nodes     []node
	root      NodeID
	numLeaves int
}

// NodeInfo is a read-only view of one node in a Tree.
type NodeInfo struct {
	ID   NodeID
	Leaf bool

	// Symbol is InvalidSymbol for internal nodes.
	Symbol Symbol

	Freq uint64

	// Left and Right are NoNode for leaves.
	Left  NodeID
	Right NodeID
}

type nodeKind uint8

const (
	leafNode nodeKind = iota + 1
	internalNode
)

type node struct {
	kind   nodeKind
	symbol Symbol
	freq   uint64
	left   NodeID
	right  NodeID
}

// BuildTree constructs the Huffman tree for the given frequencies by
// repeatedly merging the two lowest-frequency nodes.
//
// Ties are broken by an order key: a leaf's key is its symbol, and the k'th
// internal node created has key MaxSymbol+1+k.  Of the two nodes taken in
// each step, the first becomes the left child.
//
// A table with exactly one symbol yields a Tree whose root is that leaf.  An
// empty table fails with ErrEmptyAlphabet.
func BuildTree(ft FrequencyTable) (*Tree, error) {
	symbols := ft.Symbols()
	numLeaves := len(symbols)
	if numLeaves == 0 {
		return nil, ErrEmptyAlphabet
	}

	t := &Tree{
		nodes:     make([]node, 0, 2*numLeaves-1),
		numLeaves: numLeaves,
	}

	// Step 1: one leaf per symbol, in ascending symbol order.

	items := make([]nodeAndFreq, 0, numLeaves)
	for _, symbol := range symbols {
		freq := ft.Count(symbol)
		id := t.addNode(node{kind: leafNode, symbol: symbol, freq: freq, left: NoNode, right: NoNode})
		items = append(items, nodeAndFreq{id: id, freq: freq, order: uint64(symbol)})
	}

	// A single leaf is the whole tree; there is nothing to merge.
	if numLeaves == 1 {
		t.root = items[0].id
		return t, nil
	}

	// Step 2: build a minheap and merge until one node remains.

	h := freqHeap{items}
	h.Init()

	nextOrder := uint64(MaxSymbol) + 1
	for h.Len() > 1 {
		a := heap.Pop(&h).(nodeAndFreq)
		b := heap.Pop(&h).(nodeAndFreq)

		// Compute freqSum using saturating addition
		freqSum := a.freq + b.freq
		if freqSum < a.freq {
			freqSum = math.MaxUint64
		}

		id := t.addNode(node{kind: internalNode, symbol: InvalidSymbol, freq: freqSum, left: a.id, right: b.id})
		heap.Push(&h, nodeAndFreq{id: id, freq: freqSum, order: nextOrder})
		nextOrder++
	}

	t.root = heap.Pop(&h).(nodeAndFreq).id
	assert.Assertf(len(t.nodes) == 2*numLeaves-1, "tree has %d nodes for %d leaves", len(t.nodes), numLeaves)
	return t, nil
}

// Root returns the NodeID of the root node.
func (t *Tree) Root() NodeID {
	return t.root
}

// Len returns the total number of nodes.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// NumLeaves returns the number of leaves, which is the number of distinct
// symbols.
func (t *Tree) NumLeaves() int {
	return t.numLeaves
}

// Freq returns the frequency of the root, which is the total of all symbol
// frequencies (saturated at math.MaxUint64).
func (t *Tree) Freq() uint64 {
	return t.nodes[t.root].freq
}

// Node returns a view of the node with the given NodeID.
func (t *Tree) Node(id NodeID) NodeInfo {
	assert.Assertf(id >= 0 && int(id) < len(t.nodes), "NodeID %d out of range [0, %d)", id, len(t.nodes))
	n := t.nodes[id]
	return NodeInfo{
		ID:     id,
		Leaf:   n.kind == leafNode,
		Symbol: n.symbol,
		Freq:   n.freq,
		Left:   n.left,
		Right:  n.right,
	}
}

// Leaves returns the leaf symbols in left-to-right order.
func (t *Tree) Leaves() []Symbol {
	out := make([]Symbol, 0, t.numLeaves)
	t.walk(func(id NodeID, path []byte) {
		if n := &t.nodes[id]; n.kind == leafNode {
			out = append(out, n.symbol)
		}
	})
	return out
}

// Depth returns the length of the longest root-to-leaf path.  A single-leaf
// tree has depth 0.
func (t *Tree) Depth() int {
	var depth int
	t.walk(func(id NodeID, path []byte) {
		if len(path) > depth {
			depth = len(path)
		}
	})
	return depth
}

// Dump writes a programmer-readable debugging dump of this Tree to the given
// writer.  Each node is listed in pre-order with the path that reaches it.
func (t *Tree) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Tree{\n")
	fmt.Fprintf(&buf, "\tLen() = %d\n", len(t.nodes))
	fmt.Fprintf(&buf, "\tNumLeaves() = %d\n", t.numLeaves)
	t.walk(func(id NodeID, path []byte) {
		n := &t.nodes[id]
		label := strconv.Quote(packPath(path).Digits())
		if n.kind == leafNode {
			fmt.Fprintf(&buf, "\t%s = leaf{%d, %d}\n", label, n.symbol, n.freq)
		} else {
			fmt.Fprintf(&buf, "\t%s = internal{%d}\n", label, n.freq)
		}
	})
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

func (t *Tree) addNode(n node) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, n)
	return id
}

// walk visits every node in pre-order, left before right, passing the path
// of 0/1 values that leads from the root to that node.  The path slice is
// reused between calls.
//
// We use an explicit stack instead of recursion: a skewed tree over a large
// alphabet can be arbitrarily deep.
func (t *Tree) walk(fn func(id NodeID, path []byte)) {
	type stackItem struct {
		id    NodeID
		depth int
		bit   byte
	}

	hint := log2uint64(uint64(t.numLeaves)) + 1
	stack := make([]stackItem, 0, 2*hint)
	path := make([]byte, 0, hint)

	stack = append(stack, stackItem{id: t.root})
	for len(stack) != 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		// Every node deeper than top.depth-1 that we visited earlier
		// belongs to an already-finished subtree, so path[:top.depth-1]
		// is still the path to top's parent.
		if top.depth == 0 {
			path = path[:0]
		} else {
			path = append(path[:top.depth-1], top.bit)
		}

		fn(top.id, path)

		n := &t.nodes[top.id]
		if n.kind == internalNode {
			if n.right != NoNode {
				stack = append(stack, stackItem{id: n.right, depth: top.depth + 1, bit: 1})
			}
			if n.left != NoNode {
				stack = append(stack, stackItem{id: n.left, depth: top.depth + 1, bit: 0})
			}
		}
	}
}

// type nodeAndFreq + type freqHeap {{{

type nodeAndFreq struct {
	id    NodeID
	freq  uint64
	order uint64
}

type freqHeap struct {
	list []nodeAndFreq
}

func (h *freqHeap) Init() {
	heap.Init(h)
}

func (h *freqHeap) Len() int {
	return len(h.list)
}

func (h *freqHeap) Swap(i, j int) {
	h.list[i], h.list[j] = h.list[j], h.list[i]
}

func (h *freqHeap) Less(i, j int) bool {
	a, b := h.list[i], h.list[j]
	if a.freq != b.freq {
		return a.freq < b.freq
	}
	return a.order < b.order
}

func (h *freqHeap) Push(x interface{}) {
	h.list = append(h.list, x.(nodeAndFreq))
}

func (h *freqHeap) Pop() interface{} {
	last := uint(len(h.list)) - 1
	x := h.list[last]
	h.list = h.list[:last]
	return x
}

var _ heap.Interface = (*freqHeap)(nil)

// }}}
