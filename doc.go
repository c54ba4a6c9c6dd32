// Package huffcoder implements a symbol-frequency compressor built on
// Huffman codes.
//
// The pipeline runs strictly forward:
//
//     CountFrequencies → BuildTree → DeriveCodes → Encode
//                                 ↘                Decode
//
// The Tree produced by BuildTree is shared by DeriveCodes and Decode and is
// never mutated afterwards, so a Tree, a CodeTable, or a Coder may be used
// from any number of goroutines at once.
//
// Ties between equal frequencies are broken deterministically: leaves before
// internal nodes, leaves by ascending symbol, internal nodes by creation
// order.  The first node taken becomes the left ("0") child.
//
// References:
//
//     <https://en.wikipedia.org/wiki/Huffman_coding>
//
package huffcoder
