package huffman

import (
	"errors"

	"github.com/pvigilev/zipper/bitreader"
)

// ErrUnknownSymbol is returned when a bit path walks into Undef: the
// stream selected a child that the tree never assigned (a malformed
// table or a corrupt bitstream).
var ErrUnknownSymbol = errors.New("huffman: unknown symbol")

// DFA is a decode automaton over a Tree: it consumes one bit at a time,
// transitioning to the selected child, until it lands on a leaf (Accepted)
// or falls into Undef (not OK). The first bit consumed corresponds to the
// most-significant bit of the canonical code — DEFLATE transmits Huffman
// codes MSB-first even though its multi-bit integer fields are LSB-first;
// see bitreader for the other half of that asymmetry.
type DFA struct {
	tree *Tree
	cur  uint32
}

// NewDFA returns a DFA positioned at tree's root.
func NewDFA(tree *Tree) *DFA {
	return &DFA{tree: tree, cur: tree.root}
}

// OK reports whether the automaton has not walked into Undef.
func (d *DFA) OK() bool {
	return d.cur != Undef
}

// Accepted reports whether the current node is a leaf (a decoded symbol).
func (d *DFA) Accepted() bool {
	return d.cur < d.tree.numSymbols
}

// Consume transitions to child[bit] of the current node. It is a no-op
// once the automaton is no longer OK.
func (d *DFA) Consume(bit bool) {
	if !d.OK() {
		return
	}
	idx := uint32(0)
	if bit {
		idx = 1
	}
	d.cur = d.tree.Child(d.cur, idx)
}

// Reset returns the automaton to the tree's root.
func (d *DFA) Reset() {
	d.cur = d.tree.root
}

// Value returns the decoded symbol and true if Accepted, or (Undef, false)
// otherwise.
func (d *DFA) Value() (uint32, bool) {
	if d.Accepted() {
		return d.cur, true
	}
	return Undef, false
}

// DecodeSymbol walks r bit by bit over tree until a leaf is reached
// (success), a transition into Undef occurs (ErrUnknownSymbol), or r runs
// out of bits (bitreader.ErrEndOfBuffer). It returns the decoded symbol and
// the number of bits consumed.
func DecodeSymbol(r *bitreader.Reader, tree *Tree) (symbol uint32, bitsConsumed uint, err error) {
	d := NewDFA(tree)
	var n uint
	for d.OK() && !d.Accepted() && !r.EOB() {
		bit, bitErr := r.ReadBit()
		if bitErr != nil {
			return 0, n, bitErr
		}
		d.Consume(bit)
		n++
	}
	if !d.OK() {
		return 0, n, ErrUnknownSymbol
	}
	if !d.Accepted() {
		return 0, n, bitreader.ErrEndOfBuffer
	}
	v, _ := d.Value()
	return v, n, nil
}
