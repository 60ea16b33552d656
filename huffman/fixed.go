package huffman

import "sync"

// NumLitLenSymbols is the size of the literal/length alphabet (0..285 are
// real symbols; 286 and 287 are reserved, see RFC 1951 §3.2.6).
const NumLitLenSymbols = 288

var (
	fixedLitLenOnce sync.Once
	fixedLitLenTree *Tree
)

// FixedLitLenTree returns the process-wide fixed literal/length table
// (RFC 1951 §3.2.6), built once on first use and read-only thereafter.
// Concurrent callers may share it safely: construction happens exactly
// once, behind sync.Once, before any call observes the result.
func FixedLitLenTree() *Tree {
	fixedLitLenOnce.Do(func() {
		lengths := make([]uint8, NumLitLenSymbols)
		for i := 0; i <= 143; i++ {
			lengths[i] = 8
		}
		for i := 144; i <= 255; i++ {
			lengths[i] = 9
		}
		for i := 256; i <= 279; i++ {
			lengths[i] = 7
		}
		for i := 280; i <= 287; i++ {
			lengths[i] = 8
		}
		t, err := Build(lengths)
		if err != nil {
			// The fixed table is a compile-time constant of the format;
			// failure here means Build itself is broken.
			panic("huffman: fixed literal/length table failed to build: " + err.Error())
		}
		fixedLitLenTree = t
	})
	return fixedLitLenTree
}
