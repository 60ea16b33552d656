package deflate

import (
	"bytes"
	"testing"
)

// TestDynamicHuffmanLiteralsAndEOB exercises the full dynamic-block path
// end to end: a hand-assembled HLIT/HDIST/HCLEN header, a code-length
// alphabet table built from a four-symbol code (0, 1, 2, 18), a
// run-length-encoded 257-entry literal/length length vector and a
// single-entry (absent) distance length vector, and a three-literal body
// terminated by the end-of-block symbol.
//
// The code-length alphabet uses lengths {0:2, 1:2, 2:2, 18:2}, canonical
// codes 0->"00", 1->"01", 2->"10", 18->"11". That table encodes the
// literal/length length vector as: a 65-zero run (symbol 18, extra 54),
// a direct length 1 for 'A' (symbol 65), a direct length 2 for 'B'
// (symbol 66), a 138-zero run (symbol 18, extra 127), a 51-zero run
// (symbol 18, extra 40), and a direct length 2 for the end-of-block
// symbol (256) -- covering all 257 literal/length codes. The resulting
// literal/length table has canonical codes 'A'->"0", 'B'->"10",
// EOB->"11". The distance vector's single entry is encoded directly as
// length 0 (absent; the body never emits a back-reference).
func TestDynamicHuffmanLiteralsAndEOB(t *testing.T) {
	w := newBitWriter()
	w.writeBitsLSB(1, 1)  // BFINAL
	w.writeBitsLSB(2, 2)  // BTYPE=10 dynamic
	w.writeBitsLSB(0, 5)  // HLIT=0  -> 257 literal/length codes
	w.writeBitsLSB(0, 5)  // HDIST=0 -> 1 distance code
	w.writeBitsLSB(14, 4) // HCLEN=14 -> 18 code-length-alphabet entries

	clLengths := []uint32{0, 0, 2, 2, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 2, 0, 2}
	for _, v := range clLengths {
		w.writeBitsLSB(v, 3)
	}

	// Literal/length length vector (257 entries), RLE-encoded.
	w.writeCodeMSB(3, 2)  // symbol 18: zero run
	w.writeBitsLSB(54, 7) // repeats = 54+11 = 65 (indices 0-64)
	w.writeCodeMSB(1, 2)  // symbol 1: direct length 1 -> index 65 ('A')
	w.writeCodeMSB(2, 2)  // symbol 2: direct length 2 -> index 66 ('B')
	w.writeCodeMSB(3, 2)  // symbol 18: zero run
	w.writeBitsLSB(127, 7) // repeats = 127+11 = 138 (indices 67-204)
	w.writeCodeMSB(3, 2)   // symbol 18: zero run
	w.writeBitsLSB(40, 7)  // repeats = 40+11 = 51 (indices 205-255)
	w.writeCodeMSB(2, 2)   // symbol 2: direct length 2 -> index 256 (EOB)

	// Distance length vector (1 entry): absent.
	w.writeCodeMSB(0, 2) // symbol 0: direct length 0 -> index 0

	// Body: "AAB" then end-of-block.
	w.writeCodeMSB(0, 1) // 'A' (code "0")
	w.writeCodeMSB(0, 1) // 'A'
	w.writeCodeMSB(2, 2) // 'B' (code "10")
	w.writeCodeMSB(3, 2) // EOB (code "11")

	out := make([]byte, 3)
	d := NewDecoder(w.bytes(), 0)
	res, err := d.Decode(out)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if res.BytesWritten != 3 {
		t.Errorf("BytesWritten = %d, want 3", res.BytesWritten)
	}
	if !bytes.Equal(out, []byte("AAB")) {
		t.Errorf("output = %q, want %q", out, "AAB")
	}
}

// TestDynamicHuffmanSingleDistanceCodeUsed exercises HDIST=0 (a one-entry
// distance table) where that single code is a real, length-1 code actually
// referenced by a back-reference — RFC 1951 §3.2.7's "a single distance
// code is encoded using one bit, not zero" convention, rather than the
// always-absent single entry TestDynamicHuffmanLiteralsAndEOB uses. The
// literal/length table has three used symbols: 'A' (65, length 1), the
// length-257 code (length 2, 0 extra bits, so a literal length of 3), and
// end-of-block (256, length 2). The body emits one literal 'A' followed by
// a length-3/distance-1 back-reference, producing "AAAA".
func TestDynamicHuffmanSingleDistanceCodeUsed(t *testing.T) {
	w := newBitWriter()
	w.writeBitsLSB(1, 1)  // BFINAL
	w.writeBitsLSB(2, 2)  // BTYPE=10 dynamic
	w.writeBitsLSB(1, 5)  // HLIT=1  -> 258 literal/length codes
	w.writeBitsLSB(0, 5)  // HDIST=0 -> 1 distance code
	w.writeBitsLSB(14, 4) // HCLEN=14 -> 18 code-length-alphabet entries

	clLengths := []uint32{0, 0, 2, 2, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 2, 0, 2}
	for _, v := range clLengths {
		w.writeBitsLSB(v, 3)
	}

	// Literal/length length vector (258 entries), RLE-encoded: zeros
	// 0-64, 'A' (65) at length 1, zeros 66-255, then EOB (256) and the
	// length-257 code, both at length 2.
	w.writeCodeMSB(3, 2)  // symbol 18: zero run
	w.writeBitsLSB(54, 7) // repeats = 54+11 = 65 (indices 0-64)
	w.writeCodeMSB(1, 2)  // symbol 1: direct length 1 -> index 65 ('A')
	w.writeCodeMSB(3, 2)  // symbol 18: zero run
	w.writeBitsLSB(127, 7) // repeats = 127+11 = 138 (indices 66-203)
	w.writeCodeMSB(3, 2)   // symbol 18: zero run
	w.writeBitsLSB(41, 7)  // repeats = 41+11 = 52 (indices 204-255)
	w.writeCodeMSB(2, 2)   // symbol 2: direct length 2 -> index 256 (EOB)
	w.writeCodeMSB(2, 2)   // symbol 2: direct length 2 -> index 257 (length code)

	// Distance length vector (1 entry): a real length-1 code, not absent.
	w.writeCodeMSB(1, 2) // symbol 1: direct length 1 -> index 0

	// Canonical codes: 'A' -> "0" (length 1); among the two length-2
	// symbols, ascending symbol order assigns 256 -> "10", 257 -> "11".
	// The sole distance code (index 0) -> "0" (length 1).
	//
	// Body: literal 'A', then a length-257 (length 3, 0 extra bits)
	// back-reference at distance 1 (0 extra bits), then EOB.
	w.writeCodeMSB(0, 1) // 'A' (code "0")
	w.writeCodeMSB(3, 2) // length-257 code ("11")
	w.writeCodeMSB(0, 1) // distance code 0 ("0")
	w.writeCodeMSB(2, 2) // EOB (code "10")

	out := make([]byte, 4)
	d := NewDecoder(w.bytes(), 0)
	res, err := d.Decode(out)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if res.BytesWritten != 4 {
		t.Errorf("BytesWritten = %d, want 4", res.BytesWritten)
	}
	if !bytes.Equal(out, []byte("AAAA")) {
		t.Errorf("output = %q, want %q", out, "AAAA")
	}
}
