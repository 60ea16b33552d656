package bitreader

import "testing"

func TestReadBitLSBFirst(t *testing.T) {
	// 0b10110010 -> bits read in order 0,1,0,0,1,1,0,1
	r := New([]byte{0xb2}, 0)
	want := []bool{false, true, false, false, true, true, false, true}
	for i, w := range want {
		got, err := r.ReadBit()
		if err != nil {
			t.Fatalf("bit %d: unexpected error: %v", i, err)
		}
		if got != w {
			t.Errorf("bit %d: got %v, want %v", i, got, w)
		}
	}
	if !r.EOB() {
		t.Error("expected EOB after consuming all bits")
	}
	if _, err := r.ReadBit(); err != ErrEndOfBuffer {
		t.Errorf("expected ErrEndOfBuffer, got %v", err)
	}
}

func TestReadBitsAcrossByteBoundary(t *testing.T) {
	// two bytes, read 8 bits starting at bit 4, spanning the boundary
	r := New([]byte{0xFF, 0x0F}, 4)
	v, n, err := r.ReadBits(8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 8 {
		t.Fatalf("expected 8 bits delivered, got %d", n)
	}
	if v != 0xFF {
		t.Errorf("got %#x, want 0xff", v)
	}
}

func TestReadBitsSequentialEquivalence(t *testing.T) {
	data := []byte{0b10101100, 0b11001010, 0b00001111}
	r1 := New(data, 0)
	v1, _, err := r1.ReadBits(7)
	if err != nil {
		t.Fatal(err)
	}
	v2, _, err := r1.ReadBits(5)
	if err != nil {
		t.Fatal(err)
	}
	combined := v1 | (v2 << 7)

	r2 := New(data, 0)
	vAll, _, err := r2.ReadBits(12)
	if err != nil {
		t.Fatal(err)
	}
	if combined != vAll {
		t.Errorf("split reads (%#x) != combined read (%#x)", combined, vAll)
	}
}

func TestReadBitsZeroIsNoOp(t *testing.T) {
	r := New([]byte{0x55}, 3)
	v, n, err := r.ReadBits(0)
	if err != nil || n != 0 || v != 0 {
		t.Fatalf("ReadBits(0) = %v, %v, %v; want 0, 0, nil", v, n, err)
	}
	if r.BitOffset() != 3 {
		t.Errorf("cursor moved on a zero-length read: %d", r.BitOffset())
	}
}

func TestReadBitsShortAtEOB(t *testing.T) {
	r := New([]byte{0xAB}, 4)
	_, n, err := r.ReadBits(8)
	if err != ErrEndOfBuffer {
		t.Fatalf("expected ErrEndOfBuffer, got %v", err)
	}
	if n != 4 {
		t.Fatalf("expected 4 bits delivered, got %d", n)
	}
}

func TestSkipAndAlign(t *testing.T) {
	r := New([]byte{0, 0, 0}, 0)
	r.Skip(3)
	if r.BitOffset() != 3 {
		t.Fatalf("Skip: got offset %d, want 3", r.BitOffset())
	}
	r.AlignToByte()
	if r.BitOffset() != 8 {
		t.Fatalf("AlignToByte: got offset %d, want 8", r.BitOffset())
	}
	r.AlignToByte()
	if r.BitOffset() != 8 {
		t.Fatalf("AlignToByte on aligned cursor moved: got %d", r.BitOffset())
	}
}

func TestAlignToByteAtZeroIsNoOp(t *testing.T) {
	r := New([]byte{0, 0}, 0)
	r.AlignToByte()
	if r.BitOffset() != 0 {
		t.Fatalf("AlignToByte at position 0 moved cursor: %d", r.BitOffset())
	}
}

func TestLeftBitsAndByteOffset(t *testing.T) {
	r := New([]byte{0, 0, 0}, 9)
	if r.LeftBits() != 15 {
		t.Errorf("LeftBits = %d, want 15", r.LeftBits())
	}
	if r.ByteOffset() != 1 {
		t.Errorf("ByteOffset = %d, want 1", r.ByteOffset())
	}
}
