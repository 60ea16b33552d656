package gzip

import "testing"

// TestDecodeHelloWorld wraps the same fixed-Huffman "hello world" deflate
// stream used in deflate's own tests in a minimal single-member gzip
// container (no extra/name/comment fields) and checks the unwrapped
// payload and its CRC32 trailer both resolve correctly.
func TestDecodeHelloWorld(t *testing.T) {
	data := []byte{
		0x1f, 0x8b, 0x08, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xff,
		0xcb, 0x48, 0xcd, 0xc9, 0xc9, 0x57, 0x28, 0xcf, 0x2f, 0xca, 0x49, 0x01, 0x00,
		0x85, 0x11, 0x4a, 0x0d,
		0x0b, 0x00, 0x00, 0x00,
	}
	out, hdr, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if string(out) != "hello world" {
		t.Errorf("output = %q, want %q", out, "hello world")
	}
	if hdr.OS != 0xff {
		t.Errorf("OS = %#x, want 0xff", hdr.OS)
	}
}

func TestDecodeBadMagic(t *testing.T) {
	data := make([]byte, 20)
	if _, _, err := Decode(data); err != ErrHeader {
		t.Fatalf("expected ErrHeader, got %v", err)
	}
}

func TestDecodeChecksumMismatch(t *testing.T) {
	data := []byte{
		0x1f, 0x8b, 0x08, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xff,
		0xcb, 0x48, 0xcd, 0xc9, 0xc9, 0x57, 0x28, 0xcf, 0x2f, 0xca, 0x49, 0x01, 0x00,
		0x00, 0x00, 0x00, 0x00,
		0x0b, 0x00, 0x00, 0x00,
	}
	if _, _, err := Decode(data); err != ErrChecksum {
		t.Fatalf("expected ErrChecksum, got %v", err)
	}
}
