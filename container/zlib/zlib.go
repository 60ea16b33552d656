// Package zlib implements RFC 1950 zlib container framing over
// deflate.Decoder: a 2-byte CMF/FLG header, the deflate stream, and a
// 4-byte big-endian Adler-32 trailer.
//
// RFC 1950 carries no output-size field (unlike gzip's ISIZE), so callers
// must supply the decompressed size up front.
package zlib

import (
	"encoding/binary"
	"errors"
	"hash/adler32"

	"github.com/pvigilev/zipper/deflate"
)

const (
	headerLen  = 2
	trailerLen = 4

	fDict = 1 << 5
)

var (
	// ErrHeader is returned when the 2-byte header fails its CM/CINFO or
	// FCHECK validation.
	ErrHeader = errors.New("zlib: invalid header")
	// ErrDictionary is returned for a stream using a preset dictionary
	// (FDICT set); no SPEC_FULL.md caller supplies one.
	ErrDictionary = errors.New("zlib: preset dictionaries not supported")
	// ErrChecksum is returned when the decompressed data's Adler-32
	// doesn't match the trailer.
	ErrChecksum = errors.New("zlib: checksum mismatch")
)

// Decode decodes a zlib stream from data, which must hold the entire
// stream: the 2-byte header, the deflate body, and the 4-byte Adler-32
// trailer. outputSize must equal the exact decompressed length.
func Decode(data []byte, outputSize int) ([]byte, error) {
	if len(data) < headerLen+trailerLen {
		return nil, ErrHeader
	}
	cmf, flg := data[0], data[1]
	if cmf&0x0f != 8 || cmf>>4 > 7 {
		return nil, ErrHeader
	}
	if (int(cmf)<<8+int(flg))%31 != 0 {
		return nil, ErrHeader
	}
	if flg&fDict != 0 {
		return nil, ErrDictionary
	}

	body := data[headerLen : len(data)-trailerLen]
	output := make([]byte, outputSize)
	dec := deflate.NewDecoder(body, 0)
	if _, err := dec.Decode(output); err != nil {
		return nil, err
	}

	trailer := data[len(data)-trailerLen:]
	wantAdler := binary.BigEndian.Uint32(trailer)
	if adler32.Checksum(output) != wantAdler {
		return nil, ErrChecksum
	}
	return output, nil
}
