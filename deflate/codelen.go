package deflate

import (
	"errors"

	"github.com/pvigilev/zipper/bitreader"
	"github.com/pvigilev/zipper/huffman"
)

func posAt(r *bitreader.Reader, blockNumber uint64) Pos {
	return Pos{ByteOffset: r.ByteOffset(), BitOffset: r.BitOffset(), BlockNumber: blockNumber}
}

// decodeCodeLengths is the code-length meta-decoder (spec.md §4.D): it
// decodes a run-length-encoded stream of symbols in 0..18 via clTree and
// fills out (length hcodes) with the resulting code-length vector for a
// dynamic block's literal/length or distance table.
func decodeCodeLengths(r *bitreader.Reader, clTree *huffman.Tree, hcodes int, out []uint8, blockNumber uint64) error {
	i := 0
	for i < hcodes {
		v, _, err := huffman.DecodeSymbol(r, clTree)
		if err != nil {
			return wrapSymbolErr(err, r, blockNumber, "code-length symbol")
		}

		switch {
		case v <= 15:
			out[i] = uint8(v)
			i++

		case v == 16:
			if i == 0 {
				return &InvalidDataError{posAt(r, blockNumber), "repeat-previous code length at position 0"}
			}
			extra, n, err := r.ReadBits(2)
			if err != nil || n != 2 {
				return &EndOfBufferError{posAt(r, blockNumber), "unexpected end of buffer reading repeat count"}
			}
			repeats := int(extra) + 3
			if i+repeats > hcodes {
				return &InvalidDataError{posAt(r, blockNumber), "code-length run overruns target count"}
			}
			prev := out[i-1]
			for j := 0; j < repeats; j++ {
				out[i] = prev
				i++
			}

		case v == 17:
			extra, n, err := r.ReadBits(3)
			if err != nil || n != 3 {
				return &EndOfBufferError{posAt(r, blockNumber), "unexpected end of buffer reading zero-run count"}
			}
			repeats := int(extra) + 3
			if i+repeats > hcodes {
				return &InvalidDataError{posAt(r, blockNumber), "code-length run overruns target count"}
			}
			for j := 0; j < repeats; j++ {
				out[i] = 0
				i++
			}

		case v == 18:
			extra, n, err := r.ReadBits(7)
			if err != nil || n != 7 {
				return &EndOfBufferError{posAt(r, blockNumber), "unexpected end of buffer reading zero-run count"}
			}
			repeats := int(extra) + 11
			if i+repeats > hcodes {
				return &InvalidDataError{posAt(r, blockNumber), "code-length run overruns target count"}
			}
			for j := 0; j < repeats; j++ {
				out[i] = 0
				i++
			}

		default:
			return &InvalidDataError{posAt(r, blockNumber), "code-length symbol out of range"}
		}
	}
	return nil
}

// wrapSymbolErr translates a huffman package error (produced while
// decoding a Huffman-coded symbol) into the matching deflate taxonomy
// error, snapshotting the current reader position.
func wrapSymbolErr(err error, r *bitreader.Reader, blockNumber uint64, what string) error {
	switch {
	case errors.Is(err, bitreader.ErrEndOfBuffer):
		return &EndOfBufferError{posAt(r, blockNumber), "unexpected end of buffer while decoding " + what}
	case errors.Is(err, huffman.ErrUnknownSymbol):
		return &UnknownSymbolError{posAt(r, blockNumber), "unknown " + what}
	default:
		return &InvalidDataError{posAt(r, blockNumber), err.Error()}
	}
}
