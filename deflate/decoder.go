// Package deflate implements a RFC 1951 DEFLATE decoder: a bit-level
// reader, canonical Huffman table construction and traversal (in the
// sibling huffman package), and the block dispatch loop that ties them
// together.
package deflate

import (
	"github.com/pvigilev/zipper/bitreader"
)

// TraceLogger is the narrow logging surface the decoder accepts; it is
// satisfied by the logger capnslog.NewPackageLogger returns, so
// callers that don't care about tracing can leave it nil.
type TraceLogger interface {
	Tracef(format string, args ...interface{})
}

// Decoder decodes a single DEFLATE stream (RFC 1951 §3.2.1's sequence of
// blocks terminated by BFINAL) from a bit-level input into a caller-owned
// output buffer.
type Decoder struct {
	r      *bitreader.Reader
	logger TraceLogger
}

// NewDecoder returns a Decoder reading from data, starting at
// startBitOffset bits into it (spec.md §4.A: decoders are composable over
// a shared byte slice, e.g. a gzip member's payload after its header).
func NewDecoder(data []byte, startBitOffset uint64) *Decoder {
	return &Decoder{r: bitreader.New(data, startBitOffset)}
}

// SetLogger installs a trace logger; it returns d so callers can chain it
// onto NewDecoder.
func (d *Decoder) SetLogger(l TraceLogger) *Decoder {
	d.logger = l
	return d
}

// DecodeSuccess reports the result of a completed decode: how many bytes
// were written to the output buffer and how many bits of input were
// consumed (spec.md §6).
type DecodeSuccess struct {
	BytesWritten uint64
	BitsRead     uint64
}

func (d *Decoder) tracef(format string, args ...interface{}) {
	if d.logger != nil {
		d.logger.Tracef(format, args...)
	}
}

// Decode reads blocks from d's input until a BFINAL block completes,
// writing decompressed bytes into output. It fails with
// OutputTooSmallError rather than growing output, since output is
// caller-owned (spec.md §5's "no Non-goal exemption" for allocation
// behavior).
func (d *Decoder) Decode(output []byte) (DecodeSuccess, error) {
	var outPos uint64
	var blockNumber uint64

	for {
		final, btype, err := readBlockHeader(d.r, blockNumber)
		if err != nil {
			return DecodeSuccess{}, err
		}
		d.tracef("block %d: final=%v btype=%d", blockNumber, final, btype)

		switch btype {
		case btypeStored:
			err = decodeStoredBlock(d.r, output, &outPos, blockNumber)

		case btypeFixed:
			err = decodeFixedBlock(d.r, output, &outPos, blockNumber)

		case btypeDynamic:
			err = d.decodeDynamicBlockFull(output, &outPos, blockNumber)

		default:
			err = &InvalidDataError{posAt(d.r, blockNumber), "reserved block type"}
		}

		if err != nil {
			return DecodeSuccess{}, err
		}

		if final {
			break
		}
		blockNumber++
	}

	return DecodeSuccess{BytesWritten: outPos, BitsRead: d.r.BitOffset()}, nil
}

// decodeDynamicBlockFull reads a dynamic block's header (building its
// local literal/length and distance tables) and then decodes its body.
func (d *Decoder) decodeDynamicBlockFull(output []byte, outPos *uint64, blockNumber uint64) error {
	litLenTree, distTree, err := readDynamicHeader(d.r, blockNumber)
	if err != nil {
		return err
	}
	return decodeDynamicBlock(d.r, output, outPos, litLenTree, distTree, blockNumber)
}
