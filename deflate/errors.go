package deflate

import "fmt"

// Pos snapshots the reader cursor and block index at the moment an error
// was raised (spec.md §6's DecodeFailure shape).
type Pos struct {
	ByteOffset  uint64
	BitOffset   uint64
	BlockNumber uint64
}

// EndOfBufferError reports that input was exhausted before an expected
// field or symbol completed.
type EndOfBufferError struct {
	Pos
	Message string
}

func (e *EndOfBufferError) Error() string {
	return fmt.Sprintf("deflate: end of buffer at byte %d (bit %d), block %d: %s",
		e.ByteOffset, e.BitOffset, e.BlockNumber, e.Message)
}

// InvalidDataError reports a structural violation: bad LEN/NLEN, reserved
// BTYPE, an out-of-range length/distance/code-length symbol, a repeat-prev
// code-length at position 0, or a back-reference distance exceeding the
// bytes written so far.
type InvalidDataError struct {
	Pos
	Message string
}

func (e *InvalidDataError) Error() string {
	return fmt.Sprintf("deflate: invalid data at byte %d (bit %d), block %d: %s",
		e.ByteOffset, e.BitOffset, e.BlockNumber, e.Message)
}

// UnknownSymbolError reports that a Huffman bit path led into Undef: a
// malformed table or a corrupt stream.
type UnknownSymbolError struct {
	Pos
	Message string
}

func (e *UnknownSymbolError) Error() string {
	return fmt.Sprintf("deflate: unknown symbol at byte %d (bit %d), block %d: %s",
		e.ByteOffset, e.BitOffset, e.BlockNumber, e.Message)
}

// InvalidTableError reports a code-length vector inconsistent with a
// prefix-free code of depth <= 15.
type InvalidTableError struct {
	Pos
	Message string
}

func (e *InvalidTableError) Error() string {
	return fmt.Sprintf("deflate: invalid Huffman table at byte %d (bit %d), block %d: %s",
		e.ByteOffset, e.BitOffset, e.BlockNumber, e.Message)
}

// OutputTooSmallError reports that the output slice cannot accommodate
// the next emission.
type OutputTooSmallError struct {
	Pos
	Message string
}

func (e *OutputTooSmallError) Error() string {
	return fmt.Sprintf("deflate: output too small at byte %d (bit %d), block %d: %s",
		e.ByteOffset, e.BitOffset, e.BlockNumber, e.Message)
}
