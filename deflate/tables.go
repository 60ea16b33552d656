package deflate

// extraBitsBase records the (extra_bits, base) pair RFC 1951
// §3.2.5 assigns to a length or distance code.
type extraBitsBase struct {
	extraBits uint
	base      uint32
}

// lengthTable is indexed by (symbol - firstLengthSymbol), symbol in
// 257..287. Entries for symbols 286 and 287 are reserved — present here
// only so the array is densely indexed; block.go rejects those symbols
// before ever consulting them.
const firstLengthSymbol = 257

var lengthTable = [...]extraBitsBase{
	{0, 3}, {0, 4}, {0, 5}, {0, 6}, {0, 7}, {0, 8}, {0, 9}, {0, 10},
	{1, 11}, {1, 13}, {1, 15}, {1, 17},
	{2, 19}, {2, 23}, {2, 27}, {2, 31},
	{3, 35}, {3, 43}, {3, 51}, {3, 59},
	{4, 67}, {4, 83}, {4, 99}, {4, 115},
	{5, 131}, {5, 163}, {5, 195}, {5, 227},
	{0, 258}, // symbol 285
	{0, 0},   // symbol 286, reserved
	{0, 0},   // symbol 287, reserved
}

// distanceTable is indexed directly by the 0..31 distance code. Codes 30
// and 31 are reserved.
var distanceTable = [...]extraBitsBase{
	{0, 1}, {0, 2}, {0, 3}, {0, 4},
	{1, 5}, {1, 7},
	{2, 9}, {2, 13},
	{3, 17}, {3, 25},
	{4, 33}, {4, 49},
	{5, 65}, {5, 97},
	{6, 129}, {6, 193},
	{7, 257}, {7, 385},
	{8, 513}, {8, 769},
	{9, 1025}, {9, 1537},
	{10, 2049}, {10, 3073},
	{11, 4097}, {11, 6145},
	{12, 8193}, {12, 12289},
	{13, 16385}, {13, 24577},
	{0, 0}, // code 30, reserved
	{0, 0}, // code 31, reserved
}

// clclExtra holds the (extra_bits, base_repeat) pairs for code-length
// alphabet symbols 16, 17, 18 (RFC 1951 §3.2.7), indexed by symbol-16.
var clclExtra = [...]extraBitsBase{
	{2, 3},  // 16: repeat previous 3-6 times
	{3, 3},  // 17: repeat zero 3-10 times
	{7, 11}, // 18: repeat zero 11-138 times
}

// clenOrder is the fixed permutation dynamic blocks use to transmit the
// 19 code-length alphabet's own code lengths (RFC 1951 §3.2.7).
var clenOrder = [19]int{16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15}

const (
	numCLCodes   = 19
	numDistCodes = 32
	numLitLen    = 288
	endOfBlock   = 256
)
