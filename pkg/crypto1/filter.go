package crypto1

// Filter output table: bit i is the filter value for composed input i.
const filterTable = 0xEC57E80A

// filterBitMath is the compact bit-math form of the CRYPTO1 filter
// function f: it takes the low 20 bits of x (drawn from the odd half of
// the LFSR) and returns one keystream bit. The five magic masks below are
// the minimized boolean expressions for the filter's five component
// functions fa/fb/fb/fb/fc, as carried by the reference firmware
// (mf1_crapto1.c's filter()) for size-constrained builds.
func filterBitMath(x uint32) uint32 {
	var f uint32
	f = 0xf22c0 >> (x & 0xf) & 16
	f |= 0x6c9c0 >> (x >> 4 & 0xf) & 8
	f |= 0x3c8b0 >> (x >> 8 & 0xf) & 4
	f |= 0x1e458 >> (x >> 12 & 0xf) & 2
	f |= 0x0d938 >> (x >> 16 & 0xf) & 1
	return bit(filterTable, uint(f))
}

// byteFilterTable[k] holds, for every possible byte value of x's k'th byte
// (k=0 is bits 0-7, k=1 bits 8-15, k=2 bits 16-23), the contribution that
// byte makes to the 5-bit composite index filterBitMath builds one nibble
// at a time. Byte 0 spans filterBitMath's nibble 0 (bit 4 of the index)
// and nibble 1 (bit 3); byte 1 spans nibble 2 (bit 2) and nibble 3 (bit
// 1); byte 2 spans nibble 4 (bit 0) — its top nibble, bits 20-23, is never
// read by any mask, matching filterBitMath's low-20-bits-only behavior.
// OR-ing the three contributions together reconstructs exactly the index
// filterBitMath computes, so this agrees with it by construction rather
// than by a second, independently transcribed literal — mirroring the
// reference firmware's abFilterTable/TableC0 byte-table architecture
// (mf1_crypto1.c's abFilterTable and CRYPTO1_FILTER_OUTPUT_B0_24) without
// hand-copying its 3*256-entry tables, which this package's single-bit
// callers have no use for beyond the bit-0 output variant built here.
var byteFilterTable [3][256]uint32

// filterOutputTable[idx] is bit(filterTable, idx) precomputed for all 32
// indices, standing in for the reference's TableC0.
var filterOutputTable [32]uint32

func init() {
	for b := uint32(0); b < 256; b++ {
		lo, hi := b&0xf, (b>>4)&0xf
		byteFilterTable[0][b] = nibbleContribution(0xf22c0, lo, 4) | nibbleContribution(0x6c9c0, hi, 3)
		byteFilterTable[1][b] = nibbleContribution(0x3c8b0, lo, 2) | nibbleContribution(0x1e458, hi, 1)
		byteFilterTable[2][b] = nibbleContribution(0x0d938, lo, 0)
	}
	for i := uint32(0); i < 32; i++ {
		filterOutputTable[i] = bit(filterTable, uint(i))
	}
}

// nibbleContribution extracts bit (nibble+shift) of mask and repositions
// it at bit shift of the result, the same single-nibble step
// filterBitMath performs inline for each of its five masks.
func nibbleContribution(mask, nibble, shift uint32) uint32 {
	return (mask >> nibble) & (1 << shift)
}

// filterTableDriven is the table-driven form of f: the three bytes of x
// are looked up independently in byteFilterTable and OR'd into the same
// 5-bit index filterBitMath builds, then resolved through
// filterOutputTable. It must agree with filterBitMath for every 20-bit
// input; see filter_test.go.
func filterTableDriven(x uint32) uint32 {
	idx := byteFilterTable[0][x&0xff] | byteFilterTable[1][(x>>8)&0xff] | byteFilterTable[2][(x>>16)&0xff]
	return filterOutputTable[idx]
}

// filter is the filter network f used throughout this package. It
// delegates to the bit-math form; FilterTableDriven exports the
// lookup-table variant for callers that specifically want it.
func filter(x uint32) uint32 {
	return filterBitMath(x)
}

// Filter returns the CRYPTO1 filter output for the low 20 bits of x,
// using the default (bit-math) implementation.
func Filter(x uint32) uint32 {
	return filterBitMath(x)
}

// FilterTableDriven returns the CRYPTO1 filter output for the low 20 bits
// of x using the table-driven implementation. It always agrees with
// Filter.
func FilterTableDriven(x uint32) uint32 {
	return filterTableDriven(x)
}
