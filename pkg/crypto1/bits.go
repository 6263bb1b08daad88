package crypto1

import "math/bits"

// bit extracts bit n of x.
func bit(x uint32, n uint) uint32 {
	return (x >> n) & 1
}

// beBit extracts bit n of x under the MIFARE big-endian bit order used for
// 32-bit nonces on the wire: wire position i maps to register bit (i^24).
func beBit(x uint32, n uint) uint32 {
	return bit(x, n^24)
}

// evenParity32 returns 1 if x has an odd number of set bits (the bit
// needed to restore even parity), 0 otherwise.
func evenParity32(x uint32) uint32 {
	return uint32(bits.OnesCount32(x) & 1)
}

// oddByteParity reports the odd-parity bit of b: 1 if b has an even
// number of set bits, 0 if it already has an odd number set. This is the
// parity MIFARE transmits per byte on the wire.
func oddByteParity(b byte) byte {
	return byte(1 - (bits.OnesCount8(b) & 1))
}

// byteSwap32 reverses the byte order of x.
func byteSwap32(x uint32) uint32 {
	return uint32(bits.ReverseBytes32(x))
}
