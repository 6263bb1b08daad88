package crypto1

// LFSR feedback taps, applied to the odd and even halves respectively.
const (
	lfPolyOdd  = 0x29CE5C
	lfPolyEven = 0x870804
)

// ClockBit advances state by one bit and returns the filter output for the
// pre-clock state. in is XORed into the feedback as a single bit (0 or 1);
// encrypted selects whether the filter output itself also feeds back.
// With encrypted==true and in set to a ciphertext bit, the two cancel to
// the plaintext bit, which is how AbsorbReaderNonce deciphers while
// clocking; with encrypted==false in is fed back as given, as Setup, the
// reader-side operations and the bulk keystream operations do. Mirrors
// crypto1_bit in the reference firmware.
//
// The new Even is not masked back to 24 bits, matching the reference: its
// top bit is old Odd's top bit, carried up rather than discarded. Nothing
// that reads Odd or Even again (filter, the two LFSR taps, GetLFSR) looks
// past bit 23, so the extra bit never changes an observable result going
// forward; it only matters to RollbackBit, which relies on it staying
// around to invert this shift exactly.
func ClockBit(s *State, in uint32, encrypted bool) uint32 {
	out := filter(s.Odd)

	feedin := out & b2u(encrypted)
	feedin ^= in & 1
	feedin ^= lfPolyOdd & s.Odd
	feedin ^= lfPolyEven & s.Even

	t := s.Odd
	s.Odd = s.Even
	s.Even = t<<1 | evenParity32(feedin)
	return out
}

// ClockByte advances state by the 8 bits of in, LSB first, and returns the
// 8 filter-output bits packed the same way. Mirrors crypto1_byte.
func ClockByte(s *State, in byte, encrypted bool) byte {
	var out byte
	for i := uint(0); i < 8; i++ {
		out |= byte(ClockBit(s, uint32(in>>i)&1, encrypted)) << i
	}
	return out
}

// ClockWord advances state by the 32 bits of in under MIFARE's big-endian
// bit order (wire bit i is register bit i^24) and returns the 32
// filter-output bits under the same order. Mirrors crypto1_word.
func ClockWord(s *State, in uint32, encrypted bool) uint32 {
	var out uint32
	for i := uint(0); i < 32; i++ {
		out |= ClockBit(s, beBit(in, i), encrypted) << ((24 ^ i) & 0x1F)
	}
	return out
}

func b2u(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
