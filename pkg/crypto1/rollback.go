package crypto1

// RollbackBit undoes one ClockBit step: given the state as it stands after
// that step, plus the same in/encrypted arguments the forward clock used,
// it restores the state to what it was before and returns the filter
// output that clock produced (the same value ClockBit returned going
// forward).
//
// The swap direction is the exact mirror of ClockBit: the new Even becomes
// the current Odd unchanged (forward copies old Even into new Odd without
// modification, so the inverse is exact), and the new Odd is the current
// Even's bits shifted right by one (forward built new Even by shifting old
// Odd left by one, without masking away its top bit — see ClockBit's
// comment — so shifting right by one here restores old Odd exactly, with
// nothing guessed).
//
// in and encrypted mirror ClockBit's signature for symmetry, but neither
// is read: the state is recovered from the post-step state alone, which
// works only while the bits ClockBit's left shift carried above bit 23
// are still there (see below).
//
// This is exact as long as Even's bit width hasn't outrun uint32: each
// forward clock makes the new Even one bit wider than the old Odd, so
// Even's significant width grows by one bit every two clocks, and a
// register that starts at 24 significant bits after Init has the full 32
// in both halves after 16 clocks. Past that point ClockBit's own left
// shift silently drops bits the same way the reference firmware's
// uint32_t arithmetic does, and those bits are gone for rollback to
// recover — not a bug in either implementation, just the cost of not
// re-masking to a fixed width every step. In practice this means chaining
// up to 16 rollback clocks back to a freshly Init'd state is exact. On a
// state that has run longer, a single RollbackBit restores bits 0-23 of
// both halves (all that filter, the taps and GetLFSR read) but not the
// bits above them, and every further chained rollback moves the
// unrecovered bits lower, so long chains — a RollbackWord's 32 included —
// are not exact.
func RollbackBit(s *State, in uint32, encrypted bool) uint32 {
	recoveredEven := s.Odd
	recoveredOdd := s.Even >> 1

	out := filter(recoveredOdd)

	s.Odd = recoveredOdd
	s.Even = recoveredEven
	return out
}

// RollbackByte undoes one ClockByte step of 8 bits, LSB first, returning
// the 8 filter-output bits in the same order ClockByte returned them.
func RollbackByte(s *State, in byte, encrypted bool) byte {
	var out byte
	for i := int(7); i >= 0; i-- {
		out |= byte(RollbackBit(s, uint32(in>>uint(i))&1, encrypted)) << uint(i)
	}
	return out
}

// RollbackWord undoes one ClockWord step of 32 bits under MIFARE's
// big-endian bit order, returning the 32 filter-output bits in the same
// order ClockWord returned them.
func RollbackWord(s *State, in uint32, encrypted bool) uint32 {
	var out uint32
	for i := int(31); i >= 0; i-- {
		bitOut := RollbackBit(s, beBit(in, uint(i)), encrypted)
		out |= bitOut << ((24 ^ uint(i)) & 0x1F)
	}
	return out
}
