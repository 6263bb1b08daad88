package crypto1

const mask24 = 0xFFFFFF

// State is the packed representation of the 48-bit CRYPTO1 LFSR: two
// halves, Odd and Even, each starting out 24 bits wide right after Init.
// ClockBit does not re-mask Even to 24 bits on every step (see ClockBit's
// comment), so a state that has been clocked several times can carry
// genuine significant bits above bit 23; nothing that reads a state back
// (filter, the LFSR taps, GetLFSR) looks past bit 23, so this never
// changes an observable result. Only Init and the key/LFSR converters
// below are guaranteed to produce a value with exactly 24 significant
// bits per half.
type State struct {
	Odd  uint32
	Even uint32
}

// ByteState is the byte-split representation of the same 48-bit LFSR: the
// odd and even halves as three little-endian bytes apiece, the layout the
// reference firmware's bulk operations keep live in registers. Every
// operation in this package, the bulk stream operations included, runs
// on State; ByteState is an interchange form only. Pack and Unpack
// convert between the two forms; Unpack keeps bits 0-23 of each half, so
// the round trip is lossless only for a state with nothing set above bit
// 23.
type ByteState struct {
	Even [3]byte
	Odd  [3]byte
}

// Pack converts a byte-split state into the packed form.
func (b ByteState) Pack() State {
	return State{
		Odd:  uint32(b.Odd[0]) | uint32(b.Odd[1])<<8 | uint32(b.Odd[2])<<16,
		Even: uint32(b.Even[0]) | uint32(b.Even[1])<<8 | uint32(b.Even[2])<<16,
	}
}

// Unpack converts a packed state into the byte-split form.
func (s State) Unpack() ByteState {
	return ByteState{
		Odd:  [3]byte{byte(s.Odd), byte(s.Odd >> 8), byte(s.Odd >> 16)},
		Even: [3]byte{byte(s.Even), byte(s.Even >> 8), byte(s.Even >> 16)},
	}
}

// Init loads a 48-bit key into state, zeroing it first. The key is loaded
// byte-reversed per the MIFARE convention: for i from 47 down to 1 in
// steps of 2, bit (i-1)^7 of key feeds odd and bit i^7 feeds even. This
// matches the reference firmware's crypto1_init exactly (mf1_crapto1.c);
// spec.md's plainer description of key loading is secondary to this
// bit-for-bit behavior where the two disagree.
func Init(key uint64) State {
	var s State
	for i := 47; i > 0; i -= 2 {
		s.Odd = s.Odd<<1 | (uint32(key>>uint((i-1)^7)) & 1)
		s.Even = s.Even<<1 | (uint32(key>>uint(i^7)) & 1)
	}
	s.Odd &= mask24
	s.Even &= mask24
	return s
}

// GetLFSR exports the packed state as the logical 48-bit LFSR value,
// inverse to Init: Init(GetLFSR(s)) == s for any state reachable by
// loading a 48-bit key, and GetLFSR(Init(k)) == k for any 48-bit k.
func GetLFSR(s State) uint64 {
	var lfsr uint64
	for i := 23; i >= 0; i-- {
		lfsr = lfsr<<1 | uint64((s.Odd>>uint(i^3))&1)
		lfsr = lfsr<<1 | uint64((s.Even>>uint(i^3))&1)
	}
	return lfsr
}

// KeyFromBytes packs a 6-byte MIFARE key into the uint64 form Init
// expects, most significant byte first (the order keys are written in
// hex dumps and .hex key files).
func KeyFromBytes(key [6]byte) uint64 {
	var k uint64
	for _, b := range key {
		k = k<<8 | uint64(b)
	}
	return k
}
