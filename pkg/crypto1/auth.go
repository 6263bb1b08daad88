package crypto1

// Setup runs the tag side of the first stage of authentication: it loads
// key, mixes UID into the tag nonce (uid^nonce), and clocks the result
// into the LFSR in plaintext mode. The filter output produced during that
// same clock is the keystream used to encipher nonce before it goes out
// over the air, so Setup returns both the resulting state and the
// enciphered nonce. Mirrors the reference firmware's Crypto1Setup.
func Setup(key [6]byte, uid, nonce [4]byte) (State, [4]byte) {
	s := Init(KeyFromBytes(key))
	ks := ClockWord(&s, be32(uid)^be32(nonce), false)

	var encNonce [4]byte
	putBE32(&encNonce, be32(nonce)^ks)
	return s, encNonce
}

// SetupNested runs the tag side of a nested authentication's first stage.
// It mixes UID into nonce exactly as Setup does (in^uid[i], one byte at a
// time rather than as a single word), and leaves the LFSR in the same
// final state Setup would for the same key/uid/nonce — nested and standard
// setup differ only in how the enciphered nonce goes out over the wire,
// one byte at a time here with a per-byte parity bit instead of one shot.
//
// The parity bit for byte i is not a freshly clocked bit; the reference
// firmware's Crypto1SetupNested computes it from the filter output left
// over after byte i's eight clocks — the same value that would become
// bit 0 of byte i+1's keystream if clocking continued — XORed with the
// plaintext byte's own parity. That filter output is read once per byte,
// not reclocked, which is why the quirk only costs one extra Filter call
// per byte rather than a ninth clock.
//
// decrypt selects whether nonce is plaintext being enciphered (false) or
// ciphertext being deciphered in place (true), matching Crypto1SetupNested's
// Decrypt flag.
func SetupNested(key [6]byte, uid, nonce [4]byte, decrypt bool) (State, [4]byte, [4]byte) {
	s := Init(KeyFromBytes(key))

	var out [4]byte
	var parity [4]byte
	for i, in := range nonce {
		mixed := in ^ uid[i]
		ks := ClockByte(&s, mixed, decrypt)
		out[i] = in ^ ks

		parityBit := byte(filter(s.Odd))
		if decrypt {
			parity[i] = parityBit ^ oddByteParity(out[i])
		} else {
			parity[i] = parityBit ^ oddByteParity(in)
		}
	}
	return s, out, parity
}
