package crypto1

import (
	"bytes"
	"testing"
)

func TestKeystreamByteMatchesClockByte(t *testing.T) {
	key := KeyFromBytes([6]byte{1, 2, 3, 4, 5, 6})
	s1 := Init(key)
	s2 := Init(key)

	for i := 0; i < 8; i++ {
		got := KeystreamByte(&s1)
		want := ClockByte(&s2, 0, false)
		if got != want {
			t.Fatalf("byte %d: KeystreamByte = %#x, want %#x", i, got, want)
		}
	}
}

func TestKeystreamNibbleMatchesFourClockBits(t *testing.T) {
	key := KeyFromBytes([6]byte{7, 7, 7, 7, 7, 7})
	s1 := Init(key)
	s2 := Init(key)

	got := KeystreamNibble(&s1)

	var want byte
	for i := uint(0); i < 4; i++ {
		want |= byte(ClockBit(&s2, 0, false)) << i
	}

	if got != want {
		t.Errorf("KeystreamNibble = %#x, want %#x", got, want)
	}
	if s1 != s2 {
		t.Errorf("KeystreamNibble state = %+v, want %+v", s1, s2)
	}
}

func TestXorBytesEncryptThenDecryptRoundTrips(t *testing.T) {
	key := KeyFromBytes([6]byte{0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF})
	plaintext := []byte("the quick brown fox jumps")

	s := Init(key)
	ciphertext := append([]byte(nil), plaintext...)
	XorBytes(&s, ciphertext)

	s2 := Init(key)
	decoded := append([]byte(nil), ciphertext...)
	XorBytes(&s2, decoded)

	if !bytes.Equal(decoded, plaintext) {
		t.Errorf("XorBytes round trip = %q, want %q", decoded, plaintext)
	}
}

// encryptWithParityFeedback enciphers plaintext the way a sender that
// clocks its plaintext bits into the LFSR does, producing the ciphertext
// and parity bits XorBytesWithParityHasIn checks. XorBytesWithParity
// cannot serve here: it feeds zero, while XorBytesWithParityHasIn feeds
// the recovered plaintext, so the two registers would drift apart.
func encryptWithParityFeedback(s *State, plaintext []byte) ([]byte, []byte) {
	ciphertext := make([]byte, len(plaintext))
	parity := make([]byte, len(plaintext))
	for i, pt := range plaintext {
		ks := ClockByte(s, pt, false)
		parity[i] = byte(filter(s.Odd)) ^ oddByteParity(pt)
		ciphertext[i] = pt ^ ks
	}
	return ciphertext, parity
}

func TestXorBytesWithParityRoundTripsAndValidates(t *testing.T) {
	key := KeyFromBytes([6]byte{1, 3, 5, 7, 9, 11})
	plaintext := []byte{0x00, 0xFF, 0x5A, 0xA5, 0x81}

	s := Init(key)
	ciphertext, parity := encryptWithParityFeedback(&s, plaintext)

	s2 := Init(key)
	decoded := append([]byte(nil), ciphertext...)
	ok, err := XorBytesWithParityHasIn(&s2, decoded, parity)
	if err != nil {
		t.Fatalf("XorBytesWithParityHasIn: %v", err)
	}

	if !ok {
		t.Fatalf("XorBytesWithParityHasIn rejected parity produced by XorBytesWithParity")
	}
	if !bytes.Equal(decoded, plaintext) {
		t.Errorf("decoded = %v, want %v", decoded, plaintext)
	}
}

func TestXorBytesWithParityHasInDetectsCorruption(t *testing.T) {
	key := KeyFromBytes([6]byte{2, 4, 6, 8, 10, 12})
	plaintext := []byte{0x11, 0x22, 0x33}

	s := Init(key)
	ciphertext, parity := encryptWithParityFeedback(&s, plaintext)

	parity[1] ^= 1 // corrupt one parity bit

	s2 := Init(key)
	decoded := append([]byte(nil), ciphertext...)
	ok, err := XorBytesWithParityHasIn(&s2, decoded, parity)
	if err != nil {
		t.Fatalf("XorBytesWithParityHasIn: %v", err)
	}

	if ok {
		t.Errorf("XorBytesWithParityHasIn accepted corrupted parity")
	}
}

func TestXorBytesWithParityHasInRejectsMismatchedParityLength(t *testing.T) {
	key := KeyFromBytes([6]byte{1, 1, 1, 1, 1, 1})
	s := Init(key)
	data := []byte{1, 2, 3}

	_, err := XorBytesWithParityHasIn(&s, data, []byte{0, 1})
	if err == nil {
		t.Fatal("expected an error for mismatched parityIn length")
	}
	if !IsInvalidArgument(err) {
		t.Errorf("error = %v, want an *InvalidArgumentError", err)
	}
}

func TestEncryptWithParityBitsLayout(t *testing.T) {
	key := KeyFromBytes([6]byte{0x10, 0x20, 0x30, 0x40, 0x50, 0x60})
	plaintext := []byte{0xAB, 0xCD}

	s := Init(key)
	bits := EncryptWithParityBits(&s, plaintext)

	if len(bits) != len(plaintext)*9 {
		t.Fatalf("len(bits) = %d, want %d", len(bits), len(plaintext)*9)
	}
	for _, b := range bits {
		if b != 0 && b != 1 {
			t.Fatalf("bit value %d, want 0 or 1", b)
		}
	}
}

func TestEncryptWithParityBitsMatchesXorBytesWithParity(t *testing.T) {
	key := KeyFromBytes([6]byte{5, 5, 5, 5, 5, 5})
	plaintext := []byte{0x3C, 0x99, 0x00, 0xFF}

	s1 := Init(key)
	bits := EncryptWithParityBits(&s1, plaintext)

	s2 := Init(key)
	ciphertext := append([]byte(nil), plaintext...)
	parity := XorBytesWithParity(&s2, ciphertext)

	for i := range plaintext {
		var gotByte byte
		for b := uint(0); b < 8; b++ {
			gotByte |= bits[i*9+int(b)] << b
		}
		if gotByte != ciphertext[i] {
			t.Errorf("byte %d from bitstream = %#x, want %#x", i, gotByte, ciphertext[i])
		}
		if bits[i*9+8] != parity[i] {
			t.Errorf("byte %d parity bit from bitstream = %d, want %d", i, bits[i*9+8], parity[i])
		}
	}
}
