// Package trace loads a recorded MIFARE Classic authentication exchange
// from YAML so the diagnostic tools under cmd/ can replay it through the
// crypto1 engine instead of needing a live card for every run. mf1trace
// and mf1keygen both consume this same file format, so it lives here
// rather than duplicated under each tool's own config package.
package trace

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Session is one recorded tag/reader authentication exchange.
type Session struct {
	UID              string `yaml:"uid"`
	TagNonce         string `yaml:"tag_nonce"`
	ReaderNonce      string `yaml:"reader_nonce"`
	EncTagNonce      string `yaml:"enc_tag_nonce,omitempty"`
	EncReaderNonce   string `yaml:"enc_reader_nonce,omitempty"`
	ReaderAuthParity []int  `yaml:"reader_auth_parity,omitempty"`
	Keys             []string `yaml:"keys,omitempty"`
}

// Load reads and parses a Session from path.
func Load(path string) (*Session, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read trace: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)

	var s Session
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("parse trace yaml: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the required fields are present and well formed.
func (s *Session) Validate() error {
	if _, err := hex4(s.UID); err != nil {
		return fmt.Errorf("trace.uid: %w", err)
	}
	if _, err := hex4(s.TagNonce); err != nil {
		return fmt.Errorf("trace.tag_nonce: %w", err)
	}
	if _, err := hex4(s.ReaderNonce); err != nil {
		return fmt.Errorf("trace.reader_nonce: %w", err)
	}
	for _, k := range s.Keys {
		if _, err := hex6(k); err != nil {
			return fmt.Errorf("trace.keys: %w", err)
		}
	}
	return nil
}

// UID4 returns the recorded UID as 4 bytes.
func (s *Session) UID4() ([4]byte, error) { return hex4(s.UID) }

// TagNonce4 returns the recorded tag nonce as 4 bytes.
func (s *Session) TagNonce4() ([4]byte, error) { return hex4(s.TagNonce) }

// ReaderNonce4 returns the recorded reader nonce as 4 bytes.
func (s *Session) ReaderNonce4() ([4]byte, error) { return hex4(s.ReaderNonce) }

// KeyCandidates6 returns every recorded candidate key as 6 bytes.
func (s *Session) KeyCandidates6() ([][6]byte, error) {
	out := make([][6]byte, 0, len(s.Keys))
	for _, k := range s.Keys {
		key, err := hex6(k)
		if err != nil {
			return nil, err
		}
		out = append(out, key)
	}
	return out, nil
}

func hex4(s string) ([4]byte, error) {
	var out [4]byte
	b, err := hex.DecodeString(s)
	if err != nil {
		return out, fmt.Errorf("invalid hex %q: %w", s, err)
	}
	if len(b) != 4 {
		return out, fmt.Errorf("%q must decode to 4 bytes, got %d", s, len(b))
	}
	copy(out[:], b)
	return out, nil
}

func hex6(s string) ([6]byte, error) {
	var out [6]byte
	b, err := hex.DecodeString(s)
	if err != nil {
		return out, fmt.Errorf("invalid hex %q: %w", s, err)
	}
	if len(b) != 6 {
		return out, fmt.Errorf("%q must decode to 6 bytes, got %d", s, len(b))
	}
	copy(out[:], b)
	return out, nil
}
