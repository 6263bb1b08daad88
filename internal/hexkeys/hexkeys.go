// Package hexkeys loads MIFARE Classic 6-byte keys from .hex files, the
// same layout nfctools uses for its 16-byte AES keys: one key per file, as
// a single line of hex digits.
package hexkeys

import (
	"bufio"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// KeyFile is a key loaded from a .hex file.
type KeyFile struct {
	Name string
	Key  [6]byte
}

// LoadKeyHexFile loads a single 6-byte key from a .hex file containing one
// line of 12 hex characters.
func LoadKeyHexFile(path string) ([6]byte, error) {
	var key [6]byte

	f, err := os.Open(path)
	if err != nil {
		return key, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if len(line) != 12 {
			return key, fmt.Errorf("key must be 12 hex chars, got %d", len(line))
		}
		decoded, err := hex.DecodeString(line)
		if err != nil {
			return key, fmt.Errorf("invalid hex key: %w", err)
		}
		copy(key[:], decoded)
		return key, nil
	}
	if err := scanner.Err(); err != nil {
		return key, err
	}
	return key, errors.New("key file is empty")
}

// LoadAllHexKeys loads every .hex key file in dir, skipping files that
// don't parse as a 6-byte key.
func LoadAllHexKeys(dir string) ([]KeyFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var keys []KeyFile
	for _, e := range entries {
		if e.IsDir() || strings.ToLower(filepath.Ext(e.Name())) != ".hex" {
			continue
		}
		path := filepath.Join(dir, e.Name())
		key, err := LoadKeyHexFile(path)
		if err != nil {
			continue
		}
		keys = append(keys, KeyFile{Name: e.Name(), Key: key})
	}
	return keys, nil
}
