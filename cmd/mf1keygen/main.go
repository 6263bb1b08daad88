// Command mf1keygen checks a directory of candidate MIFARE Classic keys
// against a recorded authentication trace and reports which one, if any,
// reproduces the recorded nonce encryption. It is a bounded verification
// against a caller-supplied key list, not a key-search strategy.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/foXaCe/mf1crypto/cmd/mf1keygen/internal/config"
	"github.com/foXaCe/mf1crypto/internal/hexkeys"
	"github.com/foXaCe/mf1crypto/internal/trace"
	"github.com/foXaCe/mf1crypto/pkg/crypto1"
)

func main() {
	configPath := flag.String("config", "mf1keygen.yaml", "path to config file")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	sess, err := trace.Load(cfg.TraceFile)
	if err != nil {
		slog.Error("load trace", "error", err)
		os.Exit(1)
	}

	keyFiles, err := hexkeys.LoadAllHexKeys(cfg.KeysDir)
	if err != nil {
		slog.Error("load keys", "error", err)
		os.Exit(1)
	}
	if len(keyFiles) == 0 {
		fmt.Println("No .hex key files found in", cfg.KeysDir)
		return
	}

	uid, err := sess.UID4()
	if err != nil {
		slog.Error("decode UID", "error", err)
		os.Exit(1)
	}
	tagNonce, err := sess.TagNonce4()
	if err != nil {
		slog.Error("decode tag nonce", "error", err)
		os.Exit(1)
	}
	var wantEncTagNonce [4]byte
	hasWant := sess.EncTagNonce != ""
	if hasWant {
		wantEncTagNonce, err = decodeHex4(sess.EncTagNonce)
		if err != nil {
			slog.Error("decode enc_tag_nonce", "error", err)
			os.Exit(1)
		}
	}

	fmt.Printf("Checking %d candidate key(s) against trace %s\n", len(keyFiles), cfg.TraceFile)
	found := false
	for _, kf := range keyFiles {
		_, encNonce := crypto1.Setup(kf.Key, uid, tagNonce)
		if !hasWant {
			fmt.Printf("  %-20s -> enc_tag_nonce=%X (no recorded value to compare)\n", kf.Name, encNonce)
			continue
		}
		if encNonce == wantEncTagNonce {
			fmt.Printf("  %-20s MATCH (key=%X)\n", kf.Name, kf.Key)
			found = true
		}
	}
	if hasWant && !found {
		fmt.Println("No candidate key reproduced the recorded trace.")
	}
}

func decodeHex4(s string) ([4]byte, error) {
	var out [4]byte
	n, err := fmt.Sscanf(s, "%02x%02x%02x%02x", &out[0], &out[1], &out[2], &out[3])
	if err != nil || n != 4 {
		return out, fmt.Errorf("invalid hex field %q", s)
	}
	return out, nil
}
