// Command mf1trace connects to a PC/SC reader, reads the card's UID, and
// replays a recorded authentication trace through the crypto1 engine to
// confirm a chosen key reproduces the recorded nonce encryption.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/foXaCe/mf1crypto/cmd/mf1trace/internal/config"
	"github.com/foXaCe/mf1crypto/internal/pcsc"
	"github.com/foXaCe/mf1crypto/internal/trace"
	"github.com/foXaCe/mf1crypto/pkg/crypto1"
	"golang.org/x/term"
)

func main() {
	configPath := flag.String("config", "mf1trace.yaml", "path to config file")
	verbose := flag.Bool("v", false, "enable debug logging")
	logFormat := flag.String("log-format", "text", "log format: text or json")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if *logFormat == "json" {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, opts)))
	} else {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, opts)))
	}

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

	conn, err := pcsc.Connect(*cfg.Runtime.ReaderIndex)
	if err != nil {
		slog.Error("connect to reader", "error", err)
		os.Exit(1)
	}
	defer conn.Close()

	uid, err := pcsc.GetUID(conn)
	if err != nil {
		slog.Error("read UID", "error", err)
		os.Exit(1)
	}
	fmt.Printf("Card UID: %X\n", uid)

	recordedUID, err := sess.UID4()
	if err != nil {
		slog.Error("decode recorded UID", "error", err)
		os.Exit(1)
	}
	if !uidsEqual(uid, recordedUID) {
		fmt.Printf("Warning: card UID %X does not match recorded UID %X\n", uid, recordedUID)
	}

	keys, err := sess.KeyCandidates6()
	if err != nil {
		slog.Error("decode key candidates", "error", err)
		os.Exit(1)
	}
	if len(keys) == 0 {
		fmt.Println("No candidate keys recorded in trace; nothing to verify.")
		return
	}

	items := make([]string, len(keys))
	for i, k := range keys {
		items[i] = fmt.Sprintf("%X", k)
	}
	selected := 0
	if len(items) > 1 {
		selected = selectMenu("Select a candidate key to verify against the trace:", items)
		if selected < 0 {
			fmt.Println("No key selected.")
			return
		}
	}

	ok, err := verifyKeyAgainstTrace(keys[selected], sess)
	if err != nil {
		slog.Error("verify trace", "error", err)
		os.Exit(1)
	}
	if ok {
		fmt.Printf("Key %X reproduces the recorded exchange.\n", keys[selected])
	} else {
		fmt.Printf("Key %X does NOT reproduce the recorded exchange.\n", keys[selected])
	}
}

func uidsEqual(got []byte, want [4]byte) bool {
	if len(got) != 4 {
		return false
	}
	for i := range want {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func verifyKeyAgainstTrace(key [6]byte, sess *trace.Session) (bool, error) {
	uid, err := sess.UID4()
	if err != nil {
		return false, err
	}
	tagNonce, err := sess.TagNonce4()
	if err != nil {
		return false, err
	}
	readerNonce, err := sess.ReaderNonce4()
	if err != nil {
		return false, err
	}

	_, encTagNonce := crypto1.Setup(key, uid, tagNonce)

	if sess.EncTagNonce != "" {
		recorded, err := hex4Field(sess.EncTagNonce)
		if err != nil {
			return false, err
		}
		if encTagNonce != recorded {
			return false, nil
		}
	}

	readerState, _ := crypto1.Setup(key, uid, tagNonce)
	ks := crypto1.ClockWord(&readerState, be32(readerNonce), false)
	var encReaderNonce [4]byte
	xor32(&encReaderNonce, readerNonce, ks)

	if sess.EncReaderNonce != "" {
		recorded, err := hex4Field(sess.EncReaderNonce)
		if err != nil {
			return false, err
		}
		if encReaderNonce != recorded {
			return false, nil
		}
	}

	return true, nil
}

func be32(b [4]byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

func xor32(dst *[4]byte, a [4]byte, ks uint32) {
	v := be32(a) ^ ks
	dst[0] = byte(v >> 24)
	dst[1] = byte(v >> 16)
	dst[2] = byte(v >> 8)
	dst[3] = byte(v)
}

func hex4Field(s string) ([4]byte, error) {
	var out [4]byte
	n, err := fmt.Sscanf(s, "%02x%02x%02x%02x", &out[0], &out[1], &out[2], &out[3])
	if err != nil || n != 4 {
		return out, fmt.Errorf("invalid hex field %q", s)
	}
	return out, nil
}

// selectMenu draws an arrow-key-navigable menu in raw terminal mode and
// returns the selected index, or -1 if items is empty or raw mode cannot
// be set. Ctrl-C restores the terminal and exits the process.
func selectMenu(prompt string, items []string) int {
	if len(items) == 0 {
		return -1
	}

	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error setting raw mode: %v\r\n", err)
		return -1
	}
	defer term.Restore(int(os.Stdin.Fd()), oldState)

	selected := 0
	fmt.Printf("%s\r\n", prompt)
	for i, item := range items {
		if i == selected {
			fmt.Printf("> %s\r\n", item)
		} else {
			fmt.Printf("  %s\r\n", item)
		}
	}

	buf := make([]byte, 3)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil {
			break
		}

		if n == 1 {
			switch buf[0] {
			case 0x0D, 0x0A:
				fmt.Printf("\r\n")
				return selected
			case 0x03:
				term.Restore(int(os.Stdin.Fd()), oldState)
				fmt.Printf("\r\n")
				os.Exit(0)
			}
		} else if n == 3 && buf[0] == 0x1B && buf[1] == '[' {
			needRedraw := false
			switch buf[2] {
			case 'A':
				if selected > 0 {
					selected--
					needRedraw = true
				}
			case 'B':
				if selected < len(items)-1 {
					selected++
					needRedraw = true
				}
			}
			if needRedraw {
				fmt.Printf("\033[%dA", len(items))
				for i, item := range items {
					fmt.Print("\033[2K\r")
					if i == selected {
						fmt.Printf("> %s\r\n", item)
					} else {
						fmt.Printf("  %s\r\n", item)
					}
				}
			}
		}
	}
	return selected
}
