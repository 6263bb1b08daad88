package config

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config describes one mf1rollback run: the LFSR state as it stood after
// the last clock in a captured trace, and the sequence of input bits that
// trace recorded, walked backward one bit at a time.
type Config struct {
	StartOdd  string `yaml:"start_odd"`
	StartEven string `yaml:"start_even"`
	Encrypted bool   `yaml:"encrypted"`
	Inputs    []int  `yaml:"inputs"`
}

// Load reads and validates a Config from path.
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse config yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.StartOdd) == "" || strings.TrimSpace(c.StartEven) == "" {
		return fmt.Errorf("config.start_odd and config.start_even are required")
	}
	if _, err := c.StartOddUint32(); err != nil {
		return fmt.Errorf("config.start_odd: %w", err)
	}
	if _, err := c.StartEvenUint32(); err != nil {
		return fmt.Errorf("config.start_even: %w", err)
	}
	for i, v := range c.Inputs {
		if v != 0 && v != 1 {
			return fmt.Errorf("config.inputs[%d] must be 0 or 1, got %d", i, v)
		}
	}
	return nil
}

// StartOddUint32 parses start_odd as a hex-encoded 24-bit register value.
func (c *Config) StartOddUint32() (uint32, error) {
	return parseHexUint32(c.StartOdd)
}

// StartEvenUint32 parses start_even as a hex-encoded 24-bit register value.
func (c *Config) StartEvenUint32() (uint32, error) {
	return parseHexUint32(c.StartEven)
}

func parseHexUint32(s string) (uint32, error) {
	v, err := strconv.ParseUint(strings.TrimPrefix(strings.TrimSpace(s), "0x"), 16, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}
