package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config describes one mf1trace run: which reader to use and which
// recorded trace file to replay the live card's exchange against.
type Config struct {
	TraceFile string        `yaml:"trace_file"`
	Runtime   RuntimeConfig `yaml:"runtime"`
}

type RuntimeConfig struct {
	ReaderIndex *int `yaml:"reader_index"`
}

// Load reads, resolves, and validates a Config from path.
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
	cfg.resolvePaths(path)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.TraceFile) == "" {
		return fmt.Errorf("config.trace_file is required")
	}
	if info, err := os.Stat(c.TraceFile); err != nil {
		return fmt.Errorf("config.trace_file: %w", err)
	} else if info.IsDir() {
		return fmt.Errorf("config.trace_file must point to a file, got directory")
	}
	if c.Runtime.ReaderIndex == nil {
		return fmt.Errorf("config.runtime.reader_index is required")
	}
	if *c.Runtime.ReaderIndex < 0 {
		return fmt.Errorf("config.runtime.reader_index must be >= 0")
	}
	return nil
}

func (c *Config) resolvePaths(configPath string) {
	dir := filepath.Dir(configPath)
	c.TraceFile = resolvePath(dir, c.TraceFile)
}

func resolvePath(baseDir, path string) string {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" || filepath.IsAbs(trimmed) {
		return trimmed
	}
	return filepath.Clean(filepath.Join(baseDir, trimmed))
}
