package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config describes one mf1keygen run: a directory of candidate .hex keys
// and the recorded trace to check each one against.
type Config struct {
	KeysDir   string `yaml:"keys_dir"`
	TraceFile string `yaml:"trace_file"`
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
	if strings.TrimSpace(c.KeysDir) == "" {
		return fmt.Errorf("config.keys_dir is required")
	}
	if info, err := os.Stat(c.KeysDir); err != nil {
		return fmt.Errorf("config.keys_dir: %w", err)
	} else if !info.IsDir() {
		return fmt.Errorf("config.keys_dir must be a directory")
	}
	if strings.TrimSpace(c.TraceFile) == "" {
		return fmt.Errorf("config.trace_file is required")
	}
	if info, err := os.Stat(c.TraceFile); err != nil {
		return fmt.Errorf("config.trace_file: %w", err)
	} else if info.IsDir() {
		return fmt.Errorf("config.trace_file must point to a file, got directory")
	}
	return nil
}

func (c *Config) resolvePaths(configPath string) {
	dir := filepath.Dir(configPath)
	c.KeysDir = resolvePath(dir, c.KeysDir)
	c.TraceFile = resolvePath(dir, c.TraceFile)
}

func resolvePath(baseDir, path string) string {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" || filepath.IsAbs(trimmed) {
		return trimmed
	}
	return filepath.Clean(filepath.Join(baseDir, trimmed))
}
