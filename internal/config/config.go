// Package config loads the yaml configuration consumed by the demo
// binary: which key material backs the demo session pair, the
// sequence/nonce starting point, and the enforcement policy bits
// passed through to linkframe.Session.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/barnettlynn/linkguard/pkg/linkframe"
)

// Config is the top-level shape of a demo configuration file.
type Config struct {
	Session SessionConfig `yaml:"session"`
	Policy  PolicyConfig  `yaml:"policy"`
}

// SessionConfig identifies the pre-shared key and starting counters
// the demo uses to build a sender/receiver session pair.
type SessionConfig struct {
	KeyID      *uint32 `yaml:"key_id"`
	KeyHexFile string  `yaml:"key_hex_file"`
	Nonce      *uint64 `yaml:"nonce"`
	StartSeq   *uint32 `yaml:"start_seq"`
}

// PolicyConfig mirrors linkframe.Policy; both fields default to true
// when omitted, matching linkframe.DefaultPolicy.
type PolicyConfig struct {
	RequireAuthForCommands *bool `yaml:"require_auth_for_commands"`
	FailClosedOnMissingKey *bool `yaml:"fail_closed_on_missing_key"`
}

// Load reads, decodes, resolves relative paths in, and validates the
// config file at path.
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

// Validate checks that the required fields are set and that
// key_hex_file names an existing file rather than a directory.
func (c *Config) Validate() error {
	if c.Session.KeyID == nil {
		return fmt.Errorf("config.session.key_id is required")
	}
	if strings.TrimSpace(c.Session.KeyHexFile) == "" {
		return fmt.Errorf("config.session.key_hex_file is required")
	}
	if info, err := os.Stat(c.Session.KeyHexFile); err != nil {
		return fmt.Errorf("config.session.key_hex_file: %w", err)
	} else if info.IsDir() {
		return fmt.Errorf("config.session.key_hex_file must point to a file, got directory")
	}
	return nil
}

// Policy converts the config's policy bits into a linkframe.Policy,
// applying linkframe.DefaultPolicy's true/true default for any field
// left unset in the file.
func (c *Config) Policy() linkframe.Policy {
	p := linkframe.DefaultPolicy()
	if c.Policy.RequireAuthForCommands != nil {
		p.RequireAuthForCommands = *c.Policy.RequireAuthForCommands
	}
	if c.Policy.FailClosedOnMissingKey != nil {
		p.FailClosedOnMissingKey = *c.Policy.FailClosedOnMissingKey
	}
	return p
}

func (c *Config) resolvePaths(configPath string) {
	configDir := filepath.Dir(configPath)
	c.Session.KeyHexFile = resolvePath(configDir, c.Session.KeyHexFile)
}

func resolvePath(baseDir, path string) string {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" || filepath.IsAbs(trimmed) {
		return trimmed
	}
	return filepath.Clean(filepath.Join(baseDir, trimmed))
}
