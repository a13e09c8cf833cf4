// Package filestore implements linkframe.Keystore backed by a yaml
// manifest mapping key ids to hex-encoded key files on disk, adapted
// from the teacher's flat .hex key file convention.
package filestore

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/barnettlynn/linkguard/pkg/linkframe"
)

// Entry is one manifest line: a key id and the hex file holding its
// symmetric key material.
type Entry struct {
	ID      uint32 `yaml:"id"`
	HexFile string `yaml:"hex_file"`
}

// Manifest is the yaml document loaded by Load.
type Manifest struct {
	Keys []Entry `yaml:"keys"`
}

// Store is a linkframe.Keystore that resolves key ids against key
// material loaded once at startup from hex files on disk. Lookup is
// safe for concurrent callers (spec requirement on the Keystore
// contract); keys are not modified after Load returns, and Lookup
// reads them under a read lock.
type Store struct {
	mu   sync.RWMutex
	keys map[uint32][]byte
}

var _ linkframe.Keystore = (*Store)(nil)

// Load reads the manifest at path, resolving each entry's hex_file
// relative to the manifest's directory, and loads every key.
func Load(path string) (*Store, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("parse manifest yaml: %w", err)
	}

	baseDir := filepath.Dir(path)
	keys := make(map[uint32][]byte, len(m.Keys))
	for _, e := range m.Keys {
		if _, dup := keys[e.ID]; dup {
			return nil, fmt.Errorf("manifest: duplicate key id %d", e.ID)
		}
		hexFile := e.HexFile
		if !filepath.IsAbs(hexFile) {
			hexFile = filepath.Join(baseDir, hexFile)
		}
		key, err := LoadKeyHexFile(hexFile)
		if err != nil {
			return nil, fmt.Errorf("key id %d: %w", e.ID, err)
		}
		keys[e.ID] = key
	}

	return &Store{keys: keys}, nil
}

// Lookup implements linkframe.Keystore.
func (s *Store) Lookup(keyID uint32, out []byte) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key, ok := s.keys[keyID]
	if !ok {
		return 0, linkframe.ErrKeyNotFound
	}
	if len(out) < len(key) {
		return 0, linkframe.ErrShortBuffer
	}
	return copy(out, key), nil
}

// LoadKeyHexFile loads a symmetric key from a file containing a single
// line of hex-encoded bytes.
func LoadKeyHexFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		key, err := hex.DecodeString(line)
		if err != nil {
			return nil, fmt.Errorf("invalid hex key: %w", err)
		}
		return key, nil
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return nil, errors.New("key file is empty")
}
