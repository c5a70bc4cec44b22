// Package config persists viewer sessions as a flat JSON key-value
// file under the user config directory.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

const (
	appDir      = "areaviewer"
	sessionFile = "session.json"
)

// Store is a key-value map backed by one JSON file. Zero-value lookups
// fall back to the caller's default.
type Store struct {
	mu     sync.RWMutex
	values map[string]interface{}
	path   string
}

// DefaultPath returns the per-user session file location.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(configDir, appDir, sessionFile)
}

// Load reads the store at path. A missing or unreadable file yields an
// empty store bound to the same path.
func Load(path string) *Store {
	s := &Store{
		values: make(map[string]interface{}),
		path:   path,
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	_ = json.Unmarshal(data, &s.values)
	return s
}

// Save writes the store back to its file, creating the directory.
func (s *Store) Save() error {
	s.mu.RLock()
	data, err := json.MarshalIndent(s.values, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}

// Keys returns every stored key in sorted order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Float returns a float64 value, or fallback if unset or mistyped.
func (s *Store) Float(key string, fallback float64) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if v, ok := s.values[key]; ok {
		if n, ok := v.(float64); ok {
			return n
		}
	}
	return fallback
}

// SetFloat stores a float64 value.
func (s *Store) SetFloat(key string, val float64) {
	s.mu.Lock()
	s.values[key] = val
	s.mu.Unlock()
}

// Int returns an int value, or fallback if unset or mistyped. JSON
// numbers decode as float64, so that is what gets converted.
func (s *Store) Int(key string, fallback int) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if v, ok := s.values[key]; ok {
		if n, ok := v.(float64); ok {
			return int(n)
		}
	}
	return fallback
}

// SetInt stores an int value.
func (s *Store) SetInt(key string, val int) {
	s.mu.Lock()
	s.values[key] = float64(val)
	s.mu.Unlock()
}

// String returns a string value, or fallback if unset or mistyped.
func (s *Store) String(key, fallback string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if v, ok := s.values[key]; ok {
		if str, ok := v.(string); ok {
			return str
		}
	}
	return fallback
}

// SetString stores a string value.
func (s *Store) SetString(key, val string) {
	s.mu.Lock()
	s.values[key] = val
	s.mu.Unlock()
}

// Bool returns a bool value, or fallback if unset or mistyped.
func (s *Store) Bool(key string, fallback bool) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if v, ok := s.values[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return fallback
}

// SetBool stores a bool value.
func (s *Store) SetBool(key string, val bool) {
	s.mu.Lock()
	s.values[key] = val
	s.mu.Unlock()
}
