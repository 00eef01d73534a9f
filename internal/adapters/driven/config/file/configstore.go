package file

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/qadi-labs/qadi-cli/internal/core/ports/driven"
)

var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore persists settings as a TOML file. Dotted keys map onto
// nested TOML tables, so "backend.openrouter.model" lives under the
// [backend.openrouter] table in the file.
type ConfigStore struct {
	mu   sync.RWMutex
	path string
	tree map[string]any
}

// NewConfigStore opens (or creates) the config file under configDir.
// An empty configDir defaults to ~/.qadi.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".qadi")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	s := &ConfigStore{
		path: filepath.Join(configDir, "config.toml"),
		tree: map[string]any{},
	}

	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Get returns the raw value stored under a dotted key.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return lookup(s.tree, strings.Split(key, "."))
}

// GetString returns the string value for key, or "".
func (s *ConfigStore) GetString(key string) string {
	val, _ := s.Get(key)
	str, _ := val.(string)
	return str
}

// GetInt returns the integer value for key, or 0.
func (s *ConfigStore) GetInt(key string) int {
	val, _ := s.Get(key)
	switch v := val.(type) {
	case int:
		return v
	case int64:
		// toml decodes integers as int64
		return int(v)
	}
	return 0
}

// GetBool returns the boolean value for key, or false.
func (s *ConfigStore) GetBool(key string) bool {
	val, _ := s.Get(key)
	b, _ := val.(bool)
	return b
}

// GetStringSlice returns the string slice value for key, or nil.
func (s *ConfigStore) GetStringSlice(key string) []string {
	val, _ := s.Get(key)
	switch v := val.(type) {
	case []string:
		return v
	case []any:
		// toml decodes arrays as []any
		out := make([]string, 0, len(v))
		for _, item := range v {
			if str, ok := item.(string); ok {
				out = append(out, str)
			}
		}
		return out
	}
	return nil
}

// Set stores a value under a dotted key and writes the file.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	node := s.tree
	parts := strings.Split(key, ".")
	for _, part := range parts[:len(parts)-1] {
		child, ok := node[part].(map[string]any)
		if !ok {
			child = map[string]any{}
			node[part] = child
		}
		node = child
	}
	node[parts[len(parts)-1]] = value

	return s.write()
}

// Save writes the current configuration to disk.
func (s *ConfigStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write()
}

// Load reads the config file, treating a missing file as empty.
func (s *ConfigStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.tree = map[string]any{}
			return nil
		}
		return err
	}

	tree := map[string]any{}
	if err := toml.Unmarshal(raw, &tree); err != nil {
		return err
	}
	s.tree = tree
	return nil
}

// Path returns the location of the backing configuration file.
func (s *ConfigStore) Path() string {
	return s.path
}

// write marshals the tree to disk. Callers hold the lock. The file may
// carry API keys, so permissions stay owner-only.
func (s *ConfigStore) write() error {
	raw, err := toml.Marshal(s.tree)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, 0600)
}

// lookup walks nested tables following the dotted key segments.
func lookup(node map[string]any, parts []string) (any, bool) {
	for i, part := range parts {
		val, ok := node[part]
		if !ok {
			return nil, false
		}
		if i == len(parts)-1 {
			return val, true
		}
		node, ok = val.(map[string]any)
		if !ok {
			return nil, false
		}
	}
	return nil, false
}
