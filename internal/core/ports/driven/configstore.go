package driven

// ConfigStore reads and writes persistent application settings keyed by
// dotted paths, e.g. "backend.openrouter.model" or "chunk.size".
type ConfigStore interface {
	// Get returns the raw value for key and whether it exists.
	Get(key string) (any, bool)

	// GetString returns the string value for key, or "" when the key
	// is missing or holds a different type.
	GetString(key string) string

	// GetInt returns the integer value for key, or 0 when missing.
	GetInt(key string) int

	// GetBool returns the boolean value for key, or false when missing.
	GetBool(key string) bool

	// GetStringSlice returns the slice value for key, or nil when missing.
	GetStringSlice(key string) []string

	// Set stores a value under key and persists it immediately.
	Set(key string, value any) error

	// Save writes the current configuration to storage.
	Save() error

	// Load reads configuration from storage.
	Load() error

	// Path returns the location of the backing configuration file.
	Path() string
}
