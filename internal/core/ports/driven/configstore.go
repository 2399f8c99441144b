package driven

// ConfigStore reads and writes application configuration. Implementations
// own persistence (the TOML file under the state directory) and coerce
// stored values to the requested type, returning the zero value when the
// key is absent or holds a different type.
type ConfigStore interface {
	// Get retrieves a raw value and reports whether the key exists.
	Get(key string) (any, bool)

	// GetString retrieves a string value.
	GetString(key string) string

	// GetInt retrieves an integer value.
	GetInt(key string) int

	// GetFloat retrieves a floating-point value. Integer values are
	// widened, since TOML users rarely write a trailing ".0".
	GetFloat(key string) float64

	// GetBool retrieves a boolean value.
	GetBool(key string) bool

	// GetStringSlice retrieves a slice of strings.
	GetStringSlice(key string) []string

	// Set stores a value and persists it immediately.
	Set(key string, value any) error

	// Save writes the current configuration to storage.
	Save() error

	// Load reads configuration from storage.
	Load() error

	// Path reports where the configuration lives.
	Path() string
}
