package driven

// ConfigStore is flat key/value configuration addressed by dotted keys
// such as "viewer.dpi". The typed getters return the zero value when a key
// is missing or holds another type.
type ConfigStore interface {
	Get(key string) (any, bool)
	GetString(key string) string
	GetInt(key string) int
	// GetFloat widens integer values.
	GetFloat(key string) float64
	GetBool(key string) bool

	// Keys lists the stored keys sorted.
	Keys() []string

	// Set stores value and persists it before returning.
	Set(key string, value any) error

	// Path locates the backing file, or a pseudo-path for stores without one.
	Path() string
}
