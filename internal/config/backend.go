package config

// Backend persists non-secret config values as strings keyed by their dotted
// name. Values are parsed and validated by the key table, so a backend never
// needs to know a key's type.
type Backend interface {
	// Lookup reports ok=false for a key that was never stored.
	Lookup(key string) (val string, ok bool, err error)
	Store(key, val string) error
	// Remove is a no-op for a key that was never stored.
	Remove(key string) error
}
