package session

// Storage defines the interface for persisted credential storage.
// Implementations: file-backed (prod), in-memory (test).
type Storage interface {
	// Get retrieves a value by key. The second return is false when the
	// key is absent.
	Get(key string) (string, bool)

	// Set stores a value under a key
	Set(key, value string) error

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(key string) error
}
