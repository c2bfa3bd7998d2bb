package kvstore

import "errors"

var (
	// ErrUnavailable indicates that no storage exists in the current context
	ErrUnavailable = errors.New("kvstore.unavailable")

	// ErrEmptyKey indicates an empty key was supplied
	ErrEmptyKey = errors.New("kvstore.empty_key")

	// ErrCorruptFile indicates the file backend holds something other than a JSON object of strings
	ErrCorruptFile = errors.New("kvstore.corrupt_file")
)

// Storage is the synchronous key/value capability.
type Storage interface {
	// Get returns the value stored under key. ok is false when the key is absent.
	Get(key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(key, value string) error

	// Remove deletes key. Removing a missing key is not an error.
	Remove(key string) error

	// Keys lists every key currently present.
	Keys() ([]string, error)
}

// Available reports whether s can actually persist data. Wrappers exposing
// Unwrap() Storage are looked through.
func Available(s Storage) bool {
	for s != nil {
		if _, unavailable := s.(Unavailable); unavailable {
			return false
		}
		w, ok := s.(interface{ Unwrap() Storage })
		if !ok {
			return true
		}
		s = w.Unwrap()
	}
	return false
}
