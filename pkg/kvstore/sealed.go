package kvstore

// Cipher seals values on their way into storage and opens them on the way out.
type Cipher interface {
	Seal(plaintext string) (string, error)
	Open(sealed string) (string, error)
}

// SealedStorage encrypts every value written to the wrapped Storage.
// Keys are stored in the clear.
type SealedStorage struct {
	inner  Storage
	cipher Cipher
}

// NewSealedStorage wraps inner with c.
func NewSealedStorage(inner Storage, c Cipher) *SealedStorage {
	return &SealedStorage{inner: inner, cipher: c}
}

// Unwrap returns the underlying storage.
func (s *SealedStorage) Unwrap() Storage {
	return s.inner
}

// Get opens the stored value. A value that cannot be opened, including one
// written in the clear by something else, is reported as present but empty so
// readers treat it as corrupted rather than as a storage failure.
func (s *SealedStorage) Get(key string) (string, bool, error) {
	raw, ok, err := s.inner.Get(key)
	if err != nil || !ok {
		return raw, ok, err
	}

	plain, err := s.cipher.Open(raw)
	if err != nil {
		return "", true, nil
	}
	return plain, true, nil
}

// Set seals value and stores it
func (s *SealedStorage) Set(key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}
	sealed, err := s.cipher.Seal(value)
	if err != nil {
		return err
	}
	return s.inner.Set(key, sealed)
}

// Remove deletes a key
func (s *SealedStorage) Remove(key string) error {
	return s.inner.Remove(key)
}

// Keys lists the keys of the wrapped storage
func (s *SealedStorage) Keys() ([]string, error) {
	return s.inner.Keys()
}
