package kvstore

// Unavailable is the Storage used when the execution context has none.
// Reads see an empty store and removals are silently accepted.
type Unavailable struct{}

func (Unavailable) Get(string) (string, bool, error) { return "", false, nil }
func (Unavailable) Set(string, string) error         { return ErrUnavailable }
func (Unavailable) Remove(string) error              { return nil }
func (Unavailable) Keys() ([]string, error)          { return nil, nil }
