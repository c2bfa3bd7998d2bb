package session

import "github.com/incomeclarity/clientstate/pkg/validator"

// DefaultKeyPrefix namespaces every key the application writes.
const DefaultKeyPrefix = "income_clarity_"

// Key binds a storage key to the kind of data it holds.
type Key struct {
	Name string
	Kind validator.Kind
}

// KeySet is the fixed list of keys the application persists.
type KeySet []Key

// DefaultKeys returns the application's keys under prefix.
func DefaultKeys(prefix string) KeySet {
	return KeySet{
		{Name: prefix + "session", Kind: validator.KindSession},
		{Name: prefix + "credentials", Kind: validator.KindCredentials},
		{Name: prefix + "notifications", Kind: validator.KindNotifications},
		{Name: prefix + "preferences", Kind: validator.KindPreferences},
	}
}

// Lookup returns the first key holding kind.
func (ks KeySet) Lookup(kind validator.Kind) (string, bool) {
	for _, k := range ks {
		if k.Kind == kind {
			return k.Name, true
		}
	}
	return "", false
}

// Names returns the storage keys in order.
func (ks KeySet) Names() []string {
	names := make([]string, 0, len(ks))
	for _, k := range ks {
		names = append(names, k.Name)
	}
	return names
}
