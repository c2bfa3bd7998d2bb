package validator

import (
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Kind names a category of data persisted in client storage.
type Kind string

const (
	KindSession       Kind = "session"
	KindCredentials   Kind = "credentials"
	KindNotifications Kind = "notifications"
	KindPreferences   Kind = "preferences"
)

// Predicate reports whether a decoded JSON value has the shape expected for a kind.
// Predicates must be pure; any unexpected shape is false.
type Predicate func(value any) bool

// Registry maps data kinds to their predicates.
type Registry struct {
	mu         sync.RWMutex
	predicates map[Kind]Predicate
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{predicates: make(map[Kind]Predicate)}
}

// DefaultRegistry creates a registry holding the built-in kinds.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(KindSession, SessionRecord)
	r.Register(KindCredentials, CachedCredentials)
	r.Register(KindNotifications, NotificationList)
	r.Register(KindPreferences, Preferences)
	return r
}

// Register adds or replaces the predicate for kind. The predicate is wrapped
// with Safe. Panics on an empty kind or nil predicate: registration happens at
// startup and a broken registry must not boot.
func (r *Registry) Register(kind Kind, p Predicate) {
	if kind == "" {
		panic("validator: empty kind")
	}
	if p == nil {
		panic(fmt.Sprintf("validator: nil predicate for kind %q", kind))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.predicates[kind] = Safe(p)
}

// Lookup returns the predicate for kind.
func (r *Registry) Lookup(kind Kind) (Predicate, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.predicates[kind]
	return p, ok
}

// Validate runs the predicate for kind. Unknown kinds are invalid.
func (r *Registry) Validate(kind Kind, value any) bool {
	p, ok := r.Lookup(kind)
	if !ok {
		return false
	}
	return p(value)
}

// Kinds returns the registered kinds in lexical order.
func (r *Registry) Kinds() []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.predicates))
}

// Safe turns a panic inside p into false.
func Safe(p Predicate) Predicate {
	return func(value any) (ok bool) {
		defer func() {
			if recover() != nil {
				ok = false
			}
		}()
		return p(value)
	}
}

// FromCheck adapts a Check function into a Predicate.
func FromCheck(check func(value any) error) Predicate {
	return func(value any) bool {
		return check(value) == nil
	}
}
