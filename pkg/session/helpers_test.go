package session_test

import (
	"errors"
	"log/slog"
	"time"

	"github.com/incomeclarity/clientstate/pkg/kvstore"
	"github.com/incomeclarity/clientstate/pkg/session"
)

const (
	sessionKey       = "income_clarity_session"
	credentialsKey   = "income_clarity_credentials"
	notificationsKey = "income_clarity_notifications"
	preferencesKey   = "income_clarity_preferences"

	validRaw     = `{"user":{"id":"u1","email":"a@example.com"},"session_token":"tok123","expires_at":"2099-01-01T00:00:00Z"}`
	expiredRaw   = `{"user":{"id":"u1","email":"a@example.com"},"session_token":"tok","expires_at":"2000-01-01T00:00:00Z"}`
	truncatedRaw = `{"user":{"id":"u1","email":"a@example.com"`
	confusedRaw  = `{"user":[],"session_token":123,"expires_at":false}`
)

var errBackend = errors.New("backend failure")

func discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newGateway(store kvstore.Storage, opts ...session.Option) *session.Gateway {
	return session.New(store, append([]session.Option{session.WithLogger(discard())}, opts...)...)
}

// faultyStorage fails or panics on selected keys.
type faultyStorage struct {
	*kvstore.MemoryStorage
	failGet    map[string]bool
	failRemove map[string]bool
	panicGet   bool
}

func (f *faultyStorage) Get(key string) (string, bool, error) {
	if f.panicGet {
		panic("backend exploded")
	}
	if f.failGet[key] {
		return "", false, errBackend
	}
	return f.MemoryStorage.Get(key)
}

func (f *faultyStorage) Remove(key string) error {
	if f.failRemove[key] {
		return errBackend
	}
	return f.MemoryStorage.Remove(key)
}
