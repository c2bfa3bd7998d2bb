package session

import (
	"context"
	"log/slog"

	"github.com/incomeclarity/clientstate/pkg/logger"
)

type recordContextKey struct{}

// WithContext adds a session record to the context
func WithContext(ctx context.Context, rec *Record) context.Context {
	return context.WithValue(ctx, recordContextKey{}, rec)
}

// FromContext retrieves a session record from the context
func FromContext(ctx context.Context) (*Record, bool) {
	rec, ok := ctx.Value(recordContextKey{}).(*Record)
	return rec, ok && rec != nil
}

// MustFromContext retrieves a session record from the context or panics
func MustFromContext(ctx context.Context) *Record {
	rec, ok := FromContext(ctx)
	if !ok {
		panic("session: not found in context")
	}
	return rec
}

// UserIDFromContext retrieves the user ID from the record in context
func UserIDFromContext(ctx context.Context) (string, bool) {
	rec, ok := FromContext(ctx)
	if !ok {
		return "", false
	}
	return rec.User.ID, true
}

// LoggerExtractor adds "user_id" to log records whose context carries a session.
func LoggerExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		id, ok := UserIDFromContext(ctx)
		if !ok || id == "" {
			return slog.Attr{}, false
		}
		return logger.UserID(id), true
	}
}
