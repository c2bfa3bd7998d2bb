package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/incomeclarity/clientstate/pkg/kvstore"
	"github.com/incomeclarity/clientstate/pkg/logger"
	"github.com/incomeclarity/clientstate/pkg/safeparse"
	"github.com/incomeclarity/clientstate/pkg/validator"
)

// State is the authentication state visible to callers.
type State int

const (
	NoSession State = iota
	ValidSession
	ExpiredSession
)

func (s State) String() string {
	switch s {
	case ValidSession:
		return "valid"
	case ExpiredSession:
		return "expired"
	default:
		return "none"
	}
}

// sessionScoped are the kinds cleared together with the session.
var sessionScoped = []validator.Kind{validator.KindSession, validator.KindCredentials}

// Gateway is the only way the application reads identity state from client storage.
type Gateway struct {
	store    kvstore.Storage
	config   Config
	keys     KeySet
	registry *validator.Registry
	logger   *slog.Logger
	now      func() time.Time
}

// New creates a gateway over store. A nil store behaves as unavailable storage.
func New(store kvstore.Storage, opts ...Option) *Gateway {
	g := &Gateway{
		store:    store,
		config:   DefaultConfig(),
		registry: validator.DefaultRegistry(),
		logger:   slog.Default(),
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(g)
	}

	if g.store == nil {
		g.store = kvstore.Unavailable{}
	}
	if g.keys == nil {
		g.keys = DefaultKeys(g.config.KeyPrefix)
	}
	g.logger = g.logger.With(logger.Component("session"))

	return g
}

// Keys returns the key set the gateway manages.
func (g *Gateway) Keys() KeySet { return g.keys }

// GetSession returns the stored record, or nil when there is none or it is
// corrupted. A returned record always satisfies the session invariants.
func (g *Gateway) GetSession() *Record {
	rec, _ := g.read()
	return rec
}

// IsAuthenticated reports whether a valid record exists and has not expired.
func (g *Gateway) IsAuthenticated() bool {
	return g.State() == ValidSession
}

// State classifies the stored session. Corruption reads as NoSession.
func (g *Gateway) State() State {
	rec, _ := g.read()
	switch {
	case rec == nil:
		return NoSession
	case rec.ExpiredAt(g.now()):
		return ExpiredSession
	default:
		return ValidSession
	}
}

// ClearSession removes the session key and the keys derived from it.
// Storage errors are logged, never returned.
func (g *Gateway) ClearSession() {
	defer g.recoverStorage("clear")

	for _, kind := range sessionScoped {
		key, ok := g.keys.Lookup(kind)
		if !ok {
			continue
		}
		if err := g.store.Remove(key); err != nil {
			g.logger.Warn("failed to remove session key",
				logger.Event("session.clear_failed"),
				logger.StorageKey(key),
				logger.Error(err),
			)
		}
	}
}

// SaveSession validates rec and replaces the stored record with it.
func (g *Gateway) SaveSession(rec Record) error {
	if !kvstore.Available(g.store) {
		return ErrStorageUnavailable
	}
	key, ok := g.keys.Lookup(validator.KindSession)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKind, validator.KindSession)
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return errors.Join(ErrInvalidRecord, err)
	}

	// The write path applies the read path's checks so a saved record is always readable.
	if res := safeparse.Parse(string(data), g.parseOptions(key, validator.KindSession)); !res.Success {
		return errors.Join(ErrInvalidRecord, res.Err)
	}

	if err := g.store.Set(key, string(data)); err != nil {
		return fmt.Errorf("session: save %s: %w", key, err)
	}
	return nil
}

// CleanupCorruptedStorage removes every managed key whose value fails its validator.
func (g *Gateway) CleanupCorruptedStorage() Report {
	return CleanupCorruptedStorage(g.store, g.keys,
		WithCleanupRegistry(g.registry),
		WithCleanupMaxSize(g.config.MaxSize),
		WithCleanupLogger(g.logger),
	)
}

// read loads and validates the session record. corrupted is true when a
// value was present but rejected.
func (g *Gateway) read() (rec *Record, corrupted bool) {
	defer g.recoverStorage("read")

	key, ok := g.keys.Lookup(validator.KindSession)
	if !ok {
		return nil, false
	}

	raw, found, err := g.store.Get(key)
	if err != nil {
		g.logger.Warn("failed to read session key",
			logger.Event("session.read_failed"),
			logger.StorageKey(key),
			logger.Error(err),
		)
		return nil, false
	}
	if !found {
		return nil, false
	}

	res := safeparse.Parse(raw, g.parseOptions(key, validator.KindSession))
	stage, cause := res.Stage, res.Err

	var parsed Record
	if res.Success {
		if parsed, cause = RecordFromValue(res.Data); cause != nil {
			stage = safeparse.StageValidate
		}
	}
	if cause != nil {
		g.logger.Warn("discarding corrupted session",
			logger.Event("session.corrupted"),
			logger.StorageKey(key),
			logger.Stage(string(stage)),
			logger.Error(cause),
		)
		if g.config.ClearOnCorruption {
			g.ClearSession()
		}
		return nil, true
	}

	return &parsed, false
}

func (g *Gateway) parseOptions(key string, kind validator.Kind) safeparse.Options {
	p, _ := g.registry.Lookup(kind)
	return safeparse.Options{
		Validator: p,
		Context:   key,
		MaxSize:   g.config.MaxSize,
		Logger:    g.logger,
	}
}

// recoverStorage keeps a misbehaving storage backend from crashing the caller.
func (g *Gateway) recoverStorage(op string) {
	if r := recover(); r != nil {
		g.logger.Error("storage backend panicked",
			logger.Event("session.storage_panic"),
			slog.String("op", op),
			slog.Any("panic", r),
		)
	}
}
