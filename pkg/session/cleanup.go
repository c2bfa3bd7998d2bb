package session

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/incomeclarity/clientstate/pkg/kvstore"
	"github.com/incomeclarity/clientstate/pkg/logger"
	"github.com/incomeclarity/clientstate/pkg/safeparse"
	"github.com/incomeclarity/clientstate/pkg/validator"
)

// Report summarizes one cleanup pass.
type Report struct {
	RunID uuid.UUID

	// Checked lists the keys that were present and parsed.
	Checked []string

	// Removed lists the keys deleted because their value was corrupted.
	Removed []string

	// Errors holds per-key storage failures. The pass continues past them.
	Errors map[string]error
}

// Clean reports whether the pass found nothing to remove and hit no errors.
func (r Report) Clean() bool {
	return len(r.Removed) == 0 && len(r.Errors) == 0
}

type cleanupConfig struct {
	registry *validator.Registry
	maxSize  int
	logger   *slog.Logger
}

// CleanupOption configures CleanupCorruptedStorage
type CleanupOption func(*cleanupConfig)

// WithCleanupRegistry sets the validator registry
func WithCleanupRegistry(r *validator.Registry) CleanupOption {
	return func(c *cleanupConfig) {
		if r != nil {
			c.registry = r
		}
	}
}

// WithCleanupMaxSize sets the largest stored value accepted, in bytes
func WithCleanupMaxSize(n int) CleanupOption {
	return func(c *cleanupConfig) {
		c.maxSize = n
	}
}

// WithCleanupLogger sets the logger
func WithCleanupLogger(l *slog.Logger) CleanupOption {
	return func(c *cleanupConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// CleanupCorruptedStorage runs every key in keys through the parser with its
// kind's validator and removes the ones that fail. It only deletes, so a
// second pass over the same storage removes nothing. Unavailable storage is a
// silent no-op. Keys bound to a kind missing from the registry are reported
// and left in place.
func CleanupCorruptedStorage(store kvstore.Storage, keys KeySet, opts ...CleanupOption) (report Report) {
	cfg := cleanupConfig{
		registry: validator.DefaultRegistry(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	report = Report{
		RunID:  uuid.New(),
		Errors: make(map[string]error),
	}
	if !kvstore.Available(store) {
		return report
	}

	log := cfg.logger.With(logger.RunID(report.RunID))
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			log.Error("cleanup aborted by storage panic", logger.Event("cleanup.panic"), slog.Any("panic", r))
		}
	}()

	for _, k := range keys {
		raw, found, err := store.Get(k.Name)
		if err != nil {
			report.Errors[k.Name] = err
			log.Warn("failed to read key during cleanup",
				logger.Event("cleanup.read_failed"),
				logger.StorageKey(k.Name),
				logger.Error(err),
			)
			continue
		}
		if !found {
			continue
		}

		predicate, ok := cfg.registry.Lookup(k.Kind)
		if !ok {
			report.Errors[k.Name] = fmt.Errorf("%w: %s", ErrUnknownKind, k.Kind)
			log.Warn("no validator for key", logger.StorageKey(k.Name), logger.Kind(string(k.Kind)))
			continue
		}

		report.Checked = append(report.Checked, k.Name)
		res := safeparse.Parse(raw, safeparse.Options{
			Validator: predicate,
			Context:   k.Name,
			MaxSize:   cfg.maxSize,
			Logger:    log,
		})
		if res.Success {
			continue
		}

		if err := store.Remove(k.Name); err != nil {
			report.Errors[k.Name] = err
			log.Warn("failed to remove corrupted key",
				logger.Event("cleanup.remove_failed"),
				logger.StorageKey(k.Name),
				logger.Error(err),
			)
			continue
		}
		report.Removed = append(report.Removed, k.Name)
		log.Info("removed corrupted key",
			logger.Event("cleanup.removed"),
			logger.StorageKey(k.Name),
			logger.Kind(string(k.Kind)),
			logger.Stage(string(res.Stage)),
		)
	}

	failed := make([]error, 0, len(report.Errors))
	for _, err := range report.Errors {
		failed = append(failed, err)
	}
	log.Debug("cleanup finished",
		logger.Group("keys",
			logger.Count("checked", len(report.Checked)),
			logger.Count("removed", len(report.Removed)),
			logger.Count("failed", len(report.Errors)),
		),
		logger.Errors(failed...),
		logger.Duration(time.Since(start)),
	)
	return report
}
