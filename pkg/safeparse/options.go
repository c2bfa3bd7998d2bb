package safeparse

import (
	"log/slog"

	"github.com/incomeclarity/clientstate/pkg/sanitizer"
	"github.com/incomeclarity/clientstate/pkg/validator"
)

const (
	// DefaultMaxSize caps raw input at 64 KiB.
	DefaultMaxSize = 64 << 10

	// DefaultMaxDepth bounds nesting of decoded values.
	DefaultMaxDepth = validator.MaxObjectDepth
)

// Options configure a single Parse call.
type Options struct {
	// Validator decides whether the decoded value is acceptable. Required.
	Validator validator.Predicate

	// Context labels diagnostics, e.g. the storage key being read.
	Context string

	// MaxSize is the largest accepted input in bytes. Zero or negative means DefaultMaxSize.
	MaxSize int

	// MaxDepth is the deepest accepted nesting. Zero or negative means
	// DefaultMaxDepth; larger values are capped at it.
	MaxDepth int

	// Logger receives debug-level failure diagnostics. Nil means slog.Default().
	Logger *slog.Logger
}

func (o Options) withDefaults() Options {
	o.MaxSize = sanitizer.DefaultIfNotPositive(o.MaxSize, DefaultMaxSize)
	o.MaxDepth = sanitizer.Clamp(sanitizer.DefaultIfNotPositive(o.MaxDepth, DefaultMaxDepth), 1, DefaultMaxDepth)
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}
