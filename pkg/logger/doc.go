// Package logger builds *slog.Logger instances with functional options,
// environment presets, helper attribute constructors, and transparent
// injection of values stored in context.Context.
//
// New creates a logger configured by Option functions:
//
//   - WithDevelopment / WithStaging / WithProduction / WithEnvironment – presets
//   - WithFormat / WithTextFormatter / WithJSONFormatter – output format
//   - WithLevel, WithOutput, WithAttr
//   - WithContextExtractors – attributes pulled from context
//
// FromConfig does the same from a Config populated by pkg/config.
//
// Helper constructors in attr.go (Error, Component, Kind, StorageKey, Stage,
// ...) keep attribute naming consistent across the client state packages.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithDevelopment("clientstate"),
//	    logger.WithContextExtractors(session.LoggerExtractor()),
//	)
//	log.Info("session cleared", logger.Component("session"), logger.Event("logout"))
//
// Error and Errors produce attributes only for non-nil errors, so
//
//	log.Info("cleanup finished", logger.Error(err))
//
// needs no nil check.
package logger
