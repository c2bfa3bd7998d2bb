package safeparse

import "errors"

var (
	// ErrSizeLimit indicates the raw input exceeds the configured cap
	ErrSizeLimit = errors.New("safeparse.size_limit")

	// ErrSanitization indicates binary corruption that cannot be cleaned up
	ErrSanitization = errors.New("safeparse.sanitization")

	// ErrParse indicates the input is not a single well-formed JSON value
	ErrParse = errors.New("safeparse.parse")

	// ErrValidation indicates well-formed JSON of the wrong shape
	ErrValidation = errors.New("safeparse.validation")
)
