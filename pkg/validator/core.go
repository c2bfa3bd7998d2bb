package validator

import (
	"errors"
	"slices"
	"strings"
)

// ValidationError describes one failed rule. Code is a stable machine
// identifier such as "validation.timestamp"; Params holds its arguments.
type ValidationError struct {
	Field   string
	Code    string
	Message string
	Params  map[string]any
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors is the error returned by Apply.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(ve))
	for i, e := range ve {
		parts[i] = e.Error()
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (ve *ValidationErrors) Add(err ValidationError) {
	*ve = append(*ve, err)
}

// Has reports whether any error concerns field.
func (ve ValidationErrors) Has(field string) bool {
	return slices.ContainsFunc(ve, func(e ValidationError) bool { return e.Field == field })
}

// Fields lists the failing fields once each, in first-seen order.
func (ve ValidationErrors) Fields() []string {
	var fields []string
	for _, e := range ve {
		if !slices.Contains(fields, e.Field) {
			fields = append(fields, e.Field)
		}
	}
	return fields
}

func (ve ValidationErrors) IsEmpty() bool {
	return len(ve) == 0
}

// Rule pairs a check with the error reported when it fails.
// A Rule with a nil Check always passes.
type Rule struct {
	Check func() bool
	Error ValidationError
}

// Apply runs every rule and returns the failures as ValidationErrors, or nil.
func Apply(rules ...Rule) error {
	var failed ValidationErrors
	for _, r := range rules {
		if r.Check != nil && !r.Check() {
			failed = append(failed, r.Error)
		}
	}
	if failed.IsEmpty() {
		return nil
	}
	return failed
}

// AsValidationErrors finds ValidationErrors in err's chain.
func AsValidationErrors(err error) (ValidationErrors, bool) {
	var ve ValidationErrors
	if err == nil || !errors.As(err, &ve) {
		return nil, false
	}
	return ve, true
}
