package validator

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// OneOf passes when value is one of allowed.
func OneOf[T comparable](field string, value T, allowed ...T) Rule {
	names := make([]string, len(allowed))
	for i, a := range allowed {
		names[i] = fmt.Sprint(a)
	}
	return Rule{
		Check: func() bool { return slices.Contains(allowed, value) },
		Error: ValidationError{
			Field:   field,
			Code:    "validation.one_of",
			Message: "must be one of: " + strings.Join(names, ", "),
			Params:  map[string]any{"allowed": names},
		},
	}
}

// MaxItems passes when the slice holds at most limit elements.
func MaxItems[T any](field string, value []T, limit int) Rule {
	return Rule{
		Check: func() bool { return len(value) <= limit },
		Error: ValidationError{
			Field:   field,
			Code:    "validation.max_items",
			Message: fmt.Sprintf("must have at most %d items", limit),
			Params:  map[string]any{"max": limit},
		},
	}
}

// Matches passes when value is a non-blank string matched by re.
// desc names the expected format in the error message.
func Matches(field string, value any, re *regexp.Regexp, desc string) Rule {
	return Rule{
		Check: func() bool {
			s, ok := value.(string)
			return ok && strings.TrimSpace(s) != "" && re.MatchString(s)
		},
		Error: ValidationError{
			Field:   field,
			Code:    "validation.pattern",
			Message: "must be a valid " + desc,
			Params:  map[string]any{"pattern": re.String()},
		},
	}
}
