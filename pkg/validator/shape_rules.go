package validator

import (
	"fmt"
	"strings"
)

// MaxObjectDepth bounds the nesting accepted by PlainObject.
const MaxObjectDepth = 32

// circularMarker is what JavaScript serializers commonly emit in place of a cycle.
const circularMarker = "[Circular]"

// forbiddenKeys are reference markers and prototype-pollution keys that never appear in plain data.
var forbiddenKeys = map[string]struct{}{
	"$ref":        {},
	"__proto__":   {},
	"constructor": {},
	"prototype":   {},
}

// IsObject validates that a decoded JSON value is an object.
func IsObject(field string, value any) Rule {
	return Rule{
		Check: func() bool {
			_, ok := value.(map[string]any)
			return ok
		},
		Error: typeError(field, "object"),
	}
}

// IsArray validates that a decoded JSON value is an array.
func IsArray(field string, value any) Rule {
	return Rule{
		Check: func() bool {
			_, ok := value.([]any)
			return ok
		},
		Error: typeError(field, "array"),
	}
}

// IsString validates that a decoded JSON value is a string. Empty strings pass.
func IsString(field string, value any) Rule {
	return Rule{
		Check: func() bool {
			_, ok := value.(string)
			return ok
		},
		Error: typeError(field, "string"),
	}
}

// NonEmptyString validates that a decoded JSON value is a string with non-whitespace content.
func NonEmptyString(field string, value any) Rule {
	return Rule{
		Check: func() bool {
			s, ok := value.(string)
			return ok && strings.TrimSpace(s) != ""
		},
		Error: ValidationError{
			Field:   field,
			Message: "must be a non-empty string",
			Code:    "validation.non_empty_string",
			Params: map[string]any{
				"field": field,
			},
		},
	}
}

// IsBool validates that a decoded JSON value is a boolean.
func IsBool(field string, value any) Rule {
	return Rule{
		Check: func() bool {
			_, ok := value.(bool)
			return ok
		},
		Error: typeError(field, "boolean"),
	}
}

// Optional passes when the key is absent from obj and applies rule otherwise.
// An explicit null counts as present.
func Optional(obj map[string]any, key string, rule func(field string, value any) Rule) Rule {
	value, present := obj[key]
	if !present {
		return Rule{Check: func() bool { return true }}
	}
	return rule(key, value)
}

// ValidTimestamp validates that a decoded JSON value converts to a point in time.
func ValidTimestamp(field string, value any) Rule {
	return Rule{
		Check: func() bool {
			_, ok := ParseTimestamp(value)
			return ok
		},
		Error: ValidationError{
			Field:   field,
			Message: "must be an ISO-8601 date string or epoch number",
			Code:    "validation.timestamp",
			Params: map[string]any{
				"field": field,
			},
		},
	}
}

// PlainObject validates that value is an object free of reference markers,
// prototype keys and cycles placeholders, nested no deeper than MaxObjectDepth.
func PlainObject(field string, value any) Rule {
	return Rule{
		Check: func() bool {
			if _, ok := value.(map[string]any); !ok {
				return false
			}
			return Depth(value) <= MaxObjectDepth && !HasCircularMarker(value)
		},
		Error: ValidationError{
			Field:   field,
			Message: "must be a plain object",
			Code:    "validation.plain_object",
			Params: map[string]any{
				"field": field,
			},
		},
	}
}

// ScalarValues validates that no value of obj is an object or array.
func ScalarValues(field string, obj map[string]any) Rule {
	return Rule{
		Check: func() bool {
			for _, v := range obj {
				switch v.(type) {
				case map[string]any, []any:
					return false
				}
			}
			return true
		},
		Error: ValidationError{
			Field:   field,
			Message: "must not contain nested values",
			Code:    "validation.scalar_values",
			Params: map[string]any{
				"field": field,
			},
		},
	}
}

// HasCircularMarker reports whether value contains a forbidden key or a
// "[Circular]" placeholder at any depth. The walk stops at MaxObjectDepth.
func HasCircularMarker(value any) bool {
	return hasMarker(value, 0)
}

func hasMarker(value any, depth int) bool {
	if depth > MaxObjectDepth {
		return true
	}
	switch v := value.(type) {
	case string:
		return v == circularMarker
	case map[string]any:
		for k, child := range v {
			if _, bad := forbiddenKeys[k]; bad {
				return true
			}
			if hasMarker(child, depth+1) {
				return true
			}
		}
	case []any:
		for _, child := range v {
			if hasMarker(child, depth+1) {
				return true
			}
		}
	}
	return false
}

// Depth returns the nesting depth of a decoded JSON value. Scalars have depth 0.
func Depth(value any) int {
	switch v := value.(type) {
	case map[string]any:
		deepest := 0
		for _, child := range v {
			deepest = max(deepest, Depth(child))
		}
		return deepest + 1
	case []any:
		deepest := 0
		for _, child := range v {
			deepest = max(deepest, Depth(child))
		}
		return deepest + 1
	}
	return 0
}

func typeError(field, want string) ValidationError {
	return ValidationError{
		Field:   field,
		Message: fmt.Sprintf("must be a JSON %s", want),
		Code:    "validation.type",
		Params: map[string]any{
			"field": field,
			"type":  want,
		},
	}
}
