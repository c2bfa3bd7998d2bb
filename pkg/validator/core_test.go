package validator_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/incomeclarity/clientstate/pkg/validator"
)

func TestValidationErrors_Error(t *testing.T) {
	t.Run("returns default message when no errors", func(t *testing.T) {
		var errs validator.ValidationErrors
		assert.Equal(t, "validation failed", errs.Error())
	})

	t.Run("returns formatted message with multiple errors", func(t *testing.T) {
		var errs validator.ValidationErrors
		errs.Add(validator.ValidationError{Field: "user.id", Message: "must be a non-empty string"})
		errs.Add(validator.ValidationError{Field: "expires_at", Message: "must be an ISO-8601 date string or epoch number"})

		assert.Equal(t,
			"validation failed: user.id: must be a non-empty string; expires_at: must be an ISO-8601 date string or epoch number",
			errs.Error())
	})
}

func TestValidationErrors_Fields(t *testing.T) {
	errs := validator.ValidationErrors{
		{Field: "user"},
		{Field: "user.id"},
		{Field: "user"},
	}

	assert.Equal(t, []string{"user", "user.id"}, errs.Fields())
	assert.True(t, errs.Has("user.id"))
	assert.False(t, errs.Has("session_token"))
	assert.False(t, errs.IsEmpty())
	assert.True(t, validator.ValidationErrors{}.IsEmpty())
}

func TestApply(t *testing.T) {
	t.Run("returns nil when all rules pass", func(t *testing.T) {
		err := validator.Apply(
			validator.NonEmptyString("session_token", "tok"),
			validator.IsObject("user", map[string]any{}),
		)
		assert.NoError(t, err)
	})

	t.Run("collects every failing rule", func(t *testing.T) {
		err := validator.Apply(
			validator.NonEmptyString("session_token", 123),
			validator.IsObject("user", []any{}),
			validator.IsBool("read", true),
		)
		require.Error(t, err)

		errs, ok := validator.AsValidationErrors(err)
		require.True(t, ok)
		require.Len(t, errs, 2)
		assert.Equal(t, []string{"session_token", "user"}, errs.Fields())
	})

	t.Run("handles empty rules", func(t *testing.T) {
		assert.NoError(t, validator.Apply())
	})

	t.Run("rule without check passes", func(t *testing.T) {
		assert.NoError(t, validator.Apply(validator.Rule{}))
	})
}

func TestAsValidationErrors(t *testing.T) {
	t.Run("finds wrapped ValidationErrors", func(t *testing.T) {
		original := validator.ValidationErrors{{Field: "user", Code: "validation.type", Message: "must be a JSON object"}}
		wrapped := errors.Join(errors.New("outer"), original)

		got, ok := validator.AsValidationErrors(wrapped)
		assert.True(t, ok)
		assert.Equal(t, original, got)
		assert.EqualError(t, got[0], "user: must be a JSON object")
	})

	t.Run("ignores other errors", func(t *testing.T) {
		_, ok := validator.AsValidationErrors(errors.New("plain"))
		assert.False(t, ok)
		_, ok = validator.AsValidationErrors(nil)
		assert.False(t, ok)
	})
}
