package sanitizer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/incomeclarity/clientstate/pkg/sanitizer"
)

func TestApply(t *testing.T) {
	t.Parallel()

	upper := strings.ToUpper
	trim := strings.TrimSpace

	tests := []struct {
		name  string
		in    string
		steps []func(string) string
		want  string
	}{
		{"no steps", "\uFEFF raw ", nil, "\uFEFF raw "},
		{"control chars", "to\x1bken", []func(string) string{sanitizer.StripControlChars}, "token"},
		{"order matters", "\uFEFF  key\x07 ", []func(string) string{sanitizer.TrimBOM, sanitizer.StripControlChars, trim, upper}, "KEY"},
		{"bom after trim stays", " \uFEFFkey", []func(string) string{sanitizer.TrimBOM, trim}, "\uFEFFkey"},
		{"empty input", "", []func(string) string{sanitizer.TrimBOM, upper}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, sanitizer.Apply(tt.in, tt.steps...))
		})
	}
}

func TestCompose(t *testing.T) {
	t.Parallel()

	clean := sanitizer.Compose(sanitizer.TrimBOM, sanitizer.StripControlChars)
	assert.Equal(t, `{"a":1}`, clean("\uFEFF{\"a\"\x00:1}\x7f"))
	assert.Equal(t, "x", clean("x"))

	next := sanitizer.Compose(func(n int) int { return n * 2 }, func(n int) int { return n + 1 })
	assert.Equal(t, 7, next(3))
}
