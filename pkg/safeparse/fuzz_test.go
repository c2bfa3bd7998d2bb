package safeparse_test

import (
	"log/slog"
	"testing"

	"github.com/incomeclarity/clientstate/pkg/safeparse"
	"github.com/incomeclarity/clientstate/pkg/validator"
)

func FuzzParse(f *testing.F) {
	seeds := []string{
		"",
		validSession,
		`{"user":{"id":"u1","email":"a@example.com"`,
		`{"user":[],"session_token":123,"expires_at":false}`,
		"{\"a\":\"\x00\"}",
		"\xff\xfe",
		`{"user":"[Circular]"}`,
		`[[[[[[[[[[[[[[[[[[[[[[[[[[[[[[[[[[[[]]]]]]]]]]]]]]]]]]]]]]]]]]]]]]]]]]]]`,
		`{"expires_at":1e400}`,
		`"\ud800"`,
	}
	for _, s := range seeds {
		f.Add(s)
	}

	opts := safeparse.Options{
		Validator: validator.SessionRecord,
		Logger:    slog.New(slog.DiscardHandler),
	}

	f.Fuzz(func(t *testing.T, raw string) {
		res := safeparse.Parse(raw, opts)
		if res.Success {
			if !validator.SessionRecord(res.Data) {
				t.Fatalf("accepted value fails its validator")
			}
			return
		}
		if res.Err == nil || res.Error == "" {
			t.Fatalf("failure without diagnostics: %+v", res)
		}
		if res.Data != nil {
			t.Fatalf("failure carries data")
		}
	})
}
