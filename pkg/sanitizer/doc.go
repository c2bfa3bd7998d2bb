// Package sanitizer cleans text read back from untrusted client storage
// before it reaches a decoder, and masks sensitive values before they are
// logged.
//
// Stored text is split into two classes of damage:
//
//   - Cosmetic corruption – stray C0 control characters and a leading
//     byte-order mark. CleanStoredText removes them; tab, LF and CR are kept
//     because they are legal JSON whitespace. JSON encoders always escape C0
//     controls inside strings, so a raw one is never part of a value.
//   - Binary corruption – NUL bytes, invalid UTF-8, DEL and C1 controls.
//     CleanStoredText refuses such input with ErrNullByte, ErrInvalidUTF8 or
//     ErrControlChar instead of guessing at a repair. DEL and C1 survive JSON
//     encoding unescaped, so stripping them could alter a stored string.
//
// StripControlChars is the general-purpose helper and removes C0, DEL and C1
// alike.
//
// Structural damage (unbalanced braces, truncation) is out of scope here and
// is left for the decoder to reject.
//
// The higher-order Apply and Compose helpers build reusable pipelines:
//
//	clean := sanitizer.Compose(
//	    sanitizer.TrimBOM,
//	    sanitizer.StripControlChars,
//	)
//	text := clean(raw)
//
// # Usage
//
//	text, err := sanitizer.CleanStoredText(raw)
//	if err != nil {
//	    // treat the value as absent
//	}
//
//	log.Info("session restored", slog.String("email", sanitizer.MaskEmail(email)))
package sanitizer
