package sanitizer

import (
	"strings"
	"unicode/utf8"
)

const byteOrderMark = '\uFEFF'

// cleanStored is the pipeline applied once binary corruption has been ruled out.
var cleanStored = Compose(TrimBOM, StripControlChars)

// ContainsNullByte reports whether s holds a NUL byte.
func ContainsNullByte(s string) bool {
	return strings.IndexByte(s, 0) >= 0
}

// IsControl reports whether r is a control character that has no place in stored text.
// Tab, LF and CR are allowed.
func IsControl(r rune) bool {
	switch {
	case r == '\t' || r == '\n' || r == '\r':
		return false
	case r < 0x20, r == 0x7F:
		return true
	case r >= 0x80 && r <= 0x9F:
		return true
	}
	return false
}

// StripControlChars removes control characters, returning s unchanged when there are none.
func StripControlChars(s string) string {
	if strings.IndexFunc(s, IsControl) < 0 {
		return s
	}
	return strings.Map(func(r rune) rune {
		if IsControl(r) {
			return -1
		}
		return r
	}, s)
}

// TrimBOM removes a leading byte-order mark.
func TrimBOM(s string) string {
	if r, size := utf8.DecodeRuneInString(s); r == byteOrderMark {
		return s[size:]
	}
	return s
}

// IsPrintableControl reports whether r is DEL or a C1 control. JSON encoders
// write these unescaped inside strings, so they may be part of a value.
func IsPrintableControl(r rune) bool {
	return r == 0x7F || (r >= 0x80 && r <= 0x9F)
}

// CleanStoredText rejects binary corruption and strips cosmetic corruption.
// DEL and C1 controls are rejected rather than stripped: removing them could
// silently change a string value.
func CleanStoredText(s string) (string, error) {
	if ContainsNullByte(s) {
		return "", ErrNullByte
	}
	if !utf8.ValidString(s) {
		return "", ErrInvalidUTF8
	}
	if strings.IndexFunc(s, IsPrintableControl) >= 0 {
		return "", ErrControlChar
	}
	return cleanStored(s), nil
}
