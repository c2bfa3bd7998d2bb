package sanitizer

import "strings"

// MaskEmail preserves full domain for user recognition while hiding personal info.
func MaskEmail(email string) string {
	email = strings.TrimSpace(email)
	local, domain, ok := strings.Cut(email, "@")
	if !ok || strings.Contains(domain, "@") || local == "" {
		return MaskString(email, 1)
	}

	runes := []rune(local)
	if len(runes) == 1 {
		return "*@" + domain
	}
	return string(runes[0]) + strings.Repeat("*", len(runes)-1) + "@" + domain
}

// MaskString preserves start/end characters for user recognition while hiding sensitive middle.
// Handles Unicode properly and prevents over-masking short strings.
func MaskString(s string, visibleChars int) string {
	if visibleChars < 0 {
		visibleChars = 1
	}

	runes := []rune(s)
	length := len(runes)

	if length <= visibleChars*2 {
		return strings.Repeat("*", length)
	}

	visible := min(visibleChars, length/2)
	return string(runes[:visible]) + strings.Repeat("*", length-visible*2) + string(runes[length-visible:])
}
