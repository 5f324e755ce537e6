package utils

import (
	"strings"
)

// LooksLikeEmail reports whether a contact string should be matched as an
// email address rather than a phone number
func LooksLikeEmail(contact string) bool {
	return strings.Contains(contact, "@")
}

// EmailsMatch compares two email addresses case-insensitively, ignoring
// surrounding whitespace
func EmailsMatch(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// DigitsOnly strips everything but ASCII digits, so "804-441-4309" and
// "(804) 441 4309" normalize to the same string
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
