// Package format holds display formatting helpers shared by services.
package format

import (
	"net/url"
	"strings"
	"time"
	"unicode"
)

// Date formats a date as a human-readable string, e.g. "20 January 2024".
func Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2 January 2006")
}

// Digits strips every non-digit rune from a phone number.
func Digits(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Phone formats a 10-digit phone number as "+91 XXXXX XXXXX".
// Anything else is returned unchanged.
func Phone(phone string) string {
	cleaned := Digits(phone)
	if len(cleaned) == 10 {
		return "+91 " + cleaned[:5] + " " + cleaned[5:]
	}
	return phone
}

// WhatsAppLink builds a wa.me deep link with an optional pre-filled message.
func WhatsAppLink(phone, message string) string {
	link := "https://wa.me/" + Digits(phone)
	if message != "" {
		link += "?text=" + url.QueryEscape(message)
	}
	return link
}

// Truncate shortens text to maxLength characters, appending an ellipsis.
func Truncate(text string, maxLength int) string {
	if len(text) <= maxLength {
		return text
	}
	return strings.TrimSpace(text[:maxLength]) + "..."
}
