package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDate(t *testing.T) {
	assert.Equal(t, "20 January 2024", Date(time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "4 February 2024", Date(time.Date(2024, 2, 4, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "", Date(time.Time{}))
}

func TestDigits(t *testing.T) {
	assert.Equal(t, "9876543210", Digits("98765 43210"))
	assert.Equal(t, "919876543210", Digits("+91-98765-43210"))
	assert.Equal(t, "", Digits("no digits"))
}

func TestPhone(t *testing.T) {
	assert.Equal(t, "+91 98765 43210", Phone("9876543210"))
	assert.Equal(t, "+91 98765 43210", Phone("98765 43210"))
	// Non 10-digit input passes through untouched
	assert.Equal(t, "12345", Phone("12345"))
}

func TestWhatsAppLink(t *testing.T) {
	assert.Equal(t, "https://wa.me/9876543210", WhatsAppLink("98765 43210", ""))
	assert.Equal(t,
		"https://wa.me/9876543210?text=Hi%2C+I%27m+interested+in+ThinkPad+X1",
		WhatsAppLink("9876543210", "Hi, I'm interested in ThinkPad X1"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "long te...", Truncate("long text here", 7))
}
