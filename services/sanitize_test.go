package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"Plain", "Alice", "Alice"},
		{"Trims", "  Alice \t", "Alice"},
		{"StripsMarkup", "<b>Bob</b>", "bBob/b"},
		{"StripsQuotesAndAmpersand", `Tom "T" O'Neil & co`, "Tom T ONeil  co"},
		{"OnlyUnsafe", `<>"'&`, ""},
		{"KeepsAccents", "José María", "José María"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeInput(tt.raw))
		})
	}
}

func TestSanitizeInputIdempotent(t *testing.T) {
	for _, raw := range []string{"<script>alert(1)</script>", " a&b ", "x'y\"z"} {
		once := SanitizeInput(raw)
		assert.Equal(t, once, SanitizeInput(once))
	}
}

func TestContainsUnsafeContent(t *testing.T) {
	unsafe := []string{
		"<b>",
		"a > b",
		"javascript:alert(1)",
		"JavaScript:void(0)",
		"data:text/html;base64,xx",
		"vbscript:msgbox",
		"onerror=alert(1)",
		"onclick = go()",
		"one = two",
		"< script",
		"<iframe src=x>",
	}
	for _, text := range unsafe {
		assert.True(t, ContainsUnsafeContent(text), text)
	}

	safe := []string{"Alice", "a@b.co", "José", "data science", "x = y"}
	for _, text := range safe {
		assert.False(t, ContainsUnsafeContent(text), text)
	}
}
