package services

import (
	"regexp"
	"strings"
)

// unsafeChars are removed from every value typed or pasted into the signup form
var unsafeChars = strings.NewReplacer("<", "", ">", "", `"`, "", "'", "", "&", "")

// unsafeContentPatterns flag text that looks like markup or script injection
var unsafeContentPatterns = []*regexp.Regexp{
	regexp.MustCompile(`[<>]`),
	regexp.MustCompile(`(?i)(javascript|data|vbscript):`),
	regexp.MustCompile(`(?i)on\w+\s*=`),
	regexp.MustCompile(`(?i)<\s*(script|iframe)`),
}

// SanitizeInput strips the characters < > " ' & and trims surrounding whitespace
func SanitizeInput(raw string) string {
	return strings.TrimSpace(unsafeChars.Replace(raw))
}

// ContainsUnsafeContent reports whether text matches any of the content-safety patterns
func ContainsUnsafeContent(text string) bool {
	for _, pattern := range unsafeContentPatterns {
		if pattern.MatchString(text) {
			return true
		}
	}
	return false
}
