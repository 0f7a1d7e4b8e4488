package services

import (
	"regexp"
	"unicode/utf8"
)

const (
	MinNameLength  = 2
	MaxNameLength  = 50
	MinEmailLength = 5
	MaxEmailLength = 254
)

var (
	// Letters of any script (Latin-1 Supplement and Latin Extended-A included) and the space character
	namePattern = regexp.MustCompile(`^[\p{L} ]+$`)

	emailPattern = regexp.MustCompile(
		"^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+" +
			`@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?` +
			`(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)+$`,
	)
)

// IsValidName checks a sanitized first name: letters and spaces only, 2 to 50 characters
func IsValidName(name string) bool {
	length := utf8.RuneCountInString(name)
	if length < MinNameLength || length > MaxNameLength {
		return false
	}
	return namePattern.MatchString(name)
}

// IsValidEmail checks a sanitized email address against the pattern and the 5..254 length bounds
func IsValidEmail(email string) bool {
	if len(email) < MinEmailLength || len(email) > MaxEmailLength {
		return false
	}
	return emailPattern.MatchString(email)
}
