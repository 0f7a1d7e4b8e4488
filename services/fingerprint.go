package services

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// Fingerprint encodes "name:email" for duplicate detection within a session.
// The encoding is reversible and only meant for equality checks.
func Fingerprint(firstName, email string) string {
	return base64.StdEncoding.EncodeToString([]byte(firstName + ":" + email))
}

// DecodeFingerprint reverses Fingerprint
func DecodeFingerprint(fingerprint string) (firstName, email string, err error) {
	raw, err := base64.StdEncoding.DecodeString(fingerprint)
	if err != nil {
		return "", "", fmt.Errorf("failed to decode fingerprint: %w", err)
	}
	firstName, email, ok := strings.Cut(string(raw), ":")
	if !ok {
		return "", "", fmt.Errorf("malformed fingerprint")
	}
	return firstName, email, nil
}
