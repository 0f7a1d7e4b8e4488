package services

import "fmt"

// SignupErrorKind classifies why a signup attempt was turned away
type SignupErrorKind string

const (
	KindEmptyField       SignupErrorKind = "empty_field"
	KindUnsafeContent    SignupErrorKind = "unsafe_content"
	KindInvalidName      SignupErrorKind = "invalid_name"
	KindInvalidEmail     SignupErrorKind = "invalid_email"
	KindRateLimited      SignupErrorKind = "rate_limited"
	KindDuplicateRecent  SignupErrorKind = "duplicate_recent"
	KindSubmissionFailed SignupErrorKind = "submission_failed"
)

// Form field names, matching the input ids of the signup form
const (
	FieldFirstName = "firstName"
	FieldEmail     = "email"
)

// SignupError is a user-facing rejection. Field is empty for form-wide
// rejections (rate limiting, duplicates, integration failures).
type SignupError struct {
	Kind  SignupErrorKind
	Field string
}

func (e *SignupError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("signup rejected: %s", e.Kind)
	}
	return fmt.Sprintf("signup rejected: %s (%s)", e.Kind, e.Field)
}

// MessageKey returns the i18n key of the message shown in the message area
func (e *SignupError) MessageKey() string {
	return "signup.error." + string(e.Kind)
}

func newSignupError(kind SignupErrorKind, field string) *SignupError {
	return &SignupError{Kind: kind, Field: field}
}
