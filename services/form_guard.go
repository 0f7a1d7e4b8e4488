package services

import (
	"errors"

	"minicakes_app_go/models"
)

// FieldState is what the form shows for one input after an input or paste event
type FieldState struct {
	Value string
	// ValidityMessage is an i18n key; empty means the field is valid
	ValidityMessage string
	Unsafe          bool
}

// Admission is an accepted submission, already recorded by the policy
type Admission struct {
	Request     models.SignupRequest
	Fingerprint string
}

// FormGuard runs the signup pipeline: sanitize, screen, validate, rate limit,
// deduplicate. It short-circuits on the first failure.
type FormGuard struct {
	policy *SubmissionPolicy
	clock  Clock
}

func NewFormGuard(policy *SubmissionPolicy, clock Clock) *FormGuard {
	if clock == nil {
		clock = SystemClock{}
	}
	return &FormGuard{policy: policy, clock: clock}
}

// Policy exposes the submission policy owned by the guard
func (g *FormGuard) Policy() *SubmissionPolicy {
	return g.policy
}

// InspectField handles live input and paste events for a single field
func (g *FormGuard) InspectField(field, raw string) FieldState {
	state := FieldState{Value: SanitizeInput(raw)}
	if ContainsUnsafeContent(raw) || ContainsUnsafeContent(state.Value) {
		state.Unsafe = true
		state.ValidityMessage = newSignupError(KindUnsafeContent, field).MessageKey()
		return state
	}
	if state.Value == "" {
		// Nothing typed yet is not an error while editing
		return state
	}
	if err := validateField(field, state.Value); err != nil {
		state.ValidityMessage = err.MessageKey()
	}
	return state
}

// Admit runs the full pipeline on submitted values. On success the attempt is
// recorded before returning, so a rapid second submit is already blocked.
func (g *FormGuard) Admit(rawName, rawEmail string) (*Admission, error) {
	now := g.clock.Now()

	firstName := SanitizeInput(rawName)
	email := SanitizeInput(rawEmail)

	for _, f := range []struct{ field, raw, clean string }{
		{FieldFirstName, rawName, firstName},
		{FieldEmail, rawEmail, email},
	} {
		if ContainsUnsafeContent(f.raw) || ContainsUnsafeContent(f.clean) {
			return nil, newSignupError(KindUnsafeContent, f.field)
		}
	}

	if firstName == "" {
		return nil, newSignupError(KindEmptyField, FieldFirstName)
	}
	if email == "" {
		return nil, newSignupError(KindEmptyField, FieldEmail)
	}
	if err := validateField(FieldFirstName, firstName); err != nil {
		return nil, err
	}
	if err := validateField(FieldEmail, email); err != nil {
		return nil, err
	}

	fingerprint := Fingerprint(firstName, email)
	if err := g.policy.Check(fingerprint, now); err != nil {
		return nil, err
	}
	if err := g.policy.Record(fingerprint, now); err != nil {
		return nil, err
	}

	return &Admission{
		Request:     models.SignupRequest{FirstName: firstName, Email: email},
		Fingerprint: fingerprint,
	}, nil
}

func validateField(field, value string) *SignupError {
	switch field {
	case FieldFirstName:
		if !IsValidName(value) {
			return newSignupError(KindInvalidName, field)
		}
	case FieldEmail:
		if !IsValidEmail(value) {
			return newSignupError(KindInvalidEmail, field)
		}
	}
	return nil
}

// AsSignupError unwraps a *SignupError; any other error becomes SubmissionFailed
func AsSignupError(err error) *SignupError {
	if err == nil {
		return nil
	}
	var signupErr *SignupError
	if errors.As(err, &signupErr) {
		return signupErr
	}
	return newSignupError(KindSubmissionFailed, "")
}
