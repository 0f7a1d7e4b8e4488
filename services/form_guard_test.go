package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGuard() (*FormGuard, *fakeClock) {
	clock := newFakeClock()
	policy := NewSubmissionPolicy(5*time.Second, 30*time.Second, NewMemorySessionStorage())
	return NewFormGuard(policy, clock), clock
}

func TestFormGuardAdmit(t *testing.T) {
	guard, clock := newTestGuard()

	admission, err := guard.Admit("  Al ", "a@b.co")
	require.NoError(t, err)
	assert.Equal(t, "Al", admission.Request.FirstName)
	assert.Equal(t, "a@b.co", admission.Request.Email)
	assert.Equal(t, Fingerprint("Al", "a@b.co"), admission.Fingerprint)

	record, err := guard.Policy().Snapshot()
	require.NoError(t, err)
	assert.Equal(t, clock.Now(), record.LastSubmission)
	assert.Equal(t, admission.Fingerprint, record.LastFormHash)
}

func TestFormGuardRejections(t *testing.T) {
	tests := []struct {
		name  string
		first string
		email string
		kind  SignupErrorKind
		field string
	}{
		{"UnsafeName", "<b>Bob</b>", "bob@b.co", KindUnsafeContent, FieldFirstName},
		{"UnsafeEmail", "Bob", "javascript:x@b.co", KindUnsafeContent, FieldEmail},
		{"EmptyName", "   ", "bob@b.co", KindEmptyField, FieldFirstName},
		{"OnlyStrippedChars", `"'&`, "bob@b.co", KindEmptyField, FieldFirstName},
		{"EmptyEmail", "Bob", "", KindEmptyField, FieldEmail},
		{"ShortName", "B", "bob@b.co", KindInvalidName, FieldFirstName},
		{"DigitsInName", "B0b", "bob@b.co", KindInvalidName, FieldFirstName},
		{"BadEmail", "Bob", "bob@b", KindInvalidEmail, FieldEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			guard, _ := newTestGuard()
			admission, err := guard.Admit(tt.first, tt.email)
			assert.Nil(t, admission)

			var signupErr *SignupError
			require.True(t, errors.As(err, &signupErr))
			assert.Equal(t, tt.kind, signupErr.Kind)
			assert.Equal(t, tt.field, signupErr.Field)

			// Rejected attempts are not recorded
			record, err := guard.Policy().Snapshot()
			require.NoError(t, err)
			assert.True(t, record.LastSubmission.IsZero())
		})
	}
}

func TestFormGuardRateLimitAndDuplicate(t *testing.T) {
	guard, clock := newTestGuard()

	_, err := guard.Admit("Al", "a@b.co")
	require.NoError(t, err)

	_, err = guard.Admit("Bo", "bo@b.co")
	assert.Equal(t, KindRateLimited, kindOf(err))

	clock.Advance(6 * time.Second)
	_, err = guard.Admit("Al", "a@b.co")
	assert.Equal(t, KindDuplicateRecent, kindOf(err))

	_, err = guard.Admit("Bo", "bo@b.co")
	assert.NoError(t, err)
}

func TestFormGuardInspectField(t *testing.T) {
	guard, _ := newTestGuard()

	state := guard.InspectField(FieldFirstName, " <Al> ")
	assert.Equal(t, "Al", state.Value)
	assert.True(t, state.Unsafe)
	assert.Equal(t, "signup.error.unsafe_content", state.ValidityMessage)

	state = guard.InspectField(FieldEmail, "")
	assert.False(t, state.Unsafe)
	assert.Empty(t, state.ValidityMessage)

	state = guard.InspectField(FieldEmail, "al@")
	assert.Equal(t, "signup.error.invalid_email", state.ValidityMessage)

	state = guard.InspectField(FieldFirstName, "Zoë")
	assert.Empty(t, state.ValidityMessage)
}

func TestAsSignupError(t *testing.T) {
	assert.Nil(t, AsSignupError(nil))

	orig := newSignupError(KindInvalidName, FieldFirstName)
	assert.Same(t, orig, AsSignupError(orig))

	converted := AsSignupError(errors.New("storage down"))
	assert.Equal(t, KindSubmissionFailed, converted.Kind)
	assert.Empty(t, converted.Field)
}
