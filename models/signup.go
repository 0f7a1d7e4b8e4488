package models

// SignupRequest is the payload handed to the signup integration once the
// form guard has accepted a submission.
type SignupRequest struct {
	FirstName string `json:"firstName"`
	Email     string `json:"email"`
}
