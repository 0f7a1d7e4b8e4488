package services

import (
	"fmt"
	"time"
)

const (
	DefaultSubmitCooldown  = 5 * time.Second
	DefaultDuplicateWindow = 30 * time.Second
)

// SubmissionRecord is the state the policy keeps between attempts
type SubmissionRecord struct {
	LastSubmission time.Time
	LastFormHash   string
}

// SubmissionPolicy rate limits and deduplicates signup attempts for one page
// lifetime. The timestamp lives in memory; the fingerprint is mirrored into
// session storage. A policy is owned by a single page session and is not safe
// for concurrent use.
type SubmissionPolicy struct {
	cooldown        time.Duration
	duplicateWindow time.Duration
	storage         SessionStorage
	lastSubmission  time.Time
}

// NewSubmissionPolicy creates a policy; zero durations fall back to the defaults
func NewSubmissionPolicy(cooldown, duplicateWindow time.Duration, storage SessionStorage) *SubmissionPolicy {
	if cooldown <= 0 {
		cooldown = DefaultSubmitCooldown
	}
	if duplicateWindow <= 0 {
		duplicateWindow = DefaultDuplicateWindow
	}
	if storage == nil {
		storage = NewMemorySessionStorage()
	}
	return &SubmissionPolicy{
		cooldown:        cooldown,
		duplicateWindow: duplicateWindow,
		storage:         storage,
	}
}

// UseStorage moves the fingerprint mirror to another store. The in-memory
// timestamp is kept.
func (p *SubmissionPolicy) UseStorage(storage SessionStorage) {
	if storage != nil {
		p.storage = storage
	}
}

// Check applies the cooldown and then the duplicate screen. It returns a
// *SignupError for policy rejections and a plain error when storage fails.
func (p *SubmissionPolicy) Check(fingerprint string, now time.Time) error {
	if p.lastSubmission.IsZero() {
		return p.checkDuplicate(fingerprint, now)
	}
	if now.Sub(p.lastSubmission) < p.cooldown {
		return newSignupError(KindRateLimited, "")
	}
	return p.checkDuplicate(fingerprint, now)
}

func (p *SubmissionPolicy) checkDuplicate(fingerprint string, now time.Time) error {
	stored, ok, err := p.storage.GetItem(FormHashKey)
	if err != nil {
		return fmt.Errorf("duplicate check: %w", err)
	}
	if !ok || stored != fingerprint || p.lastSubmission.IsZero() {
		return nil
	}
	if now.Sub(p.lastSubmission) < p.duplicateWindow {
		return newSignupError(KindDuplicateRecent, "")
	}
	return nil
}

// Record stores an accepted attempt. The timestamp never moves backwards.
func (p *SubmissionPolicy) Record(fingerprint string, now time.Time) error {
	if now.After(p.lastSubmission) {
		p.lastSubmission = now
	}
	if err := p.storage.SetItem(FormHashKey, fingerprint); err != nil {
		return fmt.Errorf("record submission: %w", err)
	}
	return nil
}

// ClearFingerprint drops the stored fingerprint. The in-memory timestamp is
// left as is.
func (p *SubmissionPolicy) ClearFingerprint() error {
	return p.storage.RemoveItem(FormHashKey)
}

// Snapshot returns the current submission record
func (p *SubmissionPolicy) Snapshot() (SubmissionRecord, error) {
	hash, _, err := p.storage.GetItem(FormHashKey)
	if err != nil {
		return SubmissionRecord{}, err
	}
	return SubmissionRecord{LastSubmission: p.lastSubmission, LastFormHash: hash}, nil
}
