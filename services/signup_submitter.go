package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"minicakes_app_go/config"
	"minicakes_app_go/models"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

const DefaultSimulatedDelay = 2 * time.Second

var (
	// ErrSubmissionFailed is returned when the signup integration rejects or loses a request
	ErrSubmissionFailed = errors.New("signup submission failed")
	// ErrSubmissionTimeout is returned when the integration does not answer in time
	ErrSubmissionTimeout = errors.New("signup submission timed out")
)

// SignupSubmitter delivers an accepted signup to the outside world
type SignupSubmitter interface {
	Submit(ctx context.Context, req models.SignupRequest) error
}

// SimulatedSubmitter stands in for a network call: it waits Delay and succeeds
// unless Fail is set.
type SimulatedSubmitter struct {
	Delay time.Duration
	Fail  bool
}

func (s *SimulatedSubmitter) Submit(ctx context.Context, req models.SignupRequest) error {
	timer := time.NewTimer(s.Delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", ErrSubmissionTimeout, ctx.Err())
	case <-timer.C:
	}

	if s.Fail {
		return fmt.Errorf("%w: simulated failure", ErrSubmissionFailed)
	}
	zap.L().Debug("Simulated signup delivered", zap.String("email", req.Email))
	return nil
}

// ResendSubmitter adds the subscriber to a Resend audience and emails the e-book
type ResendSubmitter struct {
	client     *resend.Client
	assets     StorageProvider
	cfg        *config.Config
	audienceID string
	timeout    time.Duration
	lang       string
}

// NewResendSubmitter builds a submitter; a nil client is created from cfg.ResendAPIKey.
// The e-book link comes from assets, or from the app's download route when nil.
func NewResendSubmitter(client *resend.Client, assets StorageProvider, cfg *config.Config, lang string) *ResendSubmitter {
	if client == nil {
		client = resend.NewClient(cfg.ResendAPIKey)
	}
	timeout := cfg.SignupTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ResendSubmitter{
		client:     client,
		assets:     assets,
		cfg:        cfg,
		audienceID: cfg.ResendAudienceID,
		timeout:    timeout,
		lang:       lang,
	}
}

func (s *ResendSubmitter) Submit(ctx context.Context, req models.SignupRequest) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if s.audienceID != "" {
		_, err := s.client.Contacts.CreateWithContext(ctx, &resend.CreateContactRequest{
			Email:      req.Email,
			FirstName:  req.FirstName,
			AudienceId: s.audienceID,
		})
		if err != nil {
			return classifySubmitError(ctx, "create contact", err)
		}
	}

	downloadURL := EbookDownloadURL(ctx, s.assets, s.cfg)
	email := BuildEbookEmail(req.FirstName, req.Email, s.cfg.AppURL, downloadURL, s.lang)
	if err := SendEmail(ctx, s.client, s.cfg, email); err != nil {
		return classifySubmitError(ctx, "send e-book", err)
	}
	return nil
}

func classifySubmitError(ctx context.Context, step string, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s: %v", ErrSubmissionTimeout, step, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrSubmissionFailed, step, err)
}

// NewSignupSubmitter picks the submitter configured by SIGNUP_MODE
func NewSignupSubmitter(cfg *config.Config, lang string) SignupSubmitter {
	if cfg.SignupMode == config.SignupModeResend {
		return NewResendSubmitter(nil, Storage, cfg, lang)
	}
	return &SimulatedSubmitter{Delay: cfg.SimulatedDelay}
}
