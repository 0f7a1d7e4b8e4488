package page

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"minicakes_app_go/services"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrSessionClosed is returned once a page session has been unloaded or expired
	ErrSessionClosed = errors.New("page session closed")
	// ErrUnhandledEvent is returned when no handler listens for the event
	ErrUnhandledEvent = errors.New("no handler for event")
	// ErrInvalidTab is returned for a tab id that is not a UUID
	ErrInvalidTab = errors.New("invalid tab id")
)

const queueSize = 64

// Options configure a page session
type Options struct {
	ID              string
	VisitorID       string
	Lang            string
	Content         *services.LandingContent
	HeaderThreshold float64
	Reveal          RevealOptions
	Guard           *services.FormGuard
	Submitter       services.SignupSubmitter
	// OpenStorage returns the session storage of a browser tab; nil keeps the
	// storage the guard was built with
	OpenStorage func(tabID string) services.SessionStorage
	Logger      *zap.Logger
}

// Session is one loaded landing page. All document state is owned by a single
// goroutine; handlers, timers and submission completions are queued onto it.
type Session struct {
	ID        string
	VisitorID string
	Lang      string

	Header    *HeaderController
	Variants  *VariantSelector
	Reveal    *RevealAnimator
	Form      *FormController
	Bootstrap *Bootstrap

	doc         *Document
	events      *dispatcher
	policy      *services.SubmissionPolicy
	openStorage func(tabID string) services.SessionStorage
	tabID       string

	queue     chan func()
	ctx       context.Context
	cancel    context.CancelFunc
	stopped   chan struct{}
	closeOnce sync.Once
	lastSeen  atomic.Int64
	logger    *zap.Logger
}

// NewSession builds the document, attaches every controller and starts the
// session goroutine
func NewSession(opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("page_id", opts.ID))
	reveal := opts.Reveal
	if reveal == (RevealOptions{}) {
		reveal = DefaultRevealOptions
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		ID:          opts.ID,
		VisitorID:   opts.VisitorID,
		Lang:        opts.Lang,
		doc:         BuildLandingDocument(opts.Content, opts.Lang),
		events:      newDispatcher(),
		policy:      opts.Guard.Policy(),
		openStorage: opts.OpenStorage,
		tabID:       opts.ID,
		queue:       make(chan func(), queueSize),
		ctx:         ctx,
		cancel:      cancel,
		stopped:     make(chan struct{}),
		logger:      logger,
	}
	s.Touch(time.Now())

	s.Header = NewHeaderController(s.doc, opts.HeaderThreshold)
	s.Variants = NewVariantSelector(s.doc, s.after)
	s.Reveal = NewRevealAnimator(s.doc, reveal)
	s.Form = NewFormController(ctx, s.doc, opts.Guard, opts.Submitter, s.post, opts.Lang, logger)
	s.Bootstrap = NewBootstrap(s.doc, s.Variants, s.Reveal, s.policy, opts.Lang, logger)

	for _, c := range []interface{ Attach(EventSource) }{s.Header, s.Variants, s.Reveal, s.Form, s.Bootstrap} {
		c.Attach(s.events)
	}

	go s.loop()
	return s
}

func (s *Session) loop() {
	defer close(s.stopped)
	defer s.Form.abandon()
	for {
		select {
		case fn := <-s.queue:
			s.run(fn)
		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Session) run(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Page handler panicked", zap.Any("panic", r))
		}
	}()
	fn()
}

// post queues fn on the session goroutine; false means the session is closed
func (s *Session) post(fn func()) bool {
	select {
	case <-s.ctx.Done():
		return false
	default:
	}
	select {
	case s.queue <- fn:
		return true
	case <-s.ctx.Done():
		return false
	}
}

// after runs fn on the session goroutine once d has elapsed
func (s *Session) after(d time.Duration, fn func()) {
	time.AfterFunc(d, func() { s.post(fn) })
}

// Do runs fn on the session goroutine and waits for it
func (s *Session) Do(ctx context.Context, fn func(doc *Document)) error {
	done := make(chan struct{})
	if !s.post(func() {
		defer close(done)
		fn(s.doc)
	}) {
		return ErrSessionClosed
	}
	select {
	case <-done:
		return nil
	case <-s.stopped:
		return ErrSessionClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Dispatch delivers an event to its handlers and waits until they ran
func (s *Session) Dispatch(ctx context.Context, ev *Event) error {
	_, err := s.dispatch(ctx, ev, false)
	return err
}

// DispatchAndSnapshot delivers an event and copies the document in the same turn
func (s *Session) DispatchAndSnapshot(ctx context.Context, ev *Event) (*Document, error) {
	return s.dispatch(ctx, ev, true)
}

func (s *Session) dispatch(ctx context.Context, ev *Event, snapshot bool) (*Document, error) {
	s.Touch(time.Now())
	handled := false
	var copied *Document
	err := s.Do(ctx, func(doc *Document) {
		handled = s.events.dispatch(ev)
		if snapshot {
			copied = doc.Clone()
		}
	})
	if err != nil {
		return nil, err
	}
	if !handled {
		return nil, fmt.Errorf("%w: %s on %q", ErrUnhandledEvent, ev.Type, ev.Target)
	}
	return copied, nil
}

// AdoptTab moves session storage to the browser tab that loaded the page. A
// page starts in a tab scope named after its own id; a reload in the same tab
// reports the id the tab kept, so its stored fingerprint follows it.
func (s *Session) AdoptTab(ctx context.Context, tabID string) error {
	if _, err := uuid.Parse(tabID); err != nil {
		return ErrInvalidTab
	}
	return s.Do(ctx, func(*Document) {
		if tabID == s.tabID || s.openStorage == nil {
			return
		}
		s.tabID = tabID
		s.policy.UseStorage(s.openStorage(tabID))
		s.logger.Debug("Page adopted tab", zap.String("tab_id", tabID))
	})
}

// Snapshot returns a copy of the document for rendering
func (s *Session) Snapshot(ctx context.Context) (*Document, error) {
	var snapshot *Document
	err := s.Do(ctx, func(doc *Document) { snapshot = doc.Clone() })
	return snapshot, err
}

// Touch marks the session as used at t
func (s *Session) Touch(t time.Time) {
	s.lastSeen.Store(t.UnixNano())
}

// LastSeen is the time of the last dispatched event
func (s *Session) LastSeen() time.Time {
	return time.Unix(0, s.lastSeen.Load())
}

// Close stops the session goroutine. Queued work is dropped and pending
// submissions are settled without a result.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.cancel()
		<-s.stopped
	})
}

// Closed reports whether the session has stopped
func (s *Session) Closed() bool {
	return s.ctx.Err() != nil
}
