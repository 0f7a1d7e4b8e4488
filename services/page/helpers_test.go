package page

import (
	"sync"
	"testing"
	"time"

	"minicakes_app_go/services"
	"minicakes_app_go/services/i18n"

	"github.com/stretchr/testify/require"
)

// manualScheduler collects scheduled callbacks so tests decide when they run
type manualScheduler struct {
	mu      sync.Mutex
	pending []func()
	delays  []time.Duration
}

func (s *manualScheduler) schedule(d time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delays = append(s.delays, d)
	s.pending = append(s.pending, fn)
}

func (s *manualScheduler) runAll() {
	s.mu.Lock()
	pending := s.pending
	s.pending = nil
	s.mu.Unlock()
	for _, fn := range pending {
		fn()
	}
}

func testDocument() *Document {
	return BuildLandingDocument(services.DefaultLandingContent(), "en")
}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// newTestSession opens a session over memory storage with a fast simulated submitter
func newTestSession(t *testing.T, submitter services.SignupSubmitter, clock services.Clock) *Session {
	t.Helper()
	require.NoError(t, i18n.Load())
	if submitter == nil {
		submitter = &services.SimulatedSubmitter{Delay: 10 * time.Millisecond}
	}
	policy := services.NewSubmissionPolicy(5*time.Second, 30*time.Second, services.NewMemorySessionStorage())
	s := NewSession(Options{
		ID:              "page-1",
		VisitorID:       "visitor-1",
		Lang:            "en",
		Content:         services.DefaultLandingContent(),
		HeaderThreshold: 100,
		Guard:           services.NewFormGuard(policy, clock),
		Submitter:       submitter,
	})
	t.Cleanup(s.Close)
	return s
}
