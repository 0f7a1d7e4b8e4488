package page

import (
	"testing"
	"time"

	"minicakes_app_go/services"
	"minicakes_app_go/services/i18n"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestBootstrap(t *testing.T) (*Bootstrap, *Document, *services.SubmissionPolicy, *dispatcher) {
	require.NoError(t, i18n.Load())
	doc := testDocument()
	sched := &manualScheduler{}
	policy := services.NewSubmissionPolicy(5*time.Second, 30*time.Second, nil)
	variants := NewVariantSelector(doc, sched.schedule)
	reveal := NewRevealAnimator(doc, DefaultRevealOptions)
	b := NewBootstrap(doc, variants, reveal, policy, "en", zap.NewNop())
	events := newDispatcher()
	b.Attach(events)
	return b, doc, policy, events
}

func TestBootstrapOnLoad(t *testing.T) {
	_, doc, _, events := newTestBootstrap(t)

	require.True(t, events.dispatch(&Event{Type: EventLoad, URL: "/?lang=en"}))

	require.Len(t, doc.History, 1)
	assert.Equal(t, "/?lang=en", doc.History[0].URL)
	require.Len(t, doc.Console, 1)
	assert.Equal(t, i18n.Translate("en", "page.console_advisory"), doc.Console[0])
	assert.Equal(t, []string{"variant-cupcake"}, activeItems(doc))
}

func TestBootstrapOnLoadReplacesCurrentEntry(t *testing.T) {
	_, doc, _, events := newTestBootstrap(t)
	doc.History = []HistoryEntry{{URL: "/"}, {URL: "/?lang=es"}}

	require.True(t, events.dispatch(&Event{Type: EventLoad, URL: "/?lang=en"}))
	require.True(t, events.dispatch(&Event{Type: EventLoad, URL: "/?lang=en"}))

	assert.Equal(t, []HistoryEntry{{URL: "/"}, {URL: "/?lang=en"}}, doc.History)
}

func TestBootstrapOnUnloadClearsOnlyFingerprint(t *testing.T) {
	_, _, policy, events := newTestBootstrap(t)
	now := time.Now()
	require.NoError(t, policy.Record(services.Fingerprint("Al", "a@b.co"), now))

	require.True(t, events.dispatch(&Event{Type: EventUnload}))

	record, err := policy.Snapshot()
	require.NoError(t, err)
	assert.Empty(t, record.LastFormHash)
	assert.Equal(t, now, record.LastSubmission)
}

func TestBootstrapAnchors(t *testing.T) {
	_, doc, _, events := newTestBootstrap(t)

	ev := &Event{Type: EventClick, Target: "nav-features"}
	require.True(t, events.dispatch(ev))
	assert.True(t, ev.DefaultPrevented())
	assert.Equal(t, &ScrollRequest{Target: "features", Behavior: "smooth", Block: "start"}, doc.Scroll)

	ev = &Event{Type: EventClick, Target: "hero-cta"}
	require.True(t, events.dispatch(ev))
	assert.Equal(t, SignupID, doc.Scroll.Target)
}

func TestBootstrapScrollToMissingTarget(t *testing.T) {
	b, doc, _, _ := newTestBootstrap(t)
	doc.Scroll = &ScrollRequest{Target: "signup"}

	ev := &Event{Type: EventClick}
	b.ScrollTo(ev, "#nowhere")
	assert.True(t, ev.DefaultPrevented())
	assert.Nil(t, doc.Scroll)
}
