package page

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionDispatch(t *testing.T) {
	s := newTestSession(t, nil, newTestClock())
	ctx := context.Background()

	doc, err := s.DispatchAndSnapshot(ctx, &Event{Type: EventLoad, URL: "/"})
	require.NoError(t, err)
	assert.Len(t, doc.History, 1)
	assert.Equal(t, []string{"variant-cupcake"}, activeItems(doc))

	err = s.Dispatch(ctx, &Event{Type: EventClick, Target: "variant-donut"})
	assert.True(t, errors.Is(err, ErrUnhandledEvent))
}

func TestSessionAnimationRestoresOnSessionGoroutine(t *testing.T) {
	s := newTestSession(t, nil, newTestClock())
	ctx := context.Background()

	doc, err := s.DispatchAndSnapshot(ctx, &Event{Type: EventClick, Target: VariantElementID("pie")})
	require.NoError(t, err)
	assert.Equal(t, "scale(0.8)", doc.GetElementByID(MainDisplayID).Style["transform"])

	assert.Eventually(t, func() bool {
		doc, err := s.Snapshot(ctx)
		return err == nil && doc.GetElementByID(MainDisplayID).Style["transform"] == "scale(1)"
	}, time.Second, 10*time.Millisecond)
}

func TestSessionTouch(t *testing.T) {
	s := newTestSession(t, nil, newTestClock())
	past := time.Now().Add(-time.Hour)
	s.Touch(past)
	assert.Equal(t, past.UnixNano(), s.LastSeen().UnixNano())

	require.NoError(t, s.Dispatch(context.Background(), &Event{Type: EventScroll, ScrollY: 1}))
	assert.True(t, s.LastSeen().After(past))
}

func TestSessionClosed(t *testing.T) {
	s := newTestSession(t, nil, newTestClock())
	s.Close()
	s.Close()

	assert.True(t, s.Closed())
	assert.ErrorIs(t, s.Dispatch(context.Background(), &Event{Type: EventScroll}), ErrSessionClosed)
	_, err := s.Snapshot(context.Background())
	assert.ErrorIs(t, err, ErrSessionClosed)
}

func TestSessionRecoversFromPanics(t *testing.T) {
	s := newTestSession(t, nil, newTestClock())
	ctx := context.Background()

	require.NoError(t, s.Do(ctx, func(*Document) { panic("boom") }))
	assert.False(t, s.Closed())
	_, err := s.Snapshot(ctx)
	assert.NoError(t, err)
}
