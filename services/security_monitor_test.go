package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecurityMonitor(t *testing.T) {
	clock := newFakeClock()
	m := NewSecurityEventMonitor()
	m.now = clock.Now
	ip := "127.0.0.1"

	t.Run("Only unsafe content counts", func(t *testing.T) {
		for i := 0; i < 10; i++ {
			m.TrackRejection(ip, KindInvalidEmail)
		}
		assert.Empty(t, m.GetRecentAlerts())
	})

	t.Run("Alert after repeated unsafe input", func(t *testing.T) {
		for i := 0; i < 5; i++ {
			m.TrackRejection(ip, KindUnsafeContent)
		}

		alerts := m.GetRecentAlerts()
		require.Len(t, alerts, 1)
		assert.Equal(t, ip, alerts[0].IP)
		assert.Contains(t, alerts[0].Reason, "unsafe signup input")
	})

	t.Run("Duplicate alert rate limit", func(t *testing.T) {
		for i := 0; i < 5; i++ {
			m.TrackRejection(ip, KindUnsafeContent)
		}
		assert.Len(t, m.GetRecentAlerts(), 1)
	})

	t.Run("Cleanup forgets old activity", func(t *testing.T) {
		clock.Advance(2 * time.Hour)
		m.Cleanup()

		m.mu.Lock()
		defer m.mu.Unlock()
		assert.Empty(t, m.attempts)
		assert.Empty(t, m.alertedIPs)
		assert.Len(t, m.alerts, 1)
	})
}

func TestSecurityMonitorWindow(t *testing.T) {
	clock := newFakeClock()
	m := NewSecurityEventMonitor()
	m.now = clock.Now

	for i := 0; i < 4; i++ {
		m.TrackRejection("10.0.0.1", KindUnsafeContent)
	}
	clock.Advance(11 * time.Minute)
	m.TrackRejection("10.0.0.1", KindUnsafeContent)

	assert.Empty(t, m.GetRecentAlerts())
}
