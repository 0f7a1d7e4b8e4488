package services

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	suspiciousWindow    = 10 * time.Minute
	suspiciousThreshold = 5
	alertCooldown       = time.Hour
	maxAlerts           = 100
)

// SecurityEventMonitor counts rejected signups carrying markup or script
// payloads per client IP and raises an alert when one IP keeps trying
type SecurityEventMonitor struct {
	mu         sync.Mutex
	attempts   map[string][]time.Time // IP -> rejection timestamps
	alertedIPs map[string]time.Time   // IP -> last alert time
	alerts     []SecurityAlert        // newest first
	now        func() time.Time
}

// SecurityAlert represents a triggered security alert
type SecurityAlert struct {
	Timestamp time.Time
	IP        string
	Reason    string
	Level     string // "WARNING", "CRITICAL"
}

// Monitor is the process-wide instance used by the handlers
var Monitor = NewSecurityEventMonitor()

func NewSecurityEventMonitor() *SecurityEventMonitor {
	return &SecurityEventMonitor{
		attempts:   make(map[string][]time.Time),
		alertedIPs: make(map[string]time.Time),
		now:        time.Now,
	}
}

// TrackRejection records a guard rejection; only unsafe content counts
func (m *SecurityEventMonitor) TrackRejection(ip string, kind SignupErrorKind) {
	if kind != KindUnsafeContent || ip == "" {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	windowStart := now.Add(-suspiciousWindow)
	recent := m.attempts[ip][:0]
	for _, t := range m.attempts[ip] {
		if t.After(windowStart) {
			recent = append(recent, t)
		}
	}
	recent = append(recent, now)
	m.attempts[ip] = recent

	if len(recent) >= suspiciousThreshold {
		m.triggerAlertLocked(ip, "Repeated unsafe signup input")
	}
}

// triggerAlertLocked logs an alert at most once per cooldown per IP
func (m *SecurityEventMonitor) triggerAlertLocked(ip, reason string) {
	now := m.now()
	if last, ok := m.alertedIPs[ip]; ok && now.Sub(last) < alertCooldown {
		return
	}
	m.alertedIPs[ip] = now

	alert := SecurityAlert{Timestamp: now, IP: ip, Reason: reason, Level: "CRITICAL"}
	m.alerts = append([]SecurityAlert{alert}, m.alerts...)
	if len(m.alerts) > maxAlerts {
		m.alerts = m.alerts[:maxAlerts]
	}

	zap.L().Warn("[SECURITY ALERT] "+reason, zap.String("ip", ip), zap.Int("attempts", len(m.attempts[ip])))
}

// GetRecentAlerts returns a copy of recent alerts
func (m *SecurityEventMonitor) GetRecentAlerts() []SecurityAlert {
	m.mu.Lock()
	defer m.mu.Unlock()
	alerts := make([]SecurityAlert, len(m.alerts))
	copy(alerts, m.alerts)
	return alerts
}

// Cleanup drops attempt windows and alert marks that have run out
func (m *SecurityEventMonitor) Cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for ip, attempts := range m.attempts {
		if len(attempts) == 0 || now.Sub(attempts[len(attempts)-1]) > suspiciousWindow {
			delete(m.attempts, ip)
		}
	}
	for ip, last := range m.alertedIPs {
		if now.Sub(last) > alertCooldown {
			delete(m.alertedIPs, ip)
		}
	}
}
