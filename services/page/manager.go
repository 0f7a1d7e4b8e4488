package page

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Factory builds a page session for a visitor
type Factory func(pageID, visitorID, lang string) (*Session, error)

// Manager tracks the loaded pages and expires the idle ones
type Manager struct {
	mu          sync.Mutex
	pages       map[string]*Session
	factory     Factory
	idleTimeout time.Duration
	now         func() time.Time
	logger      *zap.Logger
}

func NewManager(factory Factory, idleTimeout time.Duration, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	if idleTimeout <= 0 {
		idleTimeout = 30 * time.Minute
	}
	return &Manager{
		pages:       make(map[string]*Session),
		factory:     factory,
		idleTimeout: idleTimeout,
		now:         time.Now,
		logger:      logger,
	}
}

// Open creates a fresh page session; every full page load gets its own
func (m *Manager) Open(visitorID, lang string) (*Session, error) {
	pageID := uuid.New().String()
	session, err := m.factory(pageID, visitorID, lang)
	if err != nil {
		return nil, err
	}
	session.Touch(m.now())

	m.mu.Lock()
	m.pages[pageID] = session
	m.mu.Unlock()

	m.logger.Debug("Page session opened", zap.String("page_id", pageID), zap.String("visitor_id", visitorID))
	return session, nil
}

// Get returns a live page session
func (m *Manager) Get(pageID string) (*Session, bool) {
	m.mu.Lock()
	session, ok := m.pages[pageID]
	m.mu.Unlock()
	if !ok || session.Closed() {
		return nil, false
	}
	return session, true
}

// Close runs the unload handlers of a page and stops it
func (m *Manager) Close(ctx context.Context, pageID string) error {
	m.mu.Lock()
	session, ok := m.pages[pageID]
	delete(m.pages, pageID)
	m.mu.Unlock()
	if !ok {
		return ErrSessionClosed
	}
	return m.unload(ctx, session)
}

func (m *Manager) unload(ctx context.Context, session *Session) error {
	err := session.Dispatch(ctx, &Event{Type: EventUnload})
	session.Close()
	return err
}

// Expire unloads pages idle for longer than the idle timeout
func (m *Manager) Expire(ctx context.Context) int {
	cutoff := m.now().Add(-m.idleTimeout)

	m.mu.Lock()
	var stale []*Session
	for id, session := range m.pages {
		if session.LastSeen().Before(cutoff) {
			stale = append(stale, session)
			delete(m.pages, id)
		}
	}
	m.mu.Unlock()

	for _, session := range stale {
		if err := m.unload(ctx, session); err != nil {
			m.logger.Warn("Failed to unload idle page", zap.String("page_id", session.ID), zap.Error(err))
		}
	}
	return len(stale)
}

// Len is the number of live pages
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pages)
}

// Shutdown unloads every page
func (m *Manager) Shutdown(ctx context.Context) {
	m.mu.Lock()
	pages := m.pages
	m.pages = make(map[string]*Session)
	m.mu.Unlock()

	for _, session := range pages {
		_ = m.unload(ctx, session)
	}
}
