package services

import (
	"fmt"
	"sync"
	"time"

	"minicakes_app_go/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FormHashKey is the session storage key holding the last accepted submission fingerprint
const FormHashKey = "lastFormHash"

// SessionStorage is a per-tab key/value store with the semantics of
// browser sessionStorage.
type SessionStorage interface {
	GetItem(key string) (string, bool, error)
	SetItem(key, value string) error
	RemoveItem(key string) error
}

// GormSessionStorage persists a visitor's items in the session_entries table
type GormSessionStorage struct {
	db        *gorm.DB
	sessionID string
}

// TabSessionID is the storage scope of one browser tab of a visitor
func TabSessionID(visitorID, tabID string) string {
	return visitorID + ":" + tabID
}

// NewGormSessionStorage scopes storage to one session id
func NewGormSessionStorage(db *gorm.DB, sessionID string) *GormSessionStorage {
	return &GormSessionStorage{db: db, sessionID: sessionID}
}

func (s *GormSessionStorage) GetItem(key string) (string, bool, error) {
	var entry models.SessionEntry
	result := s.db.Where("session_id = ? AND item_key = ?", s.sessionID, key).Limit(1).Find(&entry)
	if result.Error != nil {
		return "", false, fmt.Errorf("failed to read session item %s: %w", key, result.Error)
	}
	if result.RowsAffected == 0 {
		return "", false, nil
	}
	return entry.Value, true, nil
}

func (s *GormSessionStorage) SetItem(key, value string) error {
	entry := models.SessionEntry{
		SessionID: s.sessionID,
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}, {Name: "item_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("failed to write session item %s: %w", key, err)
	}
	return nil
}

func (s *GormSessionStorage) RemoveItem(key string) error {
	err := s.db.Where("session_id = ? AND item_key = ?", s.sessionID, key).Delete(&models.SessionEntry{}).Error
	if err != nil {
		return fmt.Errorf("failed to remove session item %s: %w", key, err)
	}
	return nil
}

// CleanupStaleSessionEntries deletes items not touched since the cutoff
func CleanupStaleSessionEntries(db *gorm.DB, olderThan time.Duration) error {
	cutoff := time.Now().Add(-olderThan)
	return db.Where("updated_at < ?", cutoff).Delete(&models.SessionEntry{}).Error
}

// MemorySessionStorage keeps items in process memory
type MemorySessionStorage struct {
	mu    sync.Mutex
	items map[string]string
}

func NewMemorySessionStorage() *MemorySessionStorage {
	return &MemorySessionStorage{items: make(map[string]string)}
}

func (s *MemorySessionStorage) GetItem(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.items[key]
	return value, ok, nil
}

func (s *MemorySessionStorage) SetItem(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
	return nil
}

func (s *MemorySessionStorage) RemoveItem(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
	return nil
}
