package models

import (
	"time"
)

// SessionEntry is one key/value item of a browser tab's session storage.
// SessionID is "<visitor id>:<tab id>".
type SessionEntry struct {
	SessionID string    `gorm:"primaryKey;type:varchar(80)" json:"session_id"`
	Key       string    `gorm:"column:item_key;primaryKey;type:varchar(64)" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `gorm:"index" json:"updated_at"`
}

// TableName specifies the table name for SessionEntry model
func (SessionEntry) TableName() string {
	return "session_entries"
}
