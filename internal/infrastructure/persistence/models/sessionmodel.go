package models

import "time"

// SessionModel represents the database persistence model for account sessions.
type SessionModel struct {
	TokenID             string     `gorm:"primaryKey;size:36"`
	AccountID           string     `gorm:"size:36;not null;index:idx_session_account_origin"`
	OriginID            string     `gorm:"size:36;not null;index:idx_session_account_origin"`
	IPAddress           string     `gorm:"size:45"`
	Device              string     `gorm:"size:50"`
	Browser             string     `gorm:"size:50"`
	CreatedAt           time.Time  `gorm:"not null;index"`
	Invalidated         bool       `gorm:"not null;default:false;index"`
	InvalidatedAt       *time.Time `gorm:"index"`
	PushNotificationKey *string    `gorm:"size:512"`
}

// TableName specifies the table name for GORM
func (SessionModel) TableName() string {
	return "account_session"
}
