package models

import "time"

// AccountModel represents the database persistence model for accounts.
type AccountModel struct {
	PublicID     string    `gorm:"primaryKey;size:36"`
	Username     string    `gorm:"uniqueIndex;size:64;not null"`
	PasswordHash string    `gorm:"size:100;not null"`
	CreatedAt    time.Time `gorm:"not null"`
	LinkedUserID *string   `gorm:"size:36"`
}

// TableName specifies the table name for GORM
func (AccountModel) TableName() string {
	return "account"
}
