package models

import "time"

// UserModel represents the database persistence model for users.
type UserModel struct {
	UserID             string    `gorm:"primaryKey;size:36"`
	FirstName          string    `gorm:"size:64;not null"`
	LastName           string    `gorm:"size:64;not null"`
	CreatedAt          time.Time `gorm:"not null"`
	IsTemporary        bool      `gorm:"not null;default:false"`
	PriceRanking       string    `gorm:"size:16;not null"`
	Permissions        string    `gorm:"size:16;not null"`
	ProfilePicturePath *string   `gorm:"size:255"`
}

// TableName specifies the table name for GORM
func (UserModel) TableName() string {
	return "users"
}
