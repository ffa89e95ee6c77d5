package dbmysql

import (
	"time"
)

// User carries the handful of account fields the feed subsystem reads: the
// admin flag for the maintenance endpoints and the account-level privacy
// setting the user-privacy reactor responds to.
type User struct {
	UserID       uint64    `gorm:"primaryKey;autoIncrement;column:user_id" json:"user_id"`
	Handle       string    `gorm:"column:handle;uniqueIndex" json:"handle"`
	IsAdmin      bool      `gorm:"column:is_admin;default:false" json:"is_admin"`
	PrivacyLevel string    `gorm:"type:ENUM('public','friends','private');column:privacy_level;default:'public'" json:"privacy_level"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (User) TableName() string { return "users" }
