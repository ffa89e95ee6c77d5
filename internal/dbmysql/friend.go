package dbmysql

import (
	"time"

	"gorm.io/gorm"
)

// Friendship statuses.
const (
	FriendStatusPending  = "pending"
	FriendStatusAccepted = "accepted"
	FriendStatusBlocked  = "blocked"
)

// Friend is a directed friendship edge. Symmetric friendship is not assumed
// by the storage shape; the user service dual-writes both directions on
// accept, so readers must either check both directions or rely on that.
type Friend struct {
	ID           uint64         `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       uint64         `gorm:"column:user_id;not null;index:idx_user_friend,unique" json:"user_id"`
	FriendUserID uint64         `gorm:"column:friend_user_id;not null;index:idx_user_friend,unique" json:"friend_user_id"`
	Status       string         `gorm:"column:status;type:enum('pending','accepted','blocked');default:'pending'" json:"status"`
	RequestedAt  time.Time      `gorm:"column:requested_at;autoCreateTime" json:"requested_at"`
	AcceptedAt   *time.Time     `gorm:"column:accepted_at" json:"accepted_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Friend) TableName() string { return "friends" }
