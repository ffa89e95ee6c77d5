package dbmysql

import (
	"time"
)

// Privacy levels as stored on posts and users.
const (
	PrivacyPublic  = "public"
	PrivacyFriends = "friends"
	PrivacyPrivate = "private"
)

// Post is the relational post row. The feed subsystem only ever reads it;
// post CRUD belongs to the content service.
type Post struct {
	PostID           int64     `gorm:"primaryKey;autoIncrement;column:post_id" json:"post_id"`
	AuthorID         uint64    `gorm:"column:author_id;index" json:"author_id"`
	Privacy          string    `gorm:"type:ENUM('public','friends','private');column:privacy" json:"privacy"`
	LikeCount        int64     `gorm:"column:like_count;default:0" json:"like_count"`
	CommentCount     int64     `gorm:"column:comment_count;default:0" json:"comment_count"`
	ShareCount       int64     `gorm:"column:share_count;default:0" json:"share_count"`
	ViewCount        int64     `gorm:"column:view_count;default:0" json:"view_count"`
	AuthorReputation *float64  `gorm:"column:author_reputation" json:"author_reputation,omitempty"`
	CreatedAt        time.Time `gorm:"column:created_at;index" json:"created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Post) TableName() string { return "posts" }
