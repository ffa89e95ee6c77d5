package feed

import (
	"context"
	"errors"
	"fmt"

	"socialfeed/internal/dbmysql"

	"gorm.io/gorm"
)

// ErrPostNotFound marks a post that a job references but that no longer
// exists. Job processing skips such posts instead of failing the whole job.
var ErrPostNotFound = errors.New("post not found")

// PostRepository reads posts, which belong to the content service. The feed
// subsystem never writes them.
type PostRepository interface {
	// RecentVisible returns the most recent posts with privacy public or
	// friends, newest first, bounded by limit. Private posts never enter
	// any generated feed, so they are filtered at the query.
	RecentVisible(ctx context.Context, limit int) ([]dbmysql.Post, error)
	GetByID(ctx context.Context, postID int64) (*dbmysql.Post, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) RecentVisible(ctx context.Context, limit int) ([]dbmysql.Post, error) {
	var posts []dbmysql.Post
	err := r.db.WithContext(ctx).
		Where("privacy IN ?", []string{dbmysql.PrivacyPublic, dbmysql.PrivacyFriends}).
		Order("created_at DESC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("recent posts query: %w", err)
	}
	return posts, nil
}

func (r *postRepository) GetByID(ctx context.Context, postID int64) (*dbmysql.Post, error) {
	var post dbmysql.Post
	err := r.db.WithContext(ctx).First(&post, "post_id = ?", postID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("post lookup: %w", err)
	}
	return &post, nil
}
