package feed

import (
	"context"
	"errors"
	"fmt"

	"socialfeed/internal/dbmysql"

	"gorm.io/gorm"
)

// FriendshipRepository answers relationship questions over the friendship
// edge table. All methods are side-effect-free reads.
type FriendshipRepository interface {
	// IsConnected reports whether an accepted edge userA -> userB exists.
	// Self is never a friend: IsConnected(u, u) is false. Store errors
	// propagate; callers must not treat an error as "not connected".
	IsConnected(ctx context.Context, userA, userB uint64) (bool, error)

	// ViewerIDs returns the distinct users with an accepted edge to or from
	// the author, i.e. everyone whose feeds a new post by this author can
	// land in. The user service dual-writes edges, but both directions are
	// unioned here rather than relying on that.
	ViewerIDs(ctx context.Context, authorID uint64) ([]uint64, error)

	// FollowerIDs returns users with an inbound accepted edge to userID.
	FollowerIDs(ctx context.Context, userID uint64) ([]uint64, error)
}

type friendshipRepository struct {
	db *gorm.DB
}

func NewFriendshipRepository(db *gorm.DB) FriendshipRepository {
	return &friendshipRepository{db: db}
}

func (r *friendshipRepository) IsConnected(ctx context.Context, userA, userB uint64) (bool, error) {
	if userA == userB {
		return false, nil
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&dbmysql.Friend{}).
		Where("user_id = ? AND friend_user_id = ? AND status = ?", userA, userB, dbmysql.FriendStatusAccepted).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("friendship lookup: %w", err)
	}
	return count > 0, nil
}

func (r *friendshipRepository) ViewerIDs(ctx context.Context, authorID uint64) ([]uint64, error) {
	var edges []dbmysql.Friend
	err := r.db.WithContext(ctx).
		Where("(user_id = ? OR friend_user_id = ?) AND status = ?", authorID, authorID, dbmysql.FriendStatusAccepted).
		Find(&edges).Error
	if err != nil {
		return nil, fmt.Errorf("viewer expansion query: %w", err)
	}

	seen := make(map[uint64]bool)
	var viewers []uint64
	for _, e := range edges {
		other := e.UserID
		if other == authorID {
			other = e.FriendUserID
		}
		if other == authorID || seen[other] {
			continue
		}
		seen[other] = true
		viewers = append(viewers, other)
	}
	return viewers, nil
}

func (r *friendshipRepository) FollowerIDs(ctx context.Context, userID uint64) ([]uint64, error) {
	var edges []dbmysql.Friend
	err := r.db.WithContext(ctx).
		Where("friend_user_id = ? AND status = ?", userID, dbmysql.FriendStatusAccepted).
		Find(&edges).Error
	if err != nil {
		return nil, fmt.Errorf("follower query: %w", err)
	}

	followers := make([]uint64, 0, len(edges))
	for _, e := range edges {
		followers = append(followers, e.UserID)
	}
	return followers, nil
}

// UserRepository reads the account fields the feed subsystem cares about.
type UserRepository interface {
	IsAdmin(ctx context.Context, userID uint64) (bool, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) IsAdmin(ctx context.Context, userID uint64) (bool, error) {
	var user dbmysql.User
	err := r.db.WithContext(ctx).First(&user, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("user lookup: %w", err)
	}
	return user.IsAdmin, nil
}
