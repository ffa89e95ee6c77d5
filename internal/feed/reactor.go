package feed

import (
	"context"
	"fmt"
	"time"

	"socialfeed/internal/common"
	"socialfeed/internal/dbmysql"

	"github.com/sirupsen/logrus"
)

// Job priorities per mutation kind. Higher is more urgent.
const (
	priorityPostCreated    = 8
	priorityFriendshipMade = 7
	priorityPrivacyOpened  = 6
	priorityUserPrivacy    = 5
)

// Engagement deltas below these thresholds are ignored; above them the
// existing algorithmic/trending entries get an in-place counter/score patch.
const (
	likeDeltaThreshold    = 5
	commentDeltaThreshold = 2
	shareDeltaThreshold   = 1
)

// BuildUpReactor is the async lane: it translates mutations that make
// content visible into queued regeneration jobs.
type BuildUpReactor interface {
	PostCreated(ctx context.Context, postID int64) error
	PostPrivacyOpened(ctx context.Context, postID int64) error
	FriendshipAccepted(ctx context.Context, userID, friendID uint64) error
	UserPrivacyChanged(ctx context.Context, userID uint64) error
}

// TearDownReactor is the sync lane: safety-critical removals happen
// immediately, never through the queue. It also carries the targeted
// engagement patch, which updates entries in place without regeneration.
type TearDownReactor interface {
	PostMadePrivate(ctx context.Context, postID int64) error
	FriendshipRemoved(ctx context.Context, userID, friendID uint64) error
	EngagementChanged(ctx context.Context, postID int64, likesDelta, commentsDelta, sharesDelta int64) error
}

// queueReactor implements the build-up lane over the job queue.
type queueReactor struct {
	posts       PostRepository
	friends     FriendshipRepository
	jobs        JobRepository
	maxAttempts int
	log         *logrus.Entry
}

func NewBuildUpReactor(posts PostRepository, friends FriendshipRepository, jobs JobRepository, maxAttempts int) BuildUpReactor {
	return &queueReactor{
		posts:       posts,
		friends:     friends,
		jobs:        jobs,
		maxAttempts: maxAttempts,
		log:         common.ComponentLogger("reactor"),
	}
}

func (r *queueReactor) PostCreated(ctx context.Context, postID int64) error {
	return r.fanOutForPost(ctx, postID, JobPostCreated, priorityPostCreated)
}

func (r *queueReactor) PostPrivacyOpened(ctx context.Context, postID int64) error {
	return r.fanOutForPost(ctx, postID, JobPrivacyChanged, priorityPrivacyOpened)
}

// fanOutForPost enqueues one job per eligible viewer of the post's author:
// everyone connected to the author, plus the author themselves.
func (r *queueReactor) fanOutForPost(ctx context.Context, postID int64, jobType JobType, priority int) error {
	post, err := r.posts.GetByID(ctx, postID)
	if err != nil {
		return fmt.Errorf("post fan-out: %w", err)
	}
	if post.Privacy == dbmysql.PrivacyPrivate {
		// private posts never enter feeds; nothing to build
		return nil
	}

	viewers, err := r.friends.ViewerIDs(ctx, post.AuthorID)
	if err != nil {
		return fmt.Errorf("post fan-out: %w", err)
	}
	viewers = append(viewers, post.AuthorID)

	feedTypes := []FeedType{FeedChronological, FeedAlgorithmic, FeedFriends}
	for _, viewer := range viewers {
		job := &FeedGenerationJob{
			JobType:     jobType,
			UserID:      viewer,
			PostID:      postID,
			FeedTypes:   feedTypes,
			Priority:    priority,
			MaxAttempts: r.maxAttempts,
		}
		if err := r.jobs.Enqueue(ctx, job); err != nil {
			return fmt.Errorf("post fan-out enqueue for user %d: %w", viewer, err)
		}
	}

	r.log.WithFields(logrus.Fields{
		"post_id":  postID,
		"job_type": jobType,
		"viewers":  len(viewers),
	}).Info("fan-out jobs enqueued")
	return nil
}

func (r *queueReactor) FriendshipAccepted(ctx context.Context, userID, friendID uint64) error {
	feedTypes := []FeedType{FeedFriends, FeedAlgorithmic}
	for _, side := range []uint64{userID, friendID} {
		job := &FeedGenerationJob{
			JobType:     JobFriendshipChanged,
			UserID:      side,
			FeedTypes:   feedTypes,
			Priority:    priorityFriendshipMade,
			MaxAttempts: r.maxAttempts,
		}
		if err := r.jobs.Enqueue(ctx, job); err != nil {
			return fmt.Errorf("friendship enqueue for user %d: %w", side, err)
		}
	}
	return nil
}

func (r *queueReactor) UserPrivacyChanged(ctx context.Context, userID uint64) error {
	followers, err := r.friends.FollowerIDs(ctx, userID)
	if err != nil {
		return fmt.Errorf("user privacy fan-out: %w", err)
	}

	feedTypes := []FeedType{FeedChronological, FeedAlgorithmic, FeedFriends}
	for _, follower := range followers {
		job := &FeedGenerationJob{
			JobType:     JobBulkUpdate,
			UserID:      follower,
			FeedTypes:   feedTypes,
			Priority:    priorityUserPrivacy,
			MaxAttempts: r.maxAttempts,
		}
		if err := r.jobs.Enqueue(ctx, job); err != nil {
			return fmt.Errorf("user privacy enqueue for user %d: %w", follower, err)
		}
	}
	return nil
}

// directReactor implements the tear-down lane with immediate storage writes.
type directReactor struct {
	posts   PostRepository
	entries EntryRepository
	cache   *FeedCache
	now     func() time.Time
	log     *logrus.Entry
}

func NewTearDownReactor(posts PostRepository, entries EntryRepository, cache *FeedCache) TearDownReactor {
	return &directReactor{
		posts:   posts,
		entries: entries,
		cache:   cache,
		now:     time.Now,
		log:     common.ComponentLogger("reactor"),
	}
}

// PostMadePrivate removes every feed entry referencing the post, across all
// owners and feed types, before any regeneration job could run.
func (r *directReactor) PostMadePrivate(ctx context.Context, postID int64) error {
	owners, err := r.entries.OwnersForPost(ctx, postID)
	if err != nil {
		return fmt.Errorf("post teardown: %w", err)
	}

	deleted, err := r.entries.DeleteByPost(ctx, postID)
	if err != nil {
		return fmt.Errorf("post teardown: %w", err)
	}

	for _, owner := range owners {
		r.cache.InvalidateAll(ctx, owner)
	}

	r.log.WithFields(logrus.Fields{
		"post_id": postID,
		"deleted": deleted,
	}).Info("post entries torn down")
	return nil
}

// FriendshipRemoved deletes each side's entries referencing the other
// side's posts.
func (r *directReactor) FriendshipRemoved(ctx context.Context, userID, friendID uint64) error {
	if _, err := r.entries.DeleteByOwnerAndAuthor(ctx, userID, friendID); err != nil {
		return fmt.Errorf("friendship teardown: %w", err)
	}
	if _, err := r.entries.DeleteByOwnerAndAuthor(ctx, friendID, userID); err != nil {
		return fmt.Errorf("friendship teardown: %w", err)
	}

	r.cache.InvalidateAll(ctx, userID)
	r.cache.InvalidateAll(ctx, friendID)
	return nil
}

// EngagementChanged patches the post's algorithmic and trending entries in
// place when the delta is significant, recomputing scores from the current
// counters. A full regeneration is deliberately not triggered.
func (r *directReactor) EngagementChanged(ctx context.Context, postID int64, likesDelta, commentsDelta, sharesDelta int64) error {
	if likesDelta <= likeDeltaThreshold &&
		commentsDelta <= commentDeltaThreshold &&
		sharesDelta <= shareDeltaThreshold {
		return nil
	}

	post, err := r.posts.GetByID(ctx, postID)
	if err != nil {
		return fmt.Errorf("engagement patch: %w", err)
	}

	entries, err := r.entries.EntriesForPost(ctx, postID, []FeedType{FeedAlgorithmic, FeedTrending})
	if err != nil {
		return fmt.Errorf("engagement patch: %w", err)
	}
	if len(entries) == 0 {
		return nil
	}

	now := r.now()
	updates := make([]EngagementUpdate, 0, len(entries))
	for _, e := range entries {
		isFriend := e.UserRelationship == RelationshipFriend
		updates = append(updates, EngagementUpdate{
			ID:           e.ID,
			LikeCount:    post.LikeCount,
			CommentCount: post.CommentCount,
			ShareCount:   post.ShareCount,
			ViewCount:    post.ViewCount,
			Score:        scoreForType(e.FeedType, post, isFriend, now),
		})
	}

	if err := r.entries.BulkUpdateEngagement(ctx, updates); err != nil {
		return fmt.Errorf("engagement patch: %w", err)
	}

	r.log.WithFields(logrus.Fields{
		"post_id": postID,
		"entries": len(updates),
	}).Info("engagement scores patched")
	return nil
}
