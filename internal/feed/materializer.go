package feed

import (
	"context"
	"fmt"
	"time"

	"socialfeed/internal/common"

	"github.com/sirupsen/logrus"
)

// Materializer rebuilds one (user, feedType) feed from scratch: eligibility,
// scoring, then an atomic full replacement of the stored entries. Different
// (user, feedType) pairs never share rows, so materializations are safe to
// run fully concurrently.
type Materializer struct {
	eligibility *EligibilityFilter
	entries     EntryRepository
	cache       *FeedCache
	analytics   AnalyticsRepository

	entryTTL time.Duration
	now      func() time.Time
	log      *logrus.Entry
}

func NewMaterializer(
	eligibility *EligibilityFilter,
	entries EntryRepository,
	cache *FeedCache,
	analytics AnalyticsRepository,
	entryTTL time.Duration,
) *Materializer {
	return &Materializer{
		eligibility: eligibility,
		entries:     entries,
		cache:       cache,
		analytics:   analytics,
		entryTTL:    entryTTL,
		now:         time.Now,
		log:         common.ComponentLogger("materializer"),
	}
}

// Materialize regenerates the feed for one (user, feedType) pair. The
// replacement is all-or-nothing: on storage failure the previous entries
// remain served until the next successful run.
func (m *Materializer) Materialize(ctx context.Context, userID uint64, feedType FeedType) error {
	start := m.now()

	cands, err := m.eligibility.EligiblePosts(ctx, userID, feedType)
	if err != nil {
		return fmt.Errorf("materialize %s for user %d: %w", feedType, userID, err)
	}

	now := m.now()
	ranked := rankCandidates(feedType, cands, now)

	entries := make([]FeedEntry, len(ranked))
	for i, rc := range ranked {
		entries[i] = FeedEntry{
			OwnerUserID:      userID,
			FeedType:         feedType,
			PostID:           rc.Post.PostID,
			AuthorID:         rc.Post.AuthorID,
			Privacy:          rc.Post.Privacy,
			PostCreatedAt:    rc.Post.CreatedAt,
			PostUpdatedAt:    rc.Post.UpdatedAt,
			LikeCount:        rc.Post.LikeCount,
			CommentCount:     rc.Post.CommentCount,
			ShareCount:       rc.Post.ShareCount,
			ViewCount:        rc.Post.ViewCount,
			Rank:             rc.Rank,
			Score:            rc.Score,
			UserRelationship: relationship(userID, rc.Post.AuthorID, rc.IsFriend),
			IsVisible:        true,
			GeneratedAt:      now,
			ExpiresAt:        now.Add(m.entryTTL),
		}
	}

	if err := m.entries.ReplaceAll(ctx, userID, feedType, entries); err != nil {
		return fmt.Errorf("materialize %s for user %d: %w", feedType, userID, err)
	}

	m.cache.Invalidate(ctx, userID, feedType)

	if err := m.analytics.RecordGeneration(ctx, userID, feedType, now); err != nil {
		m.log.WithError(err).Warn("analytics rollup failed")
	}

	m.log.WithFields(logrus.Fields{
		"user_id":   userID,
		"feed_type": feedType,
		"entries":   len(entries),
		"duration":  m.now().Sub(start).String(),
	}).Info("feed materialized")

	return nil
}

func relationship(ownerID, authorID uint64, isFriend bool) Relationship {
	switch {
	case ownerID == authorID:
		return RelationshipSelf
	case isFriend:
		return RelationshipFriend
	default:
		return RelationshipPublic
	}
}
