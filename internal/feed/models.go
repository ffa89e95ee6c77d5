package feed

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FeedEntry is one denormalized row of a materialized feed: one document per
// (ownerUserId, feedType, postId). Entries for a (owner, feedType) pair form
// a dense rank sequence 1..N at generation time and are always replaced
// wholesale, never patched into shape.
type FeedEntry struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	OwnerUserID uint64             `bson:"ownerUserId" json:"owner_user_id"`
	FeedType    FeedType           `bson:"feedType" json:"feed_type"`
	PostID      int64              `bson:"postId" json:"post_id"`

	// denormalized post snapshot
	AuthorID      uint64    `bson:"authorId" json:"author_id"`
	Privacy       string    `bson:"privacy" json:"privacy"`
	PostCreatedAt time.Time `bson:"postCreatedAt" json:"post_created_at"`
	PostUpdatedAt time.Time `bson:"postUpdatedAt" json:"post_updated_at"`
	LikeCount     int64     `bson:"likeCount" json:"like_count"`
	CommentCount  int64     `bson:"commentCount" json:"comment_count"`
	ShareCount    int64     `bson:"shareCount" json:"share_count"`
	ViewCount     int64     `bson:"viewCount" json:"view_count"`

	Rank             int          `bson:"rank" json:"rank"`
	Score            *float64     `bson:"score,omitempty" json:"score,omitempty"`
	UserRelationship Relationship `bson:"userRelationship" json:"user_relationship"`
	IsVisible        bool         `bson:"isVisible" json:"is_visible"`
	GeneratedAt      time.Time    `bson:"generatedAt" json:"generated_at"`
	ExpiresAt        time.Time    `bson:"expiresAt" json:"expires_at"`
}

// FeedGenerationJob is a queued unit of work: recompute feed type(s) for one
// or more users, possibly regarding a post.
type FeedGenerationJob struct {
	ID              string     `bson:"_id" json:"id"`
	JobType         JobType    `bson:"jobType" json:"job_type"`
	UserID          uint64     `bson:"userId,omitempty" json:"user_id,omitempty"`
	PostID          int64      `bson:"postId,omitempty" json:"post_id,omitempty"`
	AffectedUserIDs []uint64   `bson:"affectedUserIds,omitempty" json:"affected_user_ids,omitempty"`
	FeedTypes       []FeedType `bson:"feedTypes" json:"feed_types"`
	Priority        int        `bson:"priority" json:"priority"` // 1-10, higher is more urgent
	Status          JobStatus  `bson:"status" json:"status"`
	Attempts        int        `bson:"attempts" json:"attempts"`
	MaxAttempts     int        `bson:"maxAttempts" json:"max_attempts"`
	Error           string     `bson:"error,omitempty" json:"error,omitempty"`
	ClaimID         string     `bson:"claimId,omitempty" json:"-"`
	CreatedAt       time.Time  `bson:"createdAt" json:"created_at"`
	UpdatedAt       time.Time  `bson:"updatedAt" json:"updated_at"`
}

// FeedPreferences holds a user's feed-type enablement and refresh settings.
// Pass-through state for the preferences endpoints, not core logic.
type FeedPreferences struct {
	UserID             uint64     `bson:"_id" json:"user_id"`
	EnabledFeedTypes   []FeedType `bson:"enabledFeedTypes" json:"enabled_feed_types"`
	AutoRefresh        bool       `bson:"autoRefresh" json:"auto_refresh"`
	RefreshIntervalSec int        `bson:"refreshIntervalSec" json:"refresh_interval_sec"`
	UpdatedAt          time.Time  `bson:"updatedAt" json:"updated_at"`
}

// DefaultPreferences is what a user gets before ever saving preferences.
func DefaultPreferences(userID uint64) *FeedPreferences {
	return &FeedPreferences{
		UserID:             userID,
		EnabledFeedTypes:   AllFeedTypes(),
		AutoRefresh:        false,
		RefreshIntervalSec: 300,
	}
}

// FeedAnalytics is a daily rollup per (user, feedType): how often the feed
// was read and regenerated, and how many entries were served.
type FeedAnalytics struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	UserID          uint64             `bson:"userId" json:"user_id"`
	FeedType        FeedType           `bson:"feedType" json:"feed_type"`
	Day             string             `bson:"day" json:"day"` // YYYY-MM-DD, UTC
	Reads           int64              `bson:"reads" json:"reads"`
	Generations     int64              `bson:"generations" json:"generations"`
	EntriesServed   int64              `bson:"entriesServed" json:"entries_served"`
	LastGeneratedAt time.Time          `bson:"lastGeneratedAt,omitempty" json:"last_generated_at"`
}

// FeedPage is the paginated read result.
type FeedPage struct {
	Entries    []FeedEntry `json:"posts"`
	NextCursor string      `json:"nextCursor,omitempty"`
	HasMore    bool        `json:"hasMore"`
	TotalCount int64       `json:"totalCount"`
	LoadTimeMs int64       `json:"loadTime"`
	CacheHit   bool        `json:"cacheHit"`
}
