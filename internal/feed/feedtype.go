package feed

import (
	"errors"
	"fmt"
)

// FeedType is the closed set of ranking strategies applied to the post pool.
type FeedType string

const (
	FeedChronological FeedType = "chronological"
	FeedAlgorithmic   FeedType = "algorithmic"
	FeedFriends       FeedType = "friends"
	FeedTrending      FeedType = "trending"
)

var ErrInvalidFeedType = errors.New("invalid feed type")

// ParseFeedType validates an externally supplied feed type string.
func ParseFeedType(s string) (FeedType, error) {
	switch FeedType(s) {
	case FeedChronological, FeedAlgorithmic, FeedFriends, FeedTrending:
		return FeedType(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidFeedType, s)
}

// AllFeedTypes returns every feed type, in a stable order.
func AllFeedTypes() []FeedType {
	return []FeedType{FeedChronological, FeedAlgorithmic, FeedFriends, FeedTrending}
}

// Scored reports whether entries of this feed type carry a score. Rank for
// the unscored types is pure recency order.
func (ft FeedType) Scored() bool {
	return ft == FeedAlgorithmic || ft == FeedTrending
}

// RankField names the logical rank column for this feed type, as exposed to
// the analytics consumers. Storage keeps a single rank per entry document;
// which rank it is follows from the entry's feed type.
func (ft FeedType) RankField() string {
	switch ft {
	case FeedChronological:
		return "chronologicalRank"
	case FeedAlgorithmic:
		return "algorithmicRank"
	case FeedFriends:
		return "friendsRank"
	case FeedTrending:
		return "trendingRank"
	}
	return ""
}

// JobType classifies what mutation a generation job reacts to.
type JobType string

const (
	JobPostCreated       JobType = "post_created"
	JobPrivacyChanged    JobType = "privacy_changed"
	JobFriendshipChanged JobType = "friendship_changed"
	JobCleanup           JobType = "cleanup"
	JobBulkUpdate        JobType = "bulk_update"
)

// JobStatus is the job lifecycle: pending -> processing -> completed|failed.
// A failed job is retried by re-marking it pending while attempts remain.
type JobStatus string

const (
	JobPending    JobStatus = "pending"
	JobProcessing JobStatus = "processing"
	JobCompleted  JobStatus = "completed"
	JobFailed     JobStatus = "failed"
)

// Relationship tags how the feed owner relates to an entry's author.
type Relationship string

const (
	RelationshipSelf   Relationship = "self"
	RelationshipFriend Relationship = "friend"
	RelationshipPublic Relationship = "public"
)
