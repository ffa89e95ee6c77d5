package feed

import (
	"context"
	"fmt"

	"socialfeed/internal/dbmysql"
)

// EligibilityFilter selects the candidate post set for one (user, feedType)
// pair out of the bounded recent-post window.
type EligibilityFilter struct {
	posts   PostRepository
	friends FriendshipRepository

	// candidateLimit bounds the recent-post window fetched per run
	candidateLimit int
}

func NewEligibilityFilter(posts PostRepository, friends FriendshipRepository, candidateLimit int) *EligibilityFilter {
	return &EligibilityFilter{posts: posts, friends: friends, candidateLimit: candidateLimit}
}

// EligiblePosts returns candidates newest-first. The relationship check per
// author is memoized across the window, so the friendship table is hit once
// per distinct author rather than once per post.
func (f *EligibilityFilter) EligiblePosts(ctx context.Context, userID uint64, feedType FeedType) ([]candidate, error) {
	recent, err := f.posts.RecentVisible(ctx, f.candidateLimit)
	if err != nil {
		return nil, fmt.Errorf("eligibility fetch: %w", err)
	}

	connected := make(map[uint64]bool)
	var out []candidate
	for _, post := range recent {
		isFriend := false
		if post.AuthorID != userID {
			cached, ok := connected[post.AuthorID]
			if !ok {
				cached, err = f.friends.IsConnected(ctx, userID, post.AuthorID)
				if err != nil {
					return nil, fmt.Errorf("eligibility relationship check: %w", err)
				}
				connected[post.AuthorID] = cached
			}
			isFriend = cached
		}

		if !eligible(feedType, &post, userID, isFriend) {
			continue
		}
		out = append(out, candidate{Post: post, IsFriend: isFriend})
	}
	return out, nil
}

// eligible applies the per-feed-type visibility rule. Private posts never
// reach this point: the recent window excludes them at the query.
func eligible(feedType FeedType, post *dbmysql.Post, userID uint64, isFriend bool) bool {
	switch feedType {
	case FeedChronological, FeedAlgorithmic:
		if post.AuthorID == userID {
			return true
		}
		return post.Privacy == dbmysql.PrivacyPublic ||
			(post.Privacy == dbmysql.PrivacyFriends && isFriend)
	case FeedFriends:
		// relationship-scoped, not privacy-scoped; self is not a friend
		return isFriend
	case FeedTrending:
		return post.Privacy == dbmysql.PrivacyPublic &&
			EngagementScore(post) > trendingEngagementThreshold
	}
	return false
}
