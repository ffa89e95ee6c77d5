package feed

import (
	"math"
	"sort"
	"time"

	"socialfeed/internal/dbmysql"
)

// Scoring constants. These are load-bearing: feeds materialized before and
// after a regeneration must agree bit-for-bit on unchanged data.
const (
	algorithmicDecayRate = 0.1
	trendingDecayRate    = 0.05
	friendBonus          = 1.5
	defaultReputation    = 1.0

	// minimum engagement for a public post to enter the trending pool
	trendingEngagementThreshold = 10
)

// EngagementScore weights shares over comments over likes.
func EngagementScore(p *dbmysql.Post) float64 {
	return float64(p.LikeCount) + 2*float64(p.CommentCount) + 3*float64(p.ShareCount)
}

// TimeDecay is exp(-rate * ageDays). Strictly decreasing in age.
func TimeDecay(rate float64, age time.Duration) float64 {
	ageDays := age.Hours() / 24
	return math.Exp(-rate * ageDays)
}

// AlgorithmicScore is timeDecay * engagement * friendBonus * reputation.
func AlgorithmicScore(p *dbmysql.Post, isFriend bool, now time.Time) float64 {
	decay := TimeDecay(algorithmicDecayRate, now.Sub(p.CreatedAt))
	bonus := 1.0
	if isFriend {
		bonus = friendBonus
	}
	reputation := defaultReputation
	if p.AuthorReputation != nil {
		reputation = *p.AuthorReputation
	}
	return decay * EngagementScore(p) * bonus * reputation
}

// TrendingScore is timeDecay * (engagement + viewVelocity), with velocity
// measured in views per hour and the divisor floored at one hour.
func TrendingScore(p *dbmysql.Post, now time.Time) float64 {
	decay := TimeDecay(trendingDecayRate, now.Sub(p.CreatedAt))
	ageHours := now.Sub(p.CreatedAt).Hours()
	velocity := float64(p.ViewCount) / math.Max(1, ageHours)
	return decay * (EngagementScore(p) + velocity)
}

// scoreForType returns the score for scored feed types and nil otherwise.
func scoreForType(ft FeedType, p *dbmysql.Post, isFriend bool, now time.Time) *float64 {
	switch ft {
	case FeedAlgorithmic:
		s := AlgorithmicScore(p, isFriend, now)
		return &s
	case FeedTrending:
		s := TrendingScore(p, now)
		return &s
	}
	return nil
}

// rankCandidates orders candidates for the given feed type and assigns dense
// positional ranks starting at 1. Candidates arrive newest-first; the scored
// types re-sort by score descending with a stable sort, so score ties keep
// recency order.
func rankCandidates(ft FeedType, cands []candidate, now time.Time) []rankedCandidate {
	ranked := make([]rankedCandidate, len(cands))
	for i := range cands {
		ranked[i] = rankedCandidate{
			candidate: cands[i],
			Score:     scoreForType(ft, &cands[i].Post, cands[i].IsFriend, now),
		}
	}

	if ft.Scored() {
		sort.SliceStable(ranked, func(i, j int) bool {
			return *ranked[i].Score > *ranked[j].Score
		})
	}

	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}

// candidate is an eligible post plus the relationship context scoring needs.
type candidate struct {
	Post     dbmysql.Post
	IsFriend bool
}

type rankedCandidate struct {
	candidate
	Rank  int
	Score *float64
}
