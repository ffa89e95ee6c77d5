package feed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"socialfeed/internal/common"
	"socialfeed/internal/config"
	"socialfeed/internal/dbmysql"

	"github.com/sirupsen/logrus"
)

// FeedUsecase is the surface the HTTP handlers program against.
type FeedUsecase interface {
	GetFeed(ctx context.Context, userID uint64, feedType FeedType, pageSize int, cursor string) (*FeedPage, error)

	GetPreferences(ctx context.Context, userID uint64) (*FeedPreferences, error)
	UpdatePreferences(ctx context.Context, prefs *FeedPreferences) error

	// Generate materializes synchronously for one caller, bypassing the
	// queue. Testing/backfill path.
	Generate(ctx context.Context, userID uint64, feedType FeedType) error

	SubmitJob(ctx context.Context, req *JobRequest) (string, error)
	ProcessJobsNow(ctx context.Context) (int, error)
	CleanupNow(ctx context.Context) error
	IsAdmin(ctx context.Context, userID uint64) (bool, error)

	// mutation event entry points, one per collaborator trigger
	HandlePostCreated(ctx context.Context, postID int64) error
	HandlePostPrivacyChanged(ctx context.Context, postID int64, privacy string) error
	HandlePostEngagement(ctx context.Context, postID int64, likesDelta, commentsDelta, sharesDelta int64) error
	HandleFriendshipChanged(ctx context.Context, userID, friendID uint64, accepted bool) error
	HandleUserPrivacyChanged(ctx context.Context, userID uint64) error
}

// JobRequest is the external job-submission payload. Field names match the
// event endpoints' camelCase wire convention; feedType is the single-type
// shorthand for feedTypes.
type JobRequest struct {
	UserID          uint64     `json:"userId,omitempty"`
	PostID          int64      `json:"postId,omitempty"`
	AffectedUserIDs []uint64   `json:"affectedUserIds,omitempty"`
	FeedType        FeedType   `json:"feedType,omitempty"`
	FeedTypes       []FeedType `json:"feedTypes,omitempty"`
	Priority        int        `json:"priority,omitempty"`
}

type FeedService struct {
	entries      EntryRepository
	jobs         JobRepository
	prefs        PreferencesRepository
	users        UserRepository
	analytics    AnalyticsRepository
	cache        *FeedCache
	materializer *Materializer
	worker       *Worker
	buildUp      BuildUpReactor
	tearDown     TearDownReactor
	cfg          config.FeedConfig

	now func() time.Time
	log *logrus.Entry
}

func NewFeedService(
	entries EntryRepository,
	jobs JobRepository,
	prefs PreferencesRepository,
	users UserRepository,
	analytics AnalyticsRepository,
	cache *FeedCache,
	materializer *Materializer,
	worker *Worker,
	buildUp BuildUpReactor,
	tearDown TearDownReactor,
	cfg config.FeedConfig,
) *FeedService {
	return &FeedService{
		entries:      entries,
		jobs:         jobs,
		prefs:        prefs,
		users:        users,
		analytics:    analytics,
		cache:        cache,
		materializer: materializer,
		worker:       worker,
		buildUp:      buildUp,
		tearDown:     tearDown,
		cfg:          cfg,
		now:          time.Now,
		log:          common.ComponentLogger("feed-service"),
	}
}

// GetFeed serves one page of a materialized feed. Reads never wait on job
// processing: the caller sees the last successfully materialized version.
func (s *FeedService) GetFeed(ctx context.Context, userID uint64, feedType FeedType, pageSize int, cursor string) (*FeedPage, error) {
	start := s.now()

	if pageSize <= 0 {
		pageSize = s.cfg.DefaultPageSize
	}
	if pageSize > s.cfg.MaxPageSize {
		pageSize = s.cfg.MaxPageSize
	}

	// Cursor-less requests may be served straight from the cache.
	if cursor == "" {
		if page, ok := s.cache.GetFirstPage(ctx, userID, feedType, pageSize); ok {
			page.CacheHit = true
			page.LoadTimeMs = time.Since(start).Milliseconds()
			s.recordRead(ctx, userID, feedType, len(page.Entries))
			return page, nil
		}
	}

	afterRank := 0
	if cursor != "" {
		decoded, err := DecodeCursor(cursor)
		if errors.Is(err, ErrInvalidCursor) {
			// stale or corrupted token: restart from the first page
			s.log.WithField("user_id", userID).WithError(err).Warn("invalid cursor, restarting pagination")
		} else if err != nil {
			return nil, err
		} else {
			afterRank = s.resolveCursor(ctx, userID, feedType, decoded)
		}
	}

	rows, err := s.entries.Page(ctx, userID, feedType, afterRank, pageSize+1)
	if err != nil {
		return nil, fmt.Errorf("get feed: %w", err)
	}

	hasMore := len(rows) > pageSize
	if hasMore {
		rows = rows[:pageSize]
	}

	nextCursor := ""
	if hasMore && len(rows) > 0 {
		nextCursor = CursorForEntry(&rows[len(rows)-1])
	}

	total, err := s.entries.Count(ctx, userID, feedType)
	if err != nil {
		return nil, fmt.Errorf("get feed: %w", err)
	}

	page := &FeedPage{
		Entries:    rows,
		NextCursor: nextCursor,
		HasMore:    hasMore,
		TotalCount: total,
		LoadTimeMs: time.Since(start).Milliseconds(),
		CacheHit:   false,
	}

	if cursor == "" && afterRank == 0 {
		s.cache.SetFirstPage(ctx, userID, feedType, pageSize, page)
	}
	s.recordRead(ctx, userID, feedType, len(rows))

	return page, nil
}

// resolveCursor finds where to resume. The entry is looked up by postId so
// pagination tracks the entry's current position after a re-rank; if the
// entry is gone, the encoded rank is the best remaining anchor.
func (s *FeedService) resolveCursor(ctx context.Context, userID uint64, feedType FeedType, c *Cursor) int {
	entry, err := s.entries.FindByPost(ctx, userID, feedType, c.PostID)
	if err != nil {
		s.log.WithError(err).Warn("cursor resolution failed, using encoded rank")
		return c.Rank
	}
	if entry == nil {
		return c.Rank
	}
	return entry.Rank
}

func (s *FeedService) recordRead(ctx context.Context, userID uint64, feedType FeedType, served int) {
	if err := s.analytics.RecordRead(ctx, userID, feedType, served); err != nil {
		s.log.WithError(err).Warn("read analytics failed")
	}
}

func (s *FeedService) GetPreferences(ctx context.Context, userID uint64) (*FeedPreferences, error) {
	return s.prefs.Get(ctx, userID)
}

func (s *FeedService) UpdatePreferences(ctx context.Context, prefs *FeedPreferences) error {
	for _, ft := range prefs.EnabledFeedTypes {
		if _, err := ParseFeedType(string(ft)); err != nil {
			return err
		}
	}
	return s.prefs.Upsert(ctx, prefs)
}

func (s *FeedService) Generate(ctx context.Context, userID uint64, feedType FeedType) error {
	return s.materializer.Materialize(ctx, userID, feedType)
}

func (s *FeedService) SubmitJob(ctx context.Context, req *JobRequest) (string, error) {
	if req.UserID == 0 && len(req.AffectedUserIDs) == 0 {
		return "", fmt.Errorf("job needs a target user")
	}

	feedTypes := req.FeedTypes
	if len(feedTypes) == 0 && req.FeedType != "" {
		feedTypes = []FeedType{req.FeedType}
	}
	if len(feedTypes) == 0 {
		feedTypes = AllFeedTypes()
	}
	for _, ft := range feedTypes {
		if _, err := ParseFeedType(string(ft)); err != nil {
			return "", err
		}
	}

	priority := req.Priority
	if priority < 1 || priority > 10 {
		priority = 5
	}

	job := &FeedGenerationJob{
		JobType:         JobBulkUpdate,
		UserID:          req.UserID,
		PostID:          req.PostID,
		AffectedUserIDs: req.AffectedUserIDs,
		FeedTypes:       feedTypes,
		Priority:        priority,
		MaxAttempts:     s.cfg.MaxAttempts,
	}
	if err := s.jobs.Enqueue(ctx, job); err != nil {
		return "", err
	}
	return job.ID, nil
}

func (s *FeedService) ProcessJobsNow(ctx context.Context) (int, error) {
	return s.worker.DrainOnce(ctx)
}

func (s *FeedService) CleanupNow(ctx context.Context) error {
	return s.worker.CleanupOnce(ctx)
}

func (s *FeedService) IsAdmin(ctx context.Context, userID uint64) (bool, error) {
	return s.users.IsAdmin(ctx, userID)
}

func (s *FeedService) HandlePostCreated(ctx context.Context, postID int64) error {
	return s.buildUp.PostCreated(ctx, postID)
}

// HandlePostPrivacyChanged routes to the lane matching the new privacy:
// going private tears entries down synchronously, opening up queues
// regeneration jobs.
func (s *FeedService) HandlePostPrivacyChanged(ctx context.Context, postID int64, privacy string) error {
	switch privacy {
	case dbmysql.PrivacyPrivate:
		return s.tearDown.PostMadePrivate(ctx, postID)
	case dbmysql.PrivacyPublic, dbmysql.PrivacyFriends:
		return s.buildUp.PostPrivacyOpened(ctx, postID)
	}
	return fmt.Errorf("unknown privacy level %q", privacy)
}

func (s *FeedService) HandlePostEngagement(ctx context.Context, postID int64, likesDelta, commentsDelta, sharesDelta int64) error {
	return s.tearDown.EngagementChanged(ctx, postID, likesDelta, commentsDelta, sharesDelta)
}

func (s *FeedService) HandleFriendshipChanged(ctx context.Context, userID, friendID uint64, accepted bool) error {
	if accepted {
		return s.buildUp.FriendshipAccepted(ctx, userID, friendID)
	}
	return s.tearDown.FriendshipRemoved(ctx, userID, friendID)
}

func (s *FeedService) HandleUserPrivacyChanged(ctx context.Context, userID uint64) error {
	return s.buildUp.UserPrivacyChanged(ctx, userID)
}
