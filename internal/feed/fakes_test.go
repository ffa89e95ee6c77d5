package feed

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"socialfeed/internal/dbmysql"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory fakes for the storage interfaces. Tests exercise the pipeline
// logic against these instead of live MySQL/Mongo.

type fakePostRepo struct {
	mu    sync.Mutex
	posts []dbmysql.Post
	err   error
}

func (f *fakePostRepo) RecentVisible(_ context.Context, limit int) ([]dbmysql.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}

	var out []dbmysql.Post
	for _, p := range f.posts {
		if p.Privacy == dbmysql.PrivacyPrivate {
			continue
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakePostRepo) GetByID(_ context.Context, postID int64) (*dbmysql.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.posts {
		if f.posts[i].PostID == postID {
			p := f.posts[i]
			return &p, nil
		}
	}
	return nil, ErrPostNotFound
}

type fakeFriendRepo struct {
	// accepted directed edges, user -> friend
	edges map[uint64][]uint64
}

func (f *fakeFriendRepo) IsConnected(_ context.Context, userA, userB uint64) (bool, error) {
	if userA == userB {
		return false, nil
	}
	for _, b := range f.edges[userA] {
		if b == userB {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeFriendRepo) ViewerIDs(_ context.Context, authorID uint64) ([]uint64, error) {
	seen := make(map[uint64]bool)
	var viewers []uint64
	add := func(id uint64) {
		if id != authorID && !seen[id] {
			seen[id] = true
			viewers = append(viewers, id)
		}
	}
	for _, b := range f.edges[authorID] {
		add(b)
	}
	for a, bs := range f.edges {
		for _, b := range bs {
			if b == authorID {
				add(a)
			}
		}
	}
	sort.Slice(viewers, func(i, j int) bool { return viewers[i] < viewers[j] })
	return viewers, nil
}

func (f *fakeFriendRepo) FollowerIDs(_ context.Context, userID uint64) ([]uint64, error) {
	var followers []uint64
	for a, bs := range f.edges {
		for _, b := range bs {
			if b == userID {
				followers = append(followers, a)
			}
		}
	}
	sort.Slice(followers, func(i, j int) bool { return followers[i] < followers[j] })
	return followers, nil
}

type fakeUserRepo struct {
	admins map[uint64]bool
}

func (f *fakeUserRepo) IsAdmin(_ context.Context, userID uint64) (bool, error) {
	return f.admins[userID], nil
}

type fakeEntryRepo struct {
	mu      sync.Mutex
	entries []FeedEntry

	replaceErr error
	// replaceLog records (owner, feedType) in call order
	replaceLog []string
}

func (f *fakeEntryRepo) ReplaceAll(_ context.Context, ownerID uint64, feedType FeedType, entries []FeedEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replaceLog = append(f.replaceLog, replaceKey(ownerID, feedType))
	if f.replaceErr != nil {
		return f.replaceErr
	}

	kept := f.entries[:0]
	for _, e := range f.entries {
		if e.OwnerUserID == ownerID && e.FeedType == feedType {
			continue
		}
		kept = append(kept, e)
	}
	f.entries = kept
	for _, e := range entries {
		if e.ID.IsZero() {
			e.ID = primitive.NewObjectID()
		}
		f.entries = append(f.entries, e)
	}
	return nil
}

func replaceKey(ownerID uint64, feedType FeedType) string {
	return fmt.Sprintf("%d/%s", ownerID, feedType)
}

func (f *fakeEntryRepo) Page(_ context.Context, ownerID uint64, feedType FeedType, afterRank, limit int) ([]FeedEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []FeedEntry
	for _, e := range f.entries {
		if e.OwnerUserID == ownerID && e.FeedType == feedType && e.IsVisible && e.Rank > afterRank {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Rank < out[j].Rank })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeEntryRepo) FindByPost(_ context.Context, ownerID uint64, feedType FeedType, postID int64) (*FeedEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.entries {
		e := f.entries[i]
		if e.OwnerUserID == ownerID && e.FeedType == feedType && e.PostID == postID {
			return &e, nil
		}
	}
	return nil, nil
}

func (f *fakeEntryRepo) Count(_ context.Context, ownerID uint64, feedType FeedType) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, e := range f.entries {
		if e.OwnerUserID == ownerID && e.FeedType == feedType && e.IsVisible {
			n++
		}
	}
	return n, nil
}

func (f *fakeEntryRepo) OwnersForPost(_ context.Context, postID int64) ([]uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	seen := make(map[uint64]bool)
	var owners []uint64
	for _, e := range f.entries {
		if e.PostID == postID && !seen[e.OwnerUserID] {
			seen[e.OwnerUserID] = true
			owners = append(owners, e.OwnerUserID)
		}
	}
	return owners, nil
}

func (f *fakeEntryRepo) DeleteByPost(_ context.Context, postID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var deleted int64
	kept := f.entries[:0]
	for _, e := range f.entries {
		if e.PostID == postID {
			deleted++
			continue
		}
		kept = append(kept, e)
	}
	f.entries = kept
	return deleted, nil
}

func (f *fakeEntryRepo) DeleteByOwnerAndAuthor(_ context.Context, ownerID, authorID uint64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var deleted int64
	kept := f.entries[:0]
	for _, e := range f.entries {
		if e.OwnerUserID == ownerID && e.AuthorID == authorID {
			deleted++
			continue
		}
		kept = append(kept, e)
	}
	f.entries = kept
	return deleted, nil
}

func (f *fakeEntryRepo) EntriesForPost(_ context.Context, postID int64, feedTypes []FeedType) ([]FeedEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	want := make(map[FeedType]bool, len(feedTypes))
	for _, ft := range feedTypes {
		want[ft] = true
	}
	var out []FeedEntry
	for _, e := range f.entries {
		if e.PostID == postID && want[e.FeedType] {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEntryRepo) BulkUpdateEngagement(_ context.Context, updates []EngagementUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range updates {
		for i := range f.entries {
			if f.entries[i].ID != u.ID {
				continue
			}
			f.entries[i].LikeCount = u.LikeCount
			f.entries[i].CommentCount = u.CommentCount
			f.entries[i].ShareCount = u.ShareCount
			f.entries[i].ViewCount = u.ViewCount
			if u.Score != nil {
				s := *u.Score
				f.entries[i].Score = &s
			}
		}
	}
	return nil
}

func (f *fakeEntryRepo) DeleteExpired(_ context.Context, now time.Time, limit int) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var deleted int64
	kept := f.entries[:0]
	for _, e := range f.entries {
		if deleted < int64(limit) && e.ExpiresAt.Before(now) {
			deleted++
			continue
		}
		kept = append(kept, e)
	}
	f.entries = kept
	return deleted, nil
}

func (f *fakeEntryRepo) byOwner(ownerID uint64, feedType FeedType) []FeedEntry {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []FeedEntry
	for _, e := range f.entries {
		if e.OwnerUserID == ownerID && e.FeedType == feedType {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Rank < out[j].Rank })
	return out
}

type fakeJobRepo struct {
	mu   sync.Mutex
	jobs []FeedGenerationJob
	seq  int
}

func (f *fakeJobRepo) Enqueue(_ context.Context, job *FeedGenerationJob) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	job.Status = JobPending
	f.seq++
	// strictly increasing creation times so tie-breaks are deterministic
	job.CreatedAt = time.Unix(0, int64(f.seq))
	job.UpdatedAt = job.CreatedAt
	f.jobs = append(f.jobs, *job)
	return nil
}

func (f *fakeJobRepo) ClaimBatch(_ context.Context, limit int) ([]FeedGenerationJob, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var idx []int
	for i := range f.jobs {
		if f.jobs[i].Status == JobPending {
			idx = append(idx, i)
		}
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ja, jb := f.jobs[idx[a]], f.jobs[idx[b]]
		if ja.Priority != jb.Priority {
			return ja.Priority > jb.Priority
		}
		return ja.CreatedAt.Before(jb.CreatedAt)
	})
	if len(idx) > limit {
		idx = idx[:limit]
	}

	claimID := uuid.NewString()
	claimed := make([]FeedGenerationJob, 0, len(idx))
	for _, i := range idx {
		f.jobs[i].Status = JobProcessing
		f.jobs[i].ClaimID = claimID
		claimed = append(claimed, f.jobs[i])
	}
	return claimed, nil
}

func (f *fakeJobRepo) MarkCompleted(_ context.Context, jobID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.jobs {
		if f.jobs[i].ID == jobID {
			f.jobs[i].Status = JobCompleted
		}
	}
	return nil
}

func (f *fakeJobRepo) Requeue(_ context.Context, jobID string, attempts int, errMsg string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.jobs {
		if f.jobs[i].ID == jobID {
			f.jobs[i].Status = JobPending
			f.jobs[i].Attempts = attempts
			f.jobs[i].Error = errMsg
			f.jobs[i].ClaimID = ""
		}
	}
	return nil
}

func (f *fakeJobRepo) MarkFailed(_ context.Context, jobID string, attempts int, errMsg string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.jobs {
		if f.jobs[i].ID == jobID {
			f.jobs[i].Status = JobFailed
			f.jobs[i].Attempts = attempts
			f.jobs[i].Error = errMsg
		}
	}
	return nil
}

func (f *fakeJobRepo) DeleteCompletedBefore(_ context.Context, cutoff time.Time, limit int) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var deleted int64
	kept := f.jobs[:0]
	for _, j := range f.jobs {
		if deleted < int64(limit) && j.Status == JobCompleted && j.UpdatedAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, j)
	}
	f.jobs = kept
	return deleted, nil
}

func (f *fakeJobRepo) find(jobID string) *FeedGenerationJob {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.jobs {
		if f.jobs[i].ID == jobID {
			j := f.jobs[i]
			return &j
		}
	}
	return nil
}

func (f *fakeJobRepo) byStatus(status JobStatus) []FeedGenerationJob {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []FeedGenerationJob
	for _, j := range f.jobs {
		if j.Status == status {
			out = append(out, j)
		}
	}
	return out
}

type fakeAnalyticsRepo struct {
	mu          sync.Mutex
	reads       int
	generations int
}

func (f *fakeAnalyticsRepo) RecordRead(_ context.Context, _ uint64, _ FeedType, _ int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	return nil
}

func (f *fakeAnalyticsRepo) RecordGeneration(_ context.Context, _ uint64, _ FeedType, _ time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.generations++
	return nil
}

type fakePrefsRepo struct {
	mu    sync.Mutex
	saved map[uint64]*FeedPreferences
}

func (f *fakePrefsRepo) Get(_ context.Context, userID uint64) (*FeedPreferences, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.saved[userID]; ok {
		return p, nil
	}
	return DefaultPreferences(userID), nil
}

func (f *fakePrefsRepo) Upsert(_ context.Context, prefs *FeedPreferences) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saved == nil {
		f.saved = make(map[uint64]*FeedPreferences)
	}
	f.saved[prefs.UserID] = prefs
	return nil
}
