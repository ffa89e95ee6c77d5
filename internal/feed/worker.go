package feed

import (
	"context"
	"fmt"
	"sync"
	"time"

	"socialfeed/internal/common"
	"socialfeed/internal/config"

	"github.com/sirupsen/logrus"
)

// Worker drains the job queue on a fixed interval and sweeps expired state.
// One drain cycle claims a batch atomically, processes it with a bounded
// pool, and finishes before the next cycle may start.
type Worker struct {
	jobs         JobRepository
	entries      EntryRepository
	materializer *Materializer
	cfg          config.FeedConfig

	// drainMu serializes drain cycles in-process; the claim id in the job
	// repository guards against overlap across processes.
	drainMu sync.Mutex

	cancel context.CancelFunc
	wg     sync.WaitGroup
	now    func() time.Time
	log    *logrus.Entry
}

func NewWorker(jobs JobRepository, entries EntryRepository, materializer *Materializer, cfg config.FeedConfig) *Worker {
	return &Worker{
		jobs:         jobs,
		entries:      entries,
		materializer: materializer,
		cfg:          cfg,
		now:          time.Now,
		log:          common.ComponentLogger("worker"),
	}
}

// Start launches the drain and cleanup loops.
func (w *Worker) Start(ctx context.Context) {
	ctx, w.cancel = context.WithCancel(ctx)

	w.wg.Add(2)
	go w.drainLoop(ctx)
	go w.cleanupLoop(ctx)

	w.log.WithFields(logrus.Fields{
		"drain_interval":   w.cfg.DrainInterval.String(),
		"cleanup_interval": w.cfg.CleanupInterval.String(),
		"workers":          w.cfg.Workers,
	}).Info("feed worker started")
}

// Stop halts the loops and waits for any in-flight cycle to finish.
func (w *Worker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
	w.log.Info("feed worker stopped")
}

func (w *Worker) drainLoop(ctx context.Context) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.cfg.DrainInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := w.DrainOnce(ctx); err != nil {
				w.log.WithError(err).Error("drain cycle failed")
			}
		case <-ctx.Done():
			return
		}
	}
}

func (w *Worker) cleanupLoop(ctx context.Context) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.cfg.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.CleanupOnce(ctx); err != nil {
				w.log.WithError(err).Error("cleanup cycle failed")
			}
		case <-ctx.Done():
			return
		}
	}
}

// DrainOnce claims and processes one batch of pending jobs. Returns the
// number of jobs processed. A cycle already in flight makes this a no-op.
func (w *Worker) DrainOnce(ctx context.Context) (int, error) {
	if !w.drainMu.TryLock() {
		return 0, nil
	}
	defer w.drainMu.Unlock()

	jobs, err := w.jobs.ClaimBatch(ctx, w.cfg.DrainBatchSize)
	if err != nil {
		return 0, fmt.Errorf("claim batch: %w", err)
	}
	if len(jobs) == 0 {
		return 0, nil
	}

	// bounded pool; a failing job never affects its siblings
	sem := make(chan struct{}, w.cfg.Workers)
	var wg sync.WaitGroup
	for i := range jobs {
		job := jobs[i]
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			w.runJob(ctx, &job)
		}()
	}
	wg.Wait()

	w.log.WithField("jobs", len(jobs)).Info("drain cycle complete")
	return len(jobs), nil
}

// runJob executes one claimed job under the per-job deadline and settles its
// terminal status. Failures increment attempts and requeue while attempts
// remain, else mark the job failed permanently.
func (w *Worker) runJob(ctx context.Context, job *FeedGenerationJob) {
	jobCtx, cancel := context.WithTimeout(ctx, w.cfg.JobTimeout)
	defer cancel()

	err := w.processJob(jobCtx, job)
	if err == nil {
		if markErr := w.jobs.MarkCompleted(ctx, job.ID); markErr != nil {
			w.log.WithError(markErr).WithField("job_id", job.ID).Error("failed to mark job completed")
		}
		return
	}

	attempts := job.Attempts + 1
	maxAttempts := job.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = w.cfg.MaxAttempts
	}

	log := w.log.WithFields(logrus.Fields{
		"job_id":   job.ID,
		"job_type": job.JobType,
		"attempts": attempts,
	}).WithError(err)

	if attempts < maxAttempts {
		log.Warn("job failed, requeueing")
		if reqErr := w.jobs.Requeue(ctx, job.ID, attempts, err.Error()); reqErr != nil {
			w.log.WithError(reqErr).WithField("job_id", job.ID).Error("failed to requeue job")
		}
		return
	}

	log.Error("job failed terminally")
	if failErr := w.jobs.MarkFailed(ctx, job.ID, attempts, err.Error()); failErr != nil {
		w.log.WithError(failErr).WithField("job_id", job.ID).Error("failed to mark job failed")
	}
}

// processJob regenerates each target user's feeds for the job's feed types.
func (w *Worker) processJob(ctx context.Context, job *FeedGenerationJob) error {
	if job.JobType == JobCleanup {
		return w.CleanupOnce(ctx)
	}

	targets := job.AffectedUserIDs
	if job.UserID != 0 {
		targets = append([]uint64{job.UserID}, targets...)
	}
	if len(targets) == 0 {
		return fmt.Errorf("job %s has no target users", job.ID)
	}

	feedTypes := job.FeedTypes
	if len(feedTypes) == 0 {
		feedTypes = AllFeedTypes()
	}

	for _, userID := range targets {
		for _, ft := range feedTypes {
			if err := w.materializer.Materialize(ctx, userID, ft); err != nil {
				return err
			}
		}
	}
	return nil
}

// CleanupOnce deletes expired feed entries and old completed jobs, bounded
// per collection to keep a single sweep's write volume predictable.
func (w *Worker) CleanupOnce(ctx context.Context) error {
	now := w.now()

	expired, err := w.entries.DeleteExpired(ctx, now, w.cfg.CleanupBatchSize)
	if err != nil {
		return fmt.Errorf("cleanup entries: %w", err)
	}

	oldJobs, err := w.jobs.DeleteCompletedBefore(ctx, now.Add(-30*24*time.Hour), w.cfg.CleanupBatchSize)
	if err != nil {
		return fmt.Errorf("cleanup jobs: %w", err)
	}

	w.log.WithFields(logrus.Fields{
		"expired_entries": expired,
		"old_jobs":        oldJobs,
	}).Info("cleanup complete")
	return nil
}
