package feed

import (
	"context"
	"fmt"
	"time"

	"socialfeed/internal/dbmongo"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// JobRepository owns the feedGenerationJobs collection: the one shared
// contention point of the pipeline, mitigated by the atomic claim step.
type JobRepository interface {
	Enqueue(ctx context.Context, job *FeedGenerationJob) error

	// ClaimBatch atomically claims up to limit pending jobs, ordered by
	// priority descending then creation time ascending (oldest starved job
	// wins ties). The claim is a single conditional update stamping
	// status=processing plus a fresh claim id, so two concurrent drain
	// cycles can never double-process a job.
	ClaimBatch(ctx context.Context, limit int) ([]FeedGenerationJob, error)

	MarkCompleted(ctx context.Context, jobID string) error

	// Requeue returns a failed job to pending for another attempt.
	Requeue(ctx context.Context, jobID string, attempts int, errMsg string) error

	// MarkFailed is terminal: the job stays failed, no dead-letter requeue.
	MarkFailed(ctx context.Context, jobID string, attempts int, errMsg string) error

	// DeleteCompletedBefore removes up to limit completed jobs older than
	// the cutoff.
	DeleteCompletedBefore(ctx context.Context, cutoff time.Time, limit int) (int64, error)
}

type mongoJobRepository struct {
	client *dbmongo.MongoClient
	now    func() time.Time
}

func NewJobRepository(client *dbmongo.MongoClient) JobRepository {
	return &mongoJobRepository{client: client, now: time.Now}
}

func (r *mongoJobRepository) Enqueue(ctx context.Context, job *FeedGenerationJob) error {
	now := r.now()
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	job.Status = JobPending
	job.CreatedAt = now
	job.UpdatedAt = now

	if _, err := r.client.Jobs().InsertOne(ctx, job); err != nil {
		return fmt.Errorf("enqueue job: %w", err)
	}
	return nil
}

func (r *mongoJobRepository) ClaimBatch(ctx context.Context, limit int) ([]FeedGenerationJob, error) {
	// Step 1: pick the claim candidates in drain order.
	opts := options.Find().
		SetSort(bson.D{{Key: "priority", Value: -1}, {Key: "createdAt", Value: 1}}).
		SetLimit(int64(limit)).
		SetProjection(bson.M{"_id": 1})
	cur, err := r.client.Jobs().Find(ctx, bson.M{"status": JobPending}, opts)
	if err != nil {
		return nil, fmt.Errorf("claim candidates query: %w", err)
	}
	var docs []struct {
		ID string `bson:"_id"`
	}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("claim candidates decode: %w", err)
	}
	if len(docs) == 0 {
		return nil, nil
	}

	ids := make([]string, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
	}

	// Step 2: one conditional update claims them. The status guard means a
	// job claimed by a concurrent drain since step 1 is simply not matched.
	claimID := uuid.NewString()
	_, err = r.client.Jobs().UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": ids}, "status": JobPending},
		bson.M{"$set": bson.M{
			"status":    JobProcessing,
			"claimId":   claimID,
			"updatedAt": r.now(),
		}},
	)
	if err != nil {
		return nil, fmt.Errorf("claim update: %w", err)
	}

	// Step 3: fetch exactly what this cycle claimed, in drain order.
	claimedOpts := options.Find().
		SetSort(bson.D{{Key: "priority", Value: -1}, {Key: "createdAt", Value: 1}})
	claimedCur, err := r.client.Jobs().Find(ctx, bson.M{"claimId": claimID}, claimedOpts)
	if err != nil {
		return nil, fmt.Errorf("claimed jobs query: %w", err)
	}
	var jobs []FeedGenerationJob
	if err := claimedCur.All(ctx, &jobs); err != nil {
		return nil, fmt.Errorf("claimed jobs decode: %w", err)
	}
	return jobs, nil
}

func (r *mongoJobRepository) MarkCompleted(ctx context.Context, jobID string) error {
	_, err := r.client.Jobs().UpdateOne(ctx,
		bson.M{"_id": jobID},
		bson.M{"$set": bson.M{"status": JobCompleted, "updatedAt": r.now()}},
	)
	if err != nil {
		return fmt.Errorf("mark completed: %w", err)
	}
	return nil
}

func (r *mongoJobRepository) Requeue(ctx context.Context, jobID string, attempts int, errMsg string) error {
	_, err := r.client.Jobs().UpdateOne(ctx,
		bson.M{"_id": jobID},
		bson.M{"$set": bson.M{
			"status":    JobPending,
			"attempts":  attempts,
			"error":     errMsg,
			"claimId":   "",
			"updatedAt": r.now(),
		}},
	)
	if err != nil {
		return fmt.Errorf("requeue job: %w", err)
	}
	return nil
}

func (r *mongoJobRepository) MarkFailed(ctx context.Context, jobID string, attempts int, errMsg string) error {
	_, err := r.client.Jobs().UpdateOne(ctx,
		bson.M{"_id": jobID},
		bson.M{"$set": bson.M{
			"status":    JobFailed,
			"attempts":  attempts,
			"error":     errMsg,
			"updatedAt": r.now(),
		}},
	)
	if err != nil {
		return fmt.Errorf("mark failed: %w", err)
	}
	return nil
}

func (r *mongoJobRepository) DeleteCompletedBefore(ctx context.Context, cutoff time.Time, limit int) (int64, error) {
	opts := options.Find().
		SetProjection(bson.M{"_id": 1}).
		SetLimit(int64(limit))
	cur, err := r.client.Jobs().Find(ctx, bson.M{
		"status":    JobCompleted,
		"updatedAt": bson.M{"$lt": cutoff},
	}, opts)
	if err != nil {
		return 0, fmt.Errorf("old jobs query: %w", err)
	}
	var docs []struct {
		ID string `bson:"_id"`
	}
	if err := cur.All(ctx, &docs); err != nil {
		return 0, fmt.Errorf("old jobs decode: %w", err)
	}
	if len(docs) == 0 {
		return 0, nil
	}

	ids := make([]string, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
	}
	res, err := r.client.Jobs().DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, fmt.Errorf("old jobs delete: %w", err)
	}
	return res.DeletedCount, nil
}
