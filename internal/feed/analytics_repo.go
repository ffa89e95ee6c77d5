package feed

import (
	"context"
	"fmt"
	"time"

	"socialfeed/internal/dbmongo"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AnalyticsRepository maintains the daily per-(user, feedType) rollups.
// Best-effort state: read and generation paths log analytics failures but
// never fail on them.
type AnalyticsRepository interface {
	RecordRead(ctx context.Context, userID uint64, feedType FeedType, entriesServed int) error
	RecordGeneration(ctx context.Context, userID uint64, feedType FeedType, generatedAt time.Time) error
}

type mongoAnalyticsRepository struct {
	client *dbmongo.MongoClient
	now    func() time.Time
}

func NewAnalyticsRepository(client *dbmongo.MongoClient) AnalyticsRepository {
	return &mongoAnalyticsRepository{client: client, now: time.Now}
}

func dayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

func (r *mongoAnalyticsRepository) RecordRead(ctx context.Context, userID uint64, feedType FeedType, entriesServed int) error {
	filter := bson.M{"userId": userID, "feedType": feedType, "day": dayKey(r.now())}
	update := bson.M{
		"$inc": bson.M{"reads": 1, "entriesServed": entriesServed},
	}
	_, err := r.client.Analytics().UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("record read: %w", err)
	}
	return nil
}

func (r *mongoAnalyticsRepository) RecordGeneration(ctx context.Context, userID uint64, feedType FeedType, generatedAt time.Time) error {
	filter := bson.M{"userId": userID, "feedType": feedType, "day": dayKey(generatedAt)}
	update := bson.M{
		"$inc": bson.M{"generations": 1},
		"$set": bson.M{"lastGeneratedAt": generatedAt},
	}
	_, err := r.client.Analytics().UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("record generation: %w", err)
	}
	return nil
}
