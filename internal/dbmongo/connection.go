// Package dbmongo owns the MongoDB connection for the feed collections.
package dbmongo

import (
	"context"
	"fmt"
	"time"

	"socialfeed/internal/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names for the core-owned state.
const (
	FeedEntriesCollection     = "feedEntries"
	FeedJobsCollection        = "feedGenerationJobs"
	FeedPreferencesCollection = "userFeedPreferences"
	FeedAnalyticsCollection   = "feedAnalytics"
)

type MongoClient struct {
	Client   *mongo.Client
	Database *mongo.Database
}

func NewMongoConnection(c *config.Config) (*MongoClient, error) {
	uri := c.GetMongoURI()
	clientOptions := options.Client().ApplyURI(uri)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	database := client.Database(c.MongoDB.Database)

	return &MongoClient{
		Client:   client,
		Database: database,
	}, nil
}

func (mc *MongoClient) Entries() *mongo.Collection {
	return mc.Database.Collection(FeedEntriesCollection)
}

func (mc *MongoClient) Jobs() *mongo.Collection {
	return mc.Database.Collection(FeedJobsCollection)
}

func (mc *MongoClient) Preferences() *mongo.Collection {
	return mc.Database.Collection(FeedPreferencesCollection)
}

func (mc *MongoClient) Analytics() *mongo.Collection {
	return mc.Database.Collection(FeedAnalyticsCollection)
}

func (mc *MongoClient) Close(ctx context.Context) error {
	return mc.Client.Disconnect(ctx)
}

// EnsureIndexes creates the indexes the feed queries depend on: the page
// read path (owner, feedType, rank), the per-post teardown path, the claim
// ordering on jobs and the analytics rollup key.
func (mc *MongoClient) EnsureIndexes(ctx context.Context) error {
	_, err := mc.Entries().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: map[string]interface{}{"ownerUserId": 1, "feedType": 1, "rank": 1}},
		{Keys: map[string]interface{}{"postId": 1}},
		{Keys: map[string]interface{}{"expiresAt": 1}},
	})
	if err != nil {
		return fmt.Errorf("feedEntries indexes: %w", err)
	}

	_, err = mc.Jobs().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: map[string]interface{}{"status": 1, "priority": -1, "createdAt": 1}},
		{Keys: map[string]interface{}{"claimId": 1}},
	})
	if err != nil {
		return fmt.Errorf("feedGenerationJobs indexes: %w", err)
	}

	_, err = mc.Analytics().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: map[string]interface{}{"userId": 1, "feedType": 1, "day": 1}},
	})
	if err != nil {
		return fmt.Errorf("feedAnalytics indexes: %w", err)
	}

	return nil
}
