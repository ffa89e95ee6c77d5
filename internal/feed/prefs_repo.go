package feed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"socialfeed/internal/dbmongo"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PreferencesRepository stores per-user feed settings. Pass-through state;
// a user with no saved document gets the defaults.
type PreferencesRepository interface {
	Get(ctx context.Context, userID uint64) (*FeedPreferences, error)
	Upsert(ctx context.Context, prefs *FeedPreferences) error
}

type mongoPreferencesRepository struct {
	client *dbmongo.MongoClient
	now    func() time.Time
}

func NewPreferencesRepository(client *dbmongo.MongoClient) PreferencesRepository {
	return &mongoPreferencesRepository{client: client, now: time.Now}
}

func (r *mongoPreferencesRepository) Get(ctx context.Context, userID uint64) (*FeedPreferences, error) {
	var prefs FeedPreferences
	err := r.client.Preferences().FindOne(ctx, bson.M{"_id": userID}).Decode(&prefs)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return DefaultPreferences(userID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("preferences lookup: %w", err)
	}
	return &prefs, nil
}

func (r *mongoPreferencesRepository) Upsert(ctx context.Context, prefs *FeedPreferences) error {
	prefs.UpdatedAt = r.now()
	_, err := r.client.Preferences().ReplaceOne(ctx,
		bson.M{"_id": prefs.UserID},
		prefs,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("preferences upsert: %w", err)
	}
	return nil
}
