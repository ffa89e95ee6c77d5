package feed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"socialfeed/internal/dbmongo"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EngagementUpdate is one targeted counter/score patch for an existing
// entry, applied by the engagement reactor without a full regeneration.
type EngagementUpdate struct {
	ID           primitive.ObjectID
	LikeCount    int64
	CommentCount int64
	ShareCount   int64
	ViewCount    int64
	Score        *float64
}

// EntryRepository owns the feedEntries collection.
type EntryRepository interface {
	// ReplaceAll atomically swaps the full entry set for one (owner,
	// feedType) pair: delete everything, insert the new rows, all or
	// nothing. On failure the previous entries remain intact.
	ReplaceAll(ctx context.Context, ownerID uint64, feedType FeedType, entries []FeedEntry) error

	// Page returns visible entries ordered by rank, strictly after
	// afterRank, bounded by limit.
	Page(ctx context.Context, ownerID uint64, feedType FeedType, afterRank, limit int) ([]FeedEntry, error)

	// FindByPost resolves a cursor's postId to that entry's current
	// position. Returns (nil, nil) when the entry has been re-ranked away.
	FindByPost(ctx context.Context, ownerID uint64, feedType FeedType, postID int64) (*FeedEntry, error)

	Count(ctx context.Context, ownerID uint64, feedType FeedType) (int64, error)

	// OwnersForPost lists the distinct feed owners currently holding the
	// post, for cache invalidation ahead of a teardown delete.
	OwnersForPost(ctx context.Context, postID int64) ([]uint64, error)

	// DeleteByPost removes every entry referencing the post, across all
	// owners and feed types. The tear-down lane for privacy -> private.
	DeleteByPost(ctx context.Context, postID int64) (int64, error)

	// DeleteByOwnerAndAuthor removes one owner's entries authored by the
	// given user. The tear-down lane for a removed friendship edge.
	DeleteByOwnerAndAuthor(ctx context.Context, ownerID, authorID uint64) (int64, error)

	// EntriesForPost returns the post's entries in the given feed types,
	// for the in-place engagement patch.
	EntriesForPost(ctx context.Context, postID int64, feedTypes []FeedType) ([]FeedEntry, error)

	BulkUpdateEngagement(ctx context.Context, updates []EngagementUpdate) error

	// DeleteExpired removes up to limit entries past their expiresAt.
	DeleteExpired(ctx context.Context, now time.Time, limit int) (int64, error)
}

type mongoEntryRepository struct {
	client *dbmongo.MongoClient
}

func NewEntryRepository(client *dbmongo.MongoClient) EntryRepository {
	return &mongoEntryRepository{client: client}
}

func (r *mongoEntryRepository) ReplaceAll(ctx context.Context, ownerID uint64, feedType FeedType, entries []FeedEntry) error {
	session, err := r.client.Client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	coll := r.client.Entries()
	filter := bson.M{"ownerUserId": ownerID, "feedType": feedType}

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := coll.DeleteMany(sc, filter); err != nil {
			return nil, err
		}
		if len(entries) == 0 {
			return nil, nil
		}
		docs := make([]interface{}, len(entries))
		for i := range entries {
			docs[i] = entries[i]
		}
		if _, err := coll.InsertMany(sc, docs); err != nil {
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("replace feed entries: %w", err)
	}
	return nil
}

func (r *mongoEntryRepository) Page(ctx context.Context, ownerID uint64, feedType FeedType, afterRank, limit int) ([]FeedEntry, error) {
	filter := bson.M{
		"ownerUserId": ownerID,
		"feedType":    feedType,
		"isVisible":   true,
		"rank":        bson.M{"$gt": afterRank},
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "rank", Value: 1}}).
		SetLimit(int64(limit))

	cur, err := r.client.Entries().Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("feed page query: %w", err)
	}
	defer cur.Close(ctx)

	var entries []FeedEntry
	if err := cur.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("feed page decode: %w", err)
	}
	return entries, nil
}

func (r *mongoEntryRepository) FindByPost(ctx context.Context, ownerID uint64, feedType FeedType, postID int64) (*FeedEntry, error) {
	filter := bson.M{"ownerUserId": ownerID, "feedType": feedType, "postId": postID}

	var entry FeedEntry
	err := r.client.Entries().FindOne(ctx, filter).Decode(&entry)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("entry lookup: %w", err)
	}
	return &entry, nil
}

func (r *mongoEntryRepository) Count(ctx context.Context, ownerID uint64, feedType FeedType) (int64, error) {
	n, err := r.client.Entries().CountDocuments(ctx, bson.M{
		"ownerUserId": ownerID,
		"feedType":    feedType,
		"isVisible":   true,
	})
	if err != nil {
		return 0, fmt.Errorf("entry count: %w", err)
	}
	return n, nil
}

func (r *mongoEntryRepository) OwnersForPost(ctx context.Context, postID int64) ([]uint64, error) {
	raw, err := r.client.Entries().Distinct(ctx, "ownerUserId", bson.M{"postId": postID})
	if err != nil {
		return nil, fmt.Errorf("owners for post: %w", err)
	}

	owners := make([]uint64, 0, len(raw))
	for _, v := range raw {
		switch id := v.(type) {
		case int64:
			owners = append(owners, uint64(id))
		case int32:
			owners = append(owners, uint64(id))
		case uint64:
			owners = append(owners, id)
		}
	}
	return owners, nil
}

func (r *mongoEntryRepository) DeleteByPost(ctx context.Context, postID int64) (int64, error) {
	res, err := r.client.Entries().DeleteMany(ctx, bson.M{"postId": postID})
	if err != nil {
		return 0, fmt.Errorf("delete by post: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *mongoEntryRepository) DeleteByOwnerAndAuthor(ctx context.Context, ownerID, authorID uint64) (int64, error) {
	res, err := r.client.Entries().DeleteMany(ctx, bson.M{
		"ownerUserId": ownerID,
		"authorId":    authorID,
	})
	if err != nil {
		return 0, fmt.Errorf("delete by owner/author: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *mongoEntryRepository) EntriesForPost(ctx context.Context, postID int64, feedTypes []FeedType) ([]FeedEntry, error) {
	cur, err := r.client.Entries().Find(ctx, bson.M{
		"postId":   postID,
		"feedType": bson.M{"$in": feedTypes},
	})
	if err != nil {
		return nil, fmt.Errorf("entries for post: %w", err)
	}
	defer cur.Close(ctx)

	var entries []FeedEntry
	if err := cur.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("entries for post decode: %w", err)
	}
	return entries, nil
}

func (r *mongoEntryRepository) BulkUpdateEngagement(ctx context.Context, updates []EngagementUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	models := make([]mongo.WriteModel, 0, len(updates))
	for _, u := range updates {
		set := bson.M{
			"likeCount":    u.LikeCount,
			"commentCount": u.CommentCount,
			"shareCount":   u.ShareCount,
			"viewCount":    u.ViewCount,
		}
		if u.Score != nil {
			set["score"] = *u.Score
		}
		models = append(models, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": u.ID}).
			SetUpdate(bson.M{"$set": set}))
	}

	_, err := r.client.Entries().BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return fmt.Errorf("engagement bulk update: %w", err)
	}
	return nil
}

func (r *mongoEntryRepository) DeleteExpired(ctx context.Context, now time.Time, limit int) (int64, error) {
	// DeleteMany has no limit option; collect a bounded id batch first so a
	// huge backlog cannot produce an unbounded delete.
	opts := options.Find().
		SetProjection(bson.M{"_id": 1}).
		SetLimit(int64(limit))
	cur, err := r.client.Entries().Find(ctx, bson.M{"expiresAt": bson.M{"$lt": now}}, opts)
	if err != nil {
		return 0, fmt.Errorf("expired entries query: %w", err)
	}
	defer cur.Close(ctx)

	var docs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cur.All(ctx, &docs); err != nil {
		return 0, fmt.Errorf("expired entries decode: %w", err)
	}
	if len(docs) == 0 {
		return 0, nil
	}

	ids := make([]primitive.ObjectID, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
	}
	res, err := r.client.Entries().DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, fmt.Errorf("expired entries delete: %w", err)
	}
	return res.DeletedCount, nil
}
