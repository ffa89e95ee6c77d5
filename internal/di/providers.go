package di

import (
	"context"
	"time"

	"socialfeed/internal/config"
	"socialfeed/internal/dbmongo"
	"socialfeed/internal/feed"

	"gorm.io/gorm"
)

// Application is the assembled feed service with everything main needs.
type Application struct {
	Config  *config.Config
	DB      *gorm.DB
	Mongo   *dbmongo.MongoClient
	Service *feed.FeedService
	Handler *feed.FeedHandlers
	Worker  *feed.Worker
}

func ProvideConfig() *config.Config {
	return config.Load()
}

// ProvideMongo connects to MongoDB and hands wire a cleanup that disconnects
// on application shutdown.
func ProvideMongo(cfg *config.Config) (*dbmongo.MongoClient, func(), error) {
	client, err := dbmongo.NewMongoConnection(cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Close(ctx)
	}
	return client, cleanup, nil
}

func ProvideEligibilityFilter(cfg *config.Config, posts feed.PostRepository, friends feed.FriendshipRepository) *feed.EligibilityFilter {
	return feed.NewEligibilityFilter(posts, friends, cfg.Feed.CandidateLimit)
}

func ProvideMaterializer(
	cfg *config.Config,
	eligibility *feed.EligibilityFilter,
	entries feed.EntryRepository,
	cache *feed.FeedCache,
	analytics feed.AnalyticsRepository,
) *feed.Materializer {
	return feed.NewMaterializer(eligibility, entries, cache, analytics, cfg.Feed.EntryTTL)
}

func ProvideWorker(
	cfg *config.Config,
	jobs feed.JobRepository,
	entries feed.EntryRepository,
	materializer *feed.Materializer,
) *feed.Worker {
	return feed.NewWorker(jobs, entries, materializer, cfg.Feed)
}

func ProvideBuildUpReactor(
	cfg *config.Config,
	posts feed.PostRepository,
	friends feed.FriendshipRepository,
	jobs feed.JobRepository,
) feed.BuildUpReactor {
	return feed.NewBuildUpReactor(posts, friends, jobs, cfg.Feed.MaxAttempts)
}

func ProvideFeedService(
	cfg *config.Config,
	entries feed.EntryRepository,
	jobs feed.JobRepository,
	prefs feed.PreferencesRepository,
	users feed.UserRepository,
	analytics feed.AnalyticsRepository,
	cache *feed.FeedCache,
	materializer *feed.Materializer,
	worker *feed.Worker,
	buildUp feed.BuildUpReactor,
	tearDown feed.TearDownReactor,
) *feed.FeedService {
	return feed.NewFeedService(entries, jobs, prefs, users, analytics, cache, materializer, worker, buildUp, tearDown, cfg.Feed)
}

func ProvideFeedHandlers(svc *feed.FeedService) *feed.FeedHandlers {
	return feed.NewFeedHandlers(svc)
}
