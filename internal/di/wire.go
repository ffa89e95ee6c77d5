//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"socialfeed/internal/dbmysql"
	"socialfeed/internal/feed"
)

// This is just a declaration; wire generates the real body in wire_gen.go.
func InitializeFeedService() (*Application, func(), error) {
	wire.Build(
		ProvideConfig,
		dbmysql.NewMySQL,
		ProvideMongo,
		feed.NewFeedCache,
		feed.NewPostRepository,
		feed.NewFriendshipRepository,
		feed.NewUserRepository,
		feed.NewEntryRepository,
		feed.NewJobRepository,
		feed.NewPreferencesRepository,
		feed.NewAnalyticsRepository,
		ProvideEligibilityFilter,
		ProvideMaterializer,
		ProvideWorker,
		ProvideBuildUpReactor,
		feed.NewTearDownReactor,
		ProvideFeedService,
		ProvideFeedHandlers,
		wire.Struct(new(Application), "*"),
	)
	return &Application{}, nil, nil
}
