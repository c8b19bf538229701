package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"collab-notifier/domain/repository"
	"collab-notifier/infrastructure/cache"
	twitterclient "collab-notifier/infrastructure/clients/twitter"
	webpageclient "collab-notifier/infrastructure/clients/webpage"
	youtubeclient "collab-notifier/infrastructure/clients/youtube"
	"collab-notifier/infrastructure/configuration"
	"collab-notifier/infrastructure/logger"
	"collab-notifier/infrastructure/parser"
	"collab-notifier/infrastructure/persistence"
	"collab-notifier/infrastructure/pubsub"
	"collab-notifier/infrastructure/servicebus"
	"collab-notifier/usecase"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"google.golang.org/api/option"
)

// app holds the wired components shared by every command. Backends that are
// unreachable are logged and left nil.
type app struct {
	psqlDb      *sql.DB
	mongoClient *mongo.Client
	redisClient *redis.Client
	closers     []func()

	bus      repository.IEventBus
	webpage  repository.IWebpage
	channels repository.IChannel
	videos   repository.IVideo

	snapshotRepository *persistence.SnapshotRepository

	crawlerUsecase  usecase.ICrawlerUsecase
	channelUsecase  usecase.IChannelUsecase
	videoUsecase    usecase.IVideoUsecase
	notifierUsecase usecase.INotifierUsecase
}

func newApp(ctx context.Context) (*app, error) {
	a := &app{webpage: webpageclient.NewWebpageClient(nil)}

	a.initStorage(ctx)
	if err := a.initEventBus(ctx); err != nil {
		logger.GetLogger().WithField("error", err).Warn("Event bus not available - events will not be published")
	}

	parsers, err := listingParsers(configuration.C.Crawler.Sources)
	if err != nil {
		a.Close()
		return nil, err
	}

	youtubeConfig := configuration.GetYouTubeConfig()
	var youtubeOpts []option.ClientOption
	if youtubeConfig.APIKey == "" {
		logger.GetLogger().Warn("YouTube API key not configured - video enrichment requests will be rejected")
		youtubeOpts = append(youtubeOpts, option.WithoutAuthentication())
	}
	youtubeClient, err := youtubeclient.NewYouTubeClient(ctx, &youtubeclient.Config{APIKey: youtubeConfig.APIKey}, youtubeOpts...)
	if err != nil {
		a.Close()
		return nil, err
	}

	events := configuration.C.Events
	a.crawlerUsecase = usecase.NewCrawlerUsecase(a.webpage, a.snapshotRepository, a.bus, configuration.C.Crawler.Bucket, events.SnapshotTopic)
	a.channelUsecase = usecase.NewChannelUsecase(a.webpage, parser.NewChannelListParser(), a.channels)
	a.videoUsecase = usecase.NewVideoUsecase(a.snapshotRepository, parsers, youtubeClient, a.videos, a.bus, events.VideoTopic, youtubeConfig.Concurrency)
	a.notifierUsecase = usecase.NewNotifierUsecase(a.channels, a.videos, a.newPublisher(ctx), usecase.NewTweetValidator())
	return a, nil
}

func (a *app) initStorage(ctx context.Context) {
	psqlDb, err := persistence.NewPostgreSQLDB()
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("PostgreSQL not available - snapshot store disabled")
	} else {
		if err := persistence.EnsureSnapshotSchema(psqlDb); err != nil {
			logger.GetLogger().WithField("error", err).Error("failed ensuring snapshot schema")
		}
		if err := persistence.EnsureOAuthTokenSchema(psqlDb); err != nil {
			logger.GetLogger().WithField("error", err).Error("failed ensuring oauth token schema")
		}
		a.psqlDb = psqlDb
		a.closers = append(a.closers, func() { _ = psqlDb.Close() })
	}
	a.snapshotRepository = persistence.NewSnapshotRepository(a.psqlDb, configuration.C.Crawler.Bucket)

	mongoConfig := configuration.C.Database.Mongo
	mongoClient, err := persistence.NewMongoDb(ctx, mongoConfig.URI)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("MongoDB not available - continuing without video and channel stores")
	} else {
		logger.GetLogger().Info("MongoDB connected successfully")
		a.mongoClient = mongoClient
		a.closers = append(a.closers, func() { _ = mongoClient.Disconnect(context.Background()) })
	}
	var db *mongo.Database
	if a.mongoClient != nil {
		db = a.mongoClient.Database(mongoConfig.Name)
	}
	a.videos = persistence.NewVideoRepository(db)

	redisConfig := configuration.C.RedisClient
	redisClient, err := cache.NewCache(
		ctx,
		fmt.Sprintf("%s:%s", redisConfig.Host, redisConfig.Port),
		redisConfig.Username,
		redisConfig.Password,
	)
	var store cache.Store
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Redis not available - channel lookups are not cached")
	} else {
		a.redisClient = redisClient
		a.closers = append(a.closers, func() { _ = redisClient.Close() })
		store = redisClient
	}
	a.channels = cache.NewChannelCache(
		persistence.NewChannelRepository(db),
		store,
		time.Duration(redisConfig.TTLSeconds)*time.Second,
	)
}

func (a *app) initEventBus(ctx context.Context) error {
	switch transport := configuration.C.Events.Transport; transport {
	case configuration.TransportPubSub:
		client, err := pubsub.NewPubSub(ctx, configuration.C.Pubsub.ProjectID)
		if err != nil {
			return err
		}
		a.closers = append(a.closers, func() { _ = client.Close() })
		a.bus = pubsub.NewEventBus(client)
	case configuration.TransportServiceBus:
		client, err := servicebus.NewServiceBus(ctx, configuration.C.ServiceBus.Namespace)
		if err != nil {
			return err
		}
		a.closers = append(a.closers, func() { _ = client.Close(context.Background()) })
		a.bus = servicebus.NewEventBus(client)
	default:
		return fmt.Errorf("unknown event transport %q", transport)
	}
	return nil
}

func listingParsers(sources []configuration.Source) (map[string]repository.IListingParser, error) {
	parsers := map[string]repository.IListingParser{"": parser.AntennaParser{}}
	for _, source := range sources {
		p, err := parser.ForLayout(source.Layout)
		if err != nil {
			return nil, fmt.Errorf("source %s: %w", source.Name, err)
		}
		parsers[strings.Trim(source.Prefix, "/")] = p
	}
	return parsers, nil
}

// newPublisher persists rotated Twitter tokens only when PostgreSQL is up.
func (a *app) newPublisher(ctx context.Context) repository.IPublisher {
	twitterConfig := configuration.GetTwitterConfig()
	if twitterConfig.DryRun {
		logger.GetLogger().Info("Twitter dry run enabled - notifications are only logged")
		return twitterclient.NewDryRunPublisher()
	}
	var tokens repository.IOAuthToken
	if a.psqlDb != nil {
		tokens = persistence.NewOAuthTokenRepository(a.psqlDb)
	} else {
		logger.GetLogger().Warn("PostgreSQL not available - rotated Twitter tokens are not persisted")
	}
	return twitterclient.NewTwitterClient(ctx, &twitterclient.Config{
		ClientID:     twitterConfig.ClientID,
		ClientSecret: twitterConfig.ClientSecret,
		AccessToken:  twitterConfig.AccessToken,
		RefreshToken: twitterConfig.RefreshToken,
	}, tokens)
}

// Close releases the backends in reverse order of opening.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
