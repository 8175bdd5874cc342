package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	appcatalog "github.com/estantedev/estante/internal/application/catalog"
	"github.com/estantedev/estante/internal/config"
	infraevents "github.com/estantedev/estante/internal/infrastructure/events"
	"github.com/estantedev/estante/internal/infrastructure/events/nats"
	"github.com/estantedev/estante/internal/infrastructure/outbox"
	"github.com/estantedev/estante/internal/infrastructure/persistence/gorm"
	"github.com/estantedev/estante/internal/infrastructure/storage"
	"github.com/estantedev/estante/pkg/cache"
	"github.com/estantedev/estante/pkg/interfaces"
	"github.com/estantedev/estante/pkg/logger"
)

const serviceName = "catalog"

func main() {
	cfg, err := config.Load(serviceName)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	zapLog, err := logger.NewZapLogger(cfg.Logger.Development)
	if err != nil {
		panic(fmt.Sprintf("failed to create logger: %v", err))
	}
	defer zapLog.Sync()
	log := zapLog.Zap()

	log.Info("starting service",
		zap.String("service", cfg.Service.Name),
		zap.String("environment", cfg.Service.Environment),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, dbCleanup, err := gorm.NewDB(cfg, log)
	if err != nil {
		log.Fatal("failed to initialize database", zap.Error(err))
	}
	defer dbCleanup()

	if err := gorm.AutoMigrate(db); err != nil {
		log.Fatal("failed to migrate schema", zap.Error(err))
	}

	var viewCache interfaces.Cache
	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			log.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer client.Close()
		viewCache = cache.NewRedisCache(client, cfg.Redis.Prefix)
	} else {
		viewCache = cache.NewInMemoryCache()
	}

	coverStorage, err := newCoverStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to initialize cover storage", zap.Error(err))
	}

	appLog := logger.NewZapFrom(log)

	dispatcher := infraevents.NewInMemoryDispatcher()
	infraevents.NewCacheInvalidator(viewCache, appLog).Register(dispatcher)
	infraevents.NewAuditLogger(appLog).Register(dispatcher)

	if cfg.NATS.Enabled {
		natsClient, natsCleanup, err := nats.NewClient(cfg.NATS, log)
		if err != nil {
			log.Fatal("failed to initialize NATS", zap.Error(err))
		}
		defer natsCleanup()

		relay := outbox.NewRelay(
			outbox.NewGormStore(db),
			nats.NewPublisher(natsClient, log),
			appLog,
		)
		go relay.Run(ctx)
	}

	uowFactory := gorm.NewUnitOfWorkFactory(db, appLog)
	readRepos := gorm.NewDetachedRepositoryFactory(db)
	users := gorm.NewUserResolver(db)

	bookCommands := appcatalog.NewBookCommandHandler(uowFactory, dispatcher, users, coverStorage, appLog)
	genderCommands := appcatalog.NewGenderCommandHandler(uowFactory, dispatcher, users, appLog)
	publisherCommands := appcatalog.NewPublisherCommandHandler(uowFactory, dispatcher, users, appLog)
	bookQueries := appcatalog.NewBookQueryHandler(readRepos, coverStorage, viewCache, appLog)
	genderQueries := appcatalog.NewGenderQueryHandler(readRepos, viewCache, appLog)
	publisherQueries := appcatalog.NewPublisherQueryHandler(readRepos, viewCache, appLog)

	server := newHTTPServer(cfg, routes{
		books:      handlerSet{commands: bookCommands, queries: bookQueries},
		genders:    genderHandlerSet{commands: genderCommands, queries: genderQueries},
		publishers: publisherHandlerSet{commands: publisherCommands, queries: publisherQueries},
	}, log)

	go func() {
		log.Info("http server listening", zap.Int("port", cfg.Service.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Service.Shutdown)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("http server shutdown", zap.Error(err))
	}
}

func newCoverStorage(ctx context.Context, cfg *config.Config, log *zap.Logger) (appcatalog.CoverStorage, error) {
	switch cfg.Storage.Driver {
	case "s3":
		return storage.NewS3Storage(ctx, cfg.Storage.S3.Bucket, cfg.Storage.S3.Prefix, cfg.Storage.S3.Region, log)
	default:
		return storage.NewLocalStorage(cfg.Storage.LocalPath, log)
	}
}

// keep the wiring grouped per aggregate so routes.go stays readable
type handlerSet struct {
	commands *appcatalog.BookCommandHandler
	queries  *appcatalog.BookQueryHandler
}

type genderHandlerSet struct {
	commands *appcatalog.GenderCommandHandler
	queries  *appcatalog.GenderQueryHandler
}

type publisherHandlerSet struct {
	commands *appcatalog.PublisherCommandHandler
	queries  *appcatalog.PublisherQueryHandler
}

type routes struct {
	books      handlerSet
	genders    genderHandlerSet
	publishers publisherHandlerSet
}

func newHTTPServer(cfg *config.Config, r routes, log *zap.Logger) *http.Server {
	mux := http.NewServeMux()
	registerRoutes(mux, r, log)

	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Service.Port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
}
