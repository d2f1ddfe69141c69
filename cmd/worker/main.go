package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"secretariat/api/internal/cache"
	"secretariat/api/internal/config"
	"secretariat/api/internal/database"
	"secretariat/api/internal/docgen"
	"secretariat/api/internal/log"
	"secretariat/api/internal/queue"
	"secretariat/api/internal/repository"
	"secretariat/api/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := log.New(cfg.Environment)

	ctx := context.Background()

	dbPool, err := database.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect postgres")
	}
	defer dbPool.Close()

	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect redis")
	}
	defer redisClient.Close()

	objectStore, err := storage.NewObjectStore(cfg.Storage)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init object store")
	}
	if err := objectStore.EnsureBucket(ctx); err != nil {
		logger.Warn().Err(err).Msg("ensure bucket failed")
	}

	processor := docgen.NewProcessor(
		repository.NewDocumentRepository(dbPool),
		repository.NewDimonaRepository(dbPool),
		repository.NewCollaboratorRepository(dbPool),
		repository.NewCompanyRepository(dbPool),
		repository.NewUserRepository(dbPool),
		repository.NewSessionRepository(dbPool),
		repository.NewNotificationRepository(dbPool),
		objectStore,
		logger,
	)

	consumer := queue.NewConsumer(
		redisClient,
		cfg.Queue.Stream,
		cfg.Queue.Group,
		cfg.Queue.Consumer,
		cfg.Queue.ClaimInterval,
		logger,
		processor,
	)
	if err := consumer.EnsureGroup(ctx); err != nil {
		logger.Fatal().Err(err).Msg("ensure consumer group failed")
	}

	runCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := consumer.Start(runCtx); err != nil && err != context.Canceled {
			logger.Fatal().Err(err).Msg("consumer stopped unexpectedly")
		}
	}()

	<-runCtx.Done()
	logger.Info().Msg("shutdown signal received")
	time.Sleep(500 * time.Millisecond)
}
