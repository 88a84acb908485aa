package main

import (
	"context"
	"fmt"
	"os"

	"github.com/lalith-99/docuvault/internal/api"
	"github.com/lalith-99/docuvault/internal/cache"
	"github.com/lalith-99/docuvault/internal/config"
	"github.com/lalith-99/docuvault/internal/db"
	"github.com/lalith-99/docuvault/internal/observ"
	"github.com/lalith-99/docuvault/internal/repository/postgres"
	"github.com/lalith-99/docuvault/internal/service"
	"github.com/lalith-99/docuvault/internal/storage"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := observ.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()

	database, err := db.New(context.Background(), cfg.DatabaseURL, logger)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer database.Close()

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("parse redis url: %w", err)
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	blobs, err := newBlobStore(cfg)
	if err != nil {
		return fmt.Errorf("init blob store: %w", err)
	}

	store := postgres.NewStore(database.Pool())
	repos := store.Repositories()
	documentCache := cache.NewDocumentCache(redisClient, cache.DefaultTTL, logger)

	documents := service.NewDocumentService(repos, store, documentCache, logger)
	tags := service.NewTagService(repos, store, logger)
	permissions := service.NewPermissionsService(repos, logger)
	search := service.NewSearchService(repos, logger)
	users := service.NewUserService(repos, store, cfg.JWTSecret, cfg.TokenTTL, logger)
	downloads := service.NewDownloadService(repos, cfg.DownloadSecret, cfg.LinkTTL, logger)

	router := api.NewRouter(api.Handlers{
		Users:       api.NewUserHandler(users, logger),
		Documents:   api.NewDocumentHandler(documents, blobs, logger),
		Tags:        api.NewTagHandler(tags, logger),
		Permissions: api.NewPermissionHandler(permissions, logger),
		Search:      api.NewSearchHandler(search, logger),
		Downloads:   api.NewDownloadHandler(downloads, blobs, logger),
	}, cfg.JWTSecret)

	logger.Info("starting DocuVault",
		zap.String("port", cfg.Port),
		zap.String("env", cfg.Env),
		zap.String("storage", cfg.StorageBackend),
	)
	return router.Run(":" + cfg.Port)
}

func newBlobStore(cfg *config.Config) (storage.BlobStore, error) {
	switch cfg.StorageBackend {
	case "minio":
		return storage.NewMinIOStore(storage.MinIOConfig{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			UseSSL:    cfg.MinioUseSSL,
			Bucket:    cfg.MinioBucket,
		})
	case "local":
		return storage.NewLocalStore(cfg.UploadDir)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
