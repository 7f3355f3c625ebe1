package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/greenpact/consulting-api/internal/api"
	"github.com/greenpact/consulting-api/internal/core/ports"
	"github.com/greenpact/consulting-api/internal/infrastructure/config"
	mongorepo "github.com/greenpact/consulting-api/internal/infrastructure/db/mongo"
	redisdb "github.com/greenpact/consulting-api/internal/infrastructure/db/redis"
	"github.com/greenpact/consulting-api/internal/infrastructure/mail"
	"github.com/greenpact/consulting-api/internal/infrastructure/storage"
	"github.com/greenpact/consulting-api/pkg/logger"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Init(logger.Options{})
		fallback := logger.Get()
		fallback.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// Mongo
	client, db, err := mongorepo.Connect(ctx, mongorepo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			log.Error().Err(err).Msg("failed to disconnect from MongoDB")
		}
	}()

	if err := ensureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to create MongoDB indexes")
	}

	// Redis
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close Redis client")
		}
	}()

	// Mail
	mailer, err := mail.NewSender(mail.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
		FromName: cfg.SMTP.FromName,
		TLS:      cfg.SMTP.TLS,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to configure mail sender")
	}

	// File storage
	files, uploadsDir, err := buildFileStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to configure file storage")
	}

	e := api.NewRouter(api.Deps{
		DB:         db,
		Redis:      rdb,
		Mailer:     mailer,
		Files:      files,
		Logger:     log,
		JWTSecret:  cfg.JWTSecret,
		TokenTTL:   cfg.TokenTTL,
		OTPLimit:   cfg.RateLimit.OTPLimit,
		OTPWindow:  cfg.RateLimit.OTPWindow,
		UploadsDir: uploadsDir,
	})

	errChan := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		log.Info().Msg("shutting down server")
	case err := <-errChan:
		log.Fatal().Err(err).Msg("server error")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("failed to shut down server gracefully")
	}
	log.Info().Msg("server stopped")
}

// buildFileStore selects the upload backend from configuration. The returned
// directory is non-empty only for the disk driver, where it doubles as the
// static /uploads root.
func buildFileStore(ctx context.Context, cfg *config.Config) (ports.FileStore, string, error) {
	switch cfg.Uploads.Driver {
	case "s3":
		store, err := storage.NewS3Store(ctx, storage.S3Config{
			Region:    cfg.Uploads.S3Region,
			Bucket:    cfg.Uploads.S3Bucket,
			Endpoint:  cfg.Uploads.S3Endpoint,
			AccessKey: cfg.Uploads.S3AccessKey,
			SecretKey: cfg.Uploads.S3SecretKey,
		})
		return store, "", err
	default:
		store, err := storage.NewDiskStore(cfg.Uploads.Dir)
		return store, cfg.Uploads.Dir, err
	}
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	for _, idx := range []interface {
		EnsureIndexes(context.Context) error
	}{
		mongorepo.NewUserRepository(db),
		mongorepo.NewOtpRepository(db),
		mongorepo.NewAlbumRepository(db),
		mongorepo.NewPhotoRepository(db),
		mongorepo.NewCommentRepository(db),
		mongorepo.NewApplicationRepository(db),
	} {
		if err := idx.EnsureIndexes(ctx); err != nil {
			return err
		}
	}
	return nil
}
