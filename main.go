package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cryptotracker/src/api"
	"cryptotracker/src/config"
	"cryptotracker/src/database"
	"cryptotracker/src/utils"
	aws_handler "cryptotracker/src/utils/aws"
	redis_utils "cryptotracker/src/utils/redis"

	"github.com/sirupsen/logrus"
)

func main() {
	logger := utils.NewLogger(logrus.InfoLevel, false, "")

	cfg, err := config.LoadConfig("./settings", os.Getenv("ENV"))
	if err != nil {
		logger.WithError(err).Fatal("Error while loading config")
	}

	if err := run(cfg, logger); err != nil {
		logger.WithError(err).Fatal("Error while running")
	}
}

func run(cfg *config.Config, logger *logrus.Logger) error {
	// The signing secret may live in AWS Secrets Manager instead of the
	// config file.
	if cfg.Auth.SecretID != "" {
		awsHandler, err := aws_handler.NewAWSHandler(cfg.AWS.Region)
		if err != nil {
			return err
		}
		secret, err := awsHandler.SecretManager.GetSecretValue(cfg.Auth.SecretID)
		if err != nil {
			return err
		}
		cfg.Auth.JWTSecret = secret
	}

	db, err := database.SetupDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	var redisHandler *redis_utils.RedisHandler
	if cfg.Databases.Redis.Enabled {
		redisHandler, err = redis_utils.NewRedisHandler(cfg)
		if err != nil {
			logger.WithError(err).Warn("Redis unavailable, price caching disabled")
			redisHandler = nil
		} else {
			defer func() { _ = redisHandler.Close() }()
		}
	}

	server := api.NewServer(cfg, db, redisHandler, logger)
	httpServer := api.NewHTTPServer(cfg, server)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errC := make(chan error, 1)
	go func() {
		logger.WithField("port", cfg.Service.Port).Info("Starting server")

		// "ListenAndServe always returns a non-nil error. After Shutdown or
		// Close, the returned error is ErrServerClosed."
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errC <- err
		}
	}()

	select {
	case err := <-errC:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
