package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/SentraLabs/Sentra/pkg/config"
	"github.com/SentraLabs/Sentra/pkg/infra/cache"
	"github.com/SentraLabs/Sentra/pkg/infra/database"
	"github.com/SentraLabs/Sentra/pkg/infra/logger"
	"github.com/SentraLabs/Sentra/pkg/infra/repository"
	"github.com/SentraLabs/Sentra/pkg/moderation"
	"github.com/SentraLabs/Sentra/pkg/moderation/patterns"
	"github.com/SentraLabs/Sentra/pkg/risk"
	"github.com/SentraLabs/Sentra/pkg/server"
	"github.com/SentraLabs/Sentra/pkg/stats"
)

func main() {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	l := logger.NewLogger()

	if err := config.Load("./config"); err != nil {
		l.WithError(err).Warn("running with default configuration")
	}
	cfg := config.GetConfig()

	db, err := database.NewDB(database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		l.Fatalf("failed to initialize database: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	reportRepo := repository.NewReportRepository(db)

	library := patterns.Load(cfg.Moderation.PatternsFile, l)

	var opts []moderation.Option
	cacheTTL := time.Duration(cfg.Moderation.CacheTTLSeconds) * time.Second
	if cfg.Redis.Enabled {
		redisCache, err := cache.NewRedisClient(cache.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			l.Fatalf("failed to initialize redis: %v", err)
		}
		opts = append(opts, moderation.WithResultCache(redisCache, cacheTTL))
	} else {
		opts = append(opts, moderation.WithResultCache(cache.NewMemoryClient(cacheTTL), cacheTTL))
	}

	moderationService := moderation.NewService(library, l, opts...)
	profiler := risk.NewProfiler(userRepo, postRepo, reportRepo, l)
	aggregator := stats.NewAggregator(userRepo, postRepo, reportRepo, l)

	srv := server.NewServer(server.ServerDI{
		Config:     cfg,
		Logger:     l,
		Moderation: moderationService,
		Profiler:   profiler,
		Stats:      aggregator,
	})

	go func() {
		if err := srv.Run(); err != nil {
			l.WithError(err).Fatal("server stopped")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	l.Info("shutting down")
	if err := srv.Shutdown(); err != nil {
		l.WithError(err).Error("failed to shut down server cleanly")
	}
}
