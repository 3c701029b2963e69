package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/talenthub/jobboard-api/internal/api"
	"github.com/talenthub/jobboard-api/internal/core/service"
	mongodb "github.com/talenthub/jobboard-api/internal/infrastructure/db/mongo"
	redisdb "github.com/talenthub/jobboard-api/internal/infrastructure/db/redis"
	"github.com/talenthub/jobboard-api/internal/infrastructure/storage"
	"github.com/talenthub/jobboard-api/internal/infrastructure/sweep"
	"github.com/talenthub/jobboard-api/internal/pkg/config"
	"github.com/talenthub/jobboard-api/pkg/logger"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		// Logger is not up yet.
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Infrastructure ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	store, err := storage.NewLocalStore(cfg.UploadDir)
	if err != nil {
		log.Fatal().Err(err).Msg("upload storage init failed")
	}

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	jobRepo := mongodb.NewJobRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	// --- Services ---
	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience, cfg.TokenTTL)
	throttle := redisdb.NewLoginThrottle(rdb)
	authService := service.NewAuthService(userRepo, tokenService, throttle, log)
	userService := service.NewUserService(userRepo, jobRepo, store, log)
	jobService := service.NewJobService(jobRepo, userRepo, log)
	uploadService := service.NewUploadService(userRepo, store, log)

	// --- Background sweeper ---
	sweeper := sweep.New(userRepo, store, cfg.SweepInterval, cfg.SweepGrace, log)
	if err := sweeper.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("sweeper start failed")
	}
	defer sweeper.Stop()

	// --- HTTP server ---
	e := api.NewRouter(api.Deps{
		AuthService:   authService,
		UserService:   userService,
		JobService:    jobService,
		UploadService: uploadService,
		TokenService:  tokenService,
		UserRepo:      userRepo,
		Mongo:         db,
		Redis:         rdb,
		UploadDir:     cfg.UploadDir,
		Log:           log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("jobboard api started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
		os.Exit(1)
	}
}
