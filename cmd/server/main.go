package main // Entry point of the Oscar explorer API server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iliyamo/oscar-explorer/internal/config"
	"github.com/iliyamo/oscar-explorer/internal/database"
	"github.com/iliyamo/oscar-explorer/internal/handler"
	"github.com/iliyamo/oscar-explorer/internal/logging"
	"github.com/iliyamo/oscar-explorer/internal/queue"
	"github.com/iliyamo/oscar-explorer/internal/repository"
	"github.com/iliyamo/oscar-explorer/internal/router"
	"github.com/iliyamo/oscar-explorer/internal/service"
)

func main() {
	cfg := config.Load()
	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if cfg.JWTSecret == config.DefaultJWTSecret {
		logging.Warn().Msg("JWT_SECRET not set; using the development fallback")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := database.Open(cfg.DB)
	if err != nil {
		logging.Fatal().Err(err).Str("host", cfg.DB.Host).Msg("database connection failed")
	}
	defer pool.Close()
	// A pool that stops answering takes the process down; the supervisor restarts it.
	go pool.Watch(ctx, cfg.DB.WatchInterval, func(error) { os.Exit(1) })

	rdb := config.NewRedisClient(config.LoadRedisConfig())
	if rdb == nil {
		logging.Warn().Msg("redis unavailable; response cache and rate limiter disabled")
	} else {
		defer rdb.Close()
	}

	amqpCfg := config.LoadAMQPConfig()
	publisher := service.NewActivityPublisher(amqpCfg)
	if amqpCfg.Enabled {
		consumer := queue.NewConsumer(amqpCfg.URL, amqpCfg.Queue, amqpCfg.LogDir)
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logging.Error().Err(err).Msg("activity consumer stopped")
			}
		}()
	}

	db := pool.DB
	users := repository.NewUserRepo(db)
	films := repository.NewFilmRepo(db)

	e := router.New(router.Handlers{
		Auth:      handler.NewAuthHandler(cfg.JWTSecret, cfg.JWTExpiry, cfg.BcryptCost, users, publisher),
		Films:     handler.NewFilmHandler(films),
		Actors:    handler.NewActorHandler(repository.NewActorRepo(db)),
		Directors: handler.NewDirectorHandler(repository.NewDirectorRepo(db)),
		Genres:    handler.NewGenreHandler(repository.NewGenreRepo(db), films),
		Awards:    handler.NewAwardHandler(repository.NewAwardRepo(db)),
		Dashboard: handler.NewDashboardHandler(repository.NewDashboardRepo(db)),
		Users:     handler.NewUserHandler(users, repository.NewFavoriteRepo(db), publisher),
		Health:    handler.NewHealthHandler(pool),
	}, router.Options{
		JWTSecret:   cfg.JWTSecret,
		CORSOrigins: cfg.CORSOrigins,
		Cache:       config.LoadCacheConfig(),
		RateLimit:   config.LoadRateLimitConfig(),
		Redis:       rdb,
	})

	addr := ":" + cfg.Port
	go func() {
		logging.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	logging.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("graceful shutdown failed")
	}
}
