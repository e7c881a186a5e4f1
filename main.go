package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"edu-loan/config"
	httpLayer "edu-loan/http"
	"edu-loan/logger"
	"edu-loan/repository"
	"edu-loan/service"
)

func main() {
	cfgPath := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.New(logger.DefaultConfig()).Error("Failed to load configuration", logger.FieldError, err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:     logger.ParseLevel(cfg.LogLevel),
		Format:    cfg.LogFormat,
		Component: logger.ComponentApp,
		Output:    os.Stdout,
	})
	logger.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("Invalid configuration", logger.FieldError, err)
		os.Exit(1)
	}

	ctx := context.Background()
	cache, closeCache := newCache(ctx, cfg, log)
	defer closeCache()

	scheduleService := service.NewScheduleService(cache, cfg.Cache.TTL, log)
	scheduleHandler := httpLayer.NewScheduleHandler(scheduleService, cfg.CSVFileName)

	rateLimiter, err := httpLayer.NewRateLimiter(
		cfg.RateLimit.Capacity,
		cfg.RateLimit.Window,
		cfg.RateLimit.CleanupCron,
		log,
	)
	if err != nil {
		log.Error("Failed to create rate limiter", logger.FieldError, err)
		os.Exit(1)
	}
	defer rateLimiter.Stop()

	if logger.ParseLevel(cfg.LogLevel) != slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := httpLayer.SetupRouter(scheduleHandler, rateLimiter, log)

	server := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        router,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting server",
			logger.FieldOperation, logger.OpStartup,
			"port", cfg.Port,
			"cache_backend", cfg.Cache.Backend,
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Error("Error starting server", logger.FieldError, err)
		return
	case sig := <-quit:
		log.Info("Shutting down server", logger.FieldOperation, logger.OpShutdown, "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Error during server shutdown", logger.FieldError, err)
	}

	log.Info("Server exited")
}

// newCache builds the configured cache. An unreachable Redis falls back to
// the in-memory cache rather than refusing to start.
func newCache(ctx context.Context, cfg *config.Config, log *logger.Logger) (repository.CacheRepository, func()) {
	cacheLog := log.WithComponent(logger.ComponentCache)

	switch cfg.Cache.Backend {
	case "none":
		return repository.NoopCache{}, func() {}
	case "redis":
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		rc, err := repository.NewRedisCache(pingCtx, repository.RedisOptions{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
		if err == nil {
			cacheLog.Info("Using redis cache", "addr", cfg.Cache.Redis.Addr, "db", cfg.Cache.Redis.DB)
			return rc, func() {
				if err := rc.Close(); err != nil {
					cacheLog.Warn("Error closing redis client", logger.FieldError, err)
				}
			}
		}
		cacheLog.Warn("Redis unavailable, falling back to memory cache", logger.FieldError, err)
	}

	mc := repository.NewMemoryCache()
	stop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n := mc.CleanExpired(); n > 0 {
					cacheLog.Debug("Removed expired cache entries", "removed", n)
				}
			case <-stop:
				return
			}
		}
	}()
	return mc, func() { close(stop) }
}
