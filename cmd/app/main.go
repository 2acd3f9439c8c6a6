package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mo-amir99/premium-video-server/internal/features/notification"
	"github.com/mo-amir99/premium-video-server/internal/features/user"
	"github.com/mo-amir99/premium-video-server/internal/features/video"
	"github.com/mo-amir99/premium-video-server/internal/http/routes"
	"github.com/mo-amir99/premium-video-server/internal/store"
	"github.com/mo-amir99/premium-video-server/pkg/cache"
	"github.com/mo-amir99/premium-video-server/pkg/config"
	"github.com/mo-amir99/premium-video-server/pkg/health"
	"github.com/mo-amir99/premium-video-server/pkg/logger"
	"github.com/mo-amir99/premium-video-server/pkg/telegram"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	appLogger, err := logger.New(cfg.LogLevel, cfg.LogDir)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	videos, err := store.NewDocument(filepath.Join(cfg.DataDir, store.VideosFile), video.EmptyCollection, appLogger)
	if err != nil {
		appLogger.Error("videos store init failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	users, err := store.NewDocument(filepath.Join(cfg.DataDir, store.UsersFile), user.EmptyIndex, appLogger)
	if err != nil {
		appLogger.Error("users store init failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	healthHandler := health.NewHandler(appLogger)
	healthHandler.AddCheck("videos", func(context.Context) error { return videos.Check() })
	healthHandler.AddCheck("users", func(context.Context) error { return users.Check() })

	// Rate limit counters live in Redis when configured, otherwise in memory.
	var counter cache.Counter
	if cfg.Redis.Addr != "" {
		redisCounter, err := cache.NewRedisCounter(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, "premium-video:")
		if err != nil {
			appLogger.Error("redis connection failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		counter = redisCounter
		healthHandler.AddCheck("redis", redisCounter.Ping)
		appLogger.Info("rate limiter using redis", slog.String("addr", cfg.Redis.Addr))
	} else {
		counter = cache.NewMemoryCounter(cfg.RateLimit.Window)
	}
	defer func() {
		if err := counter.Close(); err != nil {
			appLogger.Error("rate limiter close failed", slog.String("error", err.Error()))
		}
	}()

	if cfg.Telegram.BotToken == "" {
		appLogger.Warn("TELEGRAM_BOT_TOKEN is not set; notifications will fail")
	}
	telegramClient := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.BaseURL, cfg.Telegram.Timeout)
	notifier := notification.NewNotifier(telegramClient, cfg.Notify.Delay, appLogger)

	router := routes.NewRouter(cfg, routes.Dependencies{
		Videos:   videos,
		Users:    users,
		Notifier: notifier,
		Health:   healthHandler,
		Counter:  counter,
	}, appLogger)

	srv := newHTTPServer(cfg.ServerAddress(), router)

	go func() {
		appLogger.Info("server starting",
			slog.String("addr", cfg.ServerAddress()),
			slog.String("env", cfg.Env),
			slog.String("log_level", cfg.LogLevel),
			slog.String("data_dir", cfg.DataDir),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("server listen failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("server shutdown failed", slog.String("error", err.Error()))
	} else {
		appLogger.Info("server stopped gracefully")
	}
}
