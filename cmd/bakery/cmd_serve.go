package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/d60-Lab/bakery-api/config"
	"github.com/d60-Lab/bakery-api/internal/api"
	"github.com/d60-Lab/bakery-api/internal/api/middleware"
	"github.com/d60-Lab/bakery-api/internal/repository"
	"github.com/d60-Lab/bakery-api/internal/server"
	"github.com/d60-Lab/bakery-api/pkg/database"
	"github.com/d60-Lab/bakery-api/pkg/logger"
	"github.com/d60-Lab/bakery-api/pkg/tracing"
)

// bakery serve
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

func serve(parent context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if _, err := logger.Init(cfg.Log.Level, cfg.App.Env); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()
	go exitOnSecondSignal(ctx)

	shutdownTracing, err := tracing.Init(ctx, cfg)
	if err != nil {
		return err
	}
	if err := initSentry(cfg); err != nil {
		return err
	}
	defer sentry.Flush(2 * time.Second)

	db, err := database.InitDB(cfg)
	if err != nil {
		return err
	}
	if cfg.Database.AutoMigrate {
		if err := repository.AutoMigrate(db); err != nil {
			_ = database.Close(db)
			return err
		}
	}

	var opts []api.Option
	var closeRedis func() error
	if cfg.RateLimit.RPS > 0 && cfg.RateLimit.RedisURL != "" {
		client, err := newRedisClient(ctx, cfg.RateLimit.RedisURL)
		if err != nil {
			_ = database.Close(db)
			return err
		}
		closeRedis = client.Close
		opts = append(opts, api.WithRateLimiter(middleware.NewRedisRateLimiter(client, cfg.RateLimit.RPS, cfg.RateLimit.Burst)))
	}

	logger.Info("starting bakery api",
		zap.String("env", cfg.App.Env),
		zap.String("version", cfg.App.Version),
		zap.String("timezone", cfg.App.Location().String()),
		zap.Int("port", cfg.Server.Port),
	)
	runErr := server.New(cfg.Server, api.NewRouter(cfg, db, opts...)).Run(ctx)

	flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	errs := []error{runErr, shutdownTracing(flushCtx), database.Close(db)}
	if closeRedis != nil {
		errs = append(errs, closeRedis())
	}
	err = errors.Join(errs...)
	if err != nil {
		logger.Error("shutdown finished with errors", zap.Error(err))
		return err
	}
	logger.Info("bye")
	return nil
}

// exitOnSecondSignal 关闭过程中再次收到信号则立即退出
func exitOnSecondSignal(ctx context.Context) {
	<-ctx.Done()
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	<-ch
	logger.Error("received second signal, forcing exit")
	_ = logger.Sync()
	os.Exit(1)
}

func newRedisClient(ctx context.Context, rawURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse RATE_LIMIT_REDIS_URL: %w", err)
	}
	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	logger.Info("rate limiter backed by redis", zap.String("addr", opt.Addr))
	return client, nil
}

func initSentry(cfg *config.Config) error {
	if cfg.Sentry.DSN == "" {
		return nil
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.Sentry.DSN,
		Environment:      cfg.App.Env,
		Release:          cfg.App.Name + "@" + cfg.App.Version,
		AttachStacktrace: true,
	})
	if err != nil {
		return fmt.Errorf("init sentry: %w", err)
	}
	return nil
}
