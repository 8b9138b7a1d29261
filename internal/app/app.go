package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/veloria/catalog-api/internal/config"
	"github.com/veloria/catalog-api/internal/httpserver"
	"github.com/veloria/catalog-api/internal/httpserver/deps"
	"github.com/veloria/catalog-api/internal/logger"
	"github.com/veloria/catalog-api/internal/postgres"
	"github.com/veloria/catalog-api/internal/preview"
	"github.com/veloria/catalog-api/internal/redis"
	"github.com/veloria/catalog-api/internal/scheduler"
	"github.com/veloria/catalog-api/internal/sources/crawlers"
	pgstore "github.com/veloria/catalog-api/internal/store/postgres"
	redisstore "github.com/veloria/catalog-api/internal/store/redis"
	"github.com/veloria/catalog-api/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	pool        *pgxpool.Pool
	redisClient *goredis.Client
	keepAlive   *scheduler.KeepAlive
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Postgres is mandatory - fail fast if unavailable
	pool, err := postgres.Connect(postgres.ConnectOptions{
		DSN:            cfg.PostgresDSN,
		MaxConns:       cfg.PostgresMaxConns,
		MinConns:       cfg.PostgresMinConns,
		ConnectTimeout: cfg.PostgresConnectTimeout,
		RetryInterval:  cfg.PostgresRetryInterval,
		MaxWait:        cfg.PostgresMaxWait,
		PingTimeout:    cfg.PostgresPingTimeout,
	}, loggerClient)
	if err != nil {
		loggerClient.Errorf("Failed to connect to Postgres: %v", err)
		os.Exit(1)
	}

	productStore := pgstore.NewProductStore(pool)
	blogStore := pgstore.NewBlogStore(pool)

	// Redis is optional - without it the service runs with visitor tracking off
	var redisClient *goredis.Client
	var visitors deps.VisitorSource
	if cfg.RedisAddr != "" {
		redisClient, err = redis.New(redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			RedisDB:        cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
		}, loggerClient)
		if err != nil {
			loggerClient.Errorf("Failed to connect to Redis: %v", err)
			os.Exit(1)
		}
		visitors = redisstore.NewVisitorStore(redisClient)
	} else {
		loggerClient.Info("redis not configured, visitor tracking disabled")
	}

	tokens, err := crawlers.NewLoader(cfg.CrawlerTokensFile).Load()
	if err != nil {
		loggerClient.Errorf("Failed to load crawler tokens: %v", err)
		os.Exit(1)
	}

	pipe := preview.NewPipeline(
		preview.NewClassifier(tokens),
		preview.NewSynthesizer(productStore, preview.SynthesizerConfig{
			SiteOrigin:      cfg.SiteOrigin,
			SiteName:        cfg.SiteName,
			AssetOrigin:     cfg.AssetOrigin,
			DefaultImageURL: cfg.DefaultImageURL,
		}),
		loggerClient,
	)

	readyCheck := func(ctx context.Context) error {
		if err := pool.Ping(ctx); err != nil {
			return fmt.Errorf("postgres: %w", err)
		}
		if redisClient != nil {
			if err := redisClient.Ping(ctx).Err(); err != nil {
				return fmt.Errorf("redis: %w", err)
			}
		}
		return nil
	}

	d := deps.Deps{
		Logger:         loggerClient,
		StartTime:      time.Now(),
		Version:        version.Version,
		Commit:         version.Commit,
		BuildDate:      version.BuildDate,
		GoVersion:      version.GoVersion,
		TimeNow:        time.Now,
		Products:       productStore,
		Blogs:          blogStore,
		Visitors:       visitors,
		ReadyCheck:     readyCheck,
		TrustProxy:     cfg.TrustProxy,
		SiteName:       cfg.SiteName,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	}

	server := httpserver.New(cfg, loggerClient, d, pipe)

	var keepAlive *scheduler.KeepAlive
	if cfg.KeepAliveURL != "" {
		keepAlive = scheduler.NewKeepAlive(cfg.KeepAliveURL, cfg.KeepAliveInterval, loggerClient)
	}

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		pool:        pool,
		redisClient: redisClient,
		keepAlive:   keepAlive,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting catalog-api v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("catalog-api %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if a.keepAlive != nil {
		if err := a.keepAlive.Start(ctx); err != nil {
			return fmt.Errorf("failed to start keepalive: %w", err)
		}
		a.logger.Info("keepalive started",
			logger.String("url", a.cfg.KeepAliveURL),
			logger.Duration("interval", a.cfg.KeepAliveInterval))
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	if a.keepAlive != nil {
		a.keepAlive.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	a.pool.Close()

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ catalog-api stopped cleanly")
	return nil
}
