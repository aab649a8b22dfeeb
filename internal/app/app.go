package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"cfdesk/internal/catalog"
	"cfdesk/internal/config"
	"cfdesk/internal/httpserver"
	"cfdesk/internal/httpserver/deps"
	"cfdesk/internal/logger"
	"cfdesk/internal/redis"
	"cfdesk/internal/scheduler"
	"cfdesk/internal/sources/codeforces"
	redisstore "cfdesk/internal/store/redis"
	"cfdesk/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	refresher   *scheduler.CatalogRefresher
	syncer      *scheduler.SubmissionSyncer
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Initialize Redis early - fail fast if unavailable
	redisClient, err := redis.New(redis.ConnectOptions{
		Addr:           cfg.RedisAddr,
		User:           cfg.RedisUser,
		Password:       cfg.RedisPassword,
		DB:             cfg.RedisDB,
		DialTimeout:    cfg.RedisDT,
		ReadTimeout:    cfg.RedisRT,
		WriteTimeout:   cfg.RedisWT,
		PoolSize:       cfg.RedisPoolSize,
		ConnectTimeout: cfg.RedisConnectTimeout,
		RetryInterval:  cfg.RedisRetryInterval,
		MaxWait:        cfg.RedisMaxWait,
		PingTimeout:    cfg.RedisPingTimeout,
		WarnThreshold:  cfg.RedisWarnThreshold,
	}, loggerClient)
	if err != nil {
		loggerClient.Error("failed to connect to redis", logger.Error(err))
		os.Exit(1)
	}

	store := redisstore.NewStore(redisClient)
	cat := catalog.New()

	tags := catalog.DefaultTagRegistry()
	if cfg.TagFile != "" {
		loaded, err := catalog.LoadTagRegistry(cfg.TagFile)
		if err != nil {
			loggerClient.Warn("failed to load tag registry, using built-in tags",
				logger.String("file", cfg.TagFile),
				logger.Error(err))
		} else {
			tags = loaded
		}
	}
	classifier := catalog.NewClassifier(tags)

	// Restore the last persisted snapshot so the app works offline
	// before the first remote refresh.
	storeSyncer := scheduler.NewStoreSyncer(store, cat, classifier, loggerClient)
	if err := storeSyncer.Sync(context.Background()); err != nil {
		loggerClient.Warn("failed to restore catalog from redis, will fetch remotely",
			logger.Error(err))
	}

	client := codeforces.NewClient(cfg.APIBaseURL, loggerClient)

	refreshTrigger := make(chan struct{}, 1)
	refresher := scheduler.NewCatalogRefresher(
		client,
		classifier,
		cat,
		store,
		loggerClient,
		cfg.RefreshInterval,
		refreshTrigger,
	)

	syncTrigger := make(chan struct{}, 1)
	syncer := scheduler.NewSubmissionSyncer(
		client,
		store,
		cfg.Handle,
		loggerClient,
		cfg.SyncInterval,
		syncTrigger,
	)

	d := deps.Deps{
		Logger:         loggerClient,
		StartTime:      time.Now(),
		Version:        version.Version,
		Commit:         version.Commit,
		BuildDate:      version.BuildDate,
		GoVersion:      version.GoVersion,
		Handle:         cfg.Handle,
		RedisClient:    redisClient,
		Catalog:        cat,
		Store:          store,
		RefreshTrigger: refreshTrigger,
		SyncTrigger:    syncTrigger,
		CORSOrigins:    cfg.CORSOrigins,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		refresher:   refresher,
		syncer:      syncer,
	}
}

func (a *App) Run() error {
	a.logger.Info("starting cfdesk",
		logger.String("version", version.Version),
		logger.String("commit", version.Commit),
		logger.String("addr", a.cfg.ListenPort),
		logger.String("handle", a.cfg.Handle))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.refresher.Start(ctx)
	a.logger.Info("catalog refresher started",
		logger.Duration("interval", a.cfg.RefreshInterval))

	a.syncer.Start(ctx)
	a.logger.Info("submission syncer started",
		logger.Duration("interval", a.cfg.SyncInterval))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	a.refresher.Stop()
	a.syncer.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warn("failed to close redis", logger.Error(err))
		}
	}

	a.logger.Info("cfdesk stopped cleanly")
	return nil
}
