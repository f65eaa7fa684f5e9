package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"gorm.io/gorm"

	"nutrisnap/internal/ai"
	"nutrisnap/internal/config"
	"nutrisnap/internal/db"
	"nutrisnap/internal/db/mock"
	"nutrisnap/internal/experience"
	"nutrisnap/internal/foodsearch"
	"nutrisnap/internal/handlers"
	applog "nutrisnap/internal/log"
	"nutrisnap/internal/server"
	"nutrisnap/internal/storage"
)

type serverLifecycle interface {
	Start() error
	Stop() error
}

var (
	loadConfigFunc      = config.Load
	setLogLevelFunc     = applog.SetLevel
	newMockDatabaseFunc = mock.New
	configureDatabase   = db.Configure
	newServerFunc       = func(cfg server.Config) (serverLifecycle, error) {
		return server.New(cfg)
	}
	newServicesFunc      = buildServices
	subscribeShutdownSig = func() (<-chan os.Signal, func()) {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGTERM, syscall.SIGINT)
		return ch, func() { signal.Stop(ch) }
	}
)

func main() {
	os.Exit(run(context.Background()))
}

func run(ctx context.Context) int {
	cfg, err := loadConfigFunc()
	if err != nil {
		applog.Error(ctx, "failed to load configuration", "error", err)
		return 1
	}
	if err := setLogLevelFunc(cfg.Logging.Level); err != nil {
		applog.Error(ctx, "invalid log level", "level", cfg.Logging.Level, "error", err)
		return 1
	}
	defer applog.Sync()

	var database *gorm.DB
	if cfg.Database.UseMock || cfg.Database.URL == "" {
		applog.Info(ctx, "using in-memory mock database", "demoUser", mock.DemoUserID)
		database, err = newMockDatabaseFunc(ctx)
	} else {
		database, err = configureDatabase(cfg.Database)
	}
	if err != nil {
		applog.Error(ctx, "failed to configure database", "error", err)
		return 1
	}

	services, err := newServicesFunc(ctx, cfg)
	if err != nil {
		applog.Error(ctx, "failed to configure services", "error", err)
		return 1
	}

	srv, err := newServerFunc(server.Config{
		Addr:            cfg.Server.Addr,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Session: server.SessionConfig{
			Lifetime:     cfg.Auth.Session.Lifetime,
			CookieName:   cfg.Auth.Session.CookieName,
			CookieDomain: cfg.Auth.Session.CookieDomain,
			CookieSecure: cfg.Auth.Session.CookieSecure,
		},
		Database: database,
		Services: services,
	})
	if err != nil {
		applog.Error(ctx, "failed to build server", "error", err)
		return 1
	}

	shutdown, unsubscribe := subscribeShutdownSig()
	defer unsubscribe()

	startErr := make(chan error, 1)
	go func() {
		applog.Info(ctx, "starting http server", "addr", cfg.Server.Addr)
		startErr <- srv.Start()
	}()

	select {
	case err := <-startErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			applog.Error(ctx, "server encountered an error", "error", err)
			return 1
		}
		return 0
	case sig := <-shutdown:
		applog.Info(ctx, "shutting down http server", "signal", sig.String())
	}

	if err := srv.Stop(); err != nil {
		applog.Error(ctx, "graceful shutdown failed", "error", err)
		return 1
	}
	if err := <-startErr; err != nil && !errors.Is(err, http.ErrServerClosed) {
		applog.Error(ctx, "server encountered an error", "error", err)
		return 1
	}
	return 0
}

// buildServices wires the optional collaborators. Missing settings disable
// the matching endpoints instead of failing startup.
func buildServices(ctx context.Context, cfg config.Config) (handlers.Services, error) {
	services := handlers.Services{UserHeader: cfg.Auth.UserHeader}

	if cfg.AI.APIKey != "" {
		client, err := ai.NewClient(ai.Config{
			APIKey:  cfg.AI.APIKey,
			Model:   cfg.AI.Model,
			BaseURL: cfg.AI.BaseURL,
			Timeout: cfg.AI.Timeout,
		})
		if err != nil {
			return handlers.Services{}, err
		}
		services.Analyzer = client
		applog.Info(ctx, "photo analysis enabled", "model", client.Model())
	} else {
		applog.Info(ctx, "photo analysis disabled; no api key configured")
	}

	if cfg.FoodSearch.URL != "" {
		client, err := foodsearch.NewClient(foodsearch.Config{URL: cfg.FoodSearch.URL, Timeout: cfg.FoodSearch.Timeout})
		if err != nil {
			return handlers.Services{}, err
		}
		services.Foods = client
	}

	if cfg.Photos.Enabled() {
		store, err := storage.NewS3Store(ctx, cfg.Photos)
		if err != nil {
			return handlers.Services{}, err
		}
		services.Photos = store
		applog.Info(ctx, "photo archive enabled", "bucket", cfg.Photos.Bucket)
	}

	var store experience.Store = experience.NewMemoryStore()
	if cfg.Redis.URL != "" {
		client, err := experience.NewRedisClient(ctx, cfg.Redis.URL)
		if err != nil {
			return handlers.Services{}, err
		}
		store = experience.NewRedisStore(client, cfg.Redis.TTL)
		applog.Info(ctx, "activity tracking uses redis")
	}
	services.Tracker = experience.NewTracker(store)

	return services, nil
}
