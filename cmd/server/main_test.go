package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"syscall"
	"testing"
	"time"

	"gorm.io/gorm"

	"nutrisnap/internal/config"
	"nutrisnap/internal/handlers"
	"nutrisnap/internal/server"
)

type stubServer struct {
	startErr       error
	stopErr        error
	blockUntilStop bool

	startCalled bool
	stopCalled  bool

	startGate   chan struct{}
	startNotify chan struct{}
}

func newStubServer(startErr, stopErr error, block bool) *stubServer {
	s := &stubServer{
		startErr:       startErr,
		stopErr:        stopErr,
		blockUntilStop: block,
		startNotify:    make(chan struct{}),
	}
	if block {
		s.startGate = make(chan struct{})
	}
	return s
}

func (s *stubServer) Start() error {
	s.startCalled = true
	close(s.startNotify)
	if s.blockUntilStop {
		<-s.startGate
	}
	return s.startErr
}

func (s *stubServer) Stop() error {
	s.stopCalled = true
	if s.blockUntilStop {
		close(s.startGate)
	}
	return s.stopErr
}

// restoreSeams puts every replaceable dependency of run back after the test.
func restoreSeams(t *testing.T) {
	t.Helper()
	originalLoadConfig := loadConfigFunc
	originalSetLogLevel := setLogLevelFunc
	originalMock := newMockDatabaseFunc
	originalConfigure := configureDatabase
	originalNewServer := newServerFunc
	originalServices := newServicesFunc
	originalSubscribe := subscribeShutdownSig

	t.Cleanup(func() {
		loadConfigFunc = originalLoadConfig
		setLogLevelFunc = originalSetLogLevel
		newMockDatabaseFunc = originalMock
		configureDatabase = originalConfigure
		newServerFunc = originalNewServer
		newServicesFunc = originalServices
		subscribeShutdownSig = originalSubscribe
	})
}

func TestRunUsesMockDatabaseWhenConfigured(t *testing.T) {
	restoreSeams(t)

	cfg := config.Config{
		Server:   config.ServerConfig{Addr: ":8080"},
		Database: config.DatabaseConfig{UseMock: true},
		Logging:  config.LoggingConfig{Level: "debug"},
		Auth: config.AuthConfig{
			Session: config.SessionConfig{
				Lifetime:     time.Hour,
				CookieName:   "test",
				CookieSecure: true,
			},
			UserHeader: "X-Forwarded-User",
		},
	}

	var mockCalled bool
	loadConfigFunc = func() (config.Config, error) { return cfg, nil }
	setLogLevelFunc = func(level string) error { return nil }
	newMockDatabaseFunc = func(ctx context.Context) (*gorm.DB, error) {
		mockCalled = true
		return &gorm.DB{}, nil
	}
	configureDatabase = func(config.DatabaseConfig) (*gorm.DB, error) {
		t.Fatal("configureDatabase should not be called when mock is enabled")
		return nil, nil
	}

	var received server.Config
	serverStub := newStubServer(http.ErrServerClosed, nil, true)
	newServerFunc = func(cfg server.Config) (serverLifecycle, error) {
		received = cfg
		return serverStub, nil
	}

	shutdownCh := make(chan os.Signal, 1)
	subscribeShutdownSig = func() (<-chan os.Signal, func()) {
		return shutdownCh, func() {}
	}

	go func() {
		<-serverStub.startNotify
		shutdownCh <- syscall.SIGTERM
	}()

	code := run(context.Background())
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	if !mockCalled {
		t.Fatal("expected mock database to be used")
	}
	if !serverStub.startCalled || !serverStub.stopCalled {
		t.Fatal("expected server start and stop to be invoked")
	}
	if received.Session.CookieName != "test" || received.Services.UserHeader != "X-Forwarded-User" {
		t.Fatalf("unexpected server config: %+v", received)
	}
	if received.Services.Tracker == nil {
		t.Fatal("expected activity tracker to be configured")
	}
}

func TestRunReturnsErrorWhenServerStartFails(t *testing.T) {
	restoreSeams(t)

	cfg := config.Config{
		Server:   config.ServerConfig{Addr: ":8080"},
		Database: config.DatabaseConfig{UseMock: true},
		Logging:  config.LoggingConfig{Level: "info"},
		Auth:     config.AuthConfig{Session: config.SessionConfig{Lifetime: time.Hour}},
	}

	loadConfigFunc = func() (config.Config, error) { return cfg, nil }
	setLogLevelFunc = func(string) error { return nil }
	newMockDatabaseFunc = func(context.Context) (*gorm.DB, error) { return &gorm.DB{}, nil }

	serverStub := newStubServer(errors.New("listener failure"), nil, false)
	newServerFunc = func(server.Config) (serverLifecycle, error) {
		return serverStub, nil
	}

	subscribeShutdownSig = func() (<-chan os.Signal, func()) {
		return make(chan os.Signal), func() {}
	}

	code := run(context.Background())
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if serverStub.stopCalled {
		t.Fatal("server stop should not be called on start error")
	}
}

func TestRunHandlesDatabaseConfigurationError(t *testing.T) {
	restoreSeams(t)

	cfg := config.Config{
		Server:   config.ServerConfig{Addr: ":8080"},
		Database: config.DatabaseConfig{URL: "postgres://example", UseMock: false},
		Logging:  config.LoggingConfig{Level: "info"},
	}

	loadConfigFunc = func() (config.Config, error) { return cfg, nil }
	setLogLevelFunc = func(string) error { return nil }
	newMockDatabaseFunc = func(context.Context) (*gorm.DB, error) {
		t.Fatal("mock database should not be used when URL is configured")
		return nil, nil
	}
	configureDatabase = func(config.DatabaseConfig) (*gorm.DB, error) {
		return nil, errors.New("db connection refused")
	}

	code := run(context.Background())
	if code != 1 {
		t.Fatalf("expected exit code 1 on database configuration failure, got %d", code)
	}
}

func TestRunHandlesServiceConfigurationError(t *testing.T) {
	restoreSeams(t)

	loadConfigFunc = func() (config.Config, error) {
		return config.Config{Database: config.DatabaseConfig{UseMock: true}}, nil
	}
	setLogLevelFunc = func(string) error { return nil }
	newMockDatabaseFunc = func(context.Context) (*gorm.DB, error) { return &gorm.DB{}, nil }
	newServicesFunc = func(context.Context, config.Config) (handlers.Services, error) {
		return handlers.Services{}, errors.New("redis unreachable")
	}
	newServerFunc = func(server.Config) (serverLifecycle, error) {
		t.Fatal("server should not be built when services fail")
		return nil, nil
	}

	if code := run(context.Background()); code != 1 {
		t.Fatalf("expected exit code 1 on service failure, got %d", code)
	}
}

func TestRunReturnsErrorWhenLogLevelInvalid(t *testing.T) {
	restoreSeams(t)

	cfg := config.Config{Logging: config.LoggingConfig{Level: "invalid"}}
	loadConfigFunc = func() (config.Config, error) { return cfg, nil }
	setLogLevelFunc = func(string) error { return errors.New("invalid level") }

	code := run(context.Background())
	if code != 1 {
		t.Fatalf("expected exit code 1 for invalid log level, got %d", code)
	}
}

func TestBuildServicesWiresConfiguredClients(t *testing.T) {
	cfg := config.Config{
		Auth:       config.AuthConfig{UserHeader: "X-User-ID"},
		AI:         config.AIConfig{APIKey: "sk-test", Model: "vision-model"},
		FoodSearch: config.FoodSearchConfig{URL: "http://foods.internal/search"},
		Photos:     config.PhotoConfig{Bucket: "meals", Endpoint: "http://localhost:9000", AccessKey: "key", SecretKey: "secret"},
	}

	services, err := buildServices(context.Background(), cfg)
	if err != nil {
		t.Fatalf("buildServices returned error: %v", err)
	}
	if services.Analyzer == nil || services.Foods == nil || services.Photos == nil || services.Tracker == nil {
		t.Fatalf("expected every service to be configured, got %+v", services)
	}

	services, err = buildServices(context.Background(), config.Config{})
	if err != nil {
		t.Fatalf("buildServices returned error: %v", err)
	}
	if services.Analyzer != nil || services.Foods != nil || services.Photos != nil {
		t.Fatalf("expected optional services to stay disabled, got %+v", services)
	}
	if services.Tracker == nil {
		t.Fatal("expected in-memory activity tracking by default")
	}
}

func TestBuildServicesRejectsUnreachableRedis(t *testing.T) {
	_, err := buildServices(context.Background(), config.Config{Redis: config.RedisConfig{URL: "not a url"}})
	if err == nil {
		t.Fatal("expected invalid redis url to fail")
	}
}
