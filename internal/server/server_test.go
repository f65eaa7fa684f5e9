package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"nutrisnap/internal/experience"
	"nutrisnap/internal/handlers"
	"nutrisnap/models"
)

func openTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:server-%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	if err := db.AutoMigrate(&models.Meal{}, &models.Profile{}, &models.MealSuggestion{}); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	return db
}

func TestNewAppliesSessionDefaults(t *testing.T) {
	db := openTestDatabase(t)

	cfg := Config{
		Addr:     ":8080",
		Session:  SessionConfig{CookieSecure: true},
		Database: db,
		Services: handlers.Services{Tracker: experience.NewTracker(experience.NewMemoryStore())},
	}
	srv, err := New(cfg)
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	t.Cleanup(func() {
		handlers.Configure(nil, nil)
		handlers.ConfigureServices(handlers.Services{})
	})

	if srv.httpServer.Addr != ":8080" {
		t.Fatalf("expected server addr :8080, got %q", srv.httpServer.Addr)
	}

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/draft/items", strings.NewReader(`{"food":"Apple","calories":52,"amount":100}`))
	req.Header.Set("X-User-ID", "alice")
	req.Header.Set("Content-Type", "application/json")
	srv.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected draft item to be created, got %d (%s)", rr.Code, rr.Body.String())
	}
	cookies := rr.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected session cookie to be set")
	}
	if cookies[0].Name != "nutrisnap_session" {
		t.Fatalf("expected default session cookie name, got %q", cookies[0].Name)
	}
	if !cookies[0].Secure {
		t.Fatal("expected cookie secure flag to be true")
	}

	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/draft/log", strings.NewReader(`{"date":"2025-05-17"}`))
	req.Header.Set("X-User-ID", "alice")
	req.AddCookie(cookies[0])
	srv.Handler().ServeHTTP(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected draft to be logged, got %d (%s)", rr.Code, rr.Body.String())
	}

	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/meals?date=2025-05-17", nil)
	req.Header.Set("X-User-ID", "alice")
	srv.Handler().ServeHTTP(rr, req)
	var listed struct {
		Meals []models.Meal `json:"meals"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &listed); err != nil {
		t.Fatalf("failed to decode meals: %v", err)
	}
	if len(listed.Meals) != 1 || listed.Meals[0].FoodDescription != "Apple" {
		t.Fatalf("expected the logged apple, got %+v", listed.Meals)
	}
}

func TestServerHandler(t *testing.T) {
	cfg := Config{Addr: ":9090"}
	srv, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		handlers.Configure(nil, nil)
		handlers.ConfigureServices(handlers.Services{})
	})

	handler := srv.Handler()
	if handler == nil {
		t.Fatal("expected non-nil handler")
	}

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected /healthz to return 200, got %d", rr.Code)
	}
}

func TestNewSessionManagerDefaults(t *testing.T) {
	t.Parallel()

	sessions := newSessionManager(context.Background(), SessionConfig{})
	if sessions.Lifetime != 12*time.Hour {
		t.Fatalf("Lifetime = %s, want 12h", sessions.Lifetime)
	}
	if sessions.Cookie.Name != defaultCookieName || !sessions.Cookie.HttpOnly {
		t.Fatalf("Cookie = %+v, want %s with HttpOnly", sessions.Cookie, defaultCookieName)
	}

	custom := newSessionManager(context.Background(), SessionConfig{Lifetime: time.Hour, CookieName: "meals", CookieDomain: "example.com"})
	if custom.Lifetime != time.Hour || custom.Cookie.Name != "meals" || custom.Cookie.Domain != "example.com" {
		t.Fatalf("custom session manager = %+v", custom.Cookie)
	}
}

func TestStopUsesShutdownTimeout(t *testing.T) {
	srv, err := New(Config{Addr: "127.0.0.1:0"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		handlers.Configure(nil, nil)
		handlers.ConfigureServices(handlers.Services{})
	})

	if srv.config.ShutdownTimeout != defaultShutdownTimeout {
		t.Fatalf("ShutdownTimeout = %s, want %s", srv.config.ShutdownTimeout, defaultShutdownTimeout)
	}
	if err := srv.Stop(); err != nil {
		t.Fatalf("Stop() on an idle server error = %v", err)
	}
}
