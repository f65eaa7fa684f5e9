package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"
	"gorm.io/gorm"

	"nutrisnap/internal/handlers"
	applog "nutrisnap/internal/log"
)

const (
	defaultCookieName      = "nutrisnap_session"
	defaultSessionLifetime = 12 * time.Hour
	defaultShutdownTimeout = 5 * time.Second
)

// Config captures the runtime configuration for the HTTP server.
type Config struct {
	Addr            string
	Session         SessionConfig
	Database        *gorm.DB
	Services        handlers.Services
	ShutdownTimeout time.Duration
}

// SessionConfig controls the cookie that carries a user's meal draft.
type SessionConfig struct {
	Lifetime     time.Duration
	CookieName   string
	CookieDomain string
	CookieSecure bool
}

// Server serves the meal logging API and pages.
type Server struct {
	config     Config
	httpServer *http.Server
}

// New installs the handler dependencies and builds the HTTP server.
func New(cfg Config) (*Server, error) {
	ctx := context.Background()
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	sessions := newSessionManager(ctx, cfg.Session)
	handlers.Configure(sessions, cfg.Database)
	handlers.ConfigureServices(cfg.Services)

	applog.Debug(ctx, "meal services configured",
		"database", cfg.Database != nil,
		"analyzer", cfg.Services.Analyzer != nil,
		"foodSearch", cfg.Services.Foods != nil,
		"photos", cfg.Services.Photos != nil,
		"tracker", cfg.Services.Tracker != nil,
	)

	return &Server{
		config: cfg,
		httpServer: &http.Server{
			Addr:              cfg.Addr,
			Handler:           sessions.LoadAndSave(newRouter()),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}, nil
}

// newSessionManager builds the scs manager holding drafts between requests.
func newSessionManager(ctx context.Context, cfg SessionConfig) *scs.SessionManager {
	if cfg.Lifetime <= 0 {
		cfg.Lifetime = defaultSessionLifetime
	}
	if strings.TrimSpace(cfg.CookieName) == "" {
		cfg.CookieName = defaultCookieName
	}

	sessions := scs.New()
	sessions.Lifetime = cfg.Lifetime
	sessions.Cookie.Name = cfg.CookieName
	sessions.Cookie.Domain = cfg.CookieDomain
	sessions.Cookie.HttpOnly = true
	sessions.Cookie.Persist = true
	sessions.Cookie.SameSite = http.SameSiteLaxMode
	sessions.Cookie.Secure = cfg.CookieSecure

	applog.Debug(ctx, "session manager configured",
		"cookieName", cfg.CookieName,
		"cookieDomain", cfg.CookieDomain,
		"cookieSecure", cfg.CookieSecure,
		"lifetime", cfg.Lifetime.String(),
	)
	return sessions
}

// Start serves HTTP until Stop is called.
func (s *Server) Start() error {
	applog.Debug(context.Background(), "server starting listener", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop drains in-flight requests within the configured shutdown timeout.
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	applog.Debug(ctx, "server initiating graceful shutdown", "timeout", s.config.ShutdownTimeout.String())
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the configured HTTP handler, enabling integration tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}
