package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewRouterRegistersHealthRoute(t *testing.T) {
	router := newRouter()
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected /healthz to return 200, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected application/json content type, got %q", ct)
	}
}

func TestNewRouterRequiresUserIdentity(t *testing.T) {
	router := newRouter()

	for _, path := range []string{"/app", "/api/draft", "/api/meals/abc", "/api/summary/daily", "/api/profile", "/api/experience"} {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("expected %s to return 401 without identity, got %d", path, rr.Code)
		}
	}
}

func TestNewRouterRedirectsRoot(t *testing.T) {
	router := newRouter()
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected / to redirect, got %d", rr.Code)
	}
}
