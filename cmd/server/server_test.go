package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/codr1/themesmith/internal/app"
	"github.com/codr1/themesmith/internal/config"
	"github.com/codr1/themesmith/internal/ratelimit"
)

func TestServerRoutes(t *testing.T) {
	cfg := config.Default()
	cfg.Features.EnableMetrics = true

	services, err := app.Open(cfg)
	if err != nil {
		t.Fatalf("open services: %v", err)
	}
	t.Cleanup(func() { _ = services.Close() })

	srv := httptest.NewServer(newServer(cfg, services, nil).Handler)
	t.Cleanup(srv.Close)

	tests := []struct {
		method   string
		path     string
		body     string
		status   int
		contains string
	}{
		{method: http.MethodGet, path: "/health", status: http.StatusOK, contains: "OK"},
		{method: http.MethodGet, path: "/api/v1/catalog", status: http.StatusOK, contains: `"defaultId":"ocean-blue"`},
		{
			method:   http.MethodPost,
			path:     "/api/v1/themes/generate",
			body:     `{"primaryColor":"#3B82F6","name":"Smoke","save":true}`,
			status:   http.StatusCreated,
			contains: `"id":"smoke"`,
		},
		{method: http.MethodGet, path: "/themes.css", status: http.StatusOK, contains: ".theme-smoke {"},
		{method: http.MethodGet, path: "/metrics", status: http.StatusOK, contains: "themesmith_themes_generated_total"},
		{method: http.MethodGet, path: "/nope", status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req, err := http.NewRequest(tt.method, srv.URL+tt.path, strings.NewReader(tt.body))
			if err != nil {
				t.Fatalf("new request: %v", err)
			}
			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				t.Fatalf("do request: %v", err)
			}
			defer resp.Body.Close()
			body, _ := io.ReadAll(resp.Body)

			if resp.StatusCode != tt.status {
				t.Fatalf("status = %d, want %d, body = %s", resp.StatusCode, tt.status, body)
			}
			if resp.Header.Get("X-Request-ID") == "" {
				t.Fatalf("missing X-Request-ID header")
			}
			if tt.contains != "" && !strings.Contains(string(body), tt.contains) {
				t.Fatalf("body missing %q", tt.contains)
			}
		})
	}
}

func TestServerRateLimitsGeneration(t *testing.T) {
	cfg := config.Default()
	services, err := app.Open(cfg)
	if err != nil {
		t.Fatalf("open services: %v", err)
	}
	t.Cleanup(func() { _ = services.Close() })

	limiter := ratelimit.New(&ratelimit.Config{MaxRequests: 1})
	t.Cleanup(limiter.Close)

	srv := httptest.NewServer(newServer(cfg, services, limiter).Handler)
	t.Cleanup(srv.Close)

	post := func() int {
		resp, err := http.Post(srv.URL+"/api/v1/themes/generate", "application/json",
			strings.NewReader(`{"primaryColor":"#3B82F6","name":"Limited"}`))
		if err != nil {
			t.Fatalf("post: %v", err)
		}
		resp.Body.Close()
		return resp.StatusCode
	}

	if got := post(); got != http.StatusOK {
		t.Fatalf("first generate status = %d, want 200", got)
	}
	if got := post(); got != http.StatusTooManyRequests {
		t.Fatalf("second generate status = %d, want 429", got)
	}

	resp, err := http.Get(srv.URL + "/api/v1/catalog")
	if err != nil {
		t.Fatalf("get catalog: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("catalog status = %d, want unlimited 200", resp.StatusCode)
	}
}

func TestRunReturnsStartupErrors(t *testing.T) {
	cfg := config.Default()
	cfg.Database.Driver = "postgres"

	err := run(context.Background(), cfg)
	if err == nil || !strings.Contains(err.Error(), "open theme services") {
		t.Fatalf("run() error = %v, want open failure", err)
	}
}

func TestRunShutsDownWhenContextEnds(t *testing.T) {
	cfg := config.Default()
	cfg.App.Port = 0
	cfg.Database.Driver = config.DriverSQLite
	cfg.Database.Filename = filepath.Join(t.TempDir(), "themes.db")
	cfg.RateLimit.Enabled = true

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := run(ctx, cfg); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if _, err := os.Stat(cfg.Database.Filename); err != nil {
		t.Fatalf("database not created: %v", err)
	}
}
