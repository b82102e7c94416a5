// cmd/server/server.go
package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/codr1/themesmith/internal/api"
	"github.com/codr1/themesmith/internal/api/themes"
	"github.com/codr1/themesmith/internal/app"
	"github.com/codr1/themesmith/internal/config"
	"github.com/codr1/themesmith/internal/metrics"
	"github.com/codr1/themesmith/internal/ratelimit"
)

// newServer builds the HTTP server. A nil limiter leaves generation
// unlimited.
func newServer(cfg *config.Config, services *app.Services, limiter *ratelimit.Limiter) *http.Server {
	router := http.NewServeMux()

	// WithMetrics must stay innermost so it sees the matched route pattern.
	handler := api.ChainMiddleware(
		router,
		api.WithMetrics,
		api.WithLogging,
		api.WithRecovery,
		api.WithRequestID,
	)

	themes.InitHandlers(themes.Deps{
		Store:           services.Store,
		Catalog:         services.Catalog,
		DefaultHarmony:  services.DefaultHarmony(),
		DefaultIndustry: cfg.Generator.DefaultIndustry,
	})
	registerRoutes(router, cfg, limiter)

	return &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.App.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func registerRoutes(mux *http.ServeMux, cfg *config.Config, limiter *ratelimit.Limiter) {
	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	if cfg.Features.EnableMetrics {
		mux.Handle("GET /metrics", metrics.Handler())
	}

	var generateMiddleware []func(http.Handler) http.Handler
	if limiter != nil {
		generateMiddleware = append(generateMiddleware, api.WithRateLimit(limiter, cfg.RateLimit.TrustProxy))
	}
	themes.RegisterRoutes(mux, generateMiddleware...)
}
