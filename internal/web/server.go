// Package web provides the HTTP server and handlers for the store links UI.
package web

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/JonMunkholm/storelinks/internal/config"
	"github.com/JonMunkholm/storelinks/internal/core"
	mw "github.com/JonMunkholm/storelinks/internal/web/middleware"
	"github.com/JonMunkholm/storelinks/internal/web/templates"
)

// Server is the HTTP server for the store links application.
type Server struct {
	cfg     *config.Config
	service *core.Service

	// results holds finished workbooks until downloaded, uploads holds
	// inspected files until the user runs an operation on them.
	results *core.ResultStore
	uploads *core.ResultStore

	router *chi.Mux
	server *http.Server

	limiters []*rateLimiter
}

// NewServer creates a new Server instance.
func NewServer(service *core.Service, cfg *config.Config) *Server {
	s := &Server{
		cfg:     cfg,
		service: service,
		results: core.NewResultStore(cfg.Results.TTL, cfg.Results.MaxEntries),
		uploads: core.NewResultStore(cfg.Results.TTL, cfg.Results.MaxEntries),
		router:  chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(mw.TrustedRealIP(s.cfg.Security.TrustedProxies))
	s.router.Use(mw.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5, "text/html", "application/json"))
	s.router.Use(middleware.Timeout(s.cfg.Server.RequestTimeout))
	s.router.Use(securityHeaders(s.cfg.Security.EnableCSP))

	if s.cfg.Rate.Enabled {
		s.router.Use(s.newRateLimiter(s.cfg.Rate.RequestsPerMinute).middleware)
	}
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/", s.handleIndex)
	s.router.Get("/download/{id}", s.handleDownload)

	// Routes that process uploads get the stricter limit
	s.router.Group(func(r chi.Router) {
		if s.cfg.Rate.Enabled {
			r.Use(s.newRateLimiter(s.cfg.Rate.UploadLimit).middleware)
		}
		r.Post("/inspect", s.handleInspect)
		r.Post("/dedup", s.handleDedup)
		r.Post("/compare", s.handleCompare)
		r.Post("/extract", s.handleExtract)
	})

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Group(func(r chi.Router) {
			r.Use(mw.APIKeyAuth(s.cfg.Security))
			if s.cfg.Rate.Enabled {
				r.Use(s.newRateLimiter(s.cfg.Rate.UploadLimit).middleware)
			}
			r.Post("/inspect", s.handleAPIInspect)
			r.Post("/dedup", s.handleAPIDedup)
			r.Post("/compare", s.handleAPICompare)
			r.Post("/extract", s.handleAPIExtract)
		})
	})
}

// Start begins listening for HTTP requests on the configured address.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}

	return s.server.ListenAndServe()
}

// StartJanitors purges expired uploads and results until ctx is cancelled.
func (s *Server) StartJanitors(ctx context.Context, cfg core.JanitorConfig) {
	go core.StartResultJanitor(ctx, s.results, cfg)
	go core.StartResultJanitor(ctx, s.uploads, cfg)
}

// Shutdown gracefully stops the server and the rate limiter sweepers.
func (s *Server) Shutdown(ctx context.Context) error {
	for _, l := range s.limiters {
		l.stop()
	}
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

const contentSecurityPolicy = "default-src 'self'; script-src 'self' https://unpkg.com; style-src 'self' 'unsafe-inline'; img-src 'self' data:"

// securityHeaders adds security headers to all responses.
func securityHeaders(enableCSP bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
			if enableCSP {
				w.Header().Set("Content-Security-Policy", contentSecurityPolicy)
			}

			next.ServeHTTP(w, r)
		})
	}
}

// writeJSON encodes v as JSON and writes it to w.
// Logs encoding errors since headers are already sent.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}

// indexParams feeds the landing page.
func (s *Server) indexParams() templates.IndexParams {
	return templates.IndexParams{
		URLPrefix:   strings.TrimSpace(s.cfg.Links.URLPrefix),
		MaxFileSize: s.cfg.Upload.MaxFileSize,
	}
}
