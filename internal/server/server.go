// Package server sets up the HTTP server, router, and all route definitions.
//
// SERVER ARCHITECTURE:
// This package is the "wiring" layer: it connects storage, services, handlers,
// middleware and routes. It decides:
//   - Which URL patterns map to which handler functions
//   - What middleware runs on which routes
//   - How the server starts and stops gracefully
//
// DEPENDENCY INJECTION FLOW:
// main.go opens the storage backend chosen by configuration and passes it in
// as a repository.Storage. New() builds everything else:
//
//	repository.Storage → UserService / BlogService / WaitlistService → handlers
//
// Nothing here knows whether storage is memory, SQLite or Postgres.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/sakif/blogstack/internal/auth"
	"github.com/sakif/blogstack/internal/config"
	"github.com/sakif/blogstack/internal/handler"
	"github.com/sakif/blogstack/internal/middleware"
	"github.com/sakif/blogstack/internal/repository"
	"github.com/sakif/blogstack/internal/seed"
	"github.com/sakif/blogstack/internal/service"
)

// shutdownTimeout is how long in-flight requests get after a signal.
const shutdownTimeout = 30 * time.Second

// Server represents the HTTP server and all its dependencies.
//
// RESOURCE MANAGEMENT:
// The storage passed to New belongs to the caller, which closes it after
// Start returns. The server only stops using it.
type Server struct {
	router   *chi.Mux
	config   config.Config
	logger   *slog.Logger
	registry *prometheus.Registry

	tokens   *auth.TokenService // nil when auth is disabled
	users    *service.UserService
	blog     *service.BlogService
	waitlist *service.WaitlistService
}

// Option adjusts a Server before its routes are built.
type Option func(*options)

type options struct {
	passwords *auth.PasswordService
}

// WithPasswordService replaces the bcrypt settings; tests use it to drop to
// bcrypt.MinCost.
func WithPasswordService(p *auth.PasswordService) Option {
	return func(o *options) { o.passwords = p }
}

// New wires services and routes over store.
func New(cfg config.Config, store repository.Storage, logger *slog.Logger, opts ...Option) (*Server, error) {
	o := options{passwords: auth.NewPasswordService()}
	for _, opt := range opts {
		opt(&o)
	}

	var tokens *auth.TokenService
	if cfg.AuthEnabled() {
		var err error
		if tokens, err = auth.NewTokenService(cfg.JWTSecret, auth.DefaultTokenTTL); err != nil {
			return nil, fmt.Errorf("server: creating token service: %w", err)
		}
	} else {
		logger.Warn("JWT_SECRET not set: login and all authoring routes are disabled")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	s := &Server{
		router:   chi.NewRouter(),
		config:   cfg,
		logger:   logger,
		registry: registry,
		tokens:   tokens,
		users:    service.NewUserService(store, o.passwords, tokens, logger),
		blog:     service.NewBlogService(store, logger),
		waitlist: service.NewWaitlistService(store, logger),
	}
	s.setupRoutes()
	return s, nil
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Seed creates the default categories, tags and authors. Safe to call on
// every start.
func (s *Server) Seed(ctx context.Context) error {
	_, err := seed.Defaults(ctx, s.users, s.blog, s.logger)
	return err
}

// setupRoutes configures all middleware and route handlers.
//
// MIDDLEWARE ORDER MATTERS:
//  1. RequestID   assigns an ID used in the request log
//  2. RealIP      rewrites RemoteAddr from proxy headers (rate limiter key)
//  3. Recoverer   turns panics into 500s
//  4. RedirectWWW 301s www.host to host (optional)
//  5. Logger + Metrics see the final status of everything below
//  6. Compress    gzips JSON bodies
//  7. CORS        answers preflights before routing
func (s *Server) setupRoutes() {
	r := s.router

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	if s.config.RedirectWWW {
		r.Use(middleware.RedirectWWW)
	}
	r.Use(middleware.Logger(s.logger))
	r.Use(middleware.NewMetrics(s.registry).Instrument)
	r.Use(chimiddleware.Compress(5))
	r.Use(s.cors().Handler)

	r.Get("/healthz", handler.HandleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{Registry: s.registry}))

	users := handler.NewUserHandler(s.users, s.tokens, s.logger)
	blog := handler.NewBlogHandler(s.blog, s.logger)
	waitlist := handler.NewWaitlistHandler(s.waitlist, s.logger)

	requireAuth := auth.RequireAuth(s.tokens)
	limited := func(next http.Handler) http.Handler { return next }
	if n := s.config.RateLimitPerMinute; n > 0 {
		limited = middleware.NewRateLimiter(n).Limit
	}

	r.Route("/api", func(r chi.Router) {
		r.With(limited).Post("/users", users.HandleRegister)
		r.Get("/users/{id}", users.HandleGetByID)
		r.Get("/users/by-username/{username}", users.HandleGetByUsername)

		r.With(limited).Post("/auth/login", users.HandleLogin)
		r.Post("/auth/logout", users.HandleLogout)
		r.With(requireAuth).Get("/me", users.HandleMe)

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", blog.HandleListCategories)
			r.With(requireAuth).Post("/", blog.HandleCreateCategory)
			r.Get("/{category}", blog.HandleGetCategory)
			r.Get("/{category}/posts", blog.HandleListPostsByCategory)
		})

		r.Route("/tags", func(r chi.Router) {
			r.Get("/", blog.HandleListTags)
			r.With(requireAuth).Post("/", blog.HandleCreateTag)
			r.Get("/{tag}", blog.HandleGetTag)
			r.Get("/{tag}/posts", blog.HandleListPostsByTag)
		})

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", blog.HandleListPosts)
			r.With(requireAuth).Post("/", blog.HandleCreatePost)
			r.Get("/featured", blog.HandleListFeatured)
			r.Get("/{post}", blog.HandleGetPost)
			r.Patch("/{post}/views", blog.HandleRecordView)
			r.Get("/{post}/tags", blog.HandleListPostTags)
			r.With(requireAuth).Post("/{post}/tags", blog.HandleTagPost)
			r.Get("/{post}/comments", blog.HandleListComments)
		})

		r.With(requireAuth).Post("/comments", blog.HandleCreateComment)
		r.With(limited).Post("/waitlist", waitlist.HandleJoin)
	})
}

// cors allows the configured origins. Credentials (the session cookie) are
// only allowed with an explicit origin list, never with "*".
func (s *Server) cors() *cors.Cors {
	origins := s.config.CORSAllowedOrigins
	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "If-None-Match", "X-Request-ID"},
		ExposedHeaders:   []string{"ETag", "Retry-After"},
		AllowCredentials: !slices.Contains(origins, "*"),
		MaxAge:           300,
	})
}

// Start runs the server until SIGINT or SIGTERM.
func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return s.Run(ctx)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
//
// GRACEFUL SHUTDOWN:
//  1. Stop accepting new connections
//  2. Wait up to 30s for in-flight requests
//  3. Return, so the caller can close storage
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.config.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Port)),
			slog.String("storage", s.config.StorageDriver),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil

	case <-ctx.Done():
		s.logger.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
		return nil
	}
}
