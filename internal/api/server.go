// Package api exposes the tagging services over HTTP/JSON.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Taichi-iskw/tagscribe/internal/logger"
	"github.com/Taichi-iskw/tagscribe/internal/ratelimit"
	"github.com/Taichi-iskw/tagscribe/internal/service/analytics"
	"github.com/Taichi-iskw/tagscribe/internal/service/impression"
	"github.com/Taichi-iskw/tagscribe/internal/service/relocation"
	"github.com/Taichi-iskw/tagscribe/internal/service/taxonomy"
	"github.com/Taichi-iskw/tagscribe/internal/service/transcript"
	"github.com/Taichi-iskw/tagscribe/internal/validation"
)

// Pinger reports whether a backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// Services are the handlers' dependencies
type Services struct {
	Taxonomy    taxonomy.Service
	Transcripts transcript.Service
	Impressions impression.Recorder
	Relocation  relocation.Service
	Analytics   analytics.Service
	Database    Pinger
}

// Options tunes the middleware stack
type Options struct {
	RequestTimeout time.Duration
	RateLimitRPS   float64
	RateLimitBurst int
	AllowedOrigins []string
}

// Server routes HTTP requests to the services
type Server struct {
	services  Services
	opts      Options
	router    *chi.Mux
	limiter   *ratelimit.KeyedLimiter
	validator *validation.Validator
	log       *logger.Logger
}

// NewServer creates a server with all routes configured
func NewServer(services Services, opts Options, log *logger.Logger) *Server {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 20 * time.Second
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}

	s := &Server{
		services:  services,
		opts:      opts,
		router:    chi.NewRouter(),
		validator: validation.New(),
		log:       log.With("component", "HTTPServer"),
	}
	if opts.RateLimitRPS > 0 {
		s.limiter = ratelimit.New(opts.RateLimitRPS, opts.RateLimitBurst, 10*time.Minute)
	}

	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.opts.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	if s.limiter != nil {
		s.router.Use(s.rateLimit)
	}
	s.router.Use(middleware.Timeout(s.opts.RequestTimeout))
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Route("/videos", func(r chi.Router) {
			r.Post("/", s.handleRegisterVideo)
			r.Get("/", s.handleListVideos)
			r.Get("/{id}", s.handleGetVideo)
			r.Post("/{id}/transcripts", s.handleSaveTranscript)
			r.Get("/{id}/transcripts", s.handleLoadTranscript)
			r.Get("/{id}/transcripts/versions", s.handleListVersions)
		})

		r.Route("/transcripts/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetTranscript)
			r.Patch("/", s.handleRenameTranscript)
			r.Get("/tags", s.handleLoadTags)
			r.Get("/sections", s.handleListSections)
			r.Post("/sections", s.handleCreateSection)
		})

		r.Route("/sections/{id}", func(r chi.Router) {
			r.Patch("/", s.handleUpdateSection)
			r.Delete("/", s.handleDeleteSection)
			r.Post("/subsections", s.handleCreateSubsection)
		})
		r.Route("/subsections/{id}", func(r chi.Router) {
			r.Patch("/", s.handleUpdateSubsection)
			r.Delete("/", s.handleDeleteSubsection)
		})

		r.Route("/master-tags", func(r chi.Router) {
			r.Get("/", s.handleListMasterTags)
			r.Post("/", s.handleCreateMasterTag)
			r.Get("/{id}", s.handleGetMasterTag)
			r.Patch("/{id}", s.handleUpdateMasterTag)
			r.Delete("/{id}", s.handleDeleteMasterTag)
			r.Post("/{id}/close", s.handleCloseMasterTag)
			r.Post("/{id}/reopen", s.handleReopenMasterTag)
			r.Get("/{id}/branch-tags", s.handleListBranchTags)
			r.Post("/{id}/branch-tags", s.handleCreateBranchTag)
			r.Get("/{id}/primary-tags", s.handleListPrimaryTags)
			r.Post("/{id}/primary-tags", s.handleCreatePrimaryTag)
		})
		r.Route("/branch-tags/{id}", func(r chi.Router) {
			r.Patch("/", s.handleUpdateBranchTag)
			r.Delete("/", s.handleDeleteBranchTag)
		})
		r.Route("/primary-tags/{id}", func(r chi.Router) {
			r.Patch("/", s.handleRenamePrimaryTag)
			r.Get("/secondary-tags", s.handleListSecondaryTags)
			r.Post("/secondary-tags", s.handleCreateSecondaryTag)
		})
		r.Route("/secondary-tags/{id}", func(r chi.Router) {
			r.Patch("/", s.handleRenameSecondaryTag)
			r.Delete("/", s.handleDeleteSecondaryTag)
		})

		r.Route("/impressions", func(r chi.Router) {
			r.Post("/", s.handleRecordImpression)
			r.Get("/{id}", s.handleGetImpression)
			r.Patch("/{id}", s.handleUpdateImpression)
			r.Delete("/{id}", s.handleDeleteImpression)
		})
		r.Post("/relocations", s.handleRelocate)

		r.Get("/analytics", s.handleAnalytics)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.services.Database != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()
		if err := s.services.Database.Ping(ctx); err != nil {
			s.log.Warn("health check failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, envelope{"success": false, "status": "unhealthy"}, s.log)
			return
		}
	}
	writeSuccess(w, http.StatusOK, envelope{"status": "healthy"}, s.log)
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string, readTimeout, writeTimeout time.Duration) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	if s.limiter != nil {
		go s.sweepLimiter(ctx)
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.log.Info("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) sweepLimiter(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.limiter.Sweep(); n > 0 {
				s.log.Debug("rate limiter swept idle clients", "removed", n)
			}
		}
	}
}
