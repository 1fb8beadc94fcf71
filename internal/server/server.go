// Package server exposes the calculators and the proxied assistant backend
// over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sehha/chicalc/internal/backend"
	"github.com/sehha/chicalc/internal/calculation"
	"github.com/sehha/chicalc/internal/domain"
	"github.com/sehha/chicalc/internal/logging"
)

const (
	defaultMemberCount = 1000
	shutdownTimeout    = 10 * time.Second
)

var defaultBasePremium = decimal.NewFromInt(5000)

// Catalog is the reference data surface the API reads
type Catalog interface {
	calculation.Catalog
	SubLimits() []domain.SubLimit
	Exclusions() []domain.Exclusion
	Services() []domain.Service
	Privileges(specialty string) (domain.PhysicianPrivilege, bool)
}

// Server wires the calculator handlers onto a chi router
type Server struct {
	catalog Catalog
	backend backend.Client
	logger  *zap.Logger
	started time.Time
	now     func() time.Time
}

// New creates a server. A nil backend makes the proxied routes answer 503.
func New(catalog Catalog, client backend.Client, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		catalog: catalog,
		backend: client,
		logger:  logger,
		started: time.Now(),
		now:     time.Now,
	}
}

// Router builds the HTTP handler
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.RequestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(r.Context(), w, newError("not_found", "route not found", http.StatusNotFound))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(r.Context(), w, newError("method_not_allowed", "method not allowed", http.StatusMethodNotAllowed))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.health)
		s.catalogRoutes(r)
		s.calculatorRoutes(r)
		s.backendRoutes(r)
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	now := s.now().UTC()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"uptime":    now.Sub(s.started).Round(time.Second).String(),
		"timestamp": now.Format(time.RFC3339),
	})
}
