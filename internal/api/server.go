// Package api serves the column engine over HTTP with JSON bodies.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/alexiusacademia/gorcc/internal/column"
	"github.com/alexiusacademia/gorcc/internal/store"
	"github.com/alexiusacademia/gorcc/internal/version"
)

// maxBody bounds request bodies.
const maxBody = 1 << 20

// Server routes API requests. The run store is optional.
type Server struct {
	router  *mux.Router
	store   *store.Store
	limiter *IPRateLimiter
	log     *slog.Logger
}

// Options configures a Server.
type Options struct {
	Store  *store.Store // nil disables history
	Rate   float64      // requests per second per client, 0 disables limiting
	Burst  int
	Logger *slog.Logger
}

// New builds the server and its routes.
func New(opts Options) *Server {
	s := &Server{
		router: mux.NewRouter(),
		store:  opts.Store,
		log:    opts.Logger,
	}
	if s.log == nil {
		s.log = slog.Default()
	}

	api := s.router.PathPrefix("/api").Subrouter()
	api.Use(s.logMiddleware)
	if opts.Rate > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		s.limiter = NewIPRateLimiter(rate.Limit(opts.Rate), burst)
		api.Use(s.limiter.LimitMiddleware)
	}

	api.HandleFunc("/health", s.health).Methods("GET")
	api.HandleFunc("/column/curve", s.curve).Methods("POST")
	api.HandleFunc("/column/check", s.check).Methods("POST")
	api.HandleFunc("/column/axial", s.axial).Methods("POST")
	api.HandleFunc("/loads", s.loads).Methods("POST")
	api.HandleFunc("/history", s.history).Methods("GET")
	api.HandleFunc("/history/{id}", s.run).Methods("GET")

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", addr, "version", version.Version)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// statusFor maps engine errors to HTTP status codes.
func statusFor(err error) int {
	var (
		cfg *column.ConfigError
		sp  *column.SpacingError
		dom *column.DomainError
	)
	switch {
	case errors.As(err, &cfg), errors.As(err, &sp), errors.As(err, &dom):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
