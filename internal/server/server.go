package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/halvorboe/concurrentstack/internal/concurrency"
	"github.com/halvorboe/concurrentstack/internal/errors"
	"github.com/halvorboe/concurrentstack/internal/metrics"
)

// Config holds the HTTP stack service configuration.
type Config struct {
	Addr            string
	Capacity        int
	MaxPayloadBytes int
	RequestTimeout  time.Duration
}

// Server exposes a single BoundedStack over HTTP.
//
// The stack core performs no capacity check of its own; the caller must
// keep net pushes within capacity. This layer upholds that contract with
// a token channel sized to the capacity: a push that cannot take a token
// is refused instead of claiming a slot that does not exist.
type Server struct {
	cfg     Config
	logger  zerolog.Logger
	stack   *concurrency.BoundedStack[[]byte]
	tokens  chan struct{}
	router  *chi.Mux
	httpSrv *http.Server
}

// New creates a stack server from the given configuration.
func New(cfg Config, logger zerolog.Logger) (*Server, error) {
	if cfg.Capacity < 1 {
		return nil, errors.NewConfigurationError("server.New", "capacity must be positive").
			WithContext("capacity", cfg.Capacity)
	}
	if cfg.MaxPayloadBytes < 1 {
		return nil, errors.NewConfigurationError("server.New", "max payload size must be positive").
			WithContext("max_payload_bytes", cfg.MaxPayloadBytes)
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}

	s := &Server{
		cfg:    cfg,
		logger: logger,
		stack:  concurrency.NewBoundedStack[[]byte](cfg.Capacity),
		tokens: make(chan struct{}, cfg.Capacity),
		router: chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()

	s.httpSrv = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  cfg.RequestTimeout,
		WriteTimeout: cfg.RequestTimeout,
	}

	metrics.StackCapacity.Set(float64(cfg.Capacity))

	return s, nil
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Timeout(s.cfg.RequestTimeout))
}

func (s *Server) setupRoutes() {
	s.router.Post("/stack", s.handlePush)
	s.router.Delete("/stack", s.handlePop)
	s.router.Get("/stack", s.handleDepth)
	s.router.Get("/healthz", s.handleHealth)
}

// Handler returns the configured HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on the configured address and serves until Shutdown is
// called or the listener fails.
func (s *Server) Start() error {
	s.logger.Info().
		Str("addr", s.cfg.Addr).
		Int("capacity", s.cfg.Capacity).
		Msg("stack server listening")

	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return errors.WrapNetworkError(err, "server.Start", "listener failed")
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("stack server shutting down")
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) handlePush(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer func() {
		metrics.OperationDurationSeconds.WithLabelValues("push").Observe(time.Since(start).Seconds())
	}()

	body, err := io.ReadAll(io.LimitReader(r.Body, int64(s.cfg.MaxPayloadBytes)+1))
	if err != nil {
		metrics.PushesTotal.WithLabelValues("rejected").Inc()
		s.writeError(w, http.StatusBadRequest,
			errors.Wrap(err, errors.ErrorTypeValidation, "push", "failed to read payload"))
		return
	}
	if len(body) == 0 {
		metrics.PushesTotal.WithLabelValues("rejected").Inc()
		s.writeError(w, http.StatusBadRequest,
			errors.NewValidationError("push", "payload is empty"))
		return
	}
	if len(body) > s.cfg.MaxPayloadBytes {
		metrics.PushesTotal.WithLabelValues("rejected").Inc()
		s.writeError(w, http.StatusRequestEntityTooLarge,
			errors.NewValidationError("push", "payload exceeds limit").
				WithContext("limit", s.cfg.MaxPayloadBytes))
		return
	}

	// Claim a capacity token before touching the stack. The stack has no
	// bound check on its claim path, so the push must not proceed
	// without one.
	select {
	case s.tokens <- struct{}{}:
	default:
		metrics.PushesTotal.WithLabelValues("full").Inc()
		s.writeError(w, http.StatusConflict,
			errors.NewCapacityError("push", "stack is full").
				WithContext("capacity", s.cfg.Capacity))
		return
	}

	s.stack.Push(body)

	metrics.PushesTotal.WithLabelValues("ok").Inc()
	metrics.PayloadBytesTotal.WithLabelValues("push").Add(float64(len(body)))
	metrics.StackDepth.Set(float64(s.stack.Len()))

	w.WriteHeader(http.StatusCreated)
}

func (s *Server) handlePop(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer func() {
		metrics.OperationDurationSeconds.WithLabelValues("pop").Observe(time.Since(start).Seconds())
	}()

	value, ok := s.stack.Pop()
	if !ok {
		metrics.PopsTotal.WithLabelValues("empty").Inc()
		w.WriteHeader(http.StatusNoContent)
		return
	}

	// Every popped value was preceded by a token deposit, so this
	// receive cannot block.
	<-s.tokens

	metrics.PopsTotal.WithLabelValues("ok").Inc()
	metrics.PayloadBytesTotal.WithLabelValues("pop").Add(float64(len(value)))
	metrics.StackDepth.Set(float64(s.stack.Len()))

	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(http.StatusOK)
	w.Write(value) //nolint:errcheck // best effort once headers are sent
}

func (s *Server) handleDepth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"depth":    s.stack.Len(),
		"capacity": s.stack.Cap(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error().Err(err).Msg("failed to encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err *errors.StructuredError) {
	s.logger.Warn().
		Str("type", string(err.Type)).
		Str("operation", err.Operation).
		Err(err).
		Msg("request failed")

	s.writeJSON(w, status, map[string]any{
		"error": err.Message,
		"type":  string(err.Type),
	})
}

// requestLogger logs one line per request through the configured logger.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("request")
	})
}
