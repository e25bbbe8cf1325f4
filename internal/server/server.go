package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/jonathan/resume-editor/internal/config"
	"github.com/jonathan/resume-editor/internal/keywords"
	"github.com/jonathan/resume-editor/internal/server/ratelimit"
)

// TitleNormalizer maps a free-form job title to standard titles.
type TitleNormalizer interface {
	Normalize(ctx context.Context, title string) ([]string, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer    *http.Server
	handler       http.Handler
	logger        *zap.Logger
	sessions      *sessionStore
	rateLimiter   *ratelimit.Limiter
	titles        TitleNormalizer
	scanOptions   keywords.Options
	batchWorkers  int
	editor        config.EditorConfig
	allowedOrigin string
}

// Config holds server configuration
type Config struct {
	Port          int
	AllowedOrigin string
	SessionTTL    time.Duration
	Editor        config.EditorConfig
	Scan          config.ScanConfig
	RateLimit     *ratelimit.Config // nil disables rate limiting
	Logger        *zap.Logger
	Titles        TitleNormalizer // nil makes /normalize-title answer 503
}

// ConfigFrom builds a server configuration from the application configuration.
func ConfigFrom(cfg config.Config, logger *zap.Logger, titles TitleNormalizer) Config {
	rl := ratelimit.NewConfig(cfg.RateLimit.Limit, cfg.RateLimit.Window.Std(), cfg.RateLimit.Burst, cfg.RateLimit.AllowList)
	rl.Enabled = !cfg.RateLimit.Disabled
	return Config{
		Port:          cfg.Server.Port,
		AllowedOrigin: cfg.Server.AllowedOrigin,
		SessionTTL:    cfg.Server.SessionTTL.Std(),
		Editor:        cfg.Editor,
		Scan:          cfg.Scan,
		RateLimit:     rl,
		Logger:        logger,
		Titles:        titles,
	}
}

// New creates a new server instance
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	workers := cfg.Scan.BatchWorkers
	if workers <= 0 {
		workers = 4
	}
	origin := cfg.AllowedOrigin
	if origin == "" {
		origin = "*"
	}

	s := &Server{
		logger:        logger,
		sessions:      newSessionStore(ttl, cfg.Editor.ScrollDelay.Std(), logger),
		rateLimiter:   ratelimit.NewLimiter(cfg.RateLimit),
		titles:        cfg.Titles,
		scanOptions:   keywords.Options{MaxKeywords: cfg.Scan.MaxKeywords},
		batchWorkers:  workers,
		editor:        cfg.Editor,
		allowedOrigin: origin,
	}

	// Setup router
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /editor", s.handleEditorSettings)

	// Editing sessions
	mux.HandleFunc("POST /sessions", s.handleCreateSession)
	mux.HandleFunc("DELETE /sessions/{id}", s.handleDeleteSession)
	mux.HandleFunc("GET /sessions/{id}/sections", s.handleGetSections)
	mux.HandleFunc("POST /sessions/{id}/sections", s.handleAddSection)
	mux.HandleFunc("PUT /sessions/{id}/sections/{index}", s.handleUpdateSection)
	mux.HandleFunc("POST /sessions/{id}/sections/reorder", s.handleReorderSections)
	mux.HandleFunc("POST /sessions/{id}/sections/{index}/entries", s.handleAddEntry)
	mux.HandleFunc("POST /sessions/{id}/sections/{index}/entries/reorder", s.handleReorderEntries)
	mux.HandleFunc("POST /sessions/{id}/sections/{index}/title", s.handleTitleEdit)
	mux.HandleFunc("POST /sessions/{id}/drag", s.handleDrag)

	// Deletion needs confirmation
	mux.HandleFunc("POST /sessions/{id}/sections/{index}/delete", s.handleDeleteSection)
	mux.HandleFunc("POST /sessions/{id}/sections/{index}/entries/{entry}/delete", s.handleDeleteEntry)
	mux.HandleFunc("POST /sessions/{id}/delete/confirm", s.handleConfirmDelete)
	mux.HandleFunc("POST /sessions/{id}/delete/cancel", s.handleCancelDelete)

	// Keyword scanning and title normalization
	mux.HandleFunc("POST /scan", s.handleScan)
	mux.HandleFunc("POST /scan/batch", s.handleBatchScan)
	mux.HandleFunc("POST /normalize-title", s.handleNormalizeTitle)

	s.handler = s.withRateLimit(s.withLogging(s.withCORS(mux)))
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start begins listening for requests and blocks until SIGINT or SIGTERM.
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		s.rateLimiter.Stop()
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}
	s.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	// Stop rate limiter cleanup goroutine
	s.rateLimiter.Stop()

	s.logger.Info("server stopped")
	return nil
}

// Close releases background resources without serving.
func (s *Server) Close() {
	s.rateLimiter.Stop()
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.allowedOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, clientID, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote_addr", r.RemoteAddr),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.sessions.count(),
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("error encoding JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// errorFor writes err with the status HTTPStatus picks for it. Server errors are logged
// and their details withheld.
func (s *Server) errorFor(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		s.logger.Error("request failed", zap.Error(err))
		if status == http.StatusInternalServerError {
			s.errorResponse(w, status, "internal error")
			return
		}
	}
	s.errorResponse(w, status, err.Error())
}

// maxBodyBytes bounds request bodies. A batch scan carries up to twenty job descriptions.
const maxBodyBytes = 8 << 20

// validationError converts validator failures into an ErrValidation naming the first bad field.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &ErrValidation{Field: fe.Field(), Message: fmt.Sprintf("failed %q check", fe.Tag())}
	}
	return &ErrValidation{Field: "body", Message: err.Error()}
}

// decodeJSON reads the request body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
	}
	return nil
}

// extractClientID extracts the client identifier from the request.
// It uses the IP address from RemoteAddr; proxy headers are not trusted.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, clientID string, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Seconds())
		if seconds < 1 {
			seconds = 1
		}
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", fmt.Sprintf("%d", seconds))
	}

	s.logger.Warn("rate limit exceeded",
		zap.String("client", clientID),
		zap.Int("limit", info.Limit),
		zap.Time("reset", info.ResetTime))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
