package http

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"sync"
	"time"

	applog "igreja/internal/log"
	"igreja/internal/metrics"
	"igreja/internal/middleware/ratelimit"
	"igreja/internal/middleware/security"
	"igreja/internal/middleware/trace"
	appweb "igreja/web"
)

// Options tunes the server. The zero value is usable.
type Options struct {
	RateLimitPerMinute int
	Metrics            *metrics.Metrics
	Logger             *applog.Logger
	// Static overrides the embedded front-end.
	Static fs.FS
}

type Server struct {
	http.Server
	registry Registry
	reports  Reports
	metrics  *metrics.Metrics
	limiter  *ratelimit.Limiter

	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(addr string, registry Registry, reports Reports, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}

	limitCfg := ratelimit.DefaultConfig()
	if opts.RateLimitPerMinute > 0 {
		limitCfg.RequestsPerMinute = opts.RateLimitPerMinute
	}

	s := &Server{
		registry: registry,
		reports:  reports,
		metrics:  opts.Metrics,
		limiter:  ratelimit.NewLimiter(limitCfg),
	}

	mux := http.NewServeMux()
	s.registerRecordRoutes(mux)
	s.registerReportRoutes(mux)
	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", s.metrics.Handler())
	mux.Handle("/api/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		NotFoundError("no such endpoint").Write(w)
	}))
	s.mountStatic(mux, opts.Static)

	resolver := security.NewClientIPResolver()
	var handler http.Handler = mux
	handler = s.limiter.Middleware(resolver.ClientIP, s.onRateLimited)(handler)
	handler = security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware(handler)
	handler = trace.NewMiddleware(resolver.ClientIP, logger, s.metrics.ObserveHTTP).Middleware(handler)

	s.Server = http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

func (s *Server) onRateLimited(w http.ResponseWriter, r *http.Request) {
	s.metrics.RateLimited()
	applog.FromContext(r.Context()).WarnContext(r.Context(), "Rate limit exceeded",
		applog.FieldMethod, r.Method, applog.FieldPath, r.URL.Path)
	TooManyRequestsError("rate limit exceeded, please try again later").Write(w)
}

// mountStatic serves the front-end. Unknown paths fall back to index.html so
// client-side routes survive a reload.
func (s *Server) mountStatic(mux *http.ServeMux, static fs.FS) {
	if static == nil {
		sub, err := fs.Sub(appweb.StaticFS, "static")
		if err != nil {
			slog.Warn("Failed to mount embedded static FS", "error", err)
			return
		}
		static = sub
	}

	files := http.FileServer(http.FS(static))
	cached := security.StaticAssetMiddleware(3600)

	mux.Handle("/", cached(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			MethodNotAllowedError("GET, HEAD").Write(w)
			return
		}
		name := strings.TrimPrefix(path.Clean(r.URL.Path), "/")
		if name != "" {
			if info, err := fs.Stat(static, name); err == nil && !info.IsDir() {
				files.ServeHTTP(w, r)
				return
			}
		}

		index, err := fs.ReadFile(static, "index.html")
		if err != nil {
			NotFoundError("front-end not available").Write(w)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache")
		_, _ = w.Write(index)
	})))
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleReady reports 503 while the store cannot be reached.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.registry.Ping(ctx); err != nil {
		applog.FromContext(r.Context()).WarnContext(r.Context(), "Readiness check failed", applog.FieldError, err)
		ErrorResponse(http.StatusServiceUnavailable, "store unavailable").Write(w)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// Shutdown stops the rate limiter janitor and drains the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.limiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// ListenAndServe treats http.ErrServerClosed as a clean stop.
func (s *Server) ListenAndServe() error {
	if err := s.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
