// Package server exposes the formatting pipeline over HTTP.
//
// # Routes
//
//	POST /v1/format?language=json          format the request body
//	POST /v1/format?filename=Cargo.toml    detect the language from a name
//	GET  /v1/languages                     list supported languages
//	GET  /healthz                          liveness probe
//
// /v1/format accepts print_width and tab_width query parameters and
// answers with the formatted text. The X-Prettify-Cache header reports
// "hit" or "miss". Errors are JSON objects with a code and a message:
//
//	{"code": "INVALID_DOCUMENT", "message": "invalid document: 1:2: ..."}
//
// Every response carries an X-Request-ID header, taken from the request
// when it holds a valid UUID and generated otherwise.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/prettify/pkg/errors"
	"github.com/matzehuels/prettify/pkg/lang/languages"
	"github.com/matzehuels/prettify/pkg/observability"
	"github.com/matzehuels/prettify/pkg/pipeline"
)

// =============================================================================
// Defaults
// =============================================================================

const (
	// DefaultMaxBodyBytes bounds request bodies.
	DefaultMaxBodyBytes = 4 << 20

	// DefaultRequestTimeout bounds the time spent on one request.
	DefaultRequestTimeout = 30 * time.Second

	// RequestIDHeader carries the request ID in both directions.
	RequestIDHeader = "X-Request-ID"

	// CacheHeader reports whether the response came from the cache.
	CacheHeader = "X-Prettify-Cache"

	// LanguageHeader reports the language used.
	LanguageHeader = "X-Prettify-Language"
)

// =============================================================================
// Server
// =============================================================================

// Server serves the format API.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	router chi.Router

	// MaxBodyBytes bounds request bodies; zero uses DefaultMaxBodyBytes.
	MaxBodyBytes int64
}

// New creates a server that formats with runner.
func New(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{runner: runner, logger: logger}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(DefaultRequestTimeout))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/languages", s.handleLanguages)
		r.Post("/format", s.handleFormat)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok\n"))
}

type languageInfo struct {
	Name       string   `json:"name"`
	Extensions []string `json:"extensions"`
	Aliases    []string `json:"aliases,omitempty"`
}

func (s *Server) handleLanguages(w http.ResponseWriter, r *http.Request) {
	infos := make([]languageInfo, len(languages.All))
	for i, l := range languages.All {
		infos[i] = languageInfo{Name: l.Name, Extensions: l.Extensions, Aliases: l.Aliases}
	}
	writeJSON(w, http.StatusOK, infos)
}

func (s *Server) handleFormat(w http.ResponseWriter, r *http.Request) {
	opts, err := formatOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Logger = loggerFrom(r.Context(), s.logger)

	limit := s.MaxBodyBytes
	if limit <= 0 {
		limit = DefaultMaxBodyBytes
	}
	src, err := readBody(w, r, limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.runner.Format(r.Context(), src, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	cacheState := "miss"
	if res.CacheHit {
		cacheState = "hit"
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set(CacheHeader, cacheState)
	w.Header().Set(LanguageHeader, res.Language)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(res.Formatted))
}

func formatOptions(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{
		Language: q.Get("language"),
		Filename: q.Get("filename"),
		Refresh:  q.Get("refresh") == "true",
	}
	if opts.Filename != "" {
		if err := errors.ValidateFilename(opts.Filename); err != nil {
			return opts, err
		}
	}
	var err error
	if opts.PrintWidth, err = intParam(q.Get("print_width"), "print_width"); err != nil {
		return opts, err
	}
	if opts.TabWidth, err = intParam(q.Get("tab_width"), "tab_width"); err != nil {
		return opts, err
	}
	return opts, nil
}

func intParam(v, name string) (int, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "%s must be an integer, got %q", name, v)
	}
	return n, nil
}

// =============================================================================
// Responses
// =============================================================================

type errorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// statusFor maps an error code to an HTTP status.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidDocument, errors.ErrCodeInvalidConfig:
		return http.StatusBadRequest
	case errors.ErrCodeUnsupportedLanguage:
		return http.StatusUnsupportedMediaType
	case errors.ErrCodeTooLarge:
		return http.StatusRequestEntityTooLarge
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := errors.GetCode(err)
	msg := errors.UserMessage(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	if status == http.StatusInternalServerError {
		loggerFrom(r.Context(), s.logger).Error("format failed", "err", err)
		msg = "internal error"
	}
	writeJSON(w, status, errorResponse{
		Code:      string(code),
		Message:   msg,
		RequestID: w.Header().Get(RequestIDHeader),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// =============================================================================
// Middleware
// =============================================================================

type ctxKey int

const loggerKey ctxKey = 0

func loggerFrom(ctx context.Context, fallback *log.Logger) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return fallback
}

// requestID propagates a valid incoming X-Request-ID or assigns a new one.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		r.Header.Set(RequestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

// logRequests attaches a request-scoped logger and reports each request to
// the logger and the server hooks.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := r.Header.Get(RequestIDHeader)
		logger := s.logger.With("request", id)
		ctx := context.WithValue(r.Context(), loggerKey, logger)

		hooks := observability.Server()
		hooks.OnRequest(ctx, r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(ctx))

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		hooks.OnResponse(ctx, r.Method, r.URL.Path, status, elapsed)
		logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", elapsed)
	})
}
