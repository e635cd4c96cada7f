// Package api translates HTTP requests into cache calls.
//
//	GET  /{key}        200 value | 404 "Key not found"
//	PUT  /{key}        200 "OK"  (body is the value)
//	GET  /debug/healthz  200 "ALIVE"
//	GET  /debug/metrics  Prometheus exposition, when a handler is supplied
//	GET  /debug/cache    recency chain rendering, when enabled
//
// Keys are single path segments, percent-decoded. Service routes live under
// /debug/, which a single-segment key never matches, so every key name is
// available to the cache.
package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/IvanBrykalov/minicache/cache"
	"github.com/IvanBrykalov/minicache/internal/logger"
)

// NotFoundBody is the payload returned with 404 on a miss.
const NotFoundBody = "Key not found"

// DefaultMaxValueBytes caps PUT bodies when no limit is configured.
const DefaultMaxValueBytes = 1 << 20

type config struct {
	maxValueBytes int64
	debug         bool
	metrics       http.Handler
}

// Option configures the router.
type Option func(*config)

// WithMaxValueBytes limits the size of a PUT body. Non-positive values are ignored.
func WithMaxValueBytes(n int64) Option {
	return func(c *config) {
		if n > 0 {
			c.maxValueBytes = n
		}
	}
}

// WithDebugEndpoint mounts GET /debug/cache.
func WithDebugEndpoint(enabled bool) Option {
	return func(c *config) { c.debug = enabled }
}

// WithMetricsHandler mounts h at GET /debug/metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(c *config) { c.metrics = h }
}

type handler struct {
	store cache.Store
	log   *slog.Logger
	cfg   config
}

// NewRouter builds the HTTP surface over store.
func NewRouter(store cache.Store, log *slog.Logger, opts ...Option) http.Handler {
	cfg := config{maxValueBytes: DefaultMaxValueBytes}
	for _, opt := range opts {
		opt(&cfg)
	}
	if log == nil {
		log = logger.Discard()
	}
	h := &handler{store: store, log: log, cfg: cfg}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(h.accessLog)
	r.Use(middleware.Recoverer)

	r.Get("/debug/healthz", h.health)
	if cfg.metrics != nil {
		r.Method(http.MethodGet, "/debug/metrics", cfg.metrics)
	}
	if cfg.debug {
		r.Get("/debug/cache", h.debug)
	}
	r.Get("/{key}", h.get)
	r.Put("/{key}", h.put)
	return r
}

func (h *handler) get(w http.ResponseWriter, r *http.Request) {
	key, ok := h.key(w, r)
	if !ok {
		return
	}
	val, found, err := h.store.Get(key)
	if err != nil {
		h.storeError(w, r, err)
		return
	}
	if !found {
		writeText(w, http.StatusNotFound, NotFoundBody)
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(val)
}

func (h *handler) put(w http.ResponseWriter, r *http.Request) {
	key, ok := h.key(w, r)
	if !ok {
		return
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.cfg.maxValueBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeText(w, http.StatusRequestEntityTooLarge, "value too large")
			return
		}
		writeText(w, http.StatusBadRequest, "cannot read body")
		return
	}
	if err := h.store.Push(key, body); err != nil {
		h.storeError(w, r, err)
		return
	}
	writeText(w, http.StatusOK, "OK")
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	writeText(w, http.StatusOK, "ALIVE")
}

func (h *handler) debug(w http.ResponseWriter, _ *http.Request) {
	writeText(w, http.StatusOK, h.store.String())
}

// key extracts the {key} segment. chi matches against RawPath when the
// request carries encoded characters, so only then is the segment decoded.
func (h *handler) key(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	k := chi.URLParam(r, "key")
	var err error
	if r.URL.RawPath != "" {
		k, err = url.PathUnescape(k)
	}
	if err != nil || k == "" {
		writeText(w, http.StatusBadRequest, "invalid key")
		return nil, false
	}
	return []byte(k), true
}

func (h *handler) storeError(w http.ResponseWriter, r *http.Request, err error) {
	h.log.ErrorContext(r.Context(), "cache operation failed",
		logger.Error(err),
		slog.String("request_id", RequestIDFromContext(r.Context())),
	)
	if errors.Is(err, cache.ErrPoisoned) {
		writeText(w, http.StatusServiceUnavailable, "cache unavailable")
		return
	}
	writeText(w, http.StatusInternalServerError, "internal error")
}

func (h *handler) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		h.log.DebugContext(r.Context(), "request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Int("bytes", ww.BytesWritten()),
			slog.Duration("duration", time.Since(start)),
			slog.String("request_id", RequestIDFromContext(r.Context())),
		)
	})
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}
