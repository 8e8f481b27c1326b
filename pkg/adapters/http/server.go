package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/aretw0/paramspec"
	"github.com/aretw0/paramspec/internal/logging"
	"github.com/aretw0/paramspec/pkg/catalog"
	"github.com/aretw0/paramspec/pkg/observability"
	"github.com/aretw0/paramspec/pkg/ports"
	"github.com/aretw0/paramspec/pkg/schema"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/aretw0/paramspec/pkg/adapters/http"

// Option configures the handler and the validation middleware.
type Option func(*options)

type options struct {
	journal  ports.FailureJournal
	metrics  http.Handler
	logger   *slog.Logger
	tracer   trace.Tracer
	maxBytes int64
}

func newOptions(opts []Option) *options {
	o := &options{
		logger:   logging.NewNop(),
		maxBytes: 1 << 20,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.tracer == nil {
		o.tracer = otel.Tracer(tracerName)
	}
	return o
}

// WithJournal serves GET /schemas/{name}/failures from journal.
func WithJournal(journal ports.FailureJournal) Option {
	return func(o *options) {
		o.journal = journal
	}
}

// WithMetricsHandler mounts h on GET /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(o *options) {
		o.metrics = h
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithTracer overrides the tracer taken from the global otel provider.
func WithTracer(tracer trace.Tracer) Option {
	return func(o *options) {
		o.tracer = tracer
	}
}

// WithMaxBodyBytes limits the size of request bodies. Default 1 MiB.
func WithMaxBodyBytes(n int64) Option {
	return func(o *options) {
		o.maxBytes = n
	}
}

// Server serves a catalog over HTTP.
type Server struct {
	Catalog *catalog.Catalog
	opts    *options
}

// NewHandler creates a new HTTP handler for the catalog.
func NewHandler(c *catalog.Catalog, opts ...Option) http.Handler {
	s := &Server{Catalog: c, opts: newOptions(opts)}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestID)
	r.Use(enableCORS)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/schemas", s.ListSchemas)
	r.Get("/schemas/{name}", s.GetSchema)
	r.Get("/schemas/{name}/failures", s.ListFailures)
	r.With(s.validateNamed).Post("/validate/{name}", s.Accepted)
	if s.opts.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.opts.metrics)
	}
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, s.opts.logger)
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":     "paramspec-http",
		"version": strings.TrimSpace(paramspec.Version),
	}, s.opts.logger)
}

// SchemaSummary is one entry of GET /schemas.
type SchemaSummary struct {
	Name       string `json:"name"`
	Parameters int    `json:"parameters"`
}

// ListSchemas handles the GET /schemas request.
func (s *Server) ListSchemas(w http.ResponseWriter, r *http.Request) {
	names := s.Catalog.Names()
	resp := make([]SchemaSummary, 0, len(names))
	for _, name := range names {
		sc, err := s.Catalog.Lookup(name)
		if err != nil {
			continue
		}
		resp = append(resp, SchemaSummary{Name: name, Parameters: sc.Len()})
	}
	writeJSON(w, http.StatusOK, resp, s.opts.logger)
}

// SchemaDetail is the response of GET /schemas/{name}.
type SchemaDetail struct {
	Name       string   `json:"name"`
	Parameters []string `json:"parameters"`
}

// GetSchema handles the GET /schemas/{name} request.
func (s *Server) GetSchema(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	sc, err := s.Catalog.Lookup(name)
	if err != nil {
		writeError(w, http.StatusNotFound, err, s.opts.logger)
		return
	}

	detail := SchemaDetail{Name: name, Parameters: make([]string, 0, sc.Len())}
	for _, c := range sc.Constraints() {
		detail.Parameters = append(detail.Parameters, c.String())
	}
	writeJSON(w, http.StatusOK, detail, s.opts.logger)
}

// ListFailures handles the GET /schemas/{name}/failures request.
func (s *Server) ListFailures(w http.ResponseWriter, r *http.Request) {
	if s.opts.journal == nil {
		writeError(w, http.StatusNotFound, errors.New("failure journal is not configured"), s.opts.logger)
		return
	}

	name := chi.URLParam(r, "name")
	if _, err := s.Catalog.Lookup(name); err != nil {
		writeError(w, http.StatusNotFound, err, s.opts.logger)
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, errors.New("limit must be an integer"), s.opts.logger)
			return
		}
		limit = n
	}

	records, err := s.opts.journal.Recent(r.Context(), name, limit)
	if err != nil {
		s.opts.logger.Error("ListFailures: journal read failed", "schema", name, "error", err)
		writeError(w, http.StatusInternalServerError, err, s.opts.logger)
		return
	}
	if records == nil {
		records = []ports.FailureRecord{}
	}
	writeJSON(w, http.StatusOK, records, s.opts.logger)
}

// Accepted answers a payload that passed validation.
func (s *Server) Accepted(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, okVerdict(), s.opts.logger)
}

// validateNamed runs the catalog schema selected by the {name} URL parameter.
func (s *Server) validateNamed(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		if _, err := s.Catalog.Lookup(name); err != nil {
			writeError(w, http.StatusNotFound, err, s.opts.logger)
			return
		}
		validate := func(ctx context.Context, p *schema.Payload) (schema.Result, error) {
			return s.Catalog.Validate(ctx, name, p)
		}
		guard(name, validate, s.opts, next).ServeHTTP(w, r)
	})
}

// RequestIDHeader carries the caller's request identifier.
const RequestIDHeader = "X-Request-ID"

// requestID takes X-Request-ID from the request, or generates one, and puts
// it in the context for the observability hooks.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = newRequestID()
		}
		w.Header().Set(RequestIDHeader, id)
		ctx := observability.WithRequestID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("response encode failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error, logger *slog.Logger) {
	writeJSON(w, status, map[string]string{"error": err.Error()}, logger)
}
