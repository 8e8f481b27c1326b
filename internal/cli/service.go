package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/aretw0/paramspec/internal/builtin"
	"github.com/aretw0/paramspec/internal/config"
	httpAdapter "github.com/aretw0/paramspec/pkg/adapters/http"
	"github.com/aretw0/paramspec/pkg/adapters/memory"
	"github.com/aretw0/paramspec/pkg/adapters/redis"
	"github.com/aretw0/paramspec/pkg/catalog"
	"github.com/aretw0/paramspec/pkg/observability"
	"github.com/aretw0/paramspec/pkg/persistence/middleware"
	"github.com/aretw0/paramspec/pkg/ports"
)

// Service is the wired catalog with its journal, metrics and tracing.
type Service struct {
	Catalog *catalog.Catalog
	Journal ports.FailureJournal
	Metrics *observability.Metrics
	Tracing *observability.TracerProvider

	cfg     config.Config
	logger  *slog.Logger
	closers []func(context.Context) error
}

// NewService builds the built-in catalog and attaches the observability
// stack selected by cfg.
func NewService(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Service, error) {
	s := &Service{cfg: cfg, logger: logger}

	tp, err := observability.NewTracerProvider(ctx, cfg.Tracing)
	if err != nil {
		return nil, fmt.Errorf("tracing: %w", err)
	}
	s.Tracing = tp
	s.closers = append(s.closers, tp.Shutdown)

	journal, err := s.openJournal(ctx)
	if err != nil {
		_ = s.Close(ctx)
		return nil, err
	}
	if journal != nil && len(cfg.Journal.Redact) > 0 {
		redact, err := middleware.NewRedactMiddleware(cfg.Journal.Redact)
		if err != nil {
			_ = s.Close(ctx)
			return nil, fmt.Errorf("journal: %w", err)
		}
		journal = middleware.Chain(journal, redact)
	}
	s.Journal = journal

	hooks := []observability.Hooks{observability.LoggingHooks(logger)}
	if cfg.Metrics.Enabled {
		s.Metrics = observability.NewMetrics(cfg.Metrics.Namespace, nil)
		hooks = append(hooks, s.Metrics.Hooks())
	}
	if journal != nil {
		hooks = append(hooks, observability.JournalHooks(journal, logger))
	}

	s.Catalog = catalog.New(
		catalog.WithLogger(logger),
		catalog.WithHooks(observability.Compose(hooks...)),
	)
	if err := builtin.Register(s.Catalog, cfg.Validation); err != nil {
		_ = s.Close(ctx)
		return nil, err
	}
	return s, nil
}

func (s *Service) openJournal(ctx context.Context) (ports.FailureJournal, error) {
	jc := s.cfg.Journal
	switch jc.Backend {
	case "memory":
		return memory.NewJournal(memory.WithTTL(jc.TTL)), nil
	case "redis":
		j := redis.New(jc.Redis.Addr, jc.Redis.Password, jc.Redis.DB,
			redis.WithTTL(jc.TTL),
			redis.WithPrefix(jc.Redis.Prefix),
			redis.WithMaxLen(jc.Redis.MaxLen),
		)
		if err := j.Ping(ctx); err != nil {
			_ = j.Close()
			return nil, fmt.Errorf("journal: %w", err)
		}
		s.closers = append(s.closers, func(context.Context) error { return j.Close() })
		return j, nil
	case "none", "":
		return nil, nil
	default:
		return nil, fmt.Errorf("journal: unknown backend %q", jc.Backend)
	}
}

// Handler returns the HTTP API for the service.
func (s *Service) Handler() http.Handler {
	opts := []httpAdapter.Option{
		httpAdapter.WithLogger(s.logger),
		httpAdapter.WithTracer(s.Tracing.Tracer()),
		httpAdapter.WithMaxBodyBytes(s.cfg.Server.MaxBodyBytes),
	}
	if s.Journal != nil {
		opts = append(opts, httpAdapter.WithJournal(s.Journal))
	}
	if s.Metrics != nil {
		opts = append(opts, httpAdapter.WithMetricsHandler(s.Metrics.Handler()))
	}
	return httpAdapter.NewHandler(s.Catalog, opts...)
}

// Close releases the journal connection and flushes spans.
func (s *Service) Close(ctx context.Context) error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		errs = append(errs, s.closers[i](ctx))
	}
	s.closers = nil
	return errors.Join(errs...)
}

// Serve runs the HTTP API until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, s *Service, out io.Writer) error {
	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(s.cfg.Server.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)

	fmt.Fprintf(out, "Starting paramspec server on %s\n", srv.Addr)
	fmt.Fprintf(out, "Schemas: %v\n", s.Catalog.Names())
	go func() {
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		fmt.Fprintln(out, "\nStart shutdown...")

		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("graceful shutdown did not complete", "timeout", s.cfg.Server.ShutdownTimeout, "error", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("killing server: %w", err)
			}
		}
		fmt.Fprintln(out, "paramspec server stopped gracefully")
		return nil
	}
}
