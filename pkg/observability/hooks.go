package observability

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/paramspec/pkg/schema"
)

// ValidationEvent describes one completed validation.
type ValidationEvent struct {
	Schema    string
	RequestID string
	Result    schema.Result
	Err       error // set when the payload did not cover the schema
	Duration  time.Duration
	At        time.Time
}

// Label returns the outcome label used by logs and metrics: the diagnostic
// code, MISSING_VALIDATION for setup errors, or OK.
func (e *ValidationEvent) Label() string {
	switch {
	case e.Err != nil:
		return string(schema.CodeMissingValidation)
	case e.Result.OK():
		return "OK"
	default:
		return string(e.Result.Code())
	}
}

// Hooks are callbacks fired by the catalog.
type Hooks struct {
	OnValidated func(ctx context.Context, e *ValidationEvent)
}

// Compose merges several hook sets; callbacks run in the given order.
func Compose(hooks ...Hooks) Hooks {
	return Hooks{
		OnValidated: func(ctx context.Context, e *ValidationEvent) {
			for _, h := range hooks {
				if h.OnValidated != nil {
					h.OnValidated(ctx, e)
				}
			}
		},
	}
}

// LoggingHooks logs each outcome: passes at debug, rejections at info and
// setup errors at error level.
func LoggingHooks(logger *slog.Logger) Hooks {
	return Hooks{
		OnValidated: func(ctx context.Context, e *ValidationEvent) {
			attrs := []any{
				"schema", e.Schema,
				"status", e.Result.StatusCode(),
				"code", e.Label(),
				"duration", e.Duration,
			}
			if e.RequestID != "" {
				attrs = append(attrs, "request_id", e.RequestID)
			}

			switch {
			case e.Err != nil:
				logger.ErrorContext(ctx, "validation setup error", append(attrs, "error", e.Err)...)
			case e.Result.OK():
				logger.DebugContext(ctx, "payload accepted", attrs...)
			default:
				logger.InfoContext(ctx, "payload rejected", append(attrs, "message", e.Result.Message())...)
			}
		},
	}
}

type requestIDKey struct{}

// WithRequestID attaches a request identifier that hooks report.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFrom returns the identifier set by WithRequestID.
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
