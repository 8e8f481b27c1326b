package http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/aretw0/paramspec/pkg/schema"
	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Verdict is the JSON body written for every validation outcome.
type Verdict struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Key     string `json:"key,omitempty"`
	Message string `json:"message,omitempty"`
}

func okVerdict() Verdict {
	return Verdict{Status: schema.StatusOK, Code: "OK"}
}

// VerdictOf converts a result into its JSON verdict.
func VerdictOf(res schema.Result) Verdict {
	f, failed := res.Failure()
	if !failed {
		return okVerdict()
	}
	return Verdict{Status: f.Status, Code: string(f.Code), Key: f.Key, Message: f.Message}
}

type validateFunc func(ctx context.Context, p *schema.Payload) (schema.Result, error)

type payloadKey struct{}

// Middleware guards the wrapped handler with s. Requests without a JSON
// object body get 400 MISSING_JSON_BODY, payloads that fail validation get
// the result status with a Verdict body, and payloads that do not cover s
// get 500. Accepted payloads are available to next via PayloadFrom.
func Middleware(s *schema.Schema, opts ...Option) func(http.Handler) http.Handler {
	o := newOptions(opts)
	validate := func(_ context.Context, p *schema.Payload) (schema.Result, error) {
		return s.Validate(p)
	}
	return func(next http.Handler) http.Handler {
		return guard("", validate, o, next)
	}
}

func guard(name string, validate validateFunc, o *options, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attrs := []attribute.KeyValue{attribute.String("http.route", r.URL.Path)}
		if name != "" {
			attrs = append(attrs, attribute.String("paramspec.schema", name))
		}
		ctx, span := o.tracer.Start(r.Context(), "paramspec.validate",
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(attrs...),
		)
		defer span.End()

		p, err := readPayload(w, r, o.maxBytes)
		if err != nil {
			o.logger.Debug("request without JSON object", "schema", name, "error", err)
			span.SetAttributes(attribute.String("paramspec.code", string(schema.CodeMissingJSONBody)))
			span.SetStatus(codes.Error, string(schema.CodeMissingJSONBody))
			writeJSON(w, http.StatusBadRequest, Verdict{
				Status:  schema.StatusBadRequest,
				Code:    string(schema.CodeMissingJSONBody),
				Message: schema.MsgMissingJSONBody,
			}, o.logger)
			return
		}

		res, err := validate(ctx, p)
		if err != nil {
			o.logger.Error("validation setup error", "schema", name, "error", err)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			writeJSON(w, http.StatusInternalServerError, Verdict{
				Status:  schema.StatusInternalError,
				Code:    string(schema.CodeMissingValidation),
				Message: err.Error(),
			}, o.logger)
			return
		}

		span.SetAttributes(attribute.Int("paramspec.status", res.StatusCode()))
		if !res.OK() {
			span.SetAttributes(attribute.String("paramspec.code", string(res.Code())))
			span.SetStatus(codes.Error, string(res.Code()))
			writeJSON(w, res.StatusCode(), VerdictOf(res), o.logger)
			return
		}
		span.SetStatus(codes.Ok, "")

		next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, payloadKey{}, p)))
	})
}

var errEmptyBody = errors.New("empty request body")

func readPayload(w http.ResponseWriter, r *http.Request, limit int64) (*schema.Payload, error) {
	if r.Body == nil {
		return nil, errEmptyBody
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, errEmptyBody
	}
	return schema.DecodeJSON(bytes.NewReader(body))
}

// PayloadFrom returns the payload accepted by Middleware.
func PayloadFrom(ctx context.Context) (*schema.Payload, bool) {
	p, ok := ctx.Value(payloadKey{}).(*schema.Payload)
	return p, ok
}

// Bind decodes the accepted payload into out, a pointer to a struct or map.
// Struct fields are matched by their json tag.
func Bind(ctx context.Context, out any) error {
	p, ok := PayloadFrom(ctx)
	if !ok {
		return errors.New("http: no validated payload in context")
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  out,
	})
	if err != nil {
		return fmt.Errorf("http: bind: %w", err)
	}
	if err := dec.Decode(p.Map()); err != nil {
		return fmt.Errorf("http: bind: %w", err)
	}
	return nil
}

func newRequestID() string {
	return uuid.NewString()
}
