package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/aretw0/paramspec"
	"github.com/aretw0/paramspec/pkg/catalog"
	"github.com/aretw0/paramspec/pkg/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Verdict is the structured result of the validate_payload tool.
type Verdict struct {
	Schema  string `json:"schema" jsonschema_description:"Name of the schema the payload was checked against"`
	Status  int    `json:"status" jsonschema_description:"200 when accepted, 400 for client errors, 500 for server-side errors"`
	Code    string `json:"code" jsonschema_description:"OK or the diagnostic code"`
	Key     string `json:"key,omitempty" jsonschema_description:"The offending parameter, if any"`
	Message string `json:"message,omitempty" jsonschema_description:"Human readable diagnostic"`
}

// SchemaInfo describes one catalog entry for list_schemas.
type SchemaInfo struct {
	Name       string   `json:"name"`
	Parameters []string `json:"parameters"`
}

// SchemaList is the structured result of the list_schemas tool.
type SchemaList struct {
	Schemas []SchemaInfo `json:"schemas" jsonschema_description:"Registered schemas with their parameter rules"`
}

// Server exposes a catalog as an MCP Server.
type Server struct {
	catalog   *catalog.Catalog
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(c *catalog.Catalog, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		catalog:   c,
		logger:    logger,
		mcpServer: server.NewMCPServer("paramspec-mcp", strings.TrimSpace(paramspec.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops it when
// ctx is cancelled.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)

	lifecycle.Go(ctx, func(ctx context.Context) error {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
		return nil
	})

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: list_schemas
	s.mcpServer.AddTool(mcp.NewTool("list_schemas",
		mcp.WithDescription("List the registered schemas and their parameter rules."),
		mcp.WithOutputSchema[SchemaList](),
	), mcp.NewStructuredToolHandler(s.handleListSchemas))

	// TOOL: validate_payload
	s.mcpServer.AddTool(mcp.NewTool("validate_payload",
		mcp.WithDescription("Validate a JSON object against a registered schema and report the verdict."),
		mcp.WithString("schema", mcp.Required(), mcp.Description("Name of a registered schema")),
		mcp.WithString("payload", mcp.Required(), mcp.Description("The payload as a JSON object string")),
		mcp.WithOutputSchema[Verdict](),
	), mcp.NewStructuredToolHandler(s.handleValidate))
}

func (s *Server) handleListSchemas(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (SchemaList, error) {
	return s.listSchemas(), nil
}

func (s *Server) listSchemas() SchemaList {
	out := SchemaList{Schemas: []SchemaInfo{}}
	for _, name := range s.catalog.Names() {
		sc, err := s.catalog.Lookup(name)
		if err != nil {
			continue
		}
		info := SchemaInfo{Name: name, Parameters: make([]string, 0, sc.Len())}
		for _, c := range sc.Constraints() {
			info.Parameters = append(info.Parameters, c.String())
		}
		out.Schemas = append(out.Schemas, info)
	}
	return out
}

func (s *Server) handleValidate(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (Verdict, error) {
	name, _ := args["schema"].(string)
	raw, _ := args["payload"].(string)
	return s.validate(ctx, name, raw)
}

// validate returns a Verdict for every data outcome. Errors are reserved for
// unknown schemas and payloads that do not cover the schema.
func (s *Server) validate(ctx context.Context, name, raw string) (Verdict, error) {
	if name == "" {
		return Verdict{}, errors.New("schema is required")
	}

	p, err := schema.DecodeJSON(strings.NewReader(raw))
	if err != nil {
		s.logger.Debug("MCP validate: payload is not a JSON object", "schema", name, "error", err)
		return Verdict{
			Schema:  name,
			Status:  schema.StatusBadRequest,
			Code:    string(schema.CodeMissingJSONBody),
			Message: schema.MsgMissingJSONBody,
		}, nil
	}

	res, err := s.catalog.Validate(ctx, name, p)
	if err != nil {
		if errors.Is(err, catalog.ErrSchemaNotFound) {
			return Verdict{}, err
		}
		s.logger.Error("MCP validate: setup error", "schema", name, "error", err)
		return Verdict{}, fmt.Errorf("validate failed: %w", err)
	}

	v := Verdict{Schema: name, Status: res.StatusCode(), Code: "OK"}
	if f, failed := res.Failure(); failed {
		v.Code = string(f.Code)
		v.Key = f.Key
		v.Message = f.Message
	}
	return v, nil
}

func (s *Server) registerResources() {
	// EXPOSE: paramspec://schemas
	s.mcpServer.AddResource(mcp.NewResource("paramspec://schemas", "Registered Schemas",
		mcp.WithMIMEType("text/plain"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		var sb strings.Builder
		for _, info := range s.listSchemas().Schemas {
			fmt.Fprintf(&sb, "%s\n", info.Name)
			for _, p := range info.Parameters {
				fmt.Fprintf(&sb, "  %s\n", p)
			}
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "paramspec://schemas",
				MIMEType: "text/plain",
				Text:     sb.String(),
			},
		}, nil
	})
}
