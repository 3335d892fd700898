package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/scenarist"
	"github.com/aretw0/scenarist/internal/logging"
	"github.com/aretw0/scenarist/pkg/domain"
	"github.com/aretw0/scenarist/pkg/jsonfield"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// TemplatesURI is the resource listing every step template.
const TemplatesURI = "scenarist://templates"

// TemplateResult describes one step template.
type TemplateResult struct {
	StepType    string `json:"step_type" jsonschema_description:"Step type identifier"`
	Label       string `json:"label" jsonschema_description:"Display name in the admin"`
	Description string `json:"description" jsonschema_description:"What the step does"`
	Document    string `json:"document" jsonschema_description:"Template data as written into the data field"`
}

// GuardResult is the template guard decision for a data field.
type GuardResult struct {
	IsTemplate   bool `json:"is_template" jsonschema_description:"The text still holds an untouched template"`
	Overwritable bool `json:"overwritable" jsonschema_description:"Selecting a step type may replace the text"`
}

// ValidateResult is the validity indicator of a data field.
type ValidateResult struct {
	Validity  string `json:"validity" jsonschema_description:"neutral, valid or malformed"`
	Indicator string `json:"indicator" jsonschema_description:"Border colour shown in the admin, empty for neutral"`
}

// OrderResult is the next order proposed for a scenario.
type OrderResult struct {
	ScenarioID string `json:"scenario_id"`
	Order      int    `json:"order"`
}

type stepTypeArgs struct {
	StepType string `json:"step_type"`
}

type dataArgs struct {
	Data string `json:"data"`
}

type scenarioArgs struct {
	ScenarioID string `json:"scenario_id"`
}

type cleanArgs struct {
	StepType   string
	Data       string
	ScenarioID string
	StepID     string
	Order      int
}

// Server exposes the authoring helpers as MCP tools.
type Server struct {
	auth      *scenarist.Authoring
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

type Option func(*Server)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(auth *scenarist.Authoring, opts ...Option) *Server {
	s := &Server{
		auth:      auth,
		mcpServer: server.NewMCPServer("scenarist-mcp", strings.TrimSpace(scenarist.Version)),
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE. It returns when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, shutting down MCP server")
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
	s.mcpServer.AddTool(mcp.NewTool("list_step_types",
		mcp.WithDescription("List the step types a scenario step can have."),
	), s.handleListStepTypes)

	s.mcpServer.AddTool(mcp.NewTool("get_template",
		mcp.WithDescription("Get the starter data document of a step type."),
		mcp.WithString("step_type", mcp.Required(), mcp.Description("One of message, gpt_request, input, condition, end")),
		mcp.WithOutputSchema[TemplateResult](),
	), mcp.NewStructuredToolHandler(s.handleGetTemplate))

	s.mcpServer.AddTool(mcp.NewTool("is_template",
		mcp.WithDescription("Check whether step data still holds an untouched template and may be replaced."),
		mcp.WithString("data", mcp.Required(), mcp.Description("Current text of the step data field")),
		mcp.WithOutputSchema[GuardResult](),
	), mcp.NewStructuredToolHandler(s.handleIsTemplate))

	s.mcpServer.AddTool(mcp.NewTool("format_json",
		mcp.WithDescription("Pretty-print a step data document with 2-space indentation."),
		mcp.WithString("data", mcp.Required(), mcp.Description("JSON text to format")),
	), s.handleFormat)

	s.mcpServer.AddTool(mcp.NewTool("validate_json",
		mcp.WithDescription("Classify step data as neutral (empty), valid or malformed."),
		mcp.WithString("data", mcp.Required(), mcp.Description("JSON text to check")),
		mcp.WithOutputSchema[ValidateResult](),
	), mcp.NewStructuredToolHandler(s.handleValidate))

	s.mcpServer.AddTool(mcp.NewTool("next_order",
		mcp.WithDescription("Propose the order of a new step in a scenario (max existing order + 1)."),
		mcp.WithString("scenario_id", mcp.Required(), mcp.Description("Scenario identifier")),
		mcp.WithOutputSchema[OrderResult](),
	), mcp.NewStructuredToolHandler(s.handleNextOrder))

	s.mcpServer.AddTool(mcp.NewTool("clean_step_data",
		mcp.WithDescription("Validate step data before saving and return the document to store."),
		mcp.WithString("step_type", mcp.Required(), mcp.Description("Step type of the step")),
		mcp.WithString("data", mcp.Description("JSON text of the data field; empty yields the template")),
		mcp.WithString("scenario_id", mcp.Description("Scenario of the step, to check order uniqueness")),
		mcp.WithString("step_id", mcp.Description("ID of the step being saved, so its own order is not reported as taken")),
		mcp.WithNumber("order", mcp.Description("Order of the step within the scenario")),
	), s.handleCleanStepData)
}

func (s *Server) templates() []TemplateResult {
	var out []TemplateResult
	for _, tmpl := range s.auth.Templates() {
		doc, err := tmpl.Document()
		if err != nil {
			s.logger.Error("template render failed", "step_type", tmpl.Type, "error", err)
			continue
		}
		out = append(out, TemplateResult{
			StepType:    string(tmpl.Type),
			Label:       tmpl.Type.Label(),
			Description: tmpl.Description,
			Document:    doc,
		})
	}
	return out
}

func (s *Server) handleListStepTypes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	type stepType struct {
		StepType string `json:"step_type"`
		Label    string `json:"label"`
	}
	var out []stepType
	for _, t := range s.auth.Catalog().Types() {
		out = append(out, stepType{StepType: string(t), Label: t.Label()})
	}
	jsonBytes, _ := json.Marshal(out)
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleGetTemplate(ctx context.Context, request mcp.CallToolRequest, args stepTypeArgs) (TemplateResult, error) {
	for _, t := range s.templates() {
		if t.StepType == args.StepType {
			return t, nil
		}
	}
	return TemplateResult{}, fmt.Errorf("%w: %q", domain.ErrUnknownStepType, args.StepType)
}

func (s *Server) handleIsTemplate(ctx context.Context, request mcp.CallToolRequest, args dataArgs) (GuardResult, error) {
	data, err := jsonfield.Sanitize(args.Data)
	if err != nil {
		s.logger.Warn("MCP is_template: Input rejected", "error", err, "size", len(args.Data))
		return GuardResult{}, fmt.Errorf("input rejected: %w", err)
	}
	return GuardResult{
		IsTemplate:   s.auth.IsTemplate(data),
		Overwritable: s.auth.Overwritable(data),
	}, nil
}

func (s *Server) handleFormat(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw := mcp.ParseString(request, "data", "")
	data, err := jsonfield.Sanitize(raw)
	if err != nil {
		s.logger.Warn("MCP format_json: Input rejected", "error", err, "size", len(raw))
		return mcp.NewToolResultError(fmt.Sprintf("input rejected: %v", err)), nil
	}

	out, err := s.auth.Format(data)
	if err != nil {
		return mcp.NewToolResultError(jsonfield.MsgParseFailed + err.Error()), nil
	}
	return mcp.NewToolResultText(out), nil
}

func (s *Server) handleValidate(ctx context.Context, request mcp.CallToolRequest, args dataArgs) (ValidateResult, error) {
	v := s.auth.Validate(args.Data)
	return ValidateResult{Validity: v.String(), Indicator: v.Indicator()}, nil
}

func (s *Server) handleNextOrder(ctx context.Context, request mcp.CallToolRequest, args scenarioArgs) (OrderResult, error) {
	if args.ScenarioID == "" {
		return OrderResult{}, fmt.Errorf("scenario_id is required")
	}
	return OrderResult{
		ScenarioID: args.ScenarioID,
		Order:      s.auth.NextOrder(ctx, args.ScenarioID),
	}, nil
}

func (s *Server) handleCleanStepData(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := cleanArgs{
		StepType:   mcp.ParseString(request, "step_type", ""),
		Data:       mcp.ParseString(request, "data", ""),
		ScenarioID: mcp.ParseString(request, "scenario_id", ""),
		StepID:     mcp.ParseString(request, "step_id", ""),
		Order:      mcp.ParseInt(request, "order", 0),
	}

	stepType, err := domain.ParseStepType(args.StepType)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	raw, err := jsonfield.Sanitize(args.Data)
	if err != nil {
		s.logger.Warn("MCP clean_step_data: Input rejected", "error", err, "size", len(args.Data))
		return mcp.NewToolResultError(fmt.Sprintf("input rejected: %v", err)), nil
	}

	data, err := s.auth.CleanStep(ctx, stepType, raw, args.ScenarioID, args.StepID, args.Order)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	jsonBytes, _ := json.Marshal(data)
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(TemplatesURI, "Step Templates",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.templates())
		if err != nil {
			return nil, fmt.Errorf("failed to encode templates: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      TemplatesURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
