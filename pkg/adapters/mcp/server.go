package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aretw0/flowserve"
	"github.com/aretw0/flowserve/internal/presentation/graph"
	"github.com/aretw0/flowserve/pkg/domain"
	"github.com/aretw0/flowserve/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// GraphURI is the resource exposing the current graph definition.
const GraphURI = "flowserve://graph"

// RunResponse is the structured output of the run_workflow tool.
type RunResponse struct {
	Status   string         `json:"status" jsonschema_description:"success, error, or empty when the graph has no entry"`
	Response any            `json:"response,omitempty" jsonschema_description:"Payload of the response node, if one was reached"`
	Message  string         `json:"message,omitempty" jsonschema_description:"Set when traversal ended without a response node"`
	Error    string         `json:"error,omitempty" jsonschema_description:"Failure description"`
	Logs     []string       `json:"logs" jsonschema_description:"Execution log"`
	Context  map[string]any `json:"context,omitempty" jsonschema_description:"Variables at the end of a fall-through run"`
	Visited  []string       `json:"visited" jsonschema_description:"Node ids in execution order"`
}

// Server wraps a workflow runner and exposes it as an MCP Server.
type Server struct {
	runner    ports.WorkflowRunner
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(runner ports.WorkflowRunner, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		runner:    runner,
		logger:    logger,
		mcpServer: server.NewMCPServer("flowserve-mcp", strings.TrimSpace(flowserve.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer exposes the underlying server, mainly for in-process clients.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	// TOOL: run_workflow
	runTool := mcp.NewTool("run_workflow",
		mcp.WithDescription("Execute the workflow once, as if an HTTP request had arrived."),
		mcp.WithString("method", mcp.Description("HTTP method (default GET)")),
		mcp.WithString("path", mcp.Description("Request path (default /)")),
		mcp.WithString("body", mcp.Description("JSON request body (optional)")),
		mcp.WithString("query", mcp.Description("JSON object of query parameters (optional)")),
		mcp.WithString("headers", mcp.Description("JSON object of headers (optional)")),
		mcp.WithOutputSchema[RunResponse](),
	)
	s.mcpServer.AddTool(runTool, mcp.NewStructuredToolHandler(s.handleRun))

	// TOOL: inspect_graph
	s.mcpServer.AddTool(mcp.NewTool("inspect_graph",
		mcp.WithDescription("Get the workflow graph as a Mermaid flowchart."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText(graph.GenerateMermaid(s.runner.Graph(), nil)), nil
	})
}

func (s *Server) handleRun(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (RunResponse, error) {
	input, err := buildInput(args)
	if err != nil {
		s.logger.Warn("MCP run_workflow: invalid arguments", "error", err)
		return RunResponse{}, err
	}

	res := s.runner.Run(ctx, input)
	logs := res.Logs
	if logs == nil {
		logs = []string{}
	}
	visited := res.Visited
	if visited == nil {
		visited = []string{}
	}
	return RunResponse{
		Status:   res.Status,
		Response: res.Response,
		Message:  res.Message,
		Error:    res.Error,
		Logs:     logs,
		Context:  res.Context,
		Visited:  visited,
	}, nil
}

func buildInput(args map[string]any) (domain.Input, error) {
	input := domain.Input{
		Method:  "GET",
		Path:    "/",
		Query:   map[string]string{},
		Params:  map[string]string{},
		Headers: map[string]string{},
	}
	if m, ok := args["method"].(string); ok && m != "" {
		input.Method = strings.ToUpper(m)
	}
	if p, ok := args["path"].(string); ok && p != "" {
		input.Path = p
	}
	input.Params["path"] = strings.TrimPrefix(input.Path, "/")

	if raw, ok := args["body"].(string); ok && strings.TrimSpace(raw) != "" {
		if err := json.Unmarshal([]byte(raw), &input.Body); err != nil {
			return input, fmt.Errorf("invalid body: %w", err)
		}
	}
	if raw, ok := args["query"].(string); ok && strings.TrimSpace(raw) != "" {
		if err := json.Unmarshal([]byte(raw), &input.Query); err != nil {
			return input, fmt.Errorf("invalid query: %w", err)
		}
	}
	if raw, ok := args["headers"].(string); ok && strings.TrimSpace(raw) != "" {
		headers := map[string]string{}
		if err := json.Unmarshal([]byte(raw), &headers); err != nil {
			return input, fmt.Errorf("invalid headers: %w", err)
		}
		for k, v := range headers {
			input.Headers[strings.ToLower(k)] = v
		}
	}
	return input, nil
}

func (s *Server) registerResources() {
	// EXPOSE: flowserve://graph
	s.mcpServer.AddResource(mcp.NewResource(GraphURI, "Current Graph Definition",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.runner.Graph().Definition())
		if err != nil {
			return nil, fmt.Errorf("failed to encode graph: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      GraphURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
