package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/chigwell/graph-ui/pkg/graph"
	"github.com/chigwell/graph-ui/pkg/graph/export"
	"github.com/chigwell/graph-ui/services"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// GraphTools serves relationship extraction over MCP.
type GraphTools struct {
	extractor  graph.Extractor
	defaults   graph.RunConfig
	logger     *logrus.Logger
	history    *RunHistory
	listModels func(ctx context.Context, endpoint string) ([]services.ModelInfo, error)
}

// NewGraphTools creates the handlers. defaults fills in every argument a
// caller leaves out.
func NewGraphTools(extractor graph.Extractor, defaults graph.RunConfig, logger *logrus.Logger) *GraphTools {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return &GraphTools{
		extractor:  extractor,
		defaults:   defaults,
		logger:     logger,
		history:    NewRunHistory(defaultHistoryLimit),
		listModels: services.ListModels,
	}
}

// History returns the runs served so far.
func (t *GraphTools) History() *RunHistory {
	return t.history
}

// RegisterGraphTools adds extract_graph, list_models and graph_history to s.
func RegisterGraphTools(s *server.MCPServer, t *GraphTools) {
	extractTool := mcp.NewTool("extract_graph",
		mcp.WithDescription(`Extract a relationship graph from free text using a local Ollama model.
The text is split into segments, each segment is sent to the model, and the
relationships found are merged into one graph of nodes and labelled edges.
Returns JSON with the run state, nodes, edges, table rows, CSV and the run log.`),
		mcp.WithString("text", mcp.Required(), mcp.Description("Text to extract relationships from")),
		mcp.WithString("model", mcp.Description("Model identifier; the first installed model is used when empty")),
		mcp.WithString("endpoint", mcp.Description("Ollama base URL, e.g. http://127.0.0.1:11434")),
		mcp.WithNumber("temperature", mcp.Description("Sampling temperature")),
		mcp.WithNumber("segment_size", mcp.Description("Maximum characters per segment")),
	)
	s.AddTool(extractTool, errorGuard(t.extractGraphHandler))

	listTool := mcp.NewTool("list_models",
		mcp.WithDescription("List the models installed on an Ollama server"),
		mcp.WithString("endpoint", mcp.Description("Ollama base URL")),
	)
	s.AddTool(listTool, errorGuard(t.listModelsHandler))

	historyTool := mcp.NewTool("graph_history",
		mcp.WithDescription("Retrieve summaries of previous extract_graph runs"),
		mcp.WithString("run_id", mcp.Description("Optional run ID to get a single run for")),
	)
	s.AddTool(historyTool, errorGuard(t.historyHandler))
}

type extractResponse struct {
	RunID    string            `json:"run_id"`
	State    string            `json:"state"`
	Error    string            `json:"error,omitempty"`
	Model    string            `json:"model"`
	Segments int               `json:"segments"`
	Nodes    []graph.GraphNode `json:"nodes"`
	Edges    []graph.GraphEdge `json:"edges"`
	Rows     []graph.Row       `json:"rows"`
	CSV      string            `json:"csv"`
	Logs     []string          `json:"logs"`
}

func (t *GraphTools) extractGraphHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	cfg, err := t.resolveConfig(ctx, request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	pipeline := graph.NewPipeline(t.extractor, graph.WithLogger(t.logger))
	result, runErr := pipeline.Run(ctx, text, cfg)
	t.history.Record(result, cfg)

	projection := result.Graph.Projection()
	rows := result.Graph.Rows()
	resp := extractResponse{
		RunID:    result.ID,
		State:    result.State.String(),
		Model:    cfg.Model,
		Segments: result.Segments,
		Nodes:    projection.Nodes,
		Edges:    projection.Edges,
		Rows:     rows,
		CSV:      export.CSV(rows),
		Logs:     result.Messages(),
	}
	if runErr != nil {
		resp.Error = runErr.Error()
	}

	body, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "encoding extraction result")
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(string(body))},
		IsError: runErr != nil,
	}, nil
}

// resolveConfig overlays the request arguments on the defaults and picks a
// model from the endpoint when none is given.
func (t *GraphTools) resolveConfig(ctx context.Context, request mcp.CallToolRequest) (graph.RunConfig, error) {
	cfg := t.defaults
	cfg.Endpoint = request.GetString("endpoint", cfg.Endpoint)
	cfg.Model = request.GetString("model", cfg.Model)
	cfg.Temperature = request.GetFloat("temperature", cfg.Temperature)
	cfg.SegmentSize = request.GetInt("segment_size", cfg.SegmentSize)

	if cfg.Model != "" || cfg.Endpoint == "" {
		return cfg, nil
	}

	models, err := t.listModels(ctx, cfg.Endpoint)
	if err != nil {
		return cfg, err
	}
	selected, ok := services.SelectModel(models, "")
	if !ok {
		return cfg, errors.Wrapf(graph.ErrPreconditionNotMet, "no models installed at %s", cfg.Endpoint)
	}
	t.logger.WithField("model", selected.Alias).Info("No model requested, using first installed model")
	cfg.Model = selected.Alias
	return cfg, nil
}

func (t *GraphTools) listModelsHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	endpoint := request.GetString("endpoint", t.defaults.Endpoint)

	models, err := t.listModels(ctx, endpoint)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to fetch models: %v", err)), nil
	}

	response := map[string]interface{}{
		"endpoint": endpoint,
		"models":   models,
	}
	if selected, ok := services.SelectModel(models, t.defaults.Model); ok {
		response["selected"] = selected.Alias
	}

	body, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(body)), nil
}

func (t *GraphTools) historyHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var payload interface{}
	if id := request.GetString("run_id", ""); id != "" {
		run, ok := t.history.Find(id)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("run %s not found", id)), nil
		}
		payload = run
	} else {
		payload = t.history.Runs()
	}

	body, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(body)), nil
}

// errorGuard turns handler errors and panics into tool error results so the
// client always gets an answer.
func errorGuard(handler server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (result *mcp.CallToolResult, err error) {
		defer func() {
			if r := recover(); r != nil {
				result = mcp.NewToolResultError(fmt.Sprintf("Panic: %v", r))
				err = nil
			}
		}()

		result, err = handler(ctx, request)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error: %v", err)), nil
		}
		return result, nil
	}
}
