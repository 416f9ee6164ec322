package prompts

import (
	"context"
	"strings"

	"github.com/chigwell/graph-ui/pkg/graph"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/pkg/errors"
)

// RegisterExtractionPrompts exposes the relationship extraction prompt so
// clients can run it against a model of their own choosing.
func RegisterExtractionPrompts(s *server.MCPServer, defaults graph.RunConfig) {
	prompt := mcp.NewPrompt("extract_relationships",
		mcp.WithPromptDescription("Ask a model for the relationships in a piece of text, answered in <nodes> format"),
		mcp.WithArgument("text", mcp.RequiredArgument(), mcp.ArgumentDescription("The text to extract relationships from")),
	)
	s.AddPrompt(prompt, extractionPromptHandler(defaults))
}

func extractionPromptHandler(defaults graph.RunConfig) server.PromptHandlerFunc {
	return func(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		text := request.Params.Arguments["text"]
		if strings.TrimSpace(text) == "" {
			return nil, errors.Wrap(graph.ErrPreconditionNotMet, "text argument is required")
		}

		req, err := graph.BuildRequest(graph.Segment{Text: text}, defaults)
		if err != nil {
			return nil, err
		}

		return &mcp.GetPromptResult{
			Description: "Relationship extraction",
			Messages: []mcp.PromptMessage{
				{
					Role: mcp.RoleUser,
					Content: mcp.TextContent{
						Type: "text",
						Text: req.System + "\n\n" + req.User,
					},
				},
			},
		}, nil
	}
}
