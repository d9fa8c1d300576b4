package sift

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/obsmcp/mcp-grafana/internal/grafana"
)

func getAnalysesHandler(c *grafana.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var params investigationIDParams
		if err := request.BindArguments(&params); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
		}

		id, err := params.parse()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		analyses, err := newClient(c).getAnalyses(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		if analyses == nil {
			analyses = []Analysis{}
		}

		jsonData, err := json.MarshalIndent(analyses, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("marshalling result: %v", err)), nil
		}

		return mcp.NewToolResultText(string(jsonData)), nil
	}
}

func newGetAnalysesTool() mcp.Tool {
	return mcp.NewTool(
		"get_sift_analyses",
		mcp.WithDescription("Gets the full analyses of a Sift investigation, including per-check results and events."),
		mcp.WithString("investigationId",
			mcp.Description("The UUID of the investigation"),
			mcp.Required(),
		),
	)
}

// RegisterGetAnalyses registers the get_sift_analyses tool.
func RegisterGetAnalyses(s *server.MCPServer, c *grafana.Client) {
	s.AddTool(newGetAnalysesTool(), getAnalysesHandler(c))
}
