package incident

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/obsmcp/mcp-grafana/internal/grafana"
)

type resolveIncidentParams struct {
	IncidentID string `json:"incidentId"`
	Summary    string `json:"summary"`
}

func resolveIncidentHandler(c *grafana.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var params resolveIncidentParams
		if err := request.BindArguments(&params); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
		}

		if params.IncidentID == "" {
			return mcp.NewToolResultError("incidentId is required"), nil
		}

		body, err := newClient(c).closeIncident(ctx, params.IncidentID, params.Summary)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		return mcp.NewToolResultText(string(body)), nil
	}
}

func newResolveIncidentTool() mcp.Tool {
	return mcp.NewTool(
		"resolve_incident",
		mcp.WithDescription("Resolves (closes) an incident in the Grafana Incident plugin."),
		mcp.WithString("incidentId",
			mcp.Description("The ID of the incident to resolve"),
			mcp.Required(),
		),
		mcp.WithString("summary",
			mcp.Description("A summary of the resolution"),
		),
	)
}

// RegisterResolveIncident registers the resolve_incident tool.
func RegisterResolveIncident(s *server.MCPServer, c *grafana.Client) {
	s.AddTool(newResolveIncidentTool(), resolveIncidentHandler(c))
}
