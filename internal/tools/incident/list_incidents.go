package incident

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/obsmcp/mcp-grafana/internal/grafana"
)

// DefaultIncidentsLimit is the default number of incident previews returned.
const DefaultIncidentsLimit = 10

type listIncidentsParams struct {
	Limit  int    `json:"limit,omitempty"`
	Drill  bool   `json:"drill,omitempty"`
	Status string `json:"status,omitempty"`
}

// buildPreviewsRequest translates the tool's friendly arguments into the
// incident plugin's query syntax so LLM clients never have to know it.
// Incidents come back in descending order by creation time.
func buildPreviewsRequest(params listIncidentsParams) (QueryIncidentPreviewsRequest, error) {
	limit := params.Limit
	if limit == 0 {
		limit = DefaultIncidentsLimit
	}
	if limit < 1 || limit > 100 {
		return QueryIncidentPreviewsRequest{}, grafana.NewValidationError("limit must be between 1 and 100, got %d", limit)
	}
	if params.Status != "" && params.Status != "active" && params.Status != "resolved" {
		return QueryIncidentPreviewsRequest{}, grafana.NewValidationError("invalid status: %s (must be 'active' or 'resolved')", params.Status)
	}

	var sb strings.Builder
	if !params.Drill {
		sb.WriteString("isdrill:false")
	}
	if params.Status != "" {
		sb.WriteString(" and status:" + params.Status)
	}

	return QueryIncidentPreviewsRequest{
		Query: IncidentPreviewsQuery{
			Limit:          limit,
			OrderDirection: "DESC",
			OrderField:     "createdTime",
			QueryString:    sb.String(),
		},
		IncludeCustomFieldValues: true,
	}, nil
}

func listIncidentsHandler(c *grafana.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var params listIncidentsParams
		if err := request.BindArguments(&params); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
		}

		req, err := buildPreviewsRequest(params)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		body, err := newClient(c).queryIncidentPreviews(ctx, req)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		return mcp.NewToolResultText(string(body)), nil
	}
}

func newListIncidentsTool() mcp.Tool {
	return mcp.NewTool(
		"list_incidents",
		mcp.WithDescription("Lists incidents from the Grafana Incident plugin, "+
			"in descending order by creation time. Drill (practice) incidents are excluded unless requested."),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of incidents to return, between 1 and 100 (default: 10)"),
		),
		mcp.WithBoolean("drill",
			mcp.Description("Whether to include drill incidents"),
		),
		mcp.WithString("status",
			mcp.Description("Only return incidents with this status: 'active' or 'resolved'. If not provided, all incidents are included"),
		),
	)
}

// RegisterListIncidents registers the list_incidents tool.
func RegisterListIncidents(s *server.MCPServer, c *grafana.Client) {
	s.AddTool(newListIncidentsTool(), listIncidentsHandler(c))
}
