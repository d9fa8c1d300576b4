package prometheus

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/obsmcp/mcp-grafana/internal/grafana"
)

type listLabelNamesParams struct {
	DatasourceUID string             `json:"datasourceUid"`
	Matches       []grafana.Selector `json:"matches,omitempty"`
	StartRFC3339  string             `json:"startRfc3339,omitempty"`
	EndRFC3339    string             `json:"endRfc3339,omitempty"`
	Limit         int                `json:"limit,omitempty"`
}

func listLabelNamesHandler(c *grafana.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var params listLabelNamesParams
		if err := request.BindArguments(&params); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
		}

		limit := enforceLimit(params.Limit, DefaultLabelLimit)
		labels, err := newClient(c, params.DatasourceUID).fetchLabelNames(ctx, params.Matches, params.StartRFC3339, params.EndRFC3339, limit)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		if len(labels) == 0 {
			labels = []string{}
		}

		jsonData, err := json.MarshalIndent(labels, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("marshalling result: %v", err)), nil
		}

		return mcp.NewToolResultText(string(jsonData)), nil
	}
}

func newListLabelNamesTool() mcp.Tool {
	return mcp.NewTool(
		"list_prometheus_label_names",
		mcp.WithDescription("Lists all available label names in a Prometheus datasource. "+
			"Returns a list of unique label strings (e.g., [\"__name__\", \"instance\", \"job\"]). "+
			"Optionally filtered to series matching the given selectors and time range. "+
			"To list the labels of a specific metric, pass a matcher like {__name__=\"metric_name\"}."),
		mcp.WithString("datasourceUid",
			mcp.Description("The UID of the Prometheus datasource to query"),
			mcp.Required(),
		),
		mcp.WithArray("matches",
			mcp.Description("Optional list of selectors ({filters: [{name, value, type}]}) to filter the results by"),
		),
		mcp.WithString("startRfc3339",
			mcp.Description("Optional start time of the time range, in RFC3339 format"),
		),
		mcp.WithString("endRfc3339",
			mcp.Description("Optional end time of the time range, in RFC3339 format"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of label names to return (default: 100)"),
		),
	)
}

// RegisterListLabelNames registers the list_prometheus_label_names tool.
func RegisterListLabelNames(s *server.MCPServer, c *grafana.Client) {
	s.AddTool(newListLabelNamesTool(), listLabelNamesHandler(c))
}
