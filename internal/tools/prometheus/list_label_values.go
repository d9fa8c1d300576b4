package prometheus

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/obsmcp/mcp-grafana/internal/grafana"
)

type listLabelValuesParams struct {
	DatasourceUID string             `json:"datasourceUid"`
	LabelName     string             `json:"labelName"`
	Matches       []grafana.Selector `json:"matches,omitempty"`
	StartRFC3339  string             `json:"startRfc3339,omitempty"`
	EndRFC3339    string             `json:"endRfc3339,omitempty"`
	Limit         int                `json:"limit,omitempty"`
}

func listLabelValuesHandler(c *grafana.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var params listLabelValuesParams
		if err := request.BindArguments(&params); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
		}

		if params.LabelName == "" {
			return mcp.NewToolResultError("labelName is required"), nil
		}

		limit := enforceLimit(params.Limit, DefaultLabelLimit)
		values, err := newClient(c, params.DatasourceUID).fetchLabelValues(ctx, params.LabelName, params.Matches, params.StartRFC3339, params.EndRFC3339, limit)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		if len(values) == 0 {
			values = []string{}
		}

		jsonData, err := json.MarshalIndent(values, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("marshalling result: %v", err)), nil
		}

		return mcp.NewToolResultText(string(jsonData)), nil
	}
}

func newListLabelValuesTool() mcp.Tool {
	return mcp.NewTool(
		"list_prometheus_label_values",
		mcp.WithDescription("Retrieves all unique values for a specific label name in a Prometheus datasource. "+
			"Returns a list of string values (e.g., for labelName=\"job\", might return [\"prometheus\", \"node-exporter\"]). "+
			"Use __name__ as the label name to get all metric names. "+
			"Optionally filtered to series matching the given selectors and time range."),
		mcp.WithString("datasourceUid",
			mcp.Description("The UID of the Prometheus datasource to query"),
			mcp.Required(),
		),
		mcp.WithString("labelName",
			mcp.Description("The label name to get values for (e.g., \"job\", \"instance\", or \"__name__\" for metric names)"),
			mcp.Required(),
		),
		mcp.WithArray("matches",
			mcp.Description("Optional list of selectors ({filters: [{name, value, type}]}) to filter the results by"),
		),
		mcp.WithString("startRfc3339",
			mcp.Description("Optional start time of the query, in RFC3339 format"),
		),
		mcp.WithString("endRfc3339",
			mcp.Description("Optional end time of the query, in RFC3339 format"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of values to return (default: 100)"),
		),
	)
}

// RegisterListLabelValues registers the list_prometheus_label_values tool.
func RegisterListLabelValues(s *server.MCPServer, c *grafana.Client) {
	s.AddTool(newListLabelValuesTool(), listLabelValuesHandler(c))
}
