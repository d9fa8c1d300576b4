package prometheus

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/obsmcp/mcp-grafana/internal/grafana"
)

type listMetricMetadataParams struct {
	DatasourceUID  string `json:"datasourceUid"`
	Limit          int    `json:"limit,omitempty"`
	LimitPerMetric int    `json:"limitPerMetric,omitempty"`
	Metric         string `json:"metric,omitempty"`
}

func listMetricMetadataHandler(c *grafana.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var params listMetricMetadataParams
		if err := request.BindArguments(&params); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
		}

		limit := enforceLimit(params.Limit, DefaultMetadataLimit)

		metadata, err := newClient(c, params.DatasourceUID).fetchMetricMetadata(ctx, limit, params.LimitPerMetric, params.Metric)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		jsonData, err := json.MarshalIndent(metadata, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("marshalling result: %v", err)), nil
		}

		return mcp.NewToolResultText(string(jsonData)), nil
	}
}

func newListMetricMetadataTool() mcp.Tool {
	return mcp.NewTool(
		"list_prometheus_metric_metadata",
		mcp.WithDescription("Lists metadata (type, help text, unit) for metrics in a Prometheus datasource, "+
			"keyed by metric name. Optionally filter to a single metric."),
		mcp.WithString("datasourceUid",
			mcp.Description("The UID of the Prometheus datasource to query"),
			mcp.Required(),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of metrics to return metadata for (default: 10)"),
		),
		mcp.WithNumber("limitPerMetric",
			mcp.Description("Maximum number of metadata entries per metric"),
		),
		mcp.WithString("metric",
			mcp.Description("Return metadata only for this metric name"),
		),
	)
}

// RegisterListMetricMetadata registers the list_prometheus_metric_metadata tool.
func RegisterListMetricMetadata(s *server.MCPServer, c *grafana.Client) {
	s.AddTool(newListMetricMetadataTool(), listMetricMetadataHandler(c))
}
