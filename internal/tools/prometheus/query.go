package prometheus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/obsmcp/mcp-grafana/internal/grafana"
)

type queryParams struct {
	DatasourceUID string `json:"datasourceUid"`
	Expr          string `json:"expr"`
	StartRFC3339  string `json:"startRfc3339"`
	EndRFC3339    string `json:"endRfc3339,omitempty"`  // Required for range queries
	StepSeconds   int    `json:"stepSeconds,omitempty"` // Required for range queries
	QueryType     string `json:"queryType,omitempty"`   // "range" (default) or "instant"
}

// buildQueryRequest translates tool arguments into the /api/ds/query wire
// request. Range queries require both an end time and a step; instant
// queries default the end time to the start and omit intervalMs. The PromQL
// expression rides along as an unmodeled query field.
func buildQueryRequest(params queryParams) (grafana.QueryRequest, error) {
	queryType := params.QueryType
	if queryType == "" {
		queryType = "range"
	}
	if queryType != "range" && queryType != "instant" {
		return grafana.QueryRequest{}, grafana.NewValidationError("invalid queryType: %s (must be 'range' or 'instant')", queryType)
	}
	if queryType == "range" && (params.EndRFC3339 == "" || params.StepSeconds == 0) {
		return grafana.QueryRequest{}, grafana.NewValidationError("endRfc3339 and stepSeconds must be provided when queryType is 'range'")
	}

	start, err := time.Parse(time.RFC3339, params.StartRFC3339)
	if err != nil {
		return grafana.QueryRequest{}, grafana.NewValidationError("parsing start time: %v", err)
	}
	end := start
	if params.EndRFC3339 != "" {
		if end, err = time.Parse(time.RFC3339, params.EndRFC3339); err != nil {
			return grafana.QueryRequest{}, grafana.NewValidationError("parsing end time: %v", err)
		}
	}

	var intervalMS *int64
	if queryType == "range" {
		interval := int64(params.StepSeconds) * 1000
		intervalMS = &interval
	}

	query := grafana.Query{
		RefID:      "A",
		Datasource: grafana.DatasourceRef{UID: params.DatasourceUID, Type: "prometheus"},
		QueryType:  queryType,
		IntervalMS: intervalMS,
		Extra:      map[string]any{"expr": params.Expr},
	}
	return grafana.NewQueryRequest(start, end, []grafana.Query{query}), nil
}

func queryHandler(c *grafana.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var params queryParams
		if err := request.BindArguments(&params); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
		}

		if params.Expr == "" {
			return mcp.NewToolResultError("expr (PromQL expression) is required"), nil
		}
		if params.StartRFC3339 == "" {
			return mcp.NewToolResultError("startRfc3339 is required"), nil
		}

		req, err := buildQueryRequest(params)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		result, err := newClient(c, params.DatasourceUID).queryDS(ctx, req)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("querying Prometheus: %v", err)), nil
		}

		jsonData, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("marshalling result: %v", err)), nil
		}

		return mcp.NewToolResultText(string(jsonData)), nil
	}
}

func newQueryTool() mcp.Tool {
	return mcp.NewTool(
		"query_prometheus",
		mcp.WithDescription("Executes a PromQL query against a Prometheus datasource via Grafana. "+
			"Supports range queries (the default, over a time range) and instant queries (at a single point in time). "+
			"For range queries, endRfc3339 and stepSeconds are required. "+
			"For instant queries, set queryType='instant'; the end time defaults to the start time. "+
			"Returns the data frames of the query result, keyed by refId."),
		mcp.WithString("datasourceUid",
			mcp.Description("The UID of the Prometheus datasource to query"),
			mcp.Required(),
		),
		mcp.WithString("expr",
			mcp.Description("PromQL expression to evaluate (e.g., 'up', 'rate(http_requests_total[5m])')"),
			mcp.Required(),
		),
		mcp.WithString("startRfc3339",
			mcp.Description("Start time in RFC3339 format"),
			mcp.Required(),
		),
		mcp.WithString("endRfc3339",
			mcp.Description("End time in RFC3339 format. Required for range queries; defaults to the start time for instant queries"),
		),
		mcp.WithNumber("stepSeconds",
			mcp.Description("Time series step size in seconds. Required for range queries; ignored for instant queries"),
		),
		mcp.WithString("queryType",
			mcp.Description("Query type: 'range' (default) for a time series, or 'instant' for a single point in time"),
		),
	)
}

// RegisterQuery registers the query_prometheus tool.
func RegisterQuery(s *server.MCPServer, c *grafana.Client) {
	s.AddTool(newQueryTool(), queryHandler(c))
}
