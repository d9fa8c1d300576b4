package prometheus

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/obsmcp/mcp-grafana/internal/grafana"
)

type listMetricNamesParams struct {
	DatasourceUID string `json:"datasourceUid"`
	Regex         string `json:"regex"`
	Limit         int    `json:"limit,omitempty"`
	Page          int    `json:"page,omitempty"`
}

// compileAnchored compiles a regex that must match at the start of the
// candidate string but need not consume all of it.
func compileAnchored(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile("^(?:" + pattern + ")")
	if err != nil {
		return nil, grafana.NewValidationError("compiling regex: %v", err)
	}
	return re, nil
}

// filterMetricNames keeps the names matching the anchored regex and slices
// out the requested page. Pages are 1-indexed: page=1,limit=10 returns
// matches [0:10], page=2 returns [10:20].
func filterMetricNames(names []string, re *regexp.Regexp, limit, page int) []string {
	matches := make([]string, 0)
	for _, name := range names {
		if re.MatchString(name) {
			matches = append(matches, name)
		}
	}

	start := (page - 1) * limit
	if start >= len(matches) {
		return []string{}
	}
	end := start + limit
	if end > len(matches) {
		end = len(matches)
	}
	return matches[start:end]
}

func listMetricNamesHandler(c *grafana.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var params listMetricNamesParams
		if err := request.BindArguments(&params); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
		}

		if params.Regex == "" {
			return mcp.NewToolResultError("regex is required"), nil
		}
		re, err := compileAnchored(params.Regex)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		limit := enforceLimit(params.Limit, DefaultMetricNamesLimit)
		page := params.Page
		if page <= 0 {
			page = 1
		}

		// Metric names are the values of the __name__ label. Filtering and
		// pagination happen client-side, so limit/page only shrink the
		// returned window, not the payload fetched from the server.
		names, err := newClient(c, params.DatasourceUID).fetchLabelValues(ctx, "__name__", nil, "", "", DefaultLabelLimit)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		metricNames := filterMetricNames(names, re, limit, page)

		jsonData, err := json.MarshalIndent(metricNames, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("marshalling result: %v", err)), nil
		}

		return mcp.NewToolResultText(string(jsonData)), nil
	}
}

func newListMetricNamesTool() mcp.Tool {
	return mcp.NewTool(
		"list_prometheus_metric_names",
		mcp.WithDescription("Lists metric names in a Prometheus datasource that match the given regex. "+
			"The regex is anchored at the start of the name but need not match all of it. "+
			"Returns a list of metric names (e.g., [\"up\", \"node_cpu_seconds_total\"]). "+
			"Pagination happens client-side: limit and page narrow the returned window, not the server payload."),
		mcp.WithString("datasourceUid",
			mcp.Description("The UID of the Prometheus datasource to query"),
			mcp.Required(),
		),
		mcp.WithString("regex",
			mcp.Description("Regex to match against the metric names (e.g., \"node_.*\" for node exporter metrics)"),
			mcp.Required(),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of metric names to return per page (default: 10)"),
		),
		mcp.WithNumber("page",
			mcp.Description("1-indexed page number to return (default: 1)"),
		),
	)
}

// RegisterListMetricNames registers the list_prometheus_metric_names tool.
func RegisterListMetricNames(s *server.MCPServer, c *grafana.Client) {
	s.AddTool(newListMetricNamesTool(), listMetricNamesHandler(c))
}
