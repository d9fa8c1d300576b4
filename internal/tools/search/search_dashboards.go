package search

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/obsmcp/mcp-grafana/internal/grafana"
)

type searchDashboardsParams struct {
	// Query is nullable on purpose: absent means "no title filter" and is
	// excluded from the outgoing query string, while an explicit empty
	// string is still sent as query=.
	Query         *string  `json:"query,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	Type          string   `json:"type,omitempty"`
	DashboardIDs  []int    `json:"dashboardIds,omitempty"`
	DashboardUIDs []string `json:"dashboardUids,omitempty"`
	FolderUIDs    []string `json:"folderUids,omitempty"`
	Starred       bool     `json:"starred,omitempty"`
	Limit         int      `json:"limit,omitempty"`
	Page          int      `json:"page,omitempty"`
}

func searchDashboardsHandler(c *grafana.Client, settings grafana.SearchSettings) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var params searchDashboardsParams
		if err := request.BindArguments(&params); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
		}

		results, err := newClient(c).searchDashboards(ctx, buildSearchParams(params, settings.Limit))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		if results == nil {
			results = []Result{}
		}

		jsonData, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("marshalling result: %v", err)), nil
		}

		return mcp.NewToolResultText(string(jsonData)), nil
	}
}

func newSearchDashboardsTool() mcp.Tool {
	return mcp.NewTool(
		"search_dashboards",
		mcp.WithDescription("Searches for Grafana dashboards and folders. "+
			"All filters are optional; omitted filters are not sent to Grafana at all. "+
			"Returns matching entries with UID, title, tags, folder information, and URL."),
		mcp.WithString("query",
			mcp.Description("Search query string to match against dashboard titles"),
		),
		mcp.WithArray("tags",
			mcp.Description("Only return dashboards with all of these tags"),
		),
		mcp.WithString("type",
			mcp.Description("Restrict results to 'dash-db' (dashboards) or 'dash-folder' (folders)"),
		),
		mcp.WithArray("dashboardIds",
			mcp.Description("Only return dashboards with these numeric IDs"),
		),
		mcp.WithArray("dashboardUids",
			mcp.Description("Only return dashboards with these UIDs"),
		),
		mcp.WithArray("folderUids",
			mcp.Description("Only return dashboards in the folders with these UIDs"),
		),
		mcp.WithBoolean("starred",
			mcp.Description("Only return starred dashboards"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of results to return"),
		),
		mcp.WithNumber("page",
			mcp.Description("1-indexed page of results to return"),
		),
	)
}

// RegisterSearchDashboards registers the search_dashboards tool.
func RegisterSearchDashboards(s *server.MCPServer, c *grafana.Client, settings grafana.SearchSettings) {
	s.AddTool(newSearchDashboardsTool(), searchDashboardsHandler(c, settings))
}
