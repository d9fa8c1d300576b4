package datasource

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/obsmcp/mcp-grafana/internal/grafana"
)

func listDatasourcesHandler(c *grafana.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		datasources, err := newClient(c).listDatasources(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		if datasources == nil {
			datasources = []grafana.Datasource{}
		}

		jsonData, err := json.MarshalIndent(datasources, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("marshalling result: %v", err)), nil
		}

		return mcp.NewToolResultText(string(jsonData)), nil
	}
}

func newListDatasourcesTool() mcp.Tool {
	return mcp.NewTool(
		"list_datasources",
		mcp.WithDescription("Lists the datasources configured in the Grafana instance. "+
			"Use the uid from the results as the datasourceUid argument of other tools."),
	)
}

// RegisterListDatasources registers the list_datasources tool.
func RegisterListDatasources(s *server.MCPServer, c *grafana.Client) {
	s.AddTool(newListDatasourcesTool(), listDatasourcesHandler(c))
}
