package datasource

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/obsmcp/mcp-grafana/internal/grafana"
)

type getByUIDParams struct {
	UID string `json:"uid"`
}

type getByNameParams struct {
	Name string `json:"name"`
}

func getDatasourceByUIDHandler(c *grafana.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var params getByUIDParams
		if err := request.BindArguments(&params); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
		}
		if params.UID == "" {
			return mcp.NewToolResultError("uid is required"), nil
		}

		datasource, err := newClient(c).getDatasourceByUID(ctx, params.UID)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return datasourceResult(datasource)
	}
}

func getDatasourceByNameHandler(c *grafana.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var params getByNameParams
		if err := request.BindArguments(&params); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
		}
		if params.Name == "" {
			return mcp.NewToolResultError("name is required"), nil
		}

		datasource, err := newClient(c).getDatasourceByName(ctx, params.Name)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return datasourceResult(datasource)
	}
}

func datasourceResult(datasource *grafana.Datasource) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(datasource, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshalling result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func newGetDatasourceByUIDTool() mcp.Tool {
	return mcp.NewTool(
		"get_datasource_by_uid",
		mcp.WithDescription("Gets a single datasource by its stable uid."),
		mcp.WithString("uid",
			mcp.Description("The uid of the datasource"),
			mcp.Required(),
		),
	)
}

func newGetDatasourceByNameTool() mcp.Tool {
	return mcp.NewTool(
		"get_datasource_by_name",
		mcp.WithDescription("Gets a single datasource by its (mutable) name."),
		mcp.WithString("name",
			mcp.Description("The name of the datasource"),
			mcp.Required(),
		),
	)
}

// RegisterGetDatasourceByUID registers the get_datasource_by_uid tool.
func RegisterGetDatasourceByUID(s *server.MCPServer, c *grafana.Client) {
	s.AddTool(newGetDatasourceByUIDTool(), getDatasourceByUIDHandler(c))
}

// RegisterGetDatasourceByName registers the get_datasource_by_name tool.
func RegisterGetDatasourceByName(s *server.MCPServer, c *grafana.Client) {
	s.AddTool(newGetDatasourceByNameTool(), getDatasourceByNameHandler(c))
}
