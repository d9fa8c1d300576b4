// Package resources provides MCP resource registration for exposing
// Grafana information and configuration as MCP resources.
package resources

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/obsmcp/mcp-grafana/internal/grafana"
)

func RegisterMCPResources(s *server.MCPServer, c *grafana.Client) {
	RegisterDatasourcesMCPResource(s, c)
}
