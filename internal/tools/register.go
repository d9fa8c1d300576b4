// Package tools wires the MCP tool groups onto the server.
package tools

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/obsmcp/mcp-grafana/internal/grafana"
	"github.com/obsmcp/mcp-grafana/internal/tools/datasource"
	"github.com/obsmcp/mcp-grafana/internal/tools/incident"
	"github.com/obsmcp/mcp-grafana/internal/tools/prometheus"
	"github.com/obsmcp/mcp-grafana/internal/tools/search"
	"github.com/obsmcp/mcp-grafana/internal/tools/sift"
)

// RegisterMCPTools registers every enabled tool group. Disabled groups are
// skipped entirely so their tools never appear in the server's catalog.
func RegisterMCPTools(s *server.MCPServer, c *grafana.Client, settings grafana.Settings) {
	if settings.Tools.Search.Enabled {
		search.RegisterSearchDashboards(s, c, settings.Tools.Search)
	}

	if settings.Tools.Datasources.Enabled {
		datasource.RegisterListDatasources(s, c)
		datasource.RegisterGetDatasourceByUID(s, c)
		datasource.RegisterGetDatasourceByName(s, c)
	}

	if settings.Tools.Incident.Enabled {
		incident.RegisterListIncidents(s, c)
		incident.RegisterCreateIncident(s, c)
		incident.RegisterAddActivity(s, c)
		incident.RegisterResolveIncident(s, c)
	}

	if settings.Tools.Prometheus.Enabled {
		prometheus.RegisterQuery(s, c)
		prometheus.RegisterListMetricMetadata(s, c)
		prometheus.RegisterListMetricNames(s, c)
		prometheus.RegisterListLabelNames(s, c)
		prometheus.RegisterListLabelValues(s, c)
	}

	if settings.Tools.Sift.Enabled {
		sift.RegisterCreateInvestigation(s, c)
		sift.RegisterGetInvestigation(s, c)
		sift.RegisterGetAnalyses(s, c)
	}
}
