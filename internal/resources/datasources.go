package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/obsmcp/mcp-grafana/internal/grafana"
)

// datasourceDigest is the reduced datasource view exposed by the resource:
// just enough to pick a datasourceUid for the query tools.
type datasourceDigest struct {
	UID       string `json:"uid"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	IsDefault bool   `json:"isDefault"`
	URL       string `json:"url,omitempty"`
}

// RegisterDatasourcesMCPResource registers the grafana://datasources resource.
func RegisterDatasourcesMCPResource(s *server.MCPServer, c *grafana.Client) {
	s.AddResource(newDatasourcesMCPResource(), datasourcesHandler(c))
}

func newDatasourcesMCPResource() mcp.Resource {
	return mcp.NewResource("grafana://datasources", "grafana_datasources",
		mcp.WithResourceDescription("Available Grafana datasources - lists datasource UIDs, names, and types "+
			"for easy discovery when using datasource-specific tools like query_prometheus. "+
			"Use this resource to find valid datasourceUid values instead of having to specify them manually."),
		mcp.WithMIMEType("application/json"),
	)
}

func datasourcesHandler(c *grafana.Client) server.ResourceHandlerFunc {
	return func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		body, err := c.Get(ctx, "/api/datasources", nil)
		if err != nil {
			return nil, fmt.Errorf("fetching datasources: %w", err)
		}

		var datasources []grafana.Datasource
		if err := json.Unmarshal(body, &datasources); err != nil {
			return nil, &grafana.DecodeError{Err: err, Raw: body}
		}

		digests := make([]datasourceDigest, 0, len(datasources))
		for _, ds := range datasources {
			digests = append(digests, datasourceDigest{
				UID:       ds.UID,
				Name:      ds.Name,
				Type:      ds.Type,
				IsDefault: ds.IsDefault,
				URL:       ds.URL,
			})
		}

		jsonData, err := json.MarshalIndent(digests, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshalling datasources: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "grafana://datasources",
				MIMEType: "application/json",
				Text:     string(jsonData),
			},
		}, nil
	}
}
