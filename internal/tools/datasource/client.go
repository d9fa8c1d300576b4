// Package datasource provides MCP tools for discovering Grafana datasources.
package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/obsmcp/mcp-grafana/internal/grafana"
)

// client scopes the shared Grafana client to the datasources API.
type client struct {
	grafana *grafana.Client
}

func newClient(c *grafana.Client) *client {
	return &client{grafana: c}
}

func (c *client) listDatasources(ctx context.Context) ([]grafana.Datasource, error) {
	body, err := c.grafana.Get(ctx, "/api/datasources", nil)
	if err != nil {
		return nil, err
	}

	var datasources []grafana.Datasource
	if err := json.Unmarshal(body, &datasources); err != nil {
		return nil, &grafana.DecodeError{Err: err, Raw: body}
	}
	return datasources, nil
}

func (c *client) getDatasourceByUID(ctx context.Context, uid string) (*grafana.Datasource, error) {
	return c.getDatasource(ctx, fmt.Sprintf("/api/datasources/uid/%s", url.PathEscape(uid)))
}

func (c *client) getDatasourceByName(ctx context.Context, name string) (*grafana.Datasource, error) {
	return c.getDatasource(ctx, fmt.Sprintf("/api/datasources/name/%s", url.PathEscape(name)))
}

func (c *client) getDatasource(ctx context.Context, path string) (*grafana.Datasource, error) {
	body, err := c.grafana.Get(ctx, path, nil)
	if err != nil {
		return nil, err
	}

	var datasource grafana.Datasource
	if err := json.Unmarshal(body, &datasource); err != nil {
		return nil, &grafana.DecodeError{Err: err, Raw: body}
	}
	return &datasource, nil
}
