// Package search provides the MCP tool for searching Grafana dashboards.
package search

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/obsmcp/mcp-grafana/internal/grafana"
)

// client scopes the shared Grafana client to the search API.
type client struct {
	grafana *grafana.Client
}

func newClient(c *grafana.Client) *client {
	return &client{grafana: c}
}

// Result is one dashboard or folder hit from /api/search.
type Result struct {
	ID          int      `json:"id"`
	UID         string   `json:"uid"`
	Title       string   `json:"title"`
	URI         string   `json:"uri"`
	URL         string   `json:"url"`
	Slug        string   `json:"slug"`
	Type        string   `json:"type"`
	Tags        []string `json:"tags"`
	IsStarred   bool     `json:"isStarred"`
	FolderID    int      `json:"folderId,omitempty"`
	FolderUID   string   `json:"folderUid,omitempty"`
	FolderTitle string   `json:"folderTitle,omitempty"`
	FolderURL   string   `json:"folderUrl,omitempty"`
}

func (c *client) searchDashboards(ctx context.Context, params url.Values) ([]Result, error) {
	body, err := c.grafana.Get(ctx, "/api/search", params)
	if err != nil {
		return nil, err
	}

	var results []Result
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, &grafana.DecodeError{Err: err, Raw: body}
	}
	return results, nil
}

// buildSearchParams renders the caller's arguments into Grafana's /api/search
// query string. Only caller-supplied values are emitted; in particular a nil
// Query is dropped entirely (never sent as an empty query=), while a non-nil
// empty string is sent as query=. The limit is emitted only when it differs
// from the configured default, matching Grafana's own server-side default
// behavior.
func buildSearchParams(params searchDashboardsParams, defaultLimit int) url.Values {
	values := url.Values{}
	if params.Query != nil {
		values.Set("query", *params.Query)
	}
	for _, tag := range params.Tags {
		values.Add("tag", tag)
	}
	if params.Type != "" {
		values.Set("type", params.Type)
	}
	for _, id := range params.DashboardIDs {
		values.Add("dashboardIds", strconv.Itoa(id))
	}
	for _, uid := range params.DashboardUIDs {
		values.Add("dashboardUids", uid)
	}
	for _, uid := range params.FolderUIDs {
		values.Add("folderUids", uid)
	}
	if params.Starred {
		values.Set("starred", "true")
	}
	if params.Limit > 0 && params.Limit != defaultLimit {
		values.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Page > 1 {
		values.Set("page", strconv.Itoa(params.Page))
	}
	return values
}
