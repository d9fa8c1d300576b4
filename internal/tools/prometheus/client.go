// Package prometheus provides MCP tools for querying Prometheus datasources
// through Grafana's datasource proxy and /api/ds/query.
package prometheus

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/obsmcp/mcp-grafana/internal/grafana"
)

const (
	// DefaultLabelLimit is the default maximum number of label names or
	// label values returned.
	DefaultLabelLimit = 100
	// DefaultMetadataLimit is the default maximum number of metrics for
	// which metadata is returned.
	DefaultMetadataLimit = 10
	// DefaultMetricNamesLimit is the default page size for metric names.
	DefaultMetricNamesLimit = 10
)

// client scopes the shared Grafana client to the datasource-proxy endpoints
// of a single Prometheus datasource.
type client struct {
	grafana       *grafana.Client
	datasourceUID string
}

func newClient(c *grafana.Client, datasourceUID string) *client {
	return &client{grafana: c, datasourceUID: datasourceUID}
}

func (c *client) proxyPath(suffix string) string {
	return fmt.Sprintf("/api/datasources/proxy/uid/%s%s", url.PathEscape(c.datasourceUID), suffix)
}

// MetricMetadata is the metadata Prometheus holds for one metric.
type MetricMetadata struct {
	Type string `json:"type"`
	Help string `json:"help"`
	Unit string `json:"unit"`
}

// fetchMetricMetadata fetches metric metadata, keyed by metric name.
func (c *client) fetchMetricMetadata(ctx context.Context, limit, limitPerMetric int, metric string) (map[string][]MetricMetadata, error) {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	if limitPerMetric > 0 {
		params.Set("limitPerMetric", strconv.Itoa(limitPerMetric))
	}
	if metric != "" {
		params.Set("metric", metric)
	}

	body, err := c.grafana.Get(ctx, c.proxyPath("/api/v1/metadata"), params)
	if err != nil {
		return nil, err
	}
	return grafana.UnwrapData[map[string][]MetricMetadata](body)
}

// fetchLabelNames fetches label names, optionally filtered by selectors and
// a time range.
func (c *client) fetchLabelNames(ctx context.Context, matches []grafana.Selector, startRFC3339, endRFC3339 string, limit int) ([]string, error) {
	params, err := labelQueryParams(matches, startRFC3339, endRFC3339, limit)
	if err != nil {
		return nil, err
	}

	body, err := c.grafana.Get(ctx, c.proxyPath("/api/v1/labels"), params)
	if err != nil {
		return nil, err
	}
	return grafana.UnwrapData[[]string](body)
}

// fetchLabelValues fetches the values of a single label.
func (c *client) fetchLabelValues(ctx context.Context, labelName string, matches []grafana.Selector, startRFC3339, endRFC3339 string, limit int) ([]string, error) {
	params, err := labelQueryParams(matches, startRFC3339, endRFC3339, limit)
	if err != nil {
		return nil, err
	}

	path := c.proxyPath(fmt.Sprintf("/api/v1/label/%s/values", url.PathEscape(labelName)))
	body, err := c.grafana.Get(ctx, path, params)
	if err != nil {
		return nil, err
	}
	return grafana.UnwrapData[[]string](body)
}

// queryDS posts a query batch to /api/ds/query and decodes the response.
func (c *client) queryDS(ctx context.Context, req grafana.QueryRequest) (*grafana.DSQueryResponse, error) {
	body, err := c.grafana.Post(ctx, "/api/ds/query", req)
	if err != nil {
		return nil, err
	}
	return grafana.ParseDSQueryResponse(body)
}

// labelQueryParams builds the shared query parameters of the labels and
// label-values proxy endpoints. Selectors are rendered to their exact PromQL
// string form; start/end are RFC3339 in the query string. Unset optional
// values are never emitted.
func labelQueryParams(matches []grafana.Selector, startRFC3339, endRFC3339 string, limit int) (url.Values, error) {
	params := url.Values{}
	for _, m := range matches {
		params.Add("match[]", m.String())
	}
	if startRFC3339 != "" {
		startTime, err := time.Parse(time.RFC3339, startRFC3339)
		if err != nil {
			return nil, grafana.NewValidationError("parsing start time: %v", err)
		}
		params.Set("start", startTime.Format(time.RFC3339))
	}
	if endRFC3339 != "" {
		endTime, err := time.Parse(time.RFC3339, endRFC3339)
		if err != nil {
			return nil, grafana.NewValidationError("parsing end time: %v", err)
		}
		params.Set("end", endTime.Format(time.RFC3339))
	}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	return params, nil
}

// enforceLimit picks the requested limit, falling back to a default.
func enforceLimit(requested, fallback int) int {
	if requested <= 0 {
		return fallback
	}
	return requested
}
