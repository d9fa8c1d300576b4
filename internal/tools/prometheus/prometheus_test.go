package prometheus

import (
	"context"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obsmcp/mcp-grafana/internal/grafana"
)

func TestBuildQueryRequest_Range(t *testing.T) {
	req, err := buildQueryRequest(queryParams{
		DatasourceUID: "prom-uid",
		Expr:          "up",
		StartRFC3339:  "2024-01-02T03:04:05Z",
		EndRFC3339:    "2024-01-02T04:04:05Z",
		StepSeconds:   60,
	})
	require.NoError(t, err)

	assert.Equal(t, "1704164645000", req.From)
	assert.Equal(t, "1704168245000", req.To)
	require.Len(t, req.Queries, 1)

	q := req.Queries[0]
	assert.Equal(t, "A", q.RefID)
	assert.Equal(t, "prometheus", q.Datasource.Type)
	assert.Equal(t, "prom-uid", q.Datasource.UID)
	assert.Equal(t, "range", q.QueryType)
	require.NotNil(t, q.IntervalMS)
	assert.Equal(t, int64(60000), *q.IntervalMS)
	assert.Equal(t, "up", q.Extra["expr"])
}

func TestBuildQueryRequest_InstantDefaultsEndToStart(t *testing.T) {
	req, err := buildQueryRequest(queryParams{
		DatasourceUID: "prom-uid",
		Expr:          "up",
		StartRFC3339:  "2024-01-02T03:04:05Z",
		QueryType:     "instant",
	})
	require.NoError(t, err)

	assert.Equal(t, req.From, req.To)
	require.Len(t, req.Queries, 1)
	assert.Equal(t, "instant", req.Queries[0].QueryType)
	assert.Nil(t, req.Queries[0].IntervalMS)
}

func TestBuildQueryRequest_Validation(t *testing.T) {
	tests := []struct {
		name   string
		params queryParams
	}{
		{
			name: "range without end",
			params: queryParams{
				DatasourceUID: "u",
				Expr:          "up",
				StartRFC3339:  "2024-01-02T03:04:05Z",
				StepSeconds:   60,
			},
		},
		{
			name: "range without step",
			params: queryParams{
				DatasourceUID: "u",
				Expr:          "up",
				StartRFC3339:  "2024-01-02T03:04:05Z",
				EndRFC3339:    "2024-01-02T04:04:05Z",
			},
		},
		{
			name: "unknown query type",
			params: queryParams{
				DatasourceUID: "u",
				Expr:          "up",
				StartRFC3339:  "2024-01-02T03:04:05Z",
				QueryType:     "streaming",
			},
		},
		{
			name: "bad start time",
			params: queryParams{
				DatasourceUID: "u",
				Expr:          "up",
				StartRFC3339:  "yesterday",
				QueryType:     "instant",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildQueryRequest(tt.params)
			var verr *grafana.ValidationError
			require.ErrorAs(t, err, &verr)
		})
	}
}

func TestFilterMetricNames(t *testing.T) {
	names := []string{
		"node_cpu_seconds_total",
		"node_memory_MemFree_bytes",
		"up",
		"process_cpu_seconds_total",
	}

	re, err := compileAnchored("node_.*")
	require.NoError(t, err)
	assert.Equal(t,
		[]string{"node_cpu_seconds_total", "node_memory_MemFree_bytes"},
		filterMetricNames(names, re, 10, 1))

	// Anchored at the start: "cpu" must not match mid-name.
	re, err = compileAnchored("cpu")
	require.NoError(t, err)
	assert.Equal(t, []string{}, filterMetricNames(names, re, 10, 1))

	// ...but a prefix match does not need to consume the whole name.
	re, err = compileAnchored("node")
	require.NoError(t, err)
	assert.Len(t, filterMetricNames(names, re, 10, 1), 2)
}

func TestFilterMetricNames_Pagination(t *testing.T) {
	names := make([]string, 0, 25)
	for _, s := range []string{"a", "b", "c", "d", "e"} {
		for _, n := range []string{"1", "2", "3", "4", "5"} {
			names = append(names, "metric_"+s+n)
		}
	}
	re := regexp.MustCompile("^(?:metric_.*)")

	page1 := filterMetricNames(names, re, 10, 1)
	page2 := filterMetricNames(names, re, 10, 2)
	page3 := filterMetricNames(names, re, 10, 3)
	page4 := filterMetricNames(names, re, 10, 4)

	assert.Equal(t, names[0:10], page1)
	assert.Equal(t, names[10:20], page2)
	assert.Equal(t, names[20:25], page3)
	assert.Equal(t, []string{}, page4)
}

func TestCompileAnchored_Invalid(t *testing.T) {
	_, err := compileAnchored("node_(")
	var verr *grafana.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestFetchLabelValues_RequestShape(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"status":"success","data":["node","prometheus"]}`))
	}))
	defer srv.Close()

	gc := grafana.NewClient(grafana.Settings{URL: srv.URL})
	c := newClient(gc, "prom-uid")

	matches := []grafana.Selector{
		{Filters: []grafana.LabelMatcher{{Name: "job", Value: "node"}}},
		{Filters: []grafana.LabelMatcher{{Name: "instance", Value: "db.*", Type: "~"}}},
	}
	values, err := c.fetchLabelValues(context.Background(), "job", matches, "2024-01-02T03:04:05Z", "2024-01-02T04:04:05Z", 50)
	require.NoError(t, err)
	assert.Equal(t, []string{"node", "prometheus"}, values)

	assert.Equal(t, "/api/datasources/proxy/uid/prom-uid/api/v1/label/job/values", gotPath)
	assert.Equal(t, []string{"{job='node'}", "{instance~'db.*'}"}, gotQuery["match[]"])
	assert.Equal(t, []string{"2024-01-02T03:04:05Z"}, gotQuery["start"])
	assert.Equal(t, []string{"2024-01-02T04:04:05Z"}, gotQuery["end"])
	assert.Equal(t, []string{"50"}, gotQuery["limit"])
}

func TestLabelQueryParams_OmitsUnset(t *testing.T) {
	params, err := labelQueryParams(nil, "", "", 0)
	require.NoError(t, err)
	assert.Empty(t, params)
}

func TestEnforceLimit(t *testing.T) {
	assert.Equal(t, 100, enforceLimit(0, 100))
	assert.Equal(t, 100, enforceLimit(-5, 100))
	assert.Equal(t, 25, enforceLimit(25, 100))
}
