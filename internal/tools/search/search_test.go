package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obsmcp/mcp-grafana/internal/grafana"
)

const defaultLimit = 1000

func TestBuildSearchParams_NilQueryOmitted(t *testing.T) {
	params := buildSearchParams(searchDashboardsParams{}, defaultLimit)
	_, present := params["query"]
	assert.False(t, present)
	assert.Empty(t, params)
}

func TestBuildSearchParams_EmptyQueryStillSent(t *testing.T) {
	empty := ""
	params := buildSearchParams(searchDashboardsParams{Query: &empty}, defaultLimit)
	_, present := params["query"]
	assert.True(t, present)
	assert.Equal(t, "query=", params.Encode())
}

func TestBuildSearchParams_Query(t *testing.T) {
	q := "machine learning"
	params := buildSearchParams(searchDashboardsParams{Query: &q}, defaultLimit)
	assert.Equal(t, "machine learning", params.Get("query"))
}

func TestBuildSearchParams_Filters(t *testing.T) {
	q := "prod"
	params := buildSearchParams(searchDashboardsParams{
		Query:         &q,
		Tags:          []string{"team-a", "sla"},
		Type:          "dash-db",
		DashboardIDs:  []int{1234, 5678},
		DashboardUIDs: []string{"abc"},
		FolderUIDs:    []string{"f1", "f2"},
		Starred:       true,
		Limit:         25,
		Page:          3,
	}, defaultLimit)

	assert.Equal(t, []string{"team-a", "sla"}, params["tag"])
	assert.Equal(t, "dash-db", params.Get("type"))
	assert.Equal(t, []string{"1234", "5678"}, params["dashboardIds"])
	assert.Equal(t, []string{"abc"}, params["dashboardUids"])
	assert.Equal(t, []string{"f1", "f2"}, params["folderUids"])
	assert.Equal(t, "true", params.Get("starred"))
	assert.Equal(t, "25", params.Get("limit"))
	assert.Equal(t, "3", params.Get("page"))
}

func TestBuildSearchParams_DefaultsOmitted(t *testing.T) {
	params := buildSearchParams(searchDashboardsParams{
		Starred: false,
		Limit:   defaultLimit,
		Page:    1,
	}, defaultLimit)

	assert.Empty(t, params)
}

func TestSearchDashboards(t *testing.T) {
	var gotPath string
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`[
			{"id": 1, "uid": "abc", "title": "Node Exporter", "type": "dash-db", "tags": ["node"], "isStarred": false, "folderUid": "infra"}
		]`))
	}))
	defer srv.Close()

	c := newClient(grafana.NewClient(grafana.Settings{URL: srv.URL}))
	q := "node"
	results, err := c.searchDashboards(context.Background(), buildSearchParams(searchDashboardsParams{Query: &q}, defaultLimit))
	require.NoError(t, err)

	assert.Equal(t, "/api/search", gotPath)
	assert.Equal(t, "node", gotQuery.Get("query"))
	require.Len(t, results, 1)
	assert.Equal(t, "abc", results[0].UID)
	assert.Equal(t, "Node Exporter", results[0].Title)
	assert.Equal(t, "infra", results[0].FolderUID)
}

func TestSearchDashboards_DecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not": "a list"}`))
	}))
	defer srv.Close()

	c := newClient(grafana.NewClient(grafana.Settings{URL: srv.URL}))
	_, err := c.searchDashboards(context.Background(), nil)
	var derr *grafana.DecodeError
	require.ErrorAs(t, err, &derr)
}
