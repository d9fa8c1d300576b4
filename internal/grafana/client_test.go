package grafana

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientBearerAuth(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(Settings{URL: srv.URL, APIKey: "my-token"})
	_, err := c.Get(context.Background(), "/api/datasources", nil)
	require.NoError(t, err)
	assert.Equal(t, "Bearer my-token", gotAuth)
}

func TestClientNoAuthHeaderWithoutAPIKey(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(Settings{URL: srv.URL})
	_, err := c.Get(context.Background(), "/api/datasources", nil)
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestClientGetQueryParams(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	params := url.Values{}
	params.Add("match[]", `{job='node'}`)
	params.Add("match[]", `{env='dev'}`)
	params.Set("limit", "100")

	c := NewClient(Settings{URL: srv.URL})
	_, err := c.Get(context.Background(), "/api/v1/labels", params)
	require.NoError(t, err)
	assert.Equal(t, []string{`{job='node'}`, `{env='dev'}`}, gotQuery["match[]"])
	assert.Equal(t, "100", gotQuery.Get("limit"))
}

func TestClientPostJSONBody(t *testing.T) {
	var gotContentType string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(Settings{URL: srv.URL})
	_, err := c.Post(context.Background(), "/api/ds/query", map[string]string{"from": "0"})
	require.NoError(t, err)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, map[string]any{"from": "0"}, gotBody)
}

func TestClientTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"permission denied"}`))
	}))
	defer srv.Close()

	c := NewClient(Settings{URL: srv.URL})
	_, err := c.Get(context.Background(), "/api/datasources", nil)

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, http.StatusForbidden, transportErr.StatusCode)
	assert.Contains(t, transportErr.Body, "permission denied")
}

func TestClientTrimsTrailingSlash(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(Settings{URL: srv.URL + "/"})
	_, err := c.Get(context.Background(), "/api/search", nil)
	require.NoError(t, err)
	assert.Equal(t, "/api/search", gotPath)
}
