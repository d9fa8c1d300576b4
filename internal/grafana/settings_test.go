package grafana

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearGrafanaEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"GRAFANA_URL",
		"GRAFANA_API_KEY",
		"GRAFANA_TOOLS__SEARCH__ENABLED",
		"GRAFANA_TOOLS__SEARCH__LIMIT",
		"GRAFANA_TOOLS__DATASOURCES__ENABLED",
		"GRAFANA_TOOLS__INCIDENT__ENABLED",
		"GRAFANA_TOOLS__PROMETHEUS__ENABLED",
		"GRAFANA_TOOLS__SIFT__ENABLED",
	} {
		// t.Setenv registers the restore; Unsetenv clears for this test.
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadSettingsDefaults(t *testing.T) {
	clearGrafanaEnv(t)

	s, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000", s.URL)
	assert.Empty(t, s.APIKey)
	assert.True(t, s.Tools.Search.Enabled)
	assert.Equal(t, 1000, s.Tools.Search.Limit)
	assert.True(t, s.Tools.Datasources.Enabled)
	assert.True(t, s.Tools.Incident.Enabled)
	assert.True(t, s.Tools.Prometheus.Enabled)
	assert.True(t, s.Tools.Sift.Enabled)
}

func TestLoadSettingsFromEnv(t *testing.T) {
	clearGrafanaEnv(t)
	t.Setenv("GRAFANA_URL", "http://grafana.example.com/")
	t.Setenv("GRAFANA_API_KEY", "my-test-api-key")
	t.Setenv("GRAFANA_TOOLS__SEARCH__LIMIT", "25")
	t.Setenv("GRAFANA_TOOLS__INCIDENT__ENABLED", "false")

	s, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, "http://grafana.example.com", s.URL, "trailing slash is trimmed")
	assert.Equal(t, "my-test-api-key", s.APIKey)
	assert.Equal(t, 25, s.Tools.Search.Limit)
	assert.False(t, s.Tools.Incident.Enabled)
	assert.True(t, s.Tools.Prometheus.Enabled)
}

func TestLoadSettingsInvalidValue(t *testing.T) {
	clearGrafanaEnv(t)
	t.Setenv("GRAFANA_TOOLS__SEARCH__LIMIT", "not-a-number")

	_, err := LoadSettings()
	require.Error(t, err)
}
