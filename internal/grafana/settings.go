package grafana

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// SearchSettings configures the dashboard search tools.
type SearchSettings struct {
	Enabled bool `env:"ENABLED" envDefault:"true"`
	// Limit is the default maximum number of results to return, unless
	// overridden by the client.
	Limit int `env:"LIMIT" envDefault:"1000"`
}

// GroupSettings configures a single tool group.
type GroupSettings struct {
	Enabled bool `env:"ENABLED" envDefault:"true"`
}

// ToolSettings holds per-group settings, nested under GRAFANA_TOOLS__.
type ToolSettings struct {
	Search      SearchSettings `envPrefix:"SEARCH__"`
	Datasources GroupSettings  `envPrefix:"DATASOURCES__"`
	Incident    GroupSettings  `envPrefix:"INCIDENT__"`
	Prometheus  GroupSettings  `envPrefix:"PROMETHEUS__"`
	Sift        GroupSettings  `envPrefix:"SIFT__"`
}

// Settings is the process-wide configuration, read once at startup and
// threaded explicitly into the components that need it.
//
// Values come from GRAFANA_-prefixed environment variables with "__" as the
// nested delimiter, e.g. GRAFANA_URL, GRAFANA_API_KEY,
// GRAFANA_TOOLS__SEARCH__LIMIT. An optional .env file in the working
// directory is loaded first; real environment variables take precedence.
type Settings struct {
	// URL is the base URL of the Grafana instance.
	URL string `env:"URL" envDefault:"http://localhost:3000"`
	// APIKey is a Grafana API key or service account token with the
	// necessary permissions to use the tools. Optional.
	APIKey string `env:"API_KEY"`

	Tools ToolSettings `envPrefix:"TOOLS__"`
}

// LoadSettings reads settings from the environment (and an optional .env
// file). The returned value is immutable by convention.
func LoadSettings() (Settings, error) {
	// Missing .env is fine; godotenv never overrides existing variables.
	_ = godotenv.Load()

	var s Settings
	if err := env.ParseWithOptions(&s, env.Options{Prefix: "GRAFANA_"}); err != nil {
		return Settings{}, fmt.Errorf("parsing settings from environment: %w", err)
	}
	s.URL = strings.TrimRight(s.URL, "/")
	return s, nil
}
