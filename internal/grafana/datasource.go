package grafana

// Datasource is a Grafana datasource as returned by /api/datasources.
// Read-only from this server's perspective; identity is the stable uid (or
// the mutable name for name-based lookup).
type Datasource struct {
	ID               int64           `json:"id"`
	UID              string          `json:"uid"`
	Name             string          `json:"name"`
	Type             string          `json:"type"`
	Access           string          `json:"access"`
	URL              string          `json:"url"`
	User             string          `json:"user"`
	Database         string          `json:"database"`
	BasicAuth        bool            `json:"basicAuth"`
	BasicAuthUser    string          `json:"basicAuthUser,omitempty"`
	IsDefault        bool            `json:"isDefault"`
	WithCredentials  bool            `json:"withCredentials,omitempty"`
	JSONData         map[string]any  `json:"jsonData,omitempty"`
	SecureJSONFields map[string]bool `json:"secureJsonFields,omitempty"`
}
