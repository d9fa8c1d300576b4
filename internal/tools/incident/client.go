// Package incident provides MCP tools for the Grafana Incident plugin.
package incident

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/obsmcp/mcp-grafana/internal/grafana"
)

const apiPrefix = "/api/plugins/grafana-incident-app/resources/api/"

// client scopes the shared Grafana client to the incident plugin API.
type client struct {
	grafana *grafana.Client
}

func newClient(c *grafana.Client) *client {
	return &client{grafana: c}
}

// IncidentPreviewsQuery is the inner query of a previews request.
type IncidentPreviewsQuery struct {
	Limit          int    `json:"limit"`
	OrderDirection string `json:"orderDirection"`
	OrderField     string `json:"orderField"`
	QueryString    string `json:"queryString"`
}

// QueryIncidentPreviewsRequest is the body posted to
// IncidentsService.QueryIncidentPreviews.
type QueryIncidentPreviewsRequest struct {
	Query                    IncidentPreviewsQuery `json:"query"`
	IncludeCustomFieldValues bool                  `json:"includeCustomFieldValues"`
}

// Label is a key/label pair attached to an incident.
type Label struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// CreateIncidentRequest is the body posted to IncidentsService.CreateIncident.
type CreateIncidentRequest struct {
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Severity      string  `json:"severity,omitempty"`
	RoomPrefix    string  `json:"roomPrefix"`
	IsDrill       bool    `json:"isDrill"`
	Status        string  `json:"status"`
	AttachCaption string  `json:"attachCaption"`
	AttachURL     string  `json:"attachUrl"`
	Labels        []Label `json:"labels"`
}

// ActivityKind is the kind of an incident activity item. The incident API
// accepts only "userNote" from external clients, so any other value is
// rejected at encode time.
type ActivityKind string

// ActivityKindUserNote is the only activity kind the API accepts.
const ActivityKindUserNote ActivityKind = "userNote"

func (k ActivityKind) MarshalJSON() ([]byte, error) {
	if k != ActivityKindUserNote {
		return nil, fmt.Errorf("unsupported activity kind %q (only %q is supported)", string(k), ActivityKindUserNote)
	}
	return json.Marshal(string(k))
}

// AddActivityRequest is the body posted to ActivityService.AddActivity.
// Note the lowercase-d incidentId here, unlike the close request.
type AddActivityRequest struct {
	IncidentID   string       `json:"incidentId"`
	ActivityKind ActivityKind `json:"activityKind"`
	Body         string       `json:"body"`
	EventTime    *time.Time   `json:"eventTime,omitempty"`
}

// closeIncidentRequest is the body posted to IncidentsService.CloseIncident.
// The capital-D incidentID matches the upstream API contract; it is
// deliberately not unified with the activity request's incidentId.
type closeIncidentRequest struct {
	IncidentID string `json:"incidentID"`
	Summary    string `json:"summary"`
}

func (c *client) queryIncidentPreviews(ctx context.Context, req QueryIncidentPreviewsRequest) ([]byte, error) {
	return c.grafana.Post(ctx, apiPrefix+"IncidentsService.QueryIncidentPreviews", req)
}

func (c *client) createIncident(ctx context.Context, req CreateIncidentRequest) ([]byte, error) {
	return c.grafana.Post(ctx, apiPrefix+"IncidentsService.CreateIncident", req)
}

func (c *client) addActivity(ctx context.Context, req AddActivityRequest) ([]byte, error) {
	return c.grafana.Post(ctx, apiPrefix+"ActivityService.AddActivity", req)
}

func (c *client) closeIncident(ctx context.Context, incidentID, summary string) ([]byte, error) {
	return c.grafana.Post(ctx, apiPrefix+"IncidentsService.CloseIncident", closeIncidentRequest{
		IncidentID: incidentID,
		Summary:    summary,
	})
}
