// Package sift provides MCP tools for Grafana's Sift automated
// incident-investigation service, treated here as an opaque remote API.
package sift

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/obsmcp/mcp-grafana/internal/grafana"
)

const apiPrefix = "/api/plugins/grafana-ml-app/resources/sift/api/v1"

// client scopes the shared Grafana client to the Sift plugin API.
type client struct {
	grafana *grafana.Client
}

func newClient(c *grafana.Client) *client {
	return &client{grafana: c}
}

// InvestigationRequestData scopes an investigation to a label set and a time
// range.
type InvestigationRequestData struct {
	Labels map[string]string `json:"labels"`
	Start  time.Time         `json:"start"`
	End    time.Time         `json:"end"`
}

// CreateInvestigationRequest is the body posted to create an investigation.
type CreateInvestigationRequest struct {
	Name        string                   `json:"name"`
	RequestData InvestigationRequestData `json:"requestData"`
}

// AnalysisPreview is the reduced analysis form embedded in an investigation.
type AnalysisPreview struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Status      string    `json:"status"`
	Stage       string    `json:"stage"`
	Interesting bool      `json:"interesting"`
}

// AnalysisMeta summarizes the analyses run for an investigation.
type AnalysisMeta struct {
	CountsByStage map[string]map[string]int `json:"countsByStage"`
	Items         []AnalysisPreview         `json:"items"`
}

// Investigation is a Sift investigation as returned by the plugin API.
type Investigation struct {
	ID       uuid.UUID    `json:"id"`
	Name     string       `json:"name"`
	Analyses AnalysisMeta `json:"analyses"`
	Status   string       `json:"status"`
}

// Terminated reports whether the investigation has reached a terminal state.
func (i Investigation) Terminated() bool {
	return i.Status == "finished" || i.Status == "failed"
}

// AnalysisEvent is a single event recorded during an analysis.
type AnalysisEvent struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Details     any       `json:"details"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
}

// AnalysisResult is the outcome of a single analysis. Details vary by check.
type AnalysisResult struct {
	Interesting bool            `json:"interesting"`
	Message     string          `json:"message"`
	Details     any             `json:"details"`
	Events      []AnalysisEvent `json:"events,omitempty"`
}

// Analysis is a full Sift analysis.
type Analysis struct {
	ID              uuid.UUID      `json:"id"`
	InvestigationID uuid.UUID      `json:"investigationId"`
	Name            string         `json:"name"`
	Stage           string         `json:"stage"`
	Status          string         `json:"status"`
	Title           string         `json:"title"`
	Result          AnalysisResult `json:"result"`
}

func (c *client) createInvestigation(ctx context.Context, req CreateInvestigationRequest) (Investigation, error) {
	body, err := c.grafana.Post(ctx, apiPrefix+"/investigations", req)
	if err != nil {
		return Investigation{}, err
	}
	return grafana.UnwrapData[Investigation](body)
}

func (c *client) getInvestigation(ctx context.Context, id uuid.UUID) (Investigation, error) {
	body, err := c.grafana.Get(ctx, fmt.Sprintf("%s/investigations/%s", apiPrefix, id), nil)
	if err != nil {
		return Investigation{}, err
	}
	return grafana.UnwrapData[Investigation](body)
}

func (c *client) getAnalyses(ctx context.Context, investigationID uuid.UUID) ([]Analysis, error) {
	body, err := c.grafana.Get(ctx, fmt.Sprintf("%s/investigations/%s/analyses", apiPrefix, investigationID), nil)
	if err != nil {
		return nil, err
	}
	return grafana.UnwrapData[[]Analysis](body)
}
