// Package prompts provides MCP prompt registration and management
// for pre-defined Grafana operations and workflows.
package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func RegisterMCPPrompts(s *server.MCPServer) {
	s.AddPrompt(newInvestigateIncidentPrompt(), investigateIncidentHandler)
}

func newInvestigateIncidentPrompt() mcp.Prompt {
	return mcp.NewPrompt("investigate_incident",
		mcp.WithPromptDescription("Guided workflow for investigating a Grafana incident: "+
			"pulls the incident details, checks related metrics, and records findings back on the incident timeline."),
		mcp.WithArgument("incidentId",
			mcp.ArgumentDescription("The ID of the incident to investigate"),
			mcp.RequiredArgument(),
		),
	)
}

func investigateIncidentHandler(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	incidentID := request.Params.Arguments["incidentId"]
	if incidentID == "" {
		return nil, fmt.Errorf("incidentId argument is required")
	}

	text := fmt.Sprintf(
		"Investigate Grafana incident %s:\n"+
			"1. Use list_incidents to find the incident and note its title, severity and status.\n"+
			"2. Use list_datasources (or the grafana://datasources resource) to find the Prometheus datasource.\n"+
			"3. Use query_prometheus to check metrics related to the affected service around the incident start time.\n"+
			"4. If the cause is unclear, start a create_sift_investigation scoped to the affected labels.\n"+
			"5. Record your findings with add_activity_to_incident, and resolve_incident once mitigated.",
		incidentID,
	)

	return mcp.NewGetPromptResult(
		"Incident investigation workflow",
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(text)),
		},
	), nil
}
