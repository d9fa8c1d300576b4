package incident

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/obsmcp/mcp-grafana/internal/grafana"
)

type addActivityParams struct {
	IncidentID       string `json:"incidentId"`
	Body             string `json:"body"`
	EventTimeRFC3339 string `json:"eventTimeRfc3339,omitempty"`
}

func addActivityHandler(c *grafana.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var params addActivityParams
		if err := request.BindArguments(&params); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
		}

		if params.IncidentID == "" {
			return mcp.NewToolResultError("incidentId is required"), nil
		}
		if params.Body == "" {
			return mcp.NewToolResultError("body is required"), nil
		}

		req := AddActivityRequest{
			IncidentID:   params.IncidentID,
			ActivityKind: ActivityKindUserNote,
			Body:         params.Body,
		}
		if params.EventTimeRFC3339 != "" {
			eventTime, err := time.Parse(time.RFC3339, params.EventTimeRFC3339)
			if err != nil {
				return mcp.NewToolResultError(grafana.NewValidationError("parsing event time: %v", err).Error()), nil
			}
			req.EventTime = &eventTime
		}

		body, err := newClient(c).addActivity(ctx, req)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		return mcp.NewToolResultText(string(body)), nil
	}
}

func newAddActivityTool() mcp.Tool {
	return mcp.NewTool(
		"add_activity_to_incident",
		mcp.WithDescription("Adds a user note to an incident's activity timeline. "+
			"URLs in the note body are parsed and attached as context."),
		mcp.WithString("incidentId",
			mcp.Description("The ID of the incident to add the note to"),
			mcp.Required(),
		),
		mcp.WithString("body",
			mcp.Description("A human readable description of the activity"),
			mcp.Required(),
		),
		mcp.WithString("eventTimeRfc3339",
			mcp.Description("The time the activity occurred, in RFC3339 format. Defaults to the current time"),
		),
	)
}

// RegisterAddActivity registers the add_activity_to_incident tool.
func RegisterAddActivity(s *server.MCPServer, c *grafana.Client) {
	s.AddTool(newAddActivityTool(), addActivityHandler(c))
}
