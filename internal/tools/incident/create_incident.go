package incident

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/obsmcp/mcp-grafana/internal/grafana"
)

type createIncidentParams struct {
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Severity      string  `json:"severity,omitempty"`
	RoomPrefix    string  `json:"roomPrefix,omitempty"`
	IsDrill       bool    `json:"isDrill,omitempty"`
	Status        string  `json:"status,omitempty"`
	AttachCaption string  `json:"attachCaption,omitempty"`
	AttachURL     string  `json:"attachUrl,omitempty"`
	Labels        []Label `json:"labels,omitempty"`
}

func createIncidentHandler(c *grafana.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var params createIncidentParams
		if err := request.BindArguments(&params); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
		}

		if params.Title == "" {
			return mcp.NewToolResultError("title is required"), nil
		}
		if params.Severity != "" && params.Severity != "minor" && params.Severity != "major" && params.Severity != "critical" {
			return mcp.NewToolResultError(fmt.Sprintf("invalid severity: %s (must be 'minor', 'major' or 'critical')", params.Severity)), nil
		}

		req := CreateIncidentRequest{
			Title:         params.Title,
			Description:   params.Description,
			Severity:      params.Severity,
			RoomPrefix:    params.RoomPrefix,
			IsDrill:       params.IsDrill,
			Status:        params.Status,
			AttachCaption: params.AttachCaption,
			AttachURL:     params.AttachURL,
			Labels:        params.Labels,
		}
		if req.RoomPrefix == "" {
			req.RoomPrefix = "incident"
		}
		if req.Status == "" {
			req.Status = "active"
		}
		if req.Labels == nil {
			req.Labels = []Label{}
		}

		body, err := newClient(c).createIncident(ctx, req)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		return mcp.NewToolResultText(string(body)), nil
	}
}

func newCreateIncidentTool() mcp.Tool {
	return mcp.NewTool(
		"create_incident",
		mcp.WithDescription("Creates an incident in the Grafana Incident plugin."),
		mcp.WithString("title",
			mcp.Description("The title of the incident"),
			mcp.Required(),
		),
		mcp.WithString("description",
			mcp.Description("A human readable description of the incident"),
		),
		mcp.WithString("severity",
			mcp.Description("The severity of the incident: 'minor', 'major' or 'critical'"),
		),
		mcp.WithString("roomPrefix",
			mcp.Description("Prefix for the incident room (default: 'incident')"),
		),
		mcp.WithBoolean("isDrill",
			mcp.Description("Whether the incident is a drill"),
		),
		mcp.WithString("status",
			mcp.Description("The initial status of the incident: 'active' (default) or 'resolved'"),
		),
		mcp.WithString("attachCaption",
			mcp.Description("Caption of an attachment URL"),
		),
		mcp.WithString("attachUrl",
			mcp.Description("URL to attach to the incident"),
		),
		mcp.WithArray("labels",
			mcp.Description("Labels ({key, label}) to attach to the incident"),
		),
	)
}

// RegisterCreateIncident registers the create_incident tool.
func RegisterCreateIncident(s *server.MCPServer, c *grafana.Client) {
	s.AddTool(newCreateIncidentTool(), createIncidentHandler(c))
}
