package sift

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/obsmcp/mcp-grafana/internal/grafana"
)

// defaultLookback is the investigation window used when no start time is
// given.
const defaultLookback = 30 * time.Minute

type createInvestigationParams struct {
	Name         string            `json:"name"`
	Labels       map[string]string `json:"labels"`
	StartRFC3339 string            `json:"startRfc3339,omitempty"`
	EndRFC3339   string            `json:"endRfc3339,omitempty"`
}

// buildCreateRequest fills the investigation window: start defaults to 30
// minutes before now, end to now.
func buildCreateRequest(params createInvestigationParams, now time.Time) (CreateInvestigationRequest, error) {
	start := now.Add(-defaultLookback)
	end := now

	var err error
	if params.StartRFC3339 != "" {
		if start, err = time.Parse(time.RFC3339, params.StartRFC3339); err != nil {
			return CreateInvestigationRequest{}, grafana.NewValidationError("parsing start time: %v", err)
		}
	}
	if params.EndRFC3339 != "" {
		if end, err = time.Parse(time.RFC3339, params.EndRFC3339); err != nil {
			return CreateInvestigationRequest{}, grafana.NewValidationError("parsing end time: %v", err)
		}
	}

	labels := params.Labels
	if labels == nil {
		labels = map[string]string{}
	}

	return CreateInvestigationRequest{
		Name: params.Name,
		RequestData: InvestigationRequestData{
			Labels: labels,
			Start:  start,
			End:    end,
		},
	}, nil
}

func createInvestigationHandler(c *grafana.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var params createInvestigationParams
		if err := request.BindArguments(&params); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
		}

		if params.Name == "" {
			return mcp.NewToolResultError("name is required"), nil
		}

		req, err := buildCreateRequest(params, time.Now().UTC())
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		investigation, err := newClient(c).createInvestigation(ctx, req)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		jsonData, err := json.MarshalIndent(investigation, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("marshalling result: %v", err)), nil
		}

		return mcp.NewToolResultText(string(jsonData)), nil
	}
}

func newCreateInvestigationTool() mcp.Tool {
	return mcp.NewTool(
		"create_sift_investigation",
		mcp.WithDescription("Starts a Sift investigation scoped to a set of labels and a time range. "+
			"The labels are used when searching for relevant metrics, logs and traces; "+
			"including 'cluster' and 'namespace' labels is highly recommended where possible. "+
			"Poll get_sift_investigation until the returned status is 'finished' or 'failed'."),
		mcp.WithString("name",
			mcp.Description("The name of the investigation"),
			mcp.Required(),
		),
		mcp.WithObject("labels",
			mcp.Description("Labels used to scope the investigation, e.g. {\"cluster\": \"prod\", \"namespace\": \"checkout\"}"),
		),
		mcp.WithString("startRfc3339",
			mcp.Description("Start of the investigation window, in RFC3339 format. Defaults to 30 minutes ago"),
		),
		mcp.WithString("endRfc3339",
			mcp.Description("End of the investigation window, in RFC3339 format. Defaults to now"),
		),
	)
}

// RegisterCreateInvestigation registers the create_sift_investigation tool.
func RegisterCreateInvestigation(s *server.MCPServer, c *grafana.Client) {
	s.AddTool(newCreateInvestigationTool(), createInvestigationHandler(c))
}
