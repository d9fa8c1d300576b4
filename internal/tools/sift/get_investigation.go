package sift

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/obsmcp/mcp-grafana/internal/grafana"
)

type investigationIDParams struct {
	InvestigationID string `json:"investigationId"`
}

func (p investigationIDParams) parse() (uuid.UUID, error) {
	id, err := uuid.Parse(p.InvestigationID)
	if err != nil {
		return uuid.Nil, grafana.NewValidationError("invalid investigationId: %v", err)
	}
	return id, nil
}

func getInvestigationHandler(c *grafana.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var params investigationIDParams
		if err := request.BindArguments(&params); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
		}

		id, err := params.parse()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		investigation, err := newClient(c).getInvestigation(ctx, id)
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

func newGetInvestigationTool() mcp.Tool {
	return mcp.NewTool(
		"get_sift_investigation",
		mcp.WithDescription("Gets a Sift investigation by ID, including a preview of its analyses. "+
			"The investigation is complete once its status is 'finished' or 'failed'."),
		mcp.WithString("investigationId",
			mcp.Description("The UUID of the investigation"),
			mcp.Required(),
		),
	)
}

// RegisterGetInvestigation registers the get_sift_investigation tool.
func RegisterGetInvestigation(s *server.MCPServer, c *grafana.Client) {
	s.AddTool(newGetInvestigationTool(), getInvestigationHandler(c))
}
