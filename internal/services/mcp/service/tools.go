package service

import (
	"fmt"

	"github.com/fracturedbytes/vitals/internal/services/mcp/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type mcpRegistrationTarget interface {
	AddTool(*mcp.Tool, any) error
	AddResource(*mcp.Resource, mcp.ResourceHandler)
}

func registerLedgerTools(registrar mcpRegistrationTarget, tracker domain.Tracker) error {
	registrations := []struct {
		tool    *mcp.Tool
		handler any
	}{
		{tool: domain.StoreMealTool(), handler: domain.StoreMealHandler(tracker)},
		{tool: domain.LogWaterTool(), handler: domain.LogWaterHandler(tracker)},
		{tool: domain.SyncStepsTool(), handler: domain.SyncStepsHandler(tracker)},
		{tool: domain.SuggestPlanTool(), handler: domain.SuggestPlanHandler(tracker)},
		{tool: domain.DailySummaryTool(), handler: domain.DailySummaryHandler(tracker)},
	}
	for _, registration := range registrations {
		if err := registerTool(registrar, registration.tool, registration.handler); err != nil {
			return err
		}
	}
	return nil
}

func registerTool(registrar mcpRegistrationTarget, tool *mcp.Tool, handler any) error {
	if tool == nil {
		return fmt.Errorf("tool is nil")
	}
	return registrar.AddTool(tool, handler)
}

// registerLedgerResources registers readable ledger MCP resources.
func registerLedgerResources(registrar mcpRegistrationTarget, tracker domain.Tracker) {
	registrar.AddResource(domain.TodayResource(), domain.TodayResourceHandler(tracker))
}
