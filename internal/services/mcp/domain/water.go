package domain

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// LogWaterInput represents the MCP tool input for logging water intake.
type LogWaterInput struct {
	AmountLiters float64 `json:"amount_liters" jsonschema:"water amount to add, in liters"`
	LogDate      string  `json:"log_date,omitempty" jsonschema:"optional YYYY-MM-DD date, defaults to today (UTC)"`
}

// LogWaterResult represents the MCP tool output for logging water intake.
type LogWaterResult struct {
	TotalWater float64 `json:"total_water" jsonschema:"running water total for the date, in liters"`
	GoalLiters float64 `json:"goal_liters" jsonschema:"configured daily water goal, in liters"`
	Status     string  `json:"status" jsonschema:"hydration classification: low when below goal, good otherwise"`
}

// LogWaterTool defines the MCP tool schema for logging water intake.
func LogWaterTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "log_water",
		Description: "Adds water intake to the day's running total and classifies hydration against the daily goal.",
	}
}

// LogWaterHandler executes a water-logging request.
func LogWaterHandler(tracker Tracker) mcp.ToolHandlerFor[LogWaterInput, LogWaterResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input LogWaterInput) (*mcp.CallToolResult, LogWaterResult, error) {
		invocationID, err := NewInvocationID()
		if err != nil {
			return nil, LogWaterResult{}, fmt.Errorf("generate invocation id: %w", err)
		}

		logged, err := tracker.LogWater(ctx, input.AmountLiters, input.LogDate)
		if err != nil {
			return nil, LogWaterResult{}, fmt.Errorf("log water failed: %w", err)
		}

		result := LogWaterResult{
			TotalWater: logged.TotalWater,
			GoalLiters: logged.GoalLiters,
			Status:     logged.Status,
		}
		return CallToolResultWithInvocation(invocationID), result, nil
	}
}
