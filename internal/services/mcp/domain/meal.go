package domain

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// StoreMealInput represents the MCP tool input for logging a meal.
type StoreMealInput struct {
	Description       string  `json:"description" jsonschema:"free-text description of the meal"`
	EstimatedCalories float64 `json:"estimated_calories" jsonschema:"caller-supplied calorie estimate for the meal"`
	LogDate           string  `json:"log_date,omitempty" jsonschema:"optional YYYY-MM-DD date, defaults to today (UTC)"`
}

// StoreMealResult represents the MCP tool output for logging a meal.
type StoreMealResult struct {
	Stored        string  `json:"stored" jsonschema:"the stored meal description"`
	CaloriesAdded float64 `json:"calories_added" jsonschema:"calories added to the day's running total"`
	Date          string  `json:"date" jsonschema:"the resolved YYYY-MM-DD date the meal was logged under"`
}

// StoreMealTool defines the MCP tool schema for logging a meal.
func StoreMealTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "store_meal",
		Description: "Stores a meal with its estimated calories and accumulates it into the day's calorie total.",
	}
}

// StoreMealHandler executes a meal-logging request.
func StoreMealHandler(tracker Tracker) mcp.ToolHandlerFor[StoreMealInput, StoreMealResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input StoreMealInput) (*mcp.CallToolResult, StoreMealResult, error) {
		invocationID, err := NewInvocationID()
		if err != nil {
			return nil, StoreMealResult{}, fmt.Errorf("generate invocation id: %w", err)
		}

		stored, err := tracker.StoreMeal(ctx, input.Description, input.EstimatedCalories, input.LogDate)
		if err != nil {
			return nil, StoreMealResult{}, fmt.Errorf("store meal failed: %w", err)
		}

		result := StoreMealResult{
			Stored:        stored.Stored,
			CaloriesAdded: stored.CaloriesAdded,
			Date:          stored.Date,
		}
		return CallToolResultWithInvocation(invocationID), result, nil
	}
}
