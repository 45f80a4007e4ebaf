package domain

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fracturedbytes/vitals/internal/services/ledger/tracker"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// TodayResourceURI is the readable resource exposing today's ledger roll-up.
const TodayResourceURI = "vitals://today"

// DailySummaryInput represents the MCP tool input for reading a day's
// summary.
type DailySummaryInput struct {
	LogDate string `json:"log_date,omitempty" jsonschema:"optional YYYY-MM-DD date, defaults to today (UTC)"`
}

// SummaryMealEntry is one meal line in a summary payload.
type SummaryMealEntry struct {
	Description string  `json:"description" jsonschema:"stored meal description"`
	Calories    float64 `json:"calories" jsonschema:"estimated calories for the meal"`
}

// DailySummaryResult represents the MCP tool output for a day's summary. Step
// counts carry a synced flag so a zero-step day stays distinguishable from an
// unsynced one.
type DailySummaryResult struct {
	Date            string             `json:"date" jsonschema:"the YYYY-MM-DD date summarized"`
	TotalCalories   float64            `json:"total_calories" jsonschema:"running calorie total for the date"`
	CalorieGoal     float64            `json:"calorie_goal" jsonschema:"configured daily calorie goal"`
	Meals           []SummaryMealEntry `json:"meals,omitempty" jsonschema:"meal entries logged for the date"`
	TotalWaterL     float64            `json:"total_water_liters" jsonschema:"running water total for the date, in liters"`
	WaterGoalLiters float64            `json:"water_goal_liters" jsonschema:"configured daily water goal, in liters"`
	Steps           int64              `json:"steps" jsonschema:"synced step count, zero when unsynced"`
	StepsSynced     bool               `json:"steps_synced" jsonschema:"whether a step count has been synced for the date"`
	PlanStance      string             `json:"plan_stance" jsonschema:"configured plan stance"`
}

// DailySummaryTool defines the MCP tool schema for reading a day's summary.
func DailySummaryTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "daily_summary",
		Description: "Reads back one day's ledger: calorie and water totals against their goals, meal entries, and the synced step count.",
	}
}

// DailySummaryHandler executes a summary read.
func DailySummaryHandler(tracker Tracker) mcp.ToolHandlerFor[DailySummaryInput, DailySummaryResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input DailySummaryInput) (*mcp.CallToolResult, DailySummaryResult, error) {
		invocationID, err := NewInvocationID()
		if err != nil {
			return nil, DailySummaryResult{}, fmt.Errorf("generate invocation id: %w", err)
		}

		summary, err := tracker.DailySummary(ctx, input.LogDate)
		if err != nil {
			return nil, DailySummaryResult{}, fmt.Errorf("daily summary failed: %w", err)
		}

		return CallToolResultWithInvocation(invocationID), summaryResultFrom(summary), nil
	}
}

func summaryResultFrom(summary tracker.SummaryResult) DailySummaryResult {
	result := DailySummaryResult{
		Date:            summary.Date,
		TotalCalories:   summary.TotalCalories,
		CalorieGoal:     summary.CalorieGoal,
		TotalWaterL:     summary.TotalWater,
		WaterGoalLiters: summary.WaterGoal,
		Steps:           summary.Steps,
		StepsSynced:     summary.StepsSynced,
		PlanStance:      summary.PlanStance,
	}
	for _, entry := range summary.Entries {
		result.Meals = append(result.Meals, SummaryMealEntry{Description: entry.Description, Calories: entry.Calories})
	}
	return result
}

// TodayResource defines the readable resource exposing today's roll-up.
func TodayResource() *mcp.Resource {
	return &mcp.Resource{
		URI:         TodayResourceURI,
		Name:        "today",
		Description: "Today's ledger roll-up: calorie and water totals, meal entries, and the synced step count.",
		MIMEType:    "application/json",
	}
}

// TodayResourceHandler returns today's summary as a JSON resource.
func TodayResourceHandler(tracker Tracker) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		if tracker == nil {
			return nil, fmt.Errorf("tracker is not configured")
		}

		uri := TodayResourceURI
		if req != nil && req.Params != nil && req.Params.URI != "" {
			uri = req.Params.URI
		}
		if uri != TodayResourceURI {
			return nil, fmt.Errorf("unknown resource URI %q", uri)
		}

		summary, err := tracker.DailySummary(ctx, "")
		if err != nil {
			return nil, fmt.Errorf("daily summary failed: %w", err)
		}

		data, err := json.MarshalIndent(summaryResultFrom(summary), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal daily summary: %w", err)
		}

		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{
					URI:      uri,
					MIMEType: "application/json",
					Text:     string(data),
				},
			},
		}, nil
	}
}
