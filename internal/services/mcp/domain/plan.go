package domain

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// noStepDataMessage is returned when no step count has been synced today.
const noStepDataMessage = "No step data synced yet."

// SuggestPlanInput represents the MCP tool input for the suggestion engine.
// The tool takes no arguments; it always reads today's step count.
type SuggestPlanInput struct{}

// SuggestPlanResult represents the MCP tool output for the suggestion
// engine. When no step data exists for today only Message is set: absence of
// data is distinct from a zero-step recommendation.
type SuggestPlanResult struct {
	StepsToday           int64  `json:"steps_today" jsonschema:"today's stored step count, zero included"`
	ActivityLevel        string `json:"activity_level,omitempty" jsonschema:"classified activity level: low, moderate, or high"`
	RecommendedIntensity string `json:"recommended_intensity,omitempty" jsonschema:"recommended workout intensity"`
	RecommendedDuration  string `json:"recommended_duration,omitempty" jsonschema:"recommended workout duration"`
	WorkoutFocus         string `json:"workout_focus,omitempty" jsonschema:"recommended workout focus"`
	Message              string `json:"message,omitempty" jsonschema:"set when no step data has been synced today"`
}

// SuggestPlanTool defines the MCP tool schema for the suggestion engine.
func SuggestPlanTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "suggest_exercise_plan",
		Description: "Derives a workout recommendation from today's synced step count.",
	}
}

// SuggestPlanHandler executes a plan-suggestion request.
func SuggestPlanHandler(tracker Tracker) mcp.ToolHandlerFor[SuggestPlanInput, SuggestPlanResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ SuggestPlanInput) (*mcp.CallToolResult, SuggestPlanResult, error) {
		invocationID, err := NewInvocationID()
		if err != nil {
			return nil, SuggestPlanResult{}, fmt.Errorf("generate invocation id: %w", err)
		}

		suggestion, err := tracker.SuggestPlan(ctx)
		if err != nil {
			return nil, SuggestPlanResult{}, fmt.Errorf("suggest exercise plan failed: %w", err)
		}
		if !suggestion.HasData {
			return CallToolResultWithInvocation(invocationID), SuggestPlanResult{Message: noStepDataMessage}, nil
		}

		result := SuggestPlanResult{
			StepsToday:           suggestion.StepsToday,
			ActivityLevel:        suggestion.Plan.ActivityLevel,
			RecommendedIntensity: suggestion.Plan.Intensity,
			RecommendedDuration:  suggestion.Plan.Duration,
			WorkoutFocus:         suggestion.Plan.Focus,
		}
		return CallToolResultWithInvocation(invocationID), result, nil
	}
}
