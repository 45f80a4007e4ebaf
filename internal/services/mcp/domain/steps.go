package domain

import (
	"context"
	"fmt"

	apperrors "github.com/fracturedbytes/vitals/internal/platform/errors"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SyncStepsInput represents the MCP tool input for syncing Google Fit steps.
// The tool takes no arguments; the sync window is always today (UTC).
type SyncStepsInput struct{}

// SyncStepsResult represents the MCP tool output for syncing Google Fit
// steps. StepsToday always serializes so a zero-step day stays
// distinguishable from a sync that never happened. A missing credential
// reports through Error as a structured result so callers can react
// programmatically instead of handling a hard failure.
type SyncStepsResult struct {
	Date       string `json:"date,omitempty" jsonschema:"the YYYY-MM-DD date the steps were stored under"`
	StepsToday int64  `json:"steps_today" jsonschema:"summed step count written for today, zero included"`
	Error      string `json:"error,omitempty" jsonschema:"configuration problem preventing the sync, when applicable"`
}

// SyncStepsTool defines the MCP tool schema for syncing Google Fit steps.
func SyncStepsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "sync_google_fit_steps",
		Description: "Fetches today's step count from Google Fit and stores it, replacing any previously synced value for the day.",
	}
}

// SyncStepsHandler executes a step-sync request. Configuration errors
// (missing or malformed credential) degrade gracefully into a structured
// result; upstream and storage failures surface as tool errors.
func SyncStepsHandler(tracker Tracker) mcp.ToolHandlerFor[SyncStepsInput, SyncStepsResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ SyncStepsInput) (*mcp.CallToolResult, SyncStepsResult, error) {
		invocationID, err := NewInvocationID()
		if err != nil {
			return nil, SyncStepsResult{}, fmt.Errorf("generate invocation id: %w", err)
		}

		synced, err := tracker.SyncSteps(ctx)
		if err != nil {
			switch apperrors.CodeOf(err) {
			case apperrors.CodeConfigurationCredentialMissing, apperrors.CodeConfigurationCredentialInvalid:
				return CallToolResultWithInvocation(invocationID), SyncStepsResult{Error: err.Error()}, nil
			}
			return nil, SyncStepsResult{}, fmt.Errorf("step sync failed: %w", err)
		}

		result := SyncStepsResult{
			Date:       synced.Date,
			StepsToday: synced.Steps,
		}
		return CallToolResultWithInvocation(invocationID), result, nil
	}
}
