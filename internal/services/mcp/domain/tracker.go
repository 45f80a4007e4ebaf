package domain

import (
	"context"

	"github.com/fracturedbytes/vitals/internal/services/ledger/tracker"
)

// Tracker is the ledger capability surface the tool handlers call. The
// concrete implementation is *tracker.Service; tests substitute fakes.
type Tracker interface {
	StoreMeal(ctx context.Context, description string, calories float64, date string) (tracker.MealResult, error)
	LogWater(ctx context.Context, liters float64, date string) (tracker.WaterResult, error)
	SyncSteps(ctx context.Context) (tracker.StepsResult, error)
	SuggestPlan(ctx context.Context) (tracker.PlanResult, error)
	DailySummary(ctx context.Context, date string) (tracker.SummaryResult, error)
}
