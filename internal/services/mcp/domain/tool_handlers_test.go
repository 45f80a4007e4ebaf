package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	apperrors "github.com/fracturedbytes/vitals/internal/platform/errors"
	"github.com/fracturedbytes/vitals/internal/services/ledger/tracker"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type fakeTracker struct {
	mealResult    tracker.MealResult
	mealErr       error
	waterResult   tracker.WaterResult
	waterErr      error
	stepsResult   tracker.StepsResult
	stepsErr      error
	planResult    tracker.PlanResult
	planErr       error
	summaryResult tracker.SummaryResult
	summaryErr    error

	mealDescription string
	mealCalories    float64
	waterLiters     float64
	summaryDate     string
}

func (f *fakeTracker) StoreMeal(_ context.Context, description string, calories float64, _ string) (tracker.MealResult, error) {
	f.mealDescription = description
	f.mealCalories = calories
	return f.mealResult, f.mealErr
}

func (f *fakeTracker) LogWater(_ context.Context, liters float64, _ string) (tracker.WaterResult, error) {
	f.waterLiters = liters
	return f.waterResult, f.waterErr
}

func (f *fakeTracker) SyncSteps(_ context.Context) (tracker.StepsResult, error) {
	return f.stepsResult, f.stepsErr
}

func (f *fakeTracker) SuggestPlan(_ context.Context) (tracker.PlanResult, error) {
	return f.planResult, f.planErr
}

func (f *fakeTracker) DailySummary(_ context.Context, date string) (tracker.SummaryResult, error) {
	f.summaryDate = date
	return f.summaryResult, f.summaryErr
}

func TestStoreMealHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		fake := &fakeTracker{
			mealResult: tracker.MealResult{Stored: "oatmeal", CaloriesAdded: 320, Date: "2026-08-24"},
		}
		handler := StoreMealHandler(fake)
		toolResult, result, err := handler(context.Background(), nil, StoreMealInput{
			Description:       "oatmeal",
			EstimatedCalories: 320,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if toolResult == nil {
			t.Fatal("expected non-nil tool result")
		}
		if toolResult.Meta[invocationIDMetaKey] == "" {
			t.Error("expected invocation id in result metadata")
		}
		if result.Stored != "oatmeal" {
			t.Errorf("expected stored %q, got %q", "oatmeal", result.Stored)
		}
		if result.CaloriesAdded != 320 {
			t.Errorf("expected calories 320, got %v", result.CaloriesAdded)
		}
		if result.Date != "2026-08-24" {
			t.Errorf("expected date 2026-08-24, got %q", result.Date)
		}
		if fake.mealDescription != "oatmeal" || fake.mealCalories != 320 {
			t.Errorf("expected tracker called with oatmeal/320, got %q/%v", fake.mealDescription, fake.mealCalories)
		}
	})

	t.Run("tracker error", func(t *testing.T) {
		fake := &fakeTracker{
			mealErr: apperrors.New(apperrors.CodeMealDescriptionEmpty, "meal description is required"),
		}
		handler := StoreMealHandler(fake)
		_, _, err := handler(context.Background(), nil, StoreMealInput{})
		if err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestLogWaterHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		fake := &fakeTracker{
			waterResult: tracker.WaterResult{Date: "2026-08-24", TotalWater: 1.5, GoalLiters: 2.5, Status: tracker.StatusLow},
		}
		handler := LogWaterHandler(fake)
		toolResult, result, err := handler(context.Background(), nil, LogWaterInput{AmountLiters: 1.5})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if toolResult == nil {
			t.Fatal("expected non-nil tool result")
		}
		if result.TotalWater != 1.5 {
			t.Errorf("expected total 1.5, got %v", result.TotalWater)
		}
		if result.GoalLiters != 2.5 {
			t.Errorf("expected goal 2.5, got %v", result.GoalLiters)
		}
		if result.Status != tracker.StatusLow {
			t.Errorf("expected status low, got %q", result.Status)
		}
		if fake.waterLiters != 1.5 {
			t.Errorf("expected tracker called with 1.5, got %v", fake.waterLiters)
		}
	})

	t.Run("tracker error", func(t *testing.T) {
		fake := &fakeTracker{waterErr: fmt.Errorf("store unavailable")}
		handler := LogWaterHandler(fake)
		_, _, err := handler(context.Background(), nil, LogWaterInput{AmountLiters: 1})
		if err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestSyncStepsHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		fake := &fakeTracker{
			stepsResult: tracker.StepsResult{Date: "2026-08-24", Steps: 7421},
		}
		handler := SyncStepsHandler(fake)
		toolResult, result, err := handler(context.Background(), nil, SyncStepsInput{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if toolResult == nil {
			t.Fatal("expected non-nil tool result")
		}
		if result.Date != "2026-08-24" {
			t.Errorf("expected date 2026-08-24, got %q", result.Date)
		}
		if result.StepsToday != 7421 {
			t.Errorf("expected steps 7421, got %d", result.StepsToday)
		}
		if result.Error != "" {
			t.Errorf("expected empty error field, got %q", result.Error)
		}
	})

	t.Run("missing credential reports structured error", func(t *testing.T) {
		fake := &fakeTracker{
			stepsErr: apperrors.New(apperrors.CodeConfigurationCredentialMissing, "step source is not configured"),
		}
		handler := SyncStepsHandler(fake)
		toolResult, result, err := handler(context.Background(), nil, SyncStepsInput{})
		if err != nil {
			t.Fatalf("expected structured result, got error: %v", err)
		}
		if toolResult == nil {
			t.Fatal("expected non-nil tool result")
		}
		if result.Error == "" {
			t.Fatal("expected error field to be populated")
		}
		if !strings.Contains(result.Error, "not configured") {
			t.Errorf("expected error field to describe missing credential, got %q", result.Error)
		}
		if result.Date != "" || result.StepsToday != 0 {
			t.Errorf("expected empty sync fields, got date %q steps %d", result.Date, result.StepsToday)
		}
	})

	t.Run("invalid credential reports structured error", func(t *testing.T) {
		fake := &fakeTracker{
			stepsErr: apperrors.New(apperrors.CodeConfigurationCredentialInvalid, "credential is malformed"),
		}
		handler := SyncStepsHandler(fake)
		_, result, err := handler(context.Background(), nil, SyncStepsInput{})
		if err != nil {
			t.Fatalf("expected structured result, got error: %v", err)
		}
		if result.Error == "" {
			t.Fatal("expected error field to be populated")
		}
	})

	t.Run("upstream error surfaces as tool error", func(t *testing.T) {
		fake := &fakeTracker{
			stepsErr: apperrors.New(apperrors.CodeUpstreamRequestFailed, "fitness service unreachable"),
		}
		handler := SyncStepsHandler(fake)
		_, _, err := handler(context.Background(), nil, SyncStepsInput{})
		if err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestZeroStepResultsKeepStepsField(t *testing.T) {
	t.Run("sync result", func(t *testing.T) {
		data, err := json.Marshal(SyncStepsResult{Date: "2026-08-24", StepsToday: 0})
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if !strings.Contains(string(data), `"steps_today":0`) {
			t.Fatalf("expected steps_today in payload, got %s", data)
		}
	})

	t.Run("plan result", func(t *testing.T) {
		plan := tracker.PlanFor(0)
		data, err := json.Marshal(SuggestPlanResult{
			StepsToday:           0,
			ActivityLevel:        plan.ActivityLevel,
			RecommendedIntensity: plan.Intensity,
			RecommendedDuration:  plan.Duration,
			WorkoutFocus:         plan.Focus,
		})
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if !strings.Contains(string(data), `"steps_today":0`) {
			t.Fatalf("expected steps_today in payload, got %s", data)
		}
	})
}

func TestSuggestPlanHandler(t *testing.T) {
	t.Run("with step data", func(t *testing.T) {
		fake := &fakeTracker{
			planResult: tracker.PlanResult{
				HasData:    true,
				StepsToday: 5000,
				Plan:       tracker.PlanFor(5000),
			},
		}
		handler := SuggestPlanHandler(fake)
		toolResult, result, err := handler(context.Background(), nil, SuggestPlanInput{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if toolResult == nil {
			t.Fatal("expected non-nil tool result")
		}
		if result.StepsToday != 5000 {
			t.Errorf("expected steps 5000, got %d", result.StepsToday)
		}
		if result.ActivityLevel == "" || result.RecommendedIntensity == "" || result.RecommendedDuration == "" || result.WorkoutFocus == "" {
			t.Errorf("expected all plan fields populated, got %+v", result)
		}
		if result.Message != "" {
			t.Errorf("expected empty message, got %q", result.Message)
		}
	})

	t.Run("no step data", func(t *testing.T) {
		fake := &fakeTracker{planResult: tracker.PlanResult{HasData: false}}
		handler := SuggestPlanHandler(fake)
		_, result, err := handler(context.Background(), nil, SuggestPlanInput{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Message != noStepDataMessage {
			t.Errorf("expected message %q, got %q", noStepDataMessage, result.Message)
		}
		if result.ActivityLevel != "" {
			t.Errorf("expected no plan fields, got activity level %q", result.ActivityLevel)
		}
	})

	t.Run("tracker error", func(t *testing.T) {
		fake := &fakeTracker{planErr: fmt.Errorf("store unavailable")}
		handler := SuggestPlanHandler(fake)
		_, _, err := handler(context.Background(), nil, SuggestPlanInput{})
		if err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestDailySummaryHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		fake := &fakeTracker{
			summaryResult: tracker.SummaryResult{
				Date:          "2026-08-24",
				TotalCalories: 820,
				CalorieGoal:   2000,
				Entries: []tracker.SummaryEntry{
					{Description: "oatmeal", Calories: 320},
					{Description: "salad", Calories: 500},
				},
				TotalWater:  2.0,
				WaterGoal:   2.5,
				Steps:       7421,
				StepsSynced: true,
				PlanStance:  "maintain",
			},
		}
		handler := DailySummaryHandler(fake)
		_, result, err := handler(context.Background(), nil, DailySummaryInput{LogDate: "2026-08-24"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if fake.summaryDate != "2026-08-24" {
			t.Errorf("expected tracker called with 2026-08-24, got %q", fake.summaryDate)
		}
		if result.TotalCalories != 820 {
			t.Errorf("expected total calories 820, got %v", result.TotalCalories)
		}
		if len(result.Meals) != 2 {
			t.Fatalf("expected 2 meals, got %d", len(result.Meals))
		}
		if result.Meals[0].Description != "oatmeal" {
			t.Errorf("expected first meal oatmeal, got %q", result.Meals[0].Description)
		}
		if !result.StepsSynced {
			t.Error("expected steps synced flag set")
		}
	})

	t.Run("tracker error", func(t *testing.T) {
		fake := &fakeTracker{summaryErr: fmt.Errorf("store unavailable")}
		handler := DailySummaryHandler(fake)
		_, _, err := handler(context.Background(), nil, DailySummaryInput{})
		if err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestTodayResourceHandler(t *testing.T) {
	t.Run("returns JSON payload", func(t *testing.T) {
		fake := &fakeTracker{
			summaryResult: tracker.SummaryResult{
				Date:          "2026-08-24",
				TotalCalories: 320,
				CalorieGoal:   2000,
				WaterGoal:     2.5,
				PlanStance:    "maintain",
			},
		}
		handler := TodayResourceHandler(fake)
		result, err := handler(context.Background(), &mcp.ReadResourceRequest{
			Params: &mcp.ReadResourceParams{URI: TodayResourceURI},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.Contents) != 1 {
			t.Fatalf("expected 1 content entry, got %d", len(result.Contents))
		}
		content := result.Contents[0]
		if content.URI != TodayResourceURI {
			t.Errorf("expected URI %q, got %q", TodayResourceURI, content.URI)
		}
		if content.MIMEType != "application/json" {
			t.Errorf("expected JSON MIME type, got %q", content.MIMEType)
		}
		var payload DailySummaryResult
		if err := json.Unmarshal([]byte(content.Text), &payload); err != nil {
			t.Fatalf("unmarshal payload: %v", err)
		}
		if payload.Date != "2026-08-24" {
			t.Errorf("expected date 2026-08-24, got %q", payload.Date)
		}
		if fake.summaryDate != "" {
			t.Errorf("expected today lookup with blank date, got %q", fake.summaryDate)
		}
	})

	t.Run("rejects unknown URI", func(t *testing.T) {
		handler := TodayResourceHandler(&fakeTracker{})
		_, err := handler(context.Background(), &mcp.ReadResourceRequest{
			Params: &mcp.ReadResourceParams{URI: "vitals://yesterday"},
		})
		if err == nil {
			t.Fatal("expected error for unknown URI")
		}
	})

	t.Run("nil tracker", func(t *testing.T) {
		handler := TodayResourceHandler(nil)
		_, err := handler(context.Background(), nil)
		if err == nil {
			t.Fatal("expected error for nil tracker")
		}
	})

	t.Run("tracker error", func(t *testing.T) {
		handler := TodayResourceHandler(&fakeTracker{summaryErr: fmt.Errorf("store unavailable")})
		_, err := handler(context.Background(), nil)
		if err == nil {
			t.Fatal("expected error")
		}
	})
}
