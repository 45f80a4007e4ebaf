// Package tracker implements the daily-aggregate ledger operations: meal and
// water accumulation, step sync, and the exercise suggestion engine.
package tracker

import (
	"context"
	"errors"
	"time"

	apperrors "github.com/fracturedbytes/vitals/internal/platform/errors"
	"github.com/fracturedbytes/vitals/internal/services/ledger/storage"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// dateLayout is the ledger's calendar-date key format.
const dateLayout = "2006-01-02"

// Hydration classification values returned by LogWater.
const (
	StatusLow  = "low"
	StatusGood = "good"
)

// Config holds the goal configuration for the tracker. Zero values fall back
// to the defaults below.
type Config struct {
	// CalorieGoal is the daily calorie target reported in summaries.
	CalorieGoal float64
	// WaterGoalLiters is the daily hydration target; totals strictly below it
	// classify as StatusLow.
	WaterGoalLiters float64
	// PlanStance is the default plan stance reported in summaries.
	PlanStance string
}

func (c Config) withDefaults() Config {
	if c.CalorieGoal <= 0 {
		c.CalorieGoal = 2000
	}
	if c.WaterGoalLiters <= 0 {
		c.WaterGoalLiters = 2.5
	}
	if c.PlanStance == "" {
		c.PlanStance = "maintain"
	}
	return c
}

// StepSource fetches the summed step count for a time window from the
// external fitness service. Implementations return platform errors with
// CONFIGURATION_* codes when no credential is available and UPSTREAM_* codes
// on transport or decode failures.
type StepSource interface {
	FetchSteps(ctx context.Context, start, end time.Time) (int64, error)
}

// Service exposes the four ledger operations over a LedgerStore.
//
// All date handling is UTC: "today" is the UTC calendar date, and the step
// sync window runs from midnight UTC to the current instant, so the replace
// write and the row key always agree on which day they describe.
type Service struct {
	store  storage.LedgerStore
	steps  StepSource
	cfg    Config
	clock  func() time.Time
	tracer trace.Tracer
}

// New creates a tracker service over the given store and step source.
func New(store storage.LedgerStore, steps StepSource, cfg Config) *Service {
	return &Service{
		store:  store,
		steps:  steps,
		cfg:    cfg.withDefaults(),
		clock:  time.Now,
		tracer: otel.Tracer("vitals/tracker"),
	}
}

// Config returns the effective goal configuration.
func (s *Service) Config() Config {
	return s.cfg
}

func (s *Service) today() string {
	return s.clock().UTC().Format(dateLayout)
}

// resolveDate validates an optional caller-supplied date, defaulting to the
// current UTC day when blank.
func (s *Service) resolveDate(date string) (string, error) {
	if date == "" {
		return s.today(), nil
	}
	parsed, err := time.Parse(dateLayout, date)
	if err != nil {
		return "", apperrors.WithMetadata(apperrors.CodeDateInvalid, "log date must be YYYY-MM-DD", map[string]string{"date": date})
	}
	return parsed.Format(dateLayout), nil
}

// MealResult reports a stored meal.
type MealResult struct {
	Stored        string
	CaloriesAdded float64
	Date          string
}

// StoreMeal appends a meal to the date's ledger and accumulates its calories
// into the daily total. Calories are caller-supplied estimates and are not
// range-checked.
func (s *Service) StoreMeal(ctx context.Context, description string, calories float64, date string) (MealResult, error) {
	ctx, span := s.tracer.Start(ctx, "tracker.StoreMeal")
	defer span.End()

	if description == "" {
		return MealResult{}, apperrors.New(apperrors.CodeMealDescriptionEmpty, "meal description is required")
	}
	resolved, err := s.resolveDate(date)
	if err != nil {
		return MealResult{}, err
	}

	if _, err := s.store.AppendMeal(ctx, resolved, description, calories); err != nil {
		return MealResult{}, apperrors.Wrap(apperrors.CodeStoreFailure, "append meal", err)
	}
	return MealResult{Stored: description, CaloriesAdded: calories, Date: resolved}, nil
}

// WaterResult reports the running water total for a date and its hydration
// classification against the configured goal.
type WaterResult struct {
	Date       string
	TotalWater float64
	GoalLiters float64
	Status     string
}

// LogWater adds liters to the date's running water total and classifies the
// result: StatusLow when the total is strictly below the goal, else
// StatusGood.
func (s *Service) LogWater(ctx context.Context, liters float64, date string) (WaterResult, error) {
	ctx, span := s.tracer.Start(ctx, "tracker.LogWater")
	defer span.End()

	resolved, err := s.resolveDate(date)
	if err != nil {
		return WaterResult{}, err
	}

	log, err := s.store.AddWater(ctx, resolved, liters)
	if err != nil {
		return WaterResult{}, apperrors.Wrap(apperrors.CodeStoreFailure, "add water", err)
	}

	status := StatusGood
	if log.WaterLiters < s.cfg.WaterGoalLiters {
		status = StatusLow
	}
	return WaterResult{
		Date:       resolved,
		TotalWater: log.WaterLiters,
		GoalLiters: s.cfg.WaterGoalLiters,
		Status:     status,
	}, nil
}

// StepsResult reports a completed step sync.
type StepsResult struct {
	Date  string
	Steps int64
}

// SyncSteps fetches today's summed step count from the step source and writes
// it into the ledger with replace semantics: every successful sync fully
// supersedes the previous value for the day, so retries never double-count.
// Source errors propagate unchanged and leave the ledger untouched.
func (s *Service) SyncSteps(ctx context.Context) (StepsResult, error) {
	ctx, span := s.tracer.Start(ctx, "tracker.SyncSteps")
	defer span.End()

	if s.steps == nil {
		return StepsResult{}, apperrors.New(apperrors.CodeConfigurationCredentialMissing, "step source is not configured")
	}

	now := s.clock().UTC()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	steps, err := s.steps.FetchSteps(ctx, start, now)
	if err != nil {
		return StepsResult{}, err
	}

	date := now.Format(dateLayout)
	log, err := s.store.ReplaceSteps(ctx, date, steps)
	if err != nil {
		return StepsResult{}, apperrors.Wrap(apperrors.CodeStoreFailure, "replace steps", err)
	}
	return StepsResult{Date: log.LogDate, Steps: log.Steps}, nil
}

// PlanResult reports an exercise recommendation, or the absence of step data
// for today. Absence is distinct from a zero-step day.
type PlanResult struct {
	HasData    bool
	StepsToday int64
	Plan       Plan
}

// SuggestPlan derives a workout recommendation from today's stored step
// count. It is read-only: no ActivityLog row for today yields a no-data
// result, never a spurious zero-step recommendation.
func (s *Service) SuggestPlan(ctx context.Context) (PlanResult, error) {
	ctx, span := s.tracer.Start(ctx, "tracker.SuggestPlan")
	defer span.End()

	log, err := s.store.GetActivityLog(ctx, s.today())
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return PlanResult{HasData: false}, nil
		}
		return PlanResult{}, apperrors.Wrap(apperrors.CodeStoreFailure, "get activity log", err)
	}
	return PlanResult{HasData: true, StepsToday: log.Steps, Plan: PlanFor(log.Steps)}, nil
}

// SummaryEntry is one meal line in a daily summary.
type SummaryEntry struct {
	Description string
	Calories    float64
}

// SummaryResult is a read-only roll-up of one day's ledger.
type SummaryResult struct {
	Date          string
	TotalCalories float64
	CalorieGoal   float64
	Entries       []SummaryEntry
	TotalWater    float64
	WaterGoal     float64
	Steps         int64
	StepsSynced   bool
	PlanStance    string
}

// DailySummary reads back the date's totals and meal entries. Missing
// aggregates report as zero totals; the step count keeps its absence flag so
// a zero-step day stays distinguishable from an unsynced one.
func (s *Service) DailySummary(ctx context.Context, date string) (SummaryResult, error) {
	ctx, span := s.tracer.Start(ctx, "tracker.DailySummary")
	defer span.End()

	resolved, err := s.resolveDate(date)
	if err != nil {
		return SummaryResult{}, err
	}

	summary := SummaryResult{
		Date:        resolved,
		CalorieGoal: s.cfg.CalorieGoal,
		WaterGoal:   s.cfg.WaterGoalLiters,
		PlanStance:  s.cfg.PlanStance,
	}

	log, err := s.store.GetDailyLog(ctx, resolved)
	switch {
	case err == nil:
		summary.TotalCalories = log.TotalCalories
	case errors.Is(err, storage.ErrNotFound):
	default:
		return SummaryResult{}, apperrors.Wrap(apperrors.CodeStoreFailure, "get daily log", err)
	}

	entries, err := s.store.ListFoodEntries(ctx, resolved)
	if err != nil {
		return SummaryResult{}, apperrors.Wrap(apperrors.CodeStoreFailure, "list food entries", err)
	}
	for _, entry := range entries {
		summary.Entries = append(summary.Entries, SummaryEntry{Description: entry.Description, Calories: entry.Calories})
	}

	water, err := s.store.GetWaterLog(ctx, resolved)
	switch {
	case err == nil:
		summary.TotalWater = water.WaterLiters
	case errors.Is(err, storage.ErrNotFound):
	default:
		return SummaryResult{}, apperrors.Wrap(apperrors.CodeStoreFailure, "get water log", err)
	}

	activity, err := s.store.GetActivityLog(ctx, resolved)
	switch {
	case err == nil:
		summary.Steps = activity.Steps
		summary.StepsSynced = true
	case errors.Is(err, storage.ErrNotFound):
	default:
		return SummaryResult{}, apperrors.Wrap(apperrors.CodeStoreFailure, "get activity log", err)
	}

	return summary, nil
}
