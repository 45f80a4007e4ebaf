// Package storage defines persistence contracts for the daily ledger.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound indicates a requested ledger record is missing.
var ErrNotFound = errors.New("record not found")

// DailyLog stores the running calorie total for one calendar date.
type DailyLog struct {
	ID            int64
	LogDate       string
	TotalCalories float64
}

// FoodEntry stores one immutable meal record owned by a DailyLog.
type FoodEntry struct {
	ID          int64
	LogID       int64
	Description string
	Calories    float64
}

// WaterLog stores the running water total in liters for one calendar date.
type WaterLog struct {
	LogDate     string
	WaterLiters float64
}

// ActivityLog stores the synced step count for one calendar date. Steps are
// replaced on every sync, never accumulated.
type ActivityLog struct {
	LogDate string
	Steps   int64
}

// LedgerStore persists date-keyed daily aggregates.
//
// Dates are YYYY-MM-DD strings; at most one DailyLog, WaterLog, and
// ActivityLog row exists per date. Aggregate writes are atomic per call: a
// failed call leaves no partial state visible.
type LedgerStore interface {
	// AppendMeal gets or creates the DailyLog for date, appends a FoodEntry,
	// and adds calories to the running total, all in one transaction. It
	// returns the DailyLog as of after the write.
	AppendMeal(ctx context.Context, date, description string, calories float64) (DailyLog, error)
	// GetDailyLog returns the DailyLog for date, or ErrNotFound.
	GetDailyLog(ctx context.Context, date string) (DailyLog, error)
	// ListFoodEntries returns all entries for date in insertion order.
	ListFoodEntries(ctx context.Context, date string) ([]FoodEntry, error)

	// AddWater upserts the WaterLog for date, incrementing the running total
	// by liters, and returns the resulting row.
	AddWater(ctx context.Context, date string, liters float64) (WaterLog, error)
	// GetWaterLog returns the WaterLog for date, or ErrNotFound.
	GetWaterLog(ctx context.Context, date string) (WaterLog, error)

	// ReplaceSteps upserts the ActivityLog for date, fully overwriting any
	// previous step count (replace-on-write, not accumulate).
	ReplaceSteps(ctx context.Context, date string, steps int64) (ActivityLog, error)
	// GetActivityLog returns the ActivityLog for date, or ErrNotFound.
	GetActivityLog(ctx context.Context, date string) (ActivityLog, error)
}
