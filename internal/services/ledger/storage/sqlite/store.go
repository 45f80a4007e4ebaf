// Package sqlite provides a SQLite-backed ledger storage implementation.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	sqlitemigrate "github.com/fracturedbytes/vitals/internal/platform/storage/sqlitemigrate"
	"github.com/fracturedbytes/vitals/internal/services/ledger/storage"
	"github.com/fracturedbytes/vitals/internal/services/ledger/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store persists the daily ledger in SQLite.
type Store struct {
	sqlDB *sql.DB
}

// Open opens a SQLite ledger store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// aggregateMode selects how a daily upsert combines the incoming value with
// an existing row for the same date.
type aggregateMode int

const (
	// modeAccumulate adds the incoming value to the stored one.
	modeAccumulate aggregateMode = iota
	// modeReplace overwrites the stored value with the incoming one.
	modeReplace
)

// upsertDailyValueSQL builds the shared get-or-create-then-mutate statement
// for single-column daily aggregates. The table and column names come from
// the fixed schema, never from caller input.
func upsertDailyValueSQL(table, column string, mode aggregateMode) string {
	update := fmt.Sprintf("%s = %s.%s + excluded.%s", column, table, column, column)
	if mode == modeReplace {
		update = fmt.Sprintf("%s = excluded.%s", column, column)
	}
	return fmt.Sprintf(
		`INSERT INTO %s (log_date, %s) VALUES (?, ?)
		 ON CONFLICT(log_date) DO UPDATE SET %s
		 RETURNING %s`,
		table, column, update, column,
	)
}

// AppendMeal gets or creates the daily log for date, appends a food entry,
// and increments the running calorie total inside one transaction so the
// entry and the total are visible together or not at all.
func (s *Store) AppendMeal(ctx context.Context, date, description string, calories float64) (storage.DailyLog, error) {
	if err := ctx.Err(); err != nil {
		return storage.DailyLog{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.DailyLog{}, fmt.Errorf("storage is not configured")
	}
	date = strings.TrimSpace(date)
	if date == "" {
		return storage.DailyLog{}, fmt.Errorf("date is required")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return storage.DailyLog{}, fmt.Errorf("start transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var logID int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM logs WHERE log_date = ?`, date).Scan(&logID)
	if errors.Is(err, sql.ErrNoRows) {
		err = tx.QueryRowContext(
			ctx,
			`INSERT INTO logs (log_date, total_calories) VALUES (?, 0) RETURNING id`,
			date,
		).Scan(&logID)
	}
	if err != nil {
		return storage.DailyLog{}, fmt.Errorf("get or create daily log: %w", err)
	}

	if _, err := tx.ExecContext(
		ctx,
		`INSERT INTO food_entries (log_id, description, calories) VALUES (?, ?, ?)`,
		logID, description, calories,
	); err != nil {
		return storage.DailyLog{}, fmt.Errorf("append food entry: %w", err)
	}

	var total float64
	if err := tx.QueryRowContext(
		ctx,
		`UPDATE logs SET total_calories = total_calories + ? WHERE id = ? RETURNING total_calories`,
		calories, logID,
	).Scan(&total); err != nil {
		return storage.DailyLog{}, fmt.Errorf("accumulate calories: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return storage.DailyLog{}, fmt.Errorf("commit meal: %w", err)
	}
	return storage.DailyLog{ID: logID, LogDate: date, TotalCalories: total}, nil
}

// GetDailyLog returns the daily log for date, or storage.ErrNotFound.
func (s *Store) GetDailyLog(ctx context.Context, date string) (storage.DailyLog, error) {
	if err := ctx.Err(); err != nil {
		return storage.DailyLog{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.DailyLog{}, fmt.Errorf("storage is not configured")
	}

	var log storage.DailyLog
	err := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, log_date, total_calories FROM logs WHERE log_date = ?`,
		strings.TrimSpace(date),
	).Scan(&log.ID, &log.LogDate, &log.TotalCalories)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.DailyLog{}, storage.ErrNotFound
		}
		return storage.DailyLog{}, fmt.Errorf("get daily log: %w", err)
	}
	return log, nil
}

// ListFoodEntries returns all food entries for date in insertion order. A
// date with no daily log yields an empty slice, not an error.
func (s *Store) ListFoodEntries(ctx context.Context, date string) ([]storage.FoodEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT e.id, e.log_id, e.description, e.calories
		   FROM food_entries e
		   JOIN logs l ON l.id = e.log_id
		  WHERE l.log_date = ?
		  ORDER BY e.id ASC`,
		strings.TrimSpace(date),
	)
	if err != nil {
		return nil, fmt.Errorf("list food entries: %w", err)
	}
	defer rows.Close()

	var entries []storage.FoodEntry
	for rows.Next() {
		var entry storage.FoodEntry
		if err := rows.Scan(&entry.ID, &entry.LogID, &entry.Description, &entry.Calories); err != nil {
			return nil, fmt.Errorf("list food entries: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list food entries: %w", err)
	}
	return entries, nil
}

// AddWater upserts the water log for date, incrementing the running total by
// liters, and returns the row the write produced.
func (s *Store) AddWater(ctx context.Context, date string, liters float64) (storage.WaterLog, error) {
	if err := ctx.Err(); err != nil {
		return storage.WaterLog{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.WaterLog{}, fmt.Errorf("storage is not configured")
	}
	date = strings.TrimSpace(date)
	if date == "" {
		return storage.WaterLog{}, fmt.Errorf("date is required")
	}

	var total float64
	err := s.sqlDB.QueryRowContext(
		ctx,
		upsertDailyValueSQL("water_logs", "water_liters", modeAccumulate),
		date, liters,
	).Scan(&total)
	if err != nil {
		return storage.WaterLog{}, fmt.Errorf("add water: %w", err)
	}
	return storage.WaterLog{LogDate: date, WaterLiters: total}, nil
}

// GetWaterLog returns the water log for date, or storage.ErrNotFound.
func (s *Store) GetWaterLog(ctx context.Context, date string) (storage.WaterLog, error) {
	if err := ctx.Err(); err != nil {
		return storage.WaterLog{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.WaterLog{}, fmt.Errorf("storage is not configured")
	}

	var log storage.WaterLog
	err := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT log_date, water_liters FROM water_logs WHERE log_date = ?`,
		strings.TrimSpace(date),
	).Scan(&log.LogDate, &log.WaterLiters)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.WaterLog{}, storage.ErrNotFound
		}
		return storage.WaterLog{}, fmt.Errorf("get water log: %w", err)
	}
	return log, nil
}

// ReplaceSteps upserts the activity log for date, fully overwriting any
// previous step count. Re-syncing the same day never double-counts.
func (s *Store) ReplaceSteps(ctx context.Context, date string, steps int64) (storage.ActivityLog, error) {
	if err := ctx.Err(); err != nil {
		return storage.ActivityLog{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.ActivityLog{}, fmt.Errorf("storage is not configured")
	}
	date = strings.TrimSpace(date)
	if date == "" {
		return storage.ActivityLog{}, fmt.Errorf("date is required")
	}

	var stored int64
	err := s.sqlDB.QueryRowContext(
		ctx,
		upsertDailyValueSQL("activity_logs", "steps", modeReplace),
		date, steps,
	).Scan(&stored)
	if err != nil {
		return storage.ActivityLog{}, fmt.Errorf("replace steps: %w", err)
	}
	return storage.ActivityLog{LogDate: date, Steps: stored}, nil
}

// GetActivityLog returns the activity log for date, or storage.ErrNotFound.
func (s *Store) GetActivityLog(ctx context.Context, date string) (storage.ActivityLog, error) {
	if err := ctx.Err(); err != nil {
		return storage.ActivityLog{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.ActivityLog{}, fmt.Errorf("storage is not configured")
	}

	var log storage.ActivityLog
	err := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT log_date, steps FROM activity_logs WHERE log_date = ?`,
		strings.TrimSpace(date),
	).Scan(&log.LogDate, &log.Steps)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.ActivityLog{}, storage.ErrNotFound
		}
		return storage.ActivityLog{}, fmt.Errorf("get activity log: %w", err)
	}
	return log, nil
}

var _ storage.LedgerStore = (*Store)(nil)
