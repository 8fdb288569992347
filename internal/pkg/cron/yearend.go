package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/dharmeshparikh-cloud/DVBC-ERP-sub002/internal/domain/leave"
)

// YearEndJobs contains leave year-end cron jobs
type YearEndJobs struct {
	yearEndService leave.YearEndService
}

// NewYearEndJobs creates leave year-end cron jobs
func NewYearEndJobs(yearEndService leave.YearEndService) *YearEndJobs {
	return &YearEndJobs{
		yearEndService: yearEndService,
	}
}

// RegisterJobs registers all year-end related cron jobs
func (j *YearEndJobs) RegisterJobs(scheduler *Scheduler) {
	// Freeze previous-year balances in early January. The snapshot upsert is
	// idempotent, so the daily re-run during the window is harmless.
	scheduler.AddJob(
		"leave_year_end_snapshots",
		24*time.Hour,
		j.ProcessPreviousYear,
	)
}

// ProcessPreviousYear snapshots last year's balances during the first week of
// January. Outside the window it is a no-op.
func (j *YearEndJobs) ProcessPreviousYear(ctx context.Context) error {
	now := time.Now()
	if now.Month() != time.January || now.Day() > 7 {
		return nil
	}

	year := now.Year() - 1
	result, err := j.yearEndService.Process(ctx, year)
	if err != nil {
		return err
	}

	slog.Info("Year-end leave processing completed",
		"year", year,
		"processed_count", result.ProcessedCount,
		"error_count", len(result.Errors),
	)
	return nil
}
