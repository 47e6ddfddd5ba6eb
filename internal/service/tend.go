package service

import (
	"log/slog"
	"time"

	"github.com/ipergamali/BloomBuddy/internal/model"
)

type RecordStore interface {
	Load() (model.PlantRecord, error)
	Save(model.PlantRecord) error
}

// Tend runs one invocation: load, evaluate, save. Storage failures are logged
// and never keep the caller from getting a payload.
func Tend(st RecordStore, cfg GrowthConfig, now time.Time, watered bool, logger *slog.Logger) model.Snapshot {
	if logger == nil {
		logger = slog.Default()
	}

	rec, err := st.Load()
	if err != nil {
		logger.Warn("plant record unavailable, starting from defaults", "error", err)
		rec = model.NewRecord()
	}
	logger.Debug("plant record loaded",
		"day_count", rec.DayCount,
		"last_update", model.FormatDate(rec.LastUpdateDate),
		"last_watered", model.FormatDate(rec.LastWateredDate),
		"days_idle", rec.DaysIdle)

	next, snap := Evaluate(rec, now, watered, cfg)

	if err := st.Save(next); err != nil {
		logger.Error("save plant record", "error", err)
	}
	logger.Debug("plant evaluated",
		"stage", snap.Stage,
		"day", snap.Day,
		"days_idle", snap.DaysIdle,
		"wilted", snap.IsWilted,
		"watered", watered)
	return snap
}

// Reset replaces the stored plant with a new seed planted today.
func Reset(st RecordStore, cfg GrowthConfig, now time.Time) (model.Snapshot, error) {
	next, snap := Evaluate(model.NewRecord(), now, false, cfg)
	if err := st.Save(next); err != nil {
		return model.Snapshot{}, err
	}
	return snap, nil
}
