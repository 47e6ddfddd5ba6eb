package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ipergamali/BloomBuddy/internal/db"
	"github.com/ipergamali/BloomBuddy/internal/model"
)

// SQLiteStore keeps the record in a single plant_state row and logs growth,
// watering and resets to care_events.
type SQLiteStore struct {
	db *sql.DB
}

func OpenSQLite(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}
	sqldb, err := db.Open(path)
	if err != nil {
		return nil, err
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		_ = sqldb.Close()
		return nil, err
	}
	return &SQLiteStore{db: sqldb}, nil
}

func (s *SQLiteStore) Load() (model.PlantRecord, error) {
	rec, found, err := loadRow(s.db)
	if err != nil {
		return model.NewRecord(), err
	}
	if !found {
		return model.NewRecord(), nil
	}
	return rec, nil
}

func (s *SQLiteStore) Save(rec model.PlantRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save tx: %w", err)
	}

	prev, found, err := loadRow(tx)
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	var watered any
	if rec.HasBeenWatered() {
		watered = model.FormatDate(rec.LastWateredDate)
	}
	if _, err := tx.Exec(`
INSERT INTO plant_state(id, day_count, last_update_date, last_watered_date, stage, stage_index, is_wilted, days_idle, updated_at)
VALUES(1, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(id) DO UPDATE SET
  day_count=excluded.day_count,
  last_update_date=excluded.last_update_date,
  last_watered_date=excluded.last_watered_date,
  stage=excluded.stage,
  stage_index=excluded.stage_index,
  is_wilted=excluded.is_wilted,
  days_idle=excluded.days_idle,
  updated_at=excluded.updated_at
`, max(rec.DayCount, 1), model.FormatDate(rec.LastUpdateDate), watered, rec.Stage, max(rec.StageIndex, 0), boolToInt(rec.IsWilted), max(rec.DaysIdle, 0)); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("save plant state: %w", err)
	}

	for _, ev := range careEventsBetween(prev, found, rec) {
		if _, err := tx.Exec(`INSERT INTO care_events(kind, day, day_count) VALUES(?, ?, ?)`, ev.Kind, ev.Day, ev.DayCount); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s event: %w", ev.Kind, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit plant state: %w", err)
	}
	return nil
}

func (s *SQLiteStore) History(limit int) ([]model.CareEvent, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`
SELECT id, kind, day, day_count, recorded_at
FROM care_events
ORDER BY id DESC
LIMIT ?
`, limit)
	if err != nil {
		return nil, fmt.Errorf("list care events: %w", err)
	}
	defer rows.Close()

	out := []model.CareEvent{}
	for rows.Next() {
		var ev model.CareEvent
		var recordedAt string
		if err := rows.Scan(&ev.ID, &ev.Kind, &ev.Day, &ev.DayCount, &recordedAt); err != nil {
			return nil, fmt.Errorf("scan care event: %w", err)
		}
		ev.RecordedAt = parseSQLiteTime(recordedAt)
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate care events: %w", err)
	}
	return out, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type rowQuerier interface {
	QueryRow(query string, args ...any) *sql.Row
}

func loadRow(q rowQuerier) (model.PlantRecord, bool, error) {
	var (
		rec         model.PlantRecord
		lastUpdate  string
		lastWatered sql.NullString
		wilted      int
	)
	err := q.QueryRow(`
SELECT day_count, last_update_date, last_watered_date, stage, stage_index, is_wilted, days_idle
FROM plant_state WHERE id = 1
`).Scan(&rec.DayCount, &lastUpdate, &lastWatered, &rec.Stage, &rec.StageIndex, &wilted, &rec.DaysIdle)
	if err == sql.ErrNoRows {
		return model.PlantRecord{}, false, nil
	}
	if err != nil {
		return model.PlantRecord{}, false, fmt.Errorf("load plant state: %w", err)
	}
	rec.IsWilted = wilted != 0
	if t, err := model.ParseDate(lastUpdate); err == nil {
		rec.LastUpdateDate = t
	}
	if lastWatered.Valid {
		if t, err := model.ParseDate(lastWatered.String); err == nil {
			rec.LastWateredDate = t
		}
	}
	return rec, true, nil
}

func careEventsBetween(prev model.PlantRecord, found bool, next model.PlantRecord) []model.CareEvent {
	var events []model.CareEvent
	day := model.FormatDate(next.LastUpdateDate)
	switch {
	case found && next.DayCount < prev.DayCount:
		events = append(events, model.CareEvent{Kind: model.CareEventReset, Day: day, DayCount: next.DayCount})
	case found && next.DayCount > prev.DayCount:
		events = append(events, model.CareEvent{Kind: model.CareEventGrow, Day: day, DayCount: next.DayCount})
	}
	if next.HasBeenWatered() && (!found || !next.LastWateredDate.Equal(prev.LastWateredDate)) {
		events = append(events, model.CareEvent{
			Kind:     model.CareEventWater,
			Day:      model.FormatDate(next.LastWateredDate),
			DayCount: next.DayCount,
		})
	}
	return events
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func parseSQLiteTime(v string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05", "2006-01-02T15:04:05Z"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}
