package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/ipergamali/BloomBuddy/internal/model"
)

const (
	keyDayCount        = "day_count"
	keyLastUpdateDate  = "last_update_date"
	keyLastWateredDate = "last_watered_date"
	keyStage           = "stage"
	keyStageIndex      = "stage_index"
	keyIsWilted        = "is_wilted"
	keyDaysIdle        = "days_idle"

	// Written by the earlier Python helper; read once and replaced.
	legacyKeyLastOpened  = "last_opened"
	legacyKeyGrowthStage = "growth_stage"
)

var knownKeys = map[string]bool{
	keyDayCount:          true,
	keyLastUpdateDate:    true,
	keyLastWateredDate:   true,
	keyStage:             true,
	keyStageIndex:        true,
	keyIsWilted:          true,
	keyDaysIdle:          true,
	legacyKeyLastOpened:  true,
	legacyKeyGrowthStage: true,
}

// JSONStore keeps the record in a flat JSON object. Keys it does not know are
// carried over from the last Load into the next Save.
type JSONStore struct {
	path  string
	extra map[string]json.RawMessage
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

func (s *JSONStore) Path() string { return s.path }

func (s *JSONStore) Load() (model.PlantRecord, error) {
	s.extra = nil
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return model.NewRecord(), nil
	}
	if err != nil {
		return model.NewRecord(), fmt.Errorf("read plant record %s: %w", s.path, err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return model.NewRecord(), fmt.Errorf("%w: %s: %v", ErrCorruptRecord, s.path, err)
	}
	if raw == nil {
		return model.NewRecord(), fmt.Errorf("%w: %s: not a JSON object", ErrCorruptRecord, s.path)
	}

	rec := model.NewRecord()
	rec.DayCount = 0
	if n, ok := decodeInt(raw[keyDayCount]); ok {
		rec.DayCount = n
	} else if stage, ok := decodeInt(raw[legacyKeyGrowthStage]); ok {
		rec.DayCount = stage + 1
	}
	if rec.DayCount < 1 {
		rec.DayCount = 1
	}

	if t, ok := decodeDate(raw[keyLastUpdateDate]); ok {
		rec.LastUpdateDate = t
	} else if t, ok := decodeDate(raw[legacyKeyLastOpened]); ok {
		rec.LastUpdateDate = t
	}
	if t, ok := decodeDate(raw[keyLastWateredDate]); ok {
		rec.LastWateredDate = t
	}
	if n, ok := decodeInt(raw[keyStageIndex]); ok && n >= 0 {
		rec.StageIndex = n
	}
	if n, ok := decodeInt(raw[keyDaysIdle]); ok && n >= 0 {
		rec.DaysIdle = n
	}
	_ = decodeInto(raw[keyStage], &rec.Stage)
	_ = decodeInto(raw[keyIsWilted], &rec.IsWilted)

	for k, v := range raw {
		if knownKeys[k] {
			continue
		}
		if s.extra == nil {
			s.extra = map[string]json.RawMessage{}
		}
		s.extra[k] = v
	}
	return rec, nil
}

func (s *JSONStore) Save(rec model.PlantRecord) error {
	out := make(map[string]any, len(s.extra)+len(knownKeys))
	for k, v := range s.extra {
		out[k] = v
	}
	out[keyDayCount] = rec.DayCount
	out[keyLastUpdateDate] = model.FormatDate(rec.LastUpdateDate)
	if rec.HasBeenWatered() {
		out[keyLastWateredDate] = model.FormatDate(rec.LastWateredDate)
	} else {
		out[keyLastWateredDate] = nil
	}
	out[keyStage] = rec.Stage
	out[keyStageIndex] = rec.StageIndex
	out[keyIsWilted] = rec.IsWilted
	out[keyDaysIdle] = rec.DaysIdle

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal plant record: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write plant record: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace plant record: %w", err)
	}
	return nil
}

func (s *JSONStore) Close() error { return nil }

func decodeInto(raw json.RawMessage, dst any) bool {
	if len(raw) == 0 {
		return false
	}
	return json.Unmarshal(raw, dst) == nil
}

func decodeInt(raw json.RawMessage) (int, bool) {
	var f float64
	if !decodeInto(raw, &f) {
		return 0, false
	}
	return int(f), true
}

func decodeDate(raw json.RawMessage) (time.Time, bool) {
	var s string
	if !decodeInto(raw, &s) || s == "" {
		return time.Time{}, false
	}
	t, err := model.ParseDate(s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
