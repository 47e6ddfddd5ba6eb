package model

import "time"

// DateLayout is the on-disk format for calendar dates.
const DateLayout = "2006-01-02"

// PlantRecord is the persisted plant state. Dates are local calendar days at
// midnight; a zero value means unset.
type PlantRecord struct {
	DayCount        int
	LastUpdateDate  time.Time
	LastWateredDate time.Time
	Stage           string
	StageIndex      int
	IsWilted        bool
	DaysIdle        int
}

// NewRecord returns the first-run record. LastUpdateDate stays unset so the
// evaluator anchors it to the invocation day.
func NewRecord() PlantRecord {
	return PlantRecord{DayCount: 1}
}

func (r PlantRecord) HasBeenWatered() bool {
	return !r.LastWateredDate.IsZero()
}

// Snapshot is the payload handed to the rendering shell.
type Snapshot struct {
	Stage      string `json:"stage"`
	StageIndex int    `json:"stage_index"`
	Day        int    `json:"day"`
	IsWilted   bool   `json:"is_wilted"`
	DaysIdle   int    `json:"days_idle"`
	Image      string `json:"image"`
}

type CareEvent struct {
	ID         int64
	Kind       string
	Day        string
	DayCount   int
	RecordedAt time.Time
}

const (
	CareEventGrow  = "grow"
	CareEventWater = "water"
	CareEventReset = "reset"
)

// FormatDate renders t as YYYY-MM-DD, or "" when t is unset.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD string into local midnight.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.Local)
}
