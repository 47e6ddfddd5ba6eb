package service

import (
	"fmt"
	"path"
	"regexp"
	"time"

	"github.com/ipergamali/BloomBuddy/internal/model"
)

type Stage struct {
	Name   string `yaml:"name"`
	MinDay int    `yaml:"min_day"`
}

type GrowthConfig struct {
	Stages           []Stage
	NeglectThreshold int
	AssetDir         string
}

const DefaultNeglectThreshold = 3

var stageNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

func DefaultStages() []Stage {
	return []Stage{
		{Name: "seed", MinDay: 1},
		{Name: "sprout", MinDay: 4},
		{Name: "bud", MinDay: 10},
		{Name: "bloom", MinDay: 20},
	}
}

func DefaultGrowthConfig() GrowthConfig {
	return GrowthConfig{
		Stages:           DefaultStages(),
		NeglectThreshold: DefaultNeglectThreshold,
		AssetDir:         "assets",
	}
}

func (c GrowthConfig) Validate() error {
	if len(c.Stages) == 0 {
		return fmt.Errorf("at least one stage is required")
	}
	if c.NeglectThreshold < 1 {
		return fmt.Errorf("neglect threshold must be >= 1")
	}
	seen := map[string]bool{}
	for i, s := range c.Stages {
		if !stageNamePattern.MatchString(s.Name) {
			return fmt.Errorf("stage %d: invalid name %q (lowercase letters, digits, '-' or '_')", i, s.Name)
		}
		if seen[s.Name] {
			return fmt.Errorf("stage %d: duplicate name %q", i, s.Name)
		}
		seen[s.Name] = true
		if i == 0 && s.MinDay < 1 {
			return fmt.Errorf("stage %q: min_day must be >= 1", s.Name)
		}
		if i > 0 && s.MinDay <= c.Stages[i-1].MinDay {
			return fmt.Errorf("stage %q: min_day must be greater than %d", s.Name, c.Stages[i-1].MinDay)
		}
	}
	return nil
}

func (c GrowthConfig) withDefaults() GrowthConfig {
	if len(c.Stages) == 0 {
		c.Stages = DefaultStages()
	}
	if c.NeglectThreshold < 1 {
		c.NeglectThreshold = DefaultNeglectThreshold
	}
	return c
}

// StageIndex returns the largest stage index whose threshold is <= dayCount,
// or 0 when none qualifies.
func (c GrowthConfig) StageIndex(dayCount int) int {
	idx := 0
	for i, s := range c.Stages {
		if s.MinDay > dayCount {
			break
		}
		idx = i
	}
	return idx
}

// ImageFor names the asset the shell renders for a stage.
func (c GrowthConfig) ImageFor(stage string) string {
	name := "plant_" + stage + ".png"
	if c.AssetDir == "" {
		return name
	}
	return path.Join(c.AssetDir, name)
}

// Evaluate advances rec to now. It does no I/O.
func Evaluate(rec model.PlantRecord, now time.Time, watered bool, cfg GrowthConfig) (model.PlantRecord, model.Snapshot) {
	cfg = cfg.withDefaults()
	today := beginningOfDay(now.In(time.Local))
	next := sanitize(rec, today)

	prevCare := laterOf(next.LastUpdateDate, next.LastWateredDate)
	elapsed := DaysBetween(next.LastUpdateDate, today)
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed >= 1 {
		next.DayCount += elapsed
		next.LastUpdateDate = today
	}
	if watered {
		next.LastWateredDate = today
	}

	switch {
	case watered:
		next.DaysIdle = 0
	case elapsed >= 1:
		next.DaysIdle = max(DaysBetween(prevCare, today), 0)
	default:
		next.DaysIdle = max(next.DaysIdle, 0)
	}
	next.IsWilted = next.DaysIdle >= cfg.NeglectThreshold

	next.StageIndex = cfg.StageIndex(next.DayCount)
	next.Stage = cfg.Stages[next.StageIndex].Name

	return next, SnapshotOf(next, cfg)
}

func SnapshotOf(rec model.PlantRecord, cfg GrowthConfig) model.Snapshot {
	return model.Snapshot{
		Stage:      rec.Stage,
		StageIndex: rec.StageIndex,
		Day:        rec.DayCount,
		IsWilted:   rec.IsWilted,
		DaysIdle:   rec.DaysIdle,
		Image:      cfg.ImageFor(rec.Stage),
	}
}

// DefaultSnapshot is the payload for a brand new plant.
func DefaultSnapshot(now time.Time, cfg GrowthConfig) model.Snapshot {
	_, snap := Evaluate(model.NewRecord(), now, false, cfg)
	return snap
}

func sanitize(rec model.PlantRecord, today time.Time) model.PlantRecord {
	if rec.DayCount < 1 {
		rec.DayCount = 1
	}
	if rec.LastUpdateDate.IsZero() {
		rec.LastUpdateDate = today
	} else {
		rec.LastUpdateDate = beginningOfDay(rec.LastUpdateDate.In(time.Local))
	}
	if !rec.LastWateredDate.IsZero() {
		rec.LastWateredDate = beginningOfDay(rec.LastWateredDate.In(time.Local))
	}
	return rec
}
