package bloombuddy

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/ipergamali/BloomBuddy/internal/app"
	"github.com/ipergamali/BloomBuddy/internal/model"
	"github.com/ipergamali/BloomBuddy/internal/store"
	"github.com/spf13/cobra"
)

type session struct {
	cfg     app.Config
	store   store.Store
	openErr error
	now     time.Time
	logger  *slog.Logger
}

// withPlant resolves config, clock and store for one invocation. A store that
// fails to open is replaced by one that reports the failure on every call, so
// the widget commands can still answer with defaults.
func withPlant(cmd *cobra.Command, run func(*session) error) error {
	logger := newLogger(cmd.ErrOrStderr())

	now, err := resolveNow(nowDate)
	if err != nil {
		return err
	}
	cfg := loadConfig(logger)

	kind := cfg.Store
	if strings.TrimSpace(storeKind) != "" {
		kind = strings.ToLower(strings.TrimSpace(storeKind))
		if !store.ValidKind(kind) {
			return fmt.Errorf("invalid --store %q (expected %s or %s)", storeKind, store.KindJSON, store.KindSQLite)
		}
	}

	s := &session{cfg: cfg, now: now, logger: logger}
	path, err := resolveDataPath(kind)
	if err == nil {
		s.store, err = store.Open(kind, path)
	}
	if err != nil {
		logger.Warn("plant store unavailable", "store", kind, "error", err)
		s.openErr = err
		s.store = unavailableStore{err: err}
	} else {
		logger.Debug("plant store opened", "store", kind, "path", path)
	}
	defer s.store.Close()

	return run(s)
}

func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func loadConfig(logger *slog.Logger) app.Config {
	path := configPath
	if path == "" {
		p, err := app.DefaultConfigPath()
		if err != nil {
			logger.Debug("no config directory, using defaults", "error", err)
			return app.DefaultConfig()
		}
		path = p
	}
	cfg, err := app.LoadConfig(path)
	if err != nil {
		logger.Warn("ignoring config, using defaults", "error", err)
	}
	return cfg
}

func resolveDataPath(kind string) (string, error) {
	if dataPath != "" {
		return dataPath, nil
	}
	if kind == store.KindSQLite {
		return app.DefaultDBPath()
	}
	return app.DefaultDataPath()
}

func resolveNow(date string) (time.Time, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return time.Now(), nil
	}
	t, err := model.ParseDate(date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q (expected YYYY-MM-DD)", date)
	}
	return t, nil
}

type unavailableStore struct {
	err error
}

func (u unavailableStore) Load() (model.PlantRecord, error) { return model.NewRecord(), u.err }
func (u unavailableStore) Save(model.PlantRecord) error     { return u.err }
func (u unavailableStore) Close() error                     { return nil }
