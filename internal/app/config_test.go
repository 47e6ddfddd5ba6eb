package app_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ipergamali/BloomBuddy/internal/app"
	"github.com/ipergamali/BloomBuddy/internal/store"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := app.LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load missing config: %v", err)
	}
	g := cfg.Growth()
	if g.NeglectThreshold != 3 || len(g.Stages) != 4 || g.AssetDir != "assets" || cfg.Store != store.KindJSON {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
neglect_threshold: 5
asset_dir: ""
store: SQLite
stages:
  - {name: seed, min_day: 1}
  - {name: sapling, min_day: 7}
  - {name: tree, min_day: 30}
`)
	cfg, err := app.LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	g := cfg.Growth()
	if g.NeglectThreshold != 5 || cfg.Store != store.KindSQLite {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if len(g.Stages) != 3 || g.Stages[2].Name != "tree" || g.Stages[2].MinDay != 30 {
		t.Fatalf("unexpected stages: %+v", g.Stages)
	}
	if got := g.ImageFor("tree"); got != "plant_tree.png" {
		t.Fatalf("expected bare asset name, got %q", got)
	}
}

func TestLoadConfigPartialKeepsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := app.LoadConfig(writeConfig(t, "neglect_threshold: 2\n"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	g := cfg.Growth()
	if g.NeglectThreshold != 2 || len(g.Stages) != 4 || g.AssetDir != "assets" {
		t.Fatalf("expected only neglect threshold to change, got %+v", g)
	}
}

func TestLoadConfigEmptyFile(t *testing.T) {
	t.Parallel()

	cfg, err := app.LoadConfig(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("load empty config: %v", err)
	}
	if cfg.Growth().NeglectThreshold != 3 {
		t.Fatalf("expected defaults for empty file")
	}
}

func TestLoadConfigInvalidFallsBack(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"syntax":        "stages: [",
		"unknown key":   "colour: green\n",
		"bad threshold": "neglect_threshold: 0\n",
		"bad store":     "store: redis\n",
		"unordered":     "stages:\n  - {name: seed, min_day: 5}\n  - {name: bloom, min_day: 2}\n",
	}
	for name, body := range cases {
		cfg, err := app.LoadConfig(writeConfig(t, body))
		if err == nil {
			t.Fatalf("%s: expected error", name)
		}
		if cfg.Growth().NeglectThreshold != 3 || len(cfg.Stages) != 4 || cfg.Store != store.KindJSON {
			t.Fatalf("%s: expected defaults alongside the error, got %+v", name, cfg)
		}
	}
}

func TestConfigYAMLRoundTrip(t *testing.T) {
	t.Parallel()

	data, err := app.DefaultConfig().YAML()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.Contains(string(data), "neglect_threshold: 3") || !strings.Contains(string(data), "name: bloom") {
		t.Fatalf("unexpected yaml:\n%s", data)
	}
	cfg, err := app.LoadConfig(writeConfig(t, string(data)))
	if err != nil {
		t.Fatalf("reload encoded config: %v", err)
	}
	if len(cfg.Stages) != 4 || cfg.Stages[3].MinDay != 20 {
		t.Fatalf("unexpected reloaded stages: %+v", cfg.Stages)
	}
}

func TestDataPathsFollowXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)

	p, err := app.DefaultDataPath()
	if err != nil {
		t.Fatalf("data path: %v", err)
	}
	if p != filepath.Join(dir, "plasma-bloombuddy", "data.json") {
		t.Fatalf("unexpected data path %q", p)
	}
	db, err := app.DefaultDBPath()
	if err != nil {
		t.Fatalf("db path: %v", err)
	}
	if filepath.Dir(db) != filepath.Dir(p) {
		t.Fatalf("expected sqlite file next to data file, got %q", db)
	}
}
