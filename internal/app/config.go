package app

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/ipergamali/BloomBuddy/internal/service"
	"github.com/ipergamali/BloomBuddy/internal/store"
	"gopkg.in/yaml.v3"
)

type Config struct {
	NeglectThreshold int             `yaml:"neglect_threshold"`
	AssetDir         *string         `yaml:"asset_dir,omitempty"`
	Store            string          `yaml:"store"`
	Stages           []service.Stage `yaml:"stages"`
}

func DefaultConfig() Config {
	g := service.DefaultGrowthConfig()
	assetDir := g.AssetDir
	return Config{
		NeglectThreshold: g.NeglectThreshold,
		AssetDir:         &assetDir,
		Store:            store.KindJSON,
		Stages:           g.Stages,
	}
}

// LoadConfig reads the YAML config at path. Fields left out keep their
// defaults. A missing file is not an error; any other problem returns the
// defaults together with the error so callers can warn and carry on.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return DefaultConfig(), fmt.Errorf("read config %s: %w", path, err)
	}

	parsed := DefaultConfig()
	parsed.Stages = nil
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&parsed); err != nil && !errors.Is(err, io.EOF) {
		return DefaultConfig(), fmt.Errorf("parse config %s: %w", path, err)
	}
	if len(parsed.Stages) == 0 {
		parsed.Stages = cfg.Stages
	}
	parsed.Store = strings.ToLower(strings.TrimSpace(parsed.Store))
	if parsed.Store == "" {
		parsed.Store = store.KindJSON
	}
	if err := parsed.Validate(); err != nil {
		return DefaultConfig(), fmt.Errorf("invalid config %s: %w", path, err)
	}
	return parsed, nil
}

func (c Config) Validate() error {
	if !store.ValidKind(c.Store) {
		return fmt.Errorf("unknown store %q (expected %s or %s)", c.Store, store.KindJSON, store.KindSQLite)
	}
	return c.Growth().Validate()
}

func (c Config) Growth() service.GrowthConfig {
	g := service.GrowthConfig{
		Stages:           c.Stages,
		NeglectThreshold: c.NeglectThreshold,
	}
	if c.AssetDir != nil {
		g.AssetDir = *c.AssetDir
	}
	return g
}

func (c Config) YAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}
