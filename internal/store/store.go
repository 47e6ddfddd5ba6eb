package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ipergamali/BloomBuddy/internal/model"
)

const (
	KindJSON   = "json"
	KindSQLite = "sqlite"
)

var (
	ErrCorruptRecord      = errors.New("corrupt plant record")
	ErrHistoryUnsupported = errors.New("care history requires the sqlite store")
)

// Store persists the single plant record. Load returns model.NewRecord when
// nothing has been saved yet.
type Store interface {
	Load() (model.PlantRecord, error)
	Save(model.PlantRecord) error
	Close() error
}

type HistoryStore interface {
	History(limit int) ([]model.CareEvent, error)
}

func ValidKind(kind string) bool {
	switch kind {
	case KindJSON, KindSQLite:
		return true
	}
	return false
}

func Open(kind, path string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", KindJSON:
		return NewJSONStore(path), nil
	case KindSQLite:
		return OpenSQLite(path)
	default:
		return nil, fmt.Errorf("unknown store %q (expected %s or %s)", kind, KindJSON, KindSQLite)
	}
}
