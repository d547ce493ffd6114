package store

import (
	"fmt"

	"github.com/robalobadob/mixle/internal/history"
)

// Storage backends accepted by Open.
const (
	KindSQLite = "sqlite"
	KindMemory = "memory"
)

// Backend is a history port that holds resources until closed.
type Backend interface {
	history.Port
	Close() error
}

// Open returns the backend named by kind. path is only used by sqlite.
func Open(kind, path string) (Backend, error) {
	switch kind {
	case KindSQLite, "":
		return OpenSQLite(path)
	case KindMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage %q", kind)
	}
}
