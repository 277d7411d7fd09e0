// Package store persists day sessions on disk and reports changes made by
// other processes.
package store

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"tableflip.dev/timebox/pkg/session"
)

// Persistence is a session store that can also enumerate and watch days.
type Persistence interface {
	session.Persistence
	// Dates lists every saved date key in ascending order.
	Dates(ctx context.Context) ([]string, error)
	Watch(ctx context.Context) (<-chan Event, error)
	Close() error
}

// Load opens the backend named by cfg. A nil cfg is read with LoadConfig.
func Load(cfg Config, log *zap.Logger) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("store")

	switch cfg.Backend() {
	case BackendSQLite:
		return OpenSQLite(cfg.BasePath(), log)
	case BackendDiskv, "":
		return OpenDiskv(cfg.BasePath(), log)
	default:
		return nil, fmt.Errorf("store: unknown backend %q", cfg.Backend())
	}
}
