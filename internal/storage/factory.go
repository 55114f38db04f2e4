package storage

import (
	"fmt"
	"strings"

	"github.com/JamesPrial/tasks/internal/config"
)

// NewTaskStore returns the storage backend selected by cfg.
//
// cfg.DBPath must already be resolved (config.Load does this). Returns an
// error if the backend name is unknown or the path is empty.
func NewTaskStore(cfg *config.Config) (TaskStore, error) {
	backendType := strings.ToLower(strings.TrimSpace(cfg.Backend))
	if backendType == "" {
		backendType = config.DefaultBackend
	}

	switch backendType {
	case "sqlite":
		if strings.TrimSpace(cfg.DBPath) == "" {
			return nil, fmt.Errorf("sqlite backend requires a database path")
		}
		return NewSQLiteBackend(cfg.DBPath), nil

	default:
		return nil, fmt.Errorf("unknown storage backend: %q. Expected 'sqlite'", backendType)
	}
}
