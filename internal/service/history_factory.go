package service

import (
	"fmt"

	"github.com/silverline-robotics/interlock/internal/adapter/outbound/memory"
	"github.com/silverline-robotics/interlock/internal/adapter/outbound/sqlite"
	"github.com/silverline-robotics/interlock/internal/config"
	"github.com/silverline-robotics/interlock/internal/domain/history"
)

// NewHistoryStore builds the history store selected by the configuration.
func NewHistoryStore(cfg config.HistoryConfig) (history.Store, error) {
	switch cfg.Backend {
	case "", config.HistoryBackendMemory:
		return memory.NewHistoryStore(cfg.Capacity), nil
	case config.HistoryBackendSQLite:
		return sqlite.NewHistoryStore(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown history backend %q", cfg.Backend)
	}
}
