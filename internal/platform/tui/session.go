package tui

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dinox/internal/config"
	"github.com/vovakirdan/dinox/internal/economy"
	"github.com/vovakirdan/dinox/internal/runner"
	"github.com/vovakirdan/dinox/internal/storage"
)

// NewSession builds the economy store and run controller for one player.
// A nil store keeps the economy in memory for the session only.
func NewSession(cfg config.RunnerConfig, store *storage.Store, saveKey string, seed int64, logger *log.Logger) *runner.Controller {
	var persister economy.Persister
	if store != nil {
		persister = store
	}

	econ := economy.NewStore(economy.Options{
		Key:              saveKey,
		Persister:        persister,
		Catalog:          economy.NewCatalog(cfg.Economy),
		AutosaveInterval: cfg.Economy.AutosaveInterval,
		Logger:           logger,
	})

	return runner.NewController(runner.Options{
		Config:  cfg,
		Economy: econ,
		Seed:    seed,
		Logger:  logger,
	})
}
