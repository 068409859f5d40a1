package cmd

import (
	"fmt"

	"rom-curator/core/config"
	"rom-curator/core/database"
	"rom-curator/core/logger"
	"rom-curator/feature/catalog"

	"go.uber.org/zap"
)

// openConfig loads configuration and builds the logger.
func openConfig() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return cfg, l, nil
}

// openStore loads configuration, builds the logger, and opens the catalog.
// Every CLI command that touches the catalog starts here.
func openStore() (*config.Config, *zap.Logger, *catalog.Store, error) {
	cfg, l, err := openConfig()
	if err != nil {
		return nil, nil, nil, err
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	store, err := catalog.NewStore(db, l)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open catalog: %w", err)
	}

	return cfg, l, store, nil
}
