package cmd

import (
	"context"
	"fmt"

	"blob-manager/core/config"
	"blob-manager/core/logger"
	"blob-manager/feature/blob"

	"go.uber.org/zap"
)

// newService loads configuration and builds the facade for CLI commands.
// Tests replace it to share one in-memory backend across commands.
var newService = func(ctx context.Context) (*blob.Service, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}

	svc, err := blob.New(ctx, cfg.Storage, logg)
	if err != nil {
		return nil, nil, err
	}
	return svc, logg, nil
}
