package main

import (
	"fmt"
	"log/slog"

	"github.com/FACorreiaa/greenpark-export/internal/domain/catalog"
	"github.com/FACorreiaa/greenpark-export/internal/domain/workorder/handler"
	"github.com/FACorreiaa/greenpark-export/internal/domain/workorder/service"
	"github.com/FACorreiaa/greenpark-export/internal/pdftext"
	"github.com/FACorreiaa/greenpark-export/pkg/config"
)

// Dependencies holds all application dependencies
type Dependencies struct {
	Config  *config.Config
	Logger  *slog.Logger
	Catalog *catalog.Index

	WorkOrderService *service.Service
	WorkOrderHandler *handler.Handler
}

// InitDependencies initializes all application dependencies. An unreadable
// catalog is fatal here: the service must not start with an empty index.
func InitDependencies(cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	idx, err := catalog.LoadFile(cfg.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	deps.Catalog = idx
	logger.Info("catalog loaded", "path", cfg.Catalog.Path, "entries", idx.Len())

	deps.WorkOrderService = service.New(idx, pdftext.Extract, logger)
	deps.WorkOrderHandler = handler.New(deps.WorkOrderService, logger, cfg.Upload.MaxBytes)

	logger.Info("all dependencies initialized successfully")

	return deps, nil
}
