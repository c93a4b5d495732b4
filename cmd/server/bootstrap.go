package main

import (
	"github.com/pkowalski/codeplay/backend/internal/config"
	"github.com/pkowalski/codeplay/backend/internal/models"
	"github.com/pkowalski/codeplay/backend/internal/services"
	"github.com/pkowalski/codeplay/backend/internal/storage"
	"github.com/pkowalski/codeplay/backend/pkg/logger"
)

// appServices holds all initialized services needed by the application.
type appServices struct {
	store     storage.Store
	projects  *services.ProjectStore
	composer  *services.Composer
	workspace *services.Workspace
	settings  *services.SettingsService
	autoSave  *services.AutoSaveService
}

// bootstrap initializes all application dependencies: database, storage
// probe, services, workspace restore, auto-save scheduler.
func bootstrap(cfg *config.Config) *appServices {
	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	store := storage.NewGormStore(models.GetDB())
	if err := storage.Probe(store); err != nil {
		logger.Fatalf("Storage unavailable: %v", err)
	}

	projects := services.NewProjectStore(store)
	composer := services.NewComposer()
	workspace := services.NewWorkspace(composer, projects)

	settings := services.NewSettingsService(store)
	if err := settings.Load(); err != nil {
		logger.Warn().Err(err).Msg("Failed to load editor settings")
	}

	if cfg.Workspace.RestoreOnStart {
		if restored, err := workspace.RestoreAutoSave(); err != nil {
			logger.Warn().Err(err).Msg("Failed to restore auto-saved session")
		} else if !restored {
			logger.Debug().Msg("no auto-saved session to restore")
		}
	}

	autoSave := services.NewAutoSaveService(workspace, cfg.Workspace.AutoSaveSeconds)
	autoSave.Start()

	return &appServices{
		store:     store,
		projects:  projects,
		composer:  composer,
		workspace: workspace,
		settings:  settings,
		autoSave:  autoSave,
	}
}
