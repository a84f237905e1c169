package app

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/saunagids/saunagids/internal/common"
	"github.com/saunagids/saunagids/internal/handlers"
	"github.com/saunagids/saunagids/internal/interfaces"
	"github.com/saunagids/saunagids/internal/services/enrich"
	"github.com/saunagids/saunagids/internal/services/events"
	"github.com/saunagids/saunagids/internal/services/importer"
	"github.com/saunagids/saunagids/internal/services/places"
	"github.com/saunagids/saunagids/internal/services/sitemap"
	badgerstorage "github.com/saunagids/saunagids/internal/storage/badger"
	"github.com/saunagids/saunagids/internal/storage/filesystem"
)

// App holds all application components and dependencies
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	StorageManager interfaces.StorageManager
	PhotoStore     interfaces.PhotoStore

	EventService   interfaces.EventService
	PlacesService  interfaces.PlacesService
	ImportService  interfaces.ImportService
	EnrichService  *enrich.Service
	SitemapService *sitemap.Service

	// HTTP handlers
	APIHandler      *handlers.APIHandler
	PlacesHandler   *handlers.PlacesHandler
	VenueHandler    *handlers.VenueHandler
	ReviewHandler   *handlers.ReviewHandler
	SettingsHandler *handlers.SettingsHandler
	SitemapHandler  *handlers.SitemapHandler
	WSHandler       *handlers.WebSocketHandler
}

// New creates the application with all services wired together
func New(config *common.Config, logger arbor.ILogger) (*App, error) {
	a := &App{
		Config: config,
		Logger: logger,
	}

	storageManager, err := badgerstorage.NewManager(logger, &config.Storage.Badger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	a.StorageManager = storageManager

	photoStore, err := filesystem.NewPhotoStore(&config.Storage.Photos, logger)
	if err != nil {
		storageManager.Close()
		return nil, fmt.Errorf("failed to initialize photo store: %w", err)
	}
	a.PhotoStore = photoStore

	a.EventService = events.NewService(logger)
	a.PlacesService = places.NewService(&config.PlacesAPI, logger)
	a.EnrichService = enrich.NewService(logger)

	a.ImportService = importer.NewService(
		a.PlacesService,
		storageManager.VenueStorage(),
		photoStore,
		a.EventService,
		a.EnrichService,
		&config.Import,
		logger,
	)

	a.SitemapService = sitemap.NewService(storageManager.VenueStorage(), a.EventService, &config.Sitemap, logger)

	a.APIHandler = handlers.NewAPIHandler(storageManager, logger)
	a.PlacesHandler = handlers.NewPlacesHandler(a.PlacesService, a.ImportService, &config.PlacesAPI, logger)
	a.VenueHandler = handlers.NewVenueHandler(storageManager.VenueStorage(), logger)
	a.ReviewHandler = handlers.NewReviewHandler(storageManager.ReviewStorage(), storageManager.VenueStorage(), logger)
	a.SettingsHandler = handlers.NewSettingsHandler(storageManager.SettingsStorage(), logger)
	a.SitemapHandler = handlers.NewSitemapHandler(a.SitemapService, logger)
	a.WSHandler = handlers.NewWebSocketHandler(a.EventService, logger)

	logger.Info().Msg("Application initialized")

	return a, nil
}

// Start launches background services
func (a *App) Start() error {
	if err := a.SitemapService.Start(); err != nil {
		return fmt.Errorf("failed to start sitemap scheduler: %w", err)
	}
	return nil
}

// Shutdown stops background services and closes storage
func (a *App) Shutdown(ctx context.Context) error {
	a.SitemapService.Stop()

	if err := a.StorageManager.Close(); err != nil {
		a.Logger.Error().Err(err).Msg("Failed to close storage")
		return err
	}

	a.Logger.Info().Msg("Application shut down")
	return nil
}
