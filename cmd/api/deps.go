package main

import (
	"context"
	"log"

	"lista/internal/infrastructure/postgres"
	httphandlers "lista/internal/interfaces/http"
	"lista/internal/livequery"
	"lista/internal/shared/config"
)

// Dependencies holds all initialized application components.
type Dependencies struct {
	DB *postgres.DB

	// Handlers
	ItemHandler  *httphandlers.ItemHandler
	WatchHandler *httphandlers.WatchHandler

	// Live push pipeline
	Hub      *livequery.Hub
	Listener *livequery.Listener
}

// NewDependencies initializes all application dependencies.
func NewDependencies(cfg *config.Config) (*Dependencies, error) {
	// Connect to database
	db, err := postgres.New(cfg.Database.ConnectionString())
	if err != nil {
		return nil, err
	}
	log.Println("Connected to database")

	// Ensure schema, indexes and the change-notification trigger exist
	if err := db.InitSchema(context.Background()); err != nil {
		db.Close()
		return nil, err
	}

	// Initialize repositories
	itemRepo := postgres.NewItemRepository(db)

	// Initialize live push pipeline: the hub fans snapshots out to
	// subscribers, the listener feeds it database change notifications.
	hub := livequery.NewHub(itemRepo)
	listener := livequery.NewListener(cfg.Database.ConnectionString(), postgres.NotifyChannel, hub)

	// Initialize handlers
	itemHandler := httphandlers.NewItemHandler(itemRepo)
	watchHandler := httphandlers.NewWatchHandler(hub)

	return &Dependencies{
		DB:           db,
		ItemHandler:  itemHandler,
		WatchHandler: watchHandler,
		Hub:          hub,
		Listener:     listener,
	}, nil
}

// Close releases all resources held by dependencies.
func (d *Dependencies) Close() {
	if d.DB != nil {
		d.DB.Close()
	}
}
