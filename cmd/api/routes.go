package main

import (
	"log"
	"net/http"

	httphandlers "lista/internal/interfaces/http"
	"lista/internal/shared/config"
	"lista/internal/shared/middleware"
)

// SetupRoutes configures all HTTP routes and returns the final handler with middleware.
func SetupRoutes(deps *Dependencies, cfg *config.Config) http.Handler {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("/health", httphandlers.HandleHealth)

	// List-scoped routes: a list is addressed purely by its token, and an
	// unknown token reads as an empty list.
	mux.HandleFunc("/api/lists/{token}/items", deps.ItemHandler.HandleListItems)
	mux.HandleFunc("/api/lists/{token}/checked", deps.ItemHandler.HandleClearChecked)
	mux.HandleFunc("/api/lists/{token}/watch", deps.WatchHandler.HandleWatch)

	// Item-scoped routes
	mux.HandleFunc("/api/items/{id}", deps.ItemHandler.HandleItemByID)
	mux.HandleFunc("/api/items/{id}/checked", deps.ItemHandler.HandleSetChecked)

	// Apply global middleware
	handler := middleware.Logging(middleware.CORS(cfg.Server.AllowedHosts)(mux))

	// Wrap with tracing and request metrics when telemetry is on
	if cfg.Telemetry.Enabled {
		handler = middleware.Tracing(middleware.Telemetry(handler))
	}

	// Apply security middleware when TLS is enabled
	if cfg.TLS.Enabled {
		handler = middleware.HSTS(middleware.SecureCookies(handler))
		log.Println("TLS security middleware enabled (HSTS + SecureCookies)")
	}

	return handler
}
