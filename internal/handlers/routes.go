package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func RegisterRoutes(r *chi.Mux, enableCORS bool, ingestHandler *IngestHandler, catalogHandler *CatalogHandler, formHandler *FormHandler) {
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	if enableCORS {
		// Browsers post from the static form's origin; text/plain bodies
		// skip the preflight but still need the allow-origin header.
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type"},
			MaxAge:         600,
		}))
	}

	// Initialize Huma API
	config := huma.DefaultConfig("Equipment Purchase API", "1.0.0")
	api := humachi.New(r, config)

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Form pages
	r.Get("/", formHandler.HandleShow)
	r.Post("/", formHandler.HandleAction)

	// Ingest endpoint; /exec mirrors the Apps Script web app path.
	r.Post("/api/ingest", ingestHandler.HandleIngest)
	r.Post("/exec", ingestHandler.HandleIngest)

	huma.Get(api, "/api/catalog", catalogHandler.HandleCatalog)
	huma.Get(api, "/api/timeslot/default", catalogHandler.HandleDefaultSlot)
}
