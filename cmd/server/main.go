package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gdg-garage/equipment-purchase/internal/config"
	"github.com/gdg-garage/equipment-purchase/internal/database"
	"github.com/gdg-garage/equipment-purchase/internal/form"
	"github.com/gdg-garage/equipment-purchase/internal/handlers"
	"github.com/gdg-garage/equipment-purchase/internal/notifier"
	"github.com/gdg-garage/equipment-purchase/internal/sheet"
	"github.com/go-chi/chi/v5"
)

func main() {
	// Load Configuration
	cfg := config.LoadConfig()

	loc := cfg.Location()
	now := func() time.Time { return time.Now().In(loc) }

	// Open the destination table
	table, err := openTable(cfg)
	if err != nil {
		log.Fatalf("Failed to open destination table: %v", err)
	}

	// Discord notifications are optional
	var purchaseNotifier notifier.Notifier
	if cfg.DiscordBotToken != "" {
		session, err := notifier.NewDiscordSession(cfg.DiscordBotToken)
		if err != nil {
			log.Printf("Discord notifier not initialized: %v", err)
		} else {
			purchaseNotifier = notifier.NewDiscordNotifier(session, cfg.DiscordNotificationsChannelID)
		}
	}

	scriptURL := cfg.ScriptURL
	if scriptURL == "" {
		scriptURL = fmt.Sprintf("http://127.0.0.1:%s/api/ingest", cfg.Port)
	}

	// Initialize Handlers
	ingestHandler := handlers.NewIngestHandler(table, purchaseNotifier, now)
	catalogHandler := handlers.NewCatalogHandler(now)
	formHandler := handlers.NewFormHandler(handlers.FormOptions{
		ScriptURL:              scriptURL,
		AllowScriptURLOverride: cfg.AllowScriptURLOverride,
		GoogleFormURL:          cfg.GoogleFormURL,
		GithubRepoURL:          cfg.GithubRepoURL,
	}, form.NewClient(nil), now)

	// Initialize Router
	r := chi.NewRouter()

	// Register Routes
	handlers.RegisterRoutes(r, cfg.EnableCORS, ingestHandler, catalogHandler, formHandler)

	// Start Server
	log.Printf("Starting server on port %s (table backend: %s)", cfg.Port, cfg.TableBackend)
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func openTable(cfg *config.Config) (sheet.Table, error) {
	seed := cfg.SheetHeaders
	if len(seed) == 0 {
		seed = form.Headers
	}

	switch cfg.TableBackend {
	case config.BackendWorkbook:
		return sheet.OpenWorkbook(cfg.SpreadsheetPath, cfg.SheetName, seed)
	case config.BackendMemory:
		return sheet.NewMemoryTable(seed), nil
	case config.BackendDB:
		table := sheet.NewDBTable(database.Connect(cfg), cfg.SheetName)
		if err := table.Seed(context.Background(), seed); err != nil {
			return nil, err
		}
		return table, nil
	default:
		return nil, fmt.Errorf("unknown TABLE_BACKEND %q", cfg.TableBackend)
	}
}
