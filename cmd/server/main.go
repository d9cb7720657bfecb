package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"sms-tagger/internal/cache"
	"sms-tagger/internal/config"
	"sms-tagger/internal/database"
	"sms-tagger/internal/server"
	"sms-tagger/internal/services"
	"sms-tagger/internal/workers"

	"github.com/spf13/viper"
)

func main() {
	// Load configuration
	cfg, err := config.Load(viper.New())
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database
	db, err := database.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Database initialized at %s", cfg.DBPath)

	// Freshness cache for extraction snapshots
	var freshness *cache.Freshness
	if !cfg.CacheDisabled {
		freshness = cache.New(cfg.CacheTTL)
	}

	express := services.NewExpressService(db.Messages, db.Status, freshness)

	// Background tagger labels imported messages
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	tagger := workers.NewTagger(cfg, db.Messages, db.Rules, logger)
	tagger.Start()
	defer tagger.Stop()

	srv := &http.Server{
		Addr:    cfg.Address(),
		Handler: server.NewRouter(db, express),

		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Handle server startup and graceful shutdown
	shutdownTimeout := 30 * time.Second
	if err := server.HandleSignals(srv, shutdownTimeout); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
