package main

import (
	"fmt"
	"log"
	"os"

	"github.com/safeplate/backend/config"
	httpDelivery "github.com/safeplate/backend/internal/delivery/http"
	"github.com/safeplate/backend/internal/infrastructure/cache"
	"github.com/safeplate/backend/internal/infrastructure/openfoodfacts"
	"github.com/safeplate/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting SafePlate Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Cache Type: %s (TTL: %s)", cfg.Cache.Type, cfg.Cache.TTL)

	// Initialize infrastructure dependencies
	memoryCache := cache.NewMemoryCache()

	offClient := openfoodfacts.NewClient(cfg.OFF.BaseURL, cfg.OFF.UserAgent, cfg.RateLimit.OFF)
	offClient.SetTimeout(cfg.OFF.Timeout)

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		offClient.SetDebug(true)
		log.Printf("Open Food Facts client debug mode enabled")
	}
	log.Printf("Open Food Facts API configured: %s (%d req/min)", cfg.OFF.BaseURL, cfg.RateLimit.OFF)

	// Initialize usecase layer
	scanService := usecase.NewScanService(
		memoryCache,
		offClient,
		usecase.ScanServiceConfig{
			CacheTTL: cfg.Cache.TTL,
		},
	)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(scanService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
