/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the concession price-updater server: the dashboard
  backend that derives authorized park admission prices from IPEA index
  series and calculates late-payment fines.

STARTUP SEQUENCE:
  1. Parse command-line flags
  2. Load YAML config (env overrides, defaults)
  3. Build the IPEA feed client, catalog, and fine calculator
  4. Configure HTTP router
  5. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port     HTTP server port (overrides config)
  -config   Path to YAML config file (default: config.yaml)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Exit
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dafi-icmbio/price-updater/api"
	"github.com/dafi-icmbio/price-updater/config"
	"github.com/dafi-icmbio/price-updater/fine"
	"github.com/dafi-icmbio/price-updater/ipea"
	"github.com/dafi-icmbio/price-updater/park"
)

func main() {
	// Flags
	port := flag.Int("port", 0, "HTTP server port (overrides config)")
	configPath := flag.String("config", "config.yaml", "Path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	// Wiring: one feed client shared read-only by catalog and calculator.
	feed := ipea.NewClient(cfg.Feed.BaseURL, time.Duration(cfg.Feed.TimeoutSeconds)*time.Second)
	catalog := park.NewCatalog(feed)
	calculator := fine.NewCalculator(feed)

	handler := api.NewHandler(catalog, calculator)
	router := api.NewRouter(handler, cfg.Server.AllowedOrigins)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	// Start server in background
	go func() {
		log.Printf("Server listening on :%d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
