package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mdolmen/autour-go/config"
	"github.com/mdolmen/autour-go/internal/coverage"
	"github.com/mdolmen/autour-go/internal/credits"
	"github.com/mdolmen/autour-go/internal/fetch"
	"github.com/mdolmen/autour-go/internal/geocode"
	"github.com/mdolmen/autour-go/internal/middleware"
	"github.com/mdolmen/autour-go/internal/storage"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

func run() error {
	cfg := config.Load()
	if cfg.DBUrl == "" {
		return fmt.Errorf("DB_URL environment variable is required")
	}

	db, err := storage.NewDB(cfg.DBUrl)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Failed to close database connection: %v", err)
		}
	}()

	if os.Getenv("GIN_MODE") != "" {
		gin.SetMode(os.Getenv("GIN_MODE"))
	} else {
		gin.SetMode(gin.DebugMode)
	}

	r := setupRouter(cfg, db)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Server shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		return err
	}

	log.Println("Server exited")
	return nil
}

func setupRouter(cfg *config.Config, db *storage.DB) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.ErrorHandlingMiddleware())
	r.Use(middleware.CORSMiddleware())

	ledger := credits.NewLedger(db)
	fetcher := fetch.New(cfg.PlacesProvider, cfg.GooglePlacesAPIKey)
	engine := coverage.NewEngine(db, fetcher, ledger)
	creditsHandler := credits.NewHandler(ledger)
	geocodeHandler := geocode.NewHandler(cfg.GeocodeAPIKey)

	setupRoutes(r, engine, creditsHandler, geocodeHandler)

	return r
}

func setupRoutes(r *gin.Engine, engine *coverage.Engine, creditsHandler *credits.Handler, geocodeHandler *geocode.Handler) {
	engine.RegisterRoutes(r)
	creditsHandler.RegisterRoutes(r)
	geocodeHandler.RegisterRoutes(r)
}
