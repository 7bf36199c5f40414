package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds process-wide settings loaded from the environment (and an
// optional .env file for local development).
type Config struct {
	DBUrl string

	// PlacesProvider selects the ExternalFetcher backend: "google" or
	// "overpass". Fixed for the lifetime of the process.
	PlacesProvider string

	GooglePlacesAPIKey string
	GeocodeAPIKey      string

	Port string
}

func Load() *Config {
	_ = godotenv.Load()

	provider := os.Getenv("PLACES_PROVIDER")
	if provider == "" {
		provider = "overpass"
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	return &Config{
		DBUrl:              os.Getenv("DB_URL"),
		PlacesProvider:     provider,
		GooglePlacesAPIKey: os.Getenv("GOOGLE_PLACES_API_KEY"),
		GeocodeAPIKey:      os.Getenv("GEOCODE_API_KEY"),
		Port:               port,
	}
}
