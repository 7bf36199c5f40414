package fetch

// New builds the Fetcher selected by the PLACES_PROVIDER config value.
// Falls back to Overpass (no API key required) for any unrecognized value.
func New(provider, googleAPIKey string) Fetcher {
	if provider == "google" {
		return NewGoogleFetcher(googleAPIKey)
	}
	return NewOverpassFetcher()
}
