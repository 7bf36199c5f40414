package fetch

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoogleFetcherParsesResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("X-Goog-Api-Key"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"places":[{
			"formattedAddress":"1 Rue de Rivoli, Paris, France",
			"googleMapsUri":"https://maps.google.com/?cid=1",
			"primaryType":"museum",
			"displayName":{"text":"Louvre"},
			"location":{"latitude":48.8606,"longitude":2.3376}
		}]}`))
	}))
	defer server.Close()

	f := NewGoogleFetcher("test-key")
	f.client.SetBaseURL(server.URL)

	places, saturated, err := f.FetchCircle(48.86, 2.33, 500, []string{"museum"})
	require.NoError(t, err)
	assert.False(t, saturated)
	require.Len(t, places, 1)
	assert.Equal(t, "1 Rue de Rivoli, Paris, France", places[0].FormattedAddress)
	assert.Equal(t, "Louvre", places[0].DisplayName)
}

func TestGoogleFetcherDetectsSaturation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		entries := ""
		for i := 0; i < googlePageLimit; i++ {
			if i > 0 {
				entries += ","
			}
			entries += `{"formattedAddress":"addr","primaryType":"museum","displayName":{"text":"x"}}`
		}
		w.Write([]byte(`{"places":[` + entries + `]}`))
	}))
	defer server.Close()

	f := NewGoogleFetcher("test-key")
	f.client.SetBaseURL(server.URL)

	places, saturated, err := f.FetchCircle(48.86, 2.33, 500, []string{"museum"})
	require.NoError(t, err)
	assert.True(t, saturated)
	assert.Len(t, places, googlePageLimit)
}

func TestGoogleFetcherPropagatesUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":"quota exceeded"}`))
	}))
	defer server.Close()

	f := NewGoogleFetcher("test-key")
	f.client.SetBaseURL(server.URL)

	_, _, err := f.FetchCircle(48.86, 2.33, 500, []string{"museum"})
	require.Error(t, err)
}
