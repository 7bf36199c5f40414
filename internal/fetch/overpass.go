package fetch

import (
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/mdolmen/autour-go/internal/apperr"
)

// overpassLimit is the effective result count OSM Overpass's default
// instance will return before truncating; there is no hard per-call cap
// like Google's, but interpreter timeouts make very large result sets
// unreliable past this point.
const overpassLimit = 50000

// OverpassFetcher queries the public Overpass API interpreter.
type OverpassFetcher struct {
	client *resty.Client
}

func NewOverpassFetcher() *OverpassFetcher {
	return &OverpassFetcher{
		client: resty.New().SetTimeout(fetchTimeout).SetBaseURL("https://overpass-api.de"),
	}
}

type overpassElement struct {
	Lat  float64           `json:"lat"`
	Lon  float64           `json:"lon"`
	Tags map[string]string `json:"tags"`
}

type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

func (f *OverpassFetcher) FetchCircle(centerLat, centerLon, radiusM float64, includedTypes []string) ([]RawPlace, bool, error) {
	query := fmt.Sprintf(
		`[out:json];node[amenity~"%s"](around:%.1f,%.6f,%.6f);out body;`,
		strings.Join(includedTypes, "|"), radiusM, centerLat, centerLon,
	)

	var out overpassResponse
	resp, err := f.client.R().
		SetQueryParam("data", query).
		SetResult(&out).
		Get("/api/interpreter")
	if err != nil {
		return nil, false, apperr.Upstream(0, "", "overpass request failed: %v", err)
	}
	if resp.IsError() {
		return nil, false, apperr.Upstream(resp.StatusCode(), string(resp.Body()), "overpass returned %d", resp.StatusCode())
	}

	places := make([]RawPlace, 0, len(out.Elements))
	for _, el := range out.Elements {
		places = append(places, RawPlace{
			FormattedAddress:    formatOverpassAddress(el.Tags),
			PrimaryType:         el.Tags["amenity"],
			DisplayName:         el.Tags["name"],
			Longitude:           el.Lon,
			Latitude:            el.Lat,
			CurrentOpeningHours: el.Tags["opening_hours"],
		})
	}

	return places, len(places) >= overpassLimit, nil
}

// formatOverpassAddress synthesizes a formatted address from addr:* tags,
// since Overpass nodes carry no single address field.
func formatOverpassAddress(tags map[string]string) string {
	parts := make([]string, 0, 4)
	if v := tags["addr:housenumber"]; v != "" {
		parts = append(parts, v)
	}
	if v := tags["addr:street"]; v != "" {
		parts = append(parts, v)
	}
	if v := tags["addr:city"]; v != "" {
		parts = append(parts, v)
	}
	if v := tags["addr:country"]; v != "" {
		parts = append(parts, v)
	}
	return strings.Join(parts, ", ")
}
