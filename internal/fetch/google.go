package fetch

import (
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/mdolmen/autour-go/internal/apperr"
)

// googlePageLimit is Places v1 searchNearby's hard cap on results per call.
const googlePageLimit = 20

const googleFieldMask = "places.formattedAddress,places.googleMapsUri,places.primaryType,places.displayName,places.location,places.currentOpeningHours"

// GoogleFetcher queries the Google Places v1 searchNearby endpoint.
type GoogleFetcher struct {
	client *resty.Client
	apiKey string
}

func NewGoogleFetcher(apiKey string) *GoogleFetcher {
	return &GoogleFetcher{
		client: resty.New().SetTimeout(fetchTimeout).SetBaseURL("https://places.googleapis.com"),
		apiKey: apiKey,
	}
}

type googleCircle struct {
	Center struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"center"`
	Radius float64 `json:"radius"`
}

type googleSearchNearbyRequest struct {
	IncludedTypes       []string `json:"includedTypes"`
	RankPreference      string   `json:"rankPreference"`
	LocationRestriction struct {
		Circle googleCircle `json:"circle"`
	} `json:"locationRestriction"`
}

type googlePlace struct {
	FormattedAddress string `json:"formattedAddress"`
	GoogleMapsURI    string `json:"googleMapsUri"`
	PrimaryType      string `json:"primaryType"`
	DisplayName      struct {
		Text string `json:"text"`
	} `json:"displayName"`
	Location struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"location"`
	CurrentOpeningHours struct {
		WeekdayDescriptions []string `json:"weekdayDescriptions"`
	} `json:"currentOpeningHours"`
}

type googleSearchNearbyResponse struct {
	Places []googlePlace `json:"places"`
}

func (f *GoogleFetcher) FetchCircle(centerLat, centerLon, radiusM float64, includedTypes []string) ([]RawPlace, bool, error) {
	body := googleSearchNearbyRequest{
		IncludedTypes:  includedTypes,
		RankPreference: "POPULARITY",
	}
	body.LocationRestriction.Circle.Center.Latitude = centerLat
	body.LocationRestriction.Circle.Center.Longitude = centerLon
	body.LocationRestriction.Circle.Radius = radiusM

	var out googleSearchNearbyResponse
	resp, err := f.client.R().
		SetHeader("Content-Type", "application/json").
		SetHeader("X-Goog-Api-Key", f.apiKey).
		SetHeader("X-Goog-FieldMask", googleFieldMask).
		SetBody(body).
		SetResult(&out).
		Post("/v1/places:searchNearby")
	if err != nil {
		return nil, false, apperr.Upstream(0, "", "google places request failed: %v", err)
	}
	if resp.IsError() {
		return nil, false, apperr.Upstream(resp.StatusCode(), string(resp.Body()), "google places returned %d", resp.StatusCode())
	}

	places := make([]RawPlace, 0, len(out.Places))
	for _, p := range out.Places {
		places = append(places, RawPlace{
			FormattedAddress:    p.FormattedAddress,
			GoogleMapsURI:       p.GoogleMapsURI,
			PrimaryType:         p.PrimaryType,
			DisplayName:         p.DisplayName.Text,
			Longitude:           p.Location.Longitude,
			Latitude:            p.Location.Latitude,
			CurrentOpeningHours: strings.Join(p.CurrentOpeningHours.WeekdayDescriptions, "; "),
		})
	}

	return places, len(places) >= googlePageLimit, nil
}
