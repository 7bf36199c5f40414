package storage

import "time"

// Zone is one of the 60x20 UTM (number, band) grid cells.
type Zone struct {
	ID     int    `db:"z_id"`
	Number int    `db:"z_number"`
	Band   string `db:"z_band"`
}

// Subzone is a 1x1 degree tile inside a Zone.
type Subzone struct {
	ID        int `db:"subz_id"`
	Longitude int `db:"subz_longitude"`
	Latitude  int `db:"subz_latitude"`
	ZoneID    int `db:"subz_zone"`
}

// Area is a single fine cell (1/64 x 1/128 degree) inside a Subzone, carrying
// the per-category coverage bitmap.
type Area struct {
	ID        int    `db:"area_id"`
	SubzoneID int    `db:"area_subzone"`
	X         int    `db:"area_x"`
	Y         int    `db:"area_y"`
	Covered   uint64 `db:"area_covered"`
}

// Place is a single point of interest, keyed on its formatted address.
type Place struct {
	ID                  int       `db:"place_id" json:"place_id"`
	FormattedAddress    string    `db:"place_formatted_address" json:"place_formatted_address"`
	GoogleMapsURI       string    `db:"place_google_maps_uri" json:"place_google_maps_uri"`
	PrimaryType         string    `db:"place_primary_type" json:"place_primary_type"`
	DisplayName         string    `db:"place_display_name" json:"place_display_name"`
	Longitude           float64   `db:"place_longitude" json:"place_longitude"`
	Latitude            float64   `db:"place_latitude" json:"place_latitude"`
	CurrentOpeningHours string    `db:"place_current_opening_hours" json:"place_current_opening_hours"`
	CountryID           int       `db:"place_country" json:"place_country"`
	AreaID              int       `db:"place_area_id" json:"place_area_id"`
	LastUpdated         time.Time `db:"last_updated" json:"last_updated"`
}

// Credit is a user's current credit balance.
type Credit struct {
	UserID       string `db:"user_id"`
	Credits      int    `db:"credits"`
	TrialGranted bool   `db:"trial_granted"`
}

// Purchase is an append-only audit row for a credit purchase.
type Purchase struct {
	ID        int       `db:"purchase_id"`
	UserID    string    `db:"user_id"`
	Credits   int       `db:"credits"`
	Timestamp time.Time `db:"ts"`
}
