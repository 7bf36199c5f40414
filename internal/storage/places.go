package storage

import (
	"github.com/lib/pq"
	"github.com/mdolmen/autour-go/internal/apperr"
)

// freshnessDays is how long a persisted place is trusted before a refetch of
// its area/category is allowed to overwrite it.
const freshnessDays = 7

// UpsertPlace inserts a place, or refreshes an existing row sharing the same
// formatted address once it's gone stale. A fresh duplicate is left
// untouched and its existing id is returned.
func (db *DB) UpsertPlace(p *Place) (int, error) {
	var id int
	err := db.Get(&id,
		`INSERT INTO autour.places
		   (place_formatted_address, place_google_maps_uri, place_primary_type,
		    place_display_name, place_longitude, place_latitude,
		    place_current_opening_hours, place_country, place_area_id, last_updated)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())
		 ON CONFLICT (place_formatted_address) DO UPDATE SET
		   place_google_maps_uri = EXCLUDED.place_google_maps_uri,
		   place_primary_type = EXCLUDED.place_primary_type,
		   place_display_name = EXCLUDED.place_display_name,
		   place_longitude = EXCLUDED.place_longitude,
		   place_latitude = EXCLUDED.place_latitude,
		   place_current_opening_hours = EXCLUDED.place_current_opening_hours,
		   place_country = EXCLUDED.place_country,
		   place_area_id = EXCLUDED.place_area_id,
		   last_updated = now()
		 WHERE autour.places.last_updated < now() - ($10 * interval '1 day')
		 RETURNING place_id`,
		p.FormattedAddress, p.GoogleMapsURI, p.PrimaryType, p.DisplayName,
		p.Longitude, p.Latitude, p.CurrentOpeningHours, p.CountryID, p.AreaID,
		freshnessDays,
	)
	if err == nil {
		return id, nil
	}

	// The WHERE clause suppressed the upsert (row exists and is still
	// fresh): RETURNING yields no row, which sqlx surfaces as sql.ErrNoRows.
	// Fall back to a plain lookup for the existing id.
	var existing int
	if lookupErr := db.Get(&existing, "SELECT place_id FROM autour.places WHERE place_formatted_address = $1", p.FormattedAddress); lookupErr == nil {
		return existing, nil
	}

	return 0, apperr.Storage(err, "failed to upsert place %q", p.FormattedAddress)
}

// PlacesForAreas returns every place attached to the given area ids, and
// optionally filtered to one primary type (pass "" for all).
func (db *DB) PlacesForAreas(areaIDs []int, primaryType string) ([]Place, error) {
	if len(areaIDs) == 0 {
		return nil, nil
	}

	query := `SELECT place_id, place_formatted_address, place_google_maps_uri, place_primary_type,
	                  place_display_name, place_longitude, place_latitude, place_current_opening_hours,
	                  place_country, place_area_id, last_updated
	           FROM autour.places
	           WHERE place_area_id = ANY($1)`
	args := []interface{}{pq.Array(areaIDs)}

	if primaryType != "" {
		query += " AND place_primary_type = $2"
		args = append(args, primaryType)
	}

	var places []Place
	if err := db.Select(&places, query, args...); err != nil {
		return nil, apperr.Storage(err, "failed to fetch places for %d areas", len(areaIDs))
	}
	return places, nil
}
