package storage

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/mdolmen/autour-go/internal/apperr"
)

const subzoneCols = 64
const subzoneRows = 128

// GetSubzoneByCoords looks up a subzone by its (lon, lat) tile, returning 0
// if it hasn't been created yet.
func (db *DB) GetSubzoneByCoords(lon, lat int) (int, error) {
	var id int
	err := db.Get(&id, "SELECT subz_id FROM autour.subzones WHERE subz_longitude = $1 AND subz_latitude = $2", lon, lat)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, apperr.Storage(err, "failed to look up subzone (%d, %d)", lon, lat)
	}
	return id, nil
}

// GetSubzoneByID returns the (lon, lat) tile coordinates for a subzone id.
func (db *DB) GetSubzoneByID(id int) (int, int, error) {
	var sz Subzone
	err := db.Get(&sz, "SELECT subz_id, subz_longitude, subz_latitude, subz_zone FROM autour.subzones WHERE subz_id = $1", id)
	if err != nil {
		return 0, 0, apperr.Storage(err, "failed to look up subzone %d", id)
	}
	return sz.Longitude, sz.Latitude, nil
}

// InsertSubzone inserts a new (lon, lat) subzone tied to the given zone.
// Idempotent by design on the (lon, lat) uniqueness constraint: a lost race
// returns the row another writer just created.
func (db *DB) InsertSubzone(lon, lat, zoneID int) (int, error) {
	var id int
	err := db.Get(&id,
		`INSERT INTO autour.subzones (subz_longitude, subz_latitude, subz_zone)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (subz_longitude, subz_latitude) DO UPDATE SET subz_longitude = EXCLUDED.subz_longitude
		 RETURNING subz_id`,
		lon, lat, zoneID,
	)
	if err != nil {
		return 0, apperr.Storage(err, "failed to insert subzone (%d, %d)", lon, lat)
	}
	return id, nil
}

// InsertAreas bulk-creates the 64x128 = 8192 blank area rows for a subzone,
// using a single COPY statement rather than 8192 round trips.
func (db *DB) InsertAreas(subzoneID int) error {
	tx, err := db.Begin()
	if err != nil {
		return apperr.Storage(err, "failed to start area-creation transaction")
	}

	stmt, err := tx.Prepare(pq.CopyInSchema("autour", "area_covered", "area_subzone", "area_x", "area_y", "area_covered"))
	if err != nil {
		tx.Rollback()
		return apperr.Storage(err, "failed to prepare area bulk insert")
	}

	for x := 0; x < subzoneCols; x++ {
		for y := 0; y < subzoneRows; y++ {
			if _, err := stmt.Exec(subzoneID, x, y, int64(0)); err != nil {
				stmt.Close()
				tx.Rollback()
				return apperr.Storage(err, "failed to stage area (%d, %d) for subzone %d", x, y, subzoneID)
			}
		}
	}

	if _, err := stmt.Exec(); err != nil {
		stmt.Close()
		tx.Rollback()
		return apperr.Storage(err, "failed to flush area bulk insert for subzone %d", subzoneID)
	}

	if err := stmt.Close(); err != nil {
		tx.Rollback()
		return apperr.Storage(err, "failed to close area bulk insert statement")
	}

	if err := tx.Commit(); err != nil {
		return apperr.Storage(err, "failed to commit area bulk insert for subzone %d", subzoneID)
	}

	return nil
}
