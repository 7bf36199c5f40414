package storage

import (
	"database/sql"
	"errors"

	"github.com/mdolmen/autour-go/internal/apperr"
)

// GetAreaIDByCoords looks up an area's id by its (subzone, x, y) tile,
// returning 0 if the subzone or area hasn't been materialized yet.
func (db *DB) GetAreaIDByCoords(subzoneID, x, y int) (int, error) {
	var id int
	err := db.Get(&id,
		"SELECT area_id FROM autour.area_covered WHERE area_subzone = $1 AND area_x = $2 AND area_y = $3",
		subzoneID, x, y,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, apperr.Storage(err, "failed to look up area (%d, %d, %d)", subzoneID, x, y)
	}
	return id, nil
}

// GetAreaByID fetches the full area row, including its coverage bitmap.
func (db *DB) GetAreaByID(id int) (*Area, error) {
	var area Area
	err := db.Get(&area, "SELECT area_id, area_subzone, area_x, area_y, area_covered FROM autour.area_covered WHERE area_id = $1", id)
	if err != nil {
		return nil, apperr.Storage(err, "failed to look up area %d", id)
	}
	return &area, nil
}

// GetAreaBitmap returns the current coverage bitmap for an area.
func (db *DB) GetAreaBitmap(id int) (uint64, error) {
	var covered int64
	err := db.Get(&covered, "SELECT area_covered FROM autour.area_covered WHERE area_id = $1", id)
	if err != nil {
		return 0, apperr.Storage(err, "failed to read bitmap for area %d", id)
	}
	return uint64(covered), nil
}

// SetAreaBitmap ORs the given bit into the area's coverage bitmap. Safe to
// call concurrently: the OR happens inside the UPDATE, not read-modify-write
// in Go.
func (db *DB) SetAreaBitmap(id int, bit uint64) error {
	_, err := db.Exec(
		"UPDATE autour.area_covered SET area_covered = area_covered | $1 WHERE area_id = $2",
		int64(bit), id,
	)
	if err != nil {
		return apperr.Storage(err, "failed to set bit %d on area %d", bit, id)
	}
	return nil
}
