package storage

import (
	"database/sql"
	"errors"
	"sync"

	"github.com/mdolmen/autour-go/internal/apperr"
)

const bootstrapWorkers = 8

// bandLetters is the 20-letter UTM latitude band alphabet.
const bandLetters = "CDEFGHJKLMNPQRSTUVWX"

// Bootstrap seeds all 60x20 (number, band) zone rows on a fresh database,
// using a small worker pool since each zone number's 20 bands are
// independent inserts. No-op if any zone already exists.
func (db *DB) Bootstrap() error {
	var count int
	if err := db.Get(&count, "SELECT COUNT(*) FROM autour.zones"); err != nil {
		return apperr.Storage(err, "failed to count zones")
	}
	if count > 0 {
		return nil
	}

	numbers := make(chan int, 60)
	for n := 1; n <= 60; n++ {
		numbers <- n
	}
	close(numbers)

	var wg sync.WaitGroup
	errs := make(chan error, 60)

	for w := 0; w < bootstrapWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for number := range numbers {
				for i := 0; i < len(bandLetters); i++ {
					if _, err := db.InsertZone(number, bandLetters[i]); err != nil {
						errs <- err
						return
					}
				}
			}
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			return err
		}
	}

	return nil
}

// GetZoneID looks up a zone by (number, band), returning 0 if absent.
func (db *DB) GetZoneID(number int, band byte) (int, error) {
	var id int
	err := db.Get(&id, "SELECT z_id FROM autour.zones WHERE z_number = $1 AND z_band = $2", number, string(band))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, apperr.Storage(err, "failed to look up zone (%d, %c)", number, band)
	}
	return id, nil
}

// InsertZone inserts a (number, band) zone, tolerating a concurrent insert of
// the same pair by falling back to a lookup on unique-constraint conflict.
func (db *DB) InsertZone(number int, band byte) (int, error) {
	var id int
	err := db.Get(&id,
		`INSERT INTO autour.zones (z_number, z_band) VALUES ($1, $2)
		 ON CONFLICT (z_number, z_band) DO UPDATE SET z_number = EXCLUDED.z_number
		 RETURNING z_id`,
		number, string(band),
	)
	if err != nil {
		return 0, apperr.Storage(err, "failed to insert zone (%d, %c)", number, band)
	}
	return id, nil
}
