package storage

import (
	_ "embed"
	"encoding/csv"
	"strings"

	"github.com/mdolmen/autour-go/internal/apperr"
)

//go:embed countries_seed.csv
var countriesSeedCSV string

// seedCountries populates autour.countries once, on an empty table.
func (db *DB) seedCountries() error {
	var count int
	if err := db.Get(&count, "SELECT COUNT(*) FROM autour.countries"); err != nil {
		return apperr.Storage(err, "failed to count countries")
	}
	if count > 0 {
		return nil
	}

	countries, err := parseCountriesCSV(countriesSeedCSV)
	if err != nil {
		return apperr.Storage(err, "failed to parse countries seed data")
	}

	tx, err := db.Beginx()
	if err != nil {
		return apperr.Storage(err, "failed to start countries seed transaction")
	}

	for _, country := range countries {
		if _, err := tx.Exec(
			"INSERT INTO autour.countries (country_nicename, country_iso3) VALUES ($1, $2)",
			country[0], country[1],
		); err != nil {
			tx.Rollback()
			return apperr.Storage(err, "failed to insert country %q", country[0])
		}
	}

	if err := tx.Commit(); err != nil {
		return apperr.Storage(err, "failed to commit countries seed transaction")
	}

	return nil
}

// parseCountriesCSV parses the embedded seed data into (nicename, iso3)
// pairs, skipping the header row and any malformed line.
func parseCountriesCSV(data string) ([][2]string, error) {
	reader := csv.NewReader(strings.NewReader(data))
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	countries := make([][2]string, 0, len(records))
	for i, rec := range records {
		if i == 0 || len(rec) < 2 {
			continue
		}
		countries = append(countries, [2]string{rec[0], rec[1]})
	}
	return countries, nil
}

// CountryID resolves a country by the last token of a place's formatted
// address, matching either its nicename or ISO3 code. Returns 0 if unknown.
func (db *DB) CountryID(token string) int {
	var id int
	err := db.Get(&id,
		"SELECT country_id FROM autour.countries WHERE country_nicename = $1 OR country_iso3 = $1",
		token,
	)
	if err != nil {
		return 0
	}
	return id
}
