package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCountriesCSVSkipsHeader(t *testing.T) {
	data := "nicename,iso3\nFrance,FRA\nGermany,DEU\n"

	countries, err := parseCountriesCSV(data)

	require.NoError(t, err)
	require.Len(t, countries, 2)
	assert.Equal(t, [2]string{"France", "FRA"}, countries[0])
	assert.Equal(t, [2]string{"Germany", "DEU"}, countries[1])
}

func TestParseCountriesCSVSkipsMalformedRows(t *testing.T) {
	data := "nicename,iso3\nFrance,FRA\nIncomplete\n"

	countries, err := parseCountriesCSV(data)

	require.NoError(t, err)
	require.Len(t, countries, 1)
	assert.Equal(t, "France", countries[0][0])
}

func TestEmbeddedCountriesSeedParses(t *testing.T) {
	countries, err := parseCountriesCSV(countriesSeedCSV)

	require.NoError(t, err)
	assert.NotEmpty(t, countries)
	for _, c := range countries {
		assert.NotEmpty(t, c[0])
		assert.Len(t, c[1], 3)
	}
}
