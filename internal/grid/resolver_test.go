package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveParis(t *testing.T) {
	p, err := Resolve(48.8566, 2.3522)
	require.NoError(t, err)

	assert.Equal(t, 31, p.Zone)
	assert.Equal(t, byte('U'), p.Band)
	assert.Equal(t, 2, p.SubzoneLon)
	assert.Equal(t, 48, p.SubzoneLat)
	assert.Equal(t, 22, p.AreaX)
	assert.Equal(t, 109, p.AreaY)
}

func TestUTMZoneOfNorwayException(t *testing.T) {
	zone, band, err := UTMZoneOf(58.0, 5.0)
	require.NoError(t, err)
	assert.Equal(t, 32, zone)
	assert.Equal(t, byte('V'), band)
}

func TestUTMZoneOfBandXException(t *testing.T) {
	zone, band, err := UTMZoneOf(78.0, 15.0)
	require.NoError(t, err)
	assert.Equal(t, 31, zone)
	assert.Equal(t, byte('X'), band)
}

func TestUTMZoneOfRejectsOutOfRangeLatitude(t *testing.T) {
	_, _, err := UTMZoneOf(85.0, 0.0)
	assert.Error(t, err)

	_, _, err = UTMZoneOf(-81.0, 0.0)
	assert.Error(t, err)
}

func TestUTMZoneOfRejectsOutOfRangeLongitude(t *testing.T) {
	_, _, err := UTMZoneOf(0.0, 181.0)
	assert.Error(t, err)
}

func TestZoneBoundsRejectsInvalidZone(t *testing.T) {
	_, err := ZoneBounds(0, 'U')
	assert.Error(t, err)

	_, err = ZoneBounds(61, 'U')
	assert.Error(t, err)
}

func TestZoneBoundsRejectsInvalidBand(t *testing.T) {
	_, err := ZoneBounds(31, 'I')
	assert.Error(t, err)
}

func TestZoneBoundsCentralMeridian(t *testing.T) {
	b, err := ZoneBounds(31, 'U')
	require.NoError(t, err)

	assert.InDelta(t, 0.0, b.WestLon, 1e-9)
	assert.InDelta(t, 6.0, b.EastLon, 1e-9)
	assert.InDelta(t, 48.0, b.SouthLat, 1e-9)
	assert.InDelta(t, 56.0, b.NorthLat, 1e-9)
}

// TestTilingPartitionRoundTrip checks that the resolved cell's SW corner and
// size bound the input point, and that resolving the cell's own center
// coordinate yields back the same subzone and (area_x, area_y) pair.
func TestTilingPartitionRoundTrip(t *testing.T) {
	for _, tc := range []struct{ lat, lon float64 }{
		{48.8566, 2.3522},
		{40.7128, -74.0060},
		{-33.8688, 151.2093},
		{51.5074, -0.1278},
	} {
		p, err := Resolve(tc.lat, tc.lon)
		require.NoError(t, err)

		swLon := float64(p.SubzoneLon) + float64(p.AreaX)/64.0
		swLat := float64(p.SubzoneLat) + float64(p.AreaY)/128.0
		assert.True(t, swLon <= tc.lon)
		assert.True(t, swLat <= tc.lat)
		assert.True(t, swLon+AreaWidth > tc.lon)
		assert.True(t, swLat+AreaHeight > tc.lat)

		again, err := Resolve(p.AreaCenterLat, p.AreaCenterLon)
		require.NoError(t, err)
		assert.Equal(t, p.AreaX, again.AreaX)
		assert.Equal(t, p.AreaY, again.AreaY)
		assert.Equal(t, p.SubzoneLon, again.SubzoneLon)
		assert.Equal(t, p.SubzoneLat, again.SubzoneLat)
	}
}

func TestLonDeltaKmAndLatDeltaKmAreReasonable(t *testing.T) {
	// A 1/64 degree sliver of longitude at the equator is roughly 1.7km.
	km := LonDeltaKm(0.0, 0.0, AreaWidth)
	assert.InDelta(t, 1.74, km, 0.2)

	// A 1/128 degree sliver of latitude is roughly 0.87km everywhere.
	km = LatDeltaKm(0.0, AreaHeight, 0.0)
	assert.InDelta(t, 0.87, km, 0.1)
}
