// Package grid implements the pure coordinate-to-cell resolution math: UTM
// zone/band lookup, zone boundaries, and the subzone/area tiling a GPS point
// resolves to. Nothing in this package does I/O.
package grid

import (
	"math"

	"github.com/mdolmen/autour-go/internal/apperr"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// AreaWidth and AreaHeight are the fractional-degree dimensions of a single
// fine cell within a 1x1 degree subzone: 64 columns by 128 rows.
const (
	AreaWidth  = 1.0 / 64.0
	AreaHeight = 1.0 / 128.0

	subzoneCols = 64
	subzoneRows = 128
)

// latBands is the 20-letter UTM latitude band alphabet, omitting I and O.
const latBands = "CDEFGHJKLMNPQRSTUVWX"

// Bounds describes the geographic extent of a UTM zone/band pair.
type Bounds struct {
	WestLon  float64
	EastLon  float64
	SouthLat float64
	NorthLat float64
}

// latBandRanges gives the [south, north) latitude range for each band letter,
// indexed in the same order as latBands.
var latBandRanges = [20][2]float64{
	{-80, -72}, {-72, -64}, {-64, -56}, {-56, -48}, {-48, -40},
	{-40, -32}, {-32, -24}, {-24, -16}, {-16, -8}, {-8, 0},
	{0, 8}, {8, 16}, {16, 24}, {24, 32}, {32, 40},
	{40, 48}, {48, 56}, {56, 64}, {64, 72}, {72, 84},
}

// PointInfo is the full resolution of a GPS point into the tiling scheme.
type PointInfo struct {
	Zone          int
	Band          byte
	SubzoneLon    int
	SubzoneLat    int
	AreaX         int
	AreaY         int
	AreaCenterLon float64
	AreaCenterLat float64
}

// UTMZoneOf returns the UTM zone number and latitude band letter for a point,
// applying the standard exceptions around Norway (32V/31V) and Svalbard (X).
func UTMZoneOf(lat, lon float64) (int, byte, error) {
	if lat < -80 || lat > 84 {
		return 0, 0, apperr.Domain("latitude %f out of range [-80, 84]", lat)
	}
	if lon < -180 || lon > 180 {
		return 0, 0, apperr.Domain("longitude %f out of range [-180, 180]", lon)
	}

	zone := int(math.Floor((lon+180)/6)) + 1
	if zone > 60 {
		zone = 60
	}

	var band byte
	if lat >= 72 {
		band = 'X'
	} else {
		idx := int(math.Floor((lat + 80) / 8))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(latBands) {
			idx = len(latBands) - 1
		}
		band = latBands[idx]
	}

	switch {
	case band == 'X' && lat >= 72 && lat < 84:
		switch {
		case lon >= 9 && lon < 21:
			zone = 31
		case lon >= 21 && lon < 33:
			zone = 33
		case lon >= 33 && lon < 42:
			zone = 35
		case lon >= 42:
			zone = 37
		}
	case band == 'V' && lat >= 56 && lat < 64:
		switch {
		case lon >= 3 && lon < 12:
			zone = 32
		case lon < 3:
			zone = 31
		}
	}

	return zone, band, nil
}

// ZoneBounds returns the geographic boundaries of a UTM zone/band pair.
func ZoneBounds(zone int, band byte) (Bounds, error) {
	if zone < 1 || zone > 60 {
		return Bounds{}, apperr.Domain("UTM zone number %d must be between 1 and 60", zone)
	}

	idx := bandIndex(band)
	if idx < 0 {
		return Bounds{}, apperr.Domain("invalid latitude band %q", string(band))
	}

	centralMeridian := float64((zone-1)*6) - 180 + 3
	r := latBandRanges[idx]

	return Bounds{
		WestLon:  centralMeridian - 3,
		EastLon:  centralMeridian + 3,
		SouthLat: r[0],
		NorthLat: r[1],
	}, nil
}

func bandIndex(band byte) int {
	for i := 0; i < len(latBands); i++ {
		if latBands[i] == band {
			return i
		}
	}
	return -1
}

// Resolve maps a GPS point to its zone/band/subzone/area coordinates.
func Resolve(lat, lon float64) (PointInfo, error) {
	zone, band, err := UTMZoneOf(lat, lon)
	if err != nil {
		return PointInfo{}, err
	}

	subzoneLon := int(math.Floor(lon))
	subzoneLat := int(math.Floor(lat))

	areaX := int(math.Floor((lon - math.Floor(lon)) * subzoneCols))
	areaY := int(math.Floor((lat - math.Floor(lat)) * subzoneRows))

	return PointInfo{
		Zone:          zone,
		Band:          band,
		SubzoneLon:    subzoneLon,
		SubzoneLat:    subzoneLat,
		AreaX:         areaX,
		AreaY:         areaY,
		AreaCenterLon: float64(subzoneLon) + (float64(areaX)+0.5)*AreaWidth,
		AreaCenterLat: float64(subzoneLat) + (float64(areaY)+0.5)*AreaHeight,
	}, nil
}

// LonDeltaKm returns the great-circle distance, in kilometers, between two
// points of equal latitude `lat` at longitudes `lonA` and `lonB`. Delegates
// to orb/geo rather than reimplementing the geodesic math.
func LonDeltaKm(lat, lonA, lonB float64) float64 {
	a := orb.Point{lonA, lat}
	b := orb.Point{lonB, lat}
	return geo.Distance(a, b) / 1000.0
}

// LatDeltaKm returns the great-circle distance, in kilometers, between two
// points of equal longitude `lon` at latitudes `latA` and `latB`.
func LatDeltaKm(latA, latB, lon float64) float64 {
	a := orb.Point{lon, latA}
	b := orb.Point{lon, latB}
	return geo.Distance(a, b) / 1000.0
}
