// Package coverage implements the CoverageEngine: cell enumeration,
// coverage-bitmap cache consultation, the quadrant-split external fetch
// workaround, and result aggregation.
package coverage

import (
	"fmt"
	"math"

	"golang.org/x/sync/singleflight"

	"github.com/mdolmen/autour-go/internal/apperr"
	"github.com/mdolmen/autour-go/internal/credits"
	"github.com/mdolmen/autour-go/internal/fetch"
	"github.com/mdolmen/autour-go/internal/grid"
	"github.com/mdolmen/autour-go/internal/storage"
	"github.com/mdolmen/autour-go/internal/utils"
)

// maxSplitDepth bounds the quadrant-split recursion; the spec leaves this
// uncapped but recommends 8 as a worst-case bound.
const maxSplitDepth = 8

// Engine ties the grid resolver, store, external fetcher, and credit ledger
// together to answer a nearby-places query.
type Engine struct {
	DB      *storage.DB
	Fetcher fetch.Fetcher
	Ledger  *credits.Ledger
	logger  *utils.Logger

	sf singleflight.Group
}

func NewEngine(db *storage.DB, fetcher fetch.Fetcher, ledger *credits.Ledger) *Engine {
	return &Engine{
		DB:      db,
		Fetcher: fetcher,
		Ledger:  ledger,
		logger:  utils.NewLogger("Coverage"),
	}
}

// Query resolves a circular query around (lat, lon) at the given expansion
// level, filling cache misses for category from the external provider, and
// returns the aggregated places matching placesType. Returns a
// KindCreditExhausted error without touching the external provider when the
// user has no credits left; the handler soft-fails that case to 200 with an
// empty array.
func (e *Engine) Query(userID string, lat, lon float64, expansionLevel int, category grid.Category, includedTypes []string, placesType string) ([]storage.Place, error) {
	ok, err := e.Ledger.HasCredits(userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.CreditExhausted()
	}

	cells, err := grid.EnumerateRing(lat, lon, expansionLevel)
	if err != nil {
		return nil, err
	}

	areaIDs := make([]int, 0, len(cells))
	for _, cell := range cells {
		areaID, err := e.ensureArea(cell)
		if err != nil {
			return nil, err
		}
		areaIDs = append(areaIDs, areaID)

		if err := e.fillCell(cell, areaID, category, includedTypes); err != nil {
			// Per-cell upstream failures are swallowed: the bitmap bit
			// stays unset and the query continues with whatever is
			// already stored for this cell.
			e.logger.Warn("cell fetch failed for area %d: %v", areaID, err)
		}
	}

	places, err := e.DB.PlacesForAreas(areaIDs, placesType)
	if err != nil {
		return nil, err
	}

	if err := e.Ledger.Dec(userID); err != nil {
		e.logger.Error("failed to decrement credits for %q after successful query: %v", userID, err)
	}

	return places, nil
}

// ensureArea resolves a cell's area id, lazily creating its subzone and the
// subzone's 8,192 areas on first touch. Idempotent on the subzone's (lon,
// lat) uniqueness constraint.
func (e *Engine) ensureArea(cell grid.PointInfo) (int, error) {
	zoneID, err := e.DB.GetZoneID(cell.Zone, byte(cell.Band))
	if err != nil {
		return 0, err
	}
	if zoneID == 0 {
		return 0, apperr.Storage(nil, "zone (%d, %c) missing from bootstrap", cell.Zone, cell.Band)
	}

	subzoneID, err := e.DB.GetSubzoneByCoords(cell.SubzoneLon, cell.SubzoneLat)
	if err != nil {
		return 0, err
	}
	if subzoneID == 0 {
		subzoneID, err = e.DB.InsertSubzone(cell.SubzoneLon, cell.SubzoneLat, zoneID)
		if err != nil {
			return 0, err
		}
		if err := e.DB.InsertAreas(subzoneID); err != nil {
			return 0, err
		}
	}

	areaID, err := e.DB.GetAreaIDByCoords(subzoneID, cell.AreaX, cell.AreaY)
	if err != nil {
		return 0, err
	}
	if areaID == 0 {
		return 0, apperr.Storage(nil, "area (%d, %d) missing after subzone creation", cell.AreaX, cell.AreaY)
	}
	return areaID, nil
}

// fillCell checks the cell's coverage bitmap for category, and on a miss,
// fetches from the external provider (with quadrant-split recursion on page
// saturation), persists results, and sets the bit.
func (e *Engine) fillCell(cell grid.PointInfo, areaID int, category grid.Category, includedTypes []string) error {
	bitmap, err := e.DB.GetAreaBitmap(areaID)
	if err != nil {
		return err
	}
	if bitmap&category.Bit() != 0 {
		return nil
	}

	key := fmt.Sprintf("%d:%d", areaID, category.Bit())
	_, err, _ = e.sf.Do(key, func() (interface{}, error) {
		west := cell.AreaCenterLon - grid.AreaWidth/2
		east := cell.AreaCenterLon + grid.AreaWidth/2
		south := cell.AreaCenterLat - grid.AreaHeight/2
		north := cell.AreaCenterLat + grid.AreaHeight/2

		radiusKm := math.Max(
			grid.LonDeltaKm(cell.AreaCenterLat, west, east),
			grid.LatDeltaKm(south, north, cell.AreaCenterLon),
		)
		radiusKm = math.Round(radiusKm*10) / 10

		places, err := e.fetchWithSplit(cell.AreaCenterLat, cell.AreaCenterLon, radiusKm*1000, grid.AreaWidth, grid.AreaHeight, includedTypes, 0)
		if err != nil {
			return nil, err
		}

		for _, p := range places {
			place := rawPlaceToPlace(p, areaID, e.DB.CountryID(lastToken(p.FormattedAddress)))
			if _, err := e.DB.UpsertPlace(place); err != nil {
				return nil, err
			}
		}

		if err := e.DB.SetAreaBitmap(areaID, category.Bit()); err != nil {
			return nil, err
		}
		return nil, nil
	})
	return err
}

// fetchWithSplit calls the external fetcher for a rectangle of the given
// width/height, recursively quadrant-splitting while the provider's page
// limit is saturated, up to maxSplitDepth.
func (e *Engine) fetchWithSplit(centerLat, centerLon, radiusM, width, height float64, includedTypes []string, depth int) ([]fetch.RawPlace, error) {
	places, saturated, err := e.Fetcher.FetchCircle(centerLat, centerLon, radiusM, includedTypes)
	if err != nil {
		return nil, err
	}
	if !saturated || depth >= maxSplitDepth {
		return places, nil
	}

	halfWidth := width / 2
	halfHeight := height / 2
	offsets := [4][2]float64{
		{-halfWidth / 2, -halfHeight / 2},
		{-halfWidth / 2, halfHeight / 2},
		{halfWidth / 2, -halfHeight / 2},
		{halfWidth / 2, halfHeight / 2},
	}

	all := make([]fetch.RawPlace, 0, len(places))
	for _, off := range offsets {
		subLon := centerLon + off[0]
		subLat := centerLat + off[1]
		subRadiusKm := math.Max(
			grid.LonDeltaKm(subLat, subLon-halfWidth/2, subLon+halfWidth/2),
			grid.LatDeltaKm(subLat-halfHeight/2, subLat+halfHeight/2, subLon),
		)
		sub, err := e.fetchWithSplit(subLat, subLon, subRadiusKm*1000, halfWidth, halfHeight, includedTypes, depth+1)
		if err != nil {
			return nil, err
		}
		all = append(all, sub...)
	}
	return all, nil
}

func rawPlaceToPlace(p fetch.RawPlace, areaID, countryID int) *storage.Place {
	return &storage.Place{
		FormattedAddress:    p.FormattedAddress,
		GoogleMapsURI:       p.GoogleMapsURI,
		PrimaryType:         p.PrimaryType,
		DisplayName:         p.DisplayName,
		Longitude:           p.Longitude,
		Latitude:            p.Latitude,
		CurrentOpeningHours: p.CurrentOpeningHours,
		CountryID:           countryID,
		AreaID:              areaID,
	}
}

func lastToken(address string) string {
	last := ""
	start := 0
	for i := 0; i <= len(address); i++ {
		if i == len(address) || address[i] == ' ' || address[i] == ',' {
			if i > start {
				last = address[start:i]
			}
			start = i + 1
		}
	}
	return last
}
