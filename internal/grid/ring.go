package grid

// EnumerateRing returns the (2N+1)^2 PointInfo cells covering the square of
// Chebyshev radius N around the point (lat, lon), center cell first. Each
// offset is added to the center cell's own center coordinate and re-resolved
// from scratch, so ring cells cross subzone/zone boundaries correctly.
func EnumerateRing(lat, lon float64, expansionLevel int) ([]PointInfo, error) {
	center, err := Resolve(lat, lon)
	if err != nil {
		return nil, err
	}

	cells := make([]PointInfo, 0, (2*expansionLevel+1)*(2*expansionLevel+1))
	cells = append(cells, center)

	centerLon := center.AreaCenterLon
	centerLat := center.AreaCenterLat

	resolveOffset := func(dj, di int) (PointInfo, error) {
		offLon := centerLon + float64(dj)*AreaWidth
		offLat := centerLat + float64(di)*AreaHeight
		return Resolve(offLat, offLon)
	}

	for i := 1; i <= expansionLevel; i++ {
		for j := -i; j <= i; j++ {
			p, err := resolveOffset(j, i)
			if err != nil {
				return nil, err
			}
			cells = append(cells, p)
		}
		for j := -i; j <= i; j++ {
			p, err := resolveOffset(j, -i)
			if err != nil {
				return nil, err
			}
			cells = append(cells, p)
		}
		for j := -i + 1; j <= i-1; j++ {
			p, err := resolveOffset(-i, j)
			if err != nil {
				return nil, err
			}
			cells = append(cells, p)
		}
		for j := -i + 1; j <= i-1; j++ {
			p, err := resolveOffset(i, j)
			if err != nil {
				return nil, err
			}
			cells = append(cells, p)
		}
	}

	return cells, nil
}
