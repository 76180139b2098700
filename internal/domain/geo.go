package domain

// Nearest resolves a map click to the closest record by flat-plane squared
// distance over (lat, lon). The small geographic extent of the monitored
// region makes geodesic correction unnecessary. Rows without two valid
// coordinates are ignored; ties keep the first row encountered. Returns
// false when no row has valid coordinates.
func Nearest(t Table, lat, lon float64) (int, bool) {
	best := -1
	var bestDist float64
	for i, r := range t.Rows {
		rlat, rlon := r.Coordinates()
		if !rlat.Valid || !rlon.Valid {
			continue
		}
		dLat := rlat.Value - lat
		dLon := rlon.Value - lon
		dist := dLat*dLat + dLon*dLon
		if best == -1 || dist < bestDist {
			best = i
			bestDist = dist
		}
	}
	if best == -1 {
		return 0, false
	}
	return best, true
}
