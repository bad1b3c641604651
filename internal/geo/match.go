package geo

// DistanceInfo annotates a trainer with how they relate to a physical
// training location. Distance is nil when the trainer's location data is
// incomplete and the match could not be evaluated.
type DistanceInfo struct {
	WithinRadius bool     `json:"is_within_radius"`
	Distance     *float64 `json:"distance,omitempty"`
}

// MatchPhysical checks a trainer's travel radius against a physical
// location. A trainer missing latitude, longitude or radius is a
// non-match, not an error. The radius boundary is inclusive.
func MatchPhysical(lat, lon, radiusKm *float64, targetLat, targetLon float64) DistanceInfo {
	if lat == nil || lon == nil || radiusKm == nil {
		return DistanceInfo{WithinRadius: false, Distance: nil}
	}

	d := Distance(*lat, *lon, targetLat, targetLon)
	return DistanceInfo{
		WithinRadius: d <= *radiusKm,
		Distance:     &d,
	}
}
