package events

// MarketFallbackEvent is published when a location outside the covered area
// is served the neutral market snapshot.
type MarketFallbackEvent struct {
	Latitude   float64
	Longitude  float64
	DistanceKm float64
}
