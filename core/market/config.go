package market

import (
	"fmt"
	"time"

	"github.com/yielddrive/fleetyield/core/model"
)

// Centre is one sampled market data point. Demand decays with distance from
// the nearest centre, and locations beyond MaxRadiusKm of every centre are
// served the neutral fallback snapshot.
type Centre struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Config carries every tunable of the heuristic analyzer. All coefficients
// are product-tuned values, overridable so tests can pin deterministic
// tables. Zero fields are filled by SetDefaults.
type Config struct {
	Centres []Centre `json:"centres"`

	MaxRadiusKm float64 `json:"max_radius_km"`

	// SampleIntervalMinutes buckets request timestamps: calls within one
	// bucket see the identical snapshot.
	SampleIntervalMinutes int `json:"sample_interval_minutes"`

	// JitterPct bounds the deterministic per-bucket demand perturbation,
	// e.g. 0.1 for +/-10%.
	JitterPct float64 `json:"jitter_pct"`

	MinLocationFactor float64 `json:"min_location_factor"`
	DemandDecayPerKm  float64 `json:"demand_decay_per_km"`

	WeekendAccommodation float64 `json:"weekend_accommodation"`
	WeekendDelivery      float64 `json:"weekend_delivery"`
	WeekendRideshare     float64 `json:"weekend_rideshare"`

	AccommodationBasePrice float64 `json:"accommodation_base_price"`
	DeliveryBasePrice      float64 `json:"delivery_base_price"`
	RideshareBasePrice     float64 `json:"rideshare_base_price"`

	AccommodationPricePremium float64 `json:"accommodation_price_premium"`
	DeliveryPricePremium      float64 `json:"delivery_price_premium"`
	RidesharePricePremium     float64 `json:"rideshare_price_premium"`

	// SurgeThreshold is the rideshare demand above which surge pricing
	// activates; SurgeSlope is how fast it grows past the midpoint.
	SurgeThreshold float64 `json:"surge_threshold"`
	SurgeSlope     float64 `json:"surge_slope"`

	// VolatilityWindowHours sizes the look-ahead over the demand profiles
	// used for the volatility statistic.
	VolatilityWindowHours int `json:"volatility_window_hours"`

	// Hourly demand profiles, exactly one entry per hour of day (UTC).
	AccommodationProfile []float64 `json:"accommodation_profile"`
	DeliveryProfile      []float64 `json:"delivery_profile"`
	RideshareProfile     []float64 `json:"rideshare_profile"`

	// NeutralDemand seeds every demand signal of the fallback snapshot.
	NeutralDemand float64 `json:"neutral_demand"`
}

func defaultProfile(mode model.VehicleMode) []float64 {
	switch mode {
	case model.ModeAccommodation:
		return []float64{
			0.9, 0.9, 0.8, 0.7, 0.6, 0.5,
			0.4, 0.3, 0.2, 0.2, 0.3, 0.3,
			0.3, 0.3, 0.4, 0.5, 0.6, 0.7,
			0.8, 0.85, 0.9, 0.95, 0.95, 0.9,
		}
	case model.ModeDelivery:
		return []float64{
			0.1, 0.05, 0.05, 0.05, 0.1, 0.2,
			0.4, 0.6, 0.7, 0.6, 0.5, 0.8,
			0.9, 0.7, 0.5, 0.4, 0.5, 0.7,
			0.9, 0.95, 0.8, 0.5, 0.3, 0.2,
		}
	case model.ModeRideshare:
		return []float64{
			0.7, 0.5, 0.3, 0.2, 0.2, 0.3,
			0.5, 0.8, 0.9, 0.7, 0.5, 0.5,
			0.6, 0.5, 0.5, 0.6, 0.7, 0.9,
			0.95, 0.9, 0.85, 0.8, 0.85, 0.8,
		}
	}
	return nil
}

// SetDefaults fills unset fields with the tuned defaults.
func (c *Config) SetDefaults() {
	if len(c.Centres) == 0 {
		c.Centres = []Centre{{Name: "tokyo", Latitude: 35.6762, Longitude: 139.6503}}
	}
	if c.MaxRadiusKm <= 0 {
		c.MaxRadiusKm = 150
	}
	if c.SampleIntervalMinutes <= 0 {
		c.SampleIntervalMinutes = 15
	}
	if c.JitterPct <= 0 {
		c.JitterPct = 0.10
	}
	if c.MinLocationFactor <= 0 {
		c.MinLocationFactor = 0.5
	}
	if c.DemandDecayPerKm <= 0 {
		c.DemandDecayPerKm = 0.09
	}
	if c.WeekendAccommodation <= 0 {
		c.WeekendAccommodation = 1.3
	}
	if c.WeekendDelivery <= 0 {
		c.WeekendDelivery = 0.8
	}
	if c.WeekendRideshare <= 0 {
		c.WeekendRideshare = 1.2
	}
	if c.AccommodationBasePrice <= 0 {
		c.AccommodationBasePrice = 4000
	}
	if c.DeliveryBasePrice <= 0 {
		c.DeliveryBasePrice = 1500
	}
	if c.RideshareBasePrice <= 0 {
		c.RideshareBasePrice = 2000
	}
	if c.AccommodationPricePremium <= 0 {
		c.AccommodationPricePremium = 0.5
	}
	if c.DeliveryPricePremium <= 0 {
		c.DeliveryPricePremium = 0.3
	}
	if c.RidesharePricePremium <= 0 {
		c.RidesharePricePremium = 0.8
	}
	if c.SurgeThreshold <= 0 {
		c.SurgeThreshold = 0.7
	}
	if c.SurgeSlope <= 0 {
		c.SurgeSlope = 1.5
	}
	if c.VolatilityWindowHours <= 0 {
		c.VolatilityWindowHours = 4
	}
	if len(c.AccommodationProfile) == 0 {
		c.AccommodationProfile = defaultProfile(model.ModeAccommodation)
	}
	if len(c.DeliveryProfile) == 0 {
		c.DeliveryProfile = defaultProfile(model.ModeDelivery)
	}
	if len(c.RideshareProfile) == 0 {
		c.RideshareProfile = defaultProfile(model.ModeRideshare)
	}
	if c.NeutralDemand <= 0 {
		c.NeutralDemand = 0.5
	}
}

// Validate checks the configuration invariants.
func (c Config) Validate() error {
	if len(c.Centres) == 0 {
		return fmt.Errorf("market: at least one centre is required")
	}
	for _, ct := range c.Centres {
		if err := model.ValidateCoordinates(ct.Latitude, ct.Longitude); err != nil {
			return fmt.Errorf("market: centre %q: %w", ct.Name, err)
		}
	}
	if c.JitterPct > 0.5 {
		return fmt.Errorf("market: jitter_pct %v above 0.5", c.JitterPct)
	}
	if c.MinLocationFactor > 1 {
		return fmt.Errorf("market: min_location_factor %v above 1", c.MinLocationFactor)
	}
	if c.SurgeThreshold > 1 {
		return fmt.Errorf("market: surge_threshold %v above 1", c.SurgeThreshold)
	}
	if c.NeutralDemand > 1 {
		return fmt.Errorf("market: neutral_demand %v above 1", c.NeutralDemand)
	}
	for name, p := range map[string][]float64{
		"accommodation_profile": c.AccommodationProfile,
		"delivery_profile":      c.DeliveryProfile,
		"rideshare_profile":     c.RideshareProfile,
	} {
		if len(p) != 24 {
			return fmt.Errorf("market: %s has %d entries, want 24", name, len(p))
		}
		for h, v := range p {
			if v < 0 || v > 1 {
				return fmt.Errorf("market: %s hour %d value %v outside [0,1]", name, h, v)
			}
		}
	}
	return nil
}

// SampleInterval returns the timestamp bucketing interval.
func (c Config) SampleInterval() time.Duration {
	return time.Duration(c.SampleIntervalMinutes) * time.Minute
}

// Neutral builds the fallback snapshot served for locations outside the
// covered area. Prices follow the same premium formula as live snapshots so
// downstream maths stay comparable.
func (c Config) Neutral(lat, lng float64, at time.Time, distKm float64) model.MarketCondition {
	d := c.NeutralDemand
	return model.MarketCondition{
		Timestamp:             at,
		Latitude:              lat,
		Longitude:             lng,
		AccommodationDemand:   d,
		AccommodationAvgPrice: round0(c.AccommodationBasePrice * (1 + d*c.AccommodationPricePremium)),
		NearbyOccupancy:       round2(0.5 + d*0.4),
		DeliveryDemand:        d,
		DeliveryAvgPrice:      round0(c.DeliveryBasePrice * (1 + d*c.DeliveryPricePremium)),
		PendingDeliveryJobs:   int(d * 50),
		RideshareDemand:       d,
		RideshareSurge:        1.0,
		RideshareAvgPrice:     round0(c.RideshareBasePrice * (1 + d*c.RidesharePricePremium)),
		DataDistanceKm:        round2(distKm),
		Fallback:              true,
	}
}
