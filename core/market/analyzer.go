package market

import (
	"fmt"
	"hash/fnv"
	"math"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/yielddrive/fleetyield/core/model"
)

// Analyzer derives market snapshots from time-of-day, day-of-week and
// location heuristics. Snapshots are deterministic per sampling bucket:
// two calls with the same coordinates inside one bucket return identical
// values. All state is immutable configuration, so an Analyzer is safe for
// concurrent use.
type Analyzer struct {
	cfg Config
}

// NewAnalyzer fills config defaults, validates them and builds an Analyzer.
func NewAnalyzer(cfg Config) (*Analyzer, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Analyzer{cfg: cfg}, nil
}

// Config returns the effective configuration after defaulting.
func (a *Analyzer) Config() Config {
	return a.cfg
}

// Snapshot implements Source. Locations beyond MaxRadiusKm of every centre
// receive the neutral fallback snapshot instead of an error, so callers can
// keep optimizing with degraded confidence. Malformed coordinates are
// rejected outright.
func (a *Analyzer) Snapshot(lat, lng float64, at time.Time) (model.MarketCondition, error) {
	if err := model.ValidateCoordinates(lat, lng); err != nil {
		return model.MarketCondition{}, err
	}
	if at.IsZero() {
		return model.MarketCondition{}, fmt.Errorf("%w: zero snapshot time", model.ErrInvalidInput)
	}

	bucket := at.UTC().Truncate(a.cfg.SampleInterval())
	distKm := a.nearestCentreKm(lat, lng)
	if distKm > a.cfg.MaxRadiusKm {
		return a.cfg.Neutral(lat, lng, bucket, distKm), nil
	}

	hour := bucket.Hour()
	weekend := bucket.Weekday() == time.Saturday || bucket.Weekday() == time.Sunday
	locFactor := math.Max(a.cfg.MinLocationFactor, 1-distKm*a.cfg.DemandDecayPerKm)

	acc := a.cfg.AccommodationProfile[hour]
	del := a.cfg.DeliveryProfile[hour]
	ride := a.cfg.RideshareProfile[hour]
	if weekend {
		acc *= a.cfg.WeekendAccommodation
		del *= a.cfg.WeekendDelivery
		ride *= a.cfg.WeekendRideshare
	}
	acc = clamp01(acc * locFactor * a.jitter(lat, lng, bucket, model.ModeAccommodation))
	del = clamp01(del * locFactor * a.jitter(lat, lng, bucket, model.ModeDelivery))
	ride = clamp01(ride * locFactor * a.jitter(lat, lng, bucket, model.ModeRideshare))

	surge := 1.0
	if ride > a.cfg.SurgeThreshold {
		surge = 1 + (ride-0.5)*a.cfg.SurgeSlope
	}
	surge = math.Min(model.SurgeMax, math.Max(model.SurgeMin, surge))

	return model.MarketCondition{
		Timestamp:             bucket,
		Latitude:              lat,
		Longitude:             lng,
		AccommodationDemand:   round2(acc),
		AccommodationAvgPrice: round0(a.cfg.AccommodationBasePrice * (1 + acc*a.cfg.AccommodationPricePremium)),
		NearbyOccupancy:       round2(0.5 + acc*0.4),
		DeliveryDemand:        round2(del),
		DeliveryAvgPrice:      round0(a.cfg.DeliveryBasePrice * (1 + del*a.cfg.DeliveryPricePremium)),
		PendingDeliveryJobs:   int(del * 50),
		RideshareDemand:       round2(ride),
		RideshareSurge:        round2(surge),
		RideshareAvgPrice:     round0(a.cfg.RideshareBasePrice * (1 + ride*a.cfg.RidesharePricePremium)),
		DemandVolatility:      round3(a.windowVolatility(hour)),
		DataDistanceKm:        round2(distKm),
	}, nil
}

func (a *Analyzer) nearestCentreKm(lat, lng float64) float64 {
	nearest := math.MaxFloat64
	for _, c := range a.cfg.Centres {
		if d := haversineKm(lat, lng, c.Latitude, c.Longitude); d < nearest {
			nearest = d
		}
	}
	return nearest
}

// windowVolatility pools the upcoming profile hours of all three earning
// modes and returns their standard deviation. Choppy hours ahead mean less
// trustworthy projections.
func (a *Analyzer) windowVolatility(hour int) float64 {
	n := a.cfg.VolatilityWindowHours
	samples := make([]float64, 0, 3*n)
	for i := 0; i < n; i++ {
		h := (hour + i) % 24
		samples = append(samples,
			a.cfg.AccommodationProfile[h],
			a.cfg.DeliveryProfile[h],
			a.cfg.RideshareProfile[h],
		)
	}
	return stat.StdDev(samples, nil)
}

// jitter perturbs demand deterministically in [1-JitterPct, 1+JitterPct].
// The perturbation is keyed on a coarse location cell, the sampling bucket
// and the mode, so nearby requests in the same bucket agree while different
// buckets move independently.
func (a *Analyzer) jitter(lat, lng float64, bucket time.Time, mode model.VehicleMode) float64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%d|%d|%d|%s",
		int64(math.Round(lat*100)),
		int64(math.Round(lng*100)),
		bucket.Unix(),
		mode,
	)
	frac := float64(h.Sum64()%1000) / 999
	return 1 - a.cfg.JitterPct + 2*a.cfg.JitterPct*frac
}

const earthRadiusKm = 6371.0

func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180
	rLat1 := lat1 * math.Pi / 180
	rLat2 := lat2 * math.Pi / 180
	s := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(s), math.Sqrt(1-s))
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}

func round0(v float64) float64 { return math.Round(v) }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
