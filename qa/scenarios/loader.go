package scenarios

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yielddrive/fleetyield/core/model"
	"github.com/yielddrive/fleetyield/infra/fleet"
)

// MarketDef pins the market snapshot a scenario runs against, so outcomes
// never depend on the synthetic analyzer's clock bucketing.
type MarketDef struct {
	AccommodationDemand   float64 `yaml:"accommodation_demand"`
	AccommodationAvgPrice float64 `yaml:"accommodation_avg_price"`
	NearbyOccupancy       float64 `yaml:"nearby_occupancy"`

	DeliveryDemand      float64 `yaml:"delivery_demand"`
	DeliveryAvgPrice    float64 `yaml:"delivery_avg_price"`
	PendingDeliveryJobs int     `yaml:"pending_delivery_jobs"`

	RideshareDemand   float64 `yaml:"rideshare_demand"`
	RideshareSurge    float64 `yaml:"rideshare_surge"`
	RideshareAvgPrice float64 `yaml:"rideshare_avg_price"`

	DemandVolatility float64 `yaml:"demand_volatility"`
	DataDistanceKm   float64 `yaml:"data_distance_km"`
}

// ToModel builds the snapshot at one vehicle's position. An omitted surge
// means neutral pricing.
func (d MarketDef) ToModel(lat, lng float64, at time.Time) model.MarketCondition {
	surge := d.RideshareSurge
	if surge == 0 {
		surge = 1.0
	}
	return model.MarketCondition{
		Timestamp:             at,
		Latitude:              lat,
		Longitude:             lng,
		AccommodationDemand:   d.AccommodationDemand,
		AccommodationAvgPrice: d.AccommodationAvgPrice,
		NearbyOccupancy:       d.NearbyOccupancy,
		DeliveryDemand:        d.DeliveryDemand,
		DeliveryAvgPrice:      d.DeliveryAvgPrice,
		PendingDeliveryJobs:   d.PendingDeliveryJobs,
		RideshareDemand:       d.RideshareDemand,
		RideshareSurge:        surge,
		RideshareAvgPrice:     d.RideshareAvgPrice,
		DemandVolatility:      d.DemandVolatility,
		DataDistanceKm:        d.DataDistanceKm,
	}
}

// Expected lists the assertions a scenario makes. Switched is always
// checked; the maps assert only the vehicles they name. An empty string in
// BestModes means the vehicle must hold its current mode.
type Expected struct {
	Switched        int               `yaml:"switched"`
	BestModes       map[string]string `yaml:"best_modes,omitempty"`
	OptimalModes    map[string]string `yaml:"optimal_modes,omitempty"`
	Recommendations map[string]int    `yaml:"recommendations,omitempty"`
}

type Scenario struct {
	Name         string             `yaml:"name"`
	Description  string             `yaml:"description,omitempty"`
	At           time.Time          `yaml:"at,omitempty"`
	HorizonHours int                `yaml:"horizon_hours,omitempty"`
	Market       MarketDef          `yaml:"market"`
	Vehicles     []fleet.VehicleDef `yaml:"vehicles"`
	Expected     Expected           `yaml:"expected"`
}

// Load reads one scenario file. Omitted timing fields default to a fixed
// Monday morning and a four hour horizon, keeping runs reproducible.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	if sc.At.IsZero() {
		sc.At = time.Date(2025, time.June, 2, 10, 0, 0, 0, time.UTC)
	}
	if sc.HorizonHours <= 0 {
		sc.HorizonHours = 4
	}
	return &sc, nil
}
