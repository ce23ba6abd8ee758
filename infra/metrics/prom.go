package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/yielddrive/fleetyield/core/metrics"
)

// PromSink records yield evaluation events in Prometheus metrics.
type PromSink struct {
	recommendations *prometheus.CounterVec
	gain            *prometheus.GaugeVec
	latency         *prometheus.HistogramVec
	fleet           prometheus.Gauge
}

// NewPromSink registers yield metrics on the default Prometheus registerer.
// The HTTP server exposing them is started separately via StartPromServer.
func NewPromSink() (coremetrics.MetricsSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (coremetrics.MetricsSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	recommendations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "yield_recommendations_total",
		Help: "Total number of vehicle evaluations",
	}, []string{"vehicle_id", "mode", "switched"})
	gain := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "yield_potential_gain",
		Help: "Net hourly benefit of the recommended switch, per vehicle",
	}, []string{"vehicle_id"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "yield_evaluation_seconds",
		Help:    "Time spent evaluating one vehicle",
		Buckets: prometheus.DefBuckets,
	}, []string{"vehicle_id", "failed"})
	fleet := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "fleet_vehicles_total",
		Help: "Number of vehicles under evaluation",
	})

	if err := reg.Register(recommendations); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			recommendations = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(gain); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			gain = are.ExistingCollector.(*prometheus.GaugeVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(latency); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			latency = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(fleet); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			fleet = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}

	return &PromSink{recommendations: recommendations, gain: gain, latency: latency, fleet: fleet}, nil
}

// RecordRecommendations increments the evaluation counter and updates the
// per-vehicle gain gauge. The mode label carries the mode the vehicle should
// run after the evaluation, which is the current mode for held vehicles.
func (s *PromSink) RecordRecommendations(evs []coremetrics.RecommendationEvent) error {
	for _, ev := range evs {
		mode := ev.CurrentMode
		if ev.Switched {
			mode = ev.BestMode
		}
		s.recommendations.WithLabelValues(ev.VehicleID, string(mode), strconv.FormatBool(ev.Switched)).Inc()
		s.gain.WithLabelValues(ev.VehicleID).Set(ev.PotentialGain)
	}
	return nil
}

// RecordEvaluationLatency records the per-vehicle evaluation histogram.
func (s *PromSink) RecordEvaluationLatency(lat []coremetrics.EvaluationLatency) error {
	for _, l := range lat {
		s.latency.WithLabelValues(l.VehicleID, strconv.FormatBool(l.Failed)).Observe(l.Duration.Seconds())
	}
	return nil
}

// RecordFleetSize sets the gauge to the number of evaluated vehicles.
func (s *PromSink) RecordFleetSize(size int) error {
	if s.fleet != nil {
		s.fleet.Set(float64(size))
	}
	return nil
}
