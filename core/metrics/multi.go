package metrics

// MultiSink fans events out to multiple sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordRecommendations forwards the events to all sinks, returning the
// first error encountered.
func (m *MultiSink) RecordRecommendations(evs []RecommendationEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordRecommendations(evs); err != nil {
			return err
		}
	}
	return nil
}

// RecordMarket forwards market snapshots when supported by the sink.
func (m *MultiSink) RecordMarket(ev MarketEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(MarketRecorder); ok {
			if err := rec.RecordMarket(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordEvaluationLatency forwards latency metrics when supported by the sink.
func (m *MultiSink) RecordEvaluationLatency(lat []EvaluationLatency) error {
	for _, s := range m.Sinks {
		if lr, ok := s.(LatencyRecorder); ok {
			if err := lr.RecordEvaluationLatency(lat); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordFleetSize forwards fleet size metrics when supported by the sink.
func (m *MultiSink) RecordFleetSize(size int) error {
	for _, s := range m.Sinks {
		if fr, ok := s.(FleetSizeRecorder); ok {
			if err := fr.RecordFleetSize(size); err != nil {
				return err
			}
		}
	}
	return nil
}
