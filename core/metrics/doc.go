// Package metrics defines interfaces and implementations for collecting
// yield evaluation metrics. Sinks like PromSink and InfluxSink record
// recommendation outcomes, market snapshots and evaluation latency, and can
// be combined with NewMultiSink. The factory helpers return a MultiSink
// automatically when multiple sinks are configured.
package metrics
