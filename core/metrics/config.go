package metrics

import "github.com/yielddrive/fleetyield/core/factory"

// Config defines settings for metrics sinks.
type Config struct {
	// PrometheusPort is the listen address of the /metrics endpoint,
	// e.g. ":9090". Empty disables the server.
	PrometheusPort string `json:"prometheus_port"`

	Sinks []factory.ModuleConfig `json:"sinks"`
}
