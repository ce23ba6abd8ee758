package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	data := `market:
  max_radius_km: 80
  surge_threshold: 0.75
yield:
  hysteresis_margin: 150
schedule:
  slot_minutes: 30
fleet:
  path: "fleet.yaml"
watch:
  interval_seconds: 60
  horizon_hours: 6
metrics:
  prometheus_port: ":9091"
  sinks:
    - type: "nop"
declog:
  backend: "sqlite"
  path: "decisions.db"
`
	cfg, err := Load(writeConfig(t, "config.yaml", data))
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"market.max_radius_km", cfg.Market.MaxRadiusKm, 80.0},
		{"market.surge_threshold", cfg.Market.SurgeThreshold, 0.75},
		{"yield.hysteresis_margin", cfg.Yield.HysteresisMargin, 150.0},
		{"schedule.slot_minutes", cfg.Schedule.SlotMinutes, 30},
		{"fleet.path", cfg.Fleet.Path, "fleet.yaml"},
		{"watch.interval_seconds", cfg.Watch.IntervalSeconds, 60},
		{"watch.horizon_hours", cfg.Watch.HorizonHours, 6},
		{"metrics.prometheus_port", cfg.Metrics.PrometheusPort, ":9091"},
		{"metrics_sink", len(cfg.Metrics.Sinks) == 1 && cfg.Metrics.Sinks[0].Type == "nop", true},
		{"declog.backend", cfg.DecisionLog.Backend, "sqlite"},
		{"declog.path", cfg.DecisionLog.Path, "decisions.db"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s mismatch: %v", c.name, c.got)
		}
	}
	// untouched sections still carry defaults
	if cfg.Predict.Confidence.HorizonPenaltyPerHour <= 0 {
		t.Errorf("predict defaults not applied: %+v", cfg.Predict)
	}
	if cfg.Watch.Interval().Seconds() != 60 {
		t.Errorf("interval accessor: %v", cfg.Watch.Interval())
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "config.yaml", "watch:\n  interval_seconds: 10\n"))
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.DecisionLog.Backend != "jsonl" || cfg.DecisionLog.Path == "" {
		t.Errorf("declog defaults: %+v", cfg.DecisionLog)
	}
	if cfg.Watch.HorizonHours != 4 {
		t.Errorf("watch horizon default: %d", cfg.Watch.HorizonHours)
	}
	if cfg.Yield.HysteresisMargin != 200 {
		t.Errorf("yield margin default: %v", cfg.Yield.HysteresisMargin)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	if err := os.Setenv("FY_WATCH__HORIZON_HOURS", "12"); err != nil {
		t.Fatalf("setenv: %v", err)
	}
	defer func() {
		if err := os.Unsetenv("FY_WATCH__HORIZON_HOURS"); err != nil {
			t.Fatalf("unsetenv: %v", err)
		}
	}()
	cfg, err := Load(writeConfig(t, "config.yaml", "watch:\n  horizon_hours: 6\n"))
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Watch.HorizonHours != 12 {
		t.Errorf("env override lost: %d", cfg.Watch.HorizonHours)
	}
}

func TestLoadJSON(t *testing.T) {
	cfg, err := Load(writeConfig(t, "config.json", `{"watch": {"interval_seconds": 30}}`))
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Watch.IntervalSeconds != 30 {
		t.Errorf("json load: %d", cfg.Watch.IntervalSeconds)
	}
}

func TestLoadRejectsUnknownExtension(t *testing.T) {
	if _, err := Load(writeConfig(t, "config.toml", "x = 1")); err == nil {
		t.Fatalf("expected unsupported format error")
	}
}

func TestLoadRejectsBadSection(t *testing.T) {
	_, err := Load(writeConfig(t, "config.yaml", "declog:\n  backend: \"csv\"\n"))
	if err == nil {
		t.Fatalf("expected declog validation error")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Watch.IntervalSeconds != 300 || cfg.DecisionLog.Backend != "jsonl" {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}
