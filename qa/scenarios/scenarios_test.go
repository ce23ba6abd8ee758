package scenarios

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestScenario(t *testing.T) {
	files, err := filepath.Glob("*.yaml")
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(files) == 0 {
		t.Fatal("no scenario files found")
	}
	for _, f := range files {
		sc, err := Load(f)
		if err != nil {
			t.Fatalf("load %s: %v", f, err)
		}
		t.Run(sc.Name, func(t *testing.T) {
			RunScenario(t, sc)
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "minimal.yaml")
	data := `
name: minimal
market:
  rideshare_avg_price: 900
vehicles:
  - id: veh-001
    current_mode: idle
    allowed_modes: [rideshare]
    current_hourly_rate: 100
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	sc, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if sc.HorizonHours != 4 {
		t.Fatalf("expected default horizon 4, got %d", sc.HorizonHours)
	}
	if sc.At.Weekday() != time.Monday {
		t.Fatalf("expected a Monday default, got %s", sc.At.Weekday())
	}
}

func TestLoadInvalid(t *testing.T) {
	if _, err := Load("no-file.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
	tmp, err := os.CreateTemp(t.TempDir(), "bad*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tmp.WriteString(":"); err != nil {
		t.Fatal(err)
	}
	if err := tmp.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(tmp.Name()); err == nil {
		t.Fatal("expected unmarshal error")
	}
}

func TestMarketDefNeutralSurge(t *testing.T) {
	d := MarketDef{RideshareAvgPrice: 900}
	m := d.ToModel(35.0, 139.0, time.Date(2025, time.June, 2, 10, 0, 0, 0, time.UTC))
	if m.RideshareSurge != 1.0 {
		t.Fatalf("expected neutral surge 1.0, got %v", m.RideshareSurge)
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("expected valid snapshot, got %v", err)
	}
}
