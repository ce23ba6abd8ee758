package e2e

import (
	"context"
	"encoding/xml"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	coremetrics "github.com/yielddrive/fleetyield/core/metrics"
	"github.com/yielddrive/fleetyield/core/model"
	"github.com/yielddrive/fleetyield/infra/metrics"
)

const (
	influxOrg    = "e2e_org"
	influxBucket = "e2e_bucket"
	influxToken  = "e2e-token"
)

// junitReport is a minimal representation of a JUnit XML report. The E2E
// suite writes one so CI systems can display the results.
type junitReport struct {
	XMLName  xml.Name        `xml:"testsuite"`
	Name     string          `xml:"name,attr"`
	Tests    int             `xml:"tests,attr"`
	Failures int             `xml:"failures,attr"`
	Cases    []junitTestCase `xml:"testcase"`
}

type junitTestCase struct {
	Name    string  `xml:"name,attr"`
	Failure *string `xml:"failure,omitempty"`
	Time    float64 `xml:"time,attr"`
}

func writeJUnit(path string, rep junitReport) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := xml.NewEncoder(f)
	enc.Indent("", "  ")
	return enc.Encode(rep)
}

// startInflux boots an InfluxDB 2.7 container pre-initialized with the test
// org, bucket and admin token, and returns it with the base URL.
func startInflux(ctx context.Context, t *testing.T) (tc.Container, string) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "influxdb:2.7",
		ExposedPorts: []string{"8086/tcp"},
		Env: map[string]string{
			"DOCKER_INFLUXDB_INIT_MODE":        "setup",
			"DOCKER_INFLUXDB_INIT_USERNAME":    "e2e",
			"DOCKER_INFLUXDB_INIT_PASSWORD":    "e2e-password",
			"DOCKER_INFLUXDB_INIT_ORG":         influxOrg,
			"DOCKER_INFLUXDB_INIT_BUCKET":      influxBucket,
			"DOCKER_INFLUXDB_INIT_ADMIN_TOKEN": influxToken,
		},
		WaitingFor: wait.ForHTTP("/health").WithPort("8086/tcp").WithStartupTimeout(60 * time.Second),
	}
	cont, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		t.Skipf("unable to start influx container: %v", err)
	}
	host, _ := cont.Host(ctx)
	port, _ := cont.MappedPort(ctx, "8086")
	return cont, fmt.Sprintf("http://%s:%s", host, port.Port())
}

// Test_E2E_RecommendationRoundTrip drives the production Influx sink against
// a real InfluxDB instance and reads the written recommendation back via
// Flux.
func Test_E2E_RecommendationRoundTrip(t *testing.T) {
	if _, err := exec.LookPath("docker"); err != nil {
		t.Skipf("docker not installed: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	cont, url := startInflux(ctx, t)
	if cont != nil {
		defer cont.Terminate(ctx) //nolint:errcheck
	}
	t.Logf("InfluxDB started at %s", url)

	cli := NewInfluxClient(url, influxOrg, influxBucket, influxToken)
	defer cli.Close()
	if err := cli.SetupBucket(ctx); err != nil {
		t.Fatalf("setup bucket: %v", err)
	}

	// The fallback constructor health-checks the server; a pass hands back
	// the real sink, so a NopSink here would mean the instance is broken.
	sink := metrics.NewInfluxSinkWithFallback(url, influxToken, influxOrg, influxBucket)
	if err := sink.RecordRecommendations([]coremetrics.RecommendationEvent{{
		RequestID:     "e2e-req",
		VehicleID:     "veh-e2e",
		CurrentMode:   model.ModeIdle,
		BestMode:      model.ModeRideshare,
		PotentialGain: 2290,
		Confidence:    0.75,
		Switched:      true,
		Time:          time.Now(),
	}}); err != nil {
		t.Fatalf("record recommendations: %v", err)
	}

	flux := fmt.Sprintf(`from(bucket:"%s") |> range(start:-5m) |> filter(fn: (r) => r._measurement == "yield_recommendation")`, influxBucket)
	res, err := cli.Query(ctx, flux)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	defer res.Close()
	count := 0
	for res.Next() {
		count++
	}
	if err := res.Err(); err != nil {
		t.Fatalf("iterate results: %v", err)
	}
	if count == 0 {
		t.Fatal("no recommendation points returned from Influx")
	}
	t.Logf("Influx query returned %d points", count)

	rep := junitReport{Name: "e2e", Tests: 1, Cases: []junitTestCase{{Name: "Test_E2E_RecommendationRoundTrip"}}}
	if err := writeJUnit(filepath.Join(t.TempDir(), "e2e.xml"), rep); err != nil {
		t.Logf("write junit: %v", err)
	}
}
