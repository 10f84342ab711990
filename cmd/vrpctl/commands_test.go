package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"vrp-visualizer-service/internal/adapters/catalog"
	"vrp-visualizer-service/internal/api/dto"
	"vrp-visualizer-service/internal/domain"
	"vrp-visualizer-service/internal/services"
)

func testSolver() *services.Solver {
	limits := domain.Limits{MaxCustomers: 500, MaxVehicles: 50, MaxCapacity: 10000}
	return services.NewSolver(domain.DefaultField(), limits, catalog.NewStaticCatalog(), nil, nil, nil)
}

// withFlags sets the package-level flag values for one test.
func withFlags(t *testing.T, asJSON bool, p domain.Parameters) {
	t.Helper()
	oldJSON, oldSeed, oldType, oldParams := jsonOutput, seed, vrpType, params
	t.Cleanup(func() { jsonOutput, seed, vrpType, params = oldJSON, oldSeed, oldType, oldParams })

	jsonOutput = asJSON
	seed = 17
	vrpType = domain.VRPTypeCVRP
	params = p
}

func TestRunSolveHuman(t *testing.T) {
	withFlags(t, false, domain.Parameters{NumCustomers: 20, VehicleCapacity: 1000, NumVehicles: 2})

	var buf bytes.Buffer
	code := runSolve(context.Background(), &buf, testSolver(), "best_solution_36.3972")
	if code != 0 {
		t.Fatalf("exit code = %d, want 0; output:\n%s", code, buf.String())
	}

	out := buf.String()
	for _, want := range []string{"Best Solution 36.3972", "Served:         20 of 20", "vehicle 0"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunSolveJSONReportsDroppedCustomers(t *testing.T) {
	withFlags(t, true, domain.Parameters{NumCustomers: 30, VehicleCapacity: 20, NumVehicles: 1})

	var buf bytes.Buffer
	code := runSolve(context.Background(), &buf, testSolver(), "best_solution_36.3972")
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}

	var res dto.SolveResponse
	if err := json.Unmarshal(buf.Bytes(), &res); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if res.Metrics.CustomersDropped == 0 || len(res.Warnings) == 0 {
		t.Fatalf("expected dropped customers and warnings, got %+v", res.Metrics)
	}
}

func TestRunSolveInvalidInput(t *testing.T) {
	withFlags(t, false, domain.Parameters{NumCustomers: 0, VehicleCapacity: 10, NumVehicles: 1})

	var buf bytes.Buffer
	if code := runSolve(context.Background(), &buf, testSolver(), "best_solution_36.3972"); code != 2 {
		t.Fatalf("exit code = %d, want 2", code)
	}
	if !strings.HasPrefix(buf.String(), "Error:") {
		t.Fatalf("output = %q, want an error line", buf.String())
	}
}

func TestRunCompareMarksBest(t *testing.T) {
	withFlags(t, false, domain.Parameters{NumCustomers: 20, VehicleCapacity: 100, NumVehicles: 4})

	var buf bytes.Buffer
	code := runCompare(context.Background(), &buf, testSolver(), []string{"best_solution_36.3972", "best_solution_36.4841"})
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if n := strings.Count(buf.String(), "  best"); n != 1 {
		t.Fatalf("best markers = %d, want 1:\n%s", n, buf.String())
	}
}

func TestRunTrialsJSON(t *testing.T) {
	withFlags(t, true, domain.Parameters{NumCustomers: 15, VehicleCapacity: 100, NumVehicles: 3})
	oldTrials := trials
	t.Cleanup(func() { trials = oldTrials })
	trials = 4

	var buf bytes.Buffer
	if code := runTrials(context.Background(), &buf, testSolver(), []string{"best_solution_36.3972"}); code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}

	var res dto.TrialsResponse
	if err := json.Unmarshal(buf.Bytes(), &res); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(res.Results) != 1 || res.Results[0].Trials != 4 {
		t.Fatalf("results = %+v, want one entry with 4 trials", res.Results)
	}
}

func TestFormatAlgorithmsHuman(t *testing.T) {
	out := formatAlgorithmsHuman(catalog.NewStaticCatalog().List())

	if !strings.HasPrefix(out, "CVRP:") {
		t.Errorf("expected CVRP first, got:\n%s", out)
	}
	if !strings.Contains(out, "best_solution_48.2860") {
		t.Errorf("expected vrptw ids in output")
	}
}
