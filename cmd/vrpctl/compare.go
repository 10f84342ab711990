package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"vrp-visualizer-service/internal/api/dto"
	"vrp-visualizer-service/internal/services"

	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare <algorithm-id> <algorithm-id> [algorithm-id]",
	Short: "Route one customer field with two or three algorithms",
	Args:  cobra.RangeArgs(services.MinCompareAlgorithms, services.MaxCompareAlgorithms),
	Run:   runCommand(runCompare),
}

func init() {
	addParameterFlags(compareCmd)
	rootCmd.AddCommand(compareCmd)
}

func runCompare(ctx context.Context, w io.Writer, solver *services.Solver, ids []string) int {
	entries, err := solver.Compare(ctx, services.CompareRequest{
		VRPType:      vrpType,
		AlgorithmIDs: ids,
		Parameters:   params,
		Seed:         seed,
	})
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if jsonOutput {
		writeJSON(w, dto.NewCompareResponse(entries))
	} else {
		fmt.Fprintln(w, formatCompareHuman(entries))
	}
	return 0
}

func formatCompareHuman(entries []services.CompareEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-26s %10s %7s %7s %9s\n", "ALGORITHM", "DISTANCE", "ROUTES", "SERVED", "TIME(ms)")
	for _, e := range entries {
		mark := ""
		if e.IsBest {
			mark = "  best"
		}
		fmt.Fprintf(&b, "%-26s %10.2f %7d %7d %9.3f%s\n",
			e.Algorithm.ID, e.TotalDistance, e.NumRoutes, e.CustomersServed, dto.Millis(e.ExecutionTime), mark)
	}
	return strings.TrimRight(b.String(), "\n")
}
