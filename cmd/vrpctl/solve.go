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

var solveCmd = &cobra.Command{
	Use:   "solve <algorithm-id>",
	Short: "Generate a customer field and route it with one algorithm",
	Args:  cobra.ExactArgs(1),
	Run: runCommand(func(ctx context.Context, w io.Writer, solver *services.Solver, args []string) int {
		return runSolve(ctx, w, solver, args[0])
	}),
}

func init() {
	addParameterFlags(solveCmd)
	rootCmd.AddCommand(solveCmd)
}

func runSolve(ctx context.Context, w io.Writer, solver *services.Solver, algorithmID string) int {
	res, err := solver.Solve(ctx, services.SolveRequest{
		VRPType:     vrpType,
		AlgorithmID: algorithmID,
		Parameters:  params,
		Seed:        seed,
	})
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if jsonOutput {
		writeJSON(w, dto.NewSolveResponse(res, solver.Field.Depot))
	} else {
		fmt.Fprintln(w, formatSolveHuman(res))
	}

	// Unserved customers are reported, not failed, but scripts may want to know.
	if res.Metrics.CustomersDropped > 0 {
		return 1
	}
	return 0
}

func formatSolveHuman(res *services.SolveResult) string {
	var b strings.Builder
	m := res.Metrics

	fmt.Fprintf(&b, "Algorithm:      %s (%s, score %.4f)\n", res.Algorithm.Name, res.VRPType, res.Algorithm.Score)
	fmt.Fprintf(&b, "Total distance: %.2f (true %.2f)\n", m.TotalDistance, m.TrueTotalDistance)
	fmt.Fprintf(&b, "Routes:         %d (avg %.2f)\n", m.NumRoutes, m.AvgRouteLength)
	fmt.Fprintf(&b, "Served:         %d of %d\n", m.CustomersServed, res.Parameters.NumCustomers)
	fmt.Fprintf(&b, "Time:           %.3f ms\n", dto.Millis(m.ExecutionTime))

	for _, r := range res.Solution.Routes {
		fmt.Fprintf(&b, "  vehicle %-3d load %4d/%-4d dist %8.2f  %v\n",
			r.VehicleID, r.Load, res.Parameters.VehicleCapacity, r.Distance, r.CustomerIDs())
	}
	for _, warning := range res.Warnings {
		fmt.Fprintf(&b, "Warning: %s\n", warning)
	}
	return strings.TrimRight(b.String(), "\n")
}
