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

var trials int

var trialsCmd = &cobra.Command{
	Use:   "trials <algorithm-id>...",
	Short: "Average route length over repeated builds on one customer field",
	Args:  cobra.RangeArgs(1, services.MaxTrialAlgorithms),
	Run:   runCommand(runTrials),
}

func init() {
	addParameterFlags(trialsCmd)
	trialsCmd.Flags().IntVar(&trials, "trials", 50, "Builds per algorithm")
	rootCmd.AddCommand(trialsCmd)
}

func runTrials(ctx context.Context, w io.Writer, solver *services.Solver, ids []string) int {
	stats, err := solver.RunTrials(ctx, services.TrialsRequest{
		VRPType:      vrpType,
		AlgorithmIDs: ids,
		Parameters:   params,
		Trials:       trials,
		Seed:         seed,
	})
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if jsonOutput {
		writeJSON(w, dto.NewTrialsResponse(stats))
	} else {
		fmt.Fprintln(w, formatTrialsHuman(stats))
	}
	return 0
}

func formatTrialsHuman(stats []services.TrialStats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-26s %7s %10s %10s %10s %10s\n", "ALGORITHM", "TRIALS", "MEAN", "MIN", "MAX", "TRUE MEAN")
	for _, s := range stats {
		fmt.Fprintf(&b, "%-26s %7d %10.2f %10.2f %10.2f %10.2f\n",
			s.Algorithm.ID, s.Trials, s.MeanDistance, s.MinDistance, s.MaxDistance, s.MeanTrueDistance)
	}
	return strings.TrimRight(b.String(), "\n")
}
