package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"vrp-visualizer-service/internal/adapters/catalog"
	"vrp-visualizer-service/internal/config"
	"vrp-visualizer-service/internal/domain"
	"vrp-visualizer-service/internal/platform/logger"
	"vrp-visualizer-service/internal/services"

	"github.com/spf13/cobra"
)

var (
	jsonOutput bool
	seed       uint64
	vrpType    string
	params     domain.Parameters
)

var rootCmd = &cobra.Command{
	Use:   "vrpctl",
	Short: "Generate customer fields and build capacity-constrained routes",
	Long: `vrpctl runs the VRP visualizer core in-process.

Algorithms are picked by id (see "vrpctl algorithms"); the quality score
embedded in the id controls how closely routes follow nearest-neighbor order.

Environment Variables:
  FIELD_CONFIG_PATH  YAML overlay for the canvas geometry
  LOG_LEVEL          debug, info, warn, error (default: warn for the CLI)`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := os.Getenv("LOG_LEVEL")
		if level == "" {
			level = "warn"
		}
		logger.InitTo(os.Stderr, level, os.Getenv("LOG_FORMAT"))
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 0, "Random seed for reproducible runs (0 = random)")
	rootCmd.PersistentFlags().StringVarP(&vrpType, "type", "t", domain.VRPTypeCVRP, "Problem type: cvrp, pcvrp, vrptw")
}

// addParameterFlags registers the problem size flags on commands that solve.
func addParameterFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&params.NumCustomers, "customers", "n", 50, "Number of customers")
	cmd.Flags().IntVarP(&params.VehicleCapacity, "capacity", "c", 100, "Vehicle capacity")
	cmd.Flags().IntVarP(&params.NumVehicles, "vehicles", "v", 10, "Number of vehicles")
}

func newSolver() (*services.Solver, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return services.NewSolver(cfg.Field, cfg.Limits, catalog.NewStaticCatalog(), nil, nil, nil), nil
}

// runCommand wires signal handling and exit codes around a command body.
func runCommand(body func(ctx context.Context, w io.Writer, solver *services.Solver, args []string) int) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		solver, err := newSolver()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}

		if code := body(ctx, cmd.OutOrStdout(), solver, args); code != 0 {
			slog.Debug("command failed", "cmd", cmd.Name(), "code", code)
			os.Exit(code)
		}
	}
}

func writeJSON(w io.Writer, v any) {
	data, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(w, string(data))
}
