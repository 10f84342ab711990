package main

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"vrp-visualizer-service/internal/adapters/catalog"
	"vrp-visualizer-service/internal/api/dto"
	"vrp-visualizer-service/internal/domain"
	"vrp-visualizer-service/internal/ports"

	"github.com/spf13/cobra"
)

var allTypes bool

var algorithmsCmd = &cobra.Command{
	Use:   "algorithms",
	Short: "List the built-in algorithm ids",
	Run: func(cmd *cobra.Command, args []string) {
		runAlgorithms(cmd.OutOrStdout(), catalog.NewStaticCatalog())
	},
}

func init() {
	algorithmsCmd.Flags().BoolVar(&allTypes, "all", false, "List every problem type, ignoring --type")
	rootCmd.AddCommand(algorithmsCmd)
}

func runAlgorithms(w io.Writer, cat ports.AlgorithmCatalog) {
	all := cat.List()
	if !allTypes {
		t := strings.ToLower(vrpType)
		all = map[string][]domain.Algorithm{t: all[t]}
	}

	if jsonOutput {
		writeJSON(w, dto.NewAlgorithmsResponse(all))
		return
	}
	fmt.Fprintln(w, formatAlgorithmsHuman(all))
}

func formatAlgorithmsHuman(all map[string][]domain.Algorithm) string {
	types := make([]string, 0, len(all))
	for t := range all {
		types = append(types, t)
	}
	slices.Sort(types)

	var b strings.Builder
	for _, t := range types {
		fmt.Fprintf(&b, "%s:\n", strings.ToUpper(t))
		if len(all[t]) == 0 {
			fmt.Fprintln(&b, "  (none)")
		}
		for _, a := range all[t] {
			fmt.Fprintf(&b, "  %-24s %.4f\n", a.ID, a.Score)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
