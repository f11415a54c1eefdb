package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/damien/match-engine/internal/selector"
	"github.com/damien/match-engine/internal/semantic"
	"github.com/damien/match-engine/internal/types"
)

var selectCommand = &cobra.Command{
	Use:   "select",
	Short: "Preview which scoring strategy a batch would use",
	Long:  "Runs only the strategy selector for a candidate and batch size, printing the chosen strategy, its confidence, the reasoning, and the runner-up scores.",
	RunE:  runSelectCmd,
}

var (
	selectCandidatePath string
	selectJobCount      int
	selectPriority      string
	selectJSON          bool
)

func init() {
	selectCommand.Flags().StringVarP(&selectCandidatePath, "candidate", "c", "", "Path to candidate profile JSON (required)")
	selectCommand.Flags().IntVarP(&selectJobCount, "job-count", "n", 1, "Number of jobs in the prospective batch")
	selectCommand.Flags().StringVarP(&selectPriority, "priority", "p", "balanced", "Performance priority: speed, balanced, or quality")
	selectCommand.Flags().BoolVar(&selectJSON, "json", false, "Emit the routing decision as JSON")

	_ = selectCommand.MarkFlagRequired("candidate")

	rootCmd.AddCommand(selectCommand)
}

func runSelectCmd(_ *cobra.Command, _ []string) error {
	candidate, err := loadJSON[types.CandidateProfile](selectCandidatePath)
	if err != nil {
		return fmt.Errorf("loading candidate: %w", err)
	}
	if err := candidate.Validate(); err != nil {
		return fmt.Errorf("invalid candidate: %w", err)
	}
	if selectJobCount < 1 {
		return fmt.Errorf("job-count must be at least 1")
	}

	sel := selector.New(semantic.DefaultTaxonomy())
	result := sel.Select(candidate, selectJobCount, &selector.Options{PerformancePriority: selectPriority})

	if selectJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Printf("Strategy:       %s (confidence %d)\n", result.Strategy, result.Confidence)
	fmt.Printf("Predicted cost: %.1f\n", result.PredictedCost)
	for _, reason := range result.Reasoning {
		fmt.Printf("  - %s\n", reason)
	}
	if len(result.RunnersUp) > 0 {
		fmt.Println("Runners-up:")
		for _, ru := range result.RunnersUp {
			fmt.Printf("  %-16s %.1f\n", ru.Name, ru.Score)
		}
	}
	return nil
}
