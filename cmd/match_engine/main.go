// Package main provides the command-line entry point for the match engine.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "match_engine",
	Short: "Adaptive candidate/job matching engine",
	Long:  "Scores a candidate against batches of job offers across weighted criteria, adapting weights to the candidate's stated preferences and routing each batch to the cheapest adequate scoring strategy.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
