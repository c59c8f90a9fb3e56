// Package main provides the entry point for the Lira intelligence engine.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "intel_agent",
	Short: "Lira Intelligence Engine",
	Long:  "Lira Intelligence Engine detects risk signals in intake conversations, tracks detection trends, estimates case outcomes, matches investigators to cases, and scans content for compliance violations.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
