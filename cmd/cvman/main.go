// Package main provides the entry point for the cvman CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cvman",
	Short: "Personal career-document manager",
	Long:  "cvman stores CV content in a structured data file and renders it into Markdown, styled HTML, and paginated PDF; it also fetches citation metrics, generates cover letters, charts skills, tracks job applications, and imports profile data from ORCID and LinkedIn.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
