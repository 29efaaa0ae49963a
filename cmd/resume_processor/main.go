// Package main provides the entry point for the resume processor.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_processor",
	Short: "Resume processing and PDF generation service",
	Long:  "Resume processor extracts structured resume records from raw documents, tailors them to job postings, and renders themed PDF resumes via REST API or locally.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
