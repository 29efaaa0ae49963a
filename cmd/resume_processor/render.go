package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-processor/internal/engine"
)

var (
	renderInput string
	renderTheme string
	renderOut   string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a resume JSON file to PDF",
	Long:  `Render a structured resume record from a local JSON file to a themed PDF, without any server or database.`,
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().StringVar(&renderInput, "input", "", "Path to resume JSON file (required)")
	renderCmd.Flags().StringVar(&renderTheme, "theme", "", "Theme name (unknown names use the default theme)")
	renderCmd.Flags().StringVar(&renderOut, "out", "resume.pdf", "Output PDF path")
	_ = renderCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	data, err := os.ReadFile(renderInput)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	eng := engine.New(1)
	pdfBytes, err := eng.RenderJSON(cmd.Context(), data, renderTheme)
	if err != nil {
		return fmt.Errorf("rendering failed: %w", err)
	}

	if err := os.WriteFile(renderOut, pdfBytes, 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	fmt.Printf("Wrote %s (%d bytes)\n", renderOut, len(pdfBytes))
	return nil
}
