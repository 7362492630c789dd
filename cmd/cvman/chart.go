package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-manager/internal/chart"
)

var chartCommand = &cobra.Command{
	Use:   "chart",
	Short: "Render the skills section as a proficiency chart",
	RunE:  runChart,
}

var (
	chartConfigPath string
	chartData       string
	chartOutput     string
)

func init() {
	chartCommand.Flags().StringVar(&chartConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	chartCommand.Flags().StringVarP(&chartData, "data", "d", "", "Path to the CV data file")
	chartCommand.Flags().StringVarP(&chartOutput, "output", "o", "", "Output path (default: {output-dir}/skills_chart.html)")

	rootCmd.AddCommand(chartCommand)
}

func runChart(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(chartConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("data") {
		cfg.Data = chartData
	}

	record, err := loadRecord(cfg.Data)
	if err != nil {
		return err
	}

	outputPath := chartOutput
	if outputPath == "" {
		outputPath = filepath.Join(cfg.OutputDir, "skills_chart.html")
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := chart.RenderFile(record, outputPath); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Skills chart saved to %s\n", outputPath)
	return nil
}
