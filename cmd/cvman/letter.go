package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-manager/internal/letter"
)

var letterCommand = &cobra.Command{
	Use:   "letter",
	Short: "Generate a cover letter from a template",
	Long: `Fills one of the built-in cover letter templates with fields derived
from the CV record (name, contact details, current position) merged with
a per-application JSON fields file. A field the template needs but no
source provides fails the render.`,
	RunE: runLetter,
}

var (
	letterConfigPath string
	letterData       string
	letterTemplate   string
	letterFieldsPath string
	letterOutput     string
	letterList       bool
)

func init() {
	letterCommand.Flags().StringVar(&letterConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	letterCommand.Flags().StringVarP(&letterData, "data", "d", "", "Path to the CV data file")
	letterCommand.Flags().StringVarP(&letterTemplate, "template", "t", "academic", "Letter template name")
	letterCommand.Flags().StringVar(&letterFieldsPath, "fields", "", "JSON file with per-application fields")
	letterCommand.Flags().StringVarP(&letterOutput, "output", "o", "", "Output path (default: {output-dir}/cover_letter_{template}.md)")
	letterCommand.Flags().BoolVar(&letterList, "list", false, "List available templates and exit")

	rootCmd.AddCommand(letterCommand)
}

func runLetter(cmd *cobra.Command, _ []string) error {
	if letterList {
		fmt.Fprintln(os.Stdout, "Available templates:")
		for _, name := range letter.Templates() {
			fmt.Fprintf(os.Stdout, "  %s\n", name)
		}
		return nil
	}

	cfg, err := loadConfig(letterConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("data") {
		cfg.Data = letterData
	}

	record, err := loadRecord(cfg.Data)
	if err != nil {
		return err
	}

	fields := map[string]string{}
	if letterFieldsPath != "" {
		raw, err := os.ReadFile(letterFieldsPath)
		if err != nil {
			return fmt.Errorf("failed to read fields file: %w", err)
		}
		if err := json.Unmarshal(raw, &fields); err != nil {
			return fmt.Errorf("failed to parse fields file: %w", err)
		}
	}

	text, err := letter.Generate(letterTemplate, record, fields, time.Now())
	if err != nil {
		return err
	}

	outputPath := letterOutput
	if outputPath == "" {
		outputPath = filepath.Join(cfg.OutputDir, fmt.Sprintf("cover_letter_%s.md", letterTemplate))
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(outputPath, []byte(strings.TrimRight(text, "\n")+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write cover letter: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Cover letter saved to %s\n", outputPath)
	return nil
}
