package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-manager/internal/observability"
	"github.com/jonathan/cv-manager/internal/render"
	"github.com/jonathan/cv-manager/internal/style"
)

var generateCommand = &cobra.Command{
	Use:   "generate",
	Short: "Render the CV into Markdown, styled HTML, or paginated PDF",
	Long: `Projects the CV record through the selected style's section plan and renders it.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runGenerate,
}

var (
	genConfigPath        string
	genData              string
	genStyle             string
	genFormat            string
	genSections          []string
	genExperienceLimit   int
	genPublicationsLimit int
	genOutput            string
	genOutputDir         string
	genPDFNoSandbox      bool
	genVerbose           bool
)

func init() {
	generateCommand.Flags().StringVar(&genConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	generateCommand.Flags().StringVarP(&genData, "data", "d", "", "Path to the CV data file")
	generateCommand.Flags().StringVarP(&genStyle, "style", "s", "", "CV style: research, industry, academic, technical, hybrid")
	generateCommand.Flags().StringVarP(&genFormat, "format", "f", "", "Output format: markdown, html, pdf")
	generateCommand.Flags().StringSliceVar(&genSections, "sections", nil, "Explicit section list replacing the style's default order")
	generateCommand.Flags().IntVar(&genExperienceLimit, "experience-limit", 0, "Maximum experience entries (0 = all)")
	generateCommand.Flags().IntVar(&genPublicationsLimit, "publications-limit", 0, "Maximum publication entries per group (0 = all)")
	generateCommand.Flags().StringVarP(&genOutput, "output", "o", "", "Explicit artifact path (default: {output-dir}/cv_{style}.{ext})")
	generateCommand.Flags().StringVar(&genOutputDir, "output-dir", "", "Directory for rendered artifacts")
	generateCommand.Flags().BoolVar(&genPDFNoSandbox, "pdf-no-sandbox", false, "Run Chrome without sandbox (required in Docker)")
	generateCommand.Flags().BoolVarP(&genVerbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(generateCommand)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(genConfigPath)
	if err != nil {
		return err
	}

	// CLI flags take priority over config file values.
	if cmd.Flags().Changed("data") {
		cfg.Data = genData
	}
	if cmd.Flags().Changed("style") {
		cfg.Style = genStyle
	}
	if cmd.Flags().Changed("format") {
		cfg.Format = genFormat
	}
	if cmd.Flags().Changed("sections") {
		cfg.Sections = genSections
	}
	if cmd.Flags().Changed("experience-limit") {
		cfg.ExperienceLimit = genExperienceLimit
	}
	if cmd.Flags().Changed("publications-limit") {
		cfg.PublicationsLimit = genPublicationsLimit
	}
	if cmd.Flags().Changed("output-dir") {
		cfg.OutputDir = genOutputDir
	}
	if cmd.Flags().Changed("pdf-no-sandbox") {
		cfg.PDFNoSandbox = genPDFNoSandbox
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = genVerbose
	}

	// Validate style and format before touching the data file so bad
	// invocations fail fast with no artifact written.
	if _, err := style.Lookup(cfg.Style); err != nil {
		return err
	}
	format, err := render.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	record, err := loadRecord(cfg.Data)
	if err != nil {
		return err
	}

	sections, err := style.ParseSectionIDs(cfg.Sections)
	if err != nil {
		return err
	}

	limits := map[style.SectionID]int{}
	if cfg.ExperienceLimit > 0 {
		limits[style.SectionExperience] = cfg.ExperienceLimit
	}
	if cfg.PublicationsLimit > 0 {
		limits[style.SectionPublications] = cfg.PublicationsLimit
	}

	req := render.Request{
		Style:      cfg.Style,
		Format:     format,
		Sections:   sections,
		Limits:     limits,
		OutputPath: genOutput,
	}
	if format == render.FormatPDF {
		opts := render.DefaultPDFOptions()
		opts.NoSandbox = cfg.PDFNoSandbox
		req.PDF = opts
	}

	if cfg.Verbose {
		printer := observability.NewPrinter(os.Stdout)
		printer.PrintRecordSummary(record)
		if plan, planErr := style.Select(cfg.Style, record, style.Overrides{Sections: sections, Limits: limits}); planErr == nil {
			printer.PrintSectionPlan(cfg.Style, plan)
		}
	}

	artifact, err := render.Generate(context.Background(), record, req, cfg.OutputDir)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "CV saved to %s\n", artifact.Path)
	return nil
}
