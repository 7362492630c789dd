package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-manager/internal/importer"
	"github.com/jonathan/cv-manager/internal/store"
	"github.com/jonathan/cv-manager/internal/types"
)

var importCommand = &cobra.Command{
	Use:   "import",
	Short: "Import profile data from external sources",
}

var importOrcidCommand = &cobra.Command{
	Use:   "orcid",
	Short: "Import publications and affiliations from an ORCID record",
	RunE:  runImportOrcid,
}

var importLinkedInCommand = &cobra.Command{
	Use:   "linkedin <export.html>",
	Short: "Import experience and education from a LinkedIn profile export",
	Args:  cobra.ExactArgs(1),
	RunE:  runImportLinkedIn,
}

var (
	importConfigPath string
	importData       string
	importOrcidID    string
	importDryRun     bool
)

func init() {
	importCommand.PersistentFlags().StringVar(&importConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	importCommand.PersistentFlags().StringVarP(&importData, "data", "d", "", "Path to the CV data file")
	importCommand.PersistentFlags().BoolVar(&importDryRun, "dry-run", false, "Report what would change without writing")

	importOrcidCommand.Flags().StringVar(&importOrcidID, "id", "", "ORCID iD (e.g., 0000-0002-1825-0097)")

	importCommand.AddCommand(importOrcidCommand, importLinkedInCommand)
	rootCmd.AddCommand(importCommand)
}

func runImportOrcid(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(importConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("data") {
		cfg.Data = importData
	}
	if cmd.Flags().Changed("id") {
		cfg.OrcidID = importOrcidID
	}
	if cfg.OrcidID == "" {
		return fmt.Errorf("an ORCID iD is required (--id flag or orcid_id config key)")
	}

	client := importer.NewORCIDClient()
	overlay, err := client.Import(context.Background(), cfg.OrcidID)
	if err != nil {
		return err
	}
	return mergeAndSave(cfg.Data, overlay)
}

func runImportLinkedIn(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(importConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("data") {
		cfg.Data = importData
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open LinkedIn export: %w", err)
	}
	defer func() { _ = f.Close() }()

	overlay, err := importer.ImportLinkedIn(f)
	if err != nil {
		return err
	}
	return mergeAndSave(cfg.Data, overlay)
}

// mergeAndSave overlays imported data on the existing record. A missing
// data file is fine: the import becomes the initial record.
func mergeAndSave(dataPath string, overlay *types.CVRecord) error {
	base := overlay
	var conflicts []importer.Conflict
	if _, statErr := os.Stat(dataPath); statErr == nil {
		existing, err := loadRecord(dataPath)
		if err != nil {
			return err
		}
		base, conflicts = importer.Merge(existing, overlay)
	}

	for _, conflict := range conflicts {
		fmt.Fprintf(os.Stdout, "Conflict (kept existing): %s\n", conflict)
	}
	fmt.Fprintf(os.Stdout, "Merged record: %d experience entries, %d education entries, %d publications\n",
		len(base.WorkExperience), len(base.Education), len(base.Publications.AllPublications()))

	if importDryRun {
		fmt.Fprintln(os.Stdout, "Dry run: no changes written")
		return nil
	}
	if err := store.Save(dataPath, base); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "CV data saved to %s\n", dataPath)
	return nil
}
