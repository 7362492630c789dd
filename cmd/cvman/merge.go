package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-manager/internal/importer"
	"github.com/jonathan/cv-manager/internal/store"
)

var mergeCommand = &cobra.Command{
	Use:   "merge",
	Short: "Merge two CV data files into one",
	Long: `Merges an overlay record into a base record. Scalar conflicts keep the
base value and are reported; list entries are matched by key (company and
position, institution and degree, publication title) so duplicates are
not introduced, and new entries are appended.`,
	RunE: runMerge,
}

var (
	mergeBase    string
	mergeOverlay string
	mergeOutput  string
)

func init() {
	mergeCommand.Flags().StringVar(&mergeBase, "base", "", "Base CV data file (wins conflicts)")
	mergeCommand.Flags().StringVar(&mergeOverlay, "overlay", "", "Overlay CV data file")
	mergeCommand.Flags().StringVarP(&mergeOutput, "output", "o", "", "Merged output path (default: overwrite base)")
	_ = mergeCommand.MarkFlagRequired("base")
	_ = mergeCommand.MarkFlagRequired("overlay")

	rootCmd.AddCommand(mergeCommand)
}

func runMerge(_ *cobra.Command, _ []string) error {
	base, err := loadRecord(mergeBase)
	if err != nil {
		return err
	}
	overlay, err := loadRecord(mergeOverlay)
	if err != nil {
		return err
	}

	merged, conflicts := importer.Merge(base, overlay)
	for _, conflict := range conflicts {
		fmt.Fprintf(os.Stdout, "Conflict (kept base): %s\n", conflict)
	}

	outputPath := mergeOutput
	if outputPath == "" {
		outputPath = mergeBase
	}
	if err := store.Save(outputPath, merged); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Merged record saved to %s\n", outputPath)
	return nil
}
