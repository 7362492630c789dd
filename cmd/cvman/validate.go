package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-manager/internal/store"
)

var validateCommand = &cobra.Command{
	Use:   "validate",
	Short: "Validate the CV data file against the schema",
	RunE:  runValidate,
}

var validateData string

func init() {
	validateCommand.Flags().StringVarP(&validateData, "data", "d", "cv_data.json", "Path to the CV data file")
	rootCmd.AddCommand(validateCommand)
}

func runValidate(_ *cobra.Command, _ []string) error {
	record, err := store.Load(validateData)
	if err != nil {
		var malformed *store.MalformedDataError
		if errors.As(err, &malformed) {
			fmt.Fprintf(os.Stderr, "%s is not valid:\n", validateData)
			for _, fieldErr := range malformed.Errors {
				fmt.Fprintf(os.Stderr, "  - %s: %s\n", fieldErr.Field, fieldErr.Message)
			}
			return fmt.Errorf("validation failed with %d error(s)", len(malformed.Errors))
		}
		return err
	}

	fmt.Fprintf(os.Stdout, "%s is valid (%s, %d experience entries, %d publications)\n",
		validateData,
		record.PersonalInfo.Name,
		len(record.WorkExperience),
		len(record.Publications.AllPublications()),
	)
	return nil
}
