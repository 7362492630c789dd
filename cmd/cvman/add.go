package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-manager/internal/store"
	"github.com/jonathan/cv-manager/internal/types"
)

var addCommand = &cobra.Command{
	Use:   "add",
	Short: "Add an entry to a CV section",
}

var addExperienceCommand = &cobra.Command{
	Use:   "experience",
	Short: "Add a work experience entry",
	RunE:  runAddExperience,
}

var addPublicationCommand = &cobra.Command{
	Use:   "publication",
	Short: "Add a publication entry",
	RunE:  runAddPublication,
}

var addCertificationCommand = &cobra.Command{
	Use:   "certification",
	Short: "Add a certification entry",
	RunE:  runAddCertification,
}

var (
	addData string

	expCompany          string
	expPosition         string
	expPeriod           string
	expResponsibilities []string

	pubGroup      string
	pubAuthors    []string
	pubTitle      string
	pubYear       int
	pubEditors    []string
	pubBook       string
	pubPublisher  string
	pubConference string
	pubLocation   string
	pubDates      string
	pubDOI        string

	certName     string
	certIssuer   string
	certYear     int
	certLocation string
)

func init() {
	addCommand.PersistentFlags().StringVarP(&addData, "data", "d", "cv_data.json", "Path to the CV data file")

	addExperienceCommand.Flags().StringVar(&expCompany, "company", "", "Company name")
	addExperienceCommand.Flags().StringVar(&expPosition, "position", "", "Position title")
	addExperienceCommand.Flags().StringVar(&expPeriod, "period", "", "Date range (e.g., '2022 - Present')")
	addExperienceCommand.Flags().StringArrayVar(&expResponsibilities, "responsibility", nil, "Responsibility bullet (repeatable)")
	_ = addExperienceCommand.MarkFlagRequired("company")
	_ = addExperienceCommand.MarkFlagRequired("position")
	_ = addExperienceCommand.MarkFlagRequired("period")

	addPublicationCommand.Flags().StringVar(&pubGroup, "group", "conference_proceedings", "Publication group: book_chapters, conference_proceedings, journal_articles, other")
	addPublicationCommand.Flags().StringSliceVar(&pubAuthors, "authors", nil, "Authors (comma-separated)")
	addPublicationCommand.Flags().StringVar(&pubTitle, "title", "", "Publication title")
	addPublicationCommand.Flags().IntVar(&pubYear, "year", 0, "Publication year")
	addPublicationCommand.Flags().StringSliceVar(&pubEditors, "editors", nil, "Editors (book chapters)")
	addPublicationCommand.Flags().StringVar(&pubBook, "book", "", "Book title (book chapters)")
	addPublicationCommand.Flags().StringVar(&pubPublisher, "publisher", "", "Publisher (book chapters)")
	addPublicationCommand.Flags().StringVar(&pubConference, "conference", "", "Conference name (proceedings)")
	addPublicationCommand.Flags().StringVar(&pubLocation, "location", "", "Location (proceedings)")
	addPublicationCommand.Flags().StringVar(&pubDates, "dates", "", "Conference dates (proceedings)")
	addPublicationCommand.Flags().StringVar(&pubDOI, "doi", "", "DOI")
	_ = addPublicationCommand.MarkFlagRequired("authors")
	_ = addPublicationCommand.MarkFlagRequired("title")
	_ = addPublicationCommand.MarkFlagRequired("year")

	addCertificationCommand.Flags().StringVar(&certName, "name", "", "Certification name")
	addCertificationCommand.Flags().StringVar(&certIssuer, "issuer", "", "Issuing organization")
	addCertificationCommand.Flags().IntVar(&certYear, "year", 0, "Year obtained")
	addCertificationCommand.Flags().StringVar(&certLocation, "location", "", "Location (optional)")
	_ = addCertificationCommand.MarkFlagRequired("name")
	_ = addCertificationCommand.MarkFlagRequired("issuer")
	_ = addCertificationCommand.MarkFlagRequired("year")

	addCommand.AddCommand(addExperienceCommand, addPublicationCommand, addCertificationCommand)
	rootCmd.AddCommand(addCommand)
}

func runAddExperience(_ *cobra.Command, _ []string) error {
	record, err := loadRecord(addData)
	if err != nil {
		return err
	}
	entry := types.Experience{
		Company:          expCompany,
		Position:         expPosition,
		Period:           expPeriod,
		Responsibilities: expResponsibilities,
	}
	if err := store.AddExperience(record, entry); err != nil {
		return err
	}
	if err := store.Save(addData, record); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Added experience at %s\n", expCompany)
	return nil
}

func runAddPublication(_ *cobra.Command, _ []string) error {
	record, err := loadRecord(addData)
	if err != nil {
		return err
	}
	entry := types.Publication{
		Authors:    pubAuthors,
		Title:      pubTitle,
		Year:       pubYear,
		Editors:    pubEditors,
		Book:       pubBook,
		Publisher:  pubPublisher,
		Conference: pubConference,
		Location:   pubLocation,
		Dates:      pubDates,
		DOI:        pubDOI,
	}
	group := store.PublicationGroup(strings.ToLower(pubGroup))
	if err := store.AddPublication(record, group, entry); err != nil {
		return err
	}
	if err := store.Save(addData, record); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Added publication: %s\n", pubTitle)
	return nil
}

func runAddCertification(_ *cobra.Command, _ []string) error {
	record, err := loadRecord(addData)
	if err != nil {
		return err
	}
	entry := types.Certification{
		Name:     certName,
		Issuer:   certIssuer,
		Year:     certYear,
		Location: certLocation,
	}
	if err := store.AddCertification(record, entry); err != nil {
		return err
	}
	if err := store.Save(addData, record); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Added certification: %s\n", certName)
	return nil
}
