package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-manager/internal/ledger"
)

var trackCommand = &cobra.Command{
	Use:   "track",
	Short: "Track job applications in the local ledger",
}

var trackAddCommand = &cobra.Command{
	Use:   "add",
	Short: "Record a new application",
	RunE:  runTrackAdd,
}

var trackStatusCommand = &cobra.Command{
	Use:   "status <number> <status>",
	Short: "Update an application's status",
	Args:  cobra.ExactArgs(2),
	RunE:  runTrackStatus,
}

var trackFollowUpCommand = &cobra.Command{
	Use:   "follow-up <number>",
	Short: "Record a follow-up for an application",
	Args:  cobra.ExactArgs(1),
	RunE:  runTrackFollowUp,
}

var trackInterviewCommand = &cobra.Command{
	Use:   "interview <number>",
	Short: "Record an interview round for an application",
	Args:  cobra.ExactArgs(1),
	RunE:  runTrackInterview,
}

var trackListCommand = &cobra.Command{
	Use:   "list",
	Short: "List applications, optionally filtered",
	RunE:  runTrackList,
}

var trackShowCommand = &cobra.Command{
	Use:   "show <number>",
	Short: "Show one application in full",
	Args:  cobra.ExactArgs(1),
	RunE:  runTrackShow,
}

var trackReportCommand = &cobra.Command{
	Use:   "report",
	Short: "Print a summary report of all applications",
	RunE:  runTrackReport,
}

var trackExportCommand = &cobra.Command{
	Use:   "export",
	Short: "Export the ledger as CSV",
	RunE:  runTrackExport,
}

var (
	trackConfigPath string
	trackLedgerPath string

	trackPosition    string
	trackCompany     string
	trackType        string
	trackCVVersion   string
	trackCoverLetter string
	trackDeadline    string
	trackContact     string
	trackEmail       string
	trackSalary      string
	trackLocation    string
	trackURL         string
	trackNotes       string

	trackStatusNotes string

	trackFollowUpMethod string
	trackFollowUpNotes  string

	trackInterviewDate  string
	trackInterviewType  string
	trackInterviewers   string
	trackInterviewNotes string

	trackFilterStatus  string
	trackFilterCompany string
	trackFilterType    string

	trackExportOutput string
)

func init() {
	trackCommand.PersistentFlags().StringVar(&trackConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	trackCommand.PersistentFlags().StringVar(&trackLedgerPath, "ledger", "", "Path to the application ledger database")

	trackAddCommand.Flags().StringVar(&trackPosition, "position", "", "Position title")
	trackAddCommand.Flags().StringVar(&trackCompany, "company", "", "Company or institution")
	trackAddCommand.Flags().StringVar(&trackType, "type", "academic", "Application type (academic, industry, ...)")
	trackAddCommand.Flags().StringVar(&trackCVVersion, "cv-version", "", "CV style used for this application")
	trackAddCommand.Flags().StringVar(&trackCoverLetter, "cover-letter", "", "Cover letter template used")
	trackAddCommand.Flags().StringVar(&trackDeadline, "deadline", "", "Application deadline (YYYY-MM-DD)")
	trackAddCommand.Flags().StringVar(&trackContact, "contact", "", "Contact person")
	trackAddCommand.Flags().StringVar(&trackEmail, "email", "", "Contact email")
	trackAddCommand.Flags().StringVar(&trackSalary, "salary", "", "Salary range")
	trackAddCommand.Flags().StringVar(&trackLocation, "location", "", "Job location")
	trackAddCommand.Flags().StringVar(&trackURL, "url", "", "Job posting URL")
	trackAddCommand.Flags().StringVar(&trackNotes, "notes", "", "Free-form notes")
	_ = trackAddCommand.MarkFlagRequired("position")
	_ = trackAddCommand.MarkFlagRequired("company")

	trackStatusCommand.Flags().StringVar(&trackStatusNotes, "notes", "", "Notes appended to the application, datestamped")

	trackFollowUpCommand.Flags().StringVar(&trackFollowUpMethod, "method", "email", "Follow-up method")
	trackFollowUpCommand.Flags().StringVar(&trackFollowUpNotes, "notes", "", "Follow-up notes")

	trackInterviewCommand.Flags().StringVar(&trackInterviewDate, "date", "", "Interview date (YYYY-MM-DD, default today)")
	trackInterviewCommand.Flags().StringVar(&trackInterviewType, "type", "initial", "Interview type (initial, technical, panel, ...)")
	trackInterviewCommand.Flags().StringVar(&trackInterviewers, "interviewers", "", "Interviewer names")
	trackInterviewCommand.Flags().StringVar(&trackInterviewNotes, "notes", "", "Interview notes")

	trackListCommand.Flags().StringVar(&trackFilterStatus, "status", "", "Filter by status")
	trackListCommand.Flags().StringVar(&trackFilterCompany, "company", "", "Filter by company substring")
	trackListCommand.Flags().StringVar(&trackFilterType, "type", "", "Filter by application type")

	trackExportCommand.Flags().StringVarP(&trackExportOutput, "output", "o", "", "CSV output path (default stdout)")

	trackCommand.AddCommand(
		trackAddCommand,
		trackStatusCommand,
		trackFollowUpCommand,
		trackInterviewCommand,
		trackListCommand,
		trackShowCommand,
		trackReportCommand,
		trackExportCommand,
	)
	rootCmd.AddCommand(trackCommand)
}

func openLedger(cmd *cobra.Command) (*ledger.Ledger, error) {
	cfg, err := loadConfig(trackConfigPath)
	if err != nil {
		return nil, err
	}
	path := cfg.LedgerPath
	if cmd.Flags().Changed("ledger") {
		path = trackLedgerPath
	}
	return ledger.Open(path)
}

func parseSeq(arg string) (int64, error) {
	seq, err := strconv.ParseInt(strings.TrimPrefix(arg, "#"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid application number %q", arg)
	}
	return seq, nil
}

func runTrackAdd(cmd *cobra.Command, _ []string) error {
	l, err := openLedger(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = l.Close() }()

	req := ledger.AddRequest{
		Position:      trackPosition,
		Company:       trackCompany,
		Type:          trackType,
		CVVersion:     trackCVVersion,
		CoverLetter:   trackCoverLetter,
		ContactPerson: trackContact,
		ContactEmail:  trackEmail,
		SalaryRange:   trackSalary,
		Location:      trackLocation,
		JobURL:        trackURL,
		Notes:         trackNotes,
	}
	if trackDeadline != "" {
		deadline, err := time.Parse("2006-01-02", trackDeadline)
		if err != nil {
			return fmt.Errorf("invalid deadline %q (expected YYYY-MM-DD)", trackDeadline)
		}
		req.Deadline = &deadline
	}

	app, err := l.Add(req)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Recorded application #%d: %s at %s\n", app.Seq, app.Position, app.Company)
	return nil
}

func runTrackStatus(cmd *cobra.Command, args []string) error {
	l, err := openLedger(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = l.Close() }()

	seq, err := parseSeq(args[0])
	if err != nil {
		return err
	}
	if err := l.UpdateStatus(seq, args[1], trackStatusNotes); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Application #%d moved to %s\n", seq, args[1])
	return nil
}

func runTrackFollowUp(cmd *cobra.Command, args []string) error {
	l, err := openLedger(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = l.Close() }()

	seq, err := parseSeq(args[0])
	if err != nil {
		return err
	}
	if err := l.AddFollowUp(seq, trackFollowUpMethod, trackFollowUpNotes); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Recorded follow-up for application #%d\n", seq)
	return nil
}

func runTrackInterview(cmd *cobra.Command, args []string) error {
	l, err := openLedger(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = l.Close() }()

	seq, err := parseSeq(args[0])
	if err != nil {
		return err
	}
	date := time.Now()
	if trackInterviewDate != "" {
		date, err = time.Parse("2006-01-02", trackInterviewDate)
		if err != nil {
			return fmt.Errorf("invalid interview date %q (expected YYYY-MM-DD)", trackInterviewDate)
		}
	}
	if err := l.AddInterview(seq, date, trackInterviewType, trackInterviewers, trackInterviewNotes); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Recorded %s interview for application #%d\n", trackInterviewType, seq)
	return nil
}

func runTrackList(cmd *cobra.Command, _ []string) error {
	l, err := openLedger(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = l.Close() }()

	apps, err := l.List(ledger.Filter{
		Status:  trackFilterStatus,
		Company: trackFilterCompany,
		Type:    trackFilterType,
	})
	if err != nil {
		return err
	}
	if len(apps) == 0 {
		fmt.Fprintln(os.Stdout, "No applications found")
		return nil
	}

	for _, app := range apps {
		line := fmt.Sprintf("#%-3d %-30s %-25s %s", app.Seq, truncateCell(app.Position, 30), truncateCell(app.Company, 25), app.Status)
		if app.Deadline != nil {
			line += fmt.Sprintf("  (deadline %s)", app.Deadline.Format("2006-01-02"))
		}
		fmt.Fprintln(os.Stdout, line)
	}
	return nil
}

func runTrackShow(cmd *cobra.Command, args []string) error {
	l, err := openLedger(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = l.Close() }()

	seq, err := parseSeq(args[0])
	if err != nil {
		return err
	}
	app, err := l.Get(seq)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Application #%d\n", app.Seq)
	fmt.Fprintf(os.Stdout, "  Position:  %s\n", app.Position)
	fmt.Fprintf(os.Stdout, "  Company:   %s\n", app.Company)
	fmt.Fprintf(os.Stdout, "  Type:      %s\n", app.Type)
	fmt.Fprintf(os.Stdout, "  Status:    %s\n", app.Status)
	fmt.Fprintf(os.Stdout, "  Applied:   %s\n", app.DateApplied.Format("2006-01-02"))
	if app.Deadline != nil {
		fmt.Fprintf(os.Stdout, "  Deadline:  %s\n", app.Deadline.Format("2006-01-02"))
	}
	if app.CVVersion != "" {
		fmt.Fprintf(os.Stdout, "  CV:        %s\n", app.CVVersion)
	}
	if app.Outcome != "" {
		fmt.Fprintf(os.Stdout, "  Outcome:   %s", app.Outcome)
		if app.OutcomeDate != nil {
			fmt.Fprintf(os.Stdout, " (%s)", app.OutcomeDate.Format("2006-01-02"))
		}
		fmt.Fprintln(os.Stdout)
	}
	if app.Notes != "" {
		fmt.Fprintf(os.Stdout, "  Notes:\n    %s\n", strings.ReplaceAll(app.Notes, "\n", "\n    "))
	}
	if len(app.FollowUps) > 0 {
		fmt.Fprintf(os.Stdout, "  Follow-ups (%d):\n", len(app.FollowUps))
		for _, fu := range app.FollowUps {
			fmt.Fprintf(os.Stdout, "    %s via %s  %s\n", fu.Date.Format("2006-01-02"), fu.Method, fu.Notes)
		}
	}
	if len(app.Interviews) > 0 {
		fmt.Fprintf(os.Stdout, "  Interviews (%d):\n", len(app.Interviews))
		for _, iv := range app.Interviews {
			fmt.Fprintf(os.Stdout, "    %s %s  %s\n", iv.Date.Format("2006-01-02"), iv.Type, iv.Notes)
		}
	}
	return nil
}

func runTrackReport(cmd *cobra.Command, _ []string) error {
	l, err := openLedger(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = l.Close() }()

	report, err := l.SummaryReport()
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, report)
	return nil
}

func runTrackExport(cmd *cobra.Command, _ []string) error {
	l, err := openLedger(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = l.Close() }()

	if trackExportOutput == "" {
		return l.ExportCSV(os.Stdout)
	}
	f, err := os.Create(trackExportOutput)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer func() { _ = f.Close() }()
	if err := l.ExportCSV(f); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Ledger exported to %s\n", trackExportOutput)
	return nil
}

func truncateCell(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
