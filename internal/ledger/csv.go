package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"
)

// ExportCSV writes every application as one CSV row. Follow-ups and
// interviews are summarized as counts; the ledger database remains the
// source of truth.
func (l *Ledger) ExportCSV(w io.Writer) error {
	apps, err := l.List(Filter{})
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	header := []string{
		"number", "position", "company", "type", "cv_version", "status",
		"date_applied", "deadline", "contact_person", "contact_email",
		"location", "job_url", "outcome", "follow_ups", "interviews", "notes",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, app := range apps {
		deadline := ""
		if app.Deadline != nil {
			deadline = app.Deadline.Format(time.DateOnly)
		}
		row := []string{
			strconv.FormatInt(app.Seq, 10),
			app.Position,
			app.Company,
			app.Type,
			app.CVVersion,
			app.Status,
			app.DateApplied.Format(time.DateOnly),
			deadline,
			app.ContactPerson,
			app.ContactEmail,
			app.Location,
			app.JobURL,
			app.Outcome,
			strconv.Itoa(len(app.FollowUps)),
			strconv.Itoa(len(app.Interviews)),
			app.Notes,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
