package ledger

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Get returns the application with the given display number, including
// its follow-ups and interviews.
func (l *Ledger) Get(seq int64) (*Application, error) {
	row := l.db.QueryRow(selectColumns+` FROM applications WHERE seq = ?`, seq)
	app, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: #%d", ErrApplicationNotFound, seq)
		}
		return nil, err
	}
	if err := l.loadChildren(app); err != nil {
		return nil, err
	}
	return app, nil
}

// UpdateStatus moves an application to a new status. Terminal statuses
// (offered, rejected, withdrawn, accepted) also set the outcome and
// outcome date. Optional notes are appended, datestamped, to the notes
// field.
func (l *Ledger) UpdateStatus(seq int64, status, notes string) error {
	valid := false
	for _, s := range ValidStatuses() {
		if s == status {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("%w: %q (valid: %s)", ErrInvalidStatus, status, strings.Join(ValidStatuses(), ", "))
	}

	app, err := l.Get(seq)
	if err != nil {
		return err
	}

	now := l.now().UTC()
	newNotes := app.Notes
	if notes != "" {
		if newNotes != "" {
			newNotes += "\n"
		}
		newNotes += fmt.Sprintf("[%s] %s", now.Format("2006-01-02"), notes)
	}

	outcome := app.Outcome
	var outcomeDate any
	if app.OutcomeDate != nil {
		outcomeDate = app.OutcomeDate.Format(time.RFC3339)
	}
	if terminalStatuses[status] {
		outcome = status
		outcomeDate = now.Format(time.RFC3339)
	}

	_, err = l.db.Exec(
		`UPDATE applications SET status = ?, notes = ?, outcome = ?, outcome_date = ?, last_updated = ? WHERE seq = ?`,
		status, newNotes, outcome, outcomeDate, now.Format(time.RFC3339), seq,
	)
	if err != nil {
		return fmt.Errorf("failed to update application status: %w", err)
	}
	return nil
}

// AddFollowUp records a follow-up action for an application.
func (l *Ledger) AddFollowUp(seq int64, method, notes string) error {
	app, err := l.Get(seq)
	if err != nil {
		return err
	}
	if method == "" {
		method = "email"
	}
	_, err = l.db.Exec(
		`INSERT INTO follow_ups (id, application_id, date, method, notes) VALUES (?, ?, ?, ?, ?)`,
		uuid.New().String(), app.ID.String(), l.now().UTC().Format(time.RFC3339), method, notes,
	)
	if err != nil {
		return fmt.Errorf("failed to record follow-up: %w", err)
	}
	return nil
}

// AddInterview records an interview round and moves the application to
// the interviewed status.
func (l *Ledger) AddInterview(seq int64, date time.Time, interviewType, interviewers, notes string) error {
	app, err := l.Get(seq)
	if err != nil {
		return err
	}
	if interviewType == "" {
		interviewType = "initial"
	}
	now := l.now().UTC()
	_, err = l.db.Exec(
		`INSERT INTO interviews (id, application_id, date, type, interviewers, notes, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		uuid.New().String(), app.ID.String(), date.UTC().Format(time.RFC3339),
		interviewType, interviewers, notes, now.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to record interview: %w", err)
	}
	_, err = l.db.Exec(
		`UPDATE applications SET status = ?, last_updated = ? WHERE seq = ?`,
		StatusInterviewed, now.Format(time.RFC3339), seq,
	)
	if err != nil {
		return fmt.Errorf("failed to update application status: %w", err)
	}
	return nil
}

// List returns applications matching the filter in display-number
// order, including children.
func (l *Ledger) List(filter Filter) ([]*Application, error) {
	query := selectColumns + ` FROM applications`
	var clauses []string
	var args []any
	if filter.Status != "" {
		clauses = append(clauses, "status = ?")
		args = append(args, filter.Status)
	}
	if filter.Company != "" {
		clauses = append(clauses, "LOWER(company) LIKE ?")
		args = append(args, "%"+strings.ToLower(filter.Company)+"%")
	}
	if filter.Type != "" {
		clauses = append(clauses, "type = ?")
		args = append(args, filter.Type)
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY seq"

	rows, err := l.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query applications: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var apps []*Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan applications: %w", err)
	}
	for _, app := range apps {
		if err := l.loadChildren(app); err != nil {
			return nil, err
		}
	}
	return apps, nil
}

// NeedsFollowUp returns open applications whose last activity (latest
// follow-up, or the application date when none exist) is older than the
// cutoff. Applications with a final outcome are excluded.
func (l *Ledger) NeedsFollowUp(days int) ([]*Application, error) {
	apps, err := l.List(Filter{})
	if err != nil {
		return nil, err
	}
	cutoff := l.now().UTC().AddDate(0, 0, -days)

	var stale []*Application
	for _, app := range apps {
		if app.Outcome == StatusRejected || app.Outcome == StatusWithdrawn || app.Outcome == StatusAccepted {
			continue
		}
		last := app.DateApplied
		for _, fu := range app.FollowUps {
			if fu.Date.After(last) {
				last = fu.Date
			}
		}
		if last.Before(cutoff) {
			stale = append(stale, app)
		}
	}
	return stale, nil
}

// UpcomingDeadlines returns applications with a deadline within the
// next N days, soonest first.
func (l *Ledger) UpcomingDeadlines(days int) ([]*Application, error) {
	apps, err := l.List(Filter{})
	if err != nil {
		return nil, err
	}
	now := l.now().UTC()
	horizon := now.AddDate(0, 0, days)

	var upcoming []*Application
	for _, app := range apps {
		if app.Deadline == nil {
			continue
		}
		if app.Deadline.After(now) && app.Deadline.Before(horizon) {
			upcoming = append(upcoming, app)
		}
	}
	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].Deadline.Before(*upcoming[j].Deadline)
	})
	return upcoming, nil
}

const selectColumns = `SELECT id, seq, position, company, type, cv_version, cover_letter,
	status, date_applied, deadline, contact_person, contact_email, salary_range,
	location, job_url, notes, outcome, outcome_date, last_updated`

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanApplication(row rowScanner) (*Application, error) {
	var app Application
	var id string
	var dateApplied string
	var deadline, outcomeDate, lastUpdated sql.NullString

	err := row.Scan(&id, &app.Seq, &app.Position, &app.Company, &app.Type, &app.CVVersion,
		&app.CoverLetter, &app.Status, &dateApplied, &deadline, &app.ContactPerson,
		&app.ContactEmail, &app.SalaryRange, &app.Location, &app.JobURL, &app.Notes,
		&app.Outcome, &outcomeDate, &lastUpdated)
	if err != nil {
		return nil, err
	}

	app.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("failed to parse application id: %w", err)
	}
	app.DateApplied, err = time.Parse(time.RFC3339, dateApplied)
	if err != nil {
		return nil, fmt.Errorf("failed to parse application date: %w", err)
	}
	if t, ok := parseNullTime(deadline); ok {
		app.Deadline = t
	}
	if t, ok := parseNullTime(outcomeDate); ok {
		app.OutcomeDate = t
	}
	if t, ok := parseNullTime(lastUpdated); ok {
		app.LastUpdated = t
	}
	return &app, nil
}

func parseNullTime(ns sql.NullString) (*time.Time, bool) {
	if !ns.Valid || ns.String == "" {
		return nil, false
	}
	t, err := time.Parse(time.RFC3339, ns.String)
	if err != nil {
		return nil, false
	}
	return &t, true
}

func (l *Ledger) loadChildren(app *Application) error {
	rows, err := l.db.Query(
		`SELECT id, date, method, notes FROM follow_ups WHERE application_id = ? ORDER BY date`,
		app.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to query follow-ups: %w", err)
	}
	defer func() { _ = rows.Close() }()
	app.FollowUps = nil
	for rows.Next() {
		var fu FollowUp
		var id, date string
		if err := rows.Scan(&id, &date, &fu.Method, &fu.Notes); err != nil {
			return fmt.Errorf("failed to scan follow-up: %w", err)
		}
		fu.ID, _ = uuid.Parse(id)
		fu.ApplicationID = app.ID
		fu.Date, _ = time.Parse(time.RFC3339, date)
		app.FollowUps = append(app.FollowUps, fu)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to scan follow-ups: %w", err)
	}

	irows, err := l.db.Query(
		`SELECT id, date, type, interviewers, notes, recorded_at FROM interviews
		 WHERE application_id = ? ORDER BY date`,
		app.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to query interviews: %w", err)
	}
	defer func() { _ = irows.Close() }()
	app.Interviews = nil
	for irows.Next() {
		var iv Interview
		var id, date, recordedAt string
		if err := irows.Scan(&id, &date, &iv.Type, &iv.Interviewers, &iv.Notes, &recordedAt); err != nil {
			return fmt.Errorf("failed to scan interview: %w", err)
		}
		iv.ID, _ = uuid.Parse(id)
		iv.ApplicationID = app.ID
		iv.Date, _ = time.Parse(time.RFC3339, date)
		iv.RecordedAt, _ = time.Parse(time.RFC3339, recordedAt)
		app.Interviews = append(app.Interviews, iv)
	}
	return irows.Err()
}
