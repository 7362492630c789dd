package ledger

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

const schema = `
CREATE TABLE IF NOT EXISTS applications (
	id             TEXT PRIMARY KEY,
	seq            INTEGER NOT NULL,
	position       TEXT NOT NULL,
	company        TEXT NOT NULL,
	type           TEXT NOT NULL DEFAULT 'academic',
	cv_version     TEXT NOT NULL DEFAULT '',
	cover_letter   TEXT NOT NULL DEFAULT '',
	status         TEXT NOT NULL DEFAULT 'submitted',
	date_applied   TEXT NOT NULL,
	deadline       TEXT,
	contact_person TEXT NOT NULL DEFAULT '',
	contact_email  TEXT NOT NULL DEFAULT '',
	salary_range   TEXT NOT NULL DEFAULT '',
	location       TEXT NOT NULL DEFAULT '',
	job_url        TEXT NOT NULL DEFAULT '',
	notes          TEXT NOT NULL DEFAULT '',
	outcome        TEXT NOT NULL DEFAULT '',
	outcome_date   TEXT,
	last_updated   TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_applications_seq ON applications(seq);

CREATE TABLE IF NOT EXISTS follow_ups (
	id             TEXT PRIMARY KEY,
	application_id TEXT NOT NULL REFERENCES applications(id) ON DELETE CASCADE,
	date           TEXT NOT NULL,
	method         TEXT NOT NULL DEFAULT 'email',
	notes          TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS interviews (
	id             TEXT PRIMARY KEY,
	application_id TEXT NOT NULL REFERENCES applications(id) ON DELETE CASCADE,
	date           TEXT NOT NULL,
	type           TEXT NOT NULL DEFAULT 'initial',
	interviewers   TEXT NOT NULL DEFAULT '',
	notes          TEXT NOT NULL DEFAULT '',
	recorded_at    TEXT NOT NULL
);
`

// Ledger wraps the SQLite application store.
type Ledger struct {
	db *sql.DB
	// now is swapped out in tests.
	now func() time.Time
}

// Open opens (creating if necessary) the ledger database at path and
// initializes the schema.
func Open(path string) (*Ledger, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("could not open ledger database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize ledger schema: %w", err)
	}
	return &Ledger{db: db, now: time.Now}, nil
}

// Close closes the underlying database.
func (l *Ledger) Close() error {
	return l.db.Close()
}

// AddRequest carries the caller-supplied fields for a new application.
type AddRequest struct {
	Position      string
	Company       string
	Type          string
	CVVersion     string
	CoverLetter   string
	Deadline      *time.Time
	ContactPerson string
	ContactEmail  string
	SalaryRange   string
	Location      string
	JobURL        string
	Notes         string
}

// Add records a new application with status "submitted" and returns it.
func (l *Ledger) Add(req AddRequest) (*Application, error) {
	if req.Position == "" || req.Company == "" {
		return nil, fmt.Errorf("position and company are required")
	}
	appType := req.Type
	if appType == "" {
		appType = "academic"
	}

	var seq int64
	if err := l.db.QueryRow(`SELECT COALESCE(MAX(seq), 0) + 1 FROM applications`).Scan(&seq); err != nil {
		return nil, fmt.Errorf("failed to allocate application number: %w", err)
	}

	app := &Application{
		ID:            uuid.New(),
		Seq:           seq,
		Position:      req.Position,
		Company:       req.Company,
		Type:          appType,
		CVVersion:     req.CVVersion,
		CoverLetter:   req.CoverLetter,
		Status:        StatusSubmitted,
		DateApplied:   l.now().UTC(),
		Deadline:      req.Deadline,
		ContactPerson: req.ContactPerson,
		ContactEmail:  req.ContactEmail,
		SalaryRange:   req.SalaryRange,
		Location:      req.Location,
		JobURL:        req.JobURL,
		Notes:         req.Notes,
	}

	_, err := l.db.Exec(
		`INSERT INTO applications (id, seq, position, company, type, cv_version, cover_letter,
			status, date_applied, deadline, contact_person, contact_email, salary_range,
			location, job_url, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		app.ID.String(), app.Seq, app.Position, app.Company, app.Type, app.CVVersion,
		app.CoverLetter, app.Status, app.DateApplied.Format(time.RFC3339),
		nullableTime(app.Deadline), app.ContactPerson, app.ContactEmail, app.SalaryRange,
		app.Location, app.JobURL, app.Notes,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert application: %w", err)
	}
	return app, nil
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}
