// Package ledger tracks job applications in a local SQLite store:
// which CV version went where, status transitions, follow-ups,
// interviews, and outcomes.
package ledger

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Status values form a closed set; UpdateStatus rejects anything else.
const (
	StatusSubmitted          = "submitted"
	StatusUnderReview        = "under_review"
	StatusInterviewScheduled = "interview_scheduled"
	StatusInterviewed        = "interviewed"
	StatusOffered            = "offered"
	StatusRejected           = "rejected"
	StatusWithdrawn          = "withdrawn"
	StatusAccepted           = "accepted"
)

// ErrInvalidStatus indicates a status outside the valid set.
var ErrInvalidStatus = errors.New("invalid application status")

// ErrApplicationNotFound indicates no application matches the given
// number.
var ErrApplicationNotFound = errors.New("application not found")

// ValidStatuses lists every accepted status in lifecycle order.
func ValidStatuses() []string {
	return []string{
		StatusSubmitted, StatusUnderReview, StatusInterviewScheduled,
		StatusInterviewed, StatusOffered, StatusRejected,
		StatusWithdrawn, StatusAccepted,
	}
}

// terminalStatuses derive an outcome when reached.
var terminalStatuses = map[string]bool{
	StatusOffered:   true,
	StatusRejected:  true,
	StatusWithdrawn: true,
	StatusAccepted:  true,
}

// Application is one tracked job application. Seq is the small display
// number used on the CLI; ID is the stable primary key.
type Application struct {
	ID            uuid.UUID
	Seq           int64
	Position      string
	Company       string
	Type          string
	CVVersion     string
	CoverLetter   string
	Status        string
	DateApplied   time.Time
	Deadline      *time.Time
	ContactPerson string
	ContactEmail  string
	SalaryRange   string
	Location      string
	JobURL        string
	Notes         string
	Outcome       string
	OutcomeDate   *time.Time
	LastUpdated   *time.Time
	FollowUps     []FollowUp
	Interviews    []Interview
}

// FollowUp records one follow-up action on an application.
type FollowUp struct {
	ID            uuid.UUID
	ApplicationID uuid.UUID
	Date          time.Time
	Method        string
	Notes         string
}

// Interview records one interview round.
type Interview struct {
	ID            uuid.UUID
	ApplicationID uuid.UUID
	Date          time.Time
	Type          string
	Interviewers  string
	Notes         string
	RecordedAt    time.Time
}

// Filter narrows List results. Zero values match everything; Company is
// a case-insensitive substring match.
type Filter struct {
	Status  string
	Company string
	Type    string
}
