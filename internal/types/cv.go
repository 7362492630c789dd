// Package types provides type definitions for structured data used throughout the cv-manager system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// CVRecord is the single aggregate persisted in the CV data file.
// Slice order is semantically meaningful: experience and publications
// render in insertion order, and add-operations prepend so the most
// recent entry comes first.
type CVRecord struct {
	PersonalInfo   PersonalInfo       `json:"personal_info"`
	Profile        Profile            `json:"profile"`
	Education      []Education        `json:"education"`
	WorkExperience []Experience       `json:"work_experience"`
	Skills         map[string][]Skill `json:"skills"`
	Certifications []Certification    `json:"certifications"`
	Publications   Publications       `json:"publications"`
	Memberships    []Membership       `json:"memberships,omitempty"`
	Referees       []Referee          `json:"referees,omitempty"`
}

// PersonalInfo holds the contact header rendered at the top of every CV.
type PersonalInfo struct {
	Name     string   `json:"name"`
	Title    string   `json:"title"`
	Email    string   `json:"email"`
	Phone    string   `json:"phone"`
	Websites []string `json:"websites,omitempty"`
	Location string   `json:"location,omitempty"`
}

// Profile holds the summary paragraph and the expertise list shown for
// research and academic audiences.
type Profile struct {
	Summary   string   `json:"summary"`
	Expertise []string `json:"expertise,omitempty"`
}

// Education represents a single education entry.
type Education struct {
	Institution string `json:"institution" validate:"required"`
	Degree      string `json:"degree" validate:"required"`
	Period      string `json:"period" validate:"required"`
	Description string `json:"description,omitempty"`
	Distinction string `json:"distinction,omitempty"`
}

// Experience represents a single work experience entry with an ordered
// bullet list of responsibilities.
type Experience struct {
	Company          string   `json:"company" validate:"required"`
	Position         string   `json:"position" validate:"required"`
	Period           string   `json:"period" validate:"required"`
	Responsibilities []string `json:"responsibilities" validate:"min=1,dive,required"`
}

// Skill is a named skill with a 1-5 proficiency level.
type Skill struct {
	Name  string `json:"name" validate:"required"`
	Level int    `json:"level" validate:"min=1,max=5"`
}

// Certification represents a single certification entry.
type Certification struct {
	Name     string `json:"name" validate:"required"`
	Issuer   string `json:"issuer" validate:"required"`
	Year     int    `json:"year" validate:"required"`
	Location string `json:"location,omitempty"`
}

// Publications groups citation entries by publication type. Each group
// preserves insertion order.
type Publications struct {
	BookChapters          []Publication `json:"book_chapters"`
	ConferenceProceedings []Publication `json:"conference_proceedings"`
	JournalArticles       []Publication `json:"journal_articles,omitempty"`
	Other                 []Publication `json:"other,omitempty"`
}

// Publication represents a single citation entry. Book-chapter fields
// (Editors, Book, Publisher) and proceedings fields (Conference,
// Location, Dates) are mutually optional depending on the group the
// entry lives in. Citations is written back by the metrics collaborator
// and is nil until fetched.
type Publication struct {
	Authors    []string `json:"authors" validate:"min=1,dive,required"`
	Year       int      `json:"year" validate:"required"`
	Title      string   `json:"title" validate:"required"`
	Editors    []string `json:"editors,omitempty"`
	Book       string   `json:"book,omitempty"`
	Publisher  string   `json:"publisher,omitempty"`
	Conference string   `json:"conference,omitempty"`
	Location   string   `json:"location,omitempty"`
	Dates      string   `json:"dates,omitempty"`
	DOI        string   `json:"doi,omitempty"`
	Citations  *int     `json:"citations,omitempty"`
}

// Membership represents a professional membership entry.
type Membership struct {
	Organization string   `json:"organization"`
	MemberID     string   `json:"member_id,omitempty"`
	SIGs         []string `json:"sigs,omitempty"`
	Chapters     []string `json:"chapters,omitempty"`
}

// Referee represents a single referee entry.
type Referee struct {
	Name     string `json:"name"`
	Position string `json:"position"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
}

// AllPublications returns every publication entry across all groups in
// group order, preserving each group's insertion order.
func (p Publications) AllPublications() []Publication {
	out := make([]Publication, 0, len(p.BookChapters)+len(p.ConferenceProceedings)+len(p.JournalArticles)+len(p.Other))
	out = append(out, p.BookChapters...)
	out = append(out, p.ConferenceProceedings...)
	out = append(out, p.JournalArticles...)
	out = append(out, p.Other...)
	return out
}
