package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/cv-manager/internal/style"
	"github.com/jonathan/cv-manager/internal/types"
)

// Block is the intermediate (header, items) pair shared by all output
// renderers.
type Block struct {
	ID     style.SectionID
	Header string
	Items  []Item
}

// Item is one content unit inside a block. Fields are optional: a
// heading plus meta line for entry-style items, a text paragraph for
// prose, and lines for bullet lists. Renderers emit whichever fields
// are set, in that order.
type Item struct {
	Heading string
	Meta    string
	Text    string
	Lines   []string
}

// BuildBlocks projects the record through the section plan, truncating
// each section's entries to its resolved limit (0 = unbounded) while
// preserving original order. Sections with no content are skipped.
func BuildBlocks(record *types.CVRecord, plan []style.SectionSpec, prof style.Profile) []Block {
	blocks := make([]Block, 0, len(plan))
	for _, spec := range plan {
		var block Block
		switch spec.ID {
		case style.SectionProfile:
			block = profileBlock(record, prof)
		case style.SectionEducation:
			block = educationBlock(record, spec.Limit)
		case style.SectionExperience:
			block = experienceBlock(record, spec.Limit)
		case style.SectionSkills:
			block = skillsBlock(record, prof)
		case style.SectionCertifications:
			block = certificationsBlock(record, spec.Limit)
		case style.SectionPublications:
			block = publicationsBlock(record, spec.Limit)
		case style.SectionMemberships:
			block = membershipsBlock(record)
		case style.SectionReferees:
			block = refereesBlock(record)
		default:
			continue
		}
		if len(block.Items) == 0 {
			continue
		}
		blocks = append(blocks, block)
	}
	return blocks
}

// truncate caps entries at limit, preserving relative order. Limit 0
// means unbounded.
func truncate[T any](entries []T, limit int) []T {
	if limit > 0 && len(entries) > limit {
		return entries[:limit]
	}
	return entries
}

func profileBlock(record *types.CVRecord, prof style.Profile) Block {
	block := Block{ID: style.SectionProfile, Header: "Profile"}
	if record.Profile.Summary == "" && len(record.Profile.Expertise) == 0 {
		return block
	}
	item := Item{Text: record.Profile.Summary}
	if prof.ShowExpertise && len(record.Profile.Expertise) > 0 {
		item.Meta = "Key Expertise:"
		item.Lines = append(item.Lines, record.Profile.Expertise...)
	}
	block.Items = []Item{item}
	return block
}

func educationBlock(record *types.CVRecord, limit int) Block {
	block := Block{ID: style.SectionEducation, Header: "Education"}
	for _, edu := range truncate(record.Education, limit) {
		heading := edu.Degree
		if edu.Distinction != "" {
			heading = fmt.Sprintf("%s (%s)", edu.Degree, edu.Distinction)
		}
		block.Items = append(block.Items, Item{
			Heading: heading,
			Meta:    fmt.Sprintf("%s | %s", edu.Institution, edu.Period),
			Text:    edu.Description,
		})
	}
	return block
}

func experienceBlock(record *types.CVRecord, limit int) Block {
	block := Block{ID: style.SectionExperience, Header: "Work Experience"}
	for _, exp := range truncate(record.WorkExperience, limit) {
		block.Items = append(block.Items, Item{
			Heading: exp.Position,
			Meta:    fmt.Sprintf("%s | %s", exp.Company, exp.Period),
			Lines:   exp.Responsibilities,
		})
	}
	return block
}

func skillsBlock(record *types.CVRecord, prof style.Profile) Block {
	block := Block{ID: style.SectionSkills, Header: "Skills & Competencies"}
	for _, category := range orderedCategories(record.Skills, prof.SkillCategoryOrder) {
		skills := record.Skills[category]
		if len(skills) == 0 {
			continue
		}
		item := Item{Heading: titleCase(category)}
		for _, skill := range skills {
			item.Lines = append(item.Lines, fmt.Sprintf("%s (%d/5)", skill.Name, skill.Level))
		}
		block.Items = append(block.Items, item)
	}
	return block
}

// orderedCategories returns the style's known categories first, then the
// record's remaining categories alphabetically.
func orderedCategories(skills map[string][]types.Skill, preferred []string) []string {
	seen := make(map[string]bool, len(preferred))
	ordered := make([]string, 0, len(skills))
	for _, category := range preferred {
		if _, ok := skills[category]; ok {
			ordered = append(ordered, category)
			seen[category] = true
		}
	}
	rest := make([]string, 0, len(skills))
	for category := range skills {
		if !seen[category] {
			rest = append(rest, category)
		}
	}
	sort.Strings(rest)
	return append(ordered, rest...)
}

func titleCase(s string) string {
	words := strings.Split(strings.ReplaceAll(s, "_", " "), " ")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

func certificationsBlock(record *types.CVRecord, limit int) Block {
	block := Block{ID: style.SectionCertifications, Header: "Certifications"}
	item := Item{}
	for _, cert := range truncate(record.Certifications, limit) {
		line := fmt.Sprintf("**%s** - %s (%d)", cert.Name, cert.Issuer, cert.Year)
		if cert.Location != "" {
			line += " | " + cert.Location
		}
		item.Lines = append(item.Lines, line)
	}
	if len(item.Lines) > 0 {
		block.Items = []Item{item}
	}
	return block
}

func publicationsBlock(record *types.CVRecord, limit int) Block {
	block := Block{ID: style.SectionPublications, Header: "Publications"}
	groups := []struct {
		name    string
		entries []types.Publication
	}{
		{"Book Chapters", record.Publications.BookChapters},
		{"Conference Proceedings", record.Publications.ConferenceProceedings},
		{"Journal Articles", record.Publications.JournalArticles},
		{"Other", record.Publications.Other},
	}
	for _, group := range groups {
		entries := truncate(group.entries, limit)
		if len(entries) == 0 {
			continue
		}
		item := Item{Heading: group.name}
		for _, pub := range entries {
			item.Lines = append(item.Lines, formatPublication(pub))
		}
		block.Items = append(block.Items, item)
	}
	return block
}

// formatPublication renders a single citation line. Book chapters carry
// editor/book/publisher detail; other entries use DOI and citation count
// when present.
func formatPublication(pub types.Publication) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s (%d). *%s*", strings.Join(pub.Authors, " & "), pub.Year, pub.Title))
	if pub.Book != "" {
		sb.WriteString(". In ")
		if len(pub.Editors) > 0 {
			sb.WriteString(strings.Join(pub.Editors, ", ") + " (Eds.), ")
		}
		sb.WriteString(fmtBook(pub))
	}
	if pub.DOI != "" {
		sb.WriteString(fmt.Sprintf(". doi:%s", pub.DOI))
	}
	if pub.Citations != nil {
		sb.WriteString(fmt.Sprintf(" [citations: %d]", *pub.Citations))
	}
	return sb.String()
}

func fmtBook(pub types.Publication) string {
	s := fmt.Sprintf("*%s*", pub.Book)
	if pub.Publisher != "" {
		s += ". " + pub.Publisher
	}
	return s
}

func membershipsBlock(record *types.CVRecord) Block {
	block := Block{ID: style.SectionMemberships, Header: "Professional Memberships"}
	for _, mem := range record.Memberships {
		heading := mem.Organization
		if mem.MemberID != "" {
			heading = fmt.Sprintf("%s (ID: %s)", mem.Organization, mem.MemberID)
		}
		item := Item{Heading: heading}
		if len(mem.SIGs) > 0 {
			item.Lines = append(item.Lines, "Special Interest Groups: "+strings.Join(mem.SIGs, ", "))
		}
		if len(mem.Chapters) > 0 {
			item.Lines = append(item.Lines, "Chapters: "+strings.Join(mem.Chapters, ", "))
		}
		block.Items = append(block.Items, item)
	}
	return block
}

func refereesBlock(record *types.CVRecord) Block {
	block := Block{ID: style.SectionReferees, Header: "Referees"}
	for _, ref := range record.Referees {
		item := Item{Heading: ref.Name, Text: ref.Position}
		if ref.Phone != "" {
			item.Lines = append(item.Lines, "Phone: "+ref.Phone)
		}
		if ref.Email != "" {
			item.Lines = append(item.Lines, "Email: "+ref.Email)
		}
		block.Items = append(block.Items, item)
	}
	return block
}
