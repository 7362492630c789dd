package render

import (
	"fmt"
	"strings"

	"github.com/jonathan/cv-manager/internal/types"
)

// RenderMarkdown renders the contact header followed by every block as
// plain Markdown. Output is fully deterministic for a given record and
// block list.
func RenderMarkdown(record *types.CVRecord, blocks []Block) string {
	var md []string

	md = append(md, fmt.Sprintf("# %s", record.PersonalInfo.Name))
	if record.PersonalInfo.Title != "" {
		md = append(md, fmt.Sprintf("**%s**", record.PersonalInfo.Title))
	}
	md = append(md, "")

	md = append(md, "## Contact Information")
	if record.PersonalInfo.Email != "" {
		md = append(md, fmt.Sprintf("- **Email:** %s", record.PersonalInfo.Email))
	}
	if record.PersonalInfo.Phone != "" {
		md = append(md, fmt.Sprintf("- **Phone:** %s", record.PersonalInfo.Phone))
	}
	for _, website := range record.PersonalInfo.Websites {
		md = append(md, fmt.Sprintf("- %s", website))
	}
	if record.PersonalInfo.Location != "" {
		md = append(md, fmt.Sprintf("- %s", record.PersonalInfo.Location))
	}
	md = append(md, "")

	for _, block := range blocks {
		md = append(md, fmt.Sprintf("## %s", block.Header))
		for _, item := range block.Items {
			if item.Heading != "" {
				md = append(md, fmt.Sprintf("### %s", item.Heading))
			}
			if item.Meta != "" {
				md = append(md, fmt.Sprintf("**%s**", item.Meta))
			}
			if item.Text != "" {
				md = append(md, item.Text)
			}
			for _, line := range item.Lines {
				md = append(md, fmt.Sprintf("- %s", line))
			}
			md = append(md, "")
		}
	}

	return strings.TrimRight(strings.Join(md, "\n"), "\n") + "\n"
}
