package ledger

import (
	"fmt"
	"sort"
	"strings"
)

// SummaryReport builds the plain-text summary across all applications:
// status and type breakdowns, outcomes, CV versions used, follow-up
// candidates, and upcoming deadlines.
func (l *Ledger) SummaryReport() (string, error) {
	apps, err := l.List(Filter{})
	if err != nil {
		return "", err
	}

	var report []string
	report = append(report, strings.Repeat("=", 70))
	report = append(report, "APPLICATION TRACKER SUMMARY")
	report = append(report, strings.Repeat("=", 70))

	total := len(apps)
	report = append(report, fmt.Sprintf("\nTotal Applications: %d", total))
	if total == 0 {
		report = append(report, "\nNo applications tracked yet.")
		return strings.Join(report, "\n") + "\n", nil
	}

	statusCounts := map[string]int{}
	typeCounts := map[string]int{}
	outcomeCounts := map[string]int{}
	cvCounts := map[string]int{}
	for _, app := range apps {
		statusCounts[app.Status]++
		typeCounts[app.Type]++
		if app.Outcome != "" {
			outcomeCounts[app.Outcome]++
		}
		if app.CVVersion != "" {
			cvCounts[app.CVVersion]++
		}
	}

	report = append(report, "\nStatus Breakdown:")
	for _, status := range sortedKeys(statusCounts) {
		count := statusCounts[status]
		percentage := float64(count) / float64(total) * 100
		report = append(report, fmt.Sprintf("   %s: %d (%.1f%%)", titleStatus(status), count, percentage))
	}

	if len(outcomeCounts) > 0 {
		concluded := 0
		for _, count := range outcomeCounts {
			concluded += count
		}
		report = append(report, fmt.Sprintf("\nOutcomes: %d applications concluded", concluded))
		for _, outcome := range sortedKeys(outcomeCounts) {
			report = append(report, fmt.Sprintf("   %s: %d", titleStatus(outcome), outcomeCounts[outcome]))
		}
	}

	report = append(report, "\nApplication Types:")
	for _, appType := range sortedKeys(typeCounts) {
		report = append(report, fmt.Sprintf("   %s: %d", titleStatus(appType), typeCounts[appType]))
	}

	if len(cvCounts) > 0 {
		report = append(report, "\nCV Versions Used:")
		versions := sortedKeys(cvCounts)
		sort.SliceStable(versions, func(i, j int) bool {
			return cvCounts[versions[i]] > cvCounts[versions[j]]
		})
		for _, version := range versions {
			report = append(report, fmt.Sprintf("   %s: %d times", version, cvCounts[version]))
		}
	}

	stale, err := l.NeedsFollowUp(14)
	if err != nil {
		return "", err
	}
	if len(stale) > 0 {
		report = append(report, fmt.Sprintf("\n%d applications may need follow-up:", len(stale)))
		for i, app := range stale {
			if i == 5 {
				break
			}
			daysAgo := int(l.now().UTC().Sub(app.DateApplied).Hours() / 24)
			report = append(report, fmt.Sprintf("   #%d %s at %s (%d days ago)", app.Seq, app.Position, app.Company, daysAgo))
		}
	}

	upcoming, err := l.UpcomingDeadlines(14)
	if err != nil {
		return "", err
	}
	if len(upcoming) > 0 {
		report = append(report, fmt.Sprintf("\nUpcoming Deadlines (%d):", len(upcoming)))
		for _, app := range upcoming {
			daysUntil := int(app.Deadline.Sub(l.now().UTC()).Hours() / 24)
			report = append(report, fmt.Sprintf("   #%d %s at %s - %d days", app.Seq, app.Position, app.Company, daysUntil))
		}
	}

	return strings.Join(report, "\n") + "\n", nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func titleStatus(s string) string {
	words := strings.Split(strings.ReplaceAll(s, "_", " "), " ")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
