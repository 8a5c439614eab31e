package commands

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/igreja-site/cms-backend/content"
)

var (
	colorSuccess = lipgloss.Color("#10B981")
	colorWarning = lipgloss.Color("#F59E0B")
	colorError   = lipgloss.Color("#EF4444")
	colorMuted   = lipgloss.Color("#6B7280")

	successStyle = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(colorWarning).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	headerStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
)

func printReport(w io.Writer, r fileReport) {
	fmt.Fprintln(w, headerStyle.Render(r.File))
	fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("  slug: %s  words: %d  reading time: %d min",
		displaySlug(r.Slug), r.Report.WordCount, r.Report.ReadingTime)))

	printIssues(w, errorStyle.Render("  ✗ blocking"), r.Report.Blocking)
	printIssues(w, errorStyle.Render("  ✗ error"), r.Report.Errors)
	printIssues(w, warningStyle.Render("  ⚠ warning"), r.Report.Warnings)

	if len(r.Report.Blocking)+len(r.Report.Errors)+len(r.Report.Warnings) == 0 {
		fmt.Fprintln(w, successStyle.Render("  ✓ no issues"))
	}
}

func printIssues(w io.Writer, label string, issues []content.Issue) {
	for _, issue := range issues {
		fmt.Fprintf(w, "%s %s: %s\n", label, issue.Code, issue.Message)
	}
}

func displaySlug(slug string) string {
	if slug == "" {
		return "(none)"
	}
	return slug
}
