package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jonathan/resume-matcher/internal/types"
)

const (
	// boxWidth is the content width of a report box
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// barWidth is the number of cells in a breakdown bar
	barWidth = 20
)

// categoryNames maps breakdown keys to display names
var categoryNames = map[string]string{
	types.CategoryHardSkills: "Hard skills",
	types.CategorySoftSkills: "Soft skills",
	types.CategoryMeasurable: "Measurable results",
	types.CategoryKeywords:   "Keywords",
	types.CategoryFormatting: "Formatting",
}

// ReportPrinter renders human-readable reports for the CLI.
// Colour is only emitted when the writer is a terminal.
type ReportPrinter struct {
	out   io.Writer
	box   lipgloss.Style
	title lipgloss.Style
	label lipgloss.Style
	good  lipgloss.Style
	warn  lipgloss.Style
	bad   lipgloss.Style
	muted lipgloss.Style
}

// NewReportPrinter creates a printer that writes to out
func NewReportPrinter(out io.Writer) *ReportPrinter {
	r := lipgloss.NewRenderer(out)
	return &ReportPrinter{
		out: out,
		box: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Width(boxWidth),
		title: r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		label: r.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		good:  r.NewStyle().Foreground(lipgloss.Color("10")),
		warn:  r.NewStyle().Foreground(lipgloss.Color("11")),
		bad:   r.NewStyle().Foreground(lipgloss.Color("9")),
		muted: r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

//nolint:errcheck // writing to the terminal; errors are not recoverable
func (p *ReportPrinter) printBox(title string, content string) {
	body := p.title.Render(title) + "\n\n" + strings.TrimRight(content, "\n")
	fmt.Fprintln(p.out, p.box.Render(body))
}

// scoreStyle colours a 0-100 value
func (p *ReportPrinter) scoreStyle(v int) lipgloss.Style {
	switch {
	case v >= 70:
		return p.good
	case v >= 40:
		return p.warn
	default:
		return p.bad
	}
}

func bar(v int) string {
	v = max(0, min(100, v))
	filled := v * barWidth / 100
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

// writeList writes up to limit items with a "... and N more" tail
func writeList(sb *strings.Builder, heading string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(sb, "%s\n", heading)
	count := min(len(items), limit)
	for i := 0; i < count; i++ {
		fmt.Fprintf(sb, "  • %s\n", items[i])
	}
	if len(items) > limit {
		fmt.Fprintf(sb, "  ... and %d more\n", len(items)-limit)
	}
	sb.WriteString("\n")
}

// PrintJobProfile outputs a summary of the parsed job profile.
func (p *ReportPrinter) PrintJobProfile(profile *types.JobProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s\n", p.label.Render("Role:     "), profile.Title)
	if profile.Company != "" {
		fmt.Fprintf(&sb, "%s %s\n", p.label.Render("Company:  "), profile.Company)
	}
	fmt.Fprintf(&sb, "%s %s\n\n", p.label.Render("Seniority:"), profile.SeniorityLevel)

	writeList(&sb, "Required skills:", profile.RequiredSkills, maxItemsToShow)
	writeList(&sb, "Preferred skills:", profile.PreferredSkills, 3)

	p.printBox("PARSED JOB PROFILE", sb.String())
}

// PrintCandidate outputs a summary of the parsed candidate profile.
func (p *ReportPrinter) PrintCandidate(profile *types.CandidateProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	if profile.Name != "" {
		fmt.Fprintf(&sb, "%s %s\n", p.label.Render("Name:    "), profile.Name)
	}
	if profile.Headline != "" {
		fmt.Fprintf(&sb, "%s %s\n", p.label.Render("Headline:"), profile.Headline)
	}
	if profile.Email != "" {
		fmt.Fprintf(&sb, "%s %s\n", p.label.Render("Email:   "), profile.Email)
	}
	sb.WriteString("\n")

	positions := make([]string, 0, len(profile.Experience))
	for _, e := range profile.Experience {
		line := strings.TrimSpace(strings.Join(nonEmpty(e.Title, e.Company), " at "))
		if e.Start != "" || e.End != "" {
			line += p.muted.Render(fmt.Sprintf(" (%s - %s)", e.Start, e.End))
		}
		positions = append(positions, line)
	}
	writeList(&sb, "Experience:", positions, maxItemsToShow)
	writeList(&sb, "Skills:", profile.Skills, maxItemsToShow)

	p.printBox("CANDIDATE PROFILE", sb.String())
}

// PrintScore outputs the radar score with a bar per breakdown category and the blockers.
func (p *ReportPrinter) PrintScore(result types.ScoreResult) {
	var sb strings.Builder
	style := p.scoreStyle(result.Score)
	fmt.Fprintf(&sb, "%s  %s\n\n", style.Bold(true).Render(fmt.Sprintf("%d/100", result.Score)), style.Render(string(result.Label)))

	for _, key := range types.Categories {
		v, ok := result.Breakdown[key]
		if !ok {
			continue
		}
		fmt.Fprintf(&sb, "%-19s %s %3d\n", categoryNames[key], p.scoreStyle(v).Render(bar(v)), v)
	}
	sb.WriteString("\n")

	writeList(&sb, "Blockers:", result.Blockers, maxItemsToShow)

	p.printBox("MATCH SCORE", sb.String())
}

// PrintQuickScore outputs the quick overlap estimate.
func (p *ReportPrinter) PrintQuickScore(result types.QuickScoreResult) {
	var sb strings.Builder
	style := p.scoreStyle(result.Score)
	fmt.Fprintf(&sb, "%s  %s\n\n", style.Bold(true).Render(fmt.Sprintf("%d/100", result.Score)), style.Render(string(result.Label)))

	writeList(&sb, "Matched:", result.Matched, maxItemsToShow)
	writeList(&sb, "Missing:", result.Missing, maxItemsToShow)

	if result.NeedsMoreInput {
		sb.WriteString(p.warn.Render("Add more of your experience for a reliable estimate.") + "\n")
	}

	p.printBox("QUICK SCORE", sb.String())
}

// PrintQualityIssues outputs the fixes made by the quality pipeline.
//
//nolint:errcheck // writing to the terminal; errors are not recoverable
func (p *ReportPrinter) PrintQualityIssues(issues []types.QualityIssue) {
	if len(issues) == 0 {
		fmt.Fprintln(p.out, p.box.Render(p.good.Render("✅ NO QUALITY ISSUES FOUND")))
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Fixed %d issues:\n\n", len(issues))
	for i, issue := range issues {
		mark := p.good.Render("✓")
		if !issue.AutoFixed {
			mark = p.warn.Render("⚠")
		}
		fmt.Fprintf(&sb, "%s %s %s\n", mark, issue.Type, p.muted.Render(issue.Location))
		if issue.Detail != "" {
			fmt.Fprintf(&sb, "  %s\n", Truncate(issue.Detail, boxWidth-6))
		}
		if i < len(issues)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("QUALITY FIXES", sb.String())
}

// PrintBoost outputs the before and after radar scores of the booster.
//
//nolint:errcheck // writing to the terminal; errors are not recoverable
func (p *ReportPrinter) PrintBoost(boosted bool, before, after types.ScoreResult) {
	status := p.muted.Render("not needed")
	if boosted {
		status = p.good.Render("applied")
	}
	line := fmt.Sprintf("%s %s   %s %d → %d",
		p.label.Render("Keyword boost:"), status,
		p.label.Render("Score:"), before.Score, after.Score)
	fmt.Fprintln(p.out, p.box.Render(line))
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
