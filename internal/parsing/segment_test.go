package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyHeader(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		wantLabel string
		wantOK    bool
	}{
		{"vocabulary", "Work Experience", "work experience", true},
		{"plural variant", "Project", "project", true},
		{"all caps", "CLINICAL ROTATIONS", "clinical rotations", true},
		{"colon", "Languages:", "languages", true},
		{"markdown", "## Education", "education", true},
		{"ampersand folded", "Skills & Tools", "skills and tools", true},
		{"year never header", "Summer 2019", "", false},
		{"present never header", "Current", "", false},
		{"denylisted subheading", "Key Responsibilities", "", false},
		{"role keyword short line", "Staff Engineer", "", false},
		{"bullet", "• Skills", "", false},
		{"email", "jane@example.com", "", false},
		{"sentence", "Led a team of five engineers.", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			label, _, ok := classifyHeader(tt.line)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantLabel, label)
		})
	}
}

func TestSegment_AccumulatesRepeatedSections(t *testing.T) {
	lines := []string{
		"Jane Doe",
		"jane@example.com",
		"EXPERIENCE",
		"Engineer at Acme",
		"SKILLS",
		"Go, SQL",
		"EXPERIENCE",
		"Analyst at Beta",
	}
	sections := Segment(lines)

	assert.Equal(t, []string{HeaderSection, "jane doe", "experience", "skills"}, sections.Labels())
	assert.Equal(t, []string{"Engineer at Acme", "Analyst at Beta"}, sections.Lines("experience"))
	assert.Equal(t, []string{"Jane Doe", "jane@example.com"}, sections.Lines("jane doe"))
	assert.True(t, sections.IsHeuristic("jane doe"))
	assert.False(t, sections.IsHeuristic("experience"))
}

func TestSegment_MatchingAcrossLabels(t *testing.T) {
	lines := []string{
		"WORK EXPERIENCE",
		"Engineer at Acme",
		"VOLUNTEER EXPERIENCE",
		"Mentor at Code Club",
		"EDUCATION",
		"BSc Physics",
	}
	sections := Segment(lines)
	assert.Equal(t, []string{"Engineer at Acme", "Mentor at Code Club"}, sections.Matching("experience"))
}

func TestSegment_HeuristicContinuation(t *testing.T) {
	lines := []string{
		"EXPERIENCE",
		"Staff Engineer at Acme",
		"• Built the billing platform end to end",
		"NORTHWIND TRADERS",
		"• Migrated the warehouse system to Go",
		"EDUCATION",
		"BSc Physics",
	}
	sections := Segment(lines)
	require.Equal(t, []string{"experience", "northwind traders"}, sections.MatchingLabels("experience"))
	assert.Equal(t, []string{
		"Staff Engineer at Acme",
		"• Built the billing platform end to end",
		"NORTHWIND TRADERS",
		"• Migrated the warehouse system to Go",
	}, sections.Matching("experience"))
}

func TestSegment_Degenerate(t *testing.T) {
	sections := Segment([]string{"just some text without any headers at all", "more text follows here, too"})
	assert.True(t, sections.Degenerate())
	assert.Len(t, sections.Lines(HeaderSection), 2)
}
