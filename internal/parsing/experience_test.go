package parsing

import (
	"testing"

	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePositionHeader(t *testing.T) {
	tests := []struct {
		name        string
		line        string
		wantOK      bool
		wantTitle   string
		wantCompany string
		wantStart   string
		wantEnd     string
	}{
		{"title dash company parenthesised dates", "Software Engineer — Acme Corp (Mar 2019 – Present)", true, "Software Engineer", "Acme Corp", "Mar 2019", "Present"},
		{"title dash company comma dates", "Data Analyst - Beta Ltd, 2016 - 2018", true, "Data Analyst", "Beta Ltd", "2016", "2018"},
		{"title at company", "Product Manager at Globex", true, "Product Manager", "Globex", "", ""},
		{"company dash title swapped", "Initech | Senior Developer", true, "Senior Developer", "Initech", "", ""},
		{"bare title", "Staff Engineer", true, "Staff Engineer", "", "", ""},
		{"bullet is not a header", "• Engineer at Acme", false, "", "", "", ""},
		{"sentence is not a header", "Worked as an engineer at Acme on billing.", false, "", "", "", ""},
		{"lowercase prose with date", "shipped the new platform in 2021 - 2022 for customers", false, "", "", "", ""},
		{"label line", "Company: Acme", false, "", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, ok := parsePositionHeader(tt.line)
			require.Equal(t, tt.wantOK, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.wantTitle, h.title)
			assert.Equal(t, tt.wantCompany, h.company)
			assert.Equal(t, tt.wantStart, h.dates.Start)
			assert.Equal(t, tt.wantEnd, h.dates.End)
		})
	}
}

func TestScanExperience_DateLineAttachesAndOpens(t *testing.T) {
	lines := []string{
		"Staff Engineer",
		"Jan 2020 - Present",
		"• Designed the event pipeline for payments",
		"2017 - 2019",
		"• Maintained the reporting service for finance",
	}
	entries := scanExperience(lines)
	require.Len(t, entries, 2)
	assert.Equal(t, "Staff Engineer", entries[0].Title)
	assert.Equal(t, "Jan 2020", entries[0].Start)
	assert.Equal(t, "Present", entries[0].End)
	assert.Equal(t, []string{"Designed the event pipeline for payments"}, entries[0].Bullets)
	assert.Equal(t, "2017", entries[1].Start)
	assert.Equal(t, []string{"Maintained the reporting service for finance"}, entries[1].Bullets)
}

func TestScanExperience_LabelsAndPendingProject(t *testing.T) {
	lines := []string{
		"Project: Ledger Rewrite",
		"2021 - 2022",
		"• Rebuilt the ledger service with idempotent writes",
		"Consultant",
		"Company: Northwind",
		"• Advised on warehouse automation for three sites",
	}
	entries := scanExperience(lines)
	require.Len(t, entries, 2)
	assert.Equal(t, "Ledger Rewrite", entries[0].Company)
	assert.Equal(t, "2021", entries[0].Start)
	assert.Equal(t, "Consultant", entries[1].Title)
	assert.Equal(t, "Northwind", entries[1].Company)
}

func TestScanExperience_MergesWrappedAndDropsFragments(t *testing.T) {
	lines := []string{
		"Software Engineer at Acme",
		"• Built a billing service that processed invoices for",
		"enterprise customers across Europe",
		"• Cut latency by 40%,",
		"improving checkout conversion",
		"• Fixed bugs",
		"• Worked closely with the design and",
	}
	entries := scanExperience(lines)
	require.Len(t, entries, 1)
	assert.Equal(t, []string{
		"Built a billing service that processed invoices for enterprise customers across Europe",
		"Cut latency by 40%, improving checkout conversion",
	}, entries[0].Bullets)
}

func TestMergeOrphanHeaders(t *testing.T) {
	entries := []types.ExperienceEntry{
		{Title: "Engineer", Start: "2020", Bullets: []string{"Shipped the mobile app to production"}},
		{Company: "Acme Corp", Bullets: []string{}},
		{Title: "Analyst", Company: "Beta", Start: "2018", Bullets: []string{"Built dashboards for operations"}},
	}
	out := mergeOrphanHeaders(entries)
	require.Len(t, out, 2)
	assert.Equal(t, "Engineer", out[0].Title)
	assert.Equal(t, "Acme Corp", out[0].Company)
	assert.Equal(t, "Analyst", out[1].Title)
}

func TestAbsorbUntitled(t *testing.T) {
	entries := []types.ExperienceEntry{
		{Title: "Engineer", Company: "Acme", Bullets: []string{"Shipped the mobile app to production"}},
		{Start: "2019", End: "2020", Bullets: []string{"Ran the on-call rotation for the team"}},
	}
	out := absorbUntitled(entries)
	require.Len(t, out, 1)
	assert.Equal(t, []string{
		"Shipped the mobile app to production",
		"Ran the on-call rotation for the team",
	}, out[0].Bullets)
	assert.Equal(t, "2019", out[0].Start)
	assert.Equal(t, "2020", out[0].End)
}

func TestExperienceLines_RecoversMisplacedRoles(t *testing.T) {
	lines := []string{
		"Jane Doe",
		"Senior Engineer | Platforms",
		"EXPERIENCE",
		"Engineer — Acme (2020 – Present)",
		"• Shipped the mobile app to production",
		"CERTIFICATIONS",
		"Certified Scrum Master",
		"Analyst — Beta (2017 – 2019)",
		"• Built dashboards for operations leadership",
		"EDUCATION",
		"Lecturer — University of Leeds (2010 – 2012)",
	}
	entries := extractExperience(Segment(lines))
	require.Len(t, entries, 2)
	assert.Equal(t, "Engineer", entries[0].Title)
	assert.Equal(t, "Acme", entries[0].Company)
	assert.Equal(t, "Analyst", entries[1].Title)
	assert.Equal(t, "Beta", entries[1].Company)
	assert.Equal(t, []string{"Built dashboards for operations leadership"}, entries[1].Bullets)
}
