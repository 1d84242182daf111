package parsing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const priyaResume = `PRIYA SHARMA
Clinical Pharmacist | Antimicrobial Stewardship Lead
priya.sharma@example.com | +44 7700 900123 | Manchester, UK
linkedin.com/in/priyasharma/

PROFESSIONAL SUMMARY
Registered pharmacist with eight years of hospital practice.

KEY SKILLS
Clinical Pharmacy, Antimicrobial Stewardship

PROFESSIONAL EXPERIENCE
Senior Clinical Pharmacist — Manchester University NHS Foundation Trust (Jan 2020 – Present)
• Led antimicrobial stewardship ward rounds across three surgical wards
• Reduced broad-spectrum antibiotic use by 18% through prescriber education
Clinical Pharmacist — Salford Royal Hospital (Aug 2016 – Dec 2019)
• Delivered medicines reconciliation for 40 admissions per week
• Trained 12 pre-registration pharmacists in clinical screening

EDUCATION
MPharm Pharmacy, University of Manchester (2011 – 2015)
`

func TestParseResume_PriyaScenario(t *testing.T) {
	profile := ParseResume(priyaResume)
	require.NotNil(t, profile)

	assert.Contains(t, profile.Name, "Priya")
	assert.Equal(t, "Priya Sharma", profile.Name)
	assert.Equal(t, "Clinical Pharmacist | Antimicrobial Stewardship Lead", profile.Headline)
	assert.Equal(t, "priya.sharma@example.com", profile.Email)
	assert.Equal(t, "+44 7700 900123", profile.Phone)
	assert.Equal(t, "Manchester, UK", profile.Location)
	assert.Equal(t, []string{"https://linkedin.com/in/priyasharma"}, profile.Links)
	assert.Equal(t, "Registered pharmacist with eight years of hospital practice.", profile.Summary)

	assert.Contains(t, profile.Skills, "Clinical Pharmacy")
	assert.Contains(t, profile.Skills, "Antimicrobial Stewardship")

	require.GreaterOrEqual(t, len(profile.Experience), 2)
	for _, entry := range profile.Experience {
		assert.NotEmpty(t, entry.Bullets, "entry %q should have bullets", entry.Title)
	}
	first := profile.Experience[0]
	assert.Equal(t, "Senior Clinical Pharmacist", first.Title)
	assert.Equal(t, "Manchester University NHS Foundation Trust", first.Company)
	assert.Equal(t, "Jan 2020", first.Start)
	assert.Equal(t, "Present", first.End)
	second := profile.Experience[1]
	assert.Equal(t, "Clinical Pharmacist", second.Title)
	assert.Equal(t, "Salford Royal Hospital", second.Company)

	require.Len(t, profile.Education, 1)
	assert.Equal(t, "MPharm Pharmacy", profile.Education[0].Degree)
	assert.Equal(t, "University of Manchester", profile.Education[0].School)
	assert.Equal(t, "2011", profile.Education[0].Start)
	assert.Equal(t, "2015", profile.Education[0].End)
}

func TestParseResume_NeverPanicsAndSlicesNonNil(t *testing.T) {
	inputs := []string{
		"",
		"   \n\n\t",
		"2019 2020 2021",
		"•\n•\n-",
		"EXPERIENCE\n",
		"SKILLS:\n,,,;;;|||",
		strings.Repeat("Engineer at Acme\n", 50),
		"Company: \nProject: \n2020 - Present",
		"# \n## \n###",
		"ÉCOLE\nDÉVELOPPEUR — Société Générale (2018 – 2020)\n• a",
		"https://\nwww.\nlinkedin.com/\n+44 (0)\n((((((",
		"Jane, \n, UK\n| |\u200b|",
		strings.Repeat("é", 600) + "\n07700 900123",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			assert.NotPanics(t, func() {
				profile := ParseResume(input)
				require.NotNil(t, profile)
				assert.NotNil(t, profile.Links)
				assert.NotNil(t, profile.Skills)
				assert.NotNil(t, profile.Experience)
				assert.NotNil(t, profile.Education)
				assert.NotNil(t, profile.Projects)
				for _, e := range profile.Experience {
					assert.NotNil(t, e.Bullets)
					for _, b := range e.Bullets {
						assert.NotEmpty(t, strings.TrimSpace(b))
					}
				}
			})
		})
	}
}

func TestParseResume_SkillsDedupedCaseInsensitively(t *testing.T) {
	text := "Jane Doe\n\nSKILLS\nPython, python, SQL; Docker | docker\nLanguages: Go, PYTHON\n"
	profile := ParseResume(text)
	assert.Equal(t, []string{"Python", "SQL", "Docker", "Go"}, profile.Skills)
}

func TestParseResume_SkillsFallbackToDictionary(t *testing.T) {
	text := "Jane Doe\nBuilt data pipelines in Python and deployed them with Docker on AWS.\n"
	profile := ParseResume(text)
	assert.Contains(t, profile.Skills, "Python")
	assert.Contains(t, profile.Skills, "Docker")
	assert.Contains(t, profile.Skills, "AWS")
	assert.NotContains(t, profile.Skills, "Java")
}

func TestParseResume_HiddenLinksMerged(t *testing.T) {
	text := "Sam Lee\nhttps://github.com/samlee\n"
	profile := ParseResume(text, "https://GitHub.com/samlee/", "mailto:sam@example.com", "https://samlee.dev")
	assert.Equal(t, []string{"https://github.com/samlee", "https://samlee.dev"}, profile.Links)
}

func TestParseResume_Projects(t *testing.T) {
	text := `Sam Lee

PROJECTS
Route Planner | https://github.com/samlee/route-planner
Computes cycling routes from open map data for commuters.
Tech: Go, PostgreSQL
`
	profile := ParseResume(text)
	require.Len(t, profile.Projects, 1)
	project := profile.Projects[0]
	assert.Equal(t, "Route Planner", project.Name)
	assert.Equal(t, "https://github.com/samlee/route-planner", project.Link)
	assert.Equal(t, "Computes cycling routes from open map data for commuters.", project.Description)
	assert.Equal(t, []string{"Go", "PostgreSQL"}, project.Technologies)
}
