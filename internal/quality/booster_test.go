package quality

import (
	"testing"

	"github.com/jonathan/resume-matcher/internal/scoring"
	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backendJob() *types.JobProfile {
	job := types.NewJobProfile()
	job.Title = "Backend Engineer"
	job.RequiredSkills = []string{"Go", "Kafka", "Docker"}
	job.PreferredSkills = []string{"GraphQL"}
	return job
}

func juniorCandidate() *types.CandidateProfile {
	c := types.NewCandidateProfile()
	c.Name = "Sam Lee"
	c.Email = "sam@example.com"
	c.Skills = []string{"Go"}
	c.Experience = []types.ExperienceEntry{{
		Title:   "Software Engineer",
		Company: "Acme",
		Bullets: []string{"Built internal tools for the support team"},
	}}
	return c
}

func TestBoost_InjectsRequiredThenPreferredWithinBudget(t *testing.T) {
	candidate := juniorCandidate()
	d := scoring.DraftFromProfile(candidate)
	d.TailoredResume.Skills = []types.SkillCategory{
		{Category: "Languages", Items: []string{"Go"}},
		{Category: "Technical Skills", Items: []string{"Git"}},
	}

	res := Boost(d, candidate, backendJob(), BoostOptions{MinGain: 15, Floor: 45, Budget: 2})

	require.True(t, res.Boosted)
	assert.Equal(t, []types.SkillCategory{
		{Category: "Languages", Items: []string{"Go"}},
		{Category: "Technical Skills", Items: []string{"Git", "Kafka", "Docker"}},
	}, res.Output.TailoredResume.Skills)
	assert.Greater(t, res.RadarAfter.Score, res.RadarBefore.Score)
	assert.Equal(t, scoring.Score(candidate, backendJob()), res.RadarBefore)

	// caller's draft untouched
	assert.Equal(t, []string{"Git"}, d.TailoredResume.Skills[1].Items)
}

func TestBoost_CreatesSkillsCategory(t *testing.T) {
	candidate := juniorCandidate()
	d := scoring.DraftFromProfile(candidate)
	d.TailoredResume.Skills = nil

	res := Boost(d, candidate, backendJob(), DefaultBoostOptions())

	require.True(t, res.Boosted)
	require.Len(t, res.Output.TailoredResume.Skills, 1)
	assert.Equal(t, "Skills", res.Output.TailoredResume.Skills[0].Category)
	assert.Equal(t, []string{"Kafka", "Docker", "GraphQL"}, res.Output.TailoredResume.Skills[0].Items)
}

func TestBoost_StrongDraftIsLeftAlone(t *testing.T) {
	candidate := types.NewCandidateProfile()
	candidate.Name = "Sam Lee"
	job := types.NewJobProfile()
	job.RequiredSkills = []string{"Go", "Kafka"}

	d := &types.TailoredDraft{
		TailoredResume: types.TailoredResume{
			Name:     "Sam Lee",
			Headline: "Backend Engineer",
			Summary:  "Backend engineer building event-driven Go services.",
			Skills:   []types.SkillCategory{{Category: "Skills", Items: []string{"Go", "Kafka"}}},
			Experience: []types.ExperienceEntry{{
				Title:   "Backend Engineer",
				Company: "Acme",
				Bullets: []string{
					"Cut consumer lag by 70% by batching Kafka commits",
					"Shipped 12 Go services handling 3M events per day",
				},
			}},
		},
		CoverLetter: []string{"Dear Hiring Manager,", "I build streaming systems.", "Sincerely,"},
	}

	res := Boost(d, candidate, job, DefaultBoostOptions())

	assert.False(t, res.Boosted)
	assert.Equal(t, d.Clone(), res.Output)
	assert.GreaterOrEqual(t, res.RadarAfter.Score, res.RadarBefore.Score+DefaultMinGain)
}

func TestBoost_FallsBackToOriginalResume(t *testing.T) {
	candidate := types.NewCandidateProfile()
	candidate.Name = "Priya Shah"
	candidate.Email = "priya@example.com"
	candidate.Phone = "+1 555 010 2000"
	candidate.Summary = "Backend engineer focused on reliability."
	candidate.Skills = []string{"Go"}
	candidate.Experience = []types.ExperienceEntry{{
		Title:   "Senior Engineer",
		Company: "Northwind",
		Bullets: []string{"Reduced API latency by 40% across 12 services"},
	}}
	job := types.NewJobProfile()
	job.Keywords = []string{"latency"}

	d := &types.TailoredDraft{
		TailoredResume: types.TailoredResume{
			Skills:     []types.SkillCategory{{Category: "Skills", Items: []string{"Excel"}}},
			Experience: []types.ExperienceEntry{{Title: "Intern", Bullets: []string{"Helped"}}},
		},
		CoverLetter: []string{"Dear Hiring Manager,", "I care about fast systems.", "Sincerely,"},
	}

	res := Boost(d, candidate, job, DefaultBoostOptions())

	require.True(t, res.Boosted)
	assert.Equal(t, candidate.Experience, res.Output.TailoredResume.Experience)
	assert.Equal(t, d.CoverLetter, res.Output.CoverLetter)
	assert.Equal(t, res.RadarBefore.Score, res.RadarAfter.Score)
}

func TestBoost_NeverRegresses(t *testing.T) {
	strong := juniorCandidate()
	strong.Phone = "555-0100"
	strong.Summary = "Engineer shipping Go, Kafka and Docker services."
	strong.Skills = []string{"Go", "Kafka", "Docker", "GraphQL"}
	strong.Experience[0].Bullets = []string{"Migrated 8 Kafka consumers to Docker, cutting cost by 30%"}

	cases := []struct {
		name      string
		draft     *types.TailoredDraft
		candidate *types.CandidateProfile
		job       *types.JobProfile
	}{
		{"nil draft", nil, strong, backendJob()},
		{"nil candidate", scoring.DraftFromProfile(strong), nil, backendJob()},
		{"nil job", scoring.DraftFromProfile(juniorCandidate()), strong, nil},
		{"empty draft", &types.TailoredDraft{}, strong, backendJob()},
		{"sparse draft", &types.TailoredDraft{TailoredResume: types.TailoredResume{
			Experience: []types.ExperienceEntry{{Bullets: []string{"Did work"}}},
			Skills:     []types.SkillCategory{{Category: "Other", Items: []string{"Typing"}}},
		}}, strong, backendJob()},
		{"identity", scoring.DraftFromProfile(strong), strong, backendJob()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := Boost(tc.draft, tc.candidate, tc.job, DefaultBoostOptions())
			require.NotNil(t, res.Output)
			assert.GreaterOrEqual(t, res.RadarAfter.Score, res.RadarBefore.Score)
			assert.Equal(t, scoring.Score(scoring.ProfileFromDraft(res.Output, tc.candidate), tc.job).Score, res.RadarAfter.Score)
		})
	}
}
