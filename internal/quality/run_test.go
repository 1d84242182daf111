package quality

import (
	"testing"

	"github.com/jonathan/resume-matcher/internal/scoring"
	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_EndToEnd(t *testing.T) {
	candidate := juniorCandidate()
	job := backendJob()

	d := &types.TailoredDraft{
		Summary: "Results-driven engineer. A weak match for streaming work today.",
		TailoredResume: types.TailoredResume{
			Name:   "Sam Lee",
			Skills: []types.SkillCategory{{Category: "Core", Items: []string{"Go", "go"}}},
			Experience: []types.ExperienceEntry{{
				Title:   "Software Engineer",
				Company: "Acme",
				Bullets: []string{
					"Built internal tools for the support team",
					"Built internal tools for the support team.",
					"Responsible for on-call and",
				},
			}},
		},
		KeywordChecklist: []types.KeywordCheck{
			{Keyword: "Go"},
			{Keyword: "Kafka", Suggestion: "Mention Kafka"},
		},
		RecruiterFeedback: []string{"No Go experience shown."},
		CoverLetter:       []string{"I build tools.", "I build tools!"},
	}

	report := Run(d, candidate, job, DefaultBoostOptions())
	out := report.Output

	assert.Equal(t, "Engineer. A partial match for streaming work today.", out.Summary)
	assert.Equal(t, []string{"Built internal tools for the support team"}, out.TailoredResume.Experience[0].Bullets)
	assert.Equal(t, []string{"Dear Hiring Manager,", "I build tools.", "Sincerely,\nSam Lee"}, out.CoverLetter)
	assert.Empty(t, out.RecruiterFeedback)

	require.True(t, report.Boosted)
	assert.Equal(t, []string{"Go", "Kafka", "Docker", "GraphQL"}, out.TailoredResume.Skills[0].Items)
	assert.Equal(t, []types.KeywordCheck{
		{Keyword: "Go", Found: true},
		{Keyword: "Kafka", Found: true},
	}, out.KeywordChecklist, "checklist is reconciled after skills are injected")

	assert.GreaterOrEqual(t, report.RadarAfter.Score, report.RadarBefore.Score)
	assert.Equal(t, scoring.Score(scoring.ProfileFromDraft(out, candidate), job), report.RadarAfter)

	var kinds []string
	for _, issue := range report.Issues {
		kinds = append(kinds, issue.Type)
	}
	assert.Contains(t, kinds, types.IssueBannedPhrase)
	assert.Contains(t, kinds, types.IssueDanglingClause)
	assert.Contains(t, kinds, types.IssueEmptyField)
}

func TestRun_NilInputs(t *testing.T) {
	report := Run(nil, nil, nil, DefaultBoostOptions())
	require.NotNil(t, report.Output)
	assert.NotNil(t, report.Issues)
	assert.GreaterOrEqual(t, report.RadarAfter.Score, report.RadarBefore.Score)
}
