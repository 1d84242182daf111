package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedClient replays canned responses in order and records prompts
type scriptedClient struct {
	responses []string
	errs      []error
	prompts   []string
	tiers     []ModelTier
}

func (c *scriptedClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	return c.GenerateJSON(ctx, prompt, tier)
}

func (c *scriptedClient) GenerateJSON(_ context.Context, prompt string, tier ModelTier) (string, error) {
	i := len(c.prompts)
	c.prompts = append(c.prompts, prompt)
	c.tiers = append(c.tiers, tier)
	if i < len(c.errs) && c.errs[i] != nil {
		return "", c.errs[i]
	}
	if i >= len(c.responses) {
		return "", errors.New("no scripted response")
	}
	return c.responses[i], nil
}

func (c *scriptedClient) GetModel(tier ModelTier) string { return string(tier) }

func (c *scriptedClient) Close() error { return nil }

const validDraft = `{
  "summary": "Backend engineer with payments depth.",
  "tailored_resume": {
    "name": "Jane Doe",
    "skills": [{"category": "Languages", "items": ["Go", "SQL"]}],
    "experience": [{"title": "Engineer", "company": "Acme", "bullets": ["Cut latency by 40%"]}]
  },
  "keyword_checklist": [{"keyword": "Go", "found": true}]
}`

func sampleRequest() DraftRequest {
	candidate := types.NewCandidateProfile()
	candidate.Name = "Jane Doe"
	candidate.Skills = []string{"Go"}
	job := types.NewJobProfile()
	job.Title = "Backend Engineer"
	job.RequiredSkills = []string{"Go", "Kafka"}
	job.PreferredSkills = []string{"GraphQL"}
	return DraftRequest{
		ResumeText: "Jane Doe\nSkills: Go",
		JobText:    "Backend Engineer\nRequired: Go, Kafka",
		Candidate:  candidate,
		Job:        job,
		Score:      types.ScoreResult{Score: 48, Label: types.LabelModerate},
	}
}

func TestBuildDraftPrompt(t *testing.T) {
	prompt, err := BuildDraftPrompt(sampleRequest())
	require.NoError(t, err)

	assert.Contains(t, prompt, "Required skills not yet evidenced: Kafka")
	assert.Contains(t, prompt, "Preferred skills not yet evidenced: GraphQL")
	assert.Contains(t, prompt, "Current match score: 48/100 (Moderate Match)")
	assert.Contains(t, prompt, "Required: Go, Kafka")
	assert.Contains(t, prompt, `"title": "TailoredDraft"`)
	assert.NotContains(t, prompt, "{{.")

	empty, err := BuildDraftPrompt(DraftRequest{})
	require.NoError(t, err)
	assert.Contains(t, empty, "Required skills not yet evidenced: none")
}

func TestGenerateDraft_Valid(t *testing.T) {
	client := &scriptedClient{responses: []string{"```json\n" + validDraft + "\n```"}}
	draft, err := NewDraftGenerator(client, nil).GenerateDraft(context.Background(), sampleRequest())
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", draft.TailoredResume.Name)
	assert.Equal(t, []string{"Go", "SQL"}, draft.TailoredResume.Skills[0].Items)
	assert.NotNil(t, draft.CoverLetter)
	assert.Equal(t, []ModelTier{TierStandard}, client.tiers)
}

func TestGenerateDraft_RepairsInvalidOutput(t *testing.T) {
	client := &scriptedClient{responses: []string{
		`{"cover_letter": "Dear team"}`,
		validDraft,
	}}
	draft, err := NewDraftGenerator(client, nil).GenerateDraft(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.Equal(t, "Backend engineer with payments depth.", draft.Summary)

	require.Len(t, client.prompts, 2)
	assert.Equal(t, TierLite, client.tiers[1])
	assert.Contains(t, client.prompts[1], `{"cover_letter": "Dear team"}`)
	assert.Contains(t, client.prompts[1], "draft does not match schema")
}

func TestGenerateDraft_GivesUpAfterRepair(t *testing.T) {
	client := &scriptedClient{responses: []string{"not json at all", `{"keyword_checklist": [{"keyword": "Go"}]}`}}
	_, err := NewDraftGenerator(client, nil).GenerateDraft(context.Background(), sampleRequest())

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.True(t, strings.Contains(parseErr.Output, "keyword_checklist"))
}

func TestGenerateDraft_APIError(t *testing.T) {
	cause := errors.New("quota exceeded")
	client := &scriptedClient{errs: []error{cause}}
	_, err := NewDraftGenerator(client, nil).GenerateDraft(context.Background(), sampleRequest())

	var apiErr *APICallError
	require.ErrorAs(t, err, &apiErr)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "draft generation failed", apiErr.Message)
}

func TestDecodeDraft(t *testing.T) {
	_, err := DecodeDraft("   ")
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "empty response", parseErr.Message)

	draft, err := DecodeDraft(`Here you go: {"next_actions": ["Apply"]} Good luck!`)
	require.NoError(t, err)
	assert.Equal(t, []string{"Apply"}, draft.NextActions)
	assert.Empty(t, draft.TailoredResume.Skills)
}

func TestNewGeminiClient_RequiresKeyMessage(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), nil, "")
	var apiErr *APICallError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "API key is required", apiErr.Message)
}
