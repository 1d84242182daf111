package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jonathan/resume-matcher/internal/prompts"
	"github.com/jonathan/resume-matcher/internal/schemas"
	"github.com/jonathan/resume-matcher/internal/scoring"
	"github.com/jonathan/resume-matcher/internal/types"
)

// DraftRequest is everything the generator is shown for one tailoring run
type DraftRequest struct {
	ResumeText string
	JobText    string
	Candidate  *types.CandidateProfile
	Job        *types.JobProfile
	Score      types.ScoreResult
}

// Generator produces a tailored draft for a candidate and job
type Generator interface {
	GenerateDraft(ctx context.Context, req DraftRequest) (*types.TailoredDraft, error)
}

// DraftGenerator is a Generator backed by a Client. Output that fails schema
// validation gets one repair round on the lite tier.
type DraftGenerator struct {
	client Client
	config *Config
}

// NewDraftGenerator creates a DraftGenerator. A nil config uses DefaultConfig.
func NewDraftGenerator(client Client, config *Config) *DraftGenerator {
	if config == nil {
		config = DefaultConfig()
	}
	return &DraftGenerator{client: client, config: config}
}

// GenerateDraft asks the model for a draft and decodes it
func (g *DraftGenerator) GenerateDraft(ctx context.Context, req DraftRequest) (*types.TailoredDraft, error) {
	prompt, err := BuildDraftPrompt(req)
	if err != nil {
		return nil, err
	}
	raw, err := g.client.GenerateJSON(ctx, prompt, g.config.DraftTier)
	if err != nil {
		return nil, wrapAPIError("draft generation failed", err)
	}

	draft, err := DecodeDraft(raw)
	if err == nil {
		return draft, nil
	}

	repairPrompt, renderErr := prompts.Render(prompts.TailoringFile, prompts.RepairJSON, map[string]string{
		"Error":  err.Error(),
		"Schema": schemas.DraftSchema(),
		"Output": raw,
	})
	if renderErr != nil {
		return nil, renderErr
	}
	repaired, repairErr := g.client.GenerateJSON(ctx, repairPrompt, TierLite)
	if repairErr != nil {
		return nil, wrapAPIError("draft repair failed", repairErr)
	}
	return DecodeDraft(repaired)
}

// DecodeDraft validates raw generator output against the draft schema and
// decodes it. The result has every slice non-nil.
func DecodeDraft(raw string) (*types.TailoredDraft, error) {
	cleaned := CleanJSONBlock(raw)
	if cleaned == "" {
		return nil, &ParseError{Message: "empty response", Output: raw}
	}
	if err := schemas.ValidateDraft([]byte(cleaned)); err != nil {
		return nil, &ParseError{Message: "draft does not match schema", Output: raw, Cause: err}
	}
	var draft types.TailoredDraft
	if err := json.Unmarshal([]byte(cleaned), &draft); err != nil {
		return nil, &ParseError{Message: "failed to unmarshal draft", Output: raw, Cause: err}
	}
	return draft.Clone(), nil
}

// BuildDraftPrompt renders the tailoring prompt
func BuildDraftPrompt(req DraftRequest) (string, error) {
	candidate := req.Candidate
	if candidate == nil {
		candidate = types.NewCandidateProfile()
	}
	job := req.Job
	if job == nil {
		job = types.NewJobProfile()
	}
	candidateJSON, err := json.MarshalIndent(candidate, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal candidate profile: %w", err)
	}
	jobJSON, err := json.MarshalIndent(job, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal job profile: %w", err)
	}
	required, preferred := scoring.MissingSkills(candidate, job)

	return prompts.Render(prompts.TailoringFile, prompts.TailorDraft, map[string]string{
		"JobText":          req.JobText,
		"JobProfile":       string(jobJSON),
		"ResumeText":       req.ResumeText,
		"CandidateProfile": string(candidateJSON),
		"Score":            fmt.Sprintf("%d", req.Score.Score),
		"Label":            string(req.Score.Label),
		"MissingRequired":  listOrNone(required),
		"MissingPreferred": listOrNone(preferred),
		"Schema":           schemas.DraftSchema(),
	})
}

func listOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}

func wrapAPIError(message string, err error) error {
	var apiErr *APICallError
	if errors.As(err, &apiErr) {
		return err
	}
	return &APICallError{Message: message, Cause: err}
}
