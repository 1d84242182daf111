// Package pipeline wires ingestion, parsing, scoring, generation and the
// quality passes into the two user-facing paths: the free Score path and
// the paid Tailor path.
package pipeline

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/fetch"
	"github.com/jonathan/resume-matcher/internal/llm"
	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/quality"
	"github.com/jonathan/resume-matcher/internal/types"
)

// Step names reported in progress events and errors
const (
	StepIngestResume = "ingest_resume"
	StepIngestJob    = "ingest_job"
	StepParse        = "parse"
	StepScore        = "score"
	StepGenerate     = "generate"
	StepQuality      = "quality"
)

// DefaultBatchLimit caps concurrent jobs in ScoreMany
const DefaultBatchLimit = 4

var (
	// ErrNoJob is returned when neither job text nor a job URL is supplied
	ErrNoJob = errors.New("job text or job URL is required")
	// ErrNoFetcher is returned when a job URL is supplied but fetching is disabled
	ErrNoFetcher = errors.New("job URL given but no fetcher is configured")
	// ErrNoGenerator is returned when tailoring needs a draft but no generator is configured
	ErrNoGenerator = errors.New("no draft supplied and no generator is configured")
)

// StepError wraps a failure with the step it happened in
type StepError struct {
	Step  string
	Cause error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s step failed: %v", e.Step, e.Cause)
}

func (e *StepError) Unwrap() error {
	return e.Cause
}

// ProgressEvent represents a progress update during a run
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Input is a résumé and a job posting given as text or URL
type Input struct {
	ResumeText  string
	HiddenLinks []string
	JobText     string
	JobURL      string
	// Draft, when set, is used instead of calling the generator
	Draft *types.TailoredDraft
}

// ScoreOutput is the result of the free path
type ScoreOutput struct {
	Candidate *types.CandidateProfile `json:"candidate"`
	Job       *types.JobProfile       `json:"job"`
	Result    types.ScoreResult       `json:"result"`
}

// TailorOutput is the result of the paid path
type TailorOutput struct {
	Candidate *types.CandidateProfile `json:"candidate"`
	Job       *types.JobProfile       `json:"job"`
	Score     types.ScoreResult       `json:"score"`
	Draft     *types.TailoredDraft    `json:"draft"`
	Issues    []types.QualityIssue    `json:"issues"`
	Boosted   bool                    `json:"boosted"`
	// RadarBefore and RadarAfter come from the keyword booster
	RadarBefore types.ScoreResult `json:"radar_before"`
	RadarAfter  types.ScoreResult `json:"radar_after"`
}

// Pipeline runs the scoring and tailoring paths
type Pipeline struct {
	fetcher    fetch.Fetcher
	generator  llm.Generator
	boost      quality.BoostOptions
	batchLimit int
	logger     *zap.Logger
	onProgress ProgressCallback
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithFetcher enables job URLs
func WithFetcher(f fetch.Fetcher) Option {
	return func(p *Pipeline) { p.fetcher = f }
}

// WithGenerator sets the draft generator used by Tailor
func WithGenerator(g llm.Generator) Option {
	return func(p *Pipeline) { p.generator = g }
}

// WithBoostOptions overrides the booster thresholds
func WithBoostOptions(opts quality.BoostOptions) Option {
	return func(p *Pipeline) { p.boost = opts }
}

// WithBatchLimit sets how many jobs ScoreMany handles at once
func WithBatchLimit(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.batchLimit = n
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(p *Pipeline) { p.logger = observability.OrNop(logger) }
}

// WithProgress registers a progress callback
func WithProgress(cb ProgressCallback) Option {
	return func(p *Pipeline) { p.onProgress = cb }
}

// New creates a Pipeline. Without a fetcher only job text is accepted;
// without a generator Tailor requires a supplied draft.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		boost:      quality.DefaultBoostOptions(),
		batchLimit: DefaultBatchLimit,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Observe returns a copy of the pipeline that reports progress to cb.
// Used for per-request progress streams on a shared pipeline.
func (p *Pipeline) Observe(cb ProgressCallback) *Pipeline {
	c := *p
	c.onProgress = cb
	return &c
}

// emitProgress calls the progress callback if configured
func (p *Pipeline) emitProgress(step, message string, content any) {
	if p.onProgress != nil {
		p.onProgress(ProgressEvent{Step: step, Message: message, Content: content})
	}
}
