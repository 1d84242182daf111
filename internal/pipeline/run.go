package pipeline

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/llm"
	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/parsing"
	"github.com/jonathan/resume-matcher/internal/quality"
	"github.com/jonathan/resume-matcher/internal/scoring"
	"github.com/jonathan/resume-matcher/internal/types"
)

// JobSource is one job posting given as text or URL. Text wins when both are set.
type JobSource struct {
	Text string `json:"text,omitempty"`
	URL  string `json:"url,omitempty"`
}

// Parse cleans résumé text and parses it into a candidate profile
func (p *Pipeline) Parse(resumeText string, hiddenLinks []string) *types.CandidateProfile {
	doc := ingestion.FromText(resumeText, "resume")
	return parsing.ParseResume(doc.Text, append(doc.HiddenLinks, hiddenLinks...)...)
}

// QuickScore runs the cheap overlap estimate on cleaned text
func (p *Pipeline) QuickScore(resumeText, jobText string) types.QuickScoreResult {
	return scoring.QuickScore(ingestion.CleanText(resumeText), ingestion.CleanText(jobText))
}

// Score is the free path: ingest, parse both sides and compute the radar score.
func (p *Pipeline) Score(ctx context.Context, in Input) (*ScoreOutput, error) {
	start := time.Now()

	job, err := p.resolveJob(ctx, JobSource{Text: in.JobText, URL: in.JobURL})
	if err != nil {
		return nil, err
	}

	candidate := p.Parse(in.ResumeText, in.HiddenLinks)
	jobProfile := parsing.ParseJobProfile(job.Text)
	p.emitProgress(StepParse, "Parsed résumé and job posting", nil)

	result := scoring.Score(candidate, jobProfile)
	p.emitProgress(StepScore, "Computed match score", result)

	p.logger.Info("scored résumé",
		zap.Int("score", result.Score),
		zap.String("label", string(result.Label)),
		zap.String("job_title", jobProfile.Title),
		zap.Duration("duration", time.Since(start)),
	)

	return &ScoreOutput{Candidate: candidate, Job: jobProfile, Result: result}, nil
}

// ScoreMany scores one résumé against several jobs concurrently. The résumé is
// parsed once. Results keep the order of jobs; the first failure cancels the rest.
func (p *Pipeline) ScoreMany(ctx context.Context, resumeText string, hiddenLinks []string, jobs []JobSource) ([]ScoreOutput, error) {
	candidate := p.Parse(resumeText, hiddenLinks)
	results := make([]ScoreOutput, len(jobs))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(p.batchLimit)

	for i, src := range jobs {
		g.Go(func() error {
			job, err := p.resolveJob(gCtx, src)
			if err != nil {
				return err
			}
			jobProfile := parsing.ParseJobProfile(job.Text)
			results[i] = ScoreOutput{
				Candidate: candidate,
				Job:       jobProfile,
				Result:    scoring.Score(candidate, jobProfile),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	p.logger.Info("scored batch", zap.Int("jobs", len(jobs)))
	return results, nil
}

// Tailor is the paid path. Résumé parsing and job ingestion run concurrently,
// then the draft is generated (unless supplied) and passed through the quality pipeline.
func (p *Pipeline) Tailor(ctx context.Context, in Input) (*TailorOutput, error) {
	start := time.Now()

	var (
		candidate  *types.CandidateProfile
		jobDoc     *ingestion.Document
		jobProfile *types.JobProfile
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		candidate = p.Parse(in.ResumeText, in.HiddenLinks)
		return nil
	})
	g.Go(func() error {
		doc, err := p.resolveJob(gCtx, JobSource{Text: in.JobText, URL: in.JobURL})
		if err != nil {
			return err
		}
		jobDoc = doc
		jobProfile = parsing.ParseJobProfile(doc.Text)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	p.emitProgress(StepParse, "Parsed résumé and job posting", nil)

	score := scoring.Score(candidate, jobProfile)
	p.emitProgress(StepScore, "Computed match score", score)

	draft := in.Draft
	if draft == nil {
		if p.generator == nil {
			return nil, &StepError{Step: StepGenerate, Cause: ErrNoGenerator}
		}
		generated, err := p.generator.GenerateDraft(ctx, llm.DraftRequest{
			ResumeText: ingestion.CleanText(in.ResumeText),
			JobText:    jobDoc.Text,
			Candidate:  candidate,
			Job:        jobProfile,
			Score:      score,
		})
		if err != nil {
			p.logger.Warn("draft generation failed", zap.Error(err))
			return nil, &StepError{Step: StepGenerate, Cause: err}
		}
		draft = generated
		p.emitProgress(StepGenerate, "Generated tailored draft", nil)
	} else {
		p.logger.Debug("using supplied draft", observability.TextField("summary", draft.Summary))
	}

	report := quality.Run(draft, candidate, jobProfile, p.boost)
	p.emitProgress(StepQuality, "Applied quality passes", report.Issues)

	p.logger.Info("tailored résumé",
		zap.Int("score", score.Score),
		zap.Int("radar_before", report.RadarBefore.Score),
		zap.Int("radar_after", report.RadarAfter.Score),
		zap.Bool("boosted", report.Boosted),
		zap.Int("issues", len(report.Issues)),
		zap.Duration("duration", time.Since(start)),
	)

	issues := report.Issues
	if issues == nil {
		issues = []types.QualityIssue{}
	}
	return &TailorOutput{
		Candidate:   candidate,
		Job:         jobProfile,
		Score:       score,
		Draft:       report.Output,
		Issues:      issues,
		Boosted:     report.Boosted,
		RadarBefore: report.RadarBefore,
		RadarAfter:  report.RadarAfter,
	}, nil
}

// resolveJob turns a job source into a cleaned document, fetching when only a URL is given
func (p *Pipeline) resolveJob(ctx context.Context, src JobSource) (*ingestion.Document, error) {
	if strings.TrimSpace(src.Text) != "" {
		return ingestion.FromText(src.Text, "job"), nil
	}
	if src.URL == "" {
		return nil, &StepError{Step: StepIngestJob, Cause: ErrNoJob}
	}
	if p.fetcher == nil {
		return nil, &StepError{Step: StepIngestJob, Cause: ErrNoFetcher}
	}

	p.logger.Info("fetching job posting", zap.String(observability.FieldSource, src.URL))
	doc, err := ingestion.FromURL(ctx, p.fetcher, src.URL)
	if err != nil {
		return nil, &StepError{Step: StepIngestJob, Cause: err}
	}
	p.logger.Debug("fetched job posting",
		zap.String(observability.FieldSource, src.URL),
		zap.String("platform", doc.Metadata.Platform),
		zap.Int("chars", len(doc.Text)),
	)
	return doc, nil
}
