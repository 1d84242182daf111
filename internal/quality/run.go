package quality

import (
	"github.com/jonathan/resume-matcher/internal/types"
)

// Report is the outcome of the full quality pipeline
type Report struct {
	Output      *types.TailoredDraft `json:"output"`
	Issues      []types.QualityIssue `json:"issues"`
	Boosted     bool                 `json:"boosted"`
	RadarBefore types.ScoreResult    `json:"radar_before"`
	RadarAfter  types.ScoreResult    `json:"radar_after"`
}

// Run applies the passes in their required order: Dedupe, Gate, Validate, Boost.
// Checklist entries are reconciled once more after boosting because injected
// skills can satisfy them.
func Run(d *types.TailoredDraft, candidate *types.CandidateProfile, job *types.JobProfile, opts BoostOptions) Report {
	out := Dedupe(d)
	out, issues := Gate(out)
	out = Validate(out)
	boost := Boost(out, candidate, job, opts)
	out = ReconcileChecklist(boost.Output)

	return Report{
		Output:      out,
		Issues:      issues,
		Boosted:     boost.Boosted,
		RadarBefore: boost.RadarBefore,
		RadarAfter:  boost.RadarAfter,
	}
}
