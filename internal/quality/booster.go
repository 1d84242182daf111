package quality

import (
	"strings"

	"github.com/jonathan/resume-matcher/internal/scoring"
	"github.com/jonathan/resume-matcher/internal/types"
)

// Booster defaults
const (
	DefaultMinGain = 15
	DefaultFloor   = 45
	DefaultBudget  = 6
)

// injectedCategory is used when a draft has no skills section to add to
const injectedCategory = "Skills"

// BoostOptions tunes when and how far the booster intervenes
type BoostOptions struct {
	// MinGain is the lead over the original résumé's score a draft must reach
	MinGain int `json:"min_gain"`
	// Floor is the absolute score below which a draft is always boosted
	Floor int `json:"floor"`
	// Budget caps the number of skills injected
	Budget int `json:"budget"`
}

// DefaultBoostOptions returns the standard booster thresholds
func DefaultBoostOptions() BoostOptions {
	return BoostOptions{MinGain: DefaultMinGain, Floor: DefaultFloor, Budget: DefaultBudget}
}

// BoostResult is the booster's output. RadarAfter.Score is never below RadarBefore.Score.
type BoostResult struct {
	Output      *types.TailoredDraft `json:"output"`
	Boosted     bool                 `json:"boosted"`
	RadarBefore types.ScoreResult    `json:"radar_before"`
	RadarAfter  types.ScoreResult    `json:"radar_after"`
}

// Boost re-scores the draft against the original résumé's score. A draft that
// does not lead by MinGain, or sits under Floor, gets the job's missing required
// and then preferred skills injected into its skills section, up to Budget. If
// the draft still scores below the original résumé, progressively safer
// fallbacks are used so the returned score never regresses.
func Boost(d *types.TailoredDraft, candidate *types.CandidateProfile, job *types.JobProfile, opts BoostOptions) BoostResult {
	if candidate == nil {
		candidate = types.NewCandidateProfile()
	}
	before := scoring.Score(candidate, job)
	current := d.Clone()
	after := scoreDraft(current, candidate, job)
	boosted := false

	if after.Score < before.Score+opts.MinGain || after.Score < opts.Floor {
		if picks := boostPicks(current, candidate, job, opts.Budget); len(picks) > 0 {
			candidateDraft := injectSkills(current, picks)
			if s := scoreDraft(candidateDraft, candidate, job); s.Score > after.Score {
				current, after, boosted = candidateDraft, s, true
			}
		}
	}
	if after.Score >= before.Score {
		return BoostResult{Output: current, Boosted: boosted, RadarBefore: before, RadarAfter: after}
	}

	// The draft lost ground. First try keeping it but restoring the résumé's own skills.
	withOriginal := injectSkills(current, candidate.Skills)
	if s := scoreDraft(withOriginal, candidate, job); s.Score >= before.Score {
		return BoostResult{Output: withOriginal, Boosted: true, RadarBefore: before, RadarAfter: s}
	}

	// Fall back to the original résumé content plus the boost skills. Adding
	// skills to the original cannot lower its score.
	fallback := current.Clone()
	fallback.TailoredResume = scoring.DraftFromProfile(candidate).TailoredResume
	if picks := boostPicks(fallback, candidate, job, opts.Budget); len(picks) > 0 {
		fallback = injectSkills(fallback, picks)
	}
	s := scoreDraft(fallback, candidate, job)
	if s.Score < before.Score {
		fallback.TailoredResume = scoring.DraftFromProfile(candidate).TailoredResume
		s = scoreDraft(fallback, candidate, job)
	}
	return BoostResult{Output: fallback, Boosted: true, RadarBefore: before, RadarAfter: s}
}

func scoreDraft(d *types.TailoredDraft, candidate *types.CandidateProfile, job *types.JobProfile) types.ScoreResult {
	return scoring.Score(scoring.ProfileFromDraft(d, candidate), job)
}

// boostPicks lists missing required skills, then missing preferred ones, up to budget
func boostPicks(d *types.TailoredDraft, candidate *types.CandidateProfile, job *types.JobProfile, budget int) []string {
	if budget <= 0 {
		return nil
	}
	required, preferred := scoring.MissingSkills(scoring.ProfileFromDraft(d, candidate), job)
	picks := append(append([]string{}, required...), preferred...)
	if len(picks) > budget {
		picks = picks[:budget]
	}
	return picks
}

// injectSkills appends skills not already listed to the draft's skills section
func injectSkills(d *types.TailoredDraft, skills []string) *types.TailoredDraft {
	out := d.Clone()
	seen := make(map[string]bool)
	for _, s := range out.TailoredResume.AllSkills() {
		seen[strings.ToLower(strings.TrimSpace(s))] = true
	}
	var add []string
	for _, s := range skills {
		key := strings.ToLower(strings.TrimSpace(s))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		add = append(add, strings.TrimSpace(s))
	}
	if len(add) == 0 {
		return out
	}

	target := -1
	for i, cat := range out.TailoredResume.Skills {
		lower := strings.ToLower(cat.Category)
		if strings.Contains(lower, "skill") || strings.Contains(lower, "technical") || strings.Contains(lower, "core") {
			target = i
			break
		}
	}
	if target < 0 && len(out.TailoredResume.Skills) > 0 {
		target = 0
	}
	if target < 0 {
		out.TailoredResume.Skills = append(out.TailoredResume.Skills, types.SkillCategory{Category: injectedCategory})
		target = len(out.TailoredResume.Skills) - 1
	}
	cat := &out.TailoredResume.Skills[target]
	cat.Items = append(append([]string{}, cat.Items...), add...)
	return out
}
