// Package types provides type definitions for structured data used throughout the resume-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// GapSeverity grades how much an experience gap matters for the target role
type GapSeverity string

// Gap severities
const (
	SeverityLow    GapSeverity = "low"
	SeverityMedium GapSeverity = "medium"
	SeverityHigh   GapSeverity = "high"
)

// TailoredDraft is the candidate-specific bundle authored by the external generator.
// Every field is untrusted and may be absent.
type TailoredDraft struct {
	Summary           string          `json:"summary"`
	TailoredResume    TailoredResume  `json:"tailored_resume"`
	CoverLetter       []string        `json:"cover_letter"`
	KeywordChecklist  []KeywordCheck  `json:"keyword_checklist"`
	RecruiterFeedback []string        `json:"recruiter_feedback"`
	BulletRewrites    []BulletRewrite `json:"bullet_rewrites"`
	ExperienceGaps    []ExperienceGap `json:"experience_gaps"`
	NextActions       []string        `json:"next_actions"`
}

// TailoredResume is the résumé portion of a draft
type TailoredResume struct {
	Name       string            `json:"name,omitempty"`
	Headline   string            `json:"headline,omitempty"`
	Summary    string            `json:"summary,omitempty"`
	Skills     []SkillCategory   `json:"skills"`
	Experience []ExperienceEntry `json:"experience"`
	Education  []EducationEntry  `json:"education"`
}

// SkillCategory groups skills under a heading such as "Languages" or "Tools"
type SkillCategory struct {
	Category string   `json:"category"`
	Items    []string `json:"items"`
}

// KeywordCheck records whether a job keyword is evidenced in the tailored résumé
type KeywordCheck struct {
	Keyword    string `json:"keyword"`
	Found      bool   `json:"found"`
	Suggestion string `json:"suggestion,omitempty"`
}

// BulletRewrite pairs an original bullet with its tailored rewrite
type BulletRewrite struct {
	Original  string `json:"original"`
	Rewritten string `json:"rewritten"`
	Notes     string `json:"notes,omitempty"`
	Section   string `json:"section,omitempty"`
}

// ExperienceGap is a gap between the candidate and the role, with advice
type ExperienceGap struct {
	Gap        string      `json:"gap"`
	Suggestion string      `json:"suggestion,omitempty"`
	Severity   GapSeverity `json:"severity"`
}

// Clone returns a deep copy with every slice non-nil.
// Quality passes operate on clones so the caller's value is never mutated.
func (d *TailoredDraft) Clone() *TailoredDraft {
	if d == nil {
		out := &TailoredDraft{}
		out.normalize()
		return out
	}
	out := &TailoredDraft{
		Summary:           d.Summary,
		CoverLetter:       cloneStrings(d.CoverLetter),
		KeywordChecklist:  append([]KeywordCheck{}, d.KeywordChecklist...),
		RecruiterFeedback: cloneStrings(d.RecruiterFeedback),
		BulletRewrites:    append([]BulletRewrite{}, d.BulletRewrites...),
		ExperienceGaps:    append([]ExperienceGap{}, d.ExperienceGaps...),
		NextActions:       cloneStrings(d.NextActions),
	}
	out.TailoredResume = TailoredResume{
		Name:      d.TailoredResume.Name,
		Headline:  d.TailoredResume.Headline,
		Summary:   d.TailoredResume.Summary,
		Skills:    make([]SkillCategory, 0, len(d.TailoredResume.Skills)),
		Education: append([]EducationEntry{}, d.TailoredResume.Education...),
	}
	for _, cat := range d.TailoredResume.Skills {
		out.TailoredResume.Skills = append(out.TailoredResume.Skills, SkillCategory{
			Category: cat.Category,
			Items:    cloneStrings(cat.Items),
		})
	}
	out.TailoredResume.Experience = make([]ExperienceEntry, 0, len(d.TailoredResume.Experience))
	for _, exp := range d.TailoredResume.Experience {
		exp.Bullets = cloneStrings(exp.Bullets)
		out.TailoredResume.Experience = append(out.TailoredResume.Experience, exp)
	}
	out.normalize()
	return out
}

func (d *TailoredDraft) normalize() {
	if d.CoverLetter == nil {
		d.CoverLetter = []string{}
	}
	if d.KeywordChecklist == nil {
		d.KeywordChecklist = []KeywordCheck{}
	}
	if d.RecruiterFeedback == nil {
		d.RecruiterFeedback = []string{}
	}
	if d.BulletRewrites == nil {
		d.BulletRewrites = []BulletRewrite{}
	}
	if d.ExperienceGaps == nil {
		d.ExperienceGaps = []ExperienceGap{}
	}
	if d.NextActions == nil {
		d.NextActions = []string{}
	}
	if d.TailoredResume.Skills == nil {
		d.TailoredResume.Skills = []SkillCategory{}
	}
	if d.TailoredResume.Experience == nil {
		d.TailoredResume.Experience = []ExperienceEntry{}
	}
	if d.TailoredResume.Education == nil {
		d.TailoredResume.Education = []EducationEntry{}
	}
}

// AllSkills flattens the categorised skills in order
func (r *TailoredResume) AllSkills() []string {
	var out []string
	for _, cat := range r.Skills {
		out = append(out, cat.Items...)
	}
	return out
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
