package scoring

import (
	"strings"

	"github.com/jonathan/resume-matcher/internal/parsing"
	"github.com/jonathan/resume-matcher/internal/types"
)

// draftSkillsCategory names the single category DraftFromProfile emits
const draftSkillsCategory = "Skills"

// CandidateText is the scoring-text view of a profile: every field the scorer
// reads, one per line.
func CandidateText(c *types.CandidateProfile) string {
	if c == nil {
		return ""
	}
	var b strings.Builder
	write := func(s string) {
		if s = strings.TrimSpace(s); s != "" {
			b.WriteString(s)
			b.WriteByte('\n')
		}
	}
	write(c.Name)
	write(c.Headline)
	write(c.Summary)
	write(strings.Join(c.Skills, ", "))
	for _, e := range c.Experience {
		write(e.Title)
		write(e.Company)
		for _, bullet := range e.Bullets {
			write(bullet)
		}
	}
	for _, e := range c.Education {
		write(e.Degree)
		write(e.School)
	}
	for _, p := range c.Projects {
		write(p.Name)
		write(p.Description)
		write(strings.Join(p.Technologies, ", "))
	}
	return b.String()
}

// DraftText is the scoring-text view of a draft's tailored résumé
func DraftText(d *types.TailoredDraft) string {
	return CandidateText(ProfileFromDraft(d, nil))
}

// ProfileFromDraft rebuilds a CandidateProfile from a draft's tailored résumé so
// AI output goes through the same scoring path as the original résumé. Contact
// details, links and projects are not part of a draft and come from base; any
// résumé section the draft leaves out is also taken from base.
func ProfileFromDraft(d *types.TailoredDraft, base *types.CandidateProfile) *types.CandidateProfile {
	out := types.NewCandidateProfile()
	if base == nil {
		base = types.NewCandidateProfile()
	}
	out.Email, out.Phone, out.Location = base.Email, base.Phone, base.Location
	out.Links = append(out.Links, base.Links...)
	out.Projects = append(out.Projects, base.Projects...)

	if d == nil {
		d = &types.TailoredDraft{}
	}
	r := d.TailoredResume
	out.Name = firstNonEmpty(r.Name, base.Name)
	out.Headline = firstNonEmpty(r.Headline, base.Headline)
	out.Summary = firstNonEmpty(r.Summary, base.Summary)

	if skills := parsing.DedupeFold(r.AllSkills()); len(skills) > 0 {
		out.Skills = skills
	} else {
		out.Skills = append(out.Skills, base.Skills...)
	}
	if len(r.Experience) > 0 {
		for _, e := range r.Experience {
			e.Bullets = append([]string{}, e.Bullets...)
			out.Experience = append(out.Experience, e)
		}
	} else {
		for _, e := range base.Experience {
			e.Bullets = append([]string{}, e.Bullets...)
			out.Experience = append(out.Experience, e)
		}
	}
	if len(r.Education) > 0 {
		out.Education = append(out.Education, r.Education...)
	} else {
		out.Education = append(out.Education, base.Education...)
	}
	out.EnsureSlices()
	return out
}

// DraftFromProfile wraps a profile as a draft whose tailored résumé mirrors it.
// ProfileFromDraft(DraftFromProfile(p), p) scores exactly as p does.
func DraftFromProfile(p *types.CandidateProfile) *types.TailoredDraft {
	d := (&types.TailoredDraft{}).Clone()
	if p == nil {
		return d
	}
	d.TailoredResume.Name = p.Name
	d.TailoredResume.Headline = p.Headline
	d.TailoredResume.Summary = p.Summary
	if len(p.Skills) > 0 {
		d.TailoredResume.Skills = []types.SkillCategory{{
			Category: draftSkillsCategory,
			Items:    append([]string{}, p.Skills...),
		}}
	}
	for _, e := range p.Experience {
		e.Bullets = append([]string{}, e.Bullets...)
		d.TailoredResume.Experience = append(d.TailoredResume.Experience, e)
	}
	d.TailoredResume.Education = append(d.TailoredResume.Education, p.Education...)
	return d
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
