package quality

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-matcher/internal/parsing"
	"github.com/jonathan/resume-matcher/internal/types"
)

// minBulletWords is the shortest bullet kept after a dangling tail is trimmed
const minBulletWords = 3

// phraseRule rewrites a cliché. An empty replacement strips the phrase.
type phraseRule struct {
	phrase      string
	replacement string
}

// bannedPhrases is matched case-insensitively on word boundaries, longest first
var bannedPhrases = []phraseRule{
	{"proven track record of", "record of"},
	{"think outside the box", "solve problems creatively"},
	{"passionate about", "focused on"},
	{"responsible for", ""},
	{"results-driven", ""},
	{"results driven", ""},
	{"detail-oriented", ""},
	{"detail oriented", ""},
	{"highly motivated", ""},
	{"self-starter", ""},
	{"go-getter", ""},
	{"hard-working", ""},
	{"hardworking", ""},
	{"team player", "collaborator"},
	{"best-in-class", ""},
	{"world-class", ""},
	{"cutting-edge", "modern"},
	{"synergy", "collaboration"},
	{"synergies", "collaboration"},
	{"leveraged", "used"},
	{"leveraging", "using"},
	{"utilized", "used"},
	{"utilizing", "using"},
	{"utilize", "use"},
	{"in order to", "to"},
	{"dynamic", ""},
}

// Gate strips cliché phrasing from every free-text field, trims bullets that end
// mid-clause and demotes sentence-length skill items. Every change is reported
// as a QualityIssue.
func Gate(d *types.TailoredDraft) (*types.TailoredDraft, []types.QualityIssue) {
	out := d.Clone()
	issues := []types.QualityIssue{}

	fix := func(location, text string) string {
		fixed, found := stripBannedPhrases(text)
		for _, phrase := range found {
			issues = append(issues, types.QualityIssue{
				Type:      types.IssueBannedPhrase,
				Location:  location,
				Detail:    phrase,
				AutoFixed: true,
			})
		}
		return fixed
	}

	out.Summary = fix("summary", out.Summary)
	out.TailoredResume.Headline = fix("tailored_resume.headline", out.TailoredResume.Headline)
	out.TailoredResume.Summary = fix("tailored_resume.summary", out.TailoredResume.Summary)

	for i := range out.TailoredResume.Experience {
		entry := &out.TailoredResume.Experience[i]
		bullets := make([]string, 0, len(entry.Bullets))
		for j, b := range entry.Bullets {
			location := bulletLocation(i, j)
			b = fix(location, b)
			trimmed, changed := trimDanglingTail(b)
			if changed {
				issues = append(issues, types.QualityIssue{
					Type:      types.IssueDanglingClause,
					Location:  location,
					Detail:    b,
					AutoFixed: true,
				})
				b = trimmed
			}
			if len(strings.Fields(b)) < minBulletWords {
				issues = append(issues, types.QualityIssue{
					Type:      types.IssueEmptyField,
					Location:  location,
					Detail:    "bullet removed",
					AutoFixed: true,
				})
				continue
			}
			bullets = append(bullets, b)
		}
		entry.Bullets = bullets
	}

	for i := range out.CoverLetter {
		out.CoverLetter[i] = fix(fmt.Sprintf("cover_letter[%d]", i), out.CoverLetter[i])
	}
	out.CoverLetter = dropEmpty(out.CoverLetter)

	for i := range out.BulletRewrites {
		out.BulletRewrites[i].Rewritten = fix(fmt.Sprintf("bullet_rewrites[%d].rewritten", i), out.BulletRewrites[i].Rewritten)
		out.BulletRewrites[i].Notes = fix(fmt.Sprintf("bullet_rewrites[%d].notes", i), out.BulletRewrites[i].Notes)
	}

	for i := range out.KeywordChecklist {
		out.KeywordChecklist[i].Suggestion = fix(fmt.Sprintf("keyword_checklist[%d].suggestion", i), out.KeywordChecklist[i].Suggestion)
	}

	for i := range out.RecruiterFeedback {
		out.RecruiterFeedback[i] = fix(fmt.Sprintf("recruiter_feedback[%d]", i), out.RecruiterFeedback[i])
	}
	out.RecruiterFeedback = dropEmpty(out.RecruiterFeedback)

	for i := range out.ExperienceGaps {
		gap := &out.ExperienceGaps[i]
		gap.Gap = fix(fmt.Sprintf("experience_gaps[%d].gap", i), gap.Gap)
		gap.Suggestion = fix(fmt.Sprintf("experience_gaps[%d].suggestion", i), gap.Suggestion)
	}

	for i := range out.NextActions {
		out.NextActions[i] = fix(fmt.Sprintf("next_actions[%d]", i), out.NextActions[i])
	}
	out.NextActions = dropEmpty(out.NextActions)

	var skillIssues []types.QualityIssue
	out.TailoredResume.Skills, skillIssues = demoteSentenceSkills(out.TailoredResume.Skills)
	issues = append(issues, skillIssues...)

	return out, issues
}

// stripBannedPhrases applies bannedPhrases to text and returns the phrases found
func stripBannedPhrases(text string) (string, []string) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}
	var found []string
	result := text
	for _, rule := range bannedPhrases {
		changed := false
		for {
			lower := strings.ToLower(result)
			if len(lower) != len(result) {
				// offsets into lower would not line up with result
				break
			}
			idx := parsing.IndexPhrase(lower, rule.phrase)
			if idx < 0 {
				break
			}
			result, _ = splice(result, idx, idx+len(rule.phrase), rule.replacement)
			changed = true
		}
		if changed {
			found = append(found, rule.phrase)
		}
	}
	if len(found) == 0 {
		return text, nil
	}
	result = tidy(result)
	if startsUpper(text) {
		result = capitalizeFirst(result)
	}
	return result, found
}

// trimDanglingTail drops trailing conjunctions, prepositions and articles along
// with any trailing comma, colon or dash.
func trimDanglingTail(b string) (string, bool) {
	original := strings.TrimSpace(b)
	words := strings.Fields(original)
	for len(words) > 0 {
		last := words[len(words)-1]
		if strings.Trim(last, ",;:-–—") == "" {
			words = words[:len(words)-1]
			continue
		}
		if !parsing.IsDanglingWord(last) || strings.ContainsAny(last, ".!?") {
			break
		}
		words = words[:len(words)-1]
	}
	trimmed := strings.TrimRight(strings.Join(words, " "), ",;:-–— ")
	return trimmed, trimmed != original
}

// demoteSentenceSkills replaces prose skill items with the dictionary skills they
// mention, or removes them.
func demoteSentenceSkills(categories []types.SkillCategory) ([]types.SkillCategory, []types.QualityIssue) {
	var issues []types.QualityIssue
	seen := make(map[string]bool)
	for _, cat := range categories {
		for _, item := range cat.Items {
			if !parsing.IsSentenceLike(item) {
				seen[strings.ToLower(strings.TrimSpace(item))] = true
			}
		}
	}

	out := make([]types.SkillCategory, 0, len(categories))
	for i, cat := range categories {
		items := make([]string, 0, len(cat.Items))
		for j, item := range cat.Items {
			if !parsing.IsSentenceLike(item) {
				items = append(items, item)
				continue
			}
			var demoted []string
			for _, skill := range parsing.FindKnownSkills(item) {
				if key := strings.ToLower(skill); !seen[key] {
					seen[key] = true
					demoted = append(demoted, skill)
				}
			}
			detail := fmt.Sprintf("removed %q", item)
			if len(demoted) > 0 {
				detail = fmt.Sprintf("replaced %q with %s", item, strings.Join(demoted, ", "))
			}
			issues = append(issues, types.QualityIssue{
				Type:      types.IssueSentenceAsSkill,
				Location:  fmt.Sprintf("tailored_resume.skills[%d].items[%d]", i, j),
				Detail:    detail,
				AutoFixed: true,
			})
			items = append(items, demoted...)
		}
		if len(items) == 0 {
			if len(cat.Items) > 0 {
				issues = append(issues, types.QualityIssue{
					Type:      types.IssueEmptyField,
					Location:  fmt.Sprintf("tailored_resume.skills[%d]", i),
					Detail:    "category removed",
					AutoFixed: true,
				})
			}
			continue
		}
		out = append(out, types.SkillCategory{Category: cat.Category, Items: items})
	}
	return out, issues
}

func dropEmpty(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item) != "" {
			out = append(out, item)
		}
	}
	return out
}
