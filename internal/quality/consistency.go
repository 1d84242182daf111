package quality

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-matcher/internal/parsing"
	"github.com/jonathan/resume-matcher/internal/scoring"
	"github.com/jonathan/resume-matcher/internal/types"
)

const (
	// absenceWindowWords is how far after an absence cue a present term is looked for
	absenceWindowWords = 5
	// maxTermGapWords bounds gap entries that are little more than a skill name
	maxTermGapWords = 6
)

var absenceCue = regexp.MustCompile(`(?i)\b(?:no|not|lacks?|lacking|missing|without|absent|absence of|doesn't|does not|don't|do not|isn't|is not|never|limited|little|needs? more|gap in)\b`)

var lacksRegex = regexp.MustCompile(`(?i)\blacks?\s+(?:experience|expertise|skills?|knowledge|exposure)\s+(?:in|with|of)\s+([^.,;!?]+)`)

// phraseAction is what happens to a sentence that contains an unsupportive phrase
type phraseAction int

const (
	actionReplace phraseAction = iota
	actionDropSentence
)

type forbiddenRule struct {
	pattern     *regexp.Regexp
	action      phraseAction
	replacement string
}

var forbiddenRules = []forbiddenRule{
	{regexp.MustCompile(`(?i)\bweak match\b`), actionReplace, "partial match"},
	{regexp.MustCompile(`(?i)\bpoor fit\b`), actionReplace, "partial fit"},
	{regexp.MustCompile(`(?i)\bunderqualified\b`), actionReplace, "still building experience"},
	{regexp.MustCompile(`(?i)\bfails to\b`), actionReplace, "does not yet"},
	{regexp.MustCompile(`(?i)\bfailed to\b`), actionReplace, "did not yet"},
	{regexp.MustCompile(`(?i)\bunqualified\b`), actionDropSentence, ""},
	{regexp.MustCompile(`(?i)\bnot (?:a )?(?:good )?fit\b`), actionDropSentence, ""},
	{regexp.MustCompile(`(?i)\bunlikely to (?:be considered|succeed|get)\b`), actionDropSentence, ""},
}

// Validate reconciles the draft's claims with its own tailored résumé: checklist
// keywords that appear in the résumé are marked found, feedback and gaps that
// call a present skill missing are removed, and unsupportive phrasing is
// softened or its sentence dropped.
func Validate(d *types.TailoredDraft) *types.TailoredDraft {
	out := d.Clone()
	text := scoring.DraftText(out)
	present := presentTerms(out, text)

	out.KeywordChecklist = reconcileChecklist(out.KeywordChecklist, text)

	feedback := make([]string, 0, len(out.RecruiterFeedback))
	for _, f := range out.RecruiterFeedback {
		if assertsAbsence(f, present) {
			continue
		}
		if f = softenText(f, text); f != "" {
			feedback = append(feedback, f)
		}
	}
	out.RecruiterFeedback = feedback

	gaps := make([]types.ExperienceGap, 0, len(out.ExperienceGaps))
	for _, g := range out.ExperienceGaps {
		if assertsAbsence(g.Gap, present) || namesPresentTerm(g.Gap, present) {
			continue
		}
		g.Gap = softenText(g.Gap, text)
		g.Suggestion = softenText(g.Suggestion, text)
		if g.Gap == "" {
			continue
		}
		gaps = append(gaps, g)
	}
	out.ExperienceGaps = gaps

	out.Summary = softenText(out.Summary, text)
	actions := make([]string, 0, len(out.NextActions))
	for _, a := range out.NextActions {
		if a = softenText(a, text); a != "" {
			actions = append(actions, a)
		}
	}
	out.NextActions = actions
	return out
}

// ReconcileChecklist marks not-found checklist keywords that occur in the draft's
// tailored résumé as found.
func ReconcileChecklist(d *types.TailoredDraft) *types.TailoredDraft {
	out := d.Clone()
	out.KeywordChecklist = reconcileChecklist(out.KeywordChecklist, scoring.DraftText(out))
	return out
}

func reconcileChecklist(checklist []types.KeywordCheck, text string) []types.KeywordCheck {
	out := make([]types.KeywordCheck, 0, len(checklist))
	for _, k := range checklist {
		if !k.Found && parsing.ContainsPhrase(text, k.Keyword) {
			k.Found = true
			k.Suggestion = ""
		}
		out = append(out, k)
	}
	return out
}

// presentTerms are the skills and keywords the tailored résumé demonstrably contains
func presentTerms(d *types.TailoredDraft, text string) []string {
	var terms []string
	for _, k := range d.KeywordChecklist {
		if parsing.ContainsPhrase(text, k.Keyword) {
			terms = append(terms, k.Keyword)
		}
	}
	terms = append(terms, d.TailoredResume.AllSkills()...)
	terms = append(terms, parsing.FindKnownSkills(text)...)
	return parsing.DedupeFold(terms)
}

// assertsAbsence reports whether s claims a present term is missing: an absence
// cue followed within absenceWindowWords words by the term.
func assertsAbsence(s string, present []string) bool {
	if len(present) == 0 {
		return false
	}
	for _, loc := range absenceCue.FindAllStringIndex(s, -1) {
		window := strings.Fields(s[loc[1]:])
		if len(window) > absenceWindowWords {
			window = window[:absenceWindowWords]
		}
		text := strings.Join(window, " ")
		for _, term := range present {
			if parsing.ContainsTerm(text, term) {
				return true
			}
		}
	}
	return false
}

// namesPresentTerm reports whether a short gap entry is essentially a present skill
func namesPresentTerm(gap string, present []string) bool {
	if len(strings.Fields(gap)) > maxTermGapWords {
		return false
	}
	for _, term := range present {
		if parsing.ContainsTerm(gap, term) {
			return true
		}
	}
	return false
}

// softenText applies forbiddenRules sentence by sentence against the résumé text
func softenText(s, resumeText string) string {
	if strings.TrimSpace(s) == "" {
		return s
	}
	var kept []string
	changed := false
	for _, sentence := range splitSentences(s) {
		softened, drop := softenSentence(sentence, resumeText)
		if drop {
			changed = true
			continue
		}
		if softened != sentence {
			changed = true
		}
		kept = append(kept, softened)
	}
	if !changed {
		return s
	}
	return strings.Join(kept, " ")
}

func softenSentence(sentence, resumeText string) (string, bool) {
	if m := lacksRegex.FindStringSubmatch(sentence); m != nil {
		subject := strings.TrimSpace(m[1])
		if parsing.ContainsPhrase(resumeText, subject) || len(parsing.FindKnownSkills(subject)) > 0 && allPresent(parsing.FindKnownSkills(subject), resumeText) {
			return "", true
		}
	}
	result := sentence
	for _, rule := range forbiddenRules {
		if !rule.pattern.MatchString(result) {
			continue
		}
		if rule.action == actionDropSentence {
			return "", true
		}
		for offset := 0; offset < len(result); {
			loc := rule.pattern.FindStringIndex(result[offset:])
			if loc == nil {
				break
			}
			result, offset = splice(result, offset+loc[0], offset+loc[1], rule.replacement)
		}
	}
	if result != sentence {
		result = tidy(result)
		if startsUpper(sentence) {
			result = capitalizeFirst(result)
		}
	}
	return result, false
}

func allPresent(terms []string, text string) bool {
	for _, t := range terms {
		if !parsing.ContainsPhrase(text, t) {
			return false
		}
	}
	return true
}
