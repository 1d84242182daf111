// Package quality post-processes generated drafts. Its passes run in a fixed
// order (Dedupe, Gate, Validate, Boost); each takes a draft and returns a new one.
package quality

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-matcher/internal/parsing"
	"github.com/jonathan/resume-matcher/internal/types"
)

const (
	// SimilarityThreshold is the token Jaccard similarity at which two bullets count as duplicates
	SimilarityThreshold = 0.8
	// MaxBulletsPerCategory caps same-category bullets within one experience entry
	MaxBulletsPerCategory = 3
	// MaxCoverLetterParagraphs includes the greeting and the signoff
	MaxCoverLetterParagraphs = 5

	defaultGreeting = "Dear Hiring Manager,"
	defaultSignoff  = "Sincerely,"
)

// bulletCategory groups bullets by the kind of work they describe. A bullet
// belongs to the first category with a matching term.
type bulletCategory struct {
	name  string
	terms []string
}

var bulletCategories = []bulletCategory{
	{"leadership", []string{"led", "mentored", "mentoring", "managed", "hired", "coached", "supervised"}},
	{"backend", []string{"backend", "back-end", "api", "apis", "microservice", "microservices", "server", "endpoint", "endpoints"}},
	{"frontend", []string{"frontend", "front-end", "ui", "ux", "react", "css", "web app"}},
	{"data", []string{"data", "analytics", "etl", "pipeline", "pipelines", "dashboard", "dashboards", "sql", "reporting"}},
	{"infrastructure", []string{"infrastructure", "kubernetes", "docker", "terraform", "ci/cd", "deployment", "deployments", "cloud", "aws", "gcp", "azure"}},
	{"testing", []string{"test", "tests", "testing", "qa", "quality assurance"}},
}

var (
	greetingRegex = regexp.MustCompile(`(?i)^(?:dear|hello|hi|greetings|to whom it may concern)\b`)
	signoffRegex  = regexp.MustCompile(`(?i)^(?:sincerely|yours sincerely|yours faithfully|yours truly|best regards|kind regards|warm regards|regards|best wishes|best|respectfully|thank you|thanks|with gratitude)\b`)
)

// maxSalutationWords bounds greeting and signoff paragraphs; longer paragraphs are body text
const maxSalutationWords = 12

// Dedupe removes near-duplicate and over-represented bullets, duplicate skills and
// bullet rewrites, and normalises the cover letter to one greeting, at most
// three body paragraphs and one signoff. Dedupe(Dedupe(d)) equals Dedupe(d).
func Dedupe(d *types.TailoredDraft) *types.TailoredDraft {
	out := d.Clone()
	for i := range out.TailoredResume.Experience {
		out.TailoredResume.Experience[i].Bullets = dedupeBullets(out.TailoredResume.Experience[i].Bullets)
	}
	out.TailoredResume.Skills = dedupeSkills(out.TailoredResume.Skills)
	out.BulletRewrites = dedupeRewrites(out.BulletRewrites)
	out.CoverLetter = collapseCoverLetter(out.CoverLetter, out.TailoredResume.Name)
	return out
}

func dedupeBullets(bullets []string) []string {
	kept := make([]string, 0, len(bullets))
	var keptSets []map[string]bool
	perCategory := make(map[string]int)

	for _, b := range bullets {
		b = strings.TrimSpace(b)
		if b == "" {
			continue
		}
		set := tokenSet(b)
		if nearDuplicate(set, keptSets) {
			continue
		}
		if cat := categorize(b); cat != "" {
			if perCategory[cat] >= MaxBulletsPerCategory {
				continue
			}
			perCategory[cat]++
		}
		kept = append(kept, b)
		keptSets = append(keptSets, set)
	}
	return kept
}

func nearDuplicate(set map[string]bool, kept []map[string]bool) bool {
	for _, other := range kept {
		if jaccard(set, other) >= SimilarityThreshold {
			return true
		}
	}
	return false
}

func categorize(bullet string) string {
	lower := strings.ToLower(bullet)
	for _, cat := range bulletCategories {
		for _, term := range cat.terms {
			if parsing.IndexPhrase(lower, term) >= 0 {
				return cat.name
			}
		}
	}
	return ""
}

func dedupeSkills(categories []types.SkillCategory) []types.SkillCategory {
	out := make([]types.SkillCategory, 0, len(categories))
	seen := make(map[string]bool)
	for _, cat := range categories {
		items := make([]string, 0, len(cat.Items))
		for _, item := range cat.Items {
			item = strings.TrimSpace(item)
			key := strings.ToLower(item)
			if item == "" || seen[key] {
				continue
			}
			seen[key] = true
			items = append(items, item)
		}
		if len(items) == 0 {
			continue
		}
		out = append(out, types.SkillCategory{Category: cat.Category, Items: items})
	}
	return out
}

func dedupeRewrites(rewrites []types.BulletRewrite) []types.BulletRewrite {
	out := make([]types.BulletRewrite, 0, len(rewrites))
	var keptSets []map[string]bool
	for _, r := range rewrites {
		if strings.TrimSpace(r.Rewritten) == "" {
			continue
		}
		set := tokenSet(r.Rewritten)
		if nearDuplicate(set, keptSets) {
			continue
		}
		out = append(out, r)
		keptSets = append(keptSets, set)
	}
	return out
}

// collapseCoverLetter keeps the first greeting, the last signoff and the first
// distinct body paragraphs. A letter with body text but no greeting or signoff
// gets a default one.
func collapseCoverLetter(paragraphs []string, name string) []string {
	greeting, signoff := "", ""
	var body []string
	var bodySets []map[string]bool

	for _, p := range paragraphs {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		short := len(strings.Fields(p)) <= maxSalutationWords
		switch {
		case short && greetingRegex.MatchString(p):
			if greeting == "" {
				greeting = p
			}
		case short && signoffRegex.MatchString(p):
			signoff = p
		default:
			set := tokenSet(p)
			if nearDuplicate(set, bodySets) {
				continue
			}
			body = append(body, p)
			bodySets = append(bodySets, set)
		}
	}

	if greeting == "" && signoff == "" && len(body) == 0 {
		return []string{}
	}
	if greeting == "" {
		greeting = defaultGreeting
	}
	if signoff == "" {
		signoff = defaultSignoff
		if name = strings.TrimSpace(name); name != "" {
			signoff += "\n" + name
		}
	}
	if maxBody := MaxCoverLetterParagraphs - 2; len(body) > maxBody {
		body = body[:maxBody]
	}
	out := make([]string, 0, len(body)+2)
	out = append(out, greeting)
	out = append(out, body...)
	return append(out, signoff)
}
