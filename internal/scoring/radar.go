package scoring

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jonathan/resume-matcher/internal/parsing"
	"github.com/jonathan/resume-matcher/internal/types"
)

// Radar category weights; they sum to 1
const (
	hardSkillsWeight = 0.35
	softSkillsWeight = 0.10
	measurableWeight = 0.15
	keywordsWeight   = 0.25
	formattingWeight = 0.15
)

// Label bands. There is no band below Moderate.
const (
	strongThreshold = 75
	goodThreshold   = 55
)

const (
	preferredSkillWeight = 0.5
	// quantifiedTarget is the share of quantified bullets that earns a full measurable score
	quantifiedTarget = 0.5
	shortBulletChars = 40
	longBulletChars  = 220
	maxSkillBlockers = 5
)

var quantifiedRegex = regexp.MustCompile(`\d|[%$£€]|\b(?:doubled|tripled|halved)\b`)

// Label maps a radar score to its band
func Label(score int) types.MatchLabel {
	switch {
	case score >= strongThreshold:
		return types.LabelStrong
	case score >= goodThreshold:
		return types.LabelGood
	default:
		return types.LabelModerate
	}
}

// Score computes the radar score of candidate against job. Both arguments may be
// nil; a nil profile scores as an empty one.
func Score(candidate *types.CandidateProfile, job *types.JobProfile) types.ScoreResult {
	if candidate == nil {
		candidate = types.NewCandidateProfile()
	}
	if job == nil {
		job = types.NewJobProfile()
	}
	text := strings.ToLower(CandidateText(candidate))

	hard, missingRequired := hardSkillScore(candidate, job, text)
	breakdown := map[string]int{
		types.CategoryHardSkills: hard,
		types.CategorySoftSkills: softSkillScore(job, text),
		types.CategoryMeasurable: measurableScore(candidate),
		types.CategoryKeywords:   keywordScore(job, text),
		types.CategoryFormatting: formattingScore(candidate),
	}
	overall := hardSkillsWeight*float64(breakdown[types.CategoryHardSkills]) +
		softSkillsWeight*float64(breakdown[types.CategorySoftSkills]) +
		measurableWeight*float64(breakdown[types.CategoryMeasurable]) +
		keywordsWeight*float64(breakdown[types.CategoryKeywords]) +
		formattingWeight*float64(breakdown[types.CategoryFormatting])

	score := clampScore(overall)
	return types.ScoreResult{
		Score:     score,
		Label:     Label(score),
		Breakdown: breakdown,
		Blockers:  blockers(candidate, breakdown, missingRequired),
	}
}

// MissingSkills returns the job's required then preferred skills that the
// candidate does not evidence, in job order.
func MissingSkills(candidate *types.CandidateProfile, job *types.JobProfile) (required, preferred []string) {
	if candidate == nil {
		candidate = types.NewCandidateProfile()
	}
	if job == nil {
		return nil, nil
	}
	text := strings.ToLower(CandidateText(candidate))
	skills := skillSet(candidate)
	for _, s := range job.RequiredSkills {
		if !hasSkill(s, skills, text) {
			required = append(required, s)
		}
	}
	for _, s := range job.PreferredSkills {
		if !hasSkill(s, skills, text) {
			preferred = append(preferred, s)
		}
	}
	return required, preferred
}

func hardSkillScore(c *types.CandidateProfile, job *types.JobProfile, text string) (int, []string) {
	if len(job.RequiredSkills) == 0 && len(job.PreferredSkills) == 0 {
		return NeutralScore, nil
	}
	skills := skillSet(c)
	var missing []string
	total, matched := 0.0, 0.0
	for _, s := range job.RequiredSkills {
		total++
		if hasSkill(s, skills, text) {
			matched++
		} else {
			missing = append(missing, s)
		}
	}
	for _, s := range job.PreferredSkills {
		total += preferredSkillWeight
		if hasSkill(s, skills, text) {
			matched += preferredSkillWeight
		}
	}
	return clampScore(100 * matched / total), missing
}

// softSkillScore blends coverage of soft skills the job names with the overall
// soft-skill signal in the résumé.
func softSkillScore(job *types.JobProfile, text string) int {
	jobText := strings.ToLower(strings.Join(append(append([]string{}, job.Responsibilities...), job.Keywords...), " "))
	present, wanted, covered := 0, 0, 0
	for _, term := range parsing.SoftSkills() {
		inResume := parsing.IndexPhrase(text, term) >= 0
		if inResume {
			present++
		}
		if parsing.IndexPhrase(jobText, term) >= 0 {
			wanted++
			if inResume {
				covered++
			}
		}
	}
	signal := 20.0
	if present > 0 {
		signal = float64(40 + 15*present)
		if signal > 100 {
			signal = 100
		}
	}
	if wanted == 0 {
		return clampScore(signal)
	}
	return clampScore(0.6*100*float64(covered)/float64(wanted) + 0.4*signal)
}

func measurableScore(c *types.CandidateProfile) int {
	total, quantified := 0, 0
	for _, e := range c.Experience {
		for _, b := range e.Bullets {
			total++
			if quantifiedRegex.MatchString(strings.ToLower(b)) {
				quantified++
			}
		}
	}
	if total == 0 {
		return 0
	}
	density := float64(quantified) / float64(total)
	if density > quantifiedTarget {
		density = quantifiedTarget
	}
	return clampScore(100 * density / quantifiedTarget)
}

func keywordScore(job *types.JobProfile, text string) int {
	keywords := job.Keywords
	if len(keywords) == 0 {
		keywords = append(append([]string{}, job.RequiredSkills...), job.PreferredSkills...)
	}
	keywords = parsing.DedupeFold(keywords)
	if len(keywords) == 0 {
		return NeutralScore
	}
	hits := 0
	for _, k := range keywords {
		if parsing.IndexPhrase(text, strings.ToLower(k)) >= 0 {
			hits++
		}
	}
	return clampScore(100 * float64(hits) / float64(len(keywords)))
}

// formattingScore awards points for the structural elements recruiters and ATS parsers expect
func formattingScore(c *types.CandidateProfile) int {
	points := 0
	if c.Name != "" {
		points += 10
	}
	if c.Email != "" {
		points += 15
	}
	if c.Phone != "" {
		points += 10
	}
	if c.Summary != "" || c.Headline != "" {
		points += 15
	}
	if len(c.Experience) > 0 {
		points += 15
		labelled := true
		for _, e := range c.Experience {
			if e.Title == "" && e.Company == "" {
				labelled = false
			}
		}
		if labelled {
			points += 10
		}
	}
	if avg, ok := averageBulletLength(c); ok && avg >= shortBulletChars && avg <= longBulletChars {
		points += 10
	}
	if len(c.Skills) > 0 {
		points += 10
	}
	if len(c.Education) > 0 {
		points += 5
	}
	return points
}

func averageBulletLength(c *types.CandidateProfile) (float64, bool) {
	total, n := 0, 0
	for _, e := range c.Experience {
		for _, b := range e.Bullets {
			total += len([]rune(b))
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return float64(total) / float64(n), true
}

func blockers(c *types.CandidateProfile, breakdown map[string]int, missingRequired []string) []string {
	out := []string{}
	for i, s := range missingRequired {
		if i == maxSkillBlockers {
			break
		}
		out = append(out, fmt.Sprintf("Add evidence of %s", s))
	}
	if len(c.Experience) == 0 {
		out = append(out, "Add work experience entries")
	} else if breakdown[types.CategoryMeasurable] < 50 {
		out = append(out, "Quantify achievements: add numbers to more experience bullets")
	}
	if c.Email == "" {
		out = append(out, "Add an email address")
	}
	if c.Phone == "" {
		out = append(out, "Add a phone number")
	}
	if c.Summary == "" && c.Headline == "" {
		out = append(out, "Add a professional summary")
	}
	if avg, ok := averageBulletLength(c); ok && avg < shortBulletChars {
		out = append(out, "Expand short experience bullets with scope and outcome")
	}
	return out
}

func skillSet(c *types.CandidateProfile) map[string]bool {
	set := make(map[string]bool, len(c.Skills))
	for _, s := range c.Skills {
		set[strings.ToLower(parsing.NormalizeSkillName(s))] = true
	}
	return set
}

func hasSkill(skill string, skills map[string]bool, text string) bool {
	if skills[strings.ToLower(parsing.NormalizeSkillName(skill))] {
		return true
	}
	return parsing.IndexPhrase(text, strings.ToLower(skill)) >= 0
}
