// Package scoring computes match scores between a candidate and a job: a cheap
// token overlap estimate and the five-dimension radar score.
package scoring

import (
	"math"
	"strings"

	"github.com/jonathan/resume-matcher/internal/parsing"
	"github.com/jonathan/resume-matcher/internal/types"
)

const (
	// NeutralScore is returned when the job text has no significant tokens to match against
	NeutralScore = 50
	// PromptThreshold is the score below which the user is asked for more input
	PromptThreshold = 25

	unigramWeight = 0.8
	bigramWeight  = 0.2
)

// QuickMatch estimates how well resumeText covers jobText on a 0-100 scale from
// significant-token overlap plus a bonus for matching adjacent token pairs.
// Tokens match only as whole tokens, so "java" never matches "javascript".
func QuickMatch(resumeText, jobText string) int {
	score, _, _ := quickMatch(resumeText, jobText)
	return score
}

// QuickScore is QuickMatch with its label and the matched and missing job terms
func QuickScore(resumeText, jobText string) types.QuickScoreResult {
	score, matched, missing := quickMatch(resumeText, jobText)
	return types.QuickScoreResult{
		Score:          score,
		Label:          QuickLabel(score),
		Matched:        matched,
		Missing:        missing,
		NeedsMoreInput: score < PromptThreshold,
	}
}

// QuickLabel maps a quick score to its band
func QuickLabel(score int) types.QuickLabel {
	switch {
	case score >= 70:
		return types.QuickStrong
	case score >= 45:
		return types.QuickGood
	case score >= PromptThreshold:
		return types.QuickFair
	default:
		return types.QuickLow
	}
}

func quickMatch(resumeText, jobText string) (int, []string, []string) {
	matched, missing := []string{}, []string{}
	if strings.TrimSpace(resumeText) == "" || strings.TrimSpace(jobText) == "" {
		return 0, matched, missing
	}

	jobTokens := parsing.SignificantTokens(jobText)
	jobTerms := uniqueOrdered(jobTokens)
	if len(jobTerms) == 0 {
		return NeutralScore, matched, missing
	}

	resumeTokens := parsing.SignificantTokens(resumeText)
	resumeSet := toSet(resumeTokens)
	for _, term := range jobTerms {
		if resumeSet[term] {
			matched = append(matched, term)
		} else {
			missing = append(missing, term)
		}
	}
	unigram := float64(len(matched)) / float64(len(jobTerms))

	jobBigrams := uniqueOrdered(bigrams(jobTokens))
	if len(jobBigrams) == 0 {
		return clampScore(100 * unigram), matched, missing
	}
	resumeBigrams := toSet(bigrams(resumeTokens))
	hits := 0
	for _, bg := range jobBigrams {
		if resumeBigrams[bg] {
			hits++
		}
	}
	bigram := float64(hits) / float64(len(jobBigrams))
	return clampScore(100 * (unigramWeight*unigram + bigramWeight*bigram)), matched, missing
}

func bigrams(tokens []string) []string {
	if len(tokens) < 2 {
		return nil
	}
	out := make([]string, 0, len(tokens)-1)
	for i := 0; i+1 < len(tokens); i++ {
		out = append(out, tokens[i]+" "+tokens[i+1])
	}
	return out
}

func uniqueOrdered(items []string) []string {
	seen := make(map[string]bool, len(items))
	var out []string
	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			out = append(out, item)
		}
	}
	return out
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}

func clampScore(v float64) int {
	n := int(math.Round(v))
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}
