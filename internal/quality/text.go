package quality

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/jonathan/resume-matcher/internal/parsing"
)

var (
	spaceBeforePunct = regexp.MustCompile(`\s+([,.;:!?])`)
	repeatedComma    = regexp.MustCompile(`,(?:\s*,)+`)
	leadingPunct     = regexp.MustCompile(`^[\s,;:.\-–—]+`)
	emptyParens      = regexp.MustCompile(`\(\s*\)`)
)

// tokenSet is the set of non-stopword tokens of s
func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range parsing.Tokenize(s) {
		if !parsing.IsStopword(tok) {
			set[tok] = true
		}
	}
	return set
}

// jaccard is |a ∩ b| / |a ∪ b|; two empty sets are identical
func jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	inter := 0
	for tok := range a {
		if b[tok] {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}

// splitSentences splits on terminal punctuation followed by whitespace
func splitSentences(s string) []string {
	var out []string
	start := 0
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		if !strings.ContainsRune(".!?", runes[i]) {
			continue
		}
		if i+1 < len(runes) && !unicode.IsSpace(runes[i+1]) {
			continue
		}
		if sentence := strings.TrimSpace(string(runes[start : i+1])); sentence != "" {
			out = append(out, sentence)
		}
		start = i + 1
	}
	if tail := strings.TrimSpace(string(runes[start:])); tail != "" {
		out = append(out, tail)
	}
	return out
}

// tidy repairs the spacing and punctuation left behind after a phrase is cut out
func tidy(s string) string {
	s = emptyParens.ReplaceAllString(s, "")
	s = strings.Join(strings.Fields(s), " ")
	s = spaceBeforePunct.ReplaceAllString(s, "$1")
	s = repeatedComma.ReplaceAllString(s, ",")
	s = leadingPunct.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// splice replaces s[start:end] with replacement. An "a" or "an" directly before
// the cut is re-picked for the word that now follows it; articles elsewhere are
// left alone. The returned offset is just past the replacement.
func splice(s string, start, end int, replacement string) (string, int) {
	out := s[:start] + replacement + s[end:]
	after := start + len(replacement)

	before := strings.TrimRight(out[:start], " ")
	wordStart := strings.LastIndexByte(before, ' ') + 1
	article := before[wordStart:]
	if !strings.EqualFold(article, "a") && !strings.EqualFold(article, "an") {
		return out, after
	}
	next := strings.Fields(out[start:])
	if len(next) == 0 {
		return out, after
	}
	want, ok := articleFor(next[0])
	if !ok {
		return out, after
	}
	if startsUpper(article) {
		want = capitalizeFirst(want)
	}
	out = out[:wordStart] + want + out[wordStart+len(article):]
	return out, after + len(want) - len(article)
}

// articleFor picks "a" or "an" for word. Words whose sound the spelling does not
// settle (acronyms, a leading h or u, digits) report false.
func articleFor(word string) (string, bool) {
	word = strings.TrimLeftFunc(word, func(r rune) bool { return !unicode.IsLetter(r) && !unicode.IsDigit(r) })
	runes := []rune(word)
	if len(runes) == 0 {
		return "", false
	}
	if len(runes) > 1 && unicode.IsUpper(runes[0]) && unicode.IsUpper(runes[1]) {
		return "", false
	}
	lower := strings.ToLower(word)
	switch {
	case strings.HasPrefix(lower, "one"), strings.HasPrefix(lower, "eu"),
		strings.HasPrefix(lower, "uni"), strings.HasPrefix(lower, "use"), strings.HasPrefix(lower, "usu"):
		return "a", true
	case strings.HasPrefix(lower, "h"), strings.HasPrefix(lower, "u"), unicode.IsDigit(runes[0]):
		return "", false
	case strings.ContainsRune("aeio", []rune(lower)[0]):
		return "an", true
	default:
		return "a", true
	}
}

func capitalizeFirst(s string) string {
	for i, r := range s {
		return s[:i] + string(unicode.ToUpper(r)) + s[i+len(string(r)):]
	}
	return s
}

func startsUpper(s string) bool {
	for _, r := range s {
		return unicode.IsUpper(r)
	}
	return false
}

func bulletLocation(entry, bullet int) string {
	return fmt.Sprintf("tailored_resume.experience[%d].bullets[%d]", entry, bullet)
}
