package parsing

import (
	"strings"
)

// HeaderSection is the synthetic label for text that precedes the first header
const HeaderSection = "_header"

// Sections maps a normalised section label to its lines, remembering label order.
// Repeated headers (two-column layouts often print one twice) share a bucket.
type Sections struct {
	order     []string
	lines     map[string][]string
	heuristic map[string]bool
}

// Labels returns the section labels in first-seen order
func (s *Sections) Labels() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Lines returns the lines of one section
func (s *Sections) Lines(label string) []string {
	return s.lines[label]
}

// Degenerate reports whether no header was detected at all
func (s *Sections) Degenerate() bool {
	return len(s.order) == 1
}

// Matching returns the lines of every section whose label contains any of terms,
// concatenated in section order. A heuristic section (short or capitalised line
// outside the vocabulary) directly following a matching section is treated as a
// continuation of it, so a company name printed on its own line does not cut a
// block in two.
func (s *Sections) Matching(terms ...string) []string {
	var out []string
	for _, label := range s.MatchingLabels(terms...) {
		out = append(out, s.lines[label]...)
	}
	return out
}

// MatchingLabels returns the labels Matching would read, in order
func (s *Sections) MatchingLabels(terms ...string) []string {
	var out []string
	inRun := false
	for _, label := range s.order {
		switch {
		case label == HeaderSection:
			inRun = false
		case labelInFamily(label, terms):
			out = append(out, label)
			inRun = true
		case inRun && s.heuristic[label]:
			out = append(out, label)
		default:
			inRun = false
		}
	}
	return out
}

// IsHeuristic reports whether label came from a heuristic rule rather than the vocabulary
func (s *Sections) IsHeuristic(label string) bool {
	return s.heuristic[label]
}

func (s *Sections) add(label, line string) {
	if _, ok := s.lines[label]; !ok {
		s.order = append(s.order, label)
		s.lines[label] = nil
	}
	if line != "" {
		s.lines[label] = append(s.lines[label], line)
	}
}

// headerRule classifies a candidate header line. keepLine marks heuristic
// headers whose text also belongs to the section body (a bare job title printed
// in capitals, for instance).
type headerRule struct {
	name     string
	match    func(line, normalized string) bool
	keepLine bool
}

// headerRules are evaluated in order; the first match wins
var headerRules = []headerRule{
	{name: "vocabulary", match: func(_, n string) bool { return matchSectionVocabulary(n) }},
	{name: "markdown", match: func(l, _ string) bool { return strings.HasPrefix(l, "#") }},
	{name: "colon", match: func(l, n string) bool {
		return strings.HasSuffix(l, ":") && wordCount(n) <= 4 && isAlphaOnly(n)
	}},
	{name: "all-caps", match: func(l, n string) bool {
		return isAllCaps(l) && isAlphaOnly(n) && wordCount(n) <= 4
	}, keepLine: true},
	{name: "short", match: func(l, n string) bool {
		return wordCount(n) <= 3 && isAlphaOnly(l) && isTitleCase(l) && !HasRoleKeyword(l)
	}, keepLine: true},
}

// Segment splits lines into labelled sections
func Segment(lines []string) *Sections {
	sections := &Sections{lines: make(map[string][]string), heuristic: make(map[string]bool)}
	current := HeaderSection
	sections.add(current, "")

	for _, line := range lines {
		if line == "" {
			continue
		}
		if label, keep, ok := classifyHeader(line); ok {
			current = label
			sections.add(current, "")
			if keep {
				sections.heuristic[current] = true
				sections.add(current, line)
			}
			continue
		}
		sections.add(current, line)
	}
	return sections
}

// classifyHeader returns the section label for line when it is a header
func classifyHeader(line string) (string, bool, bool) {
	if isBulletLine(line) || HasYearOrOpenEnd(line) || isContactLine(line) || hasDigit(line) {
		return "", false, false
	}
	if len(line) > 60 {
		return "", false, false
	}
	normalized := normalizeHeader(line)
	if normalized == "" || subheadingDenylist[normalized] {
		return "", false, false
	}
	for _, rule := range headerRules {
		if rule.match(line, normalized) {
			return normalized, rule.keepLine, true
		}
	}
	return "", false, false
}

// normalizeHeader lowercases a header candidate, strips markdown and trailing
// colons, and folds "&" into "and".
func normalizeHeader(line string) string {
	s := strings.TrimSpace(line)
	s = strings.TrimLeft(s, "#")
	s = strings.TrimRight(s, ": ")
	s = strings.ReplaceAll(s, "&", " and ")
	s = strings.ToLower(s)
	return strings.Join(strings.Fields(s), " ")
}

func matchSectionVocabulary(normalized string) bool {
	if sectionVocabulary[normalized] {
		return true
	}
	if strings.HasSuffix(normalized, "s") && sectionVocabulary[strings.TrimSuffix(normalized, "s")] {
		return true
	}
	return sectionVocabulary[normalized+"s"]
}
