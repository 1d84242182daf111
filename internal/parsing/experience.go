package parsing

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-matcher/internal/types"
)

const minBulletChars = 20

var (
	companyLabelRegex = regexp.MustCompile(`(?i)^(?:company|employer|organi[sz]ation|client|hospital|trust)\s*:\s*(.+)$`)
	projectLabelRegex = regexp.MustCompile(`(?i)^project(?:\s+name)?\s*:\s*(.+)$`)
	atSplitRegex      = regexp.MustCompile(`^(.+?)\s+(?:at|@)\s+(.+)$`)
)

// positionSeparators split "Title — Company" style headers, most specific first
var positionSeparators = []string{" — ", " – ", " | ", " - ", " · ", " • ", ", "}

// positionHeader is a parsed "Title — Company (dates)" style line
type positionHeader struct {
	title    string
	company  string
	dates    DateRange
	hasDates bool
}

// experienceLines pools the lines that belong to work history. Sections in the
// experience family come first; any other section (education, skills, summary and
// projects excepted) that contains a position header contributes everything from
// that header onward, which recovers roles that a two-column layout pushed under
// the wrong heading.
func experienceLines(sections *Sections) []string {
	pooled := sections.MatchingLabels(experienceFamily...)
	var pool []string
	for _, label := range pooled {
		pool = append(pool, sections.Lines(label)...)
	}
	skip := make(map[string]bool, len(pooled))
	for _, label := range pooled {
		skip[label] = true
	}

	preamble := true
	for _, label := range sections.Labels() {
		if label != HeaderSection && !sections.IsHeuristic(label) {
			preamble = false
		}
		if skip[label] || labelInFamily(label, educationFamily) || labelInFamily(label, skillsFamily) ||
			labelInFamily(label, summaryFamily) || labelInFamily(label, projectsFamily) {
			continue
		}
		lines := sections.Lines(label)
		for i, line := range lines {
			header, ok := parsePositionHeader(line)
			if !ok {
				continue
			}
			// The name block holds the headline, so only dated roles count there
			if preamble && !header.hasDates {
				continue
			}
			pool = append(pool, lines[i:]...)
			break
		}
	}
	return pool
}

// parsePositionHeader recognises the shapes a role header takes:
// "Title — Company (dates)", "Title — Company, dates", "Title at Company",
// "Company — Title" and a bare title line.
func parsePositionHeader(line string) (positionHeader, bool) {
	if line == "" || isBulletLine(line) || isContactLine(line) || len(line) > 140 {
		return positionHeader{}, false
	}
	if labelLine(line) {
		return positionHeader{}, false
	}

	dates, rest, hasDates := ExtractDateRange(line)
	if hasDates {
		if left, right, sep, ok := splitOnSeparator(rest); ok && isTitleCase(left) {
			if HasRoleKeyword(left) || HasRoleKeyword(right) || sep != ", " {
				h := orient(left, right)
				h.dates, h.hasDates = dates, true
				return h, true
			}
		}
		if m := atSplitRegex.FindStringSubmatch(rest); m != nil && HasRoleKeyword(m[1]) && isTitleCase(m[1]) {
			return positionHeader{title: m[1], company: m[2], dates: dates, hasDates: true}, true
		}
		if HasRoleKeyword(rest) && wordCount(rest) <= 8 && isTitleCase(rest) {
			return positionHeader{title: rest, dates: dates, hasDates: true}, true
		}
		return positionHeader{}, false
	}

	if wordCount(line) > 12 || endsWithTerminal(line) || strings.HasSuffix(line, ",") {
		return positionHeader{}, false
	}
	if m := atSplitRegex.FindStringSubmatch(line); m != nil && HasRoleKeyword(m[1]) && isTitleCase(m[1]) {
		return positionHeader{title: strings.TrimSpace(m[1]), company: strings.TrimSpace(m[2])}, true
	}
	if left, right, _, ok := splitOnSeparator(line); ok && (HasRoleKeyword(left) || HasRoleKeyword(right)) && isTitleCase(left) {
		return orient(left, right), true
	}
	if wordCount(line) <= 6 && HasRoleKeyword(line) && isTitleCase(line) && !strings.Contains(line, ":") {
		return positionHeader{title: line}, true
	}
	return positionHeader{}, false
}

func splitOnSeparator(s string) (string, string, string, bool) {
	for _, sep := range positionSeparators {
		idx := strings.Index(s, sep)
		if idx <= 0 {
			continue
		}
		left := trimSeparators(s[:idx])
		right := trimSeparators(s[idx+len(sep):])
		if left != "" && right != "" {
			return left, right, sep, true
		}
	}
	return "", "", "", false
}

// orient puts the side carrying a role keyword in the title slot
func orient(left, right string) positionHeader {
	if !HasRoleKeyword(left) && HasRoleKeyword(right) {
		return positionHeader{title: right, company: left}
	}
	return positionHeader{title: left, company: right}
}

func labelLine(line string) bool {
	return companyLabelRegex.MatchString(line) || projectLabelRegex.MatchString(line)
}

// standaloneDate reports whether line is a date range with at most a short
// remainder (typically a company or location).
func standaloneDate(line string) (DateRange, string, bool) {
	dates, rest, ok := ExtractDateRange(line)
	if !ok {
		return DateRange{}, "", false
	}
	if rest == "" {
		return dates, rest, true
	}
	if isBulletLine(line) || endsWithTerminal(rest) || startsLower(rest) || IsDanglingWord(lastWord(rest)) {
		return DateRange{}, "", false
	}
	limit := 5
	if dates.Start == "" {
		limit = 3
	}
	if wordCount(rest) > limit {
		return DateRange{}, "", false
	}
	return dates, rest, true
}

// joinDanglingLines re-joins a line that ends in a conjunction or preposition
// with the line after it, unless that line starts something new.
func joinDanglingLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		n := len(out)
		if n > 0 && IsDanglingWord(lastWord(out[n-1])) && !isBulletLine(line) && !labelLine(line) {
			if _, _, isDate := standaloneDate(line); !isDate {
				out[n-1] = out[n-1] + " " + stripBullet(line)
				continue
			}
		}
		out = append(out, line)
	}
	return out
}

// experienceScan is the accumulator threaded through the line fold
type experienceScan struct {
	current types.ExperienceEntry
	open    bool
	pending string
	done    []types.ExperienceEntry
}

func (s experienceScan) closeEntry() experienceScan {
	if s.open {
		s.done = append(s.done, finalizeEntry(s.current))
		s.current = types.ExperienceEntry{}
		s.open = false
	}
	return s
}

func (s experienceScan) openEntry(e types.ExperienceEntry) experienceScan {
	s = s.closeEntry()
	if e.Company == "" && s.pending != "" {
		e.Company = s.pending
	}
	s.pending = ""
	s.current = e
	s.open = true
	return s
}

func (s experienceScan) step(line string) experienceScan {
	if line == "" {
		return s
	}

	if m := companyLabelRegex.FindStringSubmatch(line); m != nil {
		value := strings.TrimSpace(m[1])
		if s.open {
			s.current.Company = value
		} else {
			s.pending = value
		}
		return s
	}
	if m := projectLabelRegex.FindStringSubmatch(line); m != nil {
		value := strings.TrimSpace(m[1])
		if s.open && s.current.Company == "" {
			s.current.Company = value
		}
		s.pending = value
		return s
	}

	if h, ok := parsePositionHeader(line); ok {
		// "Company, dates" followed by the title on its own line is one role
		if s.open && len(s.current.Bullets) == 0 && s.current.Title == "" {
			s.current.Title = h.title
			if s.current.Company == "" {
				s.current.Company = h.company
			}
			if !hasDates(s.current) && h.hasDates {
				s.current.Start, s.current.End = h.dates.Start, h.dates.End
			}
			return s
		}
		return s.openEntry(types.ExperienceEntry{
			Title:   h.title,
			Company: h.company,
			Start:   h.dates.Start,
			End:     h.dates.End,
		})
	}

	if dates, rest, ok := standaloneDate(line); ok {
		if s.open && !hasDates(s.current) {
			s.current.Start, s.current.End = dates.Start, dates.End
			switch {
			case rest != "" && s.current.Company == "":
				s.current.Company = rest
			case rest != "" && s.current.Title == "":
				s.current.Title = rest
			case s.current.Company == "" && s.pending != "":
				s.current.Company = s.pending
			}
			s.pending = ""
			return s
		}
		return s.openEntry(types.ExperienceEntry{Company: rest, Start: dates.Start, End: dates.End})
	}

	glyph := isBulletLine(line)
	text := stripBullet(line)
	if text == "" {
		return s
	}
	if !s.open {
		s = s.openEntry(types.ExperienceEntry{})
	}

	n := len(s.current.Bullets)
	if n == 0 && !glyph && wordCount(text) <= 6 && isTitleCase(text) && !endsWithTerminal(text) {
		switch {
		case s.current.Company == "":
			s.current.Company = text
			return s
		case s.current.Title == "":
			s.current.Title = text
			return s
		}
	}
	if n > 0 && !glyph {
		prev := s.current.Bullets[n-1]
		if (startsLower(text) && !endsWithTerminal(prev)) || strings.HasSuffix(prev, ",") {
			bullets := append([]string{}, s.current.Bullets...)
			bullets[n-1] = prev + " " + text
			s.current.Bullets = bullets
			return s
		}
	}
	s.current.Bullets = append(append([]string{}, s.current.Bullets...), text)
	return s
}

func hasDates(e types.ExperienceEntry) bool {
	return e.Start != "" || e.End != ""
}

// finalizeEntry drops fragments: bullets under minBulletChars or ending mid-clause
func finalizeEntry(e types.ExperienceEntry) types.ExperienceEntry {
	kept := make([]string, 0, len(e.Bullets))
	for _, b := range e.Bullets {
		b = strings.TrimSpace(b)
		if len([]rune(b)) < minBulletChars || IsDanglingWord(lastWord(b)) {
			continue
		}
		kept = append(kept, b)
	}
	e.Bullets = kept
	e.Title = strings.TrimSpace(e.Title)
	e.Company = strings.TrimSpace(e.Company)
	return e
}

// scanExperience folds the pooled lines into entries
func scanExperience(lines []string) []types.ExperienceEntry {
	var state experienceScan
	for _, line := range joinDanglingLines(lines) {
		state = state.step(line)
	}
	state = state.closeEntry()
	return state.done
}

// mergeOrphanHeaders folds a bullet-less, date-less entry that follows a bulleted
// entry back into it as the missing title or company.
func mergeOrphanHeaders(entries []types.ExperienceEntry) []types.ExperienceEntry {
	out := make([]types.ExperienceEntry, 0, len(entries))
	for _, e := range entries {
		n := len(out)
		if n > 0 && len(e.Bullets) == 0 && !hasDates(e) && len(out[n-1].Bullets) > 0 {
			prev := &out[n-1]
			labels := nonEmpty(e.Title, e.Company)
			if (prev.Title == "" || prev.Company == "") && len(labels) > 0 {
				for _, label := range labels {
					switch {
					case prev.Title == "":
						prev.Title = label
					case prev.Company == "":
						prev.Company = label
					}
				}
				continue
			}
		}
		out = append(out, e)
	}
	return out
}

// absorbUntitled appends the bullets of an entry with neither title nor company
// to the entry before it.
func absorbUntitled(entries []types.ExperienceEntry) []types.ExperienceEntry {
	out := make([]types.ExperienceEntry, 0, len(entries))
	for _, e := range entries {
		n := len(out)
		if n > 0 && e.Title == "" && e.Company == "" && len(e.Bullets) > 0 {
			prev := &out[n-1]
			prev.Bullets = append(append([]string{}, prev.Bullets...), e.Bullets...)
			if !hasDates(*prev) {
				prev.Start, prev.End = e.Start, e.End
			}
			continue
		}
		out = append(out, e)
	}
	return out
}

func dropEmpty(entries []types.ExperienceEntry) []types.ExperienceEntry {
	out := make([]types.ExperienceEntry, 0, len(entries))
	for _, e := range entries {
		if e.Title == "" && e.Company == "" && !hasDates(e) && len(e.Bullets) == 0 {
			continue
		}
		if e.Bullets == nil {
			e.Bullets = []string{}
		}
		out = append(out, e)
	}
	return out
}

func extractExperience(sections *Sections) []types.ExperienceEntry {
	entries := scanExperience(experienceLines(sections))
	entries = mergeOrphanHeaders(entries)
	entries = absorbUntitled(entries)
	return dropEmpty(entries)
}

func nonEmpty(values ...string) []string {
	var out []string
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
