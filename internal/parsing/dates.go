package parsing

import (
	"regexp"
	"strings"
)

const monthPattern = `(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|jul(?:y)?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)`

const yearPattern = `(?:19|20)\d{2}`

const singleDatePattern = `(?:` + monthPattern + `\.?,?\s+` + yearPattern + `|\d{1,2}[/.]` + yearPattern + `|` + yearPattern + `)`

const openEndPattern = `(?:present|current|currently|now|today|date|ongoing)`

var (
	dateRangeRegex  = regexp.MustCompile(`(?i)\b(` + singleDatePattern + `)\s*(?:-|–|—|to|until|till)\s*(` + singleDatePattern + `|` + openEndPattern + `)\b`)
	singleDateRegex = regexp.MustCompile(`(?i)\b(` + singleDatePattern + `)\b`)
	yearRegex       = regexp.MustCompile(`\b` + yearPattern + `\b`)
	openEndRegex    = regexp.MustCompile(`(?i)\b(?:present|current)\b`)
)

// DateRange is a start/end pair as written in the source text
type DateRange struct {
	Start string
	End   string
}

// ExtractDateRange finds the first date range in line. It returns the range, the
// line with the range removed and separators trimmed, and whether a range was found.
// A lone date ("2019", "May 2020") is returned as an end date.
func ExtractDateRange(line string) (DateRange, string, bool) {
	if loc := dateRangeRegex.FindStringSubmatchIndex(line); loc != nil {
		dr := DateRange{
			Start: normalizeDate(line[loc[2]:loc[3]]),
			End:   normalizeDate(line[loc[4]:loc[5]]),
		}
		rest := line[:loc[0]] + " " + line[loc[1]:]
		return dr, trimSeparators(rest), true
	}
	if loc := singleDateRegex.FindStringSubmatchIndex(line); loc != nil {
		dr := DateRange{End: normalizeDate(line[loc[2]:loc[3]])}
		rest := line[:loc[0]] + " " + line[loc[1]:]
		return dr, trimSeparators(rest), true
	}
	return DateRange{}, line, false
}

// HasYearOrOpenEnd reports whether line carries a four-digit year or a
// "present"/"current" marker. Such lines are never section headers.
func HasYearOrOpenEnd(line string) bool {
	return yearRegex.MatchString(line) || openEndRegex.MatchString(line)
}

func normalizeDate(s string) string {
	s = strings.TrimSpace(strings.TrimRight(s, ".,"))
	s = strings.Join(strings.Fields(s), " ")
	lower := strings.ToLower(s)
	switch lower {
	case "present", "current", "currently", "now", "today", "date", "ongoing":
		return "Present"
	}
	if len(s) > 0 {
		return strings.ToUpper(s[:1]) + s[1:]
	}
	return s
}

// trimSeparators collapses whitespace and strips separator glyphs and empty
// parentheses left behind after a date has been cut out of a line.
func trimSeparators(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	for _, empty := range []string{"( )", "()", "[ ]", "[]"} {
		s = strings.ReplaceAll(s, empty, "")
	}
	s = strings.Join(strings.Fields(s), " ")
	const seps = " |•·—–-,;:()[]/@"
	for {
		trimmed := strings.Trim(s, seps)
		if trimmed == s {
			break
		}
		s = trimmed
	}
	return s
}
