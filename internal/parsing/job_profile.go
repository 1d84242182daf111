package parsing

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-matcher/internal/types"
)

type jobSection int

const (
	jobSectionOther jobSection = iota
	jobSectionRequired
	jobSectionPreferred
	jobSectionResponsibilities
)

// maxJobKeywordBigrams bounds how many repeated bigrams are added to Keywords
const maxJobKeywordBigrams = 10

var (
	titleLabelRegex   = regexp.MustCompile(`(?i)^(?:job\s+title|title|position|role)\s*:\s*(.+)$`)
	companyLabelJob   = regexp.MustCompile(`(?i)^(?:company|employer|organi[sz]ation)\s*:\s*(.+)$`)
	hiringRegex       = regexp.MustCompile(`^([A-Z][\w&.'\- ]{1,60}?)\s+is\s+(?:hiring|looking|seeking)\b`)
	titleAtRegex      = regexp.MustCompile(`^(.+?)\s+(?:at|@)\s+([A-Z].+)$`)
	preferredCue      = regexp.MustCompile(`(?i)\b(?:preferred|nice[- ]to[- ]haves?|bonus(?: points)?|desirable|desired|pluses|good to have)\b`)
	requiredCue       = regexp.MustCompile(`(?i)\b(?:requirements?|required|must[- ]haves?|qualifications|what you(?:'|’)ll need|what you bring|what we(?:'|’)re looking for|who you are|essential)\b`)
	responsibilityCue = regexp.MustCompile(`(?i)\b(?:responsibilit(?:y|ies)|what you(?:'|’)ll do|duties|day[- ]to[- ]day|the role|in this role|you will)\b`)
	seniorityRules    = []struct {
		level   types.SeniorityLevel
		pattern *regexp.Regexp
	}{
		{types.SeniorityExecutive, regexp.MustCompile(`(?i)\b(?:head of|director|vp|vice president|chief|cto|ceo|cfo|coo|cio)\b`)},
		{types.SeniorityLead, regexp.MustCompile(`(?i)\b(?:lead|principal|staff|architect)\b`)},
		{types.SenioritySenior, regexp.MustCompile(`(?i)\b(?:senior|sr)\b`)},
		{types.SeniorityMid, regexp.MustCompile(`(?i)\b(?:mid|mid-level|intermediate)\b`)},
		{types.SeniorityJunior, regexp.MustCompile(`(?i)\b(?:intern|internship|junior|jr|graduate|entry[- ]level|trainee|apprentice)\b`)},
	}
)

// ParseJobProfile extracts a JobProfile from job-description text using section
// cues and the skill dictionary. It never fails; unknown fields stay empty.
func ParseJobProfile(text string) *types.JobProfile {
	profile := types.NewJobProfile()

	var lines []string
	for _, line := range splitLines(text) {
		if line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return profile
	}

	profile.Title, profile.Company = jobTitleAndCompany(lines)
	profile.SeniorityLevel = DetectSeniority(profile.Title)

	var required, preferred []string
	section := jobSectionOther
	for _, raw := range lines {
		line := stripBullet(raw)
		cue, content, isHeading := classifyJobLine(line)
		if isHeading {
			section = cue
			if content == "" {
				continue
			}
			line = content
		}
		switch section {
		case jobSectionRequired:
			required = append(required, jobLineSkills(line)...)
		case jobSectionPreferred:
			preferred = append(preferred, jobLineSkills(line)...)
		case jobSectionResponsibilities:
			if wordCount(line) >= 3 {
				profile.Responsibilities = append(profile.Responsibilities, strings.TrimRight(line, ";"))
			}
		}
	}

	if len(required) == 0 {
		required = FindKnownSkills(text)
	}
	profile.RequiredSkills = NormalizeSkills(required)

	requiredSet := make(map[string]bool, len(profile.RequiredSkills))
	for _, s := range profile.RequiredSkills {
		requiredSet[strings.ToLower(s)] = true
	}
	for _, s := range NormalizeSkills(preferred) {
		if !requiredSet[strings.ToLower(s)] {
			profile.PreferredSkills = append(profile.PreferredSkills, s)
		}
	}

	keywords := append([]string{}, profile.RequiredSkills...)
	keywords = append(keywords, profile.PreferredSkills...)
	keywords = append(keywords, repeatedBigrams(text, maxJobKeywordBigrams)...)
	profile.Keywords = DedupeFold(keywords)
	return profile
}

// DetectSeniority maps title cues to a seniority band
func DetectSeniority(title string) types.SeniorityLevel {
	for _, rule := range seniorityRules {
		if rule.pattern.MatchString(title) {
			return rule.level
		}
	}
	return types.SeniorityUnspecified
}

func jobTitleAndCompany(lines []string) (string, string) {
	title, company := "", ""
	for _, line := range lines {
		if m := titleLabelRegex.FindStringSubmatch(line); m != nil && title == "" {
			title = strings.TrimSpace(m[1])
		}
		if m := companyLabelJob.FindStringSubmatch(line); m != nil && company == "" {
			company = strings.TrimSpace(m[1])
		}
		if m := hiringRegex.FindStringSubmatch(line); m != nil && company == "" {
			company = strings.TrimSpace(m[1])
		}
	}
	if title == "" {
		for _, line := range lines {
			if _, _, heading := classifyJobLine(line); heading {
				continue
			}
			if companyLabelJob.MatchString(line) || wordCount(line) > 12 || isContactLine(line) {
				continue
			}
			title = strings.TrimLeft(line, "# ")
			break
		}
	}
	if m := titleAtRegex.FindStringSubmatch(title); m != nil {
		title = strings.TrimSpace(m[1])
		if company == "" {
			company = trimSeparators(m[2])
		}
	}
	return title, company
}

// classifyJobLine reports whether line opens a job section. For "Required: a, b"
// lines the text after the colon is returned as content.
func classifyJobLine(line string) (jobSection, string, bool) {
	head, content := line, ""
	if idx := strings.Index(line, ":"); idx > 0 {
		head, content = line[:idx], strings.TrimSpace(line[idx+1:])
	}
	head = strings.TrimSpace(strings.TrimLeft(head, "# "))
	if wordCount(head) > 6 || endsWithTerminal(head) {
		return jobSectionOther, "", false
	}
	if head == line && !isTitleCase(head) && !isAllCaps(head) && wordCount(head) > 3 {
		return jobSectionOther, "", false
	}
	switch {
	case preferredCue.MatchString(head):
		return jobSectionPreferred, content, true
	case requiredCue.MatchString(head):
		return jobSectionRequired, content, true
	case responsibilityCue.MatchString(head):
		return jobSectionResponsibilities, content, true
	}
	return jobSectionOther, "", false
}

// jobLineSkills returns dictionary skills on the line plus short comma-list items
func jobLineSkills(line string) []string {
	skills := FindKnownSkills(line)
	items := skillSplitter.Split(line, -1)
	if len(items) < 2 {
		return skills
	}
	var listed []string
	for _, item := range items {
		item = strings.TrimSpace(item)
		item = strings.TrimPrefix(item, "and ")
		item = strings.TrimPrefix(item, "or ")
		item = cleanSkillItem(item)
		if item == "" {
			continue
		}
		if wordCount(item) > 3 {
			// prose, not a list
			return skills
		}
		if hasStopword(item) {
			continue
		}
		listed = append(listed, item)
	}
	return append(skills, listed...)
}

// repeatedBigrams returns significant bigrams occurring at least twice, in first-seen order
func repeatedBigrams(text string, limit int) []string {
	tokens := SignificantTokens(text)
	counts := make(map[string]int)
	var order []string
	for i := 0; i+1 < len(tokens); i++ {
		bigram := tokens[i] + " " + tokens[i+1]
		if counts[bigram] == 0 {
			order = append(order, bigram)
		}
		counts[bigram]++
	}
	var out []string
	for _, bigram := range order {
		if counts[bigram] >= 2 {
			out = append(out, bigram)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

// SignificantTokens tokenizes text and drops stopwords and tokens shorter than three characters
func SignificantTokens(text string) []string {
	var out []string
	for _, tok := range Tokenize(text) {
		if len([]rune(tok)) < 3 || IsStopword(tok) {
			continue
		}
		out = append(out, tok)
	}
	return out
}

func hasStopword(item string) bool {
	for _, tok := range Tokenize(item) {
		if IsStopword(tok) {
			return true
		}
	}
	return false
}
