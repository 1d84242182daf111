package parsing

import (
	"regexp"
	"strings"
	"unicode"
)

// maxSkillWords is the longest item accepted as a skill; longer items are sentences
const maxSkillWords = 6

var skillSplitter = regexp.MustCompile(`[,;|•·▪●]|\s/\s`)

// extractSkills reads every skills-family section. "Category: a, b" lines keep
// only the items after the colon. When no section yields anything the full text
// is scanned against the skill dictionary.
func extractSkills(sections *Sections, text string) []string {
	var skills []string
	for _, line := range sections.Matching(skillsFamily...) {
		line = stripBullet(line)
		if idx := strings.Index(line, ":"); idx > 0 && wordCount(line[:idx]) <= 4 {
			line = line[idx+1:]
		}
		for _, item := range skillSplitter.Split(line, -1) {
			if item = cleanSkillItem(item); item != "" {
				skills = append(skills, item)
			}
		}
	}
	if len(skills) == 0 {
		skills = FindKnownSkills(text)
	}
	return DedupeFold(skills)
}

func cleanSkillItem(item string) string {
	item = strings.TrimSpace(item)
	item = strings.Trim(item, " .-*–—")
	item = strings.Join(strings.Fields(item), " ")
	if item == "" || len(item) > 60 || wordCount(item) > maxSkillWords {
		return ""
	}
	if strings.IndexFunc(item, unicode.IsLetter) < 0 {
		return ""
	}
	return item
}

// IsSentenceLike reports whether a skill-list item is really prose
func IsSentenceLike(item string) bool {
	item = strings.TrimSpace(item)
	if wordCount(item) > maxSkillWords || len(item) > 60 {
		return true
	}
	return wordCount(item) > 3 && endsWithTerminal(item)
}
