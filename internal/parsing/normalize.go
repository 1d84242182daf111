package parsing

import (
	"strings"
)

// skillAliases maps lowercase spellings of a skill to its canonical name
var skillAliases = map[string]string{
	"go":                  "Go",
	"golang":              "Go",
	"go lang":             "Go",
	"javascript":          "JavaScript",
	"js":                  "JavaScript",
	"typescript":          "TypeScript",
	"ts":                  "TypeScript",
	"k8s":                 "Kubernetes",
	"kubernetes":          "Kubernetes",
	"react.js":            "React",
	"reactjs":             "React",
	"vue.js":              "Vue",
	"vuejs":               "Vue",
	"node.js":             "Node.js",
	"nodejs":              "Node.js",
	"node":                "Node.js",
	"postgres":            "PostgreSQL",
	"postgresql":          "PostgreSQL",
	"mongo":               "MongoDB",
	"mongodb":             "MongoDB",
	"gcp":                 "GCP",
	"google cloud":        "GCP",
	"aws":                 "AWS",
	"amazon web services": "AWS",
	"sql":                 "SQL",
	"c#":                  "C#",
	"c++":                 "C++",
	"ci/cd":               "CI/CD",
	"graphql":             "GraphQL",
	"github actions":      "GitHub Actions",
}

// maxAcronymLen is the longest all-caps word kept as an acronym (HTML, REST)
const maxAcronymLen = 4

// NormalizeSkillName maps a skill to its canonical spelling. Known aliases win;
// otherwise short all-caps words are kept as acronyms, longer ones and
// lowercase single words are title-cased, and mixed case is left alone.
func NormalizeSkillName(skillName string) string {
	name := strings.TrimSpace(skillName)
	if name == "" {
		return ""
	}
	lower := strings.ToLower(name)
	if canonical, ok := skillAliases[lower]; ok {
		return canonical
	}
	if strings.Contains(name, " ") {
		return name
	}

	upper := strings.ToUpper(name)
	switch {
	case name == upper && name != lower:
		if len([]rune(name)) <= maxAcronymLen {
			return name
		}
		return titleCaseWord(lower)
	case name == lower:
		return titleCaseWord(lower)
	default:
		return name
	}
}

// DedupeFold removes case-insensitive duplicates, keeping the first spelling seen
func DedupeFold(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		key := strings.ToLower(item)
		if item == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
	}
	return out
}

// NormalizeSkills canonicalises skill names and dedupes the result
func NormalizeSkills(skills []string) []string {
	normalized := make([]string, 0, len(skills))
	for _, skill := range skills {
		normalized = append(normalized, NormalizeSkillName(skill))
	}
	return DedupeFold(normalized)
}
