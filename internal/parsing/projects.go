package parsing

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-matcher/internal/types"
)

var techLabelRegex = regexp.MustCompile(`(?i)^(?:tech(?:nologies|nology)?|stack|tools|built with)\s*:\s*(.+)$`)

func extractProjects(sections *Sections) []types.ProjectEntry {
	projects := []types.ProjectEntry{}
	var current *types.ProjectEntry

	for _, raw := range sections.Matching(projectsFamily...) {
		glyph := isBulletLine(raw)
		line := stripBullet(raw)
		if line == "" {
			continue
		}
		rawLink := genericURL.FindString(line)
		if rawLink == "" {
			rawLink = gitHubRegex.FindString(line)
		}
		link := NormalizeURL(rawLink)

		if m := techLabelRegex.FindStringSubmatch(line); m != nil && current != nil {
			for _, item := range skillSplitter.Split(m[1], -1) {
				if item = cleanSkillItem(item); item != "" {
					current.Technologies = append(current.Technologies, item)
				}
			}
			current.Technologies = DedupeFold(current.Technologies)
			continue
		}

		if !glyph && wordCount(line) <= 10 && !endsWithTerminal(line) && !startsLower(line) {
			name, description := line, ""
			if left, right, _, ok := splitOnSeparator(line); ok {
				name, description = left, right
			}
			if rawLink != "" {
				name = trimSeparators(strings.Replace(name, rawLink, "", 1))
				description = trimSeparators(strings.Replace(description, rawLink, "", 1))
			}
			projects = append(projects, types.ProjectEntry{
				Name:         name,
				Description:  description,
				Technologies: []string{},
				Link:         link,
			})
			current = &projects[len(projects)-1]
			continue
		}

		if current == nil {
			projects = append(projects, types.ProjectEntry{Technologies: []string{}})
			current = &projects[len(projects)-1]
		}
		if current.Link == "" {
			current.Link = link
		}
		if current.Description == "" {
			current.Description = line
		} else {
			current.Description += " " + line
		}
	}
	return projects
}
