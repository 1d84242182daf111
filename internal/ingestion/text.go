// Package ingestion turns résumé and job-posting sources (plain text, HTML files,
// URLs) into cleaned text plus the hyperlinks hidden behind anchor text.
package ingestion

import (
	"regexp"
	"strings"
)

var (
	multiSpace       = regexp.MustCompile(`[ \t\f\v]+`)
	excessBlankLines = regexp.MustCompile(`\n\n\n+`)
	// zero-width and byte-order marks left behind by PDF and Word exports
	invisibleRunes = strings.NewReplacer("\u200b", "", "\u200c", "", "\u200d", "", "\ufeff", "", "\u00ad", "")
	spaceRunes     = strings.NewReplacer("\u00a0", " ", "\u2007", " ", "\u202f", " ", "\u2009", " ")
)

// CleanText cleans and normalizes text content while preserving structure
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = invisibleRunes.Replace(content)
	content = spaceRunes.Replace(content)

	lines := strings.Split(content, "\n")
	cleanedLines := make([]string, 0, len(lines))
	for _, line := range lines {
		cleanedLines = append(cleanedLines, cleanLine(line))
	}

	result := strings.Join(cleanedLines, "\n")
	result = excessBlankLines.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine cleans a single line while preserving structure
func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	if strings.TrimSpace(line) == "" {
		return ""
	}

	trimmed := strings.TrimLeft(line, " \t")
	if strings.HasPrefix(trimmed, "#") {
		return multiSpace.ReplaceAllString(trimmed, " ")
	}

	// keep relative indentation, tabs count as four spaces
	indent := 0
	for _, r := range line[:len(line)-len(trimmed)] {
		if r == '\t' {
			indent += 4
		} else {
			indent++
		}
	}
	content := multiSpace.ReplaceAllString(trimmed, " ")
	if indent > 0 {
		return strings.Repeat(" ", indent) + content
	}
	return content
}
