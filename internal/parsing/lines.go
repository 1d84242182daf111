package parsing

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	emailRegex = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	urlRegex   = regexp.MustCompile(`(?i)\b(?:https?://|www\.)\S+|\b(?:linkedin|github)\.com/\S+`)
	digitRun   = regexp.MustCompile(`\d[\d\s().\-]{6,}\d`)
)

const bulletGlyphs = "•·▪●◦‣∙○■□➢➤►▸-*–—"

// splitLines normalises line endings, trims each line and drops nothing, so
// callers can still see blank-line structure.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.ReplaceAll(text, " ", " ")
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		lines = append(lines, strings.Join(strings.Fields(line), " "))
	}
	return lines
}

// isBulletLine reports whether line starts with a bullet glyph
func isBulletLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	first := []rune(trimmed)[0]
	if !strings.ContainsRune(bulletGlyphs, first) {
		return false
	}
	// "-" and "*" count only when followed by a space
	if first == '-' || first == '*' {
		return strings.HasPrefix(trimmed, string(first)+" ")
	}
	return true
}

// stripBullet removes a leading bullet glyph and surrounding space
func stripBullet(line string) string {
	trimmed := strings.TrimSpace(line)
	if !isBulletLine(trimmed) {
		return trimmed
	}
	runes := []rune(trimmed)
	return strings.TrimSpace(string(runes[1:]))
}

func isContactLine(line string) bool {
	return emailRegex.MatchString(line) || urlRegex.MatchString(line) || looksLikePhone(line)
}

func looksLikePhone(line string) bool {
	if m := digitRun.FindString(line); m != "" {
		digits := 0
		for _, r := range m {
			if unicode.IsDigit(r) {
				digits++
			}
		}
		return digits >= 9 && !yearRegex.MatchString(m)
	}
	return false
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}

func hasDigit(s string) bool {
	return strings.IndexFunc(s, unicode.IsDigit) >= 0
}

func isAlphaOnly(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsSpace(r) && r != '&' && r != '\'' && r != '-' && r != '/' {
			return false
		}
	}
	return strings.TrimSpace(s) != ""
}

func isAllCaps(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			hasLetter = true
			if unicode.IsLower(r) {
				return false
			}
		}
	}
	return hasLetter
}

func startsLower(s string) bool {
	for _, r := range s {
		return unicode.IsLower(r)
	}
	return false
}

func endsWithTerminal(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	return strings.ContainsRune(".!?", []rune(s)[len([]rune(s))-1])
}

func lastWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

// isTitleCase reports whether every significant word starts with an upper-case letter
func isTitleCase(s string) bool {
	small := map[string]bool{"of": true, "and": true, "the": true, "for": true, "in": true, "at": true, "to": true, "&": true, "a": true}
	words := strings.Fields(s)
	if len(words) == 0 {
		return false
	}
	for _, w := range words {
		if small[strings.ToLower(w)] {
			continue
		}
		first := []rune(w)[0]
		if unicode.IsLetter(first) && !unicode.IsUpper(first) {
			return false
		}
	}
	return true
}

// titleCaseWord converts an ALL-CAPS word to Title case
func titleCaseWord(w string) string {
	runes := []rune(strings.ToLower(w))
	for i, r := range runes {
		if i == 0 || runes[i-1] == '-' || runes[i-1] == '\'' {
			runes[i] = unicode.ToUpper(r)
		}
	}
	return string(runes)
}
