package parsing

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"
)

// headerRegionChars bounds the text searched for phone, location and visible links
const headerRegionChars = 500

// phonePatterns are tried in order; the first pattern with a match wins
var phonePatterns = []*regexp.Regexp{
	// UK mobile and landline
	regexp.MustCompile(`(?:\+44\s?\(?0?\)?\s?7\d{3}|\(?\b07\d{3}\)?)[\s\-]?\d{3}[\s\-]?\d{3}\b`),
	regexp.MustCompile(`(?:\+44\s?\(?0?\)?\s?\d{2,4}|\(?\b0\d{2,4}\)?)[\s\-]?\d{3,4}[\s\-]?\d{3,4}\b`),
	// Australia
	regexp.MustCompile(`(?:\+61\s?4\d{2}|\b04\d{2})[\s\-]?\d{3}[\s\-]?\d{3}\b`),
	regexp.MustCompile(`(?:\+61\s?\(?0?\)?[2378]|\(0[2378]\))[\s\-]?\d{4}[\s\-]?\d{4}\b`),
	// New Zealand
	regexp.MustCompile(`(?:\+64\s?\(?0?\)?\s?2\d|\b02\d)[\s\-]?\d{3,4}[\s\-]?\d{3,4}\b`),
	// Generic international
	regexp.MustCompile(`\+\d{1,3}[\s.\-]?\(?\d{1,4}\)?(?:[\s.\-]?\d{2,4}){2,4}\b`),
	// US / Canada
	regexp.MustCompile(`(?:\+?1[\s.\-]?)?\(?\b\d{3}\)?[\s.\-]?\d{3}[\s.\-]?\d{4}\b`),
}

var (
	linkedInRegex = regexp.MustCompile(`(?i)(?:https?://)?(?:[a-z]{2,3}\.)?linkedin\.com/[^\s|,;<>()"]+`)
	gitHubRegex   = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?github\.com/[^\s|,;<>()"]+`)
	genericURL    = regexp.MustCompile(`(?i)\bhttps?://[^\s|,;<>()"]+|\bwww\.[^\s|,;<>()"]+`)
	locationRegex = regexp.MustCompile(`\b([A-Z][A-Za-z.'\-]+(?:\s[A-Z][A-Za-z.'\-]+){0,2}),\s*(` + strings.Join(quoteAll(regionVocabulary), "|") + `)\b`)
	nameToken     = regexp.MustCompile(`^[\p{L}][\p{L}'.\-]*$`)
)

var nameStopLines = map[string]bool{
	"resume": true, "résumé": true, "curriculum vitae": true, "cv": true,
}

// headerRegion returns the first headerRegionChars bytes of text, cut on a rune boundary
func headerRegion(text string) string {
	if len(text) <= headerRegionChars {
		return text
	}
	cut := headerRegionChars
	for cut > 0 && !utf8RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}

func utf8RuneStart(b byte) bool {
	return b&0xC0 != 0x80
}

// extractName returns the first plausible name line and its index
func extractName(lines []string) (string, int) {
	for i, line := range lines {
		if line == "" {
			continue
		}
		if i > 15 {
			break
		}
		if emailRegex.MatchString(line) || urlRegex.MatchString(line) || looksLikePhone(line) {
			continue
		}
		candidate := line
		for _, sep := range []string{"|", "•", " — ", " – ", " - ", ","} {
			if idx := strings.Index(candidate, sep); idx > 0 {
				candidate = candidate[:idx]
			}
		}
		candidate = strings.TrimSpace(strings.TrimLeft(candidate, "#"))
		lower := strings.ToLower(candidate)
		if nameStopLines[lower] || matchSectionVocabulary(normalizeHeader(candidate)) {
			continue
		}
		if isAllCaps(candidate) && (wordCount(candidate) > 4 || len(candidate) > 40) {
			continue
		}
		var tokens []string
		for _, tok := range strings.Fields(candidate) {
			if !nameToken.MatchString(tok) {
				continue
			}
			if isAllCaps(tok) && len([]rune(tok)) > 1 {
				tok = titleCaseWord(tok)
			}
			tokens = append(tokens, tok)
			if len(tokens) == 4 {
				break
			}
		}
		if len(tokens) == 0 || HasRoleKeyword(candidate) {
			continue
		}
		return strings.Join(tokens, " "), i
	}
	return "", -1
}

func extractEmail(text string) string {
	return emailRegex.FindString(text)
}

func extractPhone(text string) string {
	region := headerRegion(text)
	for _, pattern := range phonePatterns {
		for _, m := range pattern.FindAllString(region, -1) {
			m = strings.TrimSpace(m)
			if yearRangeOnly(m) {
				continue
			}
			return m
		}
	}
	return ""
}

// yearRangeOnly guards against "2019 2021 2023" style digit runs being taken for a phone number
func yearRangeOnly(s string) bool {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
	if len(digits) < 8 || len(digits)%4 != 0 {
		return false
	}
	for i := 0; i < len(digits); i += 4 {
		if !yearRegex.MatchString(digits[i : i+4]) {
			return false
		}
	}
	return true
}

func extractLocation(text string) string {
	m := locationRegex.FindStringSubmatch(headerRegion(text))
	if m == nil {
		return ""
	}
	return m[1] + ", " + m[2]
}

// extractHeadline returns the first line after the name carrying a title cue
func extractHeadline(lines []string, nameIdx int) string {
	checked := 0
	for i := nameIdx + 1; i < len(lines) && checked < 6; i++ {
		line := lines[i]
		if line == "" {
			continue
		}
		checked++
		if isContactLine(line) || locationRegex.MatchString(line) && wordCount(line) <= 4 {
			continue
		}
		if _, _, ok := classifyHeader(line); ok && !HasRoleKeyword(line) {
			break
		}
		if len(line) > 120 {
			continue
		}
		hasSeparator := strings.ContainsAny(line, "|•·/") || strings.Contains(line, " — ") || strings.Contains(line, " – ") || strings.Contains(line, " - ")
		if hasSeparator || HasRoleKeyword(line) {
			return strings.TrimSpace(line)
		}
	}
	return ""
}

// extractLinks merges visible header-region URLs with hidden hyperlink targets
func extractLinks(text string, hidden []string) []string {
	region := headerRegion(text)
	var candidates []string
	candidates = append(candidates, linkedInRegex.FindAllString(region, -1)...)
	candidates = append(candidates, gitHubRegex.FindAllString(region, -1)...)
	candidates = append(candidates, genericURL.FindAllString(region, -1)...)
	candidates = append(candidates, hidden...)

	links := []string{}
	seen := make(map[string]bool)
	for _, c := range candidates {
		normalized := NormalizeURL(c)
		if normalized == "" || seen[linkKey(normalized)] {
			continue
		}
		seen[linkKey(normalized)] = true
		links = append(links, normalized)
	}
	return links
}

// linkKey folds the scheme and a leading "www." so one profile is listed once
func linkKey(normalized string) string {
	if i := strings.Index(normalized, "://"); i >= 0 {
		normalized = normalized[i+3:]
	}
	return strings.TrimPrefix(normalized, "www.")
}

// NormalizeURL defaults the scheme to https, lowercases the host and drops a trailing slash.
// It returns "" for values that are not web links (mailto:, tel:, bare emails).
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimRight(raw, ".,;:)]}>\"'")
	if raw == "" {
		return ""
	}
	lower := strings.ToLower(raw)
	if strings.HasPrefix(lower, "mailto:") || strings.HasPrefix(lower, "tel:") || strings.HasPrefix(lower, "javascript:") {
		return ""
	}
	if !strings.Contains(lower, "://") {
		if emailRegex.MatchString(raw) && !strings.Contains(raw, "/") {
			return ""
		}
		raw = "https://" + raw
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" || !strings.Contains(parsed.Host, ".") {
		return ""
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return ""
	}
	parsed.Host = strings.ToLower(parsed.Host)
	parsed.Fragment = ""
	out := parsed.String()
	return strings.TrimRight(out, "/")
}
