package parsing

import (
	"strings"
	"unicode"
)

// ContainsPhrase reports whether phrase occurs in text, case-insensitively, on word
// boundaries. "java" does not match inside "javascript" and "react" does not match
// inside "reactive".
func ContainsPhrase(text, phrase string) bool {
	return IndexPhrase(strings.ToLower(text), strings.ToLower(strings.TrimSpace(phrase))) >= 0
}

// ContainsTerm is ContainsPhrase for skill names. Terms of two characters or
// fewer ("Go", "R", "C#") match case-sensitively so the verb "go" is not Go.
func ContainsTerm(text, term string) bool {
	term = strings.TrimSpace(term)
	if len(term) <= 2 {
		return IndexPhrase(text, term) >= 0
	}
	return ContainsPhrase(text, term)
}

// IndexPhrase returns the byte offset of the first word-bounded occurrence of
// phraseLower in textLower, or -1. Matching is exact, so callers lowercase both
// arguments for a case-insensitive search.
func IndexPhrase(textLower, phraseLower string) int {
	if phraseLower == "" || textLower == "" {
		return -1
	}
	offset := 0
	for {
		idx := strings.Index(textLower[offset:], phraseLower)
		if idx < 0 {
			return -1
		}
		start := offset + idx
		end := start + len(phraseLower)
		if boundaryBefore(textLower, start, phraseLower) && boundaryAfter(textLower, end, phraseLower) {
			return start
		}
		offset = start + 1
		if offset >= len(textLower) {
			return -1
		}
	}
}

func boundaryBefore(text string, start int, phrase string) bool {
	if start == 0 {
		return true
	}
	first := []rune(phrase)[0]
	if !isWordRune(first) {
		return true
	}
	prev := lastRune(text[:start])
	return !isWordRune(prev)
}

func boundaryAfter(text string, end int, phrase string) bool {
	if end >= len(text) {
		return true
	}
	runes := []rune(phrase)
	last := runes[len(runes)-1]
	next := []rune(text[end:])[0]
	if !isWordRune(last) {
		// "c++" must not match the prefix of "c+++" style noise, but "c++," is fine
		return next != last
	}
	return !isWordRune(next) && next != '+' && next != '#'
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func lastRune(s string) rune {
	runes := []rune(s)
	if len(runes) == 0 {
		return ' '
	}
	return runes[len(runes)-1]
}

// Tokenize lowercases text and splits it into word tokens. Tokens keep the
// characters that make skill names distinct ("c++", "c#", "node.js").
func Tokenize(text string) []string {
	lower := strings.ToLower(text)
	var tokens []string
	var current strings.Builder
	flush := func() {
		tok := strings.Trim(current.String(), ".")
		if tok != "" {
			tokens = append(tokens, tok)
		}
		current.Reset()
	}
	for _, r := range lower {
		switch {
		case isWordRune(r):
			current.WriteRune(r)
		case (r == '+' || r == '#') && current.Len() > 0:
			current.WriteRune(r)
		case r == '.' && current.Len() > 0:
			current.WriteRune(r)
		default:
			flush()
		}
	}
	flush()
	return tokens
}
