package parsing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractPhone(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"uk mobile", "Jane Doe\n07700 900123", "07700 900123"},
		{"uk mobile international", "Jane Doe | +44 7700 900123", "+44 7700 900123"},
		{"uk landline", "Jane Doe\n020 7946 0958", "020 7946 0958"},
		{"uk landline parens", "Jane Doe\n(020) 7946 0958", "(020) 7946 0958"},
		{"au mobile", "Jane Doe\n+61 412 345 678", "+61 412 345 678"},
		{"au landline", "Jane Doe\n(02) 9876 5432", "(02) 9876 5432"},
		{"nz mobile", "Jane Doe\n+64 21 123 4567", "+64 21 123 4567"},
		{"international", "Jane Doe\n+49 30 1234 5678", "+49 30 1234 5678"},
		{"us parens", "Jane Doe\n(415) 555-2671", "(415) 555-2671"},
		{"us country code", "Jane Doe\n+1 415-555-2671", "+1 415-555-2671"},
		{"earlier pattern wins over earlier text", "Jane Doe\n(415) 555-2671 | 07700 900123", "07700 900123"},
		{"year run", "Jane Doe\nAwards 2019 2020 2021 2023", ""},
		{"past header region", "Jane Doe\n" + strings.Repeat("a", 600) + "\n(415) 555-2671", ""},
		{"none", "Jane Doe\njane@example.com", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractPhone(tt.text))
		})
	}
}

func TestYearRangeOnly(t *testing.T) {
	assert.True(t, yearRangeOnly("2019 2020 2021"))
	assert.True(t, yearRangeOnly("1999-2000"))
	assert.False(t, yearRangeOnly("020 7946 0958"))
	assert.False(t, yearRangeOnly("07700 900123"))
	assert.False(t, yearRangeOnly("2019"))
}

func TestExtractLocation(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"us state", "Jane Doe | Austin, TX | jane@example.com", "Austin, TX"},
		{"multi-word city", "San Francisco, CA", "San Francisco, CA"},
		{"australian state", "Sydney, NSW", "Sydney, NSW"},
		{"country name", "Manchester, United Kingdom", "Manchester, United Kingdom"},
		{"unknown region", "Springfield, Narnia", ""},
		{"lowercase region", "Austin, tx", ""},
		{"past header region", strings.Repeat("a", 600) + "\nAustin, TX", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractLocation(tt.text))
		})
	}
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"linkedin.com/in/Jane/", "https://linkedin.com/in/Jane"},
		{"HTTPS://GitHub.com/jdoe", "https://github.com/jdoe"},
		{"http://example.com/", "http://example.com"},
		{"www.example.com/portfolio.", "https://www.example.com/portfolio"},
		{"https://example.com/work#top", "https://example.com/work"},
		{"mailto:jane@example.com", ""},
		{"jane@example.com", ""},
		{"ftp://files.example.com", ""},
		{"localhost", ""},
		{"  ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeURL(tt.raw))
		})
	}
}

func TestExtractLinks(t *testing.T) {
	text := "Jane Doe\nlinkedin.com/in/jane | www.linkedin.com/in/jane | github.com/jane"
	hidden := []string{"https://www.LinkedIn.com/in/jane/", "http://github.com/jane", "https://jane.dev"}

	assert.Equal(t, []string{
		"https://linkedin.com/in/jane",
		"https://github.com/jane",
		"https://jane.dev",
	}, extractLinks(text, hidden))
}
