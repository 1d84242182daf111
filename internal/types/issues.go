// Package types provides type definitions for structured data used throughout the resume-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Quality issue types recorded by the quality gate
const (
	IssueBannedPhrase    = "banned_phrase"
	IssueDanglingClause  = "dangling_clause"
	IssueSentenceAsSkill = "sentence_as_skill"
	IssueEmptyField      = "empty_field"
)

// QualityIssue records a single fix (or unfixable finding) made to a draft.
// Location is a dotted path such as "tailored_resume.experience[0].bullets[2]".
type QualityIssue struct {
	Type      string `json:"type"`
	Location  string `json:"location"`
	Detail    string `json:"detail,omitempty"`
	AutoFixed bool   `json:"auto_fixed"`
}
