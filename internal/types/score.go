// Package types provides type definitions for structured data used throughout the resume-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// MatchLabel is the human-readable band of a radar score. Only three bands exist.
type MatchLabel string

// Radar score labels
const (
	LabelStrong   MatchLabel = "Strong Match"
	LabelGood     MatchLabel = "Good Match"
	LabelModerate MatchLabel = "Moderate Match"
)

// Radar breakdown category names
const (
	CategoryHardSkills = "hard_skills"
	CategorySoftSkills = "soft_skills"
	CategoryMeasurable = "measurable_results"
	CategoryKeywords   = "keyword_optimization"
	CategoryFormatting = "formatting_best_practices"
)

// Categories lists the breakdown keys in display order
var Categories = []string{
	CategoryHardSkills,
	CategorySoftSkills,
	CategoryMeasurable,
	CategoryKeywords,
	CategoryFormatting,
}

// ScoreResult is the output of the five-dimension radar scorer
type ScoreResult struct {
	Score     int            `json:"score"`
	Label     MatchLabel     `json:"label"`
	Breakdown map[string]int `json:"breakdown"`
	Blockers  []string       `json:"blockers"`
}

// QuickLabel is the band of a quick overlap score
type QuickLabel string

// Quick score labels
const (
	QuickStrong QuickLabel = "Strong"
	QuickGood   QuickLabel = "Good"
	QuickFair   QuickLabel = "Fair"
	QuickLow    QuickLabel = "Low"
)

// QuickScoreResult is the output of the cheap token/bigram overlap estimator
type QuickScoreResult struct {
	Score          int        `json:"score"`
	Label          QuickLabel `json:"label"`
	Matched        []string   `json:"matched"`
	Missing        []string   `json:"missing"`
	NeedsMoreInput bool       `json:"needs_more_input"`
}
