// Package types provides type definitions for structured data used throughout the resume-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// SeniorityLevel is the coarse seniority band of a role
type SeniorityLevel string

// Seniority levels recognised by the job profile extractor
const (
	SeniorityJunior      SeniorityLevel = "junior"
	SeniorityMid         SeniorityLevel = "mid"
	SenioritySenior      SeniorityLevel = "senior"
	SeniorityLead        SeniorityLevel = "lead"
	SeniorityExecutive   SeniorityLevel = "executive"
	SeniorityUnspecified SeniorityLevel = "unspecified"
)

// JobProfile represents a structured job posting extracted from raw text
type JobProfile struct {
	Title            string         `json:"title"`
	Company          string         `json:"company,omitempty"`
	RequiredSkills   []string       `json:"required_skills"`
	PreferredSkills  []string       `json:"preferred_skills"`
	Responsibilities []string       `json:"responsibilities"`
	Keywords         []string       `json:"keywords"`
	SeniorityLevel   SeniorityLevel `json:"seniority_level"`
}

// NewJobProfile returns an empty job profile with every slice initialised.
func NewJobProfile() *JobProfile {
	return &JobProfile{
		RequiredSkills:   []string{},
		PreferredSkills:  []string{},
		Responsibilities: []string{},
		Keywords:         []string{},
		SeniorityLevel:   SeniorityUnspecified,
	}
}
