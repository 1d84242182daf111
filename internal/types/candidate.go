// Package types provides type definitions for structured data used throughout the resume-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// CandidateProfile is the structured view of a résumé produced by the heuristic parser.
// Slice fields are always non-nil so that JSON output carries [] rather than null.
type CandidateProfile struct {
	Name       string            `json:"name,omitempty"`
	Headline   string            `json:"headline,omitempty"`
	Summary    string            `json:"summary,omitempty"`
	Email      string            `json:"email,omitempty"`
	Phone      string            `json:"phone,omitempty"`
	Location   string            `json:"location,omitempty"`
	Links      []string          `json:"links"`
	Skills     []string          `json:"skills"`
	Experience []ExperienceEntry `json:"experience"`
	Education  []EducationEntry  `json:"education"`
	Projects   []ProjectEntry    `json:"projects"`
}

// ExperienceEntry is a single position, most-recent-first as found in the source text
type ExperienceEntry struct {
	Title   string   `json:"title,omitempty"`
	Company string   `json:"company,omitempty"`
	Start   string   `json:"start,omitempty"`
	End     string   `json:"end,omitempty"`
	Bullets []string `json:"bullets"`
}

// EducationEntry is a single school/degree line
type EducationEntry struct {
	School string `json:"school,omitempty"`
	Degree string `json:"degree,omitempty"`
	Start  string `json:"start,omitempty"`
	End    string `json:"end,omitempty"`
}

// ProjectEntry is a side project or portfolio item
type ProjectEntry struct {
	Name         string   `json:"name,omitempty"`
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies"`
	Link         string   `json:"link,omitempty"`
}

// NewCandidateProfile returns an empty profile with every slice initialised.
func NewCandidateProfile() *CandidateProfile {
	return &CandidateProfile{
		Links:      []string{},
		Skills:     []string{},
		Experience: []ExperienceEntry{},
		Education:  []EducationEntry{},
		Projects:   []ProjectEntry{},
	}
}

// EnsureSlices replaces nil slices with empty ones, including nested entries.
func (p *CandidateProfile) EnsureSlices() {
	if p.Links == nil {
		p.Links = []string{}
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.Experience == nil {
		p.Experience = []ExperienceEntry{}
	}
	if p.Education == nil {
		p.Education = []EducationEntry{}
	}
	if p.Projects == nil {
		p.Projects = []ProjectEntry{}
	}
	for i := range p.Experience {
		if p.Experience[i].Bullets == nil {
			p.Experience[i].Bullets = []string{}
		}
	}
	for i := range p.Projects {
		if p.Projects[i].Technologies == nil {
			p.Projects[i].Technologies = []string{}
		}
	}
}
