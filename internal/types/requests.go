// Package types provides type definitions for structured data used throughout the resume-matcher system.
package types

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// newValidator reports field errors under their JSON names
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ParseRequest asks the API to parse résumé text into a CandidateProfile.
// When HTML is set, Text is ignored and the text and hidden links are taken from the markup.
type ParseRequest struct {
	Text        string   `json:"text" validate:"required_without=HTML,max=200000"`
	HTML        string   `json:"html,omitempty" validate:"max=500000"`
	HiddenLinks []string `json:"hidden_links,omitempty" validate:"max=100,dive,max=2048"`
}

// ScoreRequest asks the API to score résumé text against job text
type ScoreRequest struct {
	ResumeText string `json:"resume_text" validate:"required,max=200000"`
	JobText    string `json:"job_text" validate:"required,max=100000"`
}

// TailorRequest runs the paid path. Draft may be supplied to skip generation.
type TailorRequest struct {
	ResumeText  string         `json:"resume_text" validate:"required,max=200000"`
	HiddenLinks []string       `json:"hidden_links,omitempty" validate:"max=100,dive,max=2048"`
	JobText     string         `json:"job_text,omitempty" validate:"required_without=JobURL,max=100000"`
	JobURL      string         `json:"job_url,omitempty" validate:"omitempty,url"`
	Draft       *TailoredDraft `json:"draft,omitempty"`
}

// ScoreResponse is returned by the radar scoring endpoint
type ScoreResponse struct {
	RequestID string            `json:"request_id"`
	Candidate *CandidateProfile `json:"candidate"`
	Job       *JobProfile       `json:"job"`
	Result    ScoreResult       `json:"result"`
}

// Validate validates the ParseRequest using the validator.
func (r *ParseRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the ScoreRequest using the validator.
func (r *ScoreRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the TailorRequest using the validator.
func (r *TailorRequest) Validate() error {
	return validate.Struct(r)
}

// JobSourceRequest is one job in a batch, given as text or URL
type JobSourceRequest struct {
	Text string `json:"text,omitempty" validate:"required_without=URL,max=100000"`
	URL  string `json:"url,omitempty" validate:"omitempty,url"`
}

// BatchScoreRequest scores one résumé against several jobs
type BatchScoreRequest struct {
	ResumeText  string             `json:"resume_text" validate:"required,max=200000"`
	HiddenLinks []string           `json:"hidden_links,omitempty" validate:"max=100,dive,max=2048"`
	Jobs        []JobSourceRequest `json:"jobs" validate:"required,min=1,max=20,dive"`
}

// Validate validates the BatchScoreRequest using the validator.
func (r *BatchScoreRequest) Validate() error {
	return validate.Struct(r)
}
