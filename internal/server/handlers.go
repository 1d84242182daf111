package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/parsing"
	"github.com/jonathan/resume-matcher/internal/pipeline"
	"github.com/jonathan/resume-matcher/internal/server/middleware"
	"github.com/jonathan/resume-matcher/internal/types"
)

// validatable is implemented by every request type
type validatable interface {
	Validate() error
}

// TailorResponse is returned by the tailoring endpoint
type TailorResponse struct {
	RequestID string `json:"request_id"`
	*pipeline.TailorOutput
}

// BatchScoreResponse is returned by the batch scoring endpoint
type BatchScoreResponse struct {
	RequestID string                 `json:"request_id"`
	Results   []pipeline.ScoreOutput `json:"results"`
}

// decodeRequest reads a size-limited JSON body into req and validates it
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request, req validatable) error {
	body := http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	dec := json.NewDecoder(body)
	if err := dec.Decode(req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return err
		}
		if errors.Is(err, io.EOF) {
			return &ErrValidation{Field: "body", Message: "request body is empty"}
		}
		return &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
	}
	if err := req.Validate(); err != nil {
		return validationError(err)
	}
	return nil
}

// handleParse parses résumé text, or HTML with hidden links, into a candidate profile
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req types.ParseRequest
	if err := s.decodeRequest(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	if strings.TrimSpace(req.HTML) == "" {
		s.jsonResponse(w, http.StatusOK, s.pipeline.Parse(req.Text, req.HiddenLinks))
		return
	}

	doc, err := ingestion.FromHTML(strings.NewReader(req.HTML), "request")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	links := append(doc.HiddenLinks, req.HiddenLinks...)
	s.jsonResponse(w, http.StatusOK, parsing.ParseResume(doc.Text, links...))
}

// handleQuickScore returns the cheap overlap estimate
func (s *Server) handleQuickScore(w http.ResponseWriter, r *http.Request) {
	var req types.ScoreRequest
	if err := s.decodeRequest(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.pipeline.QuickScore(req.ResumeText, req.JobText))
}

// handleScore runs the free radar scoring path
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req types.ScoreRequest
	if err := s.decodeRequest(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	out, err := s.pipeline.Score(r.Context(), pipeline.Input{ResumeText: req.ResumeText, JobText: req.JobText})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, types.ScoreResponse{
		RequestID: middleware.GetRequestID(r),
		Candidate: out.Candidate,
		Job:       out.Job,
		Result:    out.Result,
	})
}

// handleScoreBatch scores one résumé against several jobs
func (s *Server) handleScoreBatch(w http.ResponseWriter, r *http.Request) {
	var req types.BatchScoreRequest
	if err := s.decodeRequest(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	jobs := make([]pipeline.JobSource, len(req.Jobs))
	for i, j := range req.Jobs {
		jobs[i] = pipeline.JobSource{Text: j.Text, URL: j.URL}
	}

	results, err := s.pipeline.ScoreMany(r.Context(), req.ResumeText, req.HiddenLinks, jobs)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, BatchScoreResponse{RequestID: middleware.GetRequestID(r), Results: results})
}

func tailorInput(req *types.TailorRequest) pipeline.Input {
	return pipeline.Input{
		ResumeText:  req.ResumeText,
		HiddenLinks: req.HiddenLinks,
		JobText:     req.JobText,
		JobURL:      req.JobURL,
		Draft:       req.Draft,
	}
}

// handleTailor runs the paid path and returns the cleaned draft
func (s *Server) handleTailor(w http.ResponseWriter, r *http.Request) {
	var req types.TailorRequest
	if err := s.decodeRequest(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	requestID := middleware.GetRequestID(r)
	s.logger.Info("tailoring",
		zap.String(observability.FieldRequestID, requestID),
		zap.String("subject", middleware.Subject(r)),
		zap.Bool("draft_supplied", req.Draft != nil),
	)

	out, err := s.pipeline.Tailor(r.Context(), tailorInput(&req))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, TailorResponse{RequestID: requestID, TailorOutput: out})
}

// handleTailorStream runs the paid path and streams progress via SSE
func (s *Server) handleTailorStream(w http.ResponseWriter, r *http.Request) {
	var req types.TailorRequest
	if err := s.decodeRequest(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	requestID := middleware.GetRequestID(r)
	p := s.pipeline.Observe(func(event pipeline.ProgressEvent) {
		if err := sse.WriteEvent("step", event); err != nil {
			s.logger.Warn("failed to write SSE event", zap.Error(err))
		}
	})

	out, err := p.Tailor(r.Context(), tailorInput(&req))
	if err != nil {
		s.logger.Warn("streaming tailor failed",
			zap.String(observability.FieldRequestID, requestID),
			zap.Error(err),
		)
		sse.WriteError(err.Error(), HTTPStatus(err))
		return
	}

	sse.WriteComplete(TailorResponse{RequestID: requestID, TailorOutput: out})
}
