package server

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/jmorrow/compliant-ats/internal/db"
	"github.com/jmorrow/compliant-ats/internal/types"
)

// maxUploadBytes bounds the total size of a /rank multipart upload.
const maxUploadBytes = 64 << 20 // 64 MiB

// handleRank runs a screening over uploaded resume files.
//
// Expects multipart form data with a job_description field and one or more
// files under the resumes field. The response carries the full ranked list
// plus every document that had to be skipped and why.
func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			log.Printf("Error cleaning up multipart form: %v", err)
		}
	}()

	jobDescription := r.FormValue("job_description")
	if jobDescription == "" {
		s.errorResponse(w, http.StatusBadRequest, "job_description is required")
		return
	}

	fileHeaders := r.MultipartForm.File["resumes"]
	docs := make([]types.Document, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		f, err := fh.Open()
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Failed to open upload "+fh.Filename+": "+err.Error())
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Failed to read upload "+fh.Filename+": "+err.Error())
			return
		}
		docs = append(docs, types.Document{
			Name:   fh.Filename,
			Data:   data,
			Format: types.FormatFromFilename(fh.Filename),
		})
	}

	result, err := s.pipeline.Screen(r.Context(), jobDescription, docs)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	if s.db != nil {
		if err := s.db.SaveScreeningRun(r.Context(), result); err != nil {
			// Persisting history must not fail the run itself.
			log.Printf("Failed to save screening run %s: %v", result.RunID, err)
		}
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// handleFeedback generates a compliance-constrained rejection draft.
func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var req types.FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	draft, err := s.feedback.Generate(r.Context(), req.JobDescription, req.CandidateText)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	if s.db != nil {
		if err := s.db.SaveFeedbackDraft(r.Context(), nil, "", draft); err != nil {
			log.Printf("Failed to save feedback draft: %v", err)
		}
	}

	s.jsonResponse(w, http.StatusOK, draft)
}

// handleAnalyze runs the applicant-mode fit analysis and rewrite.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req types.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	analysis, err := s.analyzer.Analyze(r.Context(), req.JobDescription, req.ResumeText)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, analysis)
}

// handleListRuns returns recent screening runs from the history store.
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Run history is not configured")
		return
	}

	runs, err := s.db.ListRuns(r.Context(), 50)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if runs == nil {
		runs = []db.RunSummary{}
	}
	s.jsonResponse(w, http.StatusOK, runs)
}

// handleGetRun returns a single stored screening run with its rankings.
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Run history is not configured")
		return
	}

	runID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid run ID")
		return
	}

	result, err := s.db.GetRun(r.Context(), runID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if result == nil {
		s.errorResponse(w, http.StatusNotFound, "Run not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}
