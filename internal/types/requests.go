package types

import "github.com/go-playground/validator/v10"

// FeedbackRequest is the API request for a rejection-feedback draft.
// CandidateText is the candidate's normalized resume text, not raw bytes.
type FeedbackRequest struct {
	JobDescription string `json:"job_description" validate:"required,min=1"`
	CandidateText  string `json:"candidate_text" validate:"required,min=1"`
}

// AnalyzeRequest is the API request for applicant-mode fit analysis.
type AnalyzeRequest struct {
	JobDescription string `json:"job_description" validate:"required,min=1"`
	ResumeText     string `json:"resume_text" validate:"required,min=1"`
}

// Validate validates the FeedbackRequest using the validator.
func (r *FeedbackRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the AnalyzeRequest using the validator.
func (r *AnalyzeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
