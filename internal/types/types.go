// Package types provides type definitions for structured data used throughout the screening pipeline.
package types

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Format identifies a supported document format.
type Format string

// Supported document formats. FormatDoc is recognized but never processed;
// legacy binary .doc files are skipped with a caller-visible reason.
const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatDoc  Format = "doc"
)

// FormatFromFilename derives a Format from a file extension.
// Unknown extensions return an empty Format.
func FormatFromFilename(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return FormatPDF
	case ".docx":
		return FormatDOCX
	case ".doc":
		return FormatDoc
	default:
		return ""
	}
}

// Document is an uploaded resume: raw bytes plus the declared format.
// The name must be unique within one screening run for correct attribution.
type Document struct {
	Name   string
	Data   []byte
	Format Format
}

// CandidateText is the raw extracted text for one candidate.
type CandidateText struct {
	Name    string `json:"name"`
	RawText string `json:"raw_text"`
}

// NormalizedCandidate is a candidate's resume after LLM cleaning and section
// tagging. Text contains only content under the [SUMMARY], [SKILLS],
// [EXPERIENCE] and [EDUCATION] tags. When normalization failed, Text holds the
// error-marker string instead and NormalizationFailed is set so the recruiter
// can judge the resulting low score correctly.
type NormalizedCandidate struct {
	Name                string `json:"name"`
	Text                string `json:"text"`
	NormalizationFailed bool   `json:"normalization_failed,omitempty"`
}

// RankedCandidate is one row of a ranking result. Score is the cosine
// similarity between the job description's embedding and the candidate's,
// so it lies in [-1, 1] (practically [0, 1]).
type RankedCandidate struct {
	Name                string  `json:"name"`
	Score               float64 `json:"score"`
	Text                string  `json:"text"`
	NormalizationFailed bool    `json:"normalization_failed,omitempty"`
}

// SkippedDocument records a document that was excluded from a screening run,
// with the stage that rejected it and a human-readable reason.
type SkippedDocument struct {
	Name   string `json:"name"`
	Stage  string `json:"stage"`
	Reason string `json:"reason"`
}

// Stages at which a document can be excluded from a run.
const (
	StageExtraction = "extraction"
	StageEmbedding  = "embedding"
)

// ScreeningResult is the outcome of one screening run: the full ranked list
// plus every document that had to be skipped. Ranked is sorted by score
// descending, ties preserving input order.
type ScreeningResult struct {
	RunID          uuid.UUID         `json:"run_id"`
	JobDescription string            `json:"job_description"`
	Ranked         []RankedCandidate `json:"ranked"`
	Skipped        []SkippedDocument `json:"skipped,omitempty"`
	CompletedAt    time.Time         `json:"completed_at"`
}

// FeedbackDraft is a generated rejection draft. It is never sent by the
// system; the caller owns review and delivery. Violations lists any red-zone
// terms found in the body so the human reviewer sees them up front.
type FeedbackDraft struct {
	Body       string   `json:"body"`
	Violations []string `json:"violations,omitempty"`
}

// FitAnalysis is the applicant-mode result: a semantic fit score in [0, 1]
// and a rewritten resume in Markdown targeted at the job description.
type FitAnalysis struct {
	FitScore         float64 `json:"fit_score"`
	RewrittenResume  string  `json:"rewritten_resume"`
	NormalizedResume string  `json:"normalized_resume,omitempty"`
}
