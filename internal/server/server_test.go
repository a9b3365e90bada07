package server

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmorrow/compliant-ats/internal/types"
)

// stubClient serves canned responses without any remote calls.
type stubClient struct {
	vectors      map[string][]float32
	generateText string
	failGenerate bool
}

func (s *stubClient) Generate(_ context.Context, _, input string, _ bool) (string, error) {
	if s.failGenerate {
		return "", errors.New("model unavailable")
	}
	if s.generateText != "" {
		return s.generateText, nil
	}
	return input, nil
}

func (s *stubClient) Embed(_ context.Context, text string) ([]float32, error) {
	if v, ok := s.vectors[text]; ok {
		return v, nil
	}
	return []float32{0.1, 0.1, 0.9}, nil
}

func (s *stubClient) Close() error { return nil }

const testJD = "Needs Python and SQL"

func newTestServer(client *stubClient, token string) *Server {
	return New(Config{Port: 0, AuthToken: token, Concurrency: 2}, client, nil)
}

func docxWith(t *testing.T, body string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = fmt.Fprintf(w, `<w:document><w:body><w:p><w:r><w:t>%s</w:t></w:r></w:p></w:body></w:document>`, body)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func rankRequest(t *testing.T, jobDescription string, files map[string][]byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if jobDescription != "" {
		require.NoError(t, mw.WriteField("job_description", jobDescription))
	}
	for name, data := range files {
		fw, err := mw.CreateFormFile("resumes", name)
		require.NoError(t, err)
		_, err = fw.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/rank", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(&stubClient{}, "")

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestHandleRank(t *testing.T) {
	client := &stubClient{
		vectors: map[string][]float32{
			testJD:                       {1, 0, 0},
			"Python expert, 5 years SQL": {0.9, 0.1, 0},
			"Java developer, no SQL":     {0.2, 0.8, 0},
		},
	}
	srv := newTestServer(client, "")

	req := rankRequest(t, testJD, map[string][]byte{
		"a.docx": docxWith(t, "Python expert, 5 years SQL"),
		"b.docx": docxWith(t, "Java developer, no SQL"),
	})
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result types.ScreeningResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.Len(t, result.Ranked, 2)
	assert.Equal(t, "a.docx", result.Ranked[0].Name)
	assert.Equal(t, "b.docx", result.Ranked[1].Name)
	assert.Empty(t, result.Skipped)
}

func TestHandleRankSkipsUnsupported(t *testing.T) {
	client := &stubClient{vectors: map[string][]float32{testJD: {1, 0, 0}}}
	srv := newTestServer(client, "")

	req := rankRequest(t, testJD, map[string][]byte{
		"ok.docx":    docxWith(t, "Python expert, 5 years SQL"),
		"legacy.doc": []byte("old binary format"),
	})
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result types.ScreeningResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.Len(t, result.Ranked, 1)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, "legacy.doc", result.Skipped[0].Name)
}

func TestHandleRankMissingJobDescription(t *testing.T) {
	srv := newTestServer(&stubClient{}, "")

	req := rankRequest(t, "", map[string][]byte{"a.docx": docxWith(t, "text")})
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleRankNotMultipart(t *testing.T) {
	srv := newTestServer(&stubClient{}, "")

	req := httptest.NewRequest("POST", "/rank", strings.NewReader(`{"job_description":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleFeedback(t *testing.T) {
	client := &stubClient{generateText: "Thank you for your interest. We proceeded with candidates whose experience more closely matched the required skills."}
	srv := newTestServer(client, "")

	body := `{"job_description":"Senior Go engineer","candidate_text":"Python developer"}`
	req := httptest.NewRequest("POST", "/feedback", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var draft types.FeedbackDraft
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &draft))
	assert.Contains(t, draft.Body, "Thank you")
	assert.Empty(t, draft.Violations)
}

func TestHandleFeedbackValidation(t *testing.T) {
	srv := newTestServer(&stubClient{}, "")

	for _, body := range []string{
		`not json`,
		`{"job_description":"x"}`,
		`{"candidate_text":"x"}`,
	} {
		req := httptest.NewRequest("POST", "/feedback", strings.NewReader(body))
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body: %s", body)
	}
}

func TestHandleFeedbackUpstreamFailure(t *testing.T) {
	srv := newTestServer(&stubClient{failGenerate: true}, "")

	body := `{"job_description":"x","candidate_text":"y"}`
	req := httptest.NewRequest("POST", "/feedback", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestHandleAnalyze(t *testing.T) {
	client := &stubClient{
		vectors: map[string][]float32{
			"Go engineer":  {1, 0, 0},
			"Go developer": {0.9, 0.1, 0},
		},
		generateText: "## Summary\nRewritten resume",
	}
	srv := newTestServer(client, "")

	body := `{"job_description":"Go engineer","resume_text":"Go developer"}`
	req := httptest.NewRequest("POST", "/analyze", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var analysis types.FitAnalysis
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &analysis))
	assert.Greater(t, analysis.FitScore, 0.9)
	assert.Contains(t, analysis.RewrittenResume, "Rewritten resume")
}

func TestHandleListRunsWithoutDatabase(t *testing.T) {
	srv := newTestServer(&stubClient{}, "")

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/runs", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestAuthRequiredWhenConfigured(t *testing.T) {
	srv := newTestServer(&stubClient{}, "secret")

	// Health stays open for probes.
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	// Everything else needs the token.
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/runs", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest("GET", "/runs", nil)
	req.Header.Set("Authorization", "Bearer secret")
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
