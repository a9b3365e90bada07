package ingestion

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jd.txt")
	require.NoError(t, os.WriteFile(path, []byte("  We need a CFO. CPA required.\n\n"), 0o644))

	text, err := FromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "We need a CFO. CPA required.", text)
}

func TestFromFile_Missing(t *testing.T) {
	_, err := FromFile(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestExtractMainText_RemovesNoise(t *testing.T) {
	html := `<html><head><style>.x{}</style></head><body>
		<nav>Home | Jobs | About</nav>
		<main><h1>Data Engineer</h1><p>Needs Python and SQL.</p></main>
		<script>trackVisit()</script>
		<footer>© 2026</footer>
	</body></html>`

	text, err := ExtractMainText(html)
	require.NoError(t, err)

	assert.Contains(t, text, "Data Engineer")
	assert.Contains(t, text, "Needs Python and SQL.")
	assert.NotContains(t, text, "trackVisit")
	assert.NotContains(t, text, "Home | Jobs")
	assert.NotContains(t, text, "© 2026")
}

func TestExtractMainText_PrefersJobDescriptionContainer(t *testing.T) {
	html := `<html><body>
		<div class="sidebar-links">Unrelated postings</div>
		<div class="job-description">Senior CFO. CPA certification. Budget ownership.</div>
	</body></html>`

	text, err := ExtractMainText(html)
	require.NoError(t, err)

	assert.Contains(t, text, "CPA certification")
	assert.NotContains(t, text, "Unrelated postings")
}

func TestFromURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><main><p>Needs   Python
		and SQL.</p></main></body></html>`))
	}))
	defer srv.Close()

	text, err := FromURL(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Contains(t, text, "Needs Python")
}

func TestFromURL_Non200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := FromURL(context.Background(), srv.URL)
	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, fetchErr.Error(), "unexpected status 404")
}

func TestFromURL_InvalidURL(t *testing.T) {
	_, err := FromURL(context.Background(), "not-a-url")
	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
}

func TestCleanText(t *testing.T) {
	in := "  Line one \t has   spaces  \n\n\n  Line two  \n"
	assert.Equal(t, "Line one has spaces\nLine two", CleanText(in))
}
