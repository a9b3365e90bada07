package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_KnownPrompts(t *testing.T) {
	ClearCache()

	normalizer, err := Get("normalizer.json", "normalizer-v1")
	require.NoError(t, err)
	assert.Contains(t, normalizer, "[SUMMARY], [SKILLS], [EXPERIENCE], [EDUCATION]")
	assert.Contains(t, normalizer, "DO NOT add any extra commentary")

	feedback, err := Get("feedback.json", "feedback-v1")
	require.NoError(t, err)
	assert.Contains(t, feedback, "RED ZONE")
	assert.Contains(t, feedback, "GREEN ZONE")
	assert.Contains(t, feedback, "age, gender")

	rewrite, err := Get("rewrite.json", "rewrite-v1")
	require.NoError(t, err)
	assert.Contains(t, rewrite, "NEVER invent experience")
}

func TestGet_UnknownKey(t *testing.T) {
	_, err := Get("normalizer.json", "normalizer-v99")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "normalizer-v99")
}

func TestGet_UnknownFile(t *testing.T) {
	_, err := Get("missing.json", "anything")
	require.Error(t, err)
}

func TestFormat(t *testing.T) {
	out := Format("JD:\n{{.JobDescription}}\nResume:\n{{.CandidateResume}}", map[string]string{
		"JobDescription":  "Needs Python",
		"CandidateResume": "Python expert",
	})
	assert.Equal(t, "JD:\nNeeds Python\nResume:\nPython expert", out)
}

func TestMustGet_PanicsOnMissing(t *testing.T) {
	assert.Panics(t, func() {
		MustGet("normalizer.json", "does-not-exist")
	})
}
