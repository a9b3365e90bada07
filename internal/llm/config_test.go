package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, ProviderGemini, config.Provider)
	assert.Equal(t, "gemini-2.5-flash", config.GenerationModel)
	assert.Equal(t, "text-embedding-004", config.EmbeddingModel)
}

func TestWithGenerationModel(t *testing.T) {
	base := DefaultConfig()
	custom := base.WithGenerationModel("gemini-2.5-pro")

	assert.Equal(t, "gemini-2.5-pro", custom.GenerationModel)
	// Original config is untouched
	assert.Equal(t, "gemini-2.5-flash", base.GenerationModel)
	// Embedding model carries over
	assert.Equal(t, base.EmbeddingModel, custom.EmbeddingModel)
}

func TestWithEmbeddingModel(t *testing.T) {
	base := DefaultConfig()
	custom := base.WithEmbeddingModel("text-embedding-005")

	assert.Equal(t, "text-embedding-005", custom.EmbeddingModel)
	assert.Equal(t, "text-embedding-004", base.EmbeddingModel)
}
