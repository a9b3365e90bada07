// Package llm provides centralized LLM configuration and client abstractions.
// Both text generation and embedding calls go through the Client interface so
// the pipeline never hard-depends on a single vendor's call shape.
package llm

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
	// ProviderOpenAI is the OpenAI provider (future)
	ProviderOpenAI Provider = "openai"
)

// Config holds the model configuration for the application
type Config struct {
	Provider        Provider
	GenerationModel string
	EmbeddingModel  string
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return &Config{
		Provider:        ProviderGemini,
		GenerationModel: "gemini-2.5-flash",
		EmbeddingModel:  "text-embedding-004",
	}
}

// WithGenerationModel returns a copy of the config with a different generation model.
func (c *Config) WithGenerationModel(model string) *Config {
	out := *c
	out.GenerationModel = model
	return &out
}

// WithEmbeddingModel returns a copy of the config with a different embedding model.
func (c *Config) WithEmbeddingModel(model string) *Config {
	out := *c
	out.EmbeddingModel = model
	return &out
}
