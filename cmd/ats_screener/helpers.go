package main

import (
	"context"
	"fmt"

	"github.com/jmorrow/compliant-ats/internal/config"
	"github.com/jmorrow/compliant-ats/internal/llm"
)

// defaultConfig carries the baseline settings merged under any config file.
func defaultConfig() config.Config {
	llmDefaults := llm.DefaultConfig()
	return config.Config{
		GenerationModel: llmDefaults.GenerationModel,
		EmbeddingModel:  llmDefaults.EmbeddingModel,
		Concurrency:     4,
		Port:            8080,
	}
}

// loadConfig resolves the effective configuration from the optional config
// file plus defaults.
func loadConfig() (config.Config, error) {
	merged := defaultConfig()
	if configPath != "" {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return config.Config{}, err
		}
		if err := cfg.Validate(); err != nil {
			return config.Config{}, err
		}
		merged = cfg.MergeWithDefaults(merged)
	}
	if flagVerbose {
		merged.Verbose = true
	}
	return merged, nil
}

// newLLMClient builds a Gemini client from the effective configuration.
// A missing API key fails here, before any documents are touched.
func newLLMClient(ctx context.Context, cfg config.Config) (llm.Client, error) {
	apiKey, err := config.ResolveAPIKey(&cfg)
	if err != nil {
		return nil, err
	}

	llmConfig := llm.DefaultConfig().
		WithGenerationModel(cfg.GenerationModel).
		WithEmbeddingModel(cfg.EmbeddingModel)

	client, err := llm.NewClient(ctx, llmConfig, apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return client, nil
}
