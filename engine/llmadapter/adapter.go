package llmadapter

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// OutputShape is the response shape a caller requires from the model.
type OutputShape string

const (
	ShapeStructuredObject OutputShape = "structured-object"
	ShapeFreeText         OutputShape = "free-text"
)

// Client is the generative-model collaborator: one prompt in, raw text out.
// The text must be independently parsed by the caller.
type Client interface {
	Generate(ctx context.Context, prompt string, shape OutputShape) (string, error)
	Provenance() string
}

// Config selects and tunes the underlying model.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
}

// LangChainAdapter backs Client with a langchaingo model.
type LangChainAdapter struct {
	model llms.Model
	cfg   Config
}

func NewLangChainAdapter(cfg Config) (*LangChainAdapter, error) {
	var model llms.Model
	var err error
	switch cfg.Provider {
	case "", "openai":
		model, err = openai.New(
			openai.WithToken(cfg.APIKey),
			openai.WithModel(cfg.Model),
		)
	default:
		return nil, fmt.Errorf("unsupported model provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create model client: %w", err)
	}
	return &LangChainAdapter{model: model, cfg: cfg}, nil
}

// Generate runs a single-prompt completion. Failures come back already
// classified; no retry happens at this layer.
func (a *LangChainAdapter) Generate(ctx context.Context, prompt string, shape OutputShape) (string, error) {
	options := []llms.CallOption{}
	if a.cfg.Temperature > 0 {
		options = append(options, llms.WithTemperature(a.cfg.Temperature))
	}
	if a.cfg.MaxTokens > 0 {
		options = append(options, llms.WithMaxTokens(a.cfg.MaxTokens))
	}
	if shape == ShapeStructuredObject {
		options = append(options, llms.WithJSONMode())
	}
	out, err := llms.GenerateFromSinglePrompt(ctx, a.model, prompt, options...)
	if err != nil {
		return "", ClassifyError(err)
	}
	return out, nil
}

// Provenance identifies the interpretive engine in response metadata.
func (a *LangChainAdapter) Provenance() string {
	provider := a.cfg.Provider
	if provider == "" {
		provider = "openai"
	}
	return provider + "/" + a.cfg.Model
}
