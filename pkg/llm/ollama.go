package llm

import (
	"context"

	"github.com/tmc/langchaingo/llms/ollama"
)

const defaultOllamaURL = "http://localhost:11434"

// OllamaEmbedder embeds through a local Ollama server, e.g. with the
// all-minilm model.
type OllamaEmbedder struct {
	llm *ollama.LLM
}

func NewOllamaEmbedder(model, baseURL string) (*OllamaEmbedder, error) {
	if baseURL == "" {
		baseURL = defaultOllamaURL
	}

	llm, err := ollama.New(ollama.WithModel(model), ollama.WithServerURL(baseURL))
	if err != nil {
		return nil, err
	}

	return &OllamaEmbedder{llm: llm}, nil
}

func (o *OllamaEmbedder) CreateEmbedding(ctx context.Context, texts []string) ([][]float32, error) {
	return o.llm.CreateEmbedding(ctx, texts)
}
