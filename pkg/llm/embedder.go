package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xhad/profile-embed/internal/models"
	"github.com/xhad/profile-embed/internal/types"
)

const (
	ProviderTEI    = "tei"
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"
	ProviderHash   = "hash"

	DefaultModel     = "all-MiniLM-L6-v2"
	DefaultDimension = 384
)

var (
	ErrUnknownProvider   = errors.New("unknown embedding provider")
	ErrCountMismatch     = errors.New("embedding count does not match input count")
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)

// EmbedderConfig selects and configures the embedding backend.
type EmbedderConfig struct {
	Provider string
	Model    string
	BaseURL  string
	APIKey   string
	// Dimension, when set, is the vector length every embedding must have.
	// The hash provider uses it as its output size.
	Dimension int
	Timeout   time.Duration
}

// Embedder attaches vectors from an external model to extracted chunks.
type Embedder struct {
	Config EmbedderConfig
	Embed  types.Embedder
}

func NewEmbedderWithConfig(config EmbedderConfig) (*Embedder, error) {
	if config.Provider == "" {
		config.Provider = ProviderTEI
	}
	if config.Model == "" {
		config.Model = DefaultModel
	}
	if config.Timeout == 0 {
		config.Timeout = 60 * time.Second
	}

	var (
		backend types.Embedder
		err     error
	)
	switch config.Provider {
	case ProviderTEI:
		backend = NewTEIClient(config.BaseURL, config.Timeout)
	case ProviderOllama:
		backend, err = NewOllamaEmbedder(config.Model, config.BaseURL)
	case ProviderOpenAI:
		backend, err = NewOpenAIEmbedder(config.Model, config.BaseURL, config.APIKey)
	case ProviderHash:
		dim := config.Dimension
		if dim == 0 {
			dim = DefaultDimension
		}
		backend = NewHashEmbedder(dim)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, config.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s embedder: %w", config.Provider, err)
	}

	return &Embedder{
		Config: config,
		Embed:  backend,
	}, nil
}

// NewEmbedder wraps an already constructed backend.
func NewEmbedder(config EmbedderConfig, backend types.Embedder) *Embedder {
	return &Embedder{
		Config: config,
		Embed:  backend,
	}
}

func (e *Embedder) ModelName() string {
	return e.Config.Model
}

// Attach encodes every chunk's content in a single call and stores the
// vectors on the chunks. The chunks are left untouched on any error.
func (e *Embedder) Attach(ctx context.Context, chunks []models.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Content
	}

	vectors, err := e.Embed.CreateEmbedding(ctx, texts)
	if err != nil {
		return fmt.Errorf("failed to create embeddings: %w", err)
	}

	if err := e.checkShape(vectors, len(texts)); err != nil {
		return err
	}

	for i := range chunks {
		chunks[i].Embedding = vectors[i]
	}
	return nil
}

func (e *Embedder) checkShape(vectors [][]float32, want int) error {
	if len(vectors) != want {
		return fmt.Errorf("%w: got %d vectors for %d texts", ErrCountMismatch, len(vectors), want)
	}

	dim := len(vectors[0])
	if dim == 0 {
		return fmt.Errorf("%w: empty vector", ErrDimensionMismatch)
	}
	if e.Config.Dimension > 0 && dim != e.Config.Dimension {
		return fmt.Errorf("%w: model returned %d, expected %d", ErrDimensionMismatch, dim, e.Config.Dimension)
	}
	for i, v := range vectors {
		if len(v) != dim {
			return fmt.Errorf("%w: vector %d has length %d, vector 0 has %d", ErrDimensionMismatch, i, len(v), dim)
		}
	}
	return nil
}
