package types

import (
	"context"

	"github.com/xhad/profile-embed/internal/models"
)

// Core interfaces
type Embedder interface {
	CreateEmbedding(ctx context.Context, texts []string) ([][]float32, error)
}

type Processor interface {
	Process(profile *models.Profile) ([]models.Chunk, error)
}

type Sink interface {
	Store(ctx context.Context, model string, chunks []models.Chunk) error
	Close()
}
