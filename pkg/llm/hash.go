package llm

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"math"
)

// HashEmbedder derives unit vectors from sha256 digests of the text. Equal
// texts get equal vectors. It needs no model and is meant for dry runs and
// tests, not for similarity search.
type HashEmbedder struct {
	dim int
}

func NewHashEmbedder(dim int) *HashEmbedder {
	return &HashEmbedder{dim: dim}
}

func (h *HashEmbedder) CreateEmbedding(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out[i] = h.embed(text)
	}
	return out, nil
}

func (h *HashEmbedder) embed(text string) []float32 {
	vec := make([]float32, h.dim)

	var (
		block  [sha256.Size]byte
		seed   [4]byte
		offset = sha256.Size
		round  uint32
	)
	for i := range vec {
		if offset+4 > sha256.Size {
			binary.BigEndian.PutUint32(seed[:], round)
			block = sha256.Sum256(append(seed[:], text...))
			offset = 0
			round++
		}
		v := binary.BigEndian.Uint32(block[offset : offset+4])
		vec[i] = float32(v)/math.MaxUint32*2 - 1
		offset += 4
	}

	normalize(vec)
	return vec
}

func normalize(vec []float32) {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for i, v := range vec {
		vec[i] = float32(float64(v) / norm)
	}
}
