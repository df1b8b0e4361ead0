package models

import (
	"encoding/json"
	"fmt"
)

type ChunkType string

const (
	ChunkSummary    ChunkType = "summary"
	ChunkSkill      ChunkType = "skill"
	ChunkContact    ChunkType = "contact"
	ChunkEducation  ChunkType = "education"
	ChunkExperience ChunkType = "experience"
	ChunkProject    ChunkType = "project"
	ChunkWebsite    ChunkType = "website"
)

// ChunkTypes lists every chunk type in emission order.
var ChunkTypes = []ChunkType{
	ChunkSummary,
	ChunkSkill,
	ChunkContact,
	ChunkEducation,
	ChunkExperience,
	ChunkProject,
	ChunkWebsite,
}

func ParseChunkType(s string) (ChunkType, error) {
	for _, t := range ChunkTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown chunk type %q", s)
}

// Metadata values are either string or []string.
type Metadata map[string]any

// UnmarshalJSON restores string lists as []string so that a decoded output
// compares equal to the chunks it was written from.
func (m *Metadata) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := make(Metadata, len(raw))
	for k, v := range raw {
		list, ok := v.([]any)
		if !ok {
			out[k] = v
			continue
		}
		strs := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return fmt.Errorf("metadata %q: list item is %T, want string", k, item)
			}
			strs = append(strs, s)
		}
		out[k] = strs
	}

	*m = out
	return nil
}

// Chunk is one unit of extracted text. Embedding stays nil until the
// embedder attaches a vector.
type Chunk struct {
	Type      ChunkType `json:"type"`
	Content   string    `json:"content"`
	Metadata  Metadata  `json:"metadata"`
	Embedding []float32 `json:"embedding,omitempty"`
}

// Output is the file consumed by the RAG lookup.
type Output struct {
	Model     string  `json:"model"`
	Dimension int     `json:"dimension"`
	Chunks    []Chunk `json:"chunks"`
}

func NewOutput(model string, chunks []Chunk) Output {
	if chunks == nil {
		chunks = []Chunk{}
	}

	dimension := 0
	if len(chunks) > 0 {
		dimension = len(chunks[0].Embedding)
	}

	return Output{
		Model:     model,
		Dimension: dimension,
		Chunks:    chunks,
	}
}
