package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/xhad/profile-embed/internal/models"
)

type TypeCount struct {
	Type  models.ChunkType
	Count int
}

// CountByType tallies chunks per type in the order types first appear.
func CountByType(chunks []models.Chunk) []TypeCount {
	var counts []TypeCount
	index := make(map[models.ChunkType]int)

	for _, c := range chunks {
		i, ok := index[c.Type]
		if !ok {
			i = len(counts)
			index[c.Type] = i
			counts = append(counts, TypeCount{Type: c.Type})
		}
		counts[i].Count++
	}
	return counts
}

// Summary is what gets printed after a run.
type Summary struct {
	Path      string
	Model     string
	Dimension int
	Chunks    []models.Chunk
	DryRun    bool
}

func Print(w io.Writer, s Summary) {
	green := color.New(color.FgGreen).FprintfFunc()
	cyan := color.New(color.FgCyan).FprintfFunc()

	if s.DryRun {
		cyan(w, "\nDry run: extracted %d chunks, nothing written\n", len(s.Chunks))
	} else {
		green(w, "\n✓ Saved %d embeddings to %s\n", len(s.Chunks), s.Path)
		fmt.Fprintf(w, "Model: %s\n", s.Model)
		fmt.Fprintf(w, "Embedding dimension: %d\n", s.Dimension)
	}

	cyan(w, "\nChunks by type:\n")
	for _, tc := range CountByType(s.Chunks) {
		fmt.Fprintf(w, "  %s: %d\n", tc.Type, tc.Count)
	}
}
