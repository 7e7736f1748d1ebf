package rag

import (
	"fmt"

	"github.com/YarinTwito/whatsapp-smart-agent/pkg/embedding"
	"github.com/YarinTwito/whatsapp-smart-agent/pkg/utils"

	"github.com/google/uuid"
)

// IndexBuilder chunks document text and embeds each chunk. The same text
// always produces the same chunk set.
type IndexBuilder struct {
	embedder  embedding.EmbeddingProvider
	chunkSize int
	overlap   int
}

func NewIndexBuilder(embedder embedding.EmbeddingProvider, chunkSize, overlap int) *IndexBuilder {
	return &IndexBuilder{
		embedder:  embedder,
		chunkSize: chunkSize,
		overlap:   overlap,
	}
}

func (b *IndexBuilder) Build(documentId uuid.UUID, text string) (*DocumentIndex, error) {
	pieces := utils.SplitText(text, b.chunkSize, b.overlap)

	chunks := make([]Chunk, 0, len(pieces))
	for i, piece := range pieces {
		res, err := b.embedder.Generate(piece, "RETRIEVAL_DOCUMENT")
		if err != nil {
			return nil, fmt.Errorf("embed chunk %d: %w", i, err)
		}
		chunks = append(chunks, Chunk{
			Index:  i,
			Text:   piece,
			Vector: res.Embedding.Values,
		})
	}

	return &DocumentIndex{
		DocumentId: documentId,
		Chunks:     chunks,
	}, nil
}
