package rag

import (
	"errors"
	"strings"
	"testing"

	"github.com/YarinTwito/whatsapp-smart-agent/pkg/embedding"

	"github.com/google/uuid"
)

type stubEmbedder struct {
	calls    int
	failures int
}

func (s *stubEmbedder) Generate(text string, taskType string) (*embedding.EmbeddingResponse, error) {
	s.calls++
	if s.failures > 0 {
		s.failures--
		return nil, errors.New("embedding backend unavailable")
	}
	// Deterministic pseudo-vector derived from the text length.
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{
			Values: []float32{float32(len(text)), 1},
		},
	}, nil
}

func TestIndexBuilderBuild(t *testing.T) {
	embedder := &stubEmbedder{}
	builder := NewIndexBuilder(embedder, 10, 2)
	docId := uuid.New()

	idx, err := builder.Build(docId, strings.Repeat("x", 25))
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	if idx.DocumentId != docId {
		t.Errorf("DocumentId = %v, want %v", idx.DocumentId, docId)
	}
	if len(idx.Chunks) == 0 {
		t.Fatal("expected at least one chunk")
	}
	if embedder.calls != len(idx.Chunks) {
		t.Errorf("embedder called %d times for %d chunks", embedder.calls, len(idx.Chunks))
	}
	for i, chunk := range idx.Chunks {
		if chunk.Index != i {
			t.Errorf("chunk %d has Index %d", i, chunk.Index)
		}
		if len(chunk.Vector) == 0 {
			t.Errorf("chunk %d has no vector", i)
		}
	}
}

func TestIndexBuilderPropagatesEmbedError(t *testing.T) {
	embedder := &stubEmbedder{failures: 1}
	builder := NewIndexBuilder(embedder, 10, 2)

	_, err := builder.Build(uuid.New(), strings.Repeat("x", 25))
	if err == nil {
		t.Fatal("expected error when embedding fails")
	}
}

func TestGroundedBuilderBuild(t *testing.T) {
	builder := NewGroundedBuilder(
		[]string{"The capital of France is Paris.", "France is in Europe."},
		"What is the capital of France?",
	)

	prompt := builder.Build()

	for _, want := range []string{
		"<reference_material>",
		"The capital of France is Paris.",
		"\n---\n",
		"<task>",
		"<guidelines>",
		"say so honestly instead of guessing",
		"<user_question>",
		"What is the capital of France?",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}
