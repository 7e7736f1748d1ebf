package memory

import (
	"testing"

	"github.com/YarinTwito/whatsapp-smart-agent/pkg/rag"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestIndexRepositorySaveAndGet(t *testing.T) {
	repo := NewIndexRepository()
	docId := uuid.New()

	repo.Save(&rag.DocumentIndex{
		DocumentId: docId,
		Chunks:     []rag.Chunk{{Index: 0, Text: "hello"}},
	})

	got, found := repo.Get(docId)
	assert.True(t, found)
	assert.Equal(t, docId, got.DocumentId)
	assert.Len(t, got.Chunks, 1)
}

func TestIndexRepositoryMiss(t *testing.T) {
	repo := NewIndexRepository()

	got, found := repo.Get(uuid.New())
	assert.False(t, found)
	assert.Nil(t, got)
}

func TestIndexRepositoryDelete(t *testing.T) {
	repo := NewIndexRepository()
	docId := uuid.New()

	repo.Save(&rag.DocumentIndex{DocumentId: docId})
	repo.Delete(docId)

	_, found := repo.Get(docId)
	assert.False(t, found)
}
