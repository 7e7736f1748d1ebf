package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/YarinTwito/whatsapp-smart-agent/internal/apperror"
	"github.com/YarinTwito/whatsapp-smart-agent/internal/constant"
	"github.com/YarinTwito/whatsapp-smart-agent/internal/entity"
	"github.com/YarinTwito/whatsapp-smart-agent/internal/repository/memory"
	"github.com/YarinTwito/whatsapp-smart-agent/pkg/rag"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type qaHarness struct {
	state *fakeState
	cache *memory.IndexRepository
	llm   *fakeLLM
	svc   IQaService
}

func newQaHarness() *qaHarness {
	h := &qaHarness{
		state: newFakeState(),
		cache: memory.NewIndexRepository(),
		llm:   &fakeLLM{answer: "grounded answer"},
	}

	h.svc = NewQaService(
		&fakeFactory{state: h.state},
		h.cache,
		rag.NewIndexBuilder(&fakeEmbedder{}, 1000, 200),
		&fakeEmbedder{},
		h.llm,
		nopLogger{},
		4,
	)
	return h
}

func (h *qaHarness) seedDocument(userId, text string) uuid.UUID {
	id := uuid.New()
	h.state.documents[id] = &entity.Document{
		Id:            id,
		UserId:        userId,
		Filename:      "doc.pdf",
		ExtractedText: text,
		Processed:     text != "",
		UploadedAt:    time.Now(),
	}
	return id
}

func TestAnswerFromCachedIndex(t *testing.T) {
	h := newQaHarness()
	docId := uuid.New()
	h.cache.Save(&rag.DocumentIndex{
		DocumentId: docId,
		Chunks: []rag.Chunk{
			{Index: 0, Text: "chunk one", Vector: []float32{1, 1}},
			{Index: 1, Text: "chunk two", Vector: []float32{2, 1}},
		},
	})

	answer, err := h.svc.Answer(context.Background(), "u1", docId, "what is in chunk one?")

	assert.NoError(t, err)
	assert.Equal(t, "grounded answer", answer)
}

func TestAnswerRebuildsIndexOnCacheMiss(t *testing.T) {
	h := newQaHarness()
	docId := h.seedDocument("u1", "The yearly budget is 40000 euros.")

	answer, err := h.svc.Answer(context.Background(), "u1", docId, "what is the budget?")

	assert.NoError(t, err)
	assert.Equal(t, "grounded answer", answer)

	// The rebuilt index got cached for the next question.
	_, found := h.cache.Get(docId)
	assert.True(t, found)
}

func TestAnswerUnknownDocument(t *testing.T) {
	h := newQaHarness()

	_, err := h.svc.Answer(context.Background(), "u1", uuid.New(), "anything?")

	assert.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestAnswerCrossUserDocumentIsNotFound(t *testing.T) {
	h := newQaHarness()
	docId := h.seedDocument("someone-else", "secret content")

	_, err := h.svc.Answer(context.Background(), "u1", docId, "what does it say?")

	assert.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestAnswerEmptyDocument(t *testing.T) {
	h := newQaHarness()
	docId := h.seedDocument("u1", "")

	answer, err := h.svc.Answer(context.Background(), "u1", docId, "what does it say?")

	assert.NoError(t, err)
	assert.Equal(t, constant.MsgEmptyDocument, answer)
}

func TestAnswerGenerationFailureApologizes(t *testing.T) {
	h := newQaHarness()
	h.llm.err = errors.New("model overloaded")
	docId := h.seedDocument("u1", "Some document content here.")

	answer, err := h.svc.Answer(context.Background(), "u1", docId, "summarize this")

	assert.NoError(t, err)
	assert.Equal(t, constant.MsgAnswerUnavailable, answer)
}
