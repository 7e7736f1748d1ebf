package service

import (
	"context"
	"time"

	"github.com/YarinTwito/whatsapp-smart-agent/internal/apperror"
	"github.com/YarinTwito/whatsapp-smart-agent/internal/constant"
	"github.com/YarinTwito/whatsapp-smart-agent/internal/pkg/logger"
	"github.com/YarinTwito/whatsapp-smart-agent/internal/repository/unitofwork"
	"github.com/YarinTwito/whatsapp-smart-agent/pkg/embedding"
	"github.com/YarinTwito/whatsapp-smart-agent/pkg/llm"
	"github.com/YarinTwito/whatsapp-smart-agent/pkg/rag"

	"github.com/google/uuid"
)

type IQaService interface {
	// Answer returns the reply text for a grounded question against one
	// document. Failures inside generation come back as apology text, not
	// errors; only missing documents surface an error.
	Answer(ctx context.Context, userId string, documentId uuid.UUID, question string) (string, error)
}

type qaService struct {
	uowFactory  unitofwork.RepositoryFactory
	indexCache  rag.IndexCache
	builder     *rag.IndexBuilder
	embedder    embedding.EmbeddingProvider
	llmProvider llm.LLMProvider
	logger      logger.ILogger
	topK        int
}

func NewQaService(
	uowFactory unitofwork.RepositoryFactory,
	indexCache rag.IndexCache,
	builder *rag.IndexBuilder,
	embedder embedding.EmbeddingProvider,
	llmProvider llm.LLMProvider,
	logger logger.ILogger,
	topK int,
) IQaService {
	return &qaService{
		uowFactory:  uowFactory,
		indexCache:  indexCache,
		builder:     builder,
		embedder:    embedder,
		llmProvider: llmProvider,
		logger:      logger,
		topK:        topK,
	}
}

func (s *qaService) Answer(ctx context.Context, userId string, documentId uuid.UUID, question string) (string, error) {
	index, found := s.indexCache.Get(documentId)
	if !found {
		rebuilt, err := s.rebuildIndex(ctx, userId, documentId)
		if err != nil {
			if apperror.IsNotFound(err) {
				return "", err
			}
			return constant.MsgAnswerUnavailable, nil
		}
		if rebuilt == nil {
			// Document has no extractable text; nothing to ground on.
			return constant.MsgEmptyDocument, nil
		}
		index = rebuilt
	}

	queryRes, err := s.embedder.Generate(question, "RETRIEVAL_QUERY")
	if err != nil {
		s.logFailure(documentId, question, err)
		return constant.MsgAnswerUnavailable, nil
	}

	top := index.Search(queryRes.Embedding.Values, s.topK)
	chunks := make([]string, len(top))
	for i, scored := range top {
		chunks[i] = scored.Chunk.Text
	}

	prompt := rag.NewGroundedBuilder(chunks, question).Build()

	genCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	answer, err := s.llmProvider.Generate(genCtx, prompt, llm.WithTemperature(0.2))
	if err != nil {
		s.logFailure(documentId, question, err)
		return constant.MsgAnswerUnavailable, nil
	}

	return answer, nil
}

// rebuildIndex reloads the persisted text and rebuilds the in-memory index.
// Returns nil (no error) when the document has no extractable text.
func (s *qaService) rebuildIndex(ctx context.Context, userId string, documentId uuid.UUID) (*rag.DocumentIndex, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	document, err := uow.DocumentRepository().FindById(ctx, documentId, userId)
	if err != nil {
		return nil, apperror.NewTransient("load document for index rebuild", err)
	}
	if document == nil {
		return nil, apperror.NewNotFound("document not found")
	}
	if document.ExtractedText == "" {
		return nil, nil
	}

	index, err := s.builder.Build(documentId, document.ExtractedText)
	if err != nil {
		s.logFailure(documentId, "", err)
		return nil, apperror.NewTransient("rebuild retrieval index", err)
	}

	s.indexCache.Save(index)
	return index, nil
}

func (s *qaService) logFailure(documentId uuid.UUID, question string, err error) {
	truncated := question
	if len(truncated) > 120 {
		truncated = truncated[:120]
	}
	s.logger.Error("qa", "answer generation failed", map[string]interface{}{
		"document_id": documentId.String(),
		"question":    truncated,
		"error":       err.Error(),
	})
}
