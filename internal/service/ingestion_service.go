package service

import (
	"context"
	"fmt"
	"time"

	"github.com/YarinTwito/whatsapp-smart-agent/internal/apperror"
	"github.com/YarinTwito/whatsapp-smart-agent/internal/constant"
	"github.com/YarinTwito/whatsapp-smart-agent/internal/entity"
	"github.com/YarinTwito/whatsapp-smart-agent/internal/pkg/logger"
	"github.com/YarinTwito/whatsapp-smart-agent/internal/pkg/syncutil"
	"github.com/YarinTwito/whatsapp-smart-agent/internal/repository/unitofwork"
	"github.com/YarinTwito/whatsapp-smart-agent/pkg/events"
	pktNats "github.com/YarinTwito/whatsapp-smart-agent/pkg/nats"
	"github.com/YarinTwito/whatsapp-smart-agent/pkg/pdf"
	"github.com/YarinTwito/whatsapp-smart-agent/pkg/rag"
	"github.com/YarinTwito/whatsapp-smart-agent/pkg/whatsapp"

	"github.com/google/uuid"
)

// Gate failures. The dispatcher matches on these to pick the right reply.
var (
	ErrNotPDF       = apperror.NewValidation("document is not a PDF")
	ErrFileTooLarge = apperror.NewValidation("document exceeds the upload size limit")
)

// IngestRequest carries one downloaded attachment through the pipeline.
// Seq is the session upload sequence captured when the upload arrived.
type IngestRequest struct {
	UserId      string
	DisplayName string
	Data        []byte
	Filename    string
	MimeType    string
	Seq         int64
}

type IIngestionService interface {
	Ingest(ctx context.Context, req *IngestRequest) error
}

type ingestionService struct {
	uowFactory     unitofwork.RepositoryFactory
	indexCache     rag.IndexCache
	builder        *rag.IndexBuilder
	extractor      pdf.Extractor
	sender         whatsapp.Sender
	locks          *syncutil.KeyedMutex
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
	maxDocs        int
	maxBytes       int
	attempts       int
}

func NewIngestionService(
	uowFactory unitofwork.RepositoryFactory,
	indexCache rag.IndexCache,
	builder *rag.IndexBuilder,
	extractor pdf.Extractor,
	sender whatsapp.Sender,
	locks *syncutil.KeyedMutex,
	eventPublisher *pktNats.Publisher,
	logger logger.ILogger,
	maxDocs, maxBytes, attempts int,
) IIngestionService {
	return &ingestionService{
		uowFactory:     uowFactory,
		indexCache:     indexCache,
		builder:        builder,
		extractor:      extractor,
		sender:         sender,
		locks:          locks,
		eventPublisher: eventPublisher,
		logger:         logger,
		maxDocs:        maxDocs,
		maxBytes:       maxBytes,
		attempts:       attempts,
	}
}

// Ingest runs the full pipeline: gate, quota eviction, record creation,
// bounded extraction retries, chunk+embed, persist, activate. The per-user
// lock is held only around the two state mutations; extraction and embedding
// run unlocked so other messages from the same user keep flowing.
func (s *ingestionService) Ingest(ctx context.Context, req *IngestRequest) error {
	if !pdf.IsPDF(req.MimeType, req.Filename) {
		return ErrNotPDF
	}
	if len(req.Data) > s.maxBytes {
		return ErrFileTooLarge
	}

	document, err := s.admitDocument(ctx, req)
	if err != nil {
		return err
	}

	s.notify(ctx, req.UserId, fmt.Sprintf(constant.MsgProcessingStartedFmt, req.Filename))

	text, err := s.extractWithRetries(req.Data)
	if err != nil {
		// The document row stays; it shows up in /list but can't answer.
		s.notify(ctx, req.UserId, fmt.Sprintf(constant.MsgProcessingFailedFmt, req.Filename))
		return apperror.NewTransient("extract document text", err)
	}

	index, err := s.builder.Build(document.Id, text)
	if err != nil {
		s.persistText(ctx, document, text, false)
		s.notify(ctx, req.UserId, fmt.Sprintf(constant.MsgProcessingFailedFmt, req.Filename))
		return apperror.NewTransient("build retrieval index", err)
	}
	s.indexCache.Save(index)

	if err := s.persistAndActivate(ctx, req, document, text); err != nil {
		return err
	}

	s.notify(ctx, req.UserId, fmt.Sprintf(constant.MsgProcessingCompleteFmt, req.Filename))
	s.publishIngested(ctx, req.UserId, document.Id, len(index.Chunks))

	return nil
}

// admitDocument enforces the per-user quota and creates the document row,
// all inside one transaction under the user lock. When the quota is full the
// oldest document is evicted and any session reference to it cleared.
func (s *ingestionService) admitDocument(ctx context.Context, req *IngestRequest) (*entity.Document, error) {
	s.locks.Lock(req.UserId)
	defer s.locks.Unlock(req.UserId)

	uow := s.uowFactory.NewUnitOfWork(ctx)

	count, err := uow.DocumentRepository().CountByUserId(ctx, req.UserId)
	if err != nil {
		return nil, apperror.NewTransient("count user documents", err)
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.NewTransient("begin admit transaction", err)
	}
	defer uow.Rollback()

	var evictedId *uuid.UUID
	if count >= int64(s.maxDocs) {
		oldest, err := uow.DocumentRepository().FindOldestByUserId(ctx, req.UserId)
		if err != nil {
			return nil, apperror.NewTransient("find oldest document", err)
		}
		if oldest != nil {
			if err := uow.DocumentRepository().Delete(ctx, oldest.Id); err != nil {
				return nil, apperror.NewTransient("evict oldest document", err)
			}
			if err := s.clearSessionReference(ctx, uow, req.UserId, oldest.Id); err != nil {
				return nil, err
			}
			evictedId = &oldest.Id
		}
	}

	document := &entity.Document{
		Id:             uuid.New(),
		UserId:         req.UserId,
		Filename:       req.Filename,
		WhatsappFileId: "",
		UploadedAt:     time.Now(),
	}
	if err := uow.DocumentRepository().Create(ctx, document); err != nil {
		return nil, apperror.NewTransient("create document record", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, apperror.NewTransient("commit admit transaction", err)
	}

	if evictedId != nil {
		s.indexCache.Delete(*evictedId)
		s.logger.Info("ingestion", "evicted oldest document for quota", map[string]interface{}{
			"user_id":     req.UserId,
			"document_id": evictedId.String(),
		})
	}

	return document, nil
}

// clearSessionReference detaches the session from a document being deleted,
// in the same transaction as the deletion.
func (s *ingestionService) clearSessionReference(ctx context.Context, uow unitofwork.UnitOfWork, userId string, documentId uuid.UUID) error {
	session, err := uow.UserSessionRepository().FindByUserId(ctx, userId)
	if err != nil {
		return apperror.NewTransient("load session for reference cleanup", err)
	}
	if session == nil || session.ActiveDocumentId == nil || *session.ActiveDocumentId != documentId {
		return nil
	}

	session.ActiveDocumentId = nil
	if session.Mode == constant.SessionModeActive {
		session.Mode = constant.SessionModeWelcomed
	}
	if err := uow.UserSessionRepository().Update(ctx, session); err != nil {
		return apperror.NewTransient("clear session document reference", err)
	}
	return nil
}

func (s *ingestionService) extractWithRetries(data []byte) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= s.attempts; attempt++ {
		text, err := s.extractor.Extract(data)
		if err == nil && text != "" {
			return text, nil
		}
		if err != nil {
			lastErr = err
		} else {
			lastErr = fmt.Errorf("no extractable text")
		}
		if attempt < s.attempts {
			time.Sleep(500 * time.Millisecond)
		}
	}
	return "", fmt.Errorf("extraction failed after %d attempts: %w", s.attempts, lastErr)
}

// persistAndActivate stores the extracted text and flips the session's
// active document, but only if this upload still holds the latest sequence
// number. A newer upload wins the race.
func (s *ingestionService) persistAndActivate(ctx context.Context, req *IngestRequest, document *entity.Document, text string) error {
	s.locks.Lock(req.UserId)
	defer s.locks.Unlock(req.UserId)

	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return apperror.NewTransient("begin activation transaction", err)
	}
	defer uow.Rollback()

	document.ExtractedText = text
	document.Processed = true
	if err := uow.DocumentRepository().Update(ctx, document); err != nil {
		return apperror.NewTransient("persist extracted text", err)
	}

	session, err := uow.UserSessionRepository().FindByUserId(ctx, req.UserId)
	if err != nil {
		return apperror.NewTransient("load session for activation", err)
	}
	if session != nil && session.UploadSeq == req.Seq {
		session.ActiveDocumentId = &document.Id
		session.Mode = constant.SessionModeActive
		if err := uow.UserSessionRepository().Update(ctx, session); err != nil {
			return apperror.NewTransient("activate document", err)
		}
	}

	if err := uow.Commit(); err != nil {
		return apperror.NewTransient("commit activation transaction", err)
	}
	return nil
}

// persistText best-effort stores extracted text without activation, used
// when indexing failed but the text itself was recovered.
func (s *ingestionService) persistText(ctx context.Context, document *entity.Document, text string, processed bool) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	document.ExtractedText = text
	document.Processed = processed
	if err := uow.DocumentRepository().Update(ctx, document); err != nil {
		s.logger.Error("ingestion", "failed to persist extracted text", map[string]interface{}{
			"document_id": document.Id.String(),
			"error":       err.Error(),
		})
	}
}

func (s *ingestionService) notify(ctx context.Context, userId, body string) {
	if err := s.sender.SendText(ctx, userId, body); err != nil {
		s.logger.Warn("ingestion", "failed to send notification", map[string]interface{}{
			"user_id": userId,
			"error":   err.Error(),
		})
	}
}

func (s *ingestionService) publishIngested(ctx context.Context, userId string, documentId uuid.UUID, chunkCount int) {
	if s.eventPublisher == nil {
		return
	}
	evt := events.BaseEvent{
		Type: events.TypeDocumentIngested,
		Data: map[string]interface{}{
			"user_id":     userId,
			"document_id": documentId.String(),
			"chunks":      chunkCount,
		},
		OccurredAt: time.Now(),
	}
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("ingestion", "failed to publish ingested event", map[string]interface{}{
			"document_id": documentId.String(),
			"error":       err.Error(),
		})
	}
}
