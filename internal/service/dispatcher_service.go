package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/YarinTwito/whatsapp-smart-agent/internal/apperror"
	"github.com/YarinTwito/whatsapp-smart-agent/internal/constant"
	"github.com/YarinTwito/whatsapp-smart-agent/internal/entity"
	"github.com/YarinTwito/whatsapp-smart-agent/internal/pkg/logger"
	"github.com/YarinTwito/whatsapp-smart-agent/internal/pkg/mailer"
	"github.com/YarinTwito/whatsapp-smart-agent/internal/pkg/syncutil"
	"github.com/YarinTwito/whatsapp-smart-agent/internal/repository/contract"
	"github.com/YarinTwito/whatsapp-smart-agent/internal/repository/unitofwork"
	"github.com/YarinTwito/whatsapp-smart-agent/pkg/events"
	pktNats "github.com/YarinTwito/whatsapp-smart-agent/pkg/nats"
	"github.com/YarinTwito/whatsapp-smart-agent/pkg/pdf"
	"github.com/YarinTwito/whatsapp-smart-agent/pkg/rag"
	"github.com/YarinTwito/whatsapp-smart-agent/pkg/router"
	"github.com/YarinTwito/whatsapp-smart-agent/pkg/whatsapp"

	"github.com/google/uuid"
)

type IDispatcherService interface {
	HandleEvent(ctx context.Context, event *whatsapp.Event) error
}

type dispatcherService struct {
	uowFactory     unitofwork.RepositoryFactory
	processed      contract.ProcessedMessageRepository
	locks          *syncutil.KeyedMutex
	sender         whatsapp.Sender
	media          whatsapp.MediaFetcher
	ingestion      IIngestionService
	qa             IQaService
	indexCache     rag.IndexCache
	emailService   mailer.IEmailService
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
	maxUploadBytes int
}

func NewDispatcherService(
	uowFactory unitofwork.RepositoryFactory,
	processed contract.ProcessedMessageRepository,
	locks *syncutil.KeyedMutex,
	sender whatsapp.Sender,
	media whatsapp.MediaFetcher,
	ingestion IIngestionService,
	qa IQaService,
	indexCache rag.IndexCache,
	emailService mailer.IEmailService,
	eventPublisher *pktNats.Publisher,
	logger logger.ILogger,
	maxUploadBytes int,
) IDispatcherService {
	return &dispatcherService{
		uowFactory:     uowFactory,
		processed:      processed,
		locks:          locks,
		sender:         sender,
		media:          media,
		ingestion:      ingestion,
		qa:             qa,
		indexCache:     indexCache,
		emailService:   emailService,
		eventPublisher: eventPublisher,
		logger:         logger,
		maxUploadBytes: maxUploadBytes,
	}
}

// HandleEvent runs one inbound event through dedup, then the state machine.
// Duplicate deliveries are dropped before any side effect.
func (s *dispatcherService) HandleEvent(ctx context.Context, event *whatsapp.Event) error {
	if event.Kind == whatsapp.KindStatus {
		return nil
	}

	first, err := s.processed.MarkProcessed(ctx, event.MessageId)
	if err != nil {
		// Dedup store down: process anyway, at-least-once beats dropping.
		s.logger.Warn("dispatcher", "idempotency store unavailable", map[string]interface{}{
			"message_id": event.MessageId,
			"error":      err.Error(),
		})
	} else if !first {
		s.logger.Info("dispatcher", "dropping duplicate delivery", map[string]interface{}{
			"message_id": event.MessageId,
		})
		return nil
	}

	switch event.Kind {
	case whatsapp.KindDocument:
		return s.handleDocument(ctx, event)
	case whatsapp.KindText:
		return s.handleText(ctx, event)
	default:
		s.reply(ctx, event.UserId, constant.MsgUnsupportedType)
		return nil
	}
}

func (s *dispatcherService) handleDocument(ctx context.Context, event *whatsapp.Event) error {
	if event.Document == nil {
		s.reply(ctx, event.UserId, constant.MsgUnsupportedType)
		return nil
	}
	if !pdf.IsPDF(event.Document.MimeType, event.Document.Filename) {
		s.reply(ctx, event.UserId, constant.MsgNotPDF)
		return nil
	}

	seq, err := s.bumpUploadSeq(ctx, event)
	if err != nil {
		return err
	}

	fetchCtx, cancel := context.WithTimeout(ctx, 60*time.Second)
	data, err := s.media.FetchMedia(fetchCtx, event.Document.MediaId)
	cancel()
	if err != nil {
		s.logger.Error("dispatcher", "media download failed", map[string]interface{}{
			"user_id":  event.UserId,
			"media_id": event.Document.MediaId,
			"error":    err.Error(),
		})
		s.reply(ctx, event.UserId, constant.MsgDownloadFailed)
		return nil
	}

	err = s.ingestion.Ingest(ctx, &IngestRequest{
		UserId:      event.UserId,
		DisplayName: event.DisplayName,
		Data:        data,
		Filename:    event.Document.Filename,
		MimeType:    event.Document.MimeType,
		Seq:         seq,
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotPDF):
		s.reply(ctx, event.UserId, constant.MsgNotPDF)
		return nil
	case errors.Is(err, ErrFileTooLarge):
		s.reply(ctx, event.UserId, fmt.Sprintf(constant.MsgFileTooLargeFmt, s.maxUploadBytes/(1024*1024)))
		return nil
	default:
		// The pipeline already notified the user about the failure.
		s.logger.Error("dispatcher", "ingestion failed", map[string]interface{}{
			"user_id":  event.UserId,
			"filename": event.Document.Filename,
			"error":    err.Error(),
		})
		return nil
	}
}

// bumpUploadSeq claims the next upload sequence number for this user so a
// later upload can outrace a slow earlier one.
func (s *dispatcherService) bumpUploadSeq(ctx context.Context, event *whatsapp.Event) (int64, error) {
	s.locks.Lock(event.UserId)
	defer s.locks.Unlock(event.UserId)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := s.ensureSession(ctx, uow, event.UserId, event.DisplayName)
	if err != nil {
		return 0, err
	}

	session.UploadSeq++
	if err := uow.UserSessionRepository().Update(ctx, session); err != nil {
		return 0, apperror.NewTransient("bump upload sequence", err)
	}
	return session.UploadSeq, nil
}

func (s *dispatcherService) handleText(ctx context.Context, event *whatsapp.Event) error {
	text := strings.TrimSpace(event.Text)
	if text == "" {
		return nil
	}

	s.locks.Lock(event.UserId)
	unlocked := false
	unlock := func() {
		if !unlocked {
			unlocked = true
			s.locks.Unlock(event.UserId)
		}
	}
	defer unlock()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := s.ensureSession(ctx, uow, event.UserId, event.DisplayName)
	if err != nil {
		return err
	}

	// Capture modes consume the next free-text message, commands included.
	if session.Mode == constant.SessionModeAwaitingReport {
		return s.captureReport(ctx, uow, session, event, text, unlock)
	}
	if session.Mode == constant.SessionModeAwaitingFeedback {
		return s.captureFeedback(ctx, uow, session, event, text, unlock)
	}

	if cmd, ok := router.ParseCommand(text); ok {
		reply, err := s.executeCommand(ctx, uow, session, cmd)
		unlock()
		if err != nil {
			return err
		}
		s.reply(ctx, event.UserId, reply)
		return nil
	}

	if intent := router.DetectIntent(text); intent != router.IntentNone {
		unlock()
		switch intent {
		case router.IntentUpload:
			s.reply(ctx, event.UserId, constant.MsgUploadIntent)
		case router.IntentThanks:
			s.reply(ctx, event.UserId, constant.MsgThanksReply)
		case router.IntentCapabilities:
			s.reply(ctx, event.UserId, constant.MsgCapabilities)
		}
		return nil
	}

	// First contact gets the welcome exactly once.
	if session.Mode == constant.SessionModeNew {
		session.Mode = constant.SessionModeWelcomed
		if err := uow.UserSessionRepository().Update(ctx, session); err != nil {
			return apperror.NewTransient("mark session welcomed", err)
		}
		unlock()
		name := event.DisplayName
		if name == "" {
			name = "there"
		}
		s.reply(ctx, event.UserId, fmt.Sprintf(constant.MsgWelcomeFmt, name))
		return nil
	}

	if session.ActiveDocumentId == nil {
		unlock()
		s.reply(ctx, event.UserId, constant.MsgUploadPrompt)
		return nil
	}

	documentId := *session.ActiveDocumentId
	unlock()

	answer, err := s.qa.Answer(ctx, event.UserId, documentId, text)
	if err != nil {
		if apperror.IsNotFound(err) {
			s.reply(ctx, event.UserId, constant.MsgUploadPrompt)
			return nil
		}
		return err
	}
	s.reply(ctx, event.UserId, answer)
	return nil
}

func (s *dispatcherService) captureReport(
	ctx context.Context,
	uow unitofwork.UnitOfWork,
	session *entity.UserSession,
	event *whatsapp.Event,
	text string,
	unlock func(),
) error {
	report := &entity.BugReport{
		Id:          uuid.New(),
		UserId:      event.UserId,
		UserName:    event.DisplayName,
		Content:     text,
		Status:      constant.ReportStatusOpen,
		SubmittedAt: time.Now(),
	}

	if err := uow.Begin(ctx); err != nil {
		return apperror.NewTransient("begin report capture", err)
	}
	defer uow.Rollback()

	if err := uow.BugReportRepository().Create(ctx, report); err != nil {
		return apperror.NewTransient("store bug report", err)
	}

	s.restoreMode(session)
	if err := uow.UserSessionRepository().Update(ctx, session); err != nil {
		return apperror.NewTransient("restore session mode", err)
	}

	if err := uow.Commit(); err != nil {
		return apperror.NewTransient("commit report capture", err)
	}
	unlock()

	s.reply(ctx, event.UserId, constant.MsgReportThanks)

	go func() {
		if err := s.emailService.SendBugReportAlert(report.Id.String(), report.UserName, report.Content); err != nil {
			s.logger.Warn("dispatcher", "bug report alert email failed", map[string]interface{}{
				"report_id": report.Id.String(),
				"error":     err.Error(),
			})
		}
	}()
	s.publishEvent(ctx, events.TypeReportFiled, map[string]interface{}{
		"report_id": report.Id.String(),
		"user_id":   event.UserId,
	})
	return nil
}

func (s *dispatcherService) captureFeedback(
	ctx context.Context,
	uow unitofwork.UnitOfWork,
	session *entity.UserSession,
	event *whatsapp.Event,
	text string,
	unlock func(),
) error {
	feedback := &entity.Feedback{
		Id:          uuid.New(),
		UserId:      event.UserId,
		UserName:    event.DisplayName,
		Content:     text,
		SubmittedAt: time.Now(),
	}

	if err := uow.Begin(ctx); err != nil {
		return apperror.NewTransient("begin feedback capture", err)
	}
	defer uow.Rollback()

	if err := uow.FeedbackRepository().Create(ctx, feedback); err != nil {
		return apperror.NewTransient("store feedback", err)
	}

	s.restoreMode(session)
	if err := uow.UserSessionRepository().Update(ctx, session); err != nil {
		return apperror.NewTransient("restore session mode", err)
	}

	if err := uow.Commit(); err != nil {
		return apperror.NewTransient("commit feedback capture", err)
	}
	unlock()

	s.reply(ctx, event.UserId, constant.MsgFeedbackThanks)
	s.publishEvent(ctx, events.TypeFeedbackFiled, map[string]interface{}{
		"feedback_id": feedback.Id.String(),
		"user_id":     event.UserId,
	})
	return nil
}

// restoreMode returns a capture-mode session to its resting state.
func (s *dispatcherService) restoreMode(session *entity.UserSession) {
	if session.ActiveDocumentId != nil {
		session.Mode = constant.SessionModeActive
	} else {
		session.Mode = constant.SessionModeWelcomed
	}
}

func (s *dispatcherService) executeCommand(
	ctx context.Context,
	uow unitofwork.UnitOfWork,
	session *entity.UserSession,
	cmd *router.Command,
) (string, error) {
	switch cmd.Type {
	case router.CmdHelp:
		return constant.MsgHelp, nil

	case router.CmdList:
		return s.listDocuments(ctx, uow, session.UserId)

	case router.CmdSelect:
		return s.selectDocument(ctx, uow, session, cmd.Arg, cmd.HasArg)

	case router.CmdLatest:
		return s.selectLatest(ctx, uow, session)

	case router.CmdDelete:
		return s.deleteDocument(ctx, uow, session, cmd.Arg, cmd.HasArg)

	case router.CmdDeleteAll:
		return s.deleteAllDocuments(ctx, uow, session)

	case router.CmdReport:
		session.Mode = constant.SessionModeAwaitingReport
		if err := uow.UserSessionRepository().Update(ctx, session); err != nil {
			return "", apperror.NewTransient("enter report mode", err)
		}
		return constant.MsgReportPrompt, nil

	case router.CmdFeedback:
		session.Mode = constant.SessionModeAwaitingFeedback
		if err := uow.UserSessionRepository().Update(ctx, session); err != nil {
			return "", apperror.NewTransient("enter feedback mode", err)
		}
		return constant.MsgFeedbackPrompt, nil

	default:
		return constant.MsgUnknownCommand, nil
	}
}

func (s *dispatcherService) listDocuments(ctx context.Context, uow unitofwork.UnitOfWork, userId string) (string, error) {
	documents, err := uow.DocumentRepository().FindAllByUserId(ctx, userId, true)
	if err != nil {
		return "", apperror.NewTransient("list documents", err)
	}
	if len(documents) == 0 {
		return constant.MsgNoDocuments, nil
	}

	var b strings.Builder
	b.WriteString("*Your documents:*\n")
	for i, doc := range documents {
		b.WriteString(fmt.Sprintf("%d. %s (uploaded %s)\n", i+1, doc.Filename, doc.UploadedAt.Format("Jan 2, 2006")))
	}
	b.WriteString("\nUse */select N* to switch documents.")
	return b.String(), nil
}

func (s *dispatcherService) selectDocument(
	ctx context.Context,
	uow unitofwork.UnitOfWork,
	session *entity.UserSession,
	position int,
	hasArg bool,
) (string, error) {
	documents, err := uow.DocumentRepository().FindAllByUserId(ctx, session.UserId, true)
	if err != nil {
		return "", apperror.NewTransient("list documents for selection", err)
	}
	if len(documents) == 0 {
		return constant.MsgNoDocuments, nil
	}
	if !hasArg || position < 1 || position > len(documents) {
		return fmt.Sprintf(constant.MsgInvalidSelectionFmt, position), nil
	}

	doc := documents[position-1]
	return s.activate(ctx, uow, session, doc)
}

func (s *dispatcherService) selectLatest(ctx context.Context, uow unitofwork.UnitOfWork, session *entity.UserSession) (string, error) {
	documents, err := uow.DocumentRepository().FindAllByUserId(ctx, session.UserId, true)
	if err != nil {
		return "", apperror.NewTransient("list documents for latest", err)
	}
	if len(documents) == 0 {
		return constant.MsgNoDocuments, nil
	}
	return s.activate(ctx, uow, session, documents[0])
}

func (s *dispatcherService) activate(
	ctx context.Context,
	uow unitofwork.UnitOfWork,
	session *entity.UserSession,
	doc *entity.Document,
) (string, error) {
	docId := doc.Id
	session.ActiveDocumentId = &docId
	session.Mode = constant.SessionModeActive
	if err := uow.UserSessionRepository().Update(ctx, session); err != nil {
		return "", apperror.NewTransient("activate selected document", err)
	}
	return fmt.Sprintf(constant.MsgSelectedFmt, doc.Filename), nil
}

func (s *dispatcherService) deleteDocument(
	ctx context.Context,
	uow unitofwork.UnitOfWork,
	session *entity.UserSession,
	position int,
	hasArg bool,
) (string, error) {
	documents, err := uow.DocumentRepository().FindAllByUserId(ctx, session.UserId, true)
	if err != nil {
		return "", apperror.NewTransient("list documents for deletion", err)
	}
	if len(documents) == 0 {
		return constant.MsgNoDocuments, nil
	}
	if !hasArg || position < 1 || position > len(documents) {
		return fmt.Sprintf(constant.MsgInvalidSelectionFmt, position), nil
	}

	doc := documents[position-1]

	if err := uow.Begin(ctx); err != nil {
		return "", apperror.NewTransient("begin document deletion", err)
	}
	defer uow.Rollback()

	if err := uow.DocumentRepository().Delete(ctx, doc.Id); err != nil {
		return "", apperror.NewTransient("delete document", err)
	}

	// Reference cleanup commits or rolls back with the deletion.
	if session.ActiveDocumentId != nil && *session.ActiveDocumentId == doc.Id {
		session.ActiveDocumentId = nil
		if session.Mode == constant.SessionModeActive {
			session.Mode = constant.SessionModeWelcomed
		}
		if err := uow.UserSessionRepository().Update(ctx, session); err != nil {
			return "", apperror.NewTransient("clear active document reference", err)
		}
	}

	if err := uow.Commit(); err != nil {
		return "", apperror.NewTransient("commit document deletion", err)
	}

	s.indexCache.Delete(doc.Id)
	return fmt.Sprintf(constant.MsgDeletedFmt, doc.Filename), nil
}

func (s *dispatcherService) deleteAllDocuments(ctx context.Context, uow unitofwork.UnitOfWork, session *entity.UserSession) (string, error) {
	documents, err := uow.DocumentRepository().FindAllByUserId(ctx, session.UserId, true)
	if err != nil {
		return "", apperror.NewTransient("list documents for bulk deletion", err)
	}
	if len(documents) == 0 {
		return constant.MsgNoDocuments, nil
	}

	if err := uow.Begin(ctx); err != nil {
		return "", apperror.NewTransient("begin bulk deletion", err)
	}
	defer uow.Rollback()

	if err := uow.DocumentRepository().DeleteAllByUserId(ctx, session.UserId); err != nil {
		return "", apperror.NewTransient("delete all documents", err)
	}

	session.ActiveDocumentId = nil
	if session.Mode == constant.SessionModeActive {
		session.Mode = constant.SessionModeWelcomed
	}
	if err := uow.UserSessionRepository().Update(ctx, session); err != nil {
		return "", apperror.NewTransient("clear session after bulk deletion", err)
	}

	if err := uow.Commit(); err != nil {
		return "", apperror.NewTransient("commit bulk deletion", err)
	}

	for _, doc := range documents {
		s.indexCache.Delete(doc.Id)
	}
	return constant.MsgDeletedAll, nil
}

// ensureSession loads the user's session, creating a NEW one on first
// contact. Must be called under the user lock.
func (s *dispatcherService) ensureSession(ctx context.Context, uow unitofwork.UnitOfWork, userId, displayName string) (*entity.UserSession, error) {
	session, err := uow.UserSessionRepository().FindByUserId(ctx, userId)
	if err != nil {
		return nil, apperror.NewTransient("load session", err)
	}
	if session != nil {
		if displayName != "" && session.DisplayName != displayName {
			session.DisplayName = displayName
		}
		return session, nil
	}

	session = &entity.UserSession{
		Id:          uuid.New(),
		UserId:      userId,
		DisplayName: displayName,
		Mode:        constant.SessionModeNew,
		CreatedAt:   time.Now(),
	}
	if err := uow.UserSessionRepository().Create(ctx, session); err != nil {
		return nil, apperror.NewTransient("create session", err)
	}
	return session, nil
}

func (s *dispatcherService) reply(ctx context.Context, userId, body string) {
	if err := s.sender.SendText(ctx, userId, body); err != nil {
		s.logger.Error("dispatcher", "failed to send reply", map[string]interface{}{
			"user_id": userId,
			"error":   err.Error(),
		})
	}
}

func (s *dispatcherService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.eventPublisher == nil {
		return
	}
	evt := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("dispatcher", "failed to publish event", map[string]interface{}{
			"event_type": eventType,
			"error":      err.Error(),
		})
	}
}
