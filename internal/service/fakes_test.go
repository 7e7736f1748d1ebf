package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/YarinTwito/whatsapp-smart-agent/internal/entity"
	"github.com/YarinTwito/whatsapp-smart-agent/internal/pkg/logger"
	"github.com/YarinTwito/whatsapp-smart-agent/internal/repository/contract"
	"github.com/YarinTwito/whatsapp-smart-agent/internal/repository/unitofwork"
	"github.com/YarinTwito/whatsapp-smart-agent/pkg/embedding"
	"github.com/YarinTwito/whatsapp-smart-agent/pkg/llm"

	"github.com/google/uuid"
)

// fakeState is the shared in-memory backing store for the fake repositories.
// Transactions are ignored; every write is applied immediately.
type fakeState struct {
	mu        sync.Mutex
	documents map[uuid.UUID]*entity.Document
	sessions  map[string]*entity.UserSession
	feedback  []*entity.Feedback
	reports   []*entity.BugReport
}

func newFakeState() *fakeState {
	return &fakeState{
		documents: make(map[uuid.UUID]*entity.Document),
		sessions:  make(map[string]*entity.UserSession),
	}
}

type fakeFactory struct {
	state *fakeState
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUnitOfWork{state: f.state}
}

type fakeUnitOfWork struct {
	state *fakeState
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error                   { return nil }
func (u *fakeUnitOfWork) Rollback() error                 { return nil }

func (u *fakeUnitOfWork) DocumentRepository() contract.DocumentRepository {
	return &fakeDocumentRepository{state: u.state}
}

func (u *fakeUnitOfWork) UserSessionRepository() contract.UserSessionRepository {
	return &fakeUserSessionRepository{state: u.state}
}

func (u *fakeUnitOfWork) FeedbackRepository() contract.FeedbackRepository {
	return &fakeFeedbackRepository{state: u.state}
}

func (u *fakeUnitOfWork) BugReportRepository() contract.BugReportRepository {
	return &fakeBugReportRepository{state: u.state}
}

type fakeDocumentRepository struct {
	state *fakeState
}

func (r *fakeDocumentRepository) Create(ctx context.Context, document *entity.Document) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	copied := *document
	r.state.documents[document.Id] = &copied
	return nil
}

func (r *fakeDocumentRepository) Update(ctx context.Context, document *entity.Document) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	copied := *document
	r.state.documents[document.Id] = &copied
	return nil
}

func (r *fakeDocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	delete(r.state.documents, id)
	return nil
}

func (r *fakeDocumentRepository) DeleteAllByUserId(ctx context.Context, userId string) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	for id, doc := range r.state.documents {
		if doc.UserId == userId {
			delete(r.state.documents, id)
		}
	}
	return nil
}

func (r *fakeDocumentRepository) FindById(ctx context.Context, id uuid.UUID, userId string) (*entity.Document, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	doc, ok := r.state.documents[id]
	if !ok || doc.UserId != userId {
		return nil, nil
	}
	copied := *doc
	return &copied, nil
}

func (r *fakeDocumentRepository) FindAllByUserId(ctx context.Context, userId string, newestFirst bool) ([]*entity.Document, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	var docs []*entity.Document
	for _, doc := range r.state.documents {
		if doc.UserId == userId {
			copied := *doc
			docs = append(docs, &copied)
		}
	}
	sort.Slice(docs, func(i, j int) bool {
		if newestFirst {
			return docs[i].UploadedAt.After(docs[j].UploadedAt)
		}
		return docs[i].UploadedAt.Before(docs[j].UploadedAt)
	})
	return docs, nil
}

func (r *fakeDocumentRepository) FindOldestByUserId(ctx context.Context, userId string) (*entity.Document, error) {
	docs, _ := r.FindAllByUserId(ctx, userId, false)
	if len(docs) == 0 {
		return nil, nil
	}
	return docs[0], nil
}

func (r *fakeDocumentRepository) CountByUserId(ctx context.Context, userId string) (int64, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	var count int64
	for _, doc := range r.state.documents {
		if doc.UserId == userId {
			count++
		}
	}
	return count, nil
}

type fakeUserSessionRepository struct {
	state *fakeState
}

func (r *fakeUserSessionRepository) Create(ctx context.Context, session *entity.UserSession) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	copied := *session
	r.state.sessions[session.UserId] = &copied
	return nil
}

func (r *fakeUserSessionRepository) Update(ctx context.Context, session *entity.UserSession) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	copied := *session
	r.state.sessions[session.UserId] = &copied
	return nil
}

func (r *fakeUserSessionRepository) FindByUserId(ctx context.Context, userId string) (*entity.UserSession, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	session, ok := r.state.sessions[userId]
	if !ok {
		return nil, nil
	}
	copied := *session
	return &copied, nil
}

type fakeFeedbackRepository struct {
	state *fakeState
}

func (r *fakeFeedbackRepository) Create(ctx context.Context, feedback *entity.Feedback) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	copied := *feedback
	r.state.feedback = append(r.state.feedback, &copied)
	return nil
}

func (r *fakeFeedbackRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Feedback, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	return append([]*entity.Feedback(nil), r.state.feedback...), nil
}

type fakeBugReportRepository struct {
	state *fakeState
}

func (r *fakeBugReportRepository) Create(ctx context.Context, report *entity.BugReport) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	copied := *report
	r.state.reports = append(r.state.reports, &copied)
	return nil
}

func (r *fakeBugReportRepository) Update(ctx context.Context, report *entity.BugReport) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	for i, existing := range r.state.reports {
		if existing.Id == report.Id {
			copied := *report
			r.state.reports[i] = &copied
		}
	}
	return nil
}

func (r *fakeBugReportRepository) FindById(ctx context.Context, id uuid.UUID) (*entity.BugReport, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	for _, report := range r.state.reports {
		if report.Id == id {
			copied := *report
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeBugReportRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.BugReport, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	return append([]*entity.BugReport(nil), r.state.reports...), nil
}

// fakeSender records outbound messages.
type fakeSender struct {
	mu       sync.Mutex
	messages []string
}

func (f *fakeSender) SendText(ctx context.Context, to, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, body)
	return nil
}

func (f *fakeSender) sent() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.messages...)
}

func (f *fakeSender) last() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.messages) == 0 {
		return ""
	}
	return f.messages[len(f.messages)-1]
}

type fakeMediaFetcher struct {
	data []byte
	err  error
}

func (f *fakeMediaFetcher) FetchMedia(ctx context.Context, mediaId string) ([]byte, error) {
	return f.data, f.err
}

// fakeProcessedRepository is an in-memory idempotency store.
type fakeProcessedRepository struct {
	mu      sync.Mutex
	seen    map[string]bool
	failing bool
}

func newFakeProcessedRepository() *fakeProcessedRepository {
	return &fakeProcessedRepository{seen: make(map[string]bool)}
}

func (f *fakeProcessedRepository) MarkProcessed(ctx context.Context, messageId string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return false, errors.New("idempotency store down")
	}
	if f.seen[messageId] {
		return false, nil
	}
	f.seen[messageId] = true
	return true, nil
}

// fakeExtractor returns canned text, optionally failing the first N calls.
type fakeExtractor struct {
	mu       sync.Mutex
	text     string
	failures int
}

func (f *fakeExtractor) Extract(data []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failures > 0 {
		f.failures--
		return "", errors.New("extraction failed")
	}
	return f.text, nil
}

// fakeEmbedder produces a deterministic vector from the text length.
type fakeEmbedder struct{}

func (f *fakeEmbedder) Generate(text string, taskType string) (*embedding.EmbeddingResponse, error) {
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{
			Values: []float32{float32(len(text)), 1},
		},
	}, nil
}

// fakeLLM replies with a fixed answer.
type fakeLLM struct {
	answer string
	err    error
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return f.answer, f.err
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return f.answer, f.err
}

type fakeEmailService struct {
	mu   sync.Mutex
	sent []string
}

func (f *fakeEmailService) SendBugReportAlert(reportId, userName, content string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, reportId)
	return nil
}

// fakeIngestion records the last request and returns a canned error.
type fakeIngestion struct {
	mu      sync.Mutex
	lastReq *IngestRequest
	err     error
}

func (f *fakeIngestion) Ingest(ctx context.Context, req *IngestRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastReq = req
	return f.err
}

type fakeQa struct {
	answer string
	err    error
}

func (f *fakeQa) Answer(ctx context.Context, userId string, documentId uuid.UUID, question string) (string, error) {
	return f.answer, f.err
}

// nopLogger satisfies ILogger without writing anywhere.
type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }
func (nopLogger) GetLogs(level string, limit, offset int) ([]logger.LogEntry, error) {
	return nil, nil
}
