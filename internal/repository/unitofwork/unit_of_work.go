package unitofwork

import (
	"context"

	"github.com/YarinTwito/whatsapp-smart-agent/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	DocumentRepository() contract.DocumentRepository
	UserSessionRepository() contract.UserSessionRepository
	FeedbackRepository() contract.FeedbackRepository
	BugReportRepository() contract.BugReportRepository
}
