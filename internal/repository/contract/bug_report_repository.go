package contract

import (
	"context"

	"github.com/YarinTwito/whatsapp-smart-agent/internal/entity"

	"github.com/google/uuid"
)

type BugReportRepository interface {
	Create(ctx context.Context, report *entity.BugReport) error
	Update(ctx context.Context, report *entity.BugReport) error
	FindById(ctx context.Context, id uuid.UUID) (*entity.BugReport, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.BugReport, error)
}
