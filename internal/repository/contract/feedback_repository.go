package contract

import (
	"context"

	"github.com/YarinTwito/whatsapp-smart-agent/internal/entity"
)

type FeedbackRepository interface {
	Create(ctx context.Context, feedback *entity.Feedback) error
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Feedback, error)
}
