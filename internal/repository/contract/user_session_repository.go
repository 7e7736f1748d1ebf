package contract

import (
	"context"

	"github.com/YarinTwito/whatsapp-smart-agent/internal/entity"
)

type UserSessionRepository interface {
	Create(ctx context.Context, session *entity.UserSession) error
	Update(ctx context.Context, session *entity.UserSession) error

	// FindByUserId returns nil, nil when the user has no session yet.
	FindByUserId(ctx context.Context, userId string) (*entity.UserSession, error)
}
