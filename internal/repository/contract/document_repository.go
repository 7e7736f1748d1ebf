package contract

import (
	"context"

	"github.com/YarinTwito/whatsapp-smart-agent/internal/entity"

	"github.com/google/uuid"
)

type DocumentRepository interface {
	Create(ctx context.Context, document *entity.Document) error
	Update(ctx context.Context, document *entity.Document) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAllByUserId(ctx context.Context, userId string) error

	// FindById scopes the lookup to the owner; cross-user ids return nil.
	FindById(ctx context.Context, id uuid.UUID, userId string) (*entity.Document, error)

	// FindAllByUserId returns the user's documents, newest upload first when
	// newestFirst is set.
	FindAllByUserId(ctx context.Context, userId string, newestFirst bool) ([]*entity.Document, error)

	FindOldestByUserId(ctx context.Context, userId string) (*entity.Document, error)
	CountByUserId(ctx context.Context, userId string) (int64, error)
}
