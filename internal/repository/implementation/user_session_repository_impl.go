package implementation

import (
	"context"
	"errors"

	"github.com/YarinTwito/whatsapp-smart-agent/internal/entity"
	"github.com/YarinTwito/whatsapp-smart-agent/internal/mapper"
	"github.com/YarinTwito/whatsapp-smart-agent/internal/model"
	"github.com/YarinTwito/whatsapp-smart-agent/internal/repository/contract"
	"github.com/YarinTwito/whatsapp-smart-agent/internal/repository/specification"

	"gorm.io/gorm"
)

type UserSessionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.UserSessionMapper
}

func NewUserSessionRepository(db *gorm.DB) contract.UserSessionRepository {
	return &UserSessionRepositoryImpl{
		db:     db,
		mapper: mapper.NewUserSessionMapper(),
	}
}

func (r *UserSessionRepositoryImpl) Create(ctx context.Context, session *entity.UserSession) error {
	m := r.mapper.ToModel(session)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*session = *r.mapper.ToEntity(m)
	return nil
}

func (r *UserSessionRepositoryImpl) Update(ctx context.Context, session *entity.UserSession) error {
	m := r.mapper.ToModel(session)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*session = *r.mapper.ToEntity(m)
	return nil
}

func (r *UserSessionRepositoryImpl) FindByUserId(ctx context.Context, userId string) (*entity.UserSession, error) {
	var m model.UserSession
	query := specification.ByUserID{UserID: userId}.Apply(r.db.WithContext(ctx))
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}
