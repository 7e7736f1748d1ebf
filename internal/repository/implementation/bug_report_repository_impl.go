package implementation

import (
	"context"
	"errors"

	"github.com/YarinTwito/whatsapp-smart-agent/internal/entity"
	"github.com/YarinTwito/whatsapp-smart-agent/internal/mapper"
	"github.com/YarinTwito/whatsapp-smart-agent/internal/model"
	"github.com/YarinTwito/whatsapp-smart-agent/internal/repository/contract"
	"github.com/YarinTwito/whatsapp-smart-agent/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BugReportRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.BugReportMapper
}

func NewBugReportRepository(db *gorm.DB) contract.BugReportRepository {
	return &BugReportRepositoryImpl{
		db:     db,
		mapper: mapper.NewBugReportMapper(),
	}
}

func (r *BugReportRepositoryImpl) Create(ctx context.Context, report *entity.BugReport) error {
	m := r.mapper.ToModel(report)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*report = *r.mapper.ToEntity(m)
	return nil
}

func (r *BugReportRepositoryImpl) Update(ctx context.Context, report *entity.BugReport) error {
	m := r.mapper.ToModel(report)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*report = *r.mapper.ToEntity(m)
	return nil
}

func (r *BugReportRepositoryImpl) FindById(ctx context.Context, id uuid.UUID) (*entity.BugReport, error) {
	var m model.BugReport
	query := specification.ByID{ID: id}.Apply(r.db.WithContext(ctx))
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *BugReportRepositoryImpl) FindAll(ctx context.Context, limit, offset int) ([]*entity.BugReport, error) {
	var models []*model.BugReport
	query := r.db.WithContext(ctx)
	for _, spec := range []specification.Specification{
		specification.OrderBy{Field: "submitted_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	} {
		query = spec.Apply(query)
	}
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
