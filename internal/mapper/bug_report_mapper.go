package mapper

import (
	"github.com/YarinTwito/whatsapp-smart-agent/internal/entity"
	"github.com/YarinTwito/whatsapp-smart-agent/internal/model"
)

type BugReportMapper struct{}

func NewBugReportMapper() *BugReportMapper {
	return &BugReportMapper{}
}

func (m *BugReportMapper) ToEntity(r *model.BugReport) *entity.BugReport {
	if r == nil {
		return nil
	}

	return &entity.BugReport{
		Id:          r.Id,
		UserId:      r.UserId,
		UserName:    r.UserName,
		Content:     r.Content,
		Status:      r.Status,
		SubmittedAt: r.SubmittedAt,
	}
}

func (m *BugReportMapper) ToModel(r *entity.BugReport) *model.BugReport {
	if r == nil {
		return nil
	}

	return &model.BugReport{
		Id:          r.Id,
		UserId:      r.UserId,
		UserName:    r.UserName,
		Content:     r.Content,
		Status:      r.Status,
		SubmittedAt: r.SubmittedAt,
	}
}

func (m *BugReportMapper) ToEntities(reports []*model.BugReport) []*entity.BugReport {
	entities := make([]*entity.BugReport, len(reports))
	for i, r := range reports {
		entities[i] = m.ToEntity(r)
	}
	return entities
}
