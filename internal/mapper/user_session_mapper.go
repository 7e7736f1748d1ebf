package mapper

import (
	"time"

	"github.com/YarinTwito/whatsapp-smart-agent/internal/entity"
	"github.com/YarinTwito/whatsapp-smart-agent/internal/model"
)

type UserSessionMapper struct{}

func NewUserSessionMapper() *UserSessionMapper {
	return &UserSessionMapper{}
}

func (m *UserSessionMapper) ToEntity(s *model.UserSession) *entity.UserSession {
	if s == nil {
		return nil
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.UserSession{
		Id:               s.Id,
		UserId:           s.UserId,
		DisplayName:      s.DisplayName,
		Mode:             s.Mode,
		ActiveDocumentId: s.ActiveDocumentId,
		UploadSeq:        s.UploadSeq,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        updatedAt,
	}
}

func (m *UserSessionMapper) ToModel(s *entity.UserSession) *model.UserSession {
	if s == nil {
		return nil
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	return &model.UserSession{
		Id:               s.Id,
		UserId:           s.UserId,
		DisplayName:      s.DisplayName,
		Mode:             s.Mode,
		ActiveDocumentId: s.ActiveDocumentId,
		UploadSeq:        s.UploadSeq,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        updatedAt,
	}
}
