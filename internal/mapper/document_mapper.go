package mapper

import (
	"github.com/YarinTwito/whatsapp-smart-agent/internal/entity"
	"github.com/YarinTwito/whatsapp-smart-agent/internal/model"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToEntity(d *model.Document) *entity.Document {
	if d == nil {
		return nil
	}

	return &entity.Document{
		Id:             d.Id,
		UserId:         d.UserId,
		Filename:       d.Filename,
		WhatsappFileId: d.WhatsappFileId,
		ExtractedText:  d.ExtractedText,
		Processed:      d.Processed,
		UploadedAt:     d.UploadedAt,
	}
}

func (m *DocumentMapper) ToModel(d *entity.Document) *model.Document {
	if d == nil {
		return nil
	}

	return &model.Document{
		Id:             d.Id,
		UserId:         d.UserId,
		Filename:       d.Filename,
		WhatsappFileId: d.WhatsappFileId,
		ExtractedText:  d.ExtractedText,
		Processed:      d.Processed,
		UploadedAt:     d.UploadedAt,
	}
}

func (m *DocumentMapper) ToEntities(documents []*model.Document) []*entity.Document {
	entities := make([]*entity.Document, len(documents))
	for i, d := range documents {
		entities[i] = m.ToEntity(d)
	}
	return entities
}
