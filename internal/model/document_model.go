package model

import (
	"time"

	"github.com/google/uuid"
)

type Document struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId         string    `gorm:"type:varchar(32);not null;index"`
	Filename       string    `gorm:"type:varchar(255);not null"`
	WhatsappFileId string    `gorm:"type:varchar(128)"`
	ExtractedText  string    `gorm:"type:text"`
	Processed      bool      `gorm:"not null;default:false"`
	UploadedAt     time.Time `gorm:"autoCreateTime"`
}

func (Document) TableName() string {
	return "documents"
}
