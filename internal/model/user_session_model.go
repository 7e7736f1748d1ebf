package model

import (
	"time"

	"github.com/google/uuid"
)

type UserSession struct {
	Id               uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId           string     `gorm:"type:varchar(32);not null;uniqueIndex"`
	DisplayName      string     `gorm:"type:varchar(255)"`
	Mode             string     `gorm:"type:varchar(32);not null"`
	ActiveDocumentId *uuid.UUID `gorm:"type:uuid"`
	UploadSeq        int64      `gorm:"not null;default:0"`
	CreatedAt        time.Time  `gorm:"autoCreateTime"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime"`
}

func (UserSession) TableName() string {
	return "user_sessions"
}
