package model

import (
	"time"

	"github.com/google/uuid"
)

type Feedback struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId      string    `gorm:"type:varchar(32);not null;index"`
	UserName    string    `gorm:"type:varchar(255)"`
	Content     string    `gorm:"type:text;not null"`
	SubmittedAt time.Time `gorm:"autoCreateTime"`
}

func (Feedback) TableName() string {
	return "feedbacks"
}
