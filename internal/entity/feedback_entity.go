package entity

import (
	"time"

	"github.com/google/uuid"
)

type Feedback struct {
	Id          uuid.UUID
	UserId      string
	UserName    string
	Content     string
	SubmittedAt time.Time
}
