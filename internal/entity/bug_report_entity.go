package entity

import (
	"time"

	"github.com/google/uuid"
)

type BugReport struct {
	Id          uuid.UUID
	UserId      string
	UserName    string
	Content     string
	Status      string
	SubmittedAt time.Time
}
