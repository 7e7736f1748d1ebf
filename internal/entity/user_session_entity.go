package entity

import (
	"time"

	"github.com/google/uuid"
)

// UserSession tracks one user's conversational state. UploadSeq increases
// with every upload; ingestion only activates a document whose sequence is
// still the latest.
type UserSession struct {
	Id               uuid.UUID
	UserId           string
	DisplayName      string
	Mode             string
	ActiveDocumentId *uuid.UUID
	UploadSeq        int64
	CreatedAt        time.Time
	UpdatedAt        *time.Time
}
