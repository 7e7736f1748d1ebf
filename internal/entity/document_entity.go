package entity

import (
	"time"

	"github.com/google/uuid"
)

// Document is one uploaded PDF. ExtractedText is empty until ingestion
// succeeds; Processed stays false for documents whose extraction failed.
type Document struct {
	Id             uuid.UUID
	UserId         string
	Filename       string
	WhatsappFileId string
	ExtractedText  string
	Processed      bool
	UploadedAt     time.Time
}
