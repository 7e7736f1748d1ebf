package dto

import (
	"time"

	"github.com/google/uuid"
)

type UpdateReportStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=open in_progress resolved"`
}

type FeedbackResponse struct {
	Id          uuid.UUID `json:"id"`
	UserId      string    `json:"user_id"`
	UserName    string    `json:"user_name"`
	Content     string    `json:"content"`
	SubmittedAt time.Time `json:"submitted_at"`
}

type BugReportResponse struct {
	Id          uuid.UUID `json:"id"`
	UserId      string    `json:"user_id"`
	UserName    string    `json:"user_name"`
	Content     string    `json:"content"`
	Status      string    `json:"status"`
	SubmittedAt time.Time `json:"submitted_at"`
}
