package service

import (
	"context"

	"github.com/YarinTwito/whatsapp-smart-agent/internal/apperror"
	"github.com/YarinTwito/whatsapp-smart-agent/internal/dto"
	"github.com/YarinTwito/whatsapp-smart-agent/internal/pkg/logger"
	"github.com/YarinTwito/whatsapp-smart-agent/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IAdminService interface {
	ListFeedback(ctx context.Context, limit, offset int) ([]*dto.FeedbackResponse, error)
	ListReports(ctx context.Context, limit, offset int) ([]*dto.BugReportResponse, error)
	UpdateReportStatus(ctx context.Context, id uuid.UUID, status string) (*dto.BugReportResponse, error)
	GetLogs(level string, limit, offset int) ([]logger.LogEntry, error)
}

type adminService struct {
	uowFactory unitofwork.RepositoryFactory
	sysLogger  logger.ILogger
}

func NewAdminService(uowFactory unitofwork.RepositoryFactory, sysLogger logger.ILogger) IAdminService {
	return &adminService{
		uowFactory: uowFactory,
		sysLogger:  sysLogger,
	}
}

func (s *adminService) ListFeedback(ctx context.Context, limit, offset int) ([]*dto.FeedbackResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	feedbacks, err := uow.FeedbackRepository().FindAll(ctx, limit, offset)
	if err != nil {
		return nil, apperror.NewTransient("list feedback", err)
	}

	responses := make([]*dto.FeedbackResponse, len(feedbacks))
	for i, f := range feedbacks {
		responses[i] = &dto.FeedbackResponse{
			Id:          f.Id,
			UserId:      f.UserId,
			UserName:    f.UserName,
			Content:     f.Content,
			SubmittedAt: f.SubmittedAt,
		}
	}
	return responses, nil
}

func (s *adminService) ListReports(ctx context.Context, limit, offset int) ([]*dto.BugReportResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	reports, err := uow.BugReportRepository().FindAll(ctx, limit, offset)
	if err != nil {
		return nil, apperror.NewTransient("list bug reports", err)
	}

	responses := make([]*dto.BugReportResponse, len(reports))
	for i, r := range reports {
		responses[i] = &dto.BugReportResponse{
			Id:          r.Id,
			UserId:      r.UserId,
			UserName:    r.UserName,
			Content:     r.Content,
			Status:      r.Status,
			SubmittedAt: r.SubmittedAt,
		}
	}
	return responses, nil
}

func (s *adminService) UpdateReportStatus(ctx context.Context, id uuid.UUID, status string) (*dto.BugReportResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	report, err := uow.BugReportRepository().FindById(ctx, id)
	if err != nil {
		return nil, apperror.NewTransient("load bug report", err)
	}
	if report == nil {
		return nil, apperror.NewNotFound("bug report not found")
	}

	report.Status = status
	if err := uow.BugReportRepository().Update(ctx, report); err != nil {
		return nil, apperror.NewTransient("update bug report status", err)
	}

	s.sysLogger.Info("admin", "bug report status updated", map[string]interface{}{
		"report_id": report.Id.String(),
		"status":    status,
	})

	return &dto.BugReportResponse{
		Id:          report.Id,
		UserId:      report.UserId,
		UserName:    report.UserName,
		Content:     report.Content,
		Status:      report.Status,
		SubmittedAt: report.SubmittedAt,
	}, nil
}

func (s *adminService) GetLogs(level string, limit, offset int) ([]logger.LogEntry, error) {
	return s.sysLogger.GetLogs(level, limit, offset)
}
