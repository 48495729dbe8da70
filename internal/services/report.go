package services

import (
	"context"

	"go.uber.org/zap"

	"solar-crm/internal/entities"
	"solar-crm/internal/repositories"
)

type ReportServiceInterface interface {
	GetReport(ctx context.Context, filter entities.ReportFilter) ([]entities.ReportItem, uint64, error)
}

type ReportService struct {
	reportRepository repositories.ReportRepositoryInterface
	logger           *zap.Logger
}

func NewReportService(reportRepository repositories.ReportRepositoryInterface, logger *zap.Logger) ReportServiceInterface {
	return &ReportService{reportRepository: reportRepository, logger: logger}
}

func (s *ReportService) GetReport(ctx context.Context, filter entities.ReportFilter) ([]entities.ReportItem, uint64, error) {
	return s.reportRepository.GetInstallationsReport(ctx, filter)
}
