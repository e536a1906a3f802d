package service

import (
	"go.uber.org/zap"

	"github.com/Victor-Smirnoff/product-release-control/internal/repository"
)

// Service 所有 Service 的聚合入口
type Service struct {
	ShiftTask ShiftTaskService
	Product   ProductService
	Export    ExportService
	Calendar  CalendarService
}

// NewService 创建 Service 聚合
func NewService(repo *repository.Repository, logger *zap.Logger) *Service {
	return &Service{
		ShiftTask: NewShiftTaskService(repo, logger),
		Product:   NewProductService(repo, logger),
		Export:    NewExportService(repo, logger),
		Calendar:  NewCalendarService(repo, logger),
	}
}
