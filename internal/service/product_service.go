package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Victor-Smirnoff/product-release-control/internal/dto"
	"github.com/Victor-Smirnoff/product-release-control/internal/model"
	"github.com/Victor-Smirnoff/product-release-control/internal/repository"
	pkgerrors "github.com/Victor-Smirnoff/product-release-control/pkg/errors"
)

// ProductService 产品唯一码业务接口
type ProductService interface {
	// AddProducts 为班次任务批量挂载唯一码，任一唯一码重复则整批失败
	AddProducts(ctx context.Context, shiftTaskID int, req *dto.AddProductsRequest) ([]dto.ProductResponse, error)
	ListProducts(ctx context.Context, shiftTaskID int) ([]dto.ProductResponse, error)
	// Aggregate 将唯一码标记为已聚合，每个唯一码只能聚合一次
	Aggregate(ctx context.Context, shiftTaskID int, req *dto.AggregateRequest) (*dto.ProductResponse, error)
}

type productService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewProductService 创建 ProductService 实例
func NewProductService(repo *repository.Repository, logger *zap.Logger) ProductService {
	return &productService{
		repo:   repo,
		logger: logger,
		now: func() time.Time {
			return time.Now().UTC().Truncate(time.Microsecond)
		},
	}
}

// ────────────────────── AddProducts ──────────────────────

func (s *productService) AddProducts(ctx context.Context, shiftTaskID int, req *dto.AddProductsRequest) ([]dto.ProductResponse, error) {
	if _, err := s.repo.ShiftTask.FindByID(ctx, shiftTaskID); err != nil {
		logFailure(s.logger, "查询班次任务失败", err, zap.Int("shift_task_id", shiftTaskID))
		return nil, err
	}

	seen := make(map[string]struct{}, len(req.Codes))
	items := make([]model.UniqueProductIdentifier, 0, len(req.Codes))
	for _, code := range req.Codes {
		if _, dup := seen[code]; dup {
			return nil, pkgerrors.BadRequest("unique product code %s is repeated in request", code)
		}
		seen[code] = struct{}{}
		items = append(items, model.UniqueProductIdentifier{
			UniqueProductCode: code,
			ShiftTaskID:       shiftTaskID,
		})
	}

	if err := s.repo.Product.BatchCreate(ctx, items); err != nil {
		logFailure(s.logger, "挂载唯一码失败", err, zap.Int("shift_task_id", shiftTaskID))
		return nil, err
	}

	s.logger.Info("唯一码已挂载",
		zap.Int("shift_task_id", shiftTaskID),
		zap.Int("count", len(items)),
	)
	return toProductResponses(items), nil
}

// ────────────────────── ListProducts ──────────────────────

func (s *productService) ListProducts(ctx context.Context, shiftTaskID int) ([]dto.ProductResponse, error) {
	if _, err := s.repo.ShiftTask.FindByID(ctx, shiftTaskID); err != nil {
		logFailure(s.logger, "查询班次任务失败", err, zap.Int("shift_task_id", shiftTaskID))
		return nil, err
	}

	items, err := s.repo.Product.ListByShiftTask(ctx, shiftTaskID)
	if err != nil {
		logFailure(s.logger, "查询唯一码失败", err, zap.Int("shift_task_id", shiftTaskID))
		return nil, err
	}
	return toProductResponses(items), nil
}

// ────────────────────── Aggregate ──────────────────────

func (s *productService) Aggregate(ctx context.Context, shiftTaskID int, req *dto.AggregateRequest) (*dto.ProductResponse, error) {
	if _, err := s.repo.ShiftTask.FindByID(ctx, shiftTaskID); err != nil {
		logFailure(s.logger, "查询班次任务失败", err, zap.Int("shift_task_id", shiftTaskID))
		return nil, err
	}

	item, err := s.repo.Product.GetByCode(ctx, req.UniqueProductCode)
	if err != nil {
		logFailure(s.logger, "查询唯一码失败", err, zap.String("code", req.UniqueProductCode))
		return nil, err
	}
	if item.ShiftTaskID != shiftTaskID {
		return nil, pkgerrors.BadRequest("unique code is attached to another batch")
	}
	if item.IsAggregated {
		return nil, alreadyUsed(item)
	}

	at := s.now()
	ok, err := s.repo.Product.MarkAggregated(ctx, item.ID, at)
	if err != nil {
		logFailure(s.logger, "聚合唯一码失败", err, zap.String("code", item.UniqueProductCode))
		return nil, err
	}
	if !ok {
		// 并发请求抢先聚合，重新读取实际时间
		current, err := s.repo.Product.GetByCode(ctx, req.UniqueProductCode)
		if err != nil {
			logFailure(s.logger, "查询唯一码失败", err, zap.String("code", req.UniqueProductCode))
			return nil, err
		}
		return nil, alreadyUsed(current)
	}

	item.IsAggregated = true
	item.AggregatedAt = &at
	s.logger.Info("唯一码已聚合",
		zap.Int("shift_task_id", shiftTaskID),
		zap.String("code", item.UniqueProductCode),
	)
	return toProductResponse(item), nil
}

func alreadyUsed(item *model.UniqueProductIdentifier) *pkgerrors.Signal {
	at := "unknown time"
	if item.AggregatedAt != nil {
		at = item.AggregatedAt.UTC().Format(time.RFC3339)
	}
	return pkgerrors.BadRequest("unique code already used at %s", at)
}

// ── DTO 转换 ──

func toProductResponse(item *model.UniqueProductIdentifier) *dto.ProductResponse {
	resp := &dto.ProductResponse{
		ID:                item.ID,
		UniqueProductCode: item.UniqueProductCode,
		ShiftTaskID:       item.ShiftTaskID,
		IsAggregated:      item.IsAggregated,
	}
	if item.AggregatedAt != nil {
		at := item.AggregatedAt.UTC().Format(time.RFC3339)
		resp.AggregatedAt = &at
	}
	return resp
}

func toProductResponses(items []model.UniqueProductIdentifier) []dto.ProductResponse {
	result := make([]dto.ProductResponse, 0, len(items))
	for i := range items {
		result = append(result, *toProductResponse(&items[i]))
	}
	return result
}
