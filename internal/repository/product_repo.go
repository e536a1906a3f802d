package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Victor-Smirnoff/product-release-control/internal/model"
	pkgerrors "github.com/Victor-Smirnoff/product-release-control/pkg/errors"
)

const msgProductCodeConflict = "unique_product_code must be unique"

// ProductRepository 产品唯一码数据访问接口
type ProductRepository interface {
	BatchCreate(ctx context.Context, items []model.UniqueProductIdentifier) error
	GetByCode(ctx context.Context, code string) (*model.UniqueProductIdentifier, error)
	ListByShiftTask(ctx context.Context, shiftTaskID int) ([]model.UniqueProductIdentifier, error)
	// MarkAggregated 仅当尚未聚合时写入；返回 false 表示已被其他请求抢先聚合
	MarkAggregated(ctx context.Context, id int, at time.Time) (bool, error)
}

type productRepo struct {
	db *gorm.DB
}

// NewProductRepo 创建 ProductRepository 实例
func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) BatchCreate(ctx context.Context, items []model.UniqueProductIdentifier) error {
	if len(items) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(items, 100).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return pkgerrors.Conflict(msgProductCodeConflict, err)
		}
		return pkgerrors.StoreUnavailable(err)
	}
	return nil
}

func (r *productRepo) GetByCode(ctx context.Context, code string) (*model.UniqueProductIdentifier, error) {
	var item model.UniqueProductIdentifier
	err := r.db.WithContext(ctx).
		Where("unique_product_code = ?", code).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFound("unique product code %s not found", code)
		}
		return nil, pkgerrors.StoreUnavailable(err)
	}
	return &item, nil
}

func (r *productRepo) ListByShiftTask(ctx context.Context, shiftTaskID int) ([]model.UniqueProductIdentifier, error) {
	var items []model.UniqueProductIdentifier
	err := r.db.WithContext(ctx).
		Where("shift_task_id = ?", shiftTaskID).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}}).
		Find(&items).Error
	if err != nil {
		return nil, pkgerrors.StoreUnavailable(err)
	}
	return items, nil
}

func (r *productRepo) MarkAggregated(ctx context.Context, id int, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.UniqueProductIdentifier{}).
		Where("id = ? AND is_aggregated = ?", id, false).
		Updates(map[string]interface{}{
			"is_aggregated": true,
			"aggregated_at": at,
		})
	if res.Error != nil {
		return false, pkgerrors.StoreUnavailable(res.Error)
	}
	return res.RowsAffected == 1, nil
}
