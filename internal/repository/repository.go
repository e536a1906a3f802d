package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	db        *gorm.DB
	ShiftTask ShiftTaskRepository
	Product   ProductRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:        db,
		ShiftTask: NewShiftTaskRepo(db),
		Product:   NewProductRepo(db),
	}
}

// BeginTx 开启事务，由调用方负责 Commit / Rollback
func (r *Repository) BeginTx(ctx context.Context) (*gorm.DB, error) {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return tx, nil
}

// WithTx 返回绑定到事务连接的 Repository。
// 事务内的 Update / CreateOrUpdate 以 SAVEPOINT 方式嵌套提交。
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return NewRepository(tx)
}
