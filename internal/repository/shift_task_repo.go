package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Victor-Smirnoff/product-release-control/internal/model"
	pkgerrors "github.com/Victor-Smirnoff/product-release-control/pkg/errors"
)

const msgNaturalKeyConflict = "pair (party_number, party_data) must be unique"

// ShiftTaskRepository 班次任务数据访问接口
//
// 所有失败以 *pkgerrors.Signal 返回：404 记录不存在、409 自然键冲突、500 数据库不可用。
// 自然键匹配到多行时返回包装了 pkgerrors.ErrInvariantViolation 的错误。
type ShiftTaskRepository interface {
	FindAll(ctx context.Context) ([]model.ShiftTask, error)
	FindByID(ctx context.Context, id int) (*model.ShiftTask, error)
	FindByNaturalKey(ctx context.Context, partyNumber int, partyData time.Time) (*model.ShiftTask, error)
	Update(ctx context.Context, id int, patch model.ShiftTaskPatch) (*model.ShiftTask, error)
	CreateOrUpdate(ctx context.Context, in model.ShiftTaskInput) (*model.ShiftTask, error)
	FindByFilters(ctx context.Context, filter ShiftTaskFilter) ([]model.ShiftTask, error)
}

type shiftTaskRepo struct {
	db  *gorm.DB
	now func() time.Time
}

// NewShiftTaskRepo 创建 ShiftTaskRepository 实例
func NewShiftTaskRepo(db *gorm.DB) ShiftTaskRepository {
	return &shiftTaskRepo{db: db, now: storeNow}
}

// storeNow 截断到微秒，与 PostgreSQL timestamptz 精度一致
func storeNow() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func (r *shiftTaskRepo) withDB(db *gorm.DB) *shiftTaskRepo {
	return &shiftTaskRepo{db: db, now: r.now}
}

// ────────────────────── 查询 ──────────────────────

func (r *shiftTaskRepo) FindAll(ctx context.Context) ([]model.ShiftTask, error) {
	var tasks []model.ShiftTask
	err := r.db.WithContext(ctx).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}}).
		Find(&tasks).Error
	if err != nil {
		return nil, pkgerrors.StoreUnavailable(err)
	}
	return tasks, nil
}

func (r *shiftTaskRepo) FindByID(ctx context.Context, id int) (*model.ShiftTask, error) {
	var task model.ShiftTask
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFound("shift task with id %d not found", id)
		}
		return nil, pkgerrors.StoreUnavailable(err)
	}
	return &task, nil
}

// FindByNaturalKey 取最多两行：唯一约束存在时第二行不可能出现，出现即为存储完整性问题
func (r *shiftTaskRepo) FindByNaturalKey(ctx context.Context, partyNumber int, partyData time.Time) (*model.ShiftTask, error) {
	partyData = model.PartyDate(partyData)

	var tasks []model.ShiftTask
	err := r.db.WithContext(ctx).
		Where("party_number = ? AND party_data = ?", partyNumber, partyData).
		Limit(2).
		Find(&tasks).Error
	if err != nil {
		return nil, pkgerrors.StoreUnavailable(err)
	}

	switch len(tasks) {
	case 0:
		return nil, pkgerrors.NotFound("shift task with party_number %d and party_data %s not found",
			partyNumber, partyData.Format(time.DateOnly))
	case 1:
		return &tasks[0], nil
	default:
		return nil, fmt.Errorf("%w: shift_tasks has several rows for party_number=%d party_data=%s",
			pkgerrors.ErrInvariantViolation, partyNumber, partyData.Format(time.DateOnly))
	}
}

// FindByFilters 全表读取后在内存中逐个条件收窄
func (r *shiftTaskRepo) FindByFilters(ctx context.Context, filter ShiftTaskFilter) ([]model.ShiftTask, error) {
	tasks, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return filter.Apply(tasks), nil
}

// ────────────────────── 写入 ──────────────────────

// Update 读取整行、应用补丁、整行写回，在本次调用内提交。
// 没有版本号校验，同一记录的并发更新以最后提交者为准。
func (r *shiftTaskRepo) Update(ctx context.Context, id int, patch model.ShiftTaskPatch) (*model.ShiftTask, error) {
	var updated *model.ShiftTask
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		task, err := r.withDB(tx).FindByID(ctx, id)
		if err != nil {
			return err
		}

		patch.ApplyTo(task, r.now())

		if err := tx.Save(task).Error; err != nil {
			return pkgerrors.StoreUnavailable(err)
		}
		updated = task
		return nil
	})
	if err != nil {
		return nil, storeError(err)
	}
	return updated, nil
}

// CreateOrUpdate 以 (party_number, party_data) 为键的 upsert。
// 先查后写并非原子操作，并发插入同一自然键时依赖唯一约束兜底并转换为 409。
func (r *shiftTaskRepo) CreateOrUpdate(ctx context.Context, in model.ShiftTaskInput) (*model.ShiftTask, error) {
	var result *model.ShiftTask
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := r.withDB(tx)

		existing, err := txRepo.FindByNaturalKey(ctx, in.PartyNumber, in.PartyData)
		switch {
		case err == nil:
			result, err = txRepo.Update(ctx, existing.ID, in.Patch())
			return err
		case !errors.Is(err, pkgerrors.ErrNotFound):
			return err
		}

		result, err = txRepo.insert(ctx, in.NewShiftTask(r.now()))
		return err
	})
	if err != nil {
		return nil, storeError(err)
	}
	return result, nil
}

// insert 在 SAVEPOINT 内插入：PostgreSQL 中唯一约束失败不会使外层事务进入 aborted 状态
func (r *shiftTaskRepo) insert(ctx context.Context, task *model.ShiftTask) (*model.ShiftTask, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Create(task).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, pkgerrors.Conflict(msgNaturalKeyConflict, err)
		}
		return nil, pkgerrors.StoreUnavailable(err)
	}
	return task, nil
}
