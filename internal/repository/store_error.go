package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	pkgerrors "github.com/Victor-Smirnoff/product-release-control/pkg/errors"
)

// pgUniqueViolation PostgreSQL unique_violation
const pgUniqueViolation = "23505"

// isUniqueViolation 判断是否为唯一约束冲突。
// 开启 TranslateError 时驱动会返回 gorm.ErrDuplicatedKey；未翻译时按原始错误兜底识别。
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// storeError 保证 Repository 边界上不泄漏原始驱动错误：
// 已分类的 Signal 与契约违反原样返回，其余一律视为数据库不可用。
func storeError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := pkgerrors.AsSignal(err); ok {
		return err
	}
	if errors.Is(err, pkgerrors.ErrInvariantViolation) {
		return err
	}
	return pkgerrors.StoreUnavailable(err)
}
