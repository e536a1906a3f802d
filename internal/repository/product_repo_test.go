package repository

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Victor-Smirnoff/product-release-control/internal/model"
)

func TestProductRepo_BatchCreateAndList(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	task := mustCreate(t, repo.ShiftTask, newInput(100, false))
	other := mustCreate(t, repo.ShiftTask, newInput(101, false))

	require.NoError(t, repo.Product.BatchCreate(ctx, []model.UniqueProductIdentifier{
		{UniqueProductCode: "CODE-1", ShiftTaskID: task.ID},
		{UniqueProductCode: "CODE-2", ShiftTaskID: task.ID},
		{UniqueProductCode: "CODE-3", ShiftTaskID: other.ID},
	}))
	require.NoError(t, repo.Product.BatchCreate(ctx, nil))

	items, err := repo.Product.ListByShiftTask(ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "CODE-1", items[0].UniqueProductCode)
	assert.False(t, items[0].IsAggregated)
	assert.Nil(t, items[0].AggregatedAt)
}

func TestProductRepo_BatchCreateDuplicateCode(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	task := mustCreate(t, repo.ShiftTask, newInput(100, false))

	require.NoError(t, repo.Product.BatchCreate(ctx, []model.UniqueProductIdentifier{
		{UniqueProductCode: "CODE-1", ShiftTaskID: task.ID},
	}))

	err := repo.Product.BatchCreate(ctx, []model.UniqueProductIdentifier{
		{UniqueProductCode: "CODE-2", ShiftTaskID: task.ID},
		{UniqueProductCode: "CODE-1", ShiftTaskID: task.ID},
	})
	requireSignal(t, err, http.StatusConflict)

	// 整批回滚
	items, err := repo.Product.ListByShiftTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestProductRepo_GetByCode(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	task := mustCreate(t, repo.ShiftTask, newInput(100, false))
	require.NoError(t, repo.Product.BatchCreate(ctx, []model.UniqueProductIdentifier{
		{UniqueProductCode: "CODE-1", ShiftTaskID: task.ID},
	}))

	item, err := repo.Product.GetByCode(ctx, "CODE-1")
	require.NoError(t, err)
	assert.Equal(t, task.ID, item.ShiftTaskID)

	_, err = repo.Product.GetByCode(ctx, "missing")
	sig := requireSignal(t, err, http.StatusNotFound)
	assert.Contains(t, sig.Message, "missing")
}

func TestProductRepo_MarkAggregatedOnce(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	task := mustCreate(t, repo.ShiftTask, newInput(100, false))
	require.NoError(t, repo.Product.BatchCreate(ctx, []model.UniqueProductIdentifier{
		{UniqueProductCode: "CODE-1", ShiftTaskID: task.ID},
	}))
	item, err := repo.Product.GetByCode(ctx, "CODE-1")
	require.NoError(t, err)

	at := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	ok, err := repo.Product.MarkAggregated(ctx, item.ID, at)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Product.MarkAggregated(ctx, item.ID, at.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, ok, "已聚合的唯一码不能再次聚合")

	stored, err := repo.Product.GetByCode(ctx, "CODE-1")
	require.NoError(t, err)
	assert.True(t, stored.IsAggregated)
	require.NotNil(t, stored.AggregatedAt)
	assert.True(t, stored.AggregatedAt.Equal(at))
}
