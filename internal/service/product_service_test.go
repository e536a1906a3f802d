package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Victor-Smirnoff/product-release-control/internal/dto"
)

func setupTestProductService() (*productService, *mockShiftTaskRepo, *mockProductRepo) {
	repo, tasks, products := newMockRepository()
	svc := NewProductService(repo, zap.NewNop()).(*productService)
	svc.now = func() time.Time { return mockNow }
	return svc, tasks, products
}

// ── AddProducts ──

func TestProductService_AddProducts(t *testing.T) {
	svc, tasks, _ := setupTestProductService()
	task := tasks.add(sampleTask(1, "A"))

	got, err := svc.AddProducts(context.Background(), task.ID, &dto.AddProductsRequest{Codes: []string{"C1", "C2"}})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "C1", got[0].UniqueProductCode)
	assert.Equal(t, task.ID, got[0].ShiftTaskID)
	assert.False(t, got[0].IsAggregated)

	list, err := svc.ListProducts(context.Background(), task.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestProductService_AddProducts_TaskNotFound(t *testing.T) {
	svc, _, products := setupTestProductService()

	_, err := svc.AddProducts(context.Background(), 9, &dto.AddProductsRequest{Codes: []string{"C1"}})
	requireCode(t, err, http.StatusNotFound)
	assert.Empty(t, products.items)
}

func TestProductService_AddProducts_RepeatedInRequest(t *testing.T) {
	svc, tasks, products := setupTestProductService()
	task := tasks.add(sampleTask(1, "A"))

	_, err := svc.AddProducts(context.Background(), task.ID, &dto.AddProductsRequest{Codes: []string{"C1", "C1"}})
	requireCode(t, err, http.StatusBadRequest)
	assert.Empty(t, products.items)
}

func TestProductService_AddProducts_Conflict(t *testing.T) {
	svc, tasks, _ := setupTestProductService()
	task := tasks.add(sampleTask(1, "A"))
	_, err := svc.AddProducts(context.Background(), task.ID, &dto.AddProductsRequest{Codes: []string{"C1"}})
	require.NoError(t, err)

	_, err = svc.AddProducts(context.Background(), task.ID, &dto.AddProductsRequest{Codes: []string{"C2", "C1"}})
	sig := requireCode(t, err, http.StatusConflict)
	assert.Equal(t, "unique_product_code must be unique", sig.Message)
}

// ── Aggregate ──

func TestProductService_Aggregate(t *testing.T) {
	svc, tasks, _ := setupTestProductService()
	task := tasks.add(sampleTask(1, "A"))
	_, err := svc.AddProducts(context.Background(), task.ID, &dto.AddProductsRequest{Codes: []string{"C1"}})
	require.NoError(t, err)

	got, err := svc.Aggregate(context.Background(), task.ID, &dto.AggregateRequest{UniqueProductCode: "C1"})
	require.NoError(t, err)
	assert.True(t, got.IsAggregated)
	require.NotNil(t, got.AggregatedAt)
	assert.Equal(t, "2024-03-01T10:30:00Z", *got.AggregatedAt)

	_, err = svc.Aggregate(context.Background(), task.ID, &dto.AggregateRequest{UniqueProductCode: "C1"})
	sig := requireCode(t, err, http.StatusBadRequest)
	assert.Equal(t, "unique code already used at 2024-03-01T10:30:00Z", sig.Message)
}

func TestProductService_Aggregate_UnknownCode(t *testing.T) {
	svc, tasks, _ := setupTestProductService()
	task := tasks.add(sampleTask(1, "A"))

	_, err := svc.Aggregate(context.Background(), task.ID, &dto.AggregateRequest{UniqueProductCode: "missing"})
	requireCode(t, err, http.StatusNotFound)
}

func TestProductService_Aggregate_OtherBatch(t *testing.T) {
	svc, tasks, _ := setupTestProductService()
	first := tasks.add(sampleTask(1, "A"))
	second := tasks.add(sampleTask(2, "A"))
	_, err := svc.AddProducts(context.Background(), first.ID, &dto.AddProductsRequest{Codes: []string{"C1"}})
	require.NoError(t, err)

	_, err = svc.Aggregate(context.Background(), second.ID, &dto.AggregateRequest{UniqueProductCode: "C1"})
	sig := requireCode(t, err, http.StatusBadRequest)
	assert.Equal(t, "unique code is attached to another batch", sig.Message)
}

func TestProductService_Aggregate_LostRace(t *testing.T) {
	svc, tasks, products := setupTestProductService()
	task := tasks.add(sampleTask(1, "A"))
	_, err := svc.AddProducts(context.Background(), task.ID, &dto.AddProductsRequest{Codes: []string{"C1"}})
	require.NoError(t, err)

	winner := time.Date(2024, 3, 1, 10, 29, 59, 0, time.UTC)
	products.raceAt = &winner

	_, err = svc.Aggregate(context.Background(), task.ID, &dto.AggregateRequest{UniqueProductCode: "C1"})
	sig := requireCode(t, err, http.StatusBadRequest)
	assert.Equal(t, "unique code already used at 2024-03-01T10:29:59Z", sig.Message)
}
