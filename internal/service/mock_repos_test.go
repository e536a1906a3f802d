package service

import (
	"context"
	"sort"
	"time"

	"github.com/Victor-Smirnoff/product-release-control/internal/model"
	"github.com/Victor-Smirnoff/product-release-control/internal/repository"
	pkgerrors "github.com/Victor-Smirnoff/product-release-control/pkg/errors"
)

var mockNow = time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)

// ── Mock ShiftTaskRepository ──

type mockShiftTaskRepo struct {
	tasks  map[int]*model.ShiftTask
	nextID int
	err    error // 非 nil 时所有方法返回该错误
}

func newMockShiftTaskRepo() *mockShiftTaskRepo {
	return &mockShiftTaskRepo{tasks: make(map[int]*model.ShiftTask), nextID: 1}
}

func (m *mockShiftTaskRepo) add(task model.ShiftTask) *model.ShiftTask {
	task.ID = m.nextID
	m.nextID++
	m.tasks[task.ID] = &task
	return &task
}

func (m *mockShiftTaskRepo) FindAll(_ context.Context) ([]model.ShiftTask, error) {
	if m.err != nil {
		return nil, m.err
	}
	result := make([]model.ShiftTask, 0, len(m.tasks))
	for _, t := range m.tasks {
		result = append(result, *t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockShiftTaskRepo) FindByID(_ context.Context, id int) (*model.ShiftTask, error) {
	if m.err != nil {
		return nil, m.err
	}
	if t, ok := m.tasks[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, pkgerrors.NotFound("shift task with id %d not found", id)
}

func (m *mockShiftTaskRepo) FindByNaturalKey(_ context.Context, partyNumber int, partyData time.Time) (*model.ShiftTask, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, t := range m.tasks {
		if t.PartyNumber == partyNumber && model.SameDate(t.PartyData, partyData) {
			cp := *t
			return &cp, nil
		}
	}
	return nil, pkgerrors.NotFound("shift task with party_number %d and party_data %s not found",
		partyNumber, partyData.Format("2006-01-02"))
}

func (m *mockShiftTaskRepo) Update(ctx context.Context, id int, patch model.ShiftTaskPatch) (*model.ShiftTask, error) {
	if m.err != nil {
		return nil, m.err
	}
	t, ok := m.tasks[id]
	if !ok {
		return nil, pkgerrors.NotFound("shift task with id %d not found", id)
	}
	patch.ApplyTo(t, mockNow)
	cp := *t
	return &cp, nil
}

func (m *mockShiftTaskRepo) CreateOrUpdate(ctx context.Context, in model.ShiftTaskInput) (*model.ShiftTask, error) {
	if m.err != nil {
		return nil, m.err
	}
	if existing, err := m.FindByNaturalKey(ctx, in.PartyNumber, in.PartyData); err == nil {
		return m.Update(ctx, existing.ID, in.Patch())
	}
	return m.add(*in.NewShiftTask(mockNow)), nil
}

func (m *mockShiftTaskRepo) FindByFilters(ctx context.Context, filter repository.ShiftTaskFilter) ([]model.ShiftTask, error) {
	all, err := m.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return filter.Apply(all), nil
}

// ── Mock ProductRepository ──

type mockProductRepo struct {
	items  map[string]*model.UniqueProductIdentifier
	nextID int
	// raceAt 非 nil 时 MarkAggregated 模拟被并发请求抢先
	raceAt *time.Time
}

func newMockProductRepo() *mockProductRepo {
	return &mockProductRepo{items: make(map[string]*model.UniqueProductIdentifier), nextID: 1}
}

func (m *mockProductRepo) BatchCreate(_ context.Context, items []model.UniqueProductIdentifier) error {
	for _, it := range items {
		if _, ok := m.items[it.UniqueProductCode]; ok {
			return pkgerrors.Conflict("unique_product_code must be unique", nil)
		}
	}
	for i := range items {
		items[i].ID = m.nextID
		m.nextID++
		cp := items[i]
		m.items[cp.UniqueProductCode] = &cp
	}
	return nil
}

func (m *mockProductRepo) GetByCode(_ context.Context, code string) (*model.UniqueProductIdentifier, error) {
	if it, ok := m.items[code]; ok {
		cp := *it
		return &cp, nil
	}
	return nil, pkgerrors.NotFound("unique product code %s not found", code)
}

func (m *mockProductRepo) ListByShiftTask(_ context.Context, shiftTaskID int) ([]model.UniqueProductIdentifier, error) {
	var result []model.UniqueProductIdentifier
	for _, it := range m.items {
		if it.ShiftTaskID == shiftTaskID {
			result = append(result, *it)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockProductRepo) MarkAggregated(_ context.Context, id int, at time.Time) (bool, error) {
	for _, it := range m.items {
		if it.ID != id {
			continue
		}
		if m.raceAt != nil {
			it.IsAggregated = true
			it.AggregatedAt = m.raceAt
			return false, nil
		}
		if it.IsAggregated {
			return false, nil
		}
		it.IsAggregated = true
		it.AggregatedAt = &at
		return true, nil
	}
	return false, nil
}

// ── 测试辅助 ──

func newMockRepository() (*repository.Repository, *mockShiftTaskRepo, *mockProductRepo) {
	tasks := newMockShiftTaskRepo()
	products := newMockProductRepo()
	return &repository.Repository{ShiftTask: tasks, Product: products}, tasks, products
}

func sampleTask(partyNumber int, shift string) model.ShiftTask {
	start := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	return model.ShiftTask{
		ViewTaskToShift:    "Задание на смену",
		WorkCenter:         "РЦ-1",
		Line:               "Линия 1",
		Shift:              shift,
		Team:               "Бригада 1",
		PartyNumber:        partyNumber,
		PartyData:          time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Nomenclature:       "Кефир 1%",
		CodeEKN:            "EKN-001",
		IDOfTheRC:          "RC-01",
		DateTimeShiftStart: start,
		DateTimeShiftEnd:   start.Add(12 * time.Hour),
	}
}
