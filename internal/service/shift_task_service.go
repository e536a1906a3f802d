package service

import (
	"context"
	"errors"
	"time"

	"github.com/samber/mo"
	"go.uber.org/zap"

	"github.com/Victor-Smirnoff/product-release-control/internal/dto"
	"github.com/Victor-Smirnoff/product-release-control/internal/model"
	"github.com/Victor-Smirnoff/product-release-control/internal/repository"
	pkgerrors "github.com/Victor-Smirnoff/product-release-control/pkg/errors"
)

// ShiftTaskService 班次任务业务接口
//
// 失败统一以 *pkgerrors.Signal 返回，Handler 按 Code 原样输出。
type ShiftTaskService interface {
	List(ctx context.Context, req *dto.PaginationRequest) ([]dto.ShiftTaskResponse, int64, error)
	GetByID(ctx context.Context, id int) (*dto.ShiftTaskResponse, error)
	GetByNaturalKey(ctx context.Context, req *dto.ShiftTaskKeyRequest) (*dto.ShiftTaskResponse, error)
	Filter(ctx context.Context, req *dto.ShiftTaskFilterRequest) ([]dto.ShiftTaskResponse, error)
	Update(ctx context.Context, id int, req *dto.UpdateShiftTaskRequest) (*dto.ShiftTaskResponse, error)
	CreateOrUpdate(ctx context.Context, req *dto.UpsertShiftTaskRequest) (*dto.ShiftTaskResponse, error)
}

type shiftTaskService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewShiftTaskService 创建 ShiftTaskService 实例
func NewShiftTaskService(repo *repository.Repository, logger *zap.Logger) ShiftTaskService {
	return &shiftTaskService{repo: repo, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *shiftTaskService) List(ctx context.Context, req *dto.PaginationRequest) ([]dto.ShiftTaskResponse, int64, error) {
	tasks, err := s.repo.ShiftTask.FindAll(ctx)
	if err != nil {
		logFailure(s.logger, "查询班次任务列表失败", err)
		return nil, 0, err
	}

	total := int64(len(tasks))
	start := req.GetOffset()
	if start > len(tasks) {
		start = len(tasks)
	}
	end := start + req.GetPageSize()
	if end > len(tasks) {
		end = len(tasks)
	}

	return toShiftTaskResponses(tasks[start:end]), total, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *shiftTaskService) GetByID(ctx context.Context, id int) (*dto.ShiftTaskResponse, error) {
	task, err := s.repo.ShiftTask.FindByID(ctx, id)
	if err != nil {
		logFailure(s.logger, "查询班次任务失败", err, zap.Int("id", id))
		return nil, err
	}
	return toShiftTaskResponse(task), nil
}

// ────────────────────── GetByNaturalKey ──────────────────────

func (s *shiftTaskService) GetByNaturalKey(ctx context.Context, req *dto.ShiftTaskKeyRequest) (*dto.ShiftTaskResponse, error) {
	partyData, err := parsePartyDate(req.PartyData)
	if err != nil {
		return nil, err
	}

	task, err := s.repo.ShiftTask.FindByNaturalKey(ctx, req.PartyNumber, partyData)
	if err != nil {
		logFailure(s.logger, "按批次查询班次任务失败", err,
			zap.Int("party_number", req.PartyNumber),
			zap.String("party_data", req.PartyData),
		)
		return nil, err
	}
	return toShiftTaskResponse(task), nil
}

// ────────────────────── Filter ──────────────────────

func (s *shiftTaskService) Filter(ctx context.Context, req *dto.ShiftTaskFilterRequest) ([]dto.ShiftTaskResponse, error) {
	tasks, err := findFiltered(ctx, s.repo, req)
	if err != nil {
		logFailure(s.logger, "过滤班次任务失败", err)
		return nil, err
	}
	return toShiftTaskResponses(tasks), nil
}

// ────────────────────── Update ──────────────────────

func (s *shiftTaskService) Update(ctx context.Context, id int, req *dto.UpdateShiftTaskRequest) (*dto.ShiftTaskResponse, error) {
	patch := model.ShiftTaskPatch{
		ClosingStatus:      mo.PointerToOption(req.ClosingStatus),
		ViewTaskToShift:    mo.PointerToOption(req.ViewTaskToShift),
		WorkCenter:         mo.PointerToOption(req.WorkCenter),
		Line:               mo.PointerToOption(req.Line),
		Shift:              mo.PointerToOption(req.Shift),
		Team:               mo.PointerToOption(req.Team),
		Nomenclature:       mo.PointerToOption(req.Nomenclature),
		CodeEKN:            mo.PointerToOption(req.CodeEKN),
		IDOfTheRC:          mo.PointerToOption(req.IDOfTheRC),
		DateTimeShiftStart: utcOption(req.DateTimeShiftStart),
		DateTimeShiftEnd:   utcOption(req.DateTimeShiftEnd),
	}

	task, err := s.repo.ShiftTask.Update(ctx, id, patch)
	if err != nil {
		logFailure(s.logger, "更新班次任务失败", err, zap.Int("id", id))
		return nil, err
	}

	s.logger.Info("班次任务已更新",
		zap.Int("id", task.ID),
		zap.Bool("closing_status", task.ClosingStatus),
	)
	return toShiftTaskResponse(task), nil
}

// ────────────────────── CreateOrUpdate ──────────────────────

func (s *shiftTaskService) CreateOrUpdate(ctx context.Context, req *dto.UpsertShiftTaskRequest) (*dto.ShiftTaskResponse, error) {
	partyData, err := parsePartyDate(req.PartyData)
	if err != nil {
		return nil, err
	}

	in := model.ShiftTaskInput{
		ClosingStatus:      *req.ClosingStatus,
		ViewTaskToShift:    req.ViewTaskToShift,
		Line:               req.Line,
		Shift:              req.Shift,
		Team:               req.Team,
		PartyNumber:        req.PartyNumber,
		PartyData:          partyData,
		Nomenclature:       req.Nomenclature,
		CodeEKN:            req.CodeEKN,
		IDOfTheRC:          req.IDOfTheRC,
		DateTimeShiftStart: req.DateTimeShiftStart.UTC(),
		DateTimeShiftEnd:   req.DateTimeShiftEnd.UTC(),
	}

	task, err := s.repo.ShiftTask.CreateOrUpdate(ctx, in)
	if err != nil {
		logFailure(s.logger, "写入班次任务失败", err,
			zap.Int("party_number", req.PartyNumber),
			zap.String("party_data", req.PartyData),
		)
		return nil, err
	}

	s.logger.Info("班次任务已写入",
		zap.Int("id", task.ID),
		zap.Int("party_number", task.PartyNumber),
	)
	return toShiftTaskResponse(task), nil
}

// ── 辅助函数 ──

// findFiltered 供列表过滤与导出共用
func findFiltered(ctx context.Context, repo *repository.Repository, req *dto.ShiftTaskFilterRequest) ([]model.ShiftTask, error) {
	filter, err := toShiftTaskFilter(req)
	if err != nil {
		return nil, err
	}
	return repo.ShiftTask.FindByFilters(ctx, filter)
}

func toShiftTaskFilter(req *dto.ShiftTaskFilterRequest) (repository.ShiftTaskFilter, error) {
	filter := repository.ShiftTaskFilter{
		ClosingStatus:      mo.PointerToOption(req.ClosingStatus),
		PartyNumber:        mo.PointerToOption(req.PartyNumber),
		Shift:              mo.PointerToOption(req.Shift),
		Team:               mo.PointerToOption(req.Team),
		Nomenclature:       mo.PointerToOption(req.Nomenclature),
		CodeEKN:            mo.PointerToOption(req.CodeEKN),
		IDOfTheRC:          mo.PointerToOption(req.IDOfTheRC),
		DateTimeShiftStart: utcOption(req.DateTimeShiftStart),
		DateTimeShiftEnd:   utcOption(req.DateTimeShiftEnd),
	}
	if req.PartyData != nil {
		d, err := parsePartyDate(*req.PartyData)
		if err != nil {
			return repository.ShiftTaskFilter{}, err
		}
		filter.PartyData = mo.Some(d)
	}
	return filter, nil
}

func parsePartyDate(s string) (time.Time, error) {
	d, err := time.Parse(dto.DateLayout, s)
	if err != nil {
		return time.Time{}, pkgerrors.BadRequest("party_data must be a date in format YYYY-MM-DD")
	}
	return d, nil
}

func utcOption(t *time.Time) mo.Option[time.Time] {
	if t == nil {
		return mo.None[time.Time]()
	}
	return mo.Some(t.UTC())
}

// logFailure 仅记录数据库故障与契约破坏；404/409/400 属于正常业务结果
func logFailure(logger *zap.Logger, msg string, err error, fields ...zap.Field) {
	if _, ok := pkgerrors.AsSignal(err); ok && !errors.Is(err, pkgerrors.ErrStoreUnavailable) {
		return
	}
	logger.Error(msg, append(fields, zap.Error(err))...)
}

// ── DTO 转换 ──

func toShiftTaskResponse(t *model.ShiftTask) *dto.ShiftTaskResponse {
	resp := &dto.ShiftTaskResponse{
		ID:                 t.ID,
		ClosingStatus:      t.ClosingStatus,
		ViewTaskToShift:    t.ViewTaskToShift,
		WorkCenter:         t.WorkCenter,
		Line:               t.Line,
		Shift:              t.Shift,
		Team:               t.Team,
		PartyNumber:        t.PartyNumber,
		PartyData:          t.PartyData.Format(dto.DateLayout),
		Nomenclature:       t.Nomenclature,
		CodeEKN:            t.CodeEKN,
		IDOfTheRC:          t.IDOfTheRC,
		DateTimeShiftStart: t.DateTimeShiftStart.UTC().Format(time.RFC3339),
		DateTimeShiftEnd:   t.DateTimeShiftEnd.UTC().Format(time.RFC3339),
	}
	if t.ClosedAt != nil {
		closedAt := t.ClosedAt.UTC().Format(time.RFC3339Nano)
		resp.ClosedAt = &closedAt
	}
	return resp
}

func toShiftTaskResponses(tasks []model.ShiftTask) []dto.ShiftTaskResponse {
	result := make([]dto.ShiftTaskResponse, 0, len(tasks))
	for i := range tasks {
		result = append(result, *toShiftTaskResponse(&tasks[i]))
	}
	return result
}
