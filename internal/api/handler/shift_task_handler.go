package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Victor-Smirnoff/product-release-control/internal/dto"
	"github.com/Victor-Smirnoff/product-release-control/internal/service"
	"github.com/Victor-Smirnoff/product-release-control/pkg/response"
)

// ShiftTaskHandler 班次任务 HTTP 处理器
type ShiftTaskHandler struct {
	shiftTaskSvc service.ShiftTaskService
}

// NewShiftTaskHandler 创建 ShiftTaskHandler
func NewShiftTaskHandler(shiftTaskSvc service.ShiftTaskService) *ShiftTaskHandler {
	return &ShiftTaskHandler{shiftTaskSvc: shiftTaskSvc}
}

// ListShiftTasks 班次任务列表（按 id 升序）
// GET /api/v1/shift-tasks?page=1&page_size=20
func (h *ShiftTaskHandler) ListShiftTasks(c *gin.Context) {
	var req dto.PaginationRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	list, total, err := h.shiftTaskSvc.List(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// GetShiftTask 按 id 查询
// GET /api/v1/shift-tasks/:id
func (h *ShiftTaskHandler) GetShiftTask(c *gin.Context) {
	id, ok := MustGetIDParam(c)
	if !ok {
		return
	}

	task, err := h.shiftTaskSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, task)
}

// GetShiftTaskByKey 按批次号与批次日期查询
// GET /api/v1/shift-tasks/by-key?party_number=1&party_data=2024-01-01
func (h *ShiftTaskHandler) GetShiftTaskByKey(c *gin.Context) {
	var req dto.ShiftTaskKeyRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	task, err := h.shiftTaskSvc.GetByNaturalKey(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, task)
}

// FilterShiftTasks 多条件精确匹配
// GET /api/v1/shift-tasks/filter?shift=A&closing_status=false
func (h *ShiftTaskHandler) FilterShiftTasks(c *gin.Context) {
	var req dto.ShiftTaskFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	list, err := h.shiftTaskSvc.Filter(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// UpdateShiftTask 部分更新
// PATCH /api/v1/shift-tasks/:id
func (h *ShiftTaskHandler) UpdateShiftTask(c *gin.Context) {
	id, ok := MustGetIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateShiftTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	task, err := h.shiftTaskSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, task)
}

// UpsertShiftTask 创建或更新
// POST /api/v1/shift-tasks
func (h *ShiftTaskHandler) UpsertShiftTask(c *gin.Context) {
	var req dto.UpsertShiftTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	task, err := h.shiftTaskSvc.CreateOrUpdate(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, task)
}
