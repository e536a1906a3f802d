package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/Victor-Smirnoff/product-release-control/internal/dto"
	"github.com/Victor-Smirnoff/product-release-control/internal/service"
	"github.com/Victor-Smirnoff/product-release-control/pkg/response"
)

const (
	xlsxContentType     = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	calendarContentType = "text/calendar; charset=utf-8"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc   service.ExportService
	calendarSvc service.CalendarService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService, calendarSvc service.CalendarService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc, calendarSvc: calendarSvc}
}

// ExportShiftTasks 导出班次任务为 Excel，查询参数与过滤接口一致
// GET /api/v1/shift-tasks/export
func (h *ExportHandler) ExportShiftTasks(c *gin.Context) {
	var req dto.ShiftTaskFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	buf, filename, err := h.exportSvc.ExportShiftTasks(c.Request.Context(), &req)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// ShiftCalendar 班次日历订阅
// GET /api/v1/shift-tasks/calendar.ics
func (h *ExportHandler) ShiftCalendar(c *gin.Context) {
	var req dto.ShiftTaskFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	body, err := h.calendarSvc.ShiftCalendar(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.Header("Content-Disposition", "inline; filename=shift_tasks.ics")
	c.Data(http.StatusOK, calendarContentType, []byte(body))
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrExportGenerateFail) {
		response.InternalError(c)
		return
	}
	handleError(c, err)
}
