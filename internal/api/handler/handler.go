package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Victor-Smirnoff/product-release-control/internal/service"
	pkgerrors "github.com/Victor-Smirnoff/product-release-control/pkg/errors"
	"github.com/Victor-Smirnoff/product-release-control/pkg/response"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	ShiftTask *ShiftTaskHandler
	Product   *ProductHandler
	Export    *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		ShiftTask: NewShiftTaskHandler(svc.ShiftTask),
		Product:   NewProductHandler(svc.Product),
		Export:    NewExportHandler(svc.Export, svc.Calendar),
	}
}

// handleError Signal 按 Code / Message 原样输出，其余一律 500
func handleError(c *gin.Context, err error) {
	if errors.Is(err, pkgerrors.ErrInvariantViolation) {
		response.InternalError(c)
		return
	}
	if sig, ok := pkgerrors.AsSignal(err); ok {
		response.Signal(c, sig)
		return
	}
	response.InternalError(c)
}
