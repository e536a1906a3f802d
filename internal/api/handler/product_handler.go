package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Victor-Smirnoff/product-release-control/internal/dto"
	"github.com/Victor-Smirnoff/product-release-control/internal/service"
	"github.com/Victor-Smirnoff/product-release-control/pkg/response"
)

// ProductHandler 产品唯一码 HTTP 处理器
type ProductHandler struct {
	productSvc service.ProductService
}

// NewProductHandler 创建 ProductHandler
func NewProductHandler(productSvc service.ProductService) *ProductHandler {
	return &ProductHandler{productSvc: productSvc}
}

// ListProducts 班次任务下的唯一码
// GET /api/v1/shift-tasks/:id/products
func (h *ProductHandler) ListProducts(c *gin.Context) {
	id, ok := MustGetIDParam(c)
	if !ok {
		return
	}

	list, err := h.productSvc.ListProducts(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// AddProducts 批量挂载唯一码
// POST /api/v1/shift-tasks/:id/products
func (h *ProductHandler) AddProducts(c *gin.Context) {
	id, ok := MustGetIDParam(c)
	if !ok {
		return
	}

	var req dto.AddProductsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	list, err := h.productSvc.AddProducts(c.Request.Context(), id, &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, gin.H{"list": list})
}

// Aggregate 聚合唯一码
// POST /api/v1/shift-tasks/:id/aggregate
func (h *ProductHandler) Aggregate(c *gin.Context) {
	id, ok := MustGetIDParam(c)
	if !ok {
		return
	}

	var req dto.AggregateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	item, err := h.productSvc.Aggregate(c.Request.Context(), id, &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, item)
}
