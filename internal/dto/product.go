package dto

// ── 产品唯一码 DTO ──

// AddProductsRequest 批量挂载唯一码
type AddProductsRequest struct {
	Codes []string `json:"codes" binding:"required,min=1,max=1000,dive,required,max=255"`
}

// AggregateRequest 聚合唯一码
type AggregateRequest struct {
	UniqueProductCode string `json:"unique_product_code" binding:"required,max=255"`
}

// ProductResponse 唯一码响应
type ProductResponse struct {
	ID                int     `json:"id"`
	UniqueProductCode string  `json:"unique_product_code"`
	ShiftTaskID       int     `json:"shift_task_id"`
	IsAggregated      bool    `json:"is_aggregated"`
	AggregatedAt      *string `json:"aggregated_at"`
}
