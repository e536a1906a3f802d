package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Victor-Smirnoff/product-release-control/pkg/response"
)

// MustGetIDParam 解析路径中的正整数 id。
// 解析失败时写入 400 响应并返回 false，调用方应直接 return。
func MustGetIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		response.BadRequest(c, "id must be a positive integer")
		return 0, false
	}
	return id, true
}
