package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Victor-Smirnoff/product-release-control/pkg/response"
)

// BodyLimit 全局请求体大小限制中间件
// 声明长度超限的请求直接 413；未声明长度的请求由 MaxBytesReader 截断，绑定时报错
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			abortWithError(c, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}

		c.Next()
	}
}

func abortWithError(c *gin.Context, status int, message string) {
	response.Error(c, status, message)
	c.Abort()
}
