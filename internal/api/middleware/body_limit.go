package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"course-planner/backend/pkg/response"
)

// DefaultBodyLimit 默认请求体上限 1 MiB
const DefaultBodyLimit int64 = 1 << 20

const codeBodyTooLarge = 10005

// BodyLimit 限制请求体大小
// 声明的 Content-Length 超限时直接返回 413；未声明长度的请求体读到上限即报错，
// 处理器通过 c.Error 上报该错误时同样改写为 413
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			response.Error(c, http.StatusRequestEntityTooLarge, codeBodyTooLarge, "请求体过大")
			c.Abort()
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}

		c.Next()

		if c.IsAborted() || c.Writer.Written() {
			return
		}
		for _, ginErr := range c.Errors {
			var tooLarge *http.MaxBytesError
			if errors.As(ginErr.Err, &tooLarge) {
				response.Error(c, http.StatusRequestEntityTooLarge, codeBodyTooLarge, "请求体过大")
				return
			}
		}
	}
}
