package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"course-planner/backend/internal/service"
	"course-planner/backend/pkg/response"
)

// MustGetUserID 从 Gin 上下文中安全提取 user_id。
// 如果认证中间件未注入 user_id，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return s, true
}

// MustGetPrincipal 提取 RequireAuth / RequireRole 注入的调用者
func MustGetPrincipal(c *gin.Context) (*service.Principal, bool) {
	v, exists := c.Get("principal")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return nil, false
	}
	p, ok := v.(*service.Principal)
	if !ok || p == nil {
		response.Unauthorized(c, 10002, "未认证")
		return nil, false
	}
	return p, true
}

// parseClassNbr 解析路径参数中的课程号，非法时写入 400 响应
func parseClassNbr(c *gin.Context, param string) (int, bool) {
	n, err := strconv.Atoi(c.Param(param))
	if err != nil || n <= 0 {
		response.BadRequest(c, 10001, "课程号无效")
		return 0, false
	}
	return n, true
}
