package middleware

import (
	"github.com/gin-gonic/gin"

	"course-planner/backend/internal/model"
	"course-planner/backend/internal/service"
	"course-planner/backend/pkg/redis"
	"course-planner/backend/pkg/response"
)

// RequireRole 角色门禁
// 未登录、已停用与角色不符的调用者统一返回 403 并跳转登录页；已知用户额外收到一条提示消息
func RequireRole(users PrincipalLoader, notices service.NoticeSink, loginURL string, role model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var p *service.Principal
		if userID := c.GetString("user_id"); userID != "" {
			if loaded, err := users.GetPrincipal(ctx, userID); err == nil {
				p = loaded
			}
		}

		decision := service.Authorize(p, role)
		if !decision.Allowed {
			if p != nil && notices != nil {
				// 提示投递失败不影响拒绝结果
				_ = notices.PushNotice(ctx, p.UserID, redis.Notice{Level: "error", Message: decision.Reason})
			}
			response.Denied(c, 10003, decision.Reason, loginURL)
			c.Abort()
			return
		}

		c.Set("principal", p)
		c.Next()
	}
}
