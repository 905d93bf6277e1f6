package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"course-planner/backend/internal/service"
	"course-planner/backend/pkg/jwt"
	"course-planner/backend/pkg/redis"
	"course-planner/backend/pkg/response"
)

// PrincipalLoader 按用户 ID 加载调用者，UserService 满足此接口
type PrincipalLoader interface {
	GetPrincipal(ctx context.Context, userID string) (*service.Principal, error)
}

// Identify 解析 Authorization: Bearer <token>，成功时注入用户信息
// 不中断请求：缺少、无效或已注销的 Token 一律视为匿名访问，由后续中间件决定如何处理
func Identify(jwtMgr *jwt.Manager, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.Next()
			return
		}

		claims, err := jwtMgr.ParseAccessToken(parts[1])
		if err != nil {
			c.Next()
			return
		}

		// Redis 不可用时跳过黑名单检查
		if claims.ID != "" {
			if revoked, err := rdb.IsBlacklisted(c.Request.Context(), claims.ID); err == nil && revoked {
				c.Next()
				return
			}
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Set("token_jti", claims.ID)
		if claims.ExpiresAt != nil {
			c.Set("token_exp", claims.ExpiresAt.Time)
		}

		c.Next()
	}
}

// RequireAuth 要求已登录且账号处于启用状态，并将调用者注入上下文
func RequireAuth(users PrincipalLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			response.Unauthorized(c, 10002, "未认证")
			c.Abort()
			return
		}

		p, err := users.GetPrincipal(c.Request.Context(), userID)
		if err != nil || !p.IsActive {
			response.Unauthorized(c, 10002, "账号不存在或已停用")
			c.Abort()
			return
		}

		c.Set("principal", p)
		c.Next()
	}
}
