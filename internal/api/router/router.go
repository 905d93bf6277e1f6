package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"course-planner/backend/config"
	"course-planner/backend/internal/api/handler"
	"course-planner/backend/internal/api/middleware"
	"course-planner/backend/internal/model"
	"course-planner/backend/internal/service"
	"course-planner/backend/pkg/jwt"
	"course-planner/backend/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(
	cfg *config.Config,
	h *handler.Handler,
	users middleware.PrincipalLoader,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)

	if err := handler.RegisterValidators(); err != nil {
		return nil, err
	}

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(middleware.DefaultBodyLimit))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	loginURL := cfg.Server.LoginURL
	var notices service.NoticeSink
	if rdb != nil {
		notices = rdb
	}

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	v1.Use(middleware.Identify(jwtMgr, rdb))
	{
		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
			auth.POST("/register", middleware.RateLimit(rdb, 5, time.Minute), h.Auth.Register)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.RequireAuth(users))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.GetCurrentUser)
			authorized.GET("/notices", h.Notice.List)

			// 用户模块
			userGroup := authorized.Group("/users")
			{
				userGroup.GET("/advisors", h.User.ListAdvisors)
				userGroup.GET("/me/symbiotes", h.User.ListSymbiotes)
				userGroup.POST("/me/symbiotes", h.User.AddSymbiote)
			}

			// 课程目录（检索会请求外部接口，单独限流）
			authorized.GET("/courses", middleware.RateLimit(rdb, 30, time.Minute), h.Course.Search)
			authorized.GET("/courses/:class_nbr", h.Course.GetCourse)
			authorized.GET("/terms", h.Course.ListTerms)

			// 按角色跳转
			authorized.GET("/index", h.Dispatch.Index)
			authorized.GET("/schedules", h.Dispatch.Schedules)
			authorized.GET("/schedules/:id", h.Dispatch.Schedule)

			// 审批状态（可设置的状态由角色决定）
			authorized.PUT("/schedules/:id/status", h.Schedule.ChangeStatus)
		}

		// 学生页面
		student := v1.Group("/student")
		student.Use(middleware.RequireRole(users, notices, loginURL, model.RoleStudent))
		{
			student.GET("", h.User.StudentHome)

			schedules := student.Group("/schedules")
			{
				schedules.GET("", h.Schedule.ListForStudent)
				schedules.POST("", h.Schedule.Create)
				schedules.GET("/:id", h.Schedule.Get)
				schedules.DELETE("/:id", h.Schedule.Delete)
				schedules.POST("/:id/courses", h.Schedule.AddCourse)
				schedules.DELETE("/:id/courses/:class_nbr", h.Schedule.RemoveCourse)
				schedules.GET("/:id/export.ics", h.Export.ExportICS)
			}

			cart := student.Group("/cart")
			{
				cart.GET("", h.Cart.GetCart)
				cart.POST("/:strm/courses/:class_nbr", h.Cart.AddCourse)
				cart.DELETE("/courses/:class_nbr", h.Cart.RemoveCourse)
			}
		}

		// 导师页面
		advisor := v1.Group("/advisor")
		advisor.Use(middleware.RequireRole(users, notices, loginURL, model.RoleAdvisor))
		{
			advisor.GET("", h.User.AdvisorHome)
			advisor.GET("/schedules", h.Schedule.ListForAdvisor)
			advisor.GET("/schedules/export.xlsx", h.Export.ExportWorkbook)
			advisor.GET("/schedules/:id", h.Schedule.Get)
		}
	}

	return r, nil
}
