package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"course-planner/backend/internal/dto"
	"course-planner/backend/internal/service"
	"course-planner/backend/pkg/response"
)

// UserHandler 用户模块 HTTP 处理器
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler 创建 UserHandler
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// ListAdvisors 可选的审批导师
// GET /api/v1/users/advisors
func (h *UserHandler) ListAdvisors(c *gin.Context) {
	advisors, err := h.userSvc.ListAdvisors(c.Request.Context())
	if err != nil {
		h.handleUserError(c, err)
		return
	}
	response.OK(c, advisors)
}

// ListSymbiotes 当前用户添加的关联用户
// GET /api/v1/users/me/symbiotes
func (h *UserHandler) ListSymbiotes(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	users, err := h.userSvc.ListSymbiotes(c.Request.Context(), userID)
	if err != nil {
		h.handleUserError(c, err)
		return
	}
	response.OK(c, users)
}

// AddSymbiote 添加关联用户
// POST /api/v1/users/me/symbiotes
func (h *UserHandler) AddSymbiote(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.AddSymbioteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.userSvc.AddSymbiote(c.Request.Context(), userID, &req); err != nil {
		h.handleUserError(c, err)
		return
	}
	response.Done(c, "", "/api/v1/users/me/symbiotes")
}

// StudentHome 学生首页
// GET /api/v1/student
func (h *UserHandler) StudentHome(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	home, err := h.userSvc.StudentHome(c.Request.Context(), userID)
	if err != nil {
		h.handleUserError(c, err)
		return
	}
	response.OK(c, home)
}

// AdvisorHome 导师首页
// GET /api/v1/advisor
func (h *UserHandler) AdvisorHome(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	home, err := h.userSvc.AdvisorHome(c.Request.Context(), userID)
	if err != nil {
		h.handleUserError(c, err)
		return
	}
	response.OK(c, home)
}

func (h *UserHandler) handleUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 12001, "用户不存在")
	case errors.Is(err, service.ErrSymbioteSelf):
		response.BadRequest(c, 12002, "不能关联自己")
	default:
		response.InternalError(c)
	}
}
