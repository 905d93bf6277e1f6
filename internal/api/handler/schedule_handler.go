package handler

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"course-planner/backend/internal/dto"
	"course-planner/backend/internal/service"
	"course-planner/backend/pkg/response"
)

// ScheduleHandler 课表模块 HTTP 处理器
type ScheduleHandler struct {
	scheduleSvc service.ScheduleService
}

// NewScheduleHandler 创建 ScheduleHandler
func NewScheduleHandler(scheduleSvc service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleSvc: scheduleSvc}
}

func studentScheduleURL(id string) string {
	return fmt.Sprintf("/api/v1/student/schedules/%s", id)
}

// ListForStudent 学生自己的课表
// GET /api/v1/student/schedules
func (h *ScheduleHandler) ListForStudent(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	schedules, err := h.scheduleSvc.ListForStudent(c.Request.Context(), userID)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}
	response.OK(c, schedules)
}

// ListForAdvisor 由当前导师审批的课表
// GET /api/v1/advisor/schedules
func (h *ScheduleHandler) ListForAdvisor(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	schedules, err := h.scheduleSvc.ListForAdvisor(c.Request.Context(), userID)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}
	response.OK(c, schedules)
}

// Create 新建课表
// POST /api/v1/student/schedules
func (h *ScheduleHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	schedule, err := h.scheduleSvc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}
	response.Created(c, schedule)
}

// Get 课表详情（学生与导师路由共用，可见性由 Service 判断）
// GET /api/v1/student/schedules/:id
// GET /api/v1/advisor/schedules/:id
func (h *ScheduleHandler) Get(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}

	schedule, err := h.scheduleSvc.Get(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}
	response.OK(c, schedule)
}

// Delete 删除课表
// DELETE /api/v1/student/schedules/:id
func (h *ScheduleHandler) Delete(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.scheduleSvc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.handleScheduleError(c, err)
		return
	}
	response.Done(c, "课表已删除", "/api/v1/student/schedules")
}

// AddCourse 向课表加课，与已有课程冲突时返回 409 及冲突列表
// POST /api/v1/student/schedules/:id/courses
func (h *ScheduleHandler) AddCourse(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.AddScheduleCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	id := c.Param("id")
	if err := h.scheduleSvc.AddCourse(c.Request.Context(), userID, id, req.ClassNbr); err != nil {
		h.handleScheduleError(c, err)
		return
	}
	response.Done(c, "", studentScheduleURL(id))
}

// RemoveCourse 从课表移除课程
// DELETE /api/v1/student/schedules/:id/courses/:class_nbr
func (h *ScheduleHandler) RemoveCourse(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	classNbr, ok := parseClassNbr(c, "class_nbr")
	if !ok {
		return
	}

	id := c.Param("id")
	if err := h.scheduleSvc.RemoveCourse(c.Request.Context(), userID, id, classNbr); err != nil {
		h.handleScheduleError(c, err)
		return
	}
	response.Done(c, "", studentScheduleURL(id))
}

// ChangeStatus 修改审批状态，可设置的目标状态取决于调用者角色
// PUT /api/v1/schedules/:id/status
func (h *ScheduleHandler) ChangeStatus(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}

	var req dto.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 13005, "无效的审批状态")
		return
	}

	id := c.Param("id")
	schedule, err := h.scheduleSvc.ChangeStatus(c.Request.Context(), p, id, req.Status)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}
	response.Done(c, fmt.Sprintf("审批状态已更新为 %s", schedule.StatusLabel),
		fmt.Sprintf("/api/v1/%s/schedules/%s", p.Role(), id))
}

func (h *ScheduleHandler) handleScheduleError(c *gin.Context, err error) {
	var conflict *service.ConflictError
	switch {
	case errors.As(err, &conflict):
		response.Conflict(c, 13001, conflict.Error(), service.ToConflictResponse(conflict))
	case errors.Is(err, service.ErrScheduleNotFound):
		response.NotFound(c, 13002, "课表不存在")
	case errors.Is(err, service.ErrScheduleAccessDenied):
		response.Forbidden(c, 13003, "无权操作此课表")
	case errors.Is(err, service.ErrApproverNotAdvisor):
		response.BadRequest(c, 13004, "审批人必须是导师")
	case errors.Is(err, service.ErrInvalidApprovalStatus):
		response.BadRequest(c, 13005, "无效的审批状态")
	case errors.Is(err, service.ErrStatusNotAllowedForRole):
		response.BadRequest(c, 13006, "当前角色无权设置该审批状态")
	case errors.Is(err, service.ErrCourseNotFound):
		response.NotFound(c, 13007, "课程不存在")
	default:
		response.InternalError(c)
	}
}
