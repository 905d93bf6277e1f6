package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"course-planner/backend/internal/service"
	"course-planner/backend/pkg/response"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportICS 导出课表为 iCalendar
// GET /api/v1/student/schedules/:id/export.ics
func (h *ExportHandler) ExportICS(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}

	data, filename, err := h.exportSvc.ExportICS(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	attachment(c, filename)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", data)
}

// ExportWorkbook 导出导师名下课表
// GET /api/v1/advisor/schedules/export.xlsx
func (h *ExportHandler) ExportWorkbook(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportWorkbook(c.Request.Context(), userID)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	attachment(c, filename)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// attachment 设置下载响应头
func attachment(c *gin.Context, filename string) {
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(filename))
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrScheduleNotFound):
		response.NotFound(c, 16001, "课表不存在")
	case errors.Is(err, service.ErrScheduleAccessDenied):
		response.Forbidden(c, 16002, "无权导出此课表")
	case errors.Is(err, service.ErrExportNoCourses):
		response.BadRequest(c, 16003, "课表中没有可导出的课程")
	case errors.Is(err, service.ErrExportNoSchedules):
		response.NotFound(c, 16004, "暂无待审批的课表")
	default:
		response.InternalError(c)
	}
}
