package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"course-planner/backend/internal/dto"
	"course-planner/backend/internal/service"
	"course-planner/backend/pkg/response"
)

// CourseHandler 课程目录 HTTP 处理器
type CourseHandler struct {
	catalogSvc service.CatalogService
}

// NewCourseHandler 创建 CourseHandler
func NewCourseHandler(catalogSvc service.CatalogService) *CourseHandler {
	return &CourseHandler{catalogSvc: catalogSvc}
}

// Search 检索课程，结果写入本地目录
// GET /api/v1/courses?term=&keyword=&subject=&catalog_nbr=&acad_org=...
func (h *CourseHandler) Search(c *gin.Context) {
	var req dto.CourseSearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	courses, err := h.catalogSvc.Search(c.Request.Context(), &req)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}
	response.OK(c, courses)
}

// GetCourse 课程详情
// GET /api/v1/courses/:class_nbr
func (h *CourseHandler) GetCourse(c *gin.Context) {
	classNbr, ok := parseClassNbr(c, "class_nbr")
	if !ok {
		return
	}

	course, err := h.catalogSvc.GetCourse(c.Request.Context(), classNbr)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}
	response.OK(c, course)
}

// ListTerms 学期选项
// GET /api/v1/terms
func (h *CourseHandler) ListTerms(c *gin.Context) {
	response.OK(c, h.catalogSvc.ListTerms())
}

func (h *CourseHandler) handleCourseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSearchFilterRequired):
		response.BadRequest(c, 14001, err.Error())
	case errors.Is(err, service.ErrCourseNotFound):
		response.NotFound(c, 14002, "课程不存在")
	default:
		response.InternalError(c)
	}
}
