package handler

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"course-planner/backend/internal/dto"
	"course-planner/backend/internal/service"
	"course-planner/backend/pkg/response"
)

// CartHandler 购物车 HTTP 处理器
type CartHandler struct {
	cartSvc service.CartService
}

// NewCartHandler 创建 CartHandler
func NewCartHandler(cartSvc service.CartService) *CartHandler {
	return &CartHandler{cartSvc: cartSvc}
}

// GetCart 购物车内容
// GET /api/v1/student/cart?strm=1228
func (h *CartHandler) GetCart(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var q dto.CartQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 10001, "学期代码无效")
		return
	}

	cart, err := h.cartSvc.GetCart(c.Request.Context(), userID, q.Strm)
	if err != nil {
		h.handleCartError(c, err)
		return
	}
	response.OK(c, cart)
}

// AddCourse 加入购物车
// POST /api/v1/student/cart/:strm/courses/:class_nbr
func (h *CartHandler) AddCourse(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	strm, err := strconv.Atoi(c.Param("strm"))
	if err != nil || strm <= 0 {
		response.BadRequest(c, 10001, "学期代码无效")
		return
	}
	classNbr, ok := parseClassNbr(c, "class_nbr")
	if !ok {
		return
	}

	if err := h.cartSvc.AddCourse(c.Request.Context(), userID, classNbr, strm); err != nil {
		h.handleCartError(c, err)
		return
	}
	response.Done(c, "", fmt.Sprintf("/api/v1/student/cart?strm=%d", strm))
}

// RemoveCourse 移出购物车；不带 strm 时从全部购物车移除
// DELETE /api/v1/student/cart/courses/:class_nbr?strm=1228
func (h *CartHandler) RemoveCourse(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	classNbr, ok := parseClassNbr(c, "class_nbr")
	if !ok {
		return
	}
	var q dto.CartQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 10001, "学期代码无效")
		return
	}

	if err := h.cartSvc.RemoveCourse(c.Request.Context(), userID, classNbr, q.Strm); err != nil {
		h.handleCartError(c, err)
		return
	}

	redirect := "/api/v1/student/cart"
	if q.Strm != nil {
		redirect = fmt.Sprintf("%s?strm=%d", redirect, *q.Strm)
	}
	response.Done(c, "", redirect)
}

func (h *CartHandler) handleCartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCourseNotFound):
		response.NotFound(c, 15001, "课程不存在")
	default:
		response.InternalError(c)
	}
}
