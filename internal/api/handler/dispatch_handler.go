package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// DispatchHandler 按角色跳转到学生或导师页面
type DispatchHandler struct{}

// NewDispatchHandler 创建 DispatchHandler
func NewDispatchHandler() *DispatchHandler {
	return &DispatchHandler{}
}

// Index GET /api/v1/index → /api/v1/{role}
func (h *DispatchHandler) Index(c *gin.Context) {
	h.redirect(c, "")
}

// Schedules GET /api/v1/schedules → /api/v1/{role}/schedules
func (h *DispatchHandler) Schedules(c *gin.Context) {
	h.redirect(c, "/schedules")
}

// Schedule GET /api/v1/schedules/:id → /api/v1/{role}/schedules/:id
func (h *DispatchHandler) Schedule(c *gin.Context) {
	h.redirect(c, "/schedules/"+c.Param("id"))
}

func (h *DispatchHandler) redirect(c *gin.Context, suffix string) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}
	c.Redirect(http.StatusFound, fmt.Sprintf("/api/v1/%s%s", p.Role(), suffix))
}
