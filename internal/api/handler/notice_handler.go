package handler

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	pkgerrors "course-planner/backend/pkg/errors"
	"course-planner/backend/pkg/redis"
	"course-planner/backend/pkg/response"
)

// NoticeSource 一次性提示消息来源，*redis.Client 满足此接口
type NoticeSource interface {
	PopNotices(ctx context.Context, userID string) ([]redis.Notice, error)
}

// NoticeHandler 提示消息 HTTP 处理器
type NoticeHandler struct {
	source NoticeSource
}

// NewNoticeHandler 创建 NoticeHandler
func NewNoticeHandler(source NoticeSource) *NoticeHandler {
	return &NoticeHandler{source: source}
}

// List 取出并清空当前用户的提示消息
// GET /api/v1/notices
func (h *NoticeHandler) List(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	notices, err := h.source.PopNotices(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrRedisUnavailable) {
			response.OK(c, []redis.Notice{})
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, notices)
}
