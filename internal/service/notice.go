package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	pkgerrors "course-planner/backend/pkg/errors"
	"course-planner/backend/pkg/redis"
)

// NoticeSink 一次性提示消息的投递目标，*redis.Client 满足此接口
type NoticeSink interface {
	PushNotice(ctx context.Context, userID string, n redis.Notice) error
}

// pushNotice 投递失败只记录日志；Redis 未启用时静默跳过
func pushNotice(ctx context.Context, sink NoticeSink, logger *zap.Logger, userID, level, message string) {
	if sink == nil || userID == "" {
		return
	}
	err := sink.PushNotice(ctx, userID, redis.Notice{Level: level, Message: message})
	if err == nil || errors.Is(err, pkgerrors.ErrRedisUnavailable) {
		return
	}
	logger.Warn("投递提示消息失败", zap.String("user_id", userID), zap.Error(err))
}
