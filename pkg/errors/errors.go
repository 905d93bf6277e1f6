package errors

import "errors"

// ErrDuplicateMembership 关联关系已存在（集合语义下视为幂等成功）
var ErrDuplicateMembership = errors.New("关联关系已存在")

// ErrRedisUnavailable Redis 未配置或连接失败时的降级信号
var ErrRedisUnavailable = errors.New("Redis 不可用")
