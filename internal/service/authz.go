package service

import "course-planner/backend/internal/model"

// ReasonNoAccess 角色校验失败时展示给用户的提示
const ReasonNoAccess = "您无权访问此页面"

// Principal 当前请求的调用者
type Principal struct {
	UserID    string
	Username  string
	IsAdvisor bool
	IsActive  bool
}

// PrincipalFromUser 由用户记录构造调用者
func PrincipalFromUser(u *model.User) *Principal {
	return &Principal{
		UserID:    u.UserID,
		Username:  u.Username,
		IsAdvisor: u.IsAdvisor,
		IsActive:  u.IsActive,
	}
}

// Role 调用者角色
func (p *Principal) Role() model.Role {
	if p.IsAdvisor {
		return model.RoleAdvisor
	}
	return model.RoleStudent
}

// AccessDecision 角色校验结果
type AccessDecision struct {
	Allowed bool
	Reason  string // 仅拒绝时有值
}

// Authorize 纯判定：调用者已登录、处于启用状态且角色匹配时放行
func Authorize(p *Principal, required model.Role) AccessDecision {
	if p == nil || !p.IsActive || p.Role() != required {
		return AccessDecision{Reason: ReasonNoAccess}
	}
	return AccessDecision{Allowed: true}
}
