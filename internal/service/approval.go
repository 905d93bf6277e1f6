package service

import "course-planner/backend/internal/model"

type transitionKey struct {
	from model.ApprovalStatus
	to   model.ApprovalStatus
	role model.Role
}

// 各角色可设置的目标状态，与当前状态无关
var roleTargets = map[model.Role][]model.ApprovalStatus{
	model.RoleAdvisor: {model.StatusApproved, model.StatusDenied, model.StatusPending},
	model.RoleStudent: {model.StatusPending, model.StatusUnsubmitted},
}

// statusTransitions (当前状态, 目标状态, 角色) → 是否允许
var statusTransitions = buildTransitions()

func buildTransitions() map[transitionKey]bool {
	table := make(map[transitionKey]bool)
	for role, targets := range roleTargets {
		for _, from := range model.ApprovalStatuses {
			for _, to := range targets {
				table[transitionKey{from: from, to: to, role: role}] = true
			}
		}
	}
	return table
}

// CanTransition 判断角色能否将课表从 from 改为 to
func CanTransition(from, to model.ApprovalStatus, role model.Role) bool {
	return statusTransitions[transitionKey{from: from, to: to, role: role}]
}

// AllowedTargets 角色可设置的目标状态
func AllowedTargets(role model.Role) []model.ApprovalStatus {
	return roleTargets[role]
}
