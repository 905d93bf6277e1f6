package service

import (
	"testing"

	"course-planner/backend/internal/model"
)

func TestCanTransition_Table(t *testing.T) {
	advisorAllowed := map[model.ApprovalStatus]bool{
		model.StatusApproved: true,
		model.StatusDenied:   true,
		model.StatusPending:  true,
	}
	studentAllowed := map[model.ApprovalStatus]bool{
		model.StatusPending:     true,
		model.StatusUnsubmitted: true,
	}

	for _, from := range model.ApprovalStatuses {
		for _, to := range model.ApprovalStatuses {
			if got := CanTransition(from, to, model.RoleAdvisor); got != advisorAllowed[to] {
				t.Errorf("导师 %s → %s: 期望 %v，实际 %v", from, to, advisorAllowed[to], got)
			}
			if got := CanTransition(from, to, model.RoleStudent); got != studentAllowed[to] {
				t.Errorf("学生 %s → %s: 期望 %v，实际 %v", from, to, studentAllowed[to], got)
			}
		}
	}
}

func TestCanTransition_UnknownRole(t *testing.T) {
	if CanTransition(model.StatusPending, model.StatusApproved, model.Role("admin")) {
		t.Error("未知角色不应允许任何状态变更")
	}
}

func TestAllowedTargets(t *testing.T) {
	if n := len(AllowedTargets(model.RoleAdvisor)); n != 3 {
		t.Errorf("导师可设置状态期望 3 个，实际 %d", n)
	}
	if n := len(AllowedTargets(model.RoleStudent)); n != 2 {
		t.Errorf("学生可设置状态期望 2 个，实际 %d", n)
	}
}
