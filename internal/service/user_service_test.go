package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"course-planner/backend/internal/dto"
	"course-planner/backend/internal/model"
)

func setupTestUserService() (UserService, *testRepos) {
	repos := newTestRepos()
	repos.addUser(testStudentID, "student1", false)
	repos.addUser(otherStudent, "student2", false)
	repos.addUser(testAdvisorID, "advisor1", true)
	repos.addUser(otherAdvisor, "advisor2", true)
	svc := NewUserService(testConfig(), repos.toRepository(), zap.NewNop())
	return svc, repos
}

func TestUserService_GetPrincipal(t *testing.T) {
	svc, _ := setupTestUserService()

	p, err := svc.GetPrincipal(context.Background(), testAdvisorID)
	if err != nil {
		t.Fatalf("GetPrincipal 应成功: %v", err)
	}
	if !p.IsAdvisor || !p.IsActive || p.Role() != model.RoleAdvisor {
		t.Errorf("调用者信息错误: %+v", p)
	}

	if _, err := svc.GetPrincipal(context.Background(), "missing"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际: %v", err)
	}
}

func TestUserService_ListAdvisors(t *testing.T) {
	svc, repos := setupTestUserService()
	repos.users.users[otherAdvisor].IsActive = false

	advisors, err := svc.ListAdvisors(context.Background())
	if err != nil {
		t.Fatalf("ListAdvisors 应成功: %v", err)
	}
	if len(advisors) != 1 || advisors[0].ID != testAdvisorID {
		t.Errorf("期望仅返回启用的导师，实际 %+v", advisors)
	}
}

func TestUserService_AddSymbiote(t *testing.T) {
	svc, repos := setupTestUserService()
	ctx := context.Background()

	if err := svc.AddSymbiote(ctx, testStudentID, &dto.AddSymbioteRequest{UserID: otherStudent}); err != nil {
		t.Fatalf("AddSymbiote 应成功: %v", err)
	}
	// 重复添加为空操作
	if err := svc.AddSymbiote(ctx, testStudentID, &dto.AddSymbioteRequest{UserID: otherStudent}); err != nil {
		t.Errorf("重复添加不应报错: %v", err)
	}
	if n := len(repos.users.symbiotes[testStudentID]); n != 1 {
		t.Errorf("期望 1 个关联用户，实际 %d", n)
	}

	mine, _ := svc.ListSymbiotes(ctx, testStudentID)
	if len(mine) != 1 || mine[0].ID != otherStudent {
		t.Errorf("关联用户列表错误: %+v", mine)
	}
	// 有向关联
	theirs, _ := svc.ListSymbiotes(ctx, otherStudent)
	if len(theirs) != 0 {
		t.Errorf("反向不应自动关联，实际 %d", len(theirs))
	}
}

func TestUserService_AddSymbiote_Errors(t *testing.T) {
	svc, _ := setupTestUserService()
	ctx := context.Background()

	if err := svc.AddSymbiote(ctx, testStudentID, &dto.AddSymbioteRequest{UserID: testStudentID}); !errors.Is(err, ErrSymbioteSelf) {
		t.Errorf("期望 ErrSymbioteSelf，实际: %v", err)
	}
	if err := svc.AddSymbiote(ctx, testStudentID, &dto.AddSymbioteRequest{UserID: "55555555-5555-5555-5555-555555555555"}); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际: %v", err)
	}
}

func TestUserService_Home(t *testing.T) {
	svc, repos := setupTestUserService()
	ctx := context.Background()

	pending := newScheduleFixture(testStudentID, testAdvisorID)
	pending.ApprovalStatus = model.StatusPending
	_ = repos.schedules.Create(ctx, pending)
	_ = repos.schedules.Create(ctx, newScheduleFixture(testStudentID, testAdvisorID))
	_ = repos.carts.Create(ctx, &model.ShoppingCart{UserID: testStudentID, Strm: 1228})

	student, err := svc.StudentHome(ctx, testStudentID)
	if err != nil {
		t.Fatalf("StudentHome 应成功: %v", err)
	}
	if len(student.Schedules) != 2 {
		t.Errorf("期望 2 个课表，实际 %d", len(student.Schedules))
	}
	if len(student.Terms) != 1 || student.Terms[0].Label != "Fall 2022" {
		t.Errorf("学期选项错误: %+v", student.Terms)
	}

	advisor, err := svc.AdvisorHome(ctx, testAdvisorID)
	if err != nil {
		t.Fatalf("AdvisorHome 应成功: %v", err)
	}
	if advisor.PendingCount != 1 || len(advisor.Schedules) != 2 {
		t.Errorf("导师首页统计错误: pending=%d schedules=%d", advisor.PendingCount, len(advisor.Schedules))
	}
}
