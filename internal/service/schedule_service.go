package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"course-planner/backend/internal/dto"
	"course-planner/backend/internal/model"
	"course-planner/backend/internal/repository"
	pkgerrors "course-planner/backend/pkg/errors"
)

var (
	ErrScheduleNotFound        = errors.New("课表不存在")
	ErrScheduleAccessDenied    = errors.New("无权操作此课表")
	ErrScheduleConflict        = errors.New("课程时间冲突")
	ErrApproverNotAdvisor      = errors.New("审批人必须是导师")
	ErrInvalidApprovalStatus   = errors.New("无效的审批状态")
	ErrStatusNotAllowedForRole = errors.New("当前角色无权设置该审批状态")
)

// ConflictError 加课时与课表中已有课程冲突
type ConflictError struct {
	Course    model.Course
	Conflicts []model.Course
}

func (e *ConflictError) Error() string {
	labels := make([]string, 0, len(e.Conflicts))
	for i := range e.Conflicts {
		labels = append(labels, e.Conflicts[i].Label())
	}
	return fmt.Sprintf("%s 与课表中的以下课程时间冲突，无法加入: %s", e.Course.Label(), strings.Join(labels, ", "))
}

// Is 使 errors.Is(err, ErrScheduleConflict) 成立
func (e *ConflictError) Is(target error) bool {
	return target == ErrScheduleConflict
}

// ScheduleService 课表业务接口
type ScheduleService interface {
	Create(ctx context.Context, studentID string, req *dto.CreateScheduleRequest) (*dto.ScheduleResponse, error)
	Get(ctx context.Context, p *Principal, scheduleID string) (*dto.ScheduleResponse, error)
	ListForStudent(ctx context.Context, studentID string) ([]dto.ScheduleResponse, error)
	ListForAdvisor(ctx context.Context, advisorID string) ([]dto.ScheduleResponse, error)
	Delete(ctx context.Context, studentID, scheduleID string) error
	// AddCourse 与已有课程冲突时返回 *ConflictError，不做任何写入
	AddCourse(ctx context.Context, studentID, scheduleID string, classNbr int) error
	RemoveCourse(ctx context.Context, studentID, scheduleID string, classNbr int) error
	ChangeStatus(ctx context.Context, p *Principal, scheduleID, requested string) (*dto.ScheduleResponse, error)
}

type scheduleService struct {
	repo    *repository.Repository
	notices NoticeSink
	logger  *zap.Logger
}

// NewScheduleService 创建 ScheduleService 实例；notices 可为 nil
func NewScheduleService(repo *repository.Repository, notices NoticeSink, logger *zap.Logger) ScheduleService {
	return &scheduleService{repo: repo, notices: notices, logger: logger}
}

func (s *scheduleService) Create(ctx context.Context, studentID string, req *dto.CreateScheduleRequest) (*dto.ScheduleResponse, error) {
	approver, err := s.repo.User.GetByID(ctx, req.ApproverID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApproverNotAdvisor
		}
		return nil, err
	}
	if !approver.IsAdvisor || !approver.IsActive {
		return nil, ErrApproverNotAdvisor
	}

	schedule := &model.Schedule{
		StudentID:      studentID,
		ApproverID:     approver.UserID,
		Name:           strings.TrimSpace(req.Name),
		ApprovalStatus: model.StatusUnsubmitted,
	}
	if err := s.repo.Schedule.Create(ctx, schedule); err != nil {
		s.logger.Error("创建课表失败", zap.String("student_id", studentID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("课表已创建",
		zap.String("schedule_id", schedule.ScheduleID),
		zap.String("student_id", studentID),
		zap.String("approver_id", approver.UserID),
	)

	created, err := s.repo.Schedule.GetByID(ctx, schedule.ScheduleID)
	if err != nil {
		return nil, err
	}
	resp := toScheduleResponse(created)
	return &resp, nil
}

func (s *scheduleService) Get(ctx context.Context, p *Principal, scheduleID string) (*dto.ScheduleResponse, error) {
	schedule, err := s.getSchedule(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	if !canView(p, schedule) {
		return nil, ErrScheduleAccessDenied
	}
	resp := toScheduleResponse(schedule)
	return &resp, nil
}

func (s *scheduleService) ListForStudent(ctx context.Context, studentID string) ([]dto.ScheduleResponse, error) {
	schedules, err := s.repo.Schedule.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return toScheduleResponses(schedules), nil
}

func (s *scheduleService) ListForAdvisor(ctx context.Context, advisorID string) ([]dto.ScheduleResponse, error) {
	schedules, err := s.repo.Schedule.ListByApprover(ctx, advisorID)
	if err != nil {
		return nil, err
	}
	return toScheduleResponses(schedules), nil
}

func (s *scheduleService) Delete(ctx context.Context, studentID, scheduleID string) error {
	if _, err := s.getOwnedSchedule(ctx, studentID, scheduleID); err != nil {
		return err
	}
	if err := s.repo.Schedule.Delete(ctx, scheduleID); err != nil {
		s.logger.Error("删除课表失败", zap.String("schedule_id", scheduleID), zap.Error(err))
		return err
	}
	s.logger.Info("课表已删除", zap.String("schedule_id", scheduleID), zap.String("student_id", studentID))
	return nil
}

func (s *scheduleService) AddCourse(ctx context.Context, studentID, scheduleID string, classNbr int) error {
	schedule, err := s.getOwnedSchedule(ctx, studentID, scheduleID)
	if err != nil {
		return err
	}

	course, err := s.repo.Course.GetByClassNbr(ctx, classNbr)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCourseNotFound
		}
		return err
	}

	// 已在课表中的课程与自身冲突，同样被拒绝
	if conflicts := FindConflicts(course, schedule.Courses); len(conflicts) > 0 {
		cerr := &ConflictError{Course: *course, Conflicts: conflicts}
		pushNotice(ctx, s.notices, s.logger, studentID, "error", cerr.Error())
		return cerr
	}

	if err := s.repo.Schedule.AddCourse(ctx, scheduleID, classNbr); err != nil {
		if errors.Is(err, pkgerrors.ErrDuplicateMembership) {
			return nil
		}
		s.logger.Error("课表加课失败", zap.String("schedule_id", scheduleID), zap.Int("class_nbr", classNbr), zap.Error(err))
		return err
	}
	return nil
}

func (s *scheduleService) RemoveCourse(ctx context.Context, studentID, scheduleID string, classNbr int) error {
	if _, err := s.getOwnedSchedule(ctx, studentID, scheduleID); err != nil {
		return err
	}
	if _, err := s.repo.Course.GetByClassNbr(ctx, classNbr); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCourseNotFound
		}
		return err
	}
	return s.repo.Schedule.RemoveCourse(ctx, scheduleID, classNbr)
}

func (s *scheduleService) ChangeStatus(ctx context.Context, p *Principal, scheduleID, requested string) (*dto.ScheduleResponse, error) {
	target, err := model.ParseApprovalStatus(requested)
	if err != nil {
		return nil, ErrInvalidApprovalStatus
	}

	schedule, err := s.getSchedule(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	role := p.Role()
	if (role == model.RoleStudent && schedule.StudentID != p.UserID) ||
		(role == model.RoleAdvisor && schedule.ApproverID != p.UserID) {
		return nil, ErrScheduleAccessDenied
	}

	if !CanTransition(schedule.ApprovalStatus, target, role) {
		pushNotice(ctx, s.notices, s.logger, p.UserID, "error",
			fmt.Sprintf("%s 不是%s可设置的状态", target.Label(), roleLabel(role)))
		return nil, ErrStatusNotAllowedForRole
	}

	if err := s.repo.Schedule.UpdateStatus(ctx, scheduleID, target); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("更新审批状态失败", zap.String("schedule_id", scheduleID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("审批状态已变更",
		zap.String("schedule_id", scheduleID),
		zap.String("from", string(schedule.ApprovalStatus)),
		zap.String("to", string(target)),
		zap.String("operator_id", p.UserID),
	)

	schedule.ApprovalStatus = target
	resp := toScheduleResponse(schedule)
	return &resp, nil
}

func (s *scheduleService) getSchedule(ctx context.Context, scheduleID string) (*model.Schedule, error) {
	schedule, err := s.repo.Schedule.GetByID(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}
	return schedule, nil
}

func (s *scheduleService) getOwnedSchedule(ctx context.Context, studentID, scheduleID string) (*model.Schedule, error) {
	schedule, err := s.getSchedule(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	if schedule.StudentID != studentID {
		return nil, ErrScheduleAccessDenied
	}
	return schedule, nil
}

// canView 学生只能查看自己的课表，导师只能查看由自己审批的课表
func canView(p *Principal, schedule *model.Schedule) bool {
	if p == nil {
		return false
	}
	if p.IsAdvisor {
		return schedule.ApproverID == p.UserID
	}
	return schedule.StudentID == p.UserID
}

func roleLabel(role model.Role) string {
	if role == model.RoleAdvisor {
		return "导师"
	}
	return "学生"
}
