package repository

import (
	"context"

	"gorm.io/gorm"

	"course-planner/backend/internal/model"
)

// ScheduleRepository 课表数据访问接口
type ScheduleRepository interface {
	Create(ctx context.Context, schedule *model.Schedule) error
	// GetByID 含学生、审批导师与课程
	GetByID(ctx context.Context, id string) (*model.Schedule, error)
	ListByStudent(ctx context.Context, studentID string) ([]model.Schedule, error)
	ListByApprover(ctx context.Context, approverID string) ([]model.Schedule, error)
	UpdateStatus(ctx context.Context, id string, status model.ApprovalStatus) error
	Delete(ctx context.Context, id string) error
	AddCourse(ctx context.Context, scheduleID string, classNbr int) error
	RemoveCourse(ctx context.Context, scheduleID string, classNbr int) error
}

type scheduleRepo struct {
	db *gorm.DB
}

// NewScheduleRepo 创建 ScheduleRepository 实例
func NewScheduleRepo(db *gorm.DB) ScheduleRepository {
	return &scheduleRepo{db: db}
}

func (r *scheduleRepo) Create(ctx context.Context, schedule *model.Schedule) error {
	return r.db.WithContext(ctx).
		Omit("Student", "Approver", "Courses").
		Create(schedule).Error
}

func (r *scheduleRepo) GetByID(ctx context.Context, id string) (*model.Schedule, error) {
	var schedule model.Schedule
	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Approver").
		Preload("Courses").
		Where("schedule_id = ?", id).
		First(&schedule).Error
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *scheduleRepo) ListByStudent(ctx context.Context, studentID string) ([]model.Schedule, error) {
	var schedules []model.Schedule
	err := r.db.WithContext(ctx).
		Preload("Approver").
		Preload("Courses").
		Where("student_id = ?", studentID).
		Order("created_at ASC").
		Find(&schedules).Error
	return schedules, err
}

func (r *scheduleRepo) ListByApprover(ctx context.Context, approverID string) ([]model.Schedule, error) {
	var schedules []model.Schedule
	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Courses").
		Where("approver_id = ?", approverID).
		Order("created_at ASC").
		Find(&schedules).Error
	return schedules, err
}

func (r *scheduleRepo) UpdateStatus(ctx context.Context, id string, status model.ApprovalStatus) error {
	result := r.db.WithContext(ctx).
		Model(&model.Schedule{}).
		Where("schedule_id = ?", id).
		Update("approval_status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *scheduleRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("schedule_id = ?", id).
			Delete(&model.ScheduleCourse{}).Error; err != nil {
			return err
		}
		return tx.Where("schedule_id = ?", id).
			Delete(&model.Schedule{}).Error
	})
}

func (r *scheduleRepo) AddCourse(ctx context.Context, scheduleID string, classNbr int) error {
	return insertMembership(ctx, r.db, &model.ScheduleCourse{ScheduleID: scheduleID, ClassNbr: classNbr})
}

func (r *scheduleRepo) RemoveCourse(ctx context.Context, scheduleID string, classNbr int) error {
	return r.db.WithContext(ctx).
		Where("schedule_id = ? AND class_nbr = ?", scheduleID, classNbr).
		Delete(&model.ScheduleCourse{}).Error
}
