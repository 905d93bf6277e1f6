package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"course-planner/backend/internal/model"
)

// CourseRepository 课程数据访问接口
// 课程只插入不更新
type CourseRepository interface {
	GetByClassNbr(ctx context.Context, classNbr int) (*model.Course, error)
	// CreateIfAbsent 按 class_nbr 插入，已存在时不做任何修改；返回是否实际写入
	CreateIfAbsent(ctx context.Context, course *model.Course) (bool, error)
	ListByClassNbrs(ctx context.Context, classNbrs []int) ([]model.Course, error)
}

type courseRepo struct {
	db *gorm.DB
}

// NewCourseRepo 创建 CourseRepository 实例
func NewCourseRepo(db *gorm.DB) CourseRepository {
	return &courseRepo{db: db}
}

func (r *courseRepo) GetByClassNbr(ctx context.Context, classNbr int) (*model.Course, error) {
	var course model.Course
	err := r.db.WithContext(ctx).
		Where("class_nbr = ?", classNbr).
		First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepo) CreateIfAbsent(ctx context.Context, course *model.Course) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "class_nbr"}},
			DoNothing: true,
		}).
		Create(course)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *courseRepo) ListByClassNbrs(ctx context.Context, classNbrs []int) ([]model.Course, error) {
	if len(classNbrs) == 0 {
		return nil, nil
	}
	var courses []model.Course
	err := r.db.WithContext(ctx).
		Where("class_nbr IN ?", classNbrs).
		Find(&courses).Error
	return courses, err
}
