package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	pkgerrors "course-planner/backend/pkg/errors"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	User     UserRepository
	Course   CourseRepository
	Cart     CartRepository
	Schedule ScheduleRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:     NewUserRepo(db),
		Course:   NewCourseRepo(db),
		Cart:     NewCartRepo(db),
		Schedule: NewScheduleRepo(db),
	}
}

// insertMembership 写入关联表一行，已存在时返回 ErrDuplicateMembership 且不做修改
func insertMembership(ctx context.Context, db *gorm.DB, row interface{}) error {
	result := db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(row)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrDuplicateMembership
	}
	return nil
}
