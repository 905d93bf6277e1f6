package repository

import (
	"context"

	"gorm.io/gorm"

	"course-planner/backend/internal/model"
)

// UserRepository 用户数据访问接口
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	ListAdvisors(ctx context.Context) ([]model.User, error)
	ListSymbiotes(ctx context.Context, userID string) ([]model.User, error)
	AddSymbiote(ctx context.Context, userID, symbioteID string) error
}

// userRepo UserRepository 的 GORM 实现
type userRepo struct {
	db *gorm.DB
}

// NewUserRepo 创建 UserRepository 实例
func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Omit("Symbiotes").Create(user).Error
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("user_id = ?", id).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) ListAdvisors(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Where("is_advisor = ? AND is_active = ?", true, true).
		Order("last_name ASC, first_name ASC, username ASC").
		Find(&users).Error
	return users, err
}

func (r *userRepo) ListSymbiotes(ctx context.Context, userID string) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Joins("JOIN user_symbiotes us ON us.symbiote_id = users.user_id").
		Where("us.user_id = ?", userID).
		Order("users.username ASC").
		Find(&users).Error
	return users, err
}

func (r *userRepo) AddSymbiote(ctx context.Context, userID, symbioteID string) error {
	return insertMembership(ctx, r.db, &model.UserSymbiote{UserID: userID, SymbioteID: symbioteID})
}
