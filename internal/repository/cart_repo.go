package repository

import (
	"context"

	"gorm.io/gorm"

	"course-planner/backend/internal/model"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	Create(ctx context.Context, cart *model.ShoppingCart) error
	// FirstByUserAndStrm 同一学期存在多条时取最早创建的一条，含课程
	FirstByUserAndStrm(ctx context.Context, userID string, strm int) (*model.ShoppingCart, error)
	// FirstByUser 用户最早创建的购物车，含课程
	FirstByUser(ctx context.Context, userID string) (*model.ShoppingCart, error)
	ListByUser(ctx context.Context, userID string) ([]model.ShoppingCart, error)
	ListStrmsByUser(ctx context.Context, userID string) ([]int, error)
	AddCourse(ctx context.Context, cartID string, classNbr int) error
	RemoveCourse(ctx context.Context, cartID string, classNbr int) error
}

type cartRepo struct {
	db *gorm.DB
}

// NewCartRepo 创建 CartRepository 实例
func NewCartRepo(db *gorm.DB) CartRepository {
	return &cartRepo{db: db}
}

func (r *cartRepo) Create(ctx context.Context, cart *model.ShoppingCart) error {
	return r.db.WithContext(ctx).Omit("Courses").Create(cart).Error
}

func (r *cartRepo) FirstByUserAndStrm(ctx context.Context, userID string, strm int) (*model.ShoppingCart, error) {
	var cart model.ShoppingCart
	err := r.db.WithContext(ctx).
		Preload("Courses").
		Where("user_id = ? AND strm = ?", userID, strm).
		Order("created_at ASC").
		First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *cartRepo) FirstByUser(ctx context.Context, userID string) (*model.ShoppingCart, error) {
	var cart model.ShoppingCart
	err := r.db.WithContext(ctx).
		Preload("Courses").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *cartRepo) ListByUser(ctx context.Context, userID string) ([]model.ShoppingCart, error) {
	var carts []model.ShoppingCart
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&carts).Error
	return carts, err
}

func (r *cartRepo) ListStrmsByUser(ctx context.Context, userID string) ([]int, error) {
	var strms []int
	err := r.db.WithContext(ctx).
		Model(&model.ShoppingCart{}).
		Where("user_id = ?", userID).
		Distinct().
		Order("strm ASC").
		Pluck("strm", &strms).Error
	return strms, err
}

func (r *cartRepo) AddCourse(ctx context.Context, cartID string, classNbr int) error {
	return insertMembership(ctx, r.db, &model.ShoppingCartCourse{CartID: cartID, ClassNbr: classNbr})
}

func (r *cartRepo) RemoveCourse(ctx context.Context, cartID string, classNbr int) error {
	return r.db.WithContext(ctx).
		Where("cart_id = ? AND class_nbr = ?", cartID, classNbr).
		Delete(&model.ShoppingCartCourse{}).Error
}
