package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"course-planner/backend/config"
	"course-planner/backend/internal/dto"
	"course-planner/backend/internal/model"
	"course-planner/backend/internal/repository"
	pkgerrors "course-planner/backend/pkg/errors"
)

// CartService 购物车业务接口（仅学生）
type CartService interface {
	AddCourse(ctx context.Context, userID string, classNbr, strm int) error
	// RemoveCourse strm 为 nil 时从用户所有购物车中移除
	RemoveCourse(ctx context.Context, userID string, classNbr int, strm *int) error
	// GetCart strm 为 nil 时取用户最早创建的购物车
	GetCart(ctx context.Context, userID string, strm *int) (*dto.CartResponse, error)
}

type cartService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCartService 创建 CartService 实例
func NewCartService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) CartService {
	return &cartService{cfg: cfg, repo: repo, logger: logger}
}

func (s *cartService) AddCourse(ctx context.Context, userID string, classNbr, strm int) error {
	if err := s.requireCourse(ctx, classNbr); err != nil {
		return err
	}

	cart, err := s.repo.Cart.FirstByUserAndStrm(ctx, userID, strm)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		cart = &model.ShoppingCart{UserID: userID, Strm: strm}
		if err := s.repo.Cart.Create(ctx, cart); err != nil {
			s.logger.Error("创建购物车失败", zap.String("user_id", userID), zap.Int("strm", strm), zap.Error(err))
			return err
		}
	}

	if err := s.repo.Cart.AddCourse(ctx, cart.CartID, classNbr); err != nil {
		if errors.Is(err, pkgerrors.ErrDuplicateMembership) {
			return nil
		}
		s.logger.Error("加入购物车失败", zap.String("cart_id", cart.CartID), zap.Int("class_nbr", classNbr), zap.Error(err))
		return err
	}
	return nil
}

func (s *cartService) RemoveCourse(ctx context.Context, userID string, classNbr int, strm *int) error {
	if err := s.requireCourse(ctx, classNbr); err != nil {
		return err
	}

	var carts []model.ShoppingCart
	if strm != nil {
		cart, err := s.repo.Cart.FirstByUserAndStrm(ctx, userID, *strm)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		carts = append(carts, *cart)
	} else {
		var err error
		carts, err = s.repo.Cart.ListByUser(ctx, userID)
		if err != nil {
			return err
		}
	}

	for _, cart := range carts {
		if err := s.repo.Cart.RemoveCourse(ctx, cart.CartID, classNbr); err != nil {
			s.logger.Error("移出购物车失败", zap.String("cart_id", cart.CartID), zap.Int("class_nbr", classNbr), zap.Error(err))
			return err
		}
	}
	return nil
}

func (s *cartService) GetCart(ctx context.Context, userID string, strm *int) (*dto.CartResponse, error) {
	var (
		cart *model.ShoppingCart
		err  error
	)
	if strm != nil {
		cart, err = s.repo.Cart.FirstByUserAndStrm(ctx, userID, *strm)
	} else {
		cart, err = s.repo.Cart.FirstByUser(ctx, userID)
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	resp := &dto.CartResponse{Courses: []dto.CourseResponse{}}
	if cart != nil {
		resp.CartID = cart.CartID
		resp.Strm = cart.Strm
		resp.StrmLabel = s.cfg.Catalog.TermLabel(cart.Strm)
		resp.Courses = toCourseResponses(cart.Courses)
		resp.TotalUnits = totalUnits(cart.Courses)
	} else if strm != nil {
		resp.Strm = *strm
		resp.StrmLabel = s.cfg.Catalog.TermLabel(*strm)
	}

	strms, err := s.repo.Cart.ListStrmsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp.Terms = make([]dto.TermOption, 0, len(strms))
	for _, st := range strms {
		resp.Terms = append(resp.Terms, dto.TermOption{Strm: st, Label: s.cfg.Catalog.TermLabel(st)})
	}

	schedules, err := s.repo.Schedule.ListByStudent(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp.Schedules = toScheduleResponses(schedules)

	return resp, nil
}

func (s *cartService) requireCourse(ctx context.Context, classNbr int) error {
	if _, err := s.repo.Course.GetByClassNbr(ctx, classNbr); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCourseNotFound
		}
		return err
	}
	return nil
}
