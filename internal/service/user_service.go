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

// ── 用户模块业务错误 ──

var ErrSymbioteSelf = errors.New("不能关联自己")

// UserService 用户业务接口
type UserService interface {
	GetPrincipal(ctx context.Context, userID string) (*Principal, error)
	ListAdvisors(ctx context.Context) ([]dto.UserResponse, error)
	ListSymbiotes(ctx context.Context, userID string) ([]dto.UserResponse, error)
	// AddSymbiote 有向添加，重复添加视为成功
	AddSymbiote(ctx context.Context, userID string, req *dto.AddSymbioteRequest) error
	StudentHome(ctx context.Context, userID string) (*dto.StudentHomeResponse, error)
	AdvisorHome(ctx context.Context, userID string) (*dto.AdvisorHomeResponse, error)
}

type userService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{cfg: cfg, repo: repo, logger: logger}
}

func (s *userService) GetPrincipal(ctx context.Context, userID string) (*Principal, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return PrincipalFromUser(user), nil
}

func (s *userService) ListAdvisors(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.repo.User.ListAdvisors(ctx)
	if err != nil {
		return nil, err
	}
	return toUserResponses(users), nil
}

func (s *userService) ListSymbiotes(ctx context.Context, userID string) ([]dto.UserResponse, error) {
	users, err := s.repo.User.ListSymbiotes(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toUserResponses(users), nil
}

func (s *userService) AddSymbiote(ctx context.Context, userID string, req *dto.AddSymbioteRequest) error {
	if userID == req.UserID {
		return ErrSymbioteSelf
	}
	if _, err := s.getUser(ctx, req.UserID); err != nil {
		return err
	}

	if err := s.repo.User.AddSymbiote(ctx, userID, req.UserID); err != nil {
		if errors.Is(err, pkgerrors.ErrDuplicateMembership) {
			return nil
		}
		s.logger.Error("添加关联用户失败", zap.String("user_id", userID), zap.Error(err))
		return err
	}
	return nil
}

func (s *userService) StudentHome(ctx context.Context, userID string) (*dto.StudentHomeResponse, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	schedules, err := s.repo.Schedule.ListByStudent(ctx, userID)
	if err != nil {
		return nil, err
	}
	strms, err := s.repo.Cart.ListStrmsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	terms := make([]dto.TermOption, 0, len(strms))
	for _, st := range strms {
		terms = append(terms, dto.TermOption{Strm: st, Label: s.cfg.Catalog.TermLabel(st)})
	}
	return &dto.StudentHomeResponse{
		User:      toUserResponse(user),
		Schedules: toScheduleResponses(schedules),
		Terms:     terms,
	}, nil
}

func (s *userService) AdvisorHome(ctx context.Context, userID string) (*dto.AdvisorHomeResponse, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	schedules, err := s.repo.Schedule.ListByApprover(ctx, userID)
	if err != nil {
		return nil, err
	}

	pending := 0
	for i := range schedules {
		if schedules[i].ApprovalStatus == model.StatusPending {
			pending++
		}
	}
	return &dto.AdvisorHomeResponse{
		User:         toUserResponse(user),
		PendingCount: pending,
		Schedules:    toScheduleResponses(schedules),
	}, nil
}

func (s *userService) getUser(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func toUserResponses(users []model.User) []dto.UserResponse {
	result := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		result = append(result, toUserResponse(&users[i]))
	}
	return result
}
