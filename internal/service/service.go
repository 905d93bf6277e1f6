package service

import (
	"go.uber.org/zap"

	"course-planner/backend/config"
	"course-planner/backend/internal/repository"
	"course-planner/backend/pkg/jwt"
	"course-planner/backend/pkg/logger"
	"course-planner/backend/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth     AuthService
	User     UserService
	Catalog  CatalogService
	Cart     CartService
	Schedule ScheduleService
	Export   ExportService
}

// NewService 创建 Service 聚合；rdb 为 nil 时黑名单与提示消息降级
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	fetcher SectionFetcher,
	log *zap.Logger,
) *Service {
	return &Service{
		Auth:     NewAuthService(cfg, repo, jwtMgr, rdb, logger.Component(log, "auth")),
		User:     NewUserService(cfg, repo, logger.Component(log, "user")),
		Catalog:  NewCatalogService(cfg, repo, fetcher, logger.Component(log, "catalog")),
		Cart:     NewCartService(cfg, repo, logger.Component(log, "cart")),
		Schedule: NewScheduleService(repo, rdb, logger.Component(log, "schedule")),
		Export:   NewExportService(cfg, repo, logger.Component(log, "export")),
	}
}
