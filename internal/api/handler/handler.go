package handler

import "course-planner/backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth     *AuthHandler
	User     *UserHandler
	Course   *CourseHandler
	Cart     *CartHandler
	Schedule *ScheduleHandler
	Export   *ExportHandler
	Notice   *NoticeHandler
	Dispatch *DispatchHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service, notices NoticeSource) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(svc.Auth),
		User:     NewUserHandler(svc.User),
		Course:   NewCourseHandler(svc.Catalog),
		Cart:     NewCartHandler(svc.Cart),
		Schedule: NewScheduleHandler(svc.Schedule),
		Export:   NewExportHandler(svc.Export),
		Notice:   NewNoticeHandler(notices),
		Dispatch: NewDispatchHandler(),
	}
}
