package dto

// ── 课表模块 DTO ──

// CreateScheduleRequest 创建课表请求
type CreateScheduleRequest struct {
	Name       string `json:"name"        binding:"required,min=1,max=200"`
	ApproverID string `json:"approver_id" binding:"required,uuid"`
}

// AddScheduleCourseRequest 向课表添加课程请求
type AddScheduleCourseRequest struct {
	ClassNbr int `json:"class_nbr" binding:"required,min=1"`
}

// ChangeStatusRequest 修改审批状态请求
type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required,approval_status"`
}

// ScheduleResponse 课表信息
type ScheduleResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Status      string           `json:"approval_status"`
	StatusLabel string           `json:"approval_status_label"`
	Student     *UserBrief       `json:"student,omitempty"`
	Approver    *UserBrief       `json:"approver,omitempty"`
	Courses     []CourseResponse `json:"courses"`
	TotalUnits  int              `json:"total_units"`
	CreatedAt   string           `json:"created_at"`
}

// ScheduleConflictResponse 加课冲突详情
type ScheduleConflictResponse struct {
	Course    CourseResponse   `json:"course"`
	Conflicts []CourseResponse `json:"conflicts"`
}
