package dto

// ── 购物车模块 DTO ──

// CartQuery 购物车查询参数
type CartQuery struct {
	Strm *int `form:"strm" binding:"omitempty,min=1"`
}

// CartResponse 购物车视图
type CartResponse struct {
	CartID     string             `json:"cart_id,omitempty"` // 尚未创建购物车时为空
	Strm       int                `json:"strm,omitempty"`
	StrmLabel  string             `json:"strm_label,omitempty"`
	Courses    []CourseResponse   `json:"courses"`
	TotalUnits int                `json:"total_units"`
	Terms      []TermOption       `json:"terms"`
	Schedules  []ScheduleResponse `json:"schedules"`
}
