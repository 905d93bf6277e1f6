package dto

// ── 用户模块 DTO ──

// AddSymbioteRequest 添加关联用户请求
type AddSymbioteRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
}
