package dto

// ── 认证模块 DTO ──

// LoginRequest 登录请求
type LoginRequest struct {
	Username   string `json:"username"    binding:"required"`
	Password   string `json:"password"    binding:"required"`
	RememberMe bool   `json:"remember_me"`
}

// RegisterRequest 注册请求；注册用户一律为学生
type RegisterRequest struct {
	Username  string `json:"username"   binding:"required,min=3,max=150"`
	Password  string `json:"password"   binding:"required,min=8,max=64"`
	FirstName string `json:"first_name" binding:"omitempty,max=150"`
	LastName  string `json:"last_name"  binding:"omitempty,max=150"`
	Email     string `json:"email"      binding:"omitempty,email"`
}
