package dto

// ── 认证模块响应 ──

// TokenResponse Token 对响应
type TokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int          `json:"expires_in"` // Access Token 有效期（秒）
	User         UserResponse `json:"user"`
}

// ── 用户模块响应 ──

// UserResponse 用户信息响应（脱敏）
type UserResponse struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// UserBrief 用户简要信息
type UserBrief struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// ── 首页响应 ──

// StudentHomeResponse 学生首页
type StudentHomeResponse struct {
	User      UserResponse       `json:"user"`
	Schedules []ScheduleResponse `json:"schedules"`
	Terms     []TermOption       `json:"terms"`
}

// AdvisorHomeResponse 导师首页
type AdvisorHomeResponse struct {
	User         UserResponse       `json:"user"`
	PendingCount int                `json:"pending_count"`
	Schedules    []ScheduleResponse `json:"schedules"`
}
