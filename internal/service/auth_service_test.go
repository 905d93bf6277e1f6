package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"course-planner/backend/config"
	"course-planner/backend/internal/dto"
	"course-planner/backend/internal/model"
	"course-planner/backend/pkg/jwt"
)

func setupTestAuthService() (AuthService, *testRepos, *jwt.Manager) {
	cfg := &config.Config{
		Server: config.ServerConfig{
			BaseURL: "http://localhost:8080",
		},
		Auth: config.AuthConfig{
			JWTSecret:               "test-secret-key-for-unit-testing-2026",
			AccessTokenTTL:          15 * time.Minute,
			RefreshTokenTTLDefault:  24 * time.Hour,
			RefreshTokenTTLRemember: 7 * 24 * time.Hour,
		},
	}

	repos := newTestRepos()
	jwtMgr := jwt.NewManager(&cfg.Auth)
	svc := NewAuthService(cfg, repos.toRepository(), jwtMgr, nil, zap.NewNop())
	return svc, repos, jwtMgr
}

func createTestUser(repos *testRepos, username, password string, advisor bool) *model.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	u := repos.addUser("id-"+username, username, advisor)
	u.PasswordHash = string(hash)
	u.FirstName = "Test"
	u.LastName = "User"
	return u
}

// ── Login 测试 ──

func TestLogin_Success(t *testing.T) {
	svc, repos, jwtMgr := setupTestAuthService()
	createTestUser(repos, "mst3k", "password123", false)

	result, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "mst3k",
		Password: "password123",
	})

	if err != nil {
		t.Fatalf("Login 应成功，但返回错误: %v", err)
	}
	if result.AccessToken == "" {
		t.Error("AccessToken 不应为空")
	}
	if result.RefreshToken == "" {
		t.Error("RefreshToken 不应为空")
	}
	if result.User.Username != "mst3k" || result.User.Role != "student" {
		t.Errorf("用户信息错误: %+v", result.User)
	}
	if result.ExpiresIn != 900 {
		t.Errorf("期望 ExpiresIn=900，实际=%d", result.ExpiresIn)
	}

	claims, err := jwtMgr.ParseAccessToken(result.AccessToken)
	if err != nil {
		t.Fatalf("AccessToken 应可解析: %v", err)
	}
	if claims.UserID != "id-mst3k" || claims.Role != "student" {
		t.Errorf("Token 声明错误: %+v", claims)
	}
}

func TestLogin_AdvisorRole(t *testing.T) {
	svc, repos, jwtMgr := setupTestAuthService()
	createTestUser(repos, "advisor1", "password123", true)

	result, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "advisor1", Password: "password123"})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}
	claims, _ := jwtMgr.ParseAccessToken(result.AccessToken)
	if claims == nil || claims.Role != "advisor" {
		t.Errorf("导师登录后角色应为 advisor，实际 %+v", claims)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, repos, _ := setupTestAuthService()
	createTestUser(repos, "mst3k", "password123", false)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "mst3k", Password: "wrong"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

func TestLogin_UserNotFound(t *testing.T) {
	svc, _, _ := setupTestAuthService()

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "nobody", Password: "password123"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

func TestLogin_Inactive(t *testing.T) {
	svc, repos, _ := setupTestAuthService()
	u := createTestUser(repos, "mst3k", "password123", false)
	u.IsActive = false

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "mst3k", Password: "password123"})
	if !errors.Is(err, ErrUserInactive) {
		t.Errorf("期望 ErrUserInactive，实际: %v", err)
	}
}

func TestLogin_RememberMe(t *testing.T) {
	svc, repos, jwtMgr := setupTestAuthService()
	createTestUser(repos, "mst3k", "password123", false)

	result, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username:   "mst3k",
		Password:   "password123",
		RememberMe: true,
	})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}

	claims, err := jwtMgr.ParseToken(result.RefreshToken)
	if err != nil {
		t.Fatalf("RefreshToken 应可解析: %v", err)
	}
	if !claims.RememberMe {
		t.Error("RefreshToken 应携带 remember_me")
	}
	if ttl := time.Until(claims.ExpiresAt.Time); ttl < 6*24*time.Hour {
		t.Errorf("记住我时 RefreshToken 有效期应为 7 天，实际 %v", ttl)
	}
}

// ── Register 测试 ──

func TestRegister_Success(t *testing.T) {
	svc, repos, _ := setupTestAuthService()

	result, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Username:  " newuser ",
		Password:  "password123",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
	})
	if err != nil {
		t.Fatalf("Register 应成功: %v", err)
	}
	if result.Username != "newuser" || result.DisplayName != "Ada Lovelace" {
		t.Errorf("用户信息错误: %+v", result)
	}
	if result.Role != "student" {
		t.Errorf("注册用户应为学生，实际 %s", result.Role)
	}

	stored, err := repos.users.GetByUsername(context.Background(), "newuser")
	if err != nil {
		t.Fatalf("用户应已写入: %v", err)
	}
	if stored.IsAdvisor || !stored.IsActive {
		t.Errorf("注册用户状态错误: advisor=%v active=%v", stored.IsAdvisor, stored.IsActive)
	}
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("password123")) != nil {
		t.Error("密码应以 bcrypt 哈希保存")
	}
}

func TestRegister_LongDisplayNameFitsColumn(t *testing.T) {
	tests := []struct {
		name string
		req  dto.RegisterRequest
		want string
	}{
		{
			name: "max length names",
			req: dto.RegisterRequest{
				Username:  "longnames",
				Password:  "password123",
				FirstName: strings.Repeat("名", 150),
				LastName:  strings.Repeat("姓", 150),
			},
			want: strings.Repeat("名", 150) + " " + strings.Repeat("姓", 150),
		},
		{
			name: "long username without names",
			req: dto.RegisterRequest{
				Username: strings.Repeat("u", 150),
				Password: "password123",
			},
			want: strings.Repeat("u", 150),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repos, _ := setupTestAuthService()
			if _, err := svc.Register(context.Background(), &tt.req); err != nil {
				t.Fatalf("Register 应成功: %v", err)
			}

			stored, err := repos.users.GetByUsername(context.Background(), tt.req.Username)
			if err != nil {
				t.Fatalf("用户应已写入: %v", err)
			}
			if n := utf8.RuneCountInString(stored.Name); n > model.UserNameMaxLen {
				t.Errorf("name 长度 %d 超出列宽 %d", n, model.UserNameMaxLen)
			}
			if stored.Name != tt.want {
				t.Errorf("name 应为完整展示名，实际长度 %d", utf8.RuneCountInString(stored.Name))
			}
		})
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc, repos, _ := setupTestAuthService()
	createTestUser(repos, "mst3k", "password123", false)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{Username: "mst3k", Password: "password123"})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("期望 ErrUsernameTaken，实际: %v", err)
	}
}

// ── Logout / GetCurrentUser 测试 ──

func TestLogout_WithoutRedis(t *testing.T) {
	svc, _, _ := setupTestAuthService()

	if err := svc.Logout(context.Background(), "jti-1", time.Now().Add(time.Minute)); err != nil {
		t.Errorf("未启用 Redis 时登出不应报错: %v", err)
	}
}

func TestGetCurrentUser(t *testing.T) {
	svc, repos, _ := setupTestAuthService()
	createTestUser(repos, "mst3k", "password123", false)

	user, err := svc.GetCurrentUser(context.Background(), "id-mst3k")
	if err != nil {
		t.Fatalf("GetCurrentUser 应成功: %v", err)
	}
	if user.DisplayName != "Test User" {
		t.Errorf("期望 DisplayName=Test User，实际 %s", user.DisplayName)
	}

	_, err = svc.GetCurrentUser(context.Background(), "missing")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际: %v", err)
	}
}
