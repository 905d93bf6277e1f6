package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"course-planner/backend/config"
	"course-planner/backend/internal/model"
	"course-planner/backend/internal/service"
	"course-planner/backend/pkg/jwt"
	"course-planner/backend/pkg/redis"
	"course-planner/backend/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const loginURL = "/api/v1/auth/login"

type stubPrincipals map[string]*service.Principal

func (s stubPrincipals) GetPrincipal(_ context.Context, userID string) (*service.Principal, error) {
	if p, ok := s[userID]; ok {
		return p, nil
	}
	return nil, errors.New("not found")
}

type stubNotices struct {
	pushed map[string][]redis.Notice
}

func (s *stubNotices) PushNotice(_ context.Context, userID string, n redis.Notice) error {
	if s.pushed == nil {
		s.pushed = make(map[string][]redis.Notice)
	}
	s.pushed[userID] = append(s.pushed[userID], n)
	return nil
}

func testJWTManager() *jwt.Manager {
	return jwt.NewManager(&config.AuthConfig{
		JWTSecret:               "test-secret-key-for-unit-testing-2026",
		AccessTokenTTL:          15 * time.Minute,
		RefreshTokenTTLDefault:  24 * time.Hour,
		RefreshTokenTTLRemember: 7 * 24 * time.Hour,
	})
}

func testPrincipals() stubPrincipals {
	return stubPrincipals{
		"stu":      {UserID: "stu", IsActive: true},
		"adv":      {UserID: "adv", IsAdvisor: true, IsActive: true},
		"inactive": {UserID: "inactive", IsAdvisor: true, IsActive: false},
	}
}

// newGatedEngine 用 user_id 请求头模拟 Identify 的结果
func newGatedEngine(mw gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if id := c.GetHeader("X-Test-User"); id != "" {
			c.Set("user_id", id)
		}
		c.Next()
	})
	r.GET("/gated", mw, func(c *gin.Context) {
		p, _ := c.Get("principal")
		response.OK(c, gin.H{"user_id": p.(*service.Principal).UserID})
	})
	return r
}

func doGated(r *gin.Engine, userID string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/gated", nil)
	if userID != "" {
		req.Header.Set("X-Test-User", userID)
	}
	r.ServeHTTP(w, req)
	return w
}

// ── Identify ──

func TestIdentify(t *testing.T) {
	mgr := testJWTManager()
	access, err := mgr.GenerateAccessToken("stu", "student")
	require.NoError(t, err)
	refresh, err := mgr.GenerateRefreshToken("stu", "student", false)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"有效 AccessToken", "Bearer " + access, "stu"},
		{"缺少认证头", "", ""},
		{"格式错误", "Token " + access, ""},
		{"RefreshToken 不可用于访问", "Bearer " + refresh, ""},
		{"伪造 Token", "Bearer not-a-token", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/whoami", Identify(mgr, nil), func(c *gin.Context) {
				c.String(http.StatusOK, c.GetString("user_id"))
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code, "Identify 不应中断请求")
			assert.Equal(t, tt.want, w.Body.String())
		})
	}
}

// ── RequireAuth ──

func TestRequireAuth(t *testing.T) {
	r := newGatedEngine(RequireAuth(testPrincipals()))

	assert.Equal(t, http.StatusUnauthorized, doGated(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, doGated(r, "inactive").Code)
	assert.Equal(t, http.StatusUnauthorized, doGated(r, "ghost").Code)
	assert.Equal(t, http.StatusOK, doGated(r, "stu").Code)
}

// ── RequireRole ──

func TestRequireRole_Allowed(t *testing.T) {
	notices := &stubNotices{}
	r := newGatedEngine(RequireRole(testPrincipals(), notices, loginURL, model.RoleAdvisor))

	w := doGated(r, "adv")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, notices.pushed)
}

func TestRequireRole_Denied(t *testing.T) {
	tests := []struct {
		name       string
		userID     string
		wantNotice bool
	}{
		{"未登录", "", false},
		{"角色不符", "stu", true},
		{"已停用", "inactive", true},
		{"用户不存在", "ghost", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notices := &stubNotices{}
			r := newGatedEngine(RequireRole(testPrincipals(), notices, loginURL, model.RoleAdvisor))

			w := doGated(r, tt.userID)
			require.Equal(t, http.StatusForbidden, w.Code)
			assert.Equal(t, loginURL, w.Header().Get("Location"))

			var resp struct {
				Code    int                   `json:"code"`
				Message string                `json:"message"`
				Data    response.RedirectData `json:"data"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, service.ReasonNoAccess, resp.Message)
			assert.Equal(t, loginURL, resp.Data.Redirect)

			if tt.wantNotice {
				require.Len(t, notices.pushed[tt.userID], 1)
				assert.Equal(t, service.ReasonNoAccess, notices.pushed[tt.userID][0].Message)
			} else {
				assert.Empty(t, notices.pushed)
			}
		})
	}
}

// ── RateLimit / RequestID ──

func TestRateLimit_NilRedisPassesThrough(t *testing.T) {
	r := gin.New()
	r.GET("/limited", RateLimit(nil, 1, time.Minute), func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/limited", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Body.String())
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Len(t, w.Body.String(), 36, "缺省时应生成 UUID")
}

func TestRequestID_RejectsUnsafeHeader(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	for _, rid := range []string{
		"abc 123",
		"abc\tinjected=1",
		"请求",
		strings.Repeat("a", requestIDMaxLen+1),
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Request-ID", rid)
		r.ServeHTTP(w, req)

		assert.NotEqual(t, rid, w.Body.String())
		_, err := uuid.Parse(w.Body.String())
		assert.NoError(t, err, "非法 ID %q 应替换为 UUID", rid)
	}
}

// ── BodyLimit ──

func newBodyLimitRouter(limit int64) (*gin.Engine, *bool) {
	called := false
	r := gin.New()
	r.Use(BodyLimit(limit))
	r.POST("/echo", func(c *gin.Context) {
		called = true
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.Error(err)
			return
		}
		c.String(http.StatusOK, string(body))
	})
	return r, &called
}

func TestBodyLimit_WithinLimit(t *testing.T) {
	r, called := newBodyLimitRouter(16)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"a":1}`)))

	assert.True(t, *called)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"a":1}`, w.Body.String())
}

func TestBodyLimit_DeclaredLengthTooLarge(t *testing.T) {
	r, called := newBodyLimitRouter(16)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(strings.Repeat("x", 17))))

	assert.False(t, *called, "超限请求不应进入处理器")
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, codeBodyTooLarge, resp.Code)
}

func TestBodyLimit_UndeclaredLengthTooLarge(t *testing.T) {
	r, called := newBodyLimitRouter(16)

	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(strings.Repeat("x", 64)))
	req.ContentLength = -1
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.True(t, *called)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, codeBodyTooLarge, resp.Code)
}
