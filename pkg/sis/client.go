package sis

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"course-planner/backend/config"
)

const maxPageSize = 8 << 20 // 单页响应体上限 8MB

// Query 课程检索条件；空字段原样以空值传给接口
type Query struct {
	Term            string
	Subject         string
	AcadOrg         string
	CatalogNbr      string
	InstructionMode string
	Keyword         string
	SessionCode     string
	Location        string
}

// Client 外部课程检索接口客户端
type Client struct {
	baseURL     string
	institution string
	maxPages    int
	httpClient  *http.Client
	logger      *zap.Logger
}

// NewClient 创建检索客户端
func NewClient(cfg *config.SISConfig, logger *zap.Logger) *Client {
	return NewClientWithHTTP(cfg, &http.Client{Timeout: cfg.Timeout}, logger)
}

// NewClientWithHTTP 使用自定义 http.Client（测试时注入）
func NewClientWithHTTP(cfg *config.SISConfig, hc *http.Client, logger *zap.Logger) *Client {
	maxPages := cfg.MaxPages
	if maxPages < 1 {
		maxPages = 1
	}
	return &Client{
		baseURL:     cfg.BaseURL,
		institution: cfg.Institution,
		maxPages:    maxPages,
		httpClient:  hc,
		logger:      logger,
	}
}

// MaxPages 每次检索请求的页数
func (c *Client) MaxPages() int {
	return c.maxPages
}

// PageURL 构造第 page 页的请求地址
func (c *Client) PageURL(q Query, page int) string {
	params := url.Values{}
	params.Set("institution", c.institution)
	params.Set("term", q.Term)
	params.Set("subject", q.Subject)
	params.Set("acad_org", q.AcadOrg)
	params.Set("catalog_nbr", q.CatalogNbr)
	params.Set("instruction_mode", q.InstructionMode)
	params.Set("keyword", q.Keyword)
	params.Set("session_code", q.SessionCode)
	params.Set("location", q.Location)
	params.Set("page", strconv.Itoa(page))
	return c.baseURL + "?" + params.Encode()
}

// SearchPage 请求单页结果
// 网络错误、非 200 状态码与无法解析的响应体均返回错误
func (c *Client) SearchPage(ctx context.Context, q Query, page int) ([]Section, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.PageURL(q, page), nil)
	if err != nil {
		return nil, fmt.Errorf("构造检索请求失败: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("请求检索接口失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("请求检索接口失败: HTTP %d", resp.StatusCode)
	}

	var sections []Section
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxPageSize)).Decode(&sections); err != nil {
		return nil, fmt.Errorf("解析检索结果失败: %w", err)
	}
	return sections, nil
}

// SearchAll 依次请求第 1 至 MaxPages 页并拼接结果
// 不因空页提前结束；单页失败按空页处理，只记录日志，不重试
func (c *Client) SearchAll(ctx context.Context, q Query) []Section {
	var all []Section
	for page := 1; page <= c.maxPages; page++ {
		start := time.Now()
		sections, err := c.SearchPage(ctx, q, page)
		if err != nil {
			c.logger.Warn("检索页请求失败，按空页处理",
				zap.Int("page", page),
				zap.Duration("latency", time.Since(start)),
				zap.Error(err),
			)
			continue
		}
		c.logger.Debug("检索页完成",
			zap.Int("page", page),
			zap.Int("count", len(sections)),
			zap.Duration("latency", time.Since(start)),
		)
		all = append(all, sections...)
	}
	return all
}
