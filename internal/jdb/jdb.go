// Package jdb 是 javdatabase.com 的站点绑定：搜索页/详情页的抓取与解析。
//
// 约束：
// - Fetch 不做缓存/重试/限速（单次尝试是产品契约；失败由上层降级）
// - Parse* 必须是纯函数：相同输入 => 相同输出
// - 同一详情页允许被多次独立抓取（元数据与图集各取一次，互不共享）
package jdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/John-Robertt/javdata/internal/domain"
)

// DefaultBaseURL 是站点默认域名；配置可指定镜像域名绕过区域不可达。
const DefaultBaseURL = "https://www.javdatabase.com"

// Client 持有站点域名与页面抓取所用的 http.Client。
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func (c *Client) baseURL() string {
	u := strings.TrimSpace(c.BaseURL)
	if u == "" {
		return DefaultBaseURL
	}
	return strings.TrimRight(u, "/")
}

// SearchURL 拼接站内搜索地址（movies + uncensored 两个 post_type）。
func (c *Client) SearchURL(query string) string {
	return c.baseURL() + "/?post_type=movies%2Cuncensored&s=" + url.QueryEscape(query)
}

// Search 抓取搜索结果页并解析为候选列表。
func (c *Client) Search(ctx context.Context, query string) ([]domain.SearchResult, error) {
	b, err := c.FetchPage(ctx, c.SearchURL(query))
	if err != nil {
		return nil, err
	}
	return ParseSearch(b)
}

// FetchPage 抓取一个页面并整体读入（非 2xx 视为失败）。
func (c *Client) FetchPage(ctx context.Context, pageURL string) ([]byte, error) {
	if c.HTTP == nil {
		return nil, errors.New("http client 不能为空")
	}
	if strings.TrimSpace(pageURL) == "" {
		return nil, errors.New("pageURL 不能为空")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPStatusError{URL: pageURL, StatusCode: resp.StatusCode, Location: resp.Header.Get("Location")}
	}
	return io.ReadAll(resp.Body)
}

// HTTPStatusError 表示站点返回了非 2xx 的 HTTP 状态码。
// 上层据此生成更可操作的提示信息（例如带 Location 的跳转拦截）。
type HTTPStatusError struct {
	URL        string
	StatusCode int
	Location   string
}

func (e *HTTPStatusError) Error() string {
	if e == nil {
		return "HTTP status error"
	}
	loc := strings.TrimSpace(e.Location)
	if loc == "" {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("HTTP %d location=%s", e.StatusCode, loc)
}
