package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/planetoid/news-analyzer/pkg/config"
)

const maxPageBytes = 8 << 20

// PageLoader 加载单个页面并返回渲染后的 HTML
type PageLoader interface {
	Load(ctx context.Context, pageURL string) (string, error)
}

// BrowserLoader 每次调用启动一个无头 Chrome 会话，加载完成后关闭
type BrowserLoader struct {
	userAgent string
	settle    time.Duration
	execPath  string
}

// NewBrowserLoader 创建无头浏览器加载器，settle 为页面就绪后等待网络静默的时长
func NewBrowserLoader(userAgent string, settle time.Duration, execPath string) *BrowserLoader {
	return &BrowserLoader{userAgent: userAgent, settle: settle, execPath: execPath}
}

var _ PageLoader = (*BrowserLoader)(nil)

// Load 实现 PageLoader
func (l *BrowserLoader) Load(ctx context.Context, pageURL string) (string, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:], chromedp.UserAgent(l.userAgent))
	if l.execPath != "" {
		opts = append(opts, chromedp.ExecPath(l.execPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(l.settle),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("browser load failed: %w", err)
	}
	return html, nil
}

// HTTPLoader 直接请求页面，不执行脚本
type HTTPLoader struct {
	userAgent string
	client    *http.Client
}

// NewHTTPLoader 创建 HTTP 加载器，client 为 nil 时使用默认客户端
func NewHTTPLoader(userAgent string, client *http.Client) *HTTPLoader {
	if client == nil {
		client = &http.Client{}
	}
	return &HTTPLoader{userAgent: userAgent, client: client}
}

var _ PageLoader = (*HTTPLoader)(nil)

// Load 实现 PageLoader
func (l *HTTPLoader) Load(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("User-Agent", l.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	res, err := l.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("page returned %s", res.Status)
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, maxPageBytes))
	if err != nil {
		return "", fmt.Errorf("read body failed: %w", err)
	}
	return string(body), nil
}

// NewLoader 根据配置创建页面加载器
func NewLoader(cfg config.FetcherConfig) (PageLoader, error) {
	switch cfg.Loader {
	case config.LoaderBrowser, "":
		return NewBrowserLoader(cfg.UserAgent, time.Duration(cfg.SettleMillis)*time.Millisecond, cfg.ChromePath), nil
	case config.LoaderHTTP:
		return NewHTTPLoader(cfg.UserAgent, nil), nil
	default:
		return nil, fmt.Errorf("unknown page loader: %s", cfg.Loader)
	}
}
