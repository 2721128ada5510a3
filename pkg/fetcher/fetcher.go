package fetcher

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/go-shiori/go-readability"

	"github.com/planetoid/news-analyzer/pkg/logger"
)

// DefaultSelectors 正文候选选择器，按优先级排列
var DefaultSelectors = []string{
	"article",
	".article-content",
	".content",
	".post-content",
	".entry-content",
	"#article",
	".article-body",
	"main",
}

// DefaultMinLength 正文长度阈值（字符数），超过才视为真正的文章正文
const DefaultMinLength = 200

// ErrNoContent 所有选择器均不存在或为空
var ErrNoContent = errors.New("無法抓取文章內容")

// FetchError 抓取失败：网络、浏览器或正文为空
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("抓取失敗 [%s]: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Fetcher 加载页面并按选择器顺序提取正文
type Fetcher struct {
	loader      PageLoader
	selectors   []string
	minLength   int
	readability bool
}

// Option 配置 Fetcher
type Option func(*Fetcher)

// WithSelectors 替换候选选择器列表
func WithSelectors(selectors []string) Option {
	return func(f *Fetcher) {
		if len(selectors) > 0 {
			f.selectors = selectors
		}
	}
}

// WithMinLength 替换正文长度阈值
func WithMinLength(n int) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.minLength = n
		}
	}
}

// WithReadabilityFallback 所有选择器都没有内容时改用 readability 提取
func WithReadabilityFallback(enabled bool) Option {
	return func(f *Fetcher) { f.readability = enabled }
}

// New 创建 Fetcher
func New(loader PageLoader, opts ...Option) *Fetcher {
	f := &Fetcher{
		loader:    loader,
		selectors: DefaultSelectors,
		minLength: DefaultMinLength,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch 抓取 URL 并返回最可能的正文文本
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (string, error) {
	page, err := f.loader.Load(ctx, pageURL)
	if err != nil {
		return "", &FetchError{URL: pageURL, Err: err}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return "", &FetchError{URL: pageURL, Err: fmt.Errorf("parse document: %w", err)}
	}

	var fallback string
	for _, selector := range f.selectors {
		text, err := probe(doc, selector)
		if err != nil {
			logger.Log.Warnf("选择器探测失败 [%s]: %v", selector, err)
			continue
		}
		if text == "" {
			logger.Log.Debugf("选择器无内容 [%s]", selector)
			continue
		}

		n := utf8.RuneCountInString(text)
		if n > f.minLength {
			logger.Log.Infof("正文来自选择器 [%s] (%d 字)", selector, n)
			return text, nil
		}
		logger.Log.Debugf("选择器内容过短 [%s] (%d 字)", selector, n)
		fallback = text
	}

	if fallback != "" {
		logger.Log.Warnf("没有候选超过 %d 字，使用最后一个非空候选 [%s]", f.minLength, pageURL)
		return fallback, nil
	}

	if f.readability {
		if text := readabilityText(page, pageURL); text != "" {
			logger.Log.Warnf("选择器均无内容，改用 readability 提取 [%s]", pageURL)
			return text, nil
		}
	}

	return "", &FetchError{URL: pageURL, Err: ErrNoContent}
}

// probe 取选择器匹配的第一个元素的可见文本
func probe(doc *goquery.Document, selector string) (string, error) {
	matcher, err := cascadia.Compile(selector)
	if err != nil {
		return "", fmt.Errorf("invalid selector: %w", err)
	}

	sel := doc.FindMatcher(matcher).First()
	if sel.Length() == 0 {
		return "", nil
	}
	return innerText(sel.Get(0)), nil
}

func readabilityText(page, pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	article, err := readability.FromReader(strings.NewReader(page), u)
	if err != nil {
		logger.Log.Debugf("readability 提取失败 [%s]: %v", pageURL, err)
		return ""
	}
	return normalizeText(article.TextContent)
}
