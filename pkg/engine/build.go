package engine

import (
	"context"
	"fmt"

	"github.com/planetoid/news-analyzer/pkg/config"
	"github.com/planetoid/news-analyzer/pkg/fetcher"
	"github.com/planetoid/news-analyzer/pkg/geocode"
	"github.com/planetoid/news-analyzer/pkg/llm"
	"github.com/planetoid/news-analyzer/pkg/resolver"
)

// NewFromConfig 按配置初始化全部协作组件并创建引擎
func NewFromConfig(ctx context.Context, cfg *config.Config) (*Engine, error) {
	// 初始化页面加载器与正文抓取
	loader, err := fetcher.NewLoader(cfg.Fetcher)
	if err != nil {
		return nil, fmt.Errorf("页面加载器初始化失败: %w", err)
	}
	f := fetcher.New(loader,
		fetcher.WithSelectors(cfg.Fetcher.Selectors),
		fetcher.WithMinLength(cfg.Fetcher.MinLength),
		fetcher.WithReadabilityFallback(cfg.Fetcher.ReadabilityFallback),
	)

	// 初始化 LLM
	chatModel, err := llm.NewChatModel(ctx, cfg.LLM)
	if err != nil {
		return nil, err
	}
	completer := llm.NewClient(chatModel, cfg.LLM.MaxTokens)

	// 初始化地理编码
	r := resolver.New(geocode.NewClient(cfg.Geocoder), cfg)

	return NewEngine(f, completer, r, cfg), nil
}
