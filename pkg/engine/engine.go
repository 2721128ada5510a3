package engine

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/planetoid/news-analyzer/pkg/classifier"
	"github.com/planetoid/news-analyzer/pkg/config"
	"github.com/planetoid/news-analyzer/pkg/fetcher"
	"github.com/planetoid/news-analyzer/pkg/llm"
	"github.com/planetoid/news-analyzer/pkg/logger"
	"github.com/planetoid/news-analyzer/pkg/model"
	"github.com/planetoid/news-analyzer/pkg/parser"
	"github.com/planetoid/news-analyzer/pkg/prompt"
)

// Fetcher 正文抓取接口
type Fetcher interface {
	Fetch(ctx context.Context, pageURL string) (string, error)
}

// Resolver 实体链接补全接口
type Resolver interface {
	Resolve(ctx context.Context, bundle model.EntityBundle) model.EntityBundle
}

// Request 一次分析请求，URL 与 Text 二选一
type Request struct {
	URL  string
	Text string
}

// Engine 串联抓取、分析、解析、分类与链接补全
type Engine struct {
	fetcher   Fetcher
	completer llm.Completer
	resolver  Resolver
	build     func(articleText string) string

	fetchTimeout time.Duration
	llmTimeout   time.Duration
}

// NewEngine 创建引擎实例
func NewEngine(f Fetcher, c llm.Completer, r Resolver, cfg *config.Config) *Engine {
	return &Engine{
		fetcher:      f,
		completer:    c,
		resolver:     r,
		build:        prompt.Build,
		fetchTimeout: config.Seconds(cfg.Fetcher.Timeout, 15*time.Second),
		llmTimeout:   config.Seconds(cfg.LLM.Timeout, 15*time.Second),
	}
}

// Run 执行一次完整的分析流程，各阶段严格按顺序执行
func (e *Engine) Run(ctx context.Context, req Request) (*model.AnalysisResult, error) {
	log := logger.Log.WithField("run_id", uuid.NewString())

	article, err := e.article(ctx, log, req)
	if err != nil {
		return nil, err
	}

	// 1. 构建提示词并调用模型
	userPrompt := e.build(article.RawText)
	log.Infof("开始分析，正文 %d 字", len([]rune(article.RawText)))

	llmCtx, cancel := context.WithTimeout(ctx, e.llmTimeout)
	reply, err := e.completer.Complete(llmCtx, userPrompt)
	cancel()
	if err != nil {
		pe := stageError(llmCtx, StageAnalysis, KindAnalysis, err)
		log.WithField("kind", pe.Kind).Errorf("模型调用失败: %v", err)
		return nil, pe
	}
	log.Debugf("模型原始回复: %s", reply)

	// 2. 解析
	result, err := parser.Parse(reply)
	if err != nil {
		log.Errorf("解析失败: %v", err)
		return nil, &PipelineError{Kind: KindParse, Stage: StageParse, Err: err}
	}

	// 3. 重新分类
	if classifier.Reconcile(result) {
		log.WithFields(logrus.Fields{
			"model_category": result.DrinkRecommendation.ModelCategory,
			"category":       result.DrinkRecommendation.Category,
		}).Warnf("模型自报分类与计算结果不一致，采用计算结果 (真实度 %d, 重要性 %d)",
			result.Truthfulness, result.Importance)
	}

	// 4. 补全实体链接
	result.Entities = e.resolver.Resolve(ctx, result.Entities)

	log.WithField("category", result.DrinkRecommendation.Category).Info("分析完成")
	return result, nil
}

// article 校验输入，URL 输入时抓取正文
func (e *Engine) article(ctx context.Context, log *logrus.Entry, req Request) (*model.Article, error) {
	rawURL := strings.TrimSpace(req.URL)
	text := strings.TrimSpace(req.Text)

	switch {
	case rawURL != "" && text != "":
		return nil, inputError(errors.New("url 與 text 只能擇一提供"))
	case rawURL == "" && text == "":
		return nil, inputError(errors.New("請提供新聞網址或文章內容"))
	case text != "":
		return &model.Article{RawText: text}, nil
	}

	if err := validateURL(rawURL); err != nil {
		return nil, inputError(err)
	}

	log.Infof("开始抓取 [%s]", rawURL)
	fetchCtx, cancel := context.WithTimeout(ctx, e.fetchTimeout)
	defer cancel()

	body, err := e.fetcher.Fetch(fetchCtx, rawURL)
	if err == nil && strings.TrimSpace(body) == "" {
		err = &fetcher.FetchError{URL: rawURL, Err: fetcher.ErrNoContent}
	}
	if err != nil {
		pe := stageError(fetchCtx, StageFetch, KindFetch, err)
		pe.Hint = HintUseText
		log.WithField("kind", pe.Kind).Warnf("抓取失败: %v", err)
		return nil, pe
	}

	return &model.Article{SourceURL: rawURL, RawText: body}, nil
}

func validateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("網址格式錯誤: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("網址格式錯誤: %q", rawURL)
	}
	return nil
}

func inputError(err error) *PipelineError {
	return &PipelineError{Kind: KindInput, Stage: StageInput, Err: err}
}
