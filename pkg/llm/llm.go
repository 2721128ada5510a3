package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/planetoid/news-analyzer/pkg/config"
	"github.com/planetoid/news-analyzer/pkg/logger"
	"github.com/planetoid/news-analyzer/pkg/prompt"
)

// Completer 生成式文本调用接口
type Completer interface {
	Complete(ctx context.Context, userPrompt string) (string, error)
}

// Client 基于 eino ChatModel 的生成式文本客户端
type Client struct {
	chatModel model.BaseChatModel
	maxTokens int
}

// Ensure Client implements Completer
var _ Completer = (*Client)(nil)

// ErrEmptyReply 模型返回了空消息
var ErrEmptyReply = errors.New("empty reply from chat model")

// NewChatModel 按配置初始化 OpenAI 兼容的 ChatModel，模型 ID 原样透传
func NewChatModel(ctx context.Context, cfg config.LLMConfig) (model.BaseChatModel, error) {
	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM 初始化失败: %w", err)
	}
	return chatModel, nil
}

// NewClient 包装已有的 ChatModel
func NewClient(chatModel model.BaseChatModel, maxTokens int) *Client {
	return &Client{
		chatModel: chatModel,
		maxTokens: maxTokens,
	}
}

// Complete 发送一次分析请求，返回模型原始回复。调用方负责超时控制，不做重试。
func (c *Client) Complete(ctx context.Context, userPrompt string) (string, error) {
	messages := []*schema.Message{
		{Role: schema.System, Content: prompt.SystemMessage},
		{Role: schema.User, Content: userPrompt},
	}

	var opts []model.Option
	if c.maxTokens > 0 {
		opts = append(opts, model.WithMaxTokens(c.maxTokens))
	}

	resp, err := c.chatModel.Generate(ctx, messages, opts...)
	if err != nil {
		return "", fmt.Errorf("chat model generate failed: %w", err)
	}
	if resp == nil || resp.Content == "" {
		return "", ErrEmptyReply
	}

	logger.Log.Debugf("模型回复 %d 字节", len(resp.Content))
	return resp.Content, nil
}
