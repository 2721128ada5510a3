package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// PathEnv 覆盖默认配置文件路径
	PathEnv     = "NEWS_ANALYZER_CONFIG"
	DefaultPath = "configs/config.yaml"

	llmAPIKeyEnv  = "LLM_API_KEY"
	llmBaseURLEnv = "LLM_BASE_URL"
	llmModelEnv   = "LLM_MODEL"
)

// 页面加载方式
const (
	LoaderBrowser = "browser"
	LoaderHTTP    = "http"
)

// Config 项目配置结构体
type Config struct {
	LLM      LLMConfig      `yaml:"llm"`
	Fetcher  FetcherConfig  `yaml:"fetcher"`
	Geocoder GeocoderConfig `yaml:"geocoder"`
	Links    LinksConfig    `yaml:"links"`
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
}

// LLMConfig 生成式文本服务配置，Model 原样透传
type LLMConfig struct {
	BaseURL   string `yaml:"base_url"`
	APIKey    string `yaml:"api_key"`
	Model     string `yaml:"model"`
	MaxTokens int    `yaml:"max_tokens"`
	Timeout   int    `yaml:"timeout"` // 秒
}

// FetcherConfig 正文抓取配置
type FetcherConfig struct {
	Loader              string   `yaml:"loader"` // browser or http
	Timeout             int      `yaml:"timeout"`
	SettleMillis        int      `yaml:"settle_millis"`
	UserAgent           string   `yaml:"user_agent"`
	ChromePath          string   `yaml:"chrome_path"` // 为空时自动查找
	MinLength           int      `yaml:"min_length"`
	Selectors           []string `yaml:"selectors"`
	ReadabilityFallback bool     `yaml:"readability_fallback"`
}

// GeocoderConfig 地理编码服务配置
type GeocoderConfig struct {
	BaseURL        string  `yaml:"base_url"`
	UserAgent      string  `yaml:"user_agent"`
	Email          string  `yaml:"email"`
	AcceptLanguage string  `yaml:"accept_language"`
	Limit          int     `yaml:"limit"`
	Timeout        int     `yaml:"timeout"`
	RPS            float64 `yaml:"rps"`
}

// LinksConfig 外部参考链接模板
type LinksConfig struct {
	MapObjectURL     string `yaml:"map_object_url"`     // 后接 {kind}/{id}
	MapSearchURL     string `yaml:"map_search_url"`     // 后接转义后的地名
	DatasetSearchURL string `yaml:"dataset_search_url"` // 后接转义后的关键字
}

// ServerConfig HTTP 服务配置
type ServerConfig struct {
	Addr    string `yaml:"addr"`
	Timeout string `yaml:"timeout"`
}

// LogConfig 日志相关配置
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default 返回带默认值的配置
func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			MaxTokens: 2000,
			Timeout:   15,
		},
		Fetcher: FetcherConfig{
			Loader:       LoaderBrowser,
			Timeout:      15,
			SettleMillis: 500,
			UserAgent:    "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			MinLength:    200,
		},
		Geocoder: GeocoderConfig{
			BaseURL:        "https://nominatim.openstreetmap.org",
			UserAgent:      "news-analyzer/1.0",
			AcceptLanguage: "zh-TW",
			Limit:          3,
			Timeout:        10,
			RPS:            1,
		},
		Links: LinksConfig{
			MapObjectURL:     "https://www.openstreetmap.org/",
			MapSearchURL:     "https://www.openstreetmap.org/search?query=",
			DatasetSearchURL: "https://data.gov.tw/datasets/search?p=1&size=10&s=",
		},
		Server: ServerConfig{
			Addr:    "0.0.0.0:8000",
			Timeout: "90s",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// LoadConfig 从指定路径加载配置，文件中未出现的字段保留默认值
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.ApplyEnvOverrides()

	return cfg, nil
}

// Load 按环境变量或默认路径加载配置；默认路径不存在时仅使用默认值与环境变量
func Load() (*Config, error) {
	path := os.Getenv(PathEnv)
	if path == "" {
		path = DefaultPath
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			cfg := Default()
			cfg.ApplyEnvOverrides()
			return cfg, nil
		}
	}
	return LoadConfig(path)
}

// ApplyEnvOverrides 使用环境变量覆盖 LLM 凭据
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv(llmAPIKeyEnv); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv(llmBaseURLEnv); v != "" {
		c.LLM.BaseURL = v
	}
	if v := os.Getenv(llmModelEnv); v != "" {
		c.LLM.Model = v
	}
}

// Validate 校验运行所必需的配置项
func (c *Config) Validate() error {
	if c.LLM.Model == "" {
		return fmt.Errorf("配置错误: 未设置 llm.model")
	}
	if c.LLM.APIKey == "" {
		return fmt.Errorf("配置错误: 未设置 llm.api_key")
	}
	switch c.Fetcher.Loader {
	case LoaderBrowser, LoaderHTTP:
	default:
		return fmt.Errorf("配置错误: 未知的 fetcher.loader %q", c.Fetcher.Loader)
	}
	if c.Geocoder.Limit < 1 || c.Geocoder.Limit > 3 {
		return fmt.Errorf("配置错误: geocoder.limit 必须在 1-3 之间")
	}
	return nil
}

// Seconds 将以秒为单位的配置转换为 time.Duration，非正数时使用 fallback
func Seconds(n int, fallback time.Duration) time.Duration {
	if n <= 0 {
		return fallback
	}
	return time.Duration(n) * time.Second
}
