package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/planetoid/news-analyzer/internal/render"
	"github.com/planetoid/news-analyzer/pkg/config"
	"github.com/planetoid/news-analyzer/pkg/engine"
	"github.com/planetoid/news-analyzer/pkg/logger"
)

var (
	flagconf string
	flagURL  string
	flagText string
	flagFile string
	flagJSON bool
)

func init() {
	flag.StringVar(&flagconf, "conf", "", "config path, eg: -conf configs/config.yaml")
	flag.StringVar(&flagURL, "url", "", "新聞網址")
	flag.StringVar(&flagText, "text", "", "直接貼上的文章內容")
	flag.StringVar(&flagFile, "file", "", "從檔案讀取文章內容")
	flag.BoolVar(&flagJSON, "json", false, "以 JSON 輸出分析結果")
}

func main() {
	flag.Parse()

	// .env 不存在时忽略
	_ = godotenv.Load()

	// 1. 加载配置
	var (
		cfg *config.Config
		err error
	)
	if flagconf != "" {
		cfg, err = config.LoadConfig(flagconf)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		log.Fatalf("无法加载配置文件: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	// 2. 初始化日志
	if err := logger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		log.Fatalf("无法初始化日志: %v", err)
	}

	req, err := buildRequest()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}

	// 3. 初始化引擎并执行
	ctx := context.Background()
	eng, err := engine.NewFromConfig(ctx, cfg)
	if err != nil {
		logger.Log.Fatalf("引擎初始化失败: %v", err)
	}

	result, err := eng.Run(ctx, req)
	if err != nil {
		fmt.Fprint(os.Stderr, render.Error(err))
		os.Exit(1)
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(result); err != nil {
			logger.Log.Fatalf("输出结果失败: %v", err)
		}
		return
	}
	fmt.Print(render.Result(result))
}

// buildRequest 由命令行参数构造请求，-text 与 -file 互斥
func buildRequest() (engine.Request, error) {
	text := flagText
	if flagFile != "" {
		if text != "" {
			return engine.Request{}, fmt.Errorf("-text 與 -file 只能擇一")
		}
		data, err := os.ReadFile(flagFile)
		if err != nil {
			return engine.Request{}, fmt.Errorf("讀取檔案失敗: %w", err)
		}
		text = string(data)
	}
	return engine.Request{URL: flagURL, Text: text}, nil
}
