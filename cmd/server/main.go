package main

import (
	"context"
	"flag"
	"os"

	"github.com/go-kratos/kratos/v2"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport/http"
	"github.com/joho/godotenv"

	"github.com/planetoid/news-analyzer/internal/server"
	"github.com/planetoid/news-analyzer/internal/service"
	"github.com/planetoid/news-analyzer/pkg/config"
	"github.com/planetoid/news-analyzer/pkg/engine"
	"github.com/planetoid/news-analyzer/pkg/logger"
)

// go build -ldflags "-X main.Version=x.y.z"
var (
	// Name 是服务的名称
	Name string = "news-analyzer"
	// Version 是服务的版本号
	Version string
	// flagconf 是配置文件的路径命令行参数
	flagconf string

	id, _ = os.Hostname()
)

func init() {
	flag.StringVar(&flagconf, "conf", "", "config path, eg: -conf configs/config.yaml")
}

func newApp(logger log.Logger, hs *http.Server) *kratos.App {
	return kratos.New(
		kratos.ID(id),
		kratos.Name(Name),
		kratos.Version(Version),
		kratos.Metadata(map[string]string{}),
		kratos.Logger(logger),
		kratos.Server(hs),
	)
}

func main() {
	flag.Parse()
	_ = godotenv.Load()

	klog := log.With(log.NewStdLogger(os.Stdout),
		"ts", log.DefaultTimestamp,
		"caller", log.DefaultCaller,
		"service.id", id,
		"service.name", Name,
		"service.version", Version,
	)

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
		panic(err)
	}
	if err := cfg.Validate(); err != nil {
		panic(err)
	}

	if err := logger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		log.NewHelper(klog).Errorf("Failed to init logger: %v", err)
		_ = logger.InitLogger("info", "") // 降级处理
	}

	eng, err := engine.NewFromConfig(context.Background(), cfg)
	if err != nil {
		panic(err)
	}

	svc := service.NewAnalyzeService(eng, klog)
	app := newApp(klog, server.NewHTTPServer(cfg.Server, svc, klog))

	if err := app.Run(); err != nil {
		panic(err)
	}
}
