package server

import (
	"context"
	nethttp "net/http"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/planetoid/news-analyzer/internal/service"
	"github.com/planetoid/news-analyzer/pkg/config"
)

// NewHTTPServer 创建 HTTP 服务并注册分析接口
func NewHTTPServer(c config.ServerConfig, s *service.AnalyzeService, logger log.Logger) *http.Server {
	var opts = []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
		),
	}
	if c.Addr != "" {
		opts = append(opts, http.Address(c.Addr))
	}
	if c.Timeout != "" {
		if d, err := time.ParseDuration(c.Timeout); err == nil {
			opts = append(opts, http.Timeout(d))
		}
	}

	srv := http.NewServer(opts...)

	// 经由 kratos 路由注册，使服务级中间件生效
	r := srv.Route("/api")
	r.POST("/analyze", withMiddleware(s.Analyze))
	r.GET("/health", withMiddleware(s.Health))
	log.NewHelper(logger).Infof("http routes registered: /api/analyze /api/health")

	return srv
}

// withMiddleware 将 net/http 处理函数包装为经过中间件链的 kratos 处理函数
func withMiddleware(h nethttp.HandlerFunc) http.HandlerFunc {
	return func(ctx http.Context) error {
		next := ctx.Middleware(func(c context.Context, _ interface{}) (interface{}, error) {
			h(ctx.Response(), ctx.Request().WithContext(c))
			return nil, nil
		})
		_, err := next(ctx, nil)
		return err
	}
}
