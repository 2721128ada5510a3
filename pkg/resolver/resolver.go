package resolver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/planetoid/news-analyzer/pkg/config"
	"github.com/planetoid/news-analyzer/pkg/geocode"
	"github.com/planetoid/news-analyzer/pkg/logger"
	"github.com/planetoid/news-analyzer/pkg/model"
)

// Resolver 为实体补全外部参考链接
type Resolver struct {
	geocoder geocode.Geocoder
	links    config.LinksConfig
	limit    int
	language string
	timeout  time.Duration
}

// New 创建 Resolver。geocoder 为 nil 时所有地点直接使用搜索链接。
func New(geocoder geocode.Geocoder, cfg *config.Config) *Resolver {
	return &Resolver{
		geocoder: geocoder,
		links:    cfg.Links,
		limit:    cfg.Geocoder.Limit,
		language: cfg.Geocoder.AcceptLanguage,
		timeout:  config.Seconds(cfg.Geocoder.Timeout, geocode.DefaultTimeout),
	}
}

// Resolve 返回新的实体集合：地点填充地图链接，缺少链接的资料集填充目录搜索链接，
// 其余实体原样保留。地点按顺序逐个查询，失败只降级不报错。
func (r *Resolver) Resolve(ctx context.Context, bundle model.EntityBundle) model.EntityBundle {
	out := bundle.Clone()

	for i := range out.Locations {
		out.Locations[i].MapLink = r.locate(ctx, out.Locations[i].Name)
	}
	for i := range out.Datasets {
		if out.Datasets[i].SearchLink == "" {
			out.Datasets[i].SearchLink = r.links.DatasetSearchURL + url.QueryEscape(out.Datasets[i].Name)
		}
	}
	return out
}

// locate 解析单个地点，总是返回一个可用链接
func (r *Resolver) locate(ctx context.Context, name string) string {
	fallback := r.searchLink(name)
	if r.geocoder == nil || strings.TrimSpace(name) == "" {
		return fallback
	}

	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	candidates, err := r.geocoder.Search(callCtx, &geocode.Request{
		Query:    name,
		Limit:    r.limit,
		Language: r.language,
	})
	if err != nil {
		logDegraded(name, err)
		return fallback
	}

	best, ok := Select(candidates)
	if !ok {
		logger.Log.WithField("location", name).Info("地理编码无结果，使用搜索链接")
		return fallback
	}
	if !linkable(best) {
		logger.Log.WithFields(logrus.Fields{
			"location": name,
			"kind":     best.Kind,
			"id":       best.ID,
		}).Warn("候选缺少可用的类型或 ID，使用搜索链接")
		return fallback
	}
	return r.objectLink(best)
}

// linkable 只有 relation/way/node 且带正数 ID 的要素才能生成对象链接
func linkable(c geocode.Candidate) bool {
	switch c.Kind {
	case geocode.KindRelation, geocode.KindWay, geocode.KindNode:
		return c.ID > 0
	}
	return false
}

func (r *Resolver) objectLink(c geocode.Candidate) string {
	return fmt.Sprintf("%s%s/%d", r.links.MapObjectURL, c.Kind, c.ID)
}

func (r *Resolver) searchLink(name string) string {
	return r.links.MapSearchURL + url.QueryEscape(name)
}

// Select 按优先级选取候选：区域类 relation，其次 place/boundary 类要素，最后取第一个
func Select(candidates []geocode.Candidate) (geocode.Candidate, bool) {
	if len(candidates) == 0 {
		return geocode.Candidate{}, false
	}

	for _, c := range candidates {
		if c.Kind == geocode.KindRelation && (isRegionClass(c.Class) || c.Type == "administrative") {
			return c, true
		}
	}
	for _, c := range candidates {
		switch c.Kind {
		case geocode.KindRelation, geocode.KindWay, geocode.KindNode:
			if isRegionClass(c.Class) {
				return c, true
			}
		}
	}
	return candidates[0], true
}

func isRegionClass(class string) bool {
	return class == "place" || class == "boundary"
}

func logDegraded(name string, err error) {
	entry := logger.Log.WithFields(logrus.Fields{
		"location": name,
		"error":    err,
	})

	var se *geocode.StatusError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		entry.Warn("地理编码超时，使用搜索链接")
	case errors.As(err, &se) && (se.Code == http.StatusForbidden || se.Code == http.StatusTooManyRequests):
		entry.WithField("status", se.Code).Warn("地理编码被限流或拒绝，使用搜索链接")
	default:
		entry.Warn("地理编码失败，使用搜索链接")
	}
}
