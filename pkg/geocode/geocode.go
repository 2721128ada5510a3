package geocode

import (
	"context"
	"fmt"
)

// OSM 要素类型
const (
	KindRelation = "relation"
	KindWay      = "way"
	KindNode     = "node"
)

// Geocoder 地理编码服务接口
type Geocoder interface {
	Search(ctx context.Context, req *Request) ([]Candidate, error)
}

// Request 地理编码请求
type Request struct {
	Query    string
	Limit    int    // 最多 3 个候选
	Language string // 本地化名称提示，例如 zh-TW
}

// Candidate 单个候选结果，顺序与服务返回一致
type Candidate struct {
	Kind        string
	ID          int64
	Class       string
	Type        string
	DisplayName string
}

// StatusError 服务返回非 200 状态
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("nominatim api error (status %d): %s", e.Code, e.Body)
}
