package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/planetoid/news-analyzer/pkg/config"
)

const maxLimit = 3

// DefaultTimeout 未配置超时时单次查询的上限
const DefaultTimeout = 10 * time.Second

// Client Nominatim API 客户端，自带每秒一次的限流
type Client struct {
	baseURL   string
	userAgent string
	email     string
	client    *http.Client
	limiter   *rate.Limiter
}

// NewClient 创建一个新的 Nominatim 客户端
func NewClient(cfg config.GeocoderConfig) *Client {
	rps := cfg.RPS
	if rps <= 0 || rps > 1 {
		rps = 1
	}
	return &Client{
		baseURL:   strings.TrimSuffix(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		email:     cfg.Email,
		client: &http.Client{
			Timeout: config.Seconds(cfg.Timeout, DefaultTimeout),
		},
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// Ensure Client implements Geocoder
var _ Geocoder = (*Client)(nil)

// nominatimResult format=json 的单条结果
type nominatimResult struct {
	OsmType     string `json:"osm_type"`
	OsmID       int64  `json:"osm_id"`
	Class       string `json:"class"`
	Type        string `json:"type"`
	DisplayName string `json:"display_name"`
}

// Search 执行地理编码查询
func (c *Client) Search(ctx context.Context, req *Request) ([]Candidate, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("limiter wait error: %w", err)
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/search"

	limit := req.Limit
	if limit <= 0 || limit > maxLimit {
		limit = maxLimit
	}

	q := u.Query()
	q.Set("q", req.Query)
	q.Set("format", "json")
	q.Set("limit", strconv.Itoa(limit))
	q.Set("addressdetails", "1")
	if req.Language != "" {
		q.Set("accept-language", req.Language)
	}
	if c.email != "" {
		q.Set("email", c.email)
	}
	u.RawQuery = q.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	// Nominatim 使用政策要求可识别的 User-Agent
	httpReq.Header.Set("User-Agent", c.userAgent)
	if req.Language != "" {
		httpReq.Header.Set("Accept-Language", req.Language)
	}

	res, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
		return nil, &StatusError{Code: res.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var results []nominatimResult
	if err := json.NewDecoder(res.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("decode response failed: %w", err)
	}

	candidates := make([]Candidate, 0, len(results))
	for _, r := range results {
		candidates = append(candidates, Candidate{
			Kind:        r.OsmType,
			ID:          r.OsmID,
			Class:       r.Class,
			Type:        r.Type,
			DisplayName: r.DisplayName,
		})
	}
	return candidates, nil
}
