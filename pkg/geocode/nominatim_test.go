package geocode

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/planetoid/news-analyzer/pkg/config"
)

func newTestClient(baseURL string, rps float64) *Client {
	return NewClient(config.GeocoderConfig{
		BaseURL:   baseURL,
		UserAgent: "news-analyzer-test/1.0",
		Email:     "ops@example.com",
		Timeout:   5,
		RPS:       rps,
	})
}

func TestClientSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("path = %q, want /search", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("q") != "台北市" || q.Get("format") != "json" || q.Get("limit") != "3" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		if q.Get("accept-language") != "zh-TW" || q.Get("email") != "ops@example.com" || q.Get("addressdetails") != "1" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		if r.Header.Get("User-Agent") != "news-analyzer-test/1.0" {
			t.Errorf("User-Agent = %q", r.Header.Get("User-Agent"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"osm_type": "relation", "osm_id": 1293250, "class": "boundary", "type": "administrative", "display_name": "臺北市, 臺灣"},
			{"osm_type": "node", "osm_id": 25225493, "class": "place", "type": "city", "display_name": "臺北市"}
		]`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, 1)
	got, err := c.Search(context.Background(), &Request{Query: "台北市", Limit: 5, Language: "zh-TW"})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len(candidates) = %d, want 2", len(got))
	}
	want := Candidate{Kind: KindRelation, ID: 1293250, Class: "boundary", Type: "administrative", DisplayName: "臺北市, 臺灣"}
	if got[0] != want {
		t.Errorf("candidates[0] = %+v, want %+v", got[0], want)
	}
	if got[1].Kind != KindNode || got[1].ID != 25225493 {
		t.Errorf("candidates[1] = %+v", got[1])
	}
}

func TestClientSearchStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, 1)
	_, err := c.Search(context.Background(), &Request{Query: "高雄"})
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("Search() error = %v, want *StatusError", err)
	}
	if se.Code != http.StatusTooManyRequests {
		t.Errorf("StatusError.Code = %d", se.Code)
	}
}

func TestClientSearchEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	got, err := newTestClient(srv.URL, 1).Search(context.Background(), &Request{Query: "不存在的地方"})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("candidates = %+v, want none", got)
	}
}

func TestClientRateLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, 1)
	ctx := context.Background()
	if _, err := c.Search(ctx, &Request{Query: "a"}); err != nil {
		t.Fatalf("first Search() error = %v", err)
	}

	// 第二次调用需等待令牌，超时上下文应直接失败
	short, cancel := context.WithTimeout(ctx, 100*time.Millisecond)
	defer cancel()
	if _, err := c.Search(short, &Request{Query: "b"}); err == nil {
		t.Error("second Search() within one second should fail on the limiter")
	}
}

func TestNewClientDefaultTimeout(t *testing.T) {
	for _, timeout := range []int{0, -1} {
		c := NewClient(config.GeocoderConfig{BaseURL: "https://nominatim.example.com", Timeout: timeout})
		if c.client.Timeout != DefaultTimeout {
			t.Errorf("timeout %d: client.Timeout = %v, want %v", timeout, c.client.Timeout, DefaultTimeout)
		}
	}

	c := NewClient(config.GeocoderConfig{BaseURL: "https://nominatim.example.com", Timeout: 3})
	if c.client.Timeout != 3*time.Second {
		t.Errorf("client.Timeout = %v, want 3s", c.client.Timeout)
	}
}
