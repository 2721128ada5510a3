package engine

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/planetoid/news-analyzer/pkg/config"
	"github.com/planetoid/news-analyzer/pkg/fetcher"
	"github.com/planetoid/news-analyzer/pkg/model"
	"github.com/planetoid/news-analyzer/pkg/parser"
)

const goodReply = `{"summary": "市府宣布改善公園設施", "target_audience": "市民",
	"truthfulness": 40, "importance": 90, "impact": 60,
	"drink_recommendation": {"name": "金桔檸檬", "reason": "模型理由", "category": "golden_lemon"},
	"entities": {"locations": [{"name": "台北市"}]}}`

type mockFetcher struct {
	text   string
	err    error
	block  bool
	called int
}

func (m *mockFetcher) Fetch(ctx context.Context, pageURL string) (string, error) {
	m.called++
	if m.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return m.text, m.err
}

type mockCompleter struct {
	reply   string
	err     error
	block   bool
	prompts []string
}

func (m *mockCompleter) Complete(ctx context.Context, userPrompt string) (string, error) {
	m.prompts = append(m.prompts, userPrompt)
	if m.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return m.reply, m.err
}

type mockResolver struct {
	called int
}

func (m *mockResolver) Resolve(ctx context.Context, bundle model.EntityBundle) model.EntityBundle {
	m.called++
	out := bundle.Clone()
	for i := range out.Locations {
		out.Locations[i].MapLink = "https://www.openstreetmap.org/relation/1"
	}
	return out
}

type harness struct {
	engine    *Engine
	fetcher   *mockFetcher
	completer *mockCompleter
	resolver  *mockResolver
	builds    int
}

func newHarness(f *mockFetcher, c *mockCompleter) *harness {
	h := &harness{fetcher: f, completer: c, resolver: &mockResolver{}}
	h.engine = NewEngine(f, c, h.resolver, config.Default())
	build := h.engine.build
	h.engine.build = func(articleText string) string {
		h.builds++
		return build(articleText)
	}
	return h
}

func TestRunWithURL(t *testing.T) {
	h := newHarness(&mockFetcher{text: "台北市政府今日宣布..."}, &mockCompleter{reply: goodReply})

	got, err := h.engine.Run(context.Background(), Request{URL: "https://news.example.com/a/1"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if h.fetcher.called != 1 || h.builds != 1 || h.resolver.called != 1 {
		t.Errorf("stage calls: fetch=%d build=%d resolve=%d", h.fetcher.called, h.builds, h.resolver.called)
	}
	if !strings.Contains(h.completer.prompts[0], "台北市政府今日宣布") {
		t.Error("prompt does not embed the fetched article")
	}

	rec := got.DrinkRecommendation
	if rec.Category != model.ExpiredMilk || rec.ModelCategory != model.GoldenLemon {
		t.Errorf("category override: %+v", rec)
	}
	if rec.Reason != "模型理由" {
		t.Errorf("reason = %q, want verbatim", rec.Reason)
	}
	if got.Entities.Locations[0].MapLink == "" {
		t.Error("locations were not resolved")
	}
}

func TestRunWithText(t *testing.T) {
	h := newHarness(&mockFetcher{}, &mockCompleter{reply: goodReply})

	if _, err := h.engine.Run(context.Background(), Request{Text: "  直接貼上的新聞內容  "}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if h.fetcher.called != 0 {
		t.Error("text input must not invoke the fetcher")
	}
	if !strings.Contains(h.completer.prompts[0], "直接貼上的新聞內容") {
		t.Error("prompt does not embed the supplied text")
	}
}

func TestRunFetchFailureShortCircuits(t *testing.T) {
	tests := []struct {
		name string
		f    *mockFetcher
	}{
		{"fetch error", &mockFetcher{err: &fetcher.FetchError{URL: "u", Err: errors.New("dns failure")}}},
		{"no content", &mockFetcher{err: &fetcher.FetchError{URL: "u", Err: fetcher.ErrNoContent}}},
		{"empty text", &mockFetcher{text: "  "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(tt.f, &mockCompleter{reply: goodReply})
			_, err := h.engine.Run(context.Background(), Request{URL: "https://news.example.com/a/1"})

			var pe *PipelineError
			if !errors.As(err, &pe) {
				t.Fatalf("Run() error = %v, want *PipelineError", err)
			}
			if pe.Kind != KindFetch || pe.Stage != StageFetch || pe.Hint == "" {
				t.Errorf("PipelineError = %+v", pe)
			}
			var fe *fetcher.FetchError
			if !errors.As(err, &fe) {
				t.Errorf("FetchError not preserved: %v", err)
			}
			if h.builds != 0 || len(h.completer.prompts) != 0 {
				t.Error("analysis must not start after a fetch failure")
			}
		})
	}
}

func TestRunParseError(t *testing.T) {
	h := newHarness(&mockFetcher{}, &mockCompleter{reply: "抱歉，我無法完成分析。"})

	_, err := h.engine.Run(context.Background(), Request{Text: "內容"})
	var pe *PipelineError
	if !errors.As(err, &pe) || pe.Kind != KindParse {
		t.Fatalf("Run() error = %v, want parse PipelineError", err)
	}
	var parseErr *parser.ParseError
	if !errors.As(err, &parseErr) {
		t.Errorf("ParseError not preserved: %v", err)
	}
	if h.resolver.called != 0 {
		t.Error("resolver must not run after a parse failure")
	}
}

func TestRunAnalysisTimeout(t *testing.T) {
	h := newHarness(&mockFetcher{}, &mockCompleter{block: true})
	h.engine.llmTimeout = 20 * time.Millisecond

	_, err := h.engine.Run(context.Background(), Request{Text: "內容"})
	var pe *PipelineError
	if !errors.As(err, &pe) || pe.Kind != KindTimeout || pe.Stage != StageAnalysis {
		t.Fatalf("Run() error = %v, want analysis timeout", err)
	}
	if !IsTimeout(err) {
		t.Error("IsTimeout() = false")
	}
}

func TestRunFetchTimeout(t *testing.T) {
	h := newHarness(&mockFetcher{block: true}, &mockCompleter{reply: goodReply})
	h.engine.fetchTimeout = 20 * time.Millisecond

	_, err := h.engine.Run(context.Background(), Request{URL: "https://news.example.com/slow"})
	var pe *PipelineError
	if !errors.As(err, &pe) {
		t.Fatalf("Run() error = %v, want *PipelineError", err)
	}
	if pe.Kind != KindTimeout || pe.Stage != StageFetch {
		t.Errorf("PipelineError = %+v, want fetch timeout", pe)
	}
	if pe.Hint == "" {
		t.Error("fetch timeout should carry the direct-text hint")
	}
	if !IsTimeout(err) {
		t.Error("IsTimeout() = false")
	}
	if h.builds != 0 || len(h.completer.prompts) != 0 {
		t.Error("analysis must not start after a fetch timeout")
	}
}

func TestRunAnalysisFailure(t *testing.T) {
	h := newHarness(&mockFetcher{}, &mockCompleter{err: errors.New("401 unauthorized")})

	_, err := h.engine.Run(context.Background(), Request{Text: "內容"})
	var pe *PipelineError
	if !errors.As(err, &pe) || pe.Kind != KindAnalysis {
		t.Fatalf("Run() error = %v, want analysis PipelineError", err)
	}
	if IsTimeout(err) {
		t.Error("transport failure reported as timeout")
	}
}

func TestRunInputValidation(t *testing.T) {
	tests := []struct {
		name string
		req  Request
	}{
		{"empty", Request{}},
		{"blank text", Request{Text: "   "}},
		{"both", Request{URL: "https://news.example.com", Text: "內容"}},
		{"bad scheme", Request{URL: "ftp://news.example.com/a"}},
		{"no host", Request{URL: "https:///a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(&mockFetcher{}, &mockCompleter{reply: goodReply})
			_, err := h.engine.Run(context.Background(), tt.req)
			var pe *PipelineError
			if !errors.As(err, &pe) || pe.Kind != KindInput {
				t.Fatalf("Run() error = %v, want input PipelineError", err)
			}
			if h.fetcher.called != 0 || len(h.completer.prompts) != 0 {
				t.Error("invalid input must not reach any collaborator")
			}
		})
	}
}
