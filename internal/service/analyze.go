package service

import (
	"context"
	"encoding/json"
	"errors"
	nethttp "net/http"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/planetoid/news-analyzer/pkg/engine"
	"github.com/planetoid/news-analyzer/pkg/model"
)

const maxBodyBytes = 1 << 20

// Analyzer 分析流水线
type Analyzer interface {
	Run(ctx context.Context, req engine.Request) (*model.AnalysisResult, error)
}

// AnalyzeService 分析接口的 HTTP 处理
type AnalyzeService struct {
	analyzer Analyzer
	log      *log.Helper
}

func NewAnalyzeService(analyzer Analyzer, logger log.Logger) *AnalyzeService {
	return &AnalyzeService{
		analyzer: analyzer,
		log:      log.NewHelper(logger),
	}
}

// AnalyzeRequest 请求体，url 与 text 二选一
type AnalyzeRequest struct {
	URL  string `json:"url"`
	Text string `json:"text"`
}

// ErrorReply 错误响应体
type ErrorReply struct {
	Kind    string `json:"kind"`
	Stage   string `json:"stage"`
	Message string `json:"message"`
	Hint    string `json:"hint,omitempty"`
}

// Analyze POST /api/analyze
func (s *AnalyzeService) Analyze(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodPost {
		w.Header().Set("Allow", nethttp.MethodPost)
		writeJSON(w, nethttp.StatusMethodNotAllowed, ErrorReply{
			Kind:    string(engine.KindInput),
			Stage:   engine.StageInput,
			Message: "method not allowed",
		})
		return
	}

	var req AnalyzeRequest
	dec := json.NewDecoder(nethttp.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, nethttp.StatusBadRequest, ErrorReply{
			Kind:    string(engine.KindInput),
			Stage:   engine.StageInput,
			Message: "請求格式錯誤: " + err.Error(),
		})
		return
	}

	result, err := s.analyzer.Run(r.Context(), engine.Request{URL: req.URL, Text: req.Text})
	if err != nil {
		status, reply := errorReply(err)
		if status >= nethttp.StatusInternalServerError {
			s.log.Errorf("analyze failed: %v", err)
		} else {
			s.log.Warnf("analyze rejected: %v", err)
		}
		writeJSON(w, status, reply)
		return
	}

	writeJSON(w, nethttp.StatusOK, result)
}

// Health GET /api/health
func (s *AnalyzeService) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"})
}

// errorReply 将流水线错误映射为 HTTP 状态码与响应体
func errorReply(err error) (int, ErrorReply) {
	var pe *engine.PipelineError
	if !errors.As(err, &pe) {
		return nethttp.StatusInternalServerError, ErrorReply{Kind: "internal", Message: err.Error()}
	}

	reply := ErrorReply{
		Kind:    string(pe.Kind),
		Stage:   pe.Stage,
		Message: pe.Err.Error(),
		Hint:    pe.Hint,
	}
	switch pe.Kind {
	case engine.KindInput:
		return nethttp.StatusBadRequest, reply
	case engine.KindFetch:
		return nethttp.StatusUnprocessableEntity, reply
	case engine.KindTimeout:
		return nethttp.StatusGatewayTimeout, reply
	default:
		return nethttp.StatusBadGateway, reply
	}
}

func writeJSON(w nethttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
