package engine

import (
	"context"
	"errors"
	"fmt"
)

// Kind 流水线失败类别
type Kind string

const (
	KindInput    Kind = "input"
	KindFetch    Kind = "fetch"
	KindAnalysis Kind = "analysis"
	KindParse    Kind = "parse"
	KindTimeout  Kind = "timeout"
)

// 流水线阶段
const (
	StageInput    = "input"
	StageFetch    = "fetch"
	StageAnalysis = "analysis"
	StageParse    = "parse"
)

// HintUseText 抓取失败时给用户的建议
const HintUseText = "無法自動抓取此網址的文章內容，請改用「直接貼上文章內容」的方式進行分析。"

// PipelineError 一次运行的终止原因
type PipelineError struct {
	Kind  Kind
	Stage string
	Err   error
	Hint  string
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s 阶段失败 (%s): %v", e.Stage, e.Kind, e.Err)
}

func (e *PipelineError) Unwrap() error { return e.Err }

// IsTimeout 判断错误是否由外部调用超时导致
func IsTimeout(err error) bool {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Kind == KindTimeout
	}
	return errors.Is(err, context.DeadlineExceeded)
}

// stageError 将阶段错误归类；callCtx 已超时时一律视为超时
func stageError(callCtx context.Context, stage string, kind Kind, err error) *PipelineError {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(callCtx.Err(), context.DeadlineExceeded) {
		kind = KindTimeout
	}
	return &PipelineError{Kind: kind, Stage: stage, Err: err}
}
