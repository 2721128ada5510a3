package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/planetoid/news-analyzer/pkg/logger"
	"github.com/planetoid/news-analyzer/pkg/model"
)

// ParseError 模型回复中没有合法的 JSON，或 JSON 未通过结构与范围校验
type ParseError struct {
	Field string // 为空表示整体结构错误
	Rule  string
	Err   error
}

func (e *ParseError) Error() string {
	msg := "無法解析分析結果"
	if e.Field != "" {
		msg += ": " + e.Field
	}
	msg += ": " + e.Rule
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error { return e.Err }

type rawResult struct {
	Summary             *string         `json:"summary"`
	TargetAudience      *text           `json:"target_audience"`
	Truthfulness        json.RawMessage `json:"truthfulness"`
	Importance          json.RawMessage `json:"importance"`
	Impact              json.RawMessage `json:"impact"`
	DrinkRecommendation *rawDrink       `json:"drink_recommendation"`
	Entities            json.RawMessage `json:"entities"`
}

type rawDrink struct {
	Name     text    `json:"name"`
	Reason   text    `json:"reason"`
	Category *string `json:"category"`
}

// ExtractJSON 取回复中第一个 '{' 到最后一个 '}' 之间的内容
func ExtractJSON(reply string) (string, bool) {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start < 0 || end < start {
		return "", false
	}
	return reply[start : end+1], true
}

// Parse 解析并校验模型回复，任何缺失或越界都返回 *ParseError
func Parse(reply string) (*model.AnalysisResult, error) {
	block, ok := ExtractJSON(reply)
	if !ok {
		return nil, &ParseError{Rule: "回覆中沒有 JSON 物件"}
	}

	var raw rawResult
	if err := json.Unmarshal([]byte(block), &raw); err != nil {
		return nil, &ParseError{Rule: "JSON 格式錯誤", Err: err}
	}

	if raw.Summary == nil || strings.TrimSpace(*raw.Summary) == "" {
		return nil, &ParseError{Field: "summary", Rule: "缺少必要欄位"}
	}

	truthfulness, err := score("truthfulness", raw.Truthfulness)
	if err != nil {
		return nil, err
	}
	importance, err := score("importance", raw.Importance)
	if err != nil {
		return nil, err
	}
	impact, err := score("impact", raw.Impact)
	if err != nil {
		return nil, err
	}

	if raw.DrinkRecommendation == nil {
		return nil, &ParseError{Field: "drink_recommendation", Rule: "缺少必要欄位"}
	}
	if raw.DrinkRecommendation.Category == nil {
		return nil, &ParseError{Field: "drink_recommendation.category", Rule: "缺少必要欄位"}
	}
	category, ok := model.ParseCategory(strings.TrimSpace(*raw.DrinkRecommendation.Category))
	if !ok {
		return nil, &ParseError{
			Field: "drink_recommendation.category",
			Rule:  fmt.Sprintf("未知的分類 %q", *raw.DrinkRecommendation.Category),
		}
	}

	entities, err := parseEntities(raw.Entities)
	if err != nil {
		return nil, err
	}

	result := &model.AnalysisResult{
		Summary:      strings.TrimSpace(*raw.Summary),
		Truthfulness: truthfulness,
		Importance:   importance,
		Impact:       impact,
		DrinkRecommendation: model.DrinkRecommendation{
			Name:     raw.DrinkRecommendation.Name.String(),
			Reason:   raw.DrinkRecommendation.Reason.String(),
			Category: category,
		},
		Entities: entities,
	}
	if raw.TargetAudience != nil {
		result.TargetAudience = raw.TargetAudience.String()
	}
	return result, nil
}

// score 校验分数：必须存在、为 JSON 数字、为整数且在 [0,100] 内，不做截断
func score(field string, raw json.RawMessage) (int, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, &ParseError{Field: field, Rule: "缺少必要欄位"}
	}
	if raw[0] == '"' {
		return 0, &ParseError{Field: field, Rule: "必須是數字", Err: fmt.Errorf("got string %s", raw)}
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, &ParseError{Field: field, Rule: "必須是數字", Err: err}
	}
	f, err := n.Float64()
	if err != nil {
		return 0, &ParseError{Field: field, Rule: "必須是數字", Err: err}
	}
	if f != math.Trunc(f) {
		return 0, &ParseError{Field: field, Rule: fmt.Sprintf("必須是整數 (得到 %s)", n.String())}
	}
	if f < 0 || f > 100 {
		return 0, &ParseError{Field: field, Rule: fmt.Sprintf("必須介於 0 到 100 (得到 %s)", n.String())}
	}
	return int(f), nil
}

func logDropped(kind string, reason string, raw json.RawMessage) {
	logger.Log.Warnf("丢弃实体 [%s]: %s: %s", kind, reason, string(raw))
}
