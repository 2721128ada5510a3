package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/planetoid/news-analyzer/pkg/engine"
	"github.com/planetoid/news-analyzer/pkg/model"
)

// Result 将分析结果渲染为终端文本
func Result(r *model.AnalysisResult) string {
	var sections []string

	sections = append(sections, drinkCard(r.DrinkRecommendation))

	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top,
		scoreCard("真實度", r.Truthfulness),
		scoreCard("重要性", r.Importance),
		scoreCard("影響力", r.Impact),
	))

	sections = append(sections, TitleStyle.Render("重點摘要"), r.Summary)
	if r.TargetAudience != "" {
		sections = append(sections, InfoStyle.Render("目標讀者："+r.TargetAudience))
	}

	if entities := renderEntities(r.Entities); entities != "" {
		sections = append(sections, TitleStyle.Render("關鍵實體"), entities)
	}

	return strings.Join(sections, "\n") + "\n"
}

// Error 渲染流水线错误，抓取失败时附带建议
func Error(err error) string {
	msg := ErrorStyle.Render("分析失敗：" + err.Error())

	var pe *engine.PipelineError
	if errors.As(err, &pe) && pe.Hint != "" {
		msg += "\n" + InfoStyle.Render(pe.Hint)
	}
	return msg + "\n"
}

// drinkCard 标题始终使用最终分类的饮料名称，模型给出的名称作为副标题
func drinkCard(rec model.DrinkRecommendation) string {
	lines := []string{
		TitleStyle.MarginTop(0).Render(fmt.Sprintf("推薦飲料：%s", rec.Category.Label())),
		InfoStyle.Render(rec.Category.Tagline()),
	}
	if rec.Name != "" && rec.Name != rec.Category.Label() {
		lines = append(lines, "模型推薦："+rec.Name)
	}
	if rec.Reason != "" {
		lines = append(lines, "", rec.Reason)
	}
	return drinkStyle(rec.Category).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func scoreCard(label string, score int) string {
	return ScoreStyle.Render(fmt.Sprintf("%s\n%d", label, score))
}

func renderEntities(e model.EntityBundle) string {
	var sb strings.Builder

	section := func(title string, lines []string) {
		if len(lines) == 0 {
			return
		}
		sb.WriteString(InfoStyle.Render(title))
		sb.WriteByte('\n')
		for _, l := range lines {
			sb.WriteString("  • ")
			sb.WriteString(l)
			sb.WriteByte('\n')
		}
	}

	var lines []string
	for _, p := range e.People {
		lines = append(lines, withLink(join(p.Name, p.Title), p.WikiLink))
	}
	section("人物", lines)

	lines = nil
	for _, n := range e.Numbers {
		lines = append(lines, withLink(join(n.Value, n.Context), n.DataLink))
	}
	section("數據", lines)

	lines = nil
	for _, l := range e.Locations {
		lines = append(lines, withLink(l.Name, l.MapLink))
	}
	section("地點", lines)

	lines = nil
	for _, o := range e.Organizations {
		lines = append(lines, withLink(o.Name, o.OfficialLink))
	}
	section("機構", lines)

	lines = nil
	for _, d := range e.Dates {
		lines = append(lines, join(d.Date, d.Event))
	}
	section("時間", lines)

	lines = nil
	for _, d := range e.Datasets {
		lines = append(lines, withLink(join(d.Name, d.Description), d.SearchLink))
	}
	section("相關資料集", lines)

	return strings.TrimRight(sb.String(), "\n")
}

func join(primary, secondary string) string {
	if secondary == "" {
		return primary
	}
	return primary + "（" + secondary + "）"
}

// withLink 没有链接时只显示文字
func withLink(text, link string) string {
	if link == "" {
		return text
	}
	return text + " " + LinkStyle.Render(link)
}
