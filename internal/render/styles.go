package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/planetoid/news-analyzer/pkg/model"
)

// Color palette
const (
	colorPrimary = "#7D56F4"
	colorInfo    = "#626262"
	colorBorder  = "#874BFD"
	colorLink    = "#3C8DBC"
	colorError   = "#FF0000"
)

// 饮料分类配色
var categoryColors = map[model.Category]string{
	model.GoldenLemon: "#F4C430",
	model.HoneyGreen:  "#8DB600",
	model.PlainWater:  "#87CEEB",
	model.ExpiredMilk: "#B5651D",
}

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorPrimary)).
			MarginTop(1)

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorInfo))

	LinkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorLink)).
			Underline(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorError))

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colorBorder)).
			Padding(0, 2)

	ScoreStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color(colorInfo)).
			Padding(0, 1).
			Align(lipgloss.Center)
)

func drinkStyle(c model.Category) lipgloss.Style {
	color, ok := categoryColors[c]
	if !ok {
		color = colorBorder
	}
	return BoxStyle.BorderForeground(lipgloss.Color(color))
}
