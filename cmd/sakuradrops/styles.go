package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/phanxgames/drops"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffb7c5")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff8fab")).Padding(0, 1)
	panelStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#664455")).
			Padding(0, 1)
)

func statLine(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value)
}

// summary renders the scene parameters a command runs with.
func summary(command string, cfg drops.Config) string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		headerStyle.Render("sakura drops · "+command),
		statLine("drops", fmt.Sprint(cfg.Num)),
		statLine("canvas", fmt.Sprintf("%dx%d", cfg.Canvas.Width, cfg.Canvas.Height)),
		statLine("seed", seedText(cfg.Seed)),
		statLine("passes", fmt.Sprint(cfg.CirclePacker.Passes)),
	)
	return panelStyle.Render(body)
}

func seedText(s uint64) string {
	if s == 0 {
		return "clock"
	}
	return fmt.Sprint(s)
}
