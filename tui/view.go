package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/TheTrio/EspressoPlayground/playground"
)

// SourceURL is where the language itself lives.
const SourceURL = "https://github.com/TheTrio/Espresso"

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C08457"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	headerStyle = lipgloss.NewStyle().Bold(true)
	cursorStyle = lipgloss.NewStyle().Reverse(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	wrapStyle   = lipgloss.NewStyle()

	paneStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	focusedStyle = paneStyle.BorderForeground(lipgloss.Color("#C08457"))
)

func (m Model) styleFor(p pane) lipgloss.Style {
	if m.focus == p {
		return focusedStyle
	}
	return paneStyle
}

// View implements tea.Model.
func (m Model) View() string {
	left := lipgloss.JoinVertical(lipgloss.Left,
		m.styleFor(paneEditor).Render(m.editor.View()),
		m.styleFor(paneOutput).Render(m.output.View()),
	)

	rightWidth := m.width - lipgloss.Width(left) - 2
	if rightWidth < 10 {
		rightWidth = 10
	}
	listHeight := lipgloss.Height(left) - m.detail.Height - 4
	if listHeight < 1 {
		listHeight = 1
	}
	right := lipgloss.JoinVertical(lipgloss.Left,
		m.styleFor(paneLessons).
			Width(rightWidth).
			Height(listHeight).
			Render(strings.Join(m.lessonLines(listHeight), "\n")),
		paneStyle.Width(rightWidth).Render(m.detail.View()),
	)

	status := mutedStyle.Render(m.status)
	if m.status == "error" {
		status = errorStyle.Render(m.status)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Espresso Playground")+"  "+status,
		lipgloss.JoinHorizontal(lipgloss.Top, left, right),
		mutedStyle.Render(m.help()),
		mutedStyle.Render(installLine()),
	)
}

func installLine() string {
	return "Try it on your machine: " + playground.InstallHint + " • " + SourceURL
}
