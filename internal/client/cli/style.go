package cli

import "github.com/charmbracelet/lipgloss"

var (
	noticeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	headingStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func notice(s string) string  { return noticeStyle.Render(s) }
func errText(s string) string { return errorStyle.Render(s) }
func success(s string) string { return successStyle.Render(s) }
func heading(s string) string { return headingStyle.Render(s) }
func dim(s string) string     { return dimStyle.Render(s) }
