package study

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	frontStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(1, 3).
			Width(60).
			Align(lipgloss.Center)

	backStyle = frontStyle.
			BorderForeground(lipgloss.Color("212"))

	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)
	answerLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Render draws the current side of the current card with a position footer.
func Render(d *Deck) string {
	c := d.Current()
	pos, total := d.Position()

	var body string
	if d.Flipped() {
		body = backStyle.Render(answerLabel.Render("Answer") + "\n\n" + c.Answer)
	} else {
		body = frontStyle.Render(labelStyle.Render("Question") + "\n\n" + c.Question)
	}

	footer := footerStyle.Render(fmt.Sprintf("%d / %d  ·  %d%% viewed  ·  [n]ext [p]rev [f]lip [q]uit", pos, total, d.Progress()))
	return strings.Join([]string{body, footer}, "\n")
}
