package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/storage"
)

// historyPanel shows the player's recent runs next to the board.
type historyPanel struct {
	table table.Model
	runs  []storage.Run
	best  int
}

func newHistoryPanel(height int) historyPanel {
	columns := []table.Column{
		{Title: "#", Width: 3},
		{Title: "Score", Width: 7},
		{Title: "Played", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(false),
		table.WithHeight(tableHeight(height)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = lipgloss.NewStyle()
	t.SetStyles(s)

	return historyPanel{table: t}
}

// tableHeight leaves room for the panel border, title and best score.
func tableHeight(height int) int {
	return max(height-7, 3)
}

func (p *historyPanel) resize(height int) {
	p.table.SetHeight(tableHeight(height))
}

func (p *historyPanel) setRuns(runs []storage.Run) {
	p.runs = runs
	p.best = 0
	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		p.best = max(p.best, r.Score)
		rows[i] = table.Row{
			strconv.Itoa(i + 1),
			strconv.Itoa(r.Score),
			r.PlayedAt.Local().Format("Jan 02 15:04"),
		}
	}
	p.table.SetRows(rows)
	p.table.GotoTop()
}

// View renders the panel for the given player.
func (p historyPanel) View(player string) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Recent runs: %s", player)))
	b.WriteString("\n")

	if len(p.runs) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(1, 0)
		b.WriteString(emptyStyle.Render("No runs yet.\nPress Enter to play!"))
	} else {
		b.WriteString(p.table.View())
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("245")).
			Render(fmt.Sprintf("Best of last %d: %d", len(p.runs), p.best)))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Width(historyPanelWidth - 2).
		Render(b.String())
}
