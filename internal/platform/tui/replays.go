package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/gridsnake/internal/storage"
)

// replayIDWidth is the length of the ID prefix shown in listings; any
// unique prefix is accepted by the replay commands.
const replayIDWidth = 8

// ReplayTable renders stored replays as a static table, newest first.
func ReplayTable(replays []storage.ReplaySummary, now time.Time) string {
	if len(replays) == 0 {
		return "No replays recorded yet."
	}

	columns := []table.Column{
		{Title: "ID", Width: replayIDWidth},
		{Title: "Game", Width: 12},
		{Title: "Length", Width: 6},
		{Title: "Ticks", Width: 7},
		{Title: "End", Width: 14},
		{Title: "Played", Width: 16},
	}

	rows := make([]table.Row, len(replays))
	for i, r := range replays {
		id := r.ID
		if len(id) > replayIDWidth {
			id = id[:replayIDWidth]
		}
		rows[i] = table.Row{
			id,
			r.GameID,
			fmt.Sprintf("%d", r.Length),
			humanize.Comma(r.Ticks),
			r.EndReason,
			humanize.RelTime(r.CreatedAt(), now, "ago", "from now"),
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(len(rows)+2),
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = lipgloss.NewStyle()
	t.SetStyles(s)

	return t.View()
}
