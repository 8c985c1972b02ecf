package session

import (
	"time"

	tea "charm.land/bubbletea/v2"
)

// timerTickMsg is sent every second to advance the countdown.
type timerTickMsg time.Time

// tickCmd schedules the next countdown tick.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}
