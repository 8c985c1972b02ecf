package history

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/nkapoor/mathex/internal/profile"
	"github.com/nkapoor/mathex/internal/router"
	"github.com/nkapoor/mathex/internal/screen"
	sess "github.com/nkapoor/mathex/internal/session"
	"github.com/nkapoor/mathex/internal/ui/layout"
	"github.com/nkapoor/mathex/internal/ui/theme"
)

// HistoryScreen displays past sessions, newest first, with expandable
// per-question detail.
type HistoryScreen struct {
	sessions []profile.SessionRecord
	selected int
	expanded map[int]bool
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen over the profile's history.
func New(prof *profile.UserProfile) *HistoryScreen {
	return &HistoryScreen{
		sessions: prof.History,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return nil
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.sessions)-1 {
			s.selected++
		}
	case "enter":
		s.expanded[s.selected] = !s.expanded[s.selected]
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if len(s.sessions) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No sessions yet. Start practicing!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, rec := range s.sessions {
		sum := rec.Summary
		dateStr := rec.StartedAt.Format("Jan 02, 2006 15:04")
		durationStr := fmt.Sprintf("%d:%02d", sum.DurationSecs/60, sum.DurationSecs%60)
		modeStr := sess.Mode(rec.Settings.Mode).DisplayName()

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %-18s %s  %d questions  %.0f%% accuracy",
			prefix, dateStr, modeStr, durationStr,
			len(rec.Details), sum.Accuracy)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(layout.CenterLine(width, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(renderSessionDetail(rec, width))
		}
	}

	return b.String()
}

// renderSessionDetail shows the expanded per-question rows for one
// history entry.
func renderSessionDetail(rec profile.SessionRecord, width int) string {
	var b strings.Builder
	for _, d := range rec.Details {
		var icon string
		switch d.Status {
		case profile.StatusCorrect:
			icon = theme.Correct.Render("✓")
		case profile.StatusIncorrect:
			icon = theme.Incorrect.Render("✗")
		case profile.StatusSkipped:
			icon = theme.SkippedStyle.Render("→")
		}
		line := fmt.Sprintf("    %s %-28s you: %-10s ans: %s", icon, d.Text, d.UserAnswer, d.Answer)
		b.WriteString(layout.CenterLine(width,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(line)))
		b.WriteString("\n")
	}
	if len(rec.Details) == 0 {
		b.WriteString(layout.CenterLine(width,
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
				Render("    No questions recorded")))
		b.WriteString("\n")
	}
	return b.String()
}
