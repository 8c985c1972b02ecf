package summary

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

// SummaryScreen displays a finished session's results.
type SummaryScreen struct {
	rec    *profile.SessionRecord
	scroll int
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(rec *profile.SessionRecord) *SummaryScreen {
	return &SummaryScreen{rec: rec}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Enter", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.scroll > 0 {
				s.scroll--
			}
		case "down", "j":
			if s.scroll < len(s.rec.Details)-1 {
				s.scroll++
			}
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	rec := s.rec
	if rec == nil {
		return ""
	}
	sum := rec.Summary

	var b strings.Builder

	b.WriteString(theme.Title.Width(width).Render("Session complete!"))
	b.WriteString("\n\n")

	durationStr := fmt.Sprintf("%d:%02d", sum.DurationSecs/60, sum.DurationSecs%60)
	b.WriteString(theme.Subtitle.Width(width).Render(
		fmt.Sprintf("%s  •  %s", sess.Mode(rec.Settings.Mode).DisplayName(), durationStr)))
	b.WriteString("\n\n")

	statsLine := fmt.Sprintf("Correct: %d    Incorrect: %d    Skipped: %d    Accuracy: %.1f%%",
		sum.Correct, sum.Incorrect, sum.Skipped, sum.Accuracy)
	b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).
		Foreground(theme.Text).Render(statsLine))
	b.WriteString("\n")

	extras := fmt.Sprintf("Best streak: %d", sum.MaxStreak)
	if sum.AvgTimeMs > 0 {
		extras += fmt.Sprintf("    Avg: %.1fs    Fastest: %.1fs    Slowest: %.1fs",
			float64(sum.AvgTimeMs)/1000, float64(sum.FastestTimeMs)/1000, float64(sum.SlowestTimeMs)/1000)
	}
	if sum.ChallengeScore > 0 {
		extras += fmt.Sprintf("    Score: %.1f", sum.ChallengeScore)
	}
	b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).
		Foreground(theme.TextDim).Render(extras))
	b.WriteString("\n\n")

	if len(rec.Details) == 0 {
		return b.String()
	}

	divider := lipgloss.NewStyle().Foreground(theme.Border).
		Render(strings.Repeat("─", min(width-8, 60)))
	b.WriteString(layout.CenterLine(width, lipgloss.NewStyle().Foreground(theme.TextDim).Render("Questions")))
	b.WriteString("\n")
	b.WriteString(layout.CenterLine(width, divider))
	b.WriteString("\n\n")

	// Leave room for the header block above.
	visible := height - 12
	if visible < 3 {
		visible = 3
	}
	start := s.scroll
	if start > len(rec.Details)-1 {
		start = len(rec.Details) - 1
	}
	end := start + visible
	if end > len(rec.Details) {
		end = len(rec.Details)
	}

	for _, d := range rec.Details[start:end] {
		b.WriteString(layout.CenterLine(width, renderDetail(d, sum.AvgTimeMs)))
		b.WriteString("\n")
	}
	if end < len(rec.Details) {
		b.WriteString(layout.CenterLine(width,
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
				Render(fmt.Sprintf("… %d more", len(rec.Details)-end))))
	}

	return b.String()
}

func renderDetail(d profile.QuestionDetail, avgMs int64) string {
	var icon string
	style := lipgloss.NewStyle().Foreground(theme.Text)
	switch d.Status {
	case profile.StatusCorrect:
		icon = theme.Correct.Render("✓")
	case profile.StatusIncorrect:
		icon = theme.Incorrect.Render("✗")
	case profile.StatusSkipped:
		icon = theme.SkippedStyle.Render("→")
		style = style.Foreground(theme.TextDim)
	}

	line := fmt.Sprintf("%s %-28s you: %-10s ans: %-8s", icon, d.Text, d.UserAnswer, d.Answer)

	if d.TimeMs != nil {
		line += fmt.Sprintf("  %.1fs", float64(*d.TimeMs)/1000)
		if tag := sess.SpeedTag(*d.TimeMs, avgMs); tag != "" {
			color := theme.Success
			if tag == "slow" {
				color = theme.Accent
			}
			line += " " + lipgloss.NewStyle().Foreground(color).Render(tag)
		}
	}

	return style.Render(line)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
