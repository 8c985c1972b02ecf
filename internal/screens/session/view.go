package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/nkapoor/mathex/internal/profile"
	sess "github.com/nkapoor/mathex/internal/session"
	"github.com/nkapoor/mathex/internal/ui/theme"
)

func (s *SessionScreen) View(width, height int) string {
	if s.startErr != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render("\n\nCould not start session: " + s.startErr + "\n\nPress any key to go back.")
	}

	if s.quitConfirm {
		return renderQuitConfirm(width, height)
	}

	state := s.ctrl.State()
	q := state.CurrentQuestion
	if q == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(s.renderStatusLine(width))
	b.WriteString("\n\n\n")

	b.WriteString(theme.Question.Width(width).Render(q.Text))
	b.WriteString("\n\n")

	input := "  " + s.input.View()
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, input))
	b.WriteString("\n\n")

	if s.last != nil {
		b.WriteString(renderFeedback(s.last, width))
	}

	return b.String()
}

// renderStatusLine shows progress, streak, and mode-specific extras.
func (s *SessionScreen) renderStatusLine(width int) string {
	state := s.ctrl.State()

	var parts []string
	parts = append(parts, s.renderProgress())

	if streak := state.Streak; streak > 1 {
		parts = append(parts, lipgloss.NewStyle().Foreground(theme.Accent).
			Render(fmt.Sprintf("streak %d", streak)))
	}

	switch s.settings.Mode() {
	case sess.ModeAdaptive, sess.ModeChallenge:
		d := string(state.Ramp.Difficulty)
		parts = append(parts, lipgloss.NewStyle().
			Foreground(theme.DifficultyColor(d)).
			Render(d))
	}
	if s.settings.Mode() == sess.ModeChallenge {
		parts = append(parts, lipgloss.NewStyle().Foreground(theme.Secondary).
			Render(fmt.Sprintf("score %.1f", state.ChallengeScore)))
	}

	line := strings.Join(parts, lipgloss.NewStyle().Foreground(theme.TextDim).Render("   •   "))
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, line)
}

// renderProgress shows n/target for count-bound sessions and the
// remaining clock for time-bound ones.
func (s *SessionScreen) renderProgress() string {
	state := s.ctrl.State()
	style := lipgloss.NewStyle().Foreground(theme.Text)

	if target := countTarget(s.settings); target > 0 {
		return style.Render(fmt.Sprintf("question %d of %d", state.Answered()+1, target))
	}

	secs := state.RemainingSecs
	clock := fmt.Sprintf("%d:%02d", secs/60, secs%60)
	if secs <= 10 {
		style = lipgloss.NewStyle().Foreground(theme.Error).Bold(true)
	}
	return style.Render(clock + " left")
}

// countTarget returns the question target for count-bound settings, 0
// for time-bound ones.
func countTarget(settings sess.Settings) int {
	switch cfg := settings.(type) {
	case sess.FixedQuestions:
		return cfg.Count
	case sess.Targeted:
		return cfg.Count
	case sess.Adaptive:
		if !cfg.Timed() {
			return cfg.Count
		}
	}
	return 0
}

func renderFeedback(f *feedback, width int) string {
	var line string
	switch f.status {
	case profile.StatusCorrect:
		line = theme.Correct.Render("✓ Correct!")
		if f.bonus > 0 {
			line += lipgloss.NewStyle().Foreground(theme.Secondary).
				Render(fmt.Sprintf("  +%.1fs", f.bonus))
		}
	case profile.StatusIncorrect:
		line = theme.Incorrect.Render("✗ Incorrect") +
			lipgloss.NewStyle().Foreground(theme.TextDim).
				Render("  answer: "+f.answer)
	case profile.StatusSkipped:
		line = theme.SkippedStyle.Render("→ Skipped") +
			lipgloss.NewStyle().Foreground(theme.TextDim).
				Render("  answer: "+f.answer)
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, line)
}

func renderQuitConfirm(width, height int) string {
	box := theme.Card.Render(
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
			Render("End this session?") + "\n\n" +
			lipgloss.NewStyle().Foreground(theme.TextDim).
				Render("Progress so far will be scored and saved.") + "\n\n" +
			lipgloss.NewStyle().Foreground(theme.Text).
				Render("[Y] end session    [N] keep going"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
