package dashboard

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/nkapoor/mathex/internal/profile"
	"github.com/nkapoor/mathex/internal/questiongen"
	"github.com/nkapoor/mathex/internal/router"
	"github.com/nkapoor/mathex/internal/screen"
	"github.com/nkapoor/mathex/internal/ui/components"
	"github.com/nkapoor/mathex/internal/ui/layout"
	"github.com/nkapoor/mathex/internal/ui/theme"
)

// DashboardScreen shows lifetime stats, per-topic mastery, and the
// review schedule.
type DashboardScreen struct {
	prof *profile.UserProfile
	now  time.Time
}

var _ screen.Screen = (*DashboardScreen)(nil)
var _ screen.KeyHintProvider = (*DashboardScreen)(nil)

// New creates a new DashboardScreen.
func New(prof *profile.UserProfile) *DashboardScreen {
	return &DashboardScreen{prof: prof, now: time.Now()}
}

func (s *DashboardScreen) Init() tea.Cmd {
	return nil
}

func (s *DashboardScreen) Title() string {
	return "Dashboard"
}

func (s *DashboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (s *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "esc" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *DashboardScreen) View(width, height int) string {
	g := s.prof.Global

	var b strings.Builder
	b.WriteString("\n")

	statsLine := fmt.Sprintf(
		"Sessions: %d    Time practiced: %s    Best streak: %d    Questions: %d    Accuracy: %.1f%%",
		g.Sessions, formatDuration(g.TotalTimeSecs), g.BestStreak,
		g.QuestionsAnswered, g.OverallAccuracy())
	b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).
		Foreground(theme.Text).Render(statsLine))
	b.WriteString("\n\n")

	b.WriteString(renderMasteryTable(s.prof, width))
	b.WriteString("\n")
	b.WriteString(renderDueReviews(s.prof, s.now, width))

	return b.String()
}

// renderMasteryTable prints one row per (type, difficulty) bucket with
// attempts.
func renderMasteryTable(prof *profile.UserProfile, width int) string {
	var b strings.Builder
	b.WriteString(layout.CenterLine(width,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Mastery")))
	b.WriteString("\n")

	rows := 0
	for _, typ := range questiongen.AllTypes() {
		byDiff, ok := prof.Performance[typ]
		if !ok {
			continue
		}
		for _, diff := range questiongen.Tiers() {
			bucket, ok := byDiff[diff]
			if !ok || bucket.TotalAttempts == 0 {
				continue
			}
			rows++
			label := fmt.Sprintf("%-14s %-8s", typ.DisplayName(), diff.DisplayName())
			stats := fmt.Sprintf("  %3.0f%%  %2d tries", bucket.Accuracy(), bucket.TotalAttempts)
			if avg := bucket.AvgCorrectTimeMs(); avg > 0 {
				stats += fmt.Sprintf("  %.1fs avg", float64(avg)/1000)
			}
			line := lipgloss.NewStyle().Foreground(theme.Text).Render(label) +
				components.MasteryBar(bucket.Mastery, 20) +
				lipgloss.NewStyle().Foreground(theme.TextDim).Render(stats)
			b.WriteString(layout.CenterLine(width, line))
			b.WriteString("\n")
		}
	}
	if rows == 0 {
		b.WriteString(layout.CenterLine(width,
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
				Render("No graded practice yet.")))
		b.WriteString("\n")
	}
	return b.String()
}

// renderDueReviews lists topics whose review date has passed.
func renderDueReviews(prof *profile.UserProfile, now time.Time, width int) string {
	var b strings.Builder
	b.WriteString(layout.CenterLine(width,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Due for review")))
	b.WriteString("\n")

	due := prof.DueReviews(now)
	if len(due) == 0 {
		b.WriteString(layout.CenterLine(width,
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
				Render("Nothing due. Nice work.")))
		b.WriteString("\n")
		return b.String()
	}

	for _, d := range due {
		line := fmt.Sprintf("%s (%s)  due %s",
			d.Type.DisplayName(), d.Difficulty.DisplayName(),
			d.Due.Format("Jan 02"))
		b.WriteString(layout.CenterLine(width,
			lipgloss.NewStyle().Foreground(theme.Accent).Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}

func formatDuration(secs int) string {
	if secs < 3600 {
		return fmt.Sprintf("%dm", secs/60)
	}
	return fmt.Sprintf("%dh %dm", secs/3600, (secs%3600)/60)
}
