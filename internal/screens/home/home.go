package home

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/nkapoor/mathex/internal/profile"
	"github.com/nkapoor/mathex/internal/router"
	"github.com/nkapoor/mathex/internal/screen"
	"github.com/nkapoor/mathex/internal/screens/dashboard"
	"github.com/nkapoor/mathex/internal/screens/history"
	"github.com/nkapoor/mathex/internal/screens/setup"
	"github.com/nkapoor/mathex/internal/session"
	"github.com/nkapoor/mathex/internal/store"
	"github.com/nkapoor/mathex/internal/ui/components"
	"github.com/nkapoor/mathex/internal/ui/theme"
)

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	menu       components.Menu
	reviewsDue int
	sessions   int
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(st *store.Store, prof *profile.UserProfile, rng *rand.Rand) *HomeScreen {
	practiceModes := []struct {
		mode session.Mode
		hint string
	}{
		{session.ModeFixedQuestions, "a set number of questions"},
		{session.ModeFixedTime, "race a fixed clock"},
		{session.ModeAdaptive, "let your history pick the questions"},
		{session.ModeChallenge, "correct answers buy time"},
		{session.ModeTargeted, "drill chosen tables or ranges"},
	}

	items := make([]components.MenuItem, 0, len(practiceModes)+3)
	for _, pm := range practiceModes {
		mode := pm.mode
		items = append(items, components.MenuItem{
			Label: mode.DisplayName(),
			Hint:  pm.hint,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: setup.New(st, prof, rng, mode)}
				}
			},
		})
	}
	items = append(items,
		components.MenuItem{
			Label: "Dashboard",
			Hint:  "progress and review schedule",
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: dashboard.New(prof)}
				}
			},
		},
		components.MenuItem{
			Label: "History",
			Hint:  "past sessions",
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: history.New(prof)}
				}
			},
		},
		components.MenuItem{
			Label:  "Exit",
			Action: func() tea.Cmd { return tea.Quit },
		},
	)

	return &HomeScreen{
		menu:       components.NewMenu(items),
		reviewsDue: len(prof.DueReviews(time.Now())),
		sessions:   prof.Global.Sessions,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render("M A T H E X"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render("mental arithmetic trainer"))
	b.WriteString("\n\n")

	status := fmt.Sprintf("%d sessions so far", h.sessions)
	if h.sessions == 0 {
		status = "first session — start with Fixed Questions"
	}
	if h.reviewsDue > 0 {
		status += lipgloss.NewStyle().Foreground(theme.Accent).
			Render(fmt.Sprintf("   •  %d topics due for review", h.reviewsDue))
	}
	b.WriteString(theme.Subtitle.Width(width).Render(status))
	b.WriteString("\n\n")

	menu := h.menu.View()
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, menu))

	return b.String()
}

func (h *HomeScreen) Title() string {
	return "Home"
}
