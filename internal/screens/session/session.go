package session

import (
	"context"
	"fmt"
	"math/rand"
	"os"

	tea "charm.land/bubbletea/v2"

	"github.com/nkapoor/mathex/internal/profile"
	"github.com/nkapoor/mathex/internal/router"
	"github.com/nkapoor/mathex/internal/screen"
	"github.com/nkapoor/mathex/internal/screens/summary"
	sess "github.com/nkapoor/mathex/internal/session"
	"github.com/nkapoor/mathex/internal/store"
	"github.com/nkapoor/mathex/internal/ui/components"
	"github.com/nkapoor/mathex/internal/ui/layout"
)

// feedback is what the previous question resolved to, shown under the
// live question.
type feedback struct {
	status profile.Status
	answer string
	bonus  float64
}

// SessionScreen runs one live practice session.
type SessionScreen struct {
	st       *store.Store
	prof     *profile.UserProfile
	ctrl     *sess.Controller
	settings sess.Settings

	input       components.TextInput
	last        *feedback
	quitConfirm bool
	startErr    string
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)
var _ screen.EscHandler = (*SessionScreen)(nil)

// New creates a session screen for validated settings.
func New(st *store.Store, prof *profile.UserProfile, rng *rand.Rand, settings sess.Settings) *SessionScreen {
	return &SessionScreen{
		st:       st,
		prof:     prof,
		ctrl:     sess.NewController(prof, rng),
		settings: settings,
		input:    components.NewTextInput("answer", true, 16),
	}
}

func (s *SessionScreen) Init() tea.Cmd {
	if _, err := s.ctrl.Start(s.settings); err != nil {
		s.startErr = err.Error()
		return nil
	}
	if s.ctrl.State().RemainingSecs > 0 {
		return tickCmd()
	}
	return nil
}

func (s *SessionScreen) Title() string {
	return s.settings.Mode().DisplayName()
}

// HandlesEsc keeps the app from popping a live session; esc opens the
// quit confirmation instead.
func (s *SessionScreen) HandlesEsc() bool {
	return s.ctrl.State().Phase == sess.PhaseActive
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	if s.quitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "End session"},
			{Key: "N", Description: "Keep going"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "Ctrl+S", Description: "Skip"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		if s.ctrl.State().Phase != sess.PhaseActive {
			return s, nil
		}
		if s.ctrl.Tick() {
			return s, s.finish()
		}
		return s, tickCmd()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *SessionScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.startErr != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if s.quitConfirm {
		switch msg.String() {
		case "y", "Y":
			s.quitConfirm = false
			return s, s.finish()
		case "n", "N", "esc":
			s.quitConfirm = false
		}
		return s, nil
	}

	switch msg.String() {
	case "esc":
		s.quitConfirm = true
		return s, nil

	case "enter":
		if s.input.Value() == "" {
			return s, nil
		}
		out, err := s.ctrl.Submit(s.input.Value())
		if err != nil {
			return s, nil
		}
		return s.resolved(out)

	case "ctrl+s":
		out, err := s.ctrl.Skip()
		if err != nil {
			return s, nil
		}
		return s.resolved(out)
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *SessionScreen) resolved(out sess.Outcome) (screen.Screen, tea.Cmd) {
	s.last = &feedback{status: out.Status, answer: out.Answer, bonus: out.BonusSecs}
	s.input.Reset()
	if out.Done {
		return s, s.finish()
	}
	return s, nil
}

// finish ends the session, persists the profile, and swaps in the
// summary. A failed write is logged and swallowed: the learner still
// sees their results.
func (s *SessionScreen) finish() tea.Cmd {
	rec, err := s.ctrl.End()
	if err != nil {
		return func() tea.Msg { return router.PopScreenMsg{} }
	}
	if err := s.st.SaveProfile(context.Background(), s.prof); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not save profile: %v\n", err)
	}
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(rec)}
	}
}
