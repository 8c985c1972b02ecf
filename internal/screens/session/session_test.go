package session

import (
	"math/rand"
	"path/filepath"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/nkapoor/mathex/internal/profile"
	"github.com/nkapoor/mathex/internal/questiongen"
	"github.com/nkapoor/mathex/internal/screen"
	sess "github.com/nkapoor/mathex/internal/session"
	"github.com/nkapoor/mathex/internal/store"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testSettings() sess.Settings {
	return sess.FixedQuestions{
		Types:        []questiongen.Type{questiongen.TypeMultiplication},
		Difficulties: []questiongen.Difficulty{questiongen.DifficultyEasy},
		Count:        2,
	}
}

func testScreen(t *testing.T) *SessionScreen {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "mathex.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	prof := profile.New(time.Now())
	rng := rand.New(rand.NewSource(42))
	s := New(st, prof, rng, testSettings())
	s.Init()
	return s
}

func TestSessionScreen_Title(t *testing.T) {
	s := testScreen(t)
	if s.Title() != "Fixed Questions" {
		t.Errorf("Title = %q, want %q", s.Title(), "Fixed Questions")
	}
}

func TestSessionScreen_PosesQuestion(t *testing.T) {
	s := testScreen(t)
	q := s.ctrl.State().CurrentQuestion
	if q == nil {
		t.Fatal("expected a live question after Init")
	}
	view := s.View(80, 24)
	if view == "" {
		t.Error("expected non-empty session view")
	}
}

func TestSessionScreen_HandlesEscWhileActive(t *testing.T) {
	s := testScreen(t)
	if !s.HandlesEsc() {
		t.Error("expected HandlesEsc while session is active")
	}
}

func TestSessionScreen_QuitConfirm(t *testing.T) {
	s := testScreen(t)

	var scr screen.Screen = s
	scr, _ = scr.Update(specialKey(tea.KeyEscape))
	ss := scr.(*SessionScreen)
	if !ss.quitConfirm {
		t.Error("expected quit confirmation dialog")
	}

	scr, _ = ss.Update(keyPress('n'))
	ss = scr.(*SessionScreen)
	if ss.quitConfirm {
		t.Error("expected quit confirmation to be dismissed")
	}
}

func TestSessionScreen_QuitConfirm_Yes(t *testing.T) {
	s := testScreen(t)

	var scr screen.Screen = s
	scr, _ = scr.Update(specialKey(tea.KeyEscape))
	_, cmd := scr.Update(keyPress('y'))
	if cmd == nil {
		t.Error("expected a command after quit confirmation")
	}
	if s.ctrl.State().Phase != sess.PhaseEnded {
		t.Errorf("Phase = %v, want %v", s.ctrl.State().Phase, sess.PhaseEnded)
	}
}

func TestSessionScreen_AnswerSubmit(t *testing.T) {
	s := testScreen(t)
	q := s.ctrl.State().CurrentQuestion

	s.input.Model.SetValue(q.Answer)
	var scr screen.Screen = s
	scr, _ = scr.Update(specialKey(tea.KeyEnter))
	ss := scr.(*SessionScreen)

	if ss.last == nil {
		t.Fatal("expected feedback after submit")
	}
	if ss.last.status != profile.StatusCorrect {
		t.Errorf("status = %v, want %v", ss.last.status, profile.StatusCorrect)
	}
	if ss.input.Value() != "" {
		t.Error("expected input to be cleared after submit")
	}
}

func TestSessionScreen_Skip(t *testing.T) {
	s := testScreen(t)

	var scr screen.Screen = s
	scr, _ = scr.Update(tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl})
	ss := scr.(*SessionScreen)

	if ss.last == nil {
		t.Fatal("expected feedback after skip")
	}
	if ss.last.status != profile.StatusSkipped {
		t.Errorf("status = %v, want %v", ss.last.status, profile.StatusSkipped)
	}
}

func TestSessionScreen_FinishAfterTarget(t *testing.T) {
	s := testScreen(t)

	var scr screen.Screen = s
	for i := 0; i < 2; i++ {
		q := s.ctrl.State().CurrentQuestion
		if q == nil {
			t.Fatal("expected a live question")
		}
		s.input.Model.SetValue(q.Answer)
		scr, _ = scr.Update(specialKey(tea.KeyEnter))
	}

	if s.ctrl.State().Phase != sess.PhaseEnded {
		t.Errorf("Phase = %v, want %v after reaching the question target", s.ctrl.State().Phase, sess.PhaseEnded)
	}
	if s.prof.Global.Sessions != 1 {
		t.Errorf("Sessions = %d, want 1", s.prof.Global.Sessions)
	}
}

func TestSessionScreen_KeyHints(t *testing.T) {
	s := testScreen(t)
	hints := s.KeyHints()
	if len(hints) == 0 {
		t.Error("expected non-empty key hints")
	}
}
