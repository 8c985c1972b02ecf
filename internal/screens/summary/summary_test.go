package summary

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/nkapoor/mathex/internal/profile"
)

func testRecord() *profile.SessionRecord {
	start := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	t1 := int64(2400)
	t2 := int64(5100)
	return &profile.SessionRecord{
		ID:        "session_1",
		StartedAt: start,
		EndedAt:   start.Add(90 * time.Second),
		Settings:  profile.SettingsSnapshot{Mode: "fixedQuestions", QuestionCount: 3},
		Summary: profile.Summary{
			Correct:       2,
			Incorrect:     0,
			Skipped:       1,
			Accuracy:      100,
			MaxStreak:     2,
			DurationSecs:  90,
			AvgTimeMs:     3750,
			FastestTimeMs: 2400,
			SlowestTimeMs: 5100,
		},
		Details: []profile.QuestionDetail{
			{Text: "7 × 8", UserAnswer: "56", Answer: "56", Status: profile.StatusCorrect, TimeMs: &t1},
			{Text: "12 × 9", UserAnswer: "108", Answer: "108", Status: profile.StatusCorrect, TimeMs: &t2},
			{Text: "13 × 7", UserAnswer: "Skipped", Answer: "91", Status: profile.StatusSkipped},
		},
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testRecord())
	if s.Title() != "Session Summary" {
		t.Errorf("Title = %q, want %q", s.Title(), "Session Summary")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New(testRecord())
	view := s.View(80, 24)
	if view == "" {
		t.Error("expected non-empty summary view")
	}
}

func TestSummaryScreen_Navigation_Enter(t *testing.T) {
	s := New(testRecord())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Error("expected a command on Enter (pop)")
	}
}

func TestSummaryScreen_Navigation_Esc(t *testing.T) {
	s := New(testRecord())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Error("expected a command on Esc (pop)")
	}
}

func TestSummaryScreen_Scroll(t *testing.T) {
	s := New(testRecord())
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.scroll != 1 {
		t.Errorf("scroll = %d, want 1", s.scroll)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if s.scroll != 0 {
		t.Errorf("scroll = %d, want 0", s.scroll)
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	s := New(testRecord())
	hints := s.KeyHints()
	if len(hints) != 2 {
		t.Errorf("KeyHints length = %d, want 2", len(hints))
	}
}
