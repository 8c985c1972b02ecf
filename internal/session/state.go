package session

import (
	"time"

	"github.com/nkapoor/mathex/internal/profile"
	"github.com/nkapoor/mathex/internal/questiongen"
)

// Phase represents the current phase of the session.
type Phase int

const (
	PhaseConfiguring Phase = iota // Settings not yet accepted
	PhaseActive                   // Serving questions
	PhaseEnded                    // Record built, terminal
)

// State tracks the runtime state of an active session. The Controller
// owns all mutation; screens read it through the Controller's
// accessors.
type State struct {
	// Phase is the current session phase.
	Phase Phase

	// Settings is the validated configuration the session runs with.
	Settings Settings

	// SessionID is the timestamp-derived ID for this session.
	SessionID string

	// StartTime is when the session began.
	StartTime time.Time

	// CurrentQuestion is the active question being displayed.
	CurrentQuestion *questiongen.Question

	// QuestionStartTime tracks when the current question was first displayed.
	QuestionStartTime time.Time

	// Correct, Incorrect, and Skipped are the running outcome tallies.
	Correct   int
	Incorrect int
	Skipped   int

	// Streak is the current consecutive-correct run; MaxStreak its peak.
	Streak    int
	MaxStreak int

	// Details accumulates one entry per resolved question, in order.
	Details []profile.QuestionDetail

	// RemainingSecs counts down for time-bound modes, 0 otherwise.
	RemainingSecs int

	// Ramp tracks the adaptive/challenge difficulty ramp.
	Ramp RampState

	// ChallengeScore accumulates challenge time bonuses.
	ChallengeScore float64

	// TimeExpired indicates the countdown has run out.
	TimeExpired bool
}

// Answered returns how many questions have been resolved so far.
func (s *State) Answered() int {
	return s.Correct + s.Incorrect + s.Skipped
}

// newState builds the initial state for validated settings.
func newState(settings Settings, now time.Time) *State {
	s := &State{
		Phase:     PhaseActive,
		Settings:  settings,
		SessionID: "session_" + formatMillis(now),
		StartTime: now,
		Ramp:      newRampState(settings),
	}
	switch cfg := settings.(type) {
	case FixedTime:
		s.RemainingSecs = cfg.TimeSecs
	case Challenge:
		s.RemainingSecs = cfg.TimeSecs
	case Adaptive:
		if cfg.Timed() {
			s.RemainingSecs = cfg.TimeSecs
		}
	}
	return s
}
