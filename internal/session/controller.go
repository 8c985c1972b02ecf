package session

import (
	"fmt"
	"math"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/nkapoor/mathex/internal/profile"
	"github.com/nkapoor/mathex/internal/questiongen"
	"github.com/nkapoor/mathex/internal/selector"
)

// Outcome describes the result of resolving one question.
type Outcome struct {
	// Status is how the question was resolved.
	Status profile.Status

	// Answer is the canonical answer, for feedback display.
	Answer string

	// BonusSecs is the challenge score credit for this answer, 0
	// outside challenge mode.
	BonusSecs float64

	// Done is true when the session's end condition is met; no next
	// question is posed and the caller should End().
	Done bool

	// Next is the newly posed question when Done is false.
	Next *questiongen.Question
}

// Controller drives a single session through its lifecycle. It is not
// safe for concurrent use; the TUI event loop serializes access.
type Controller struct {
	state *State
	prof  *profile.UserProfile
	rng   *rand.Rand
	now   func() time.Time

	record *profile.SessionRecord
}

// NewController creates a controller in the Configuring phase,
// selecting against the given profile.
func NewController(prof *profile.UserProfile, rng *rand.Rand) *Controller {
	return &Controller{
		state: &State{Phase: PhaseConfiguring},
		prof:  prof,
		rng:   rng,
		now:   time.Now,
	}
}

// State exposes the live session state, read-only by convention.
func (c *Controller) State() *State { return c.state }

// Start validates the settings and poses the first question.
func (c *Controller) Start(settings Settings) (*questiongen.Question, error) {
	if c.state.Phase != PhaseConfiguring {
		return nil, fmt.Errorf("session already started")
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	c.state = newState(settings, c.now())
	return c.pose(), nil
}

// Submit resolves the live question against the learner's input.
func (c *Controller) Submit(raw string) (Outcome, error) {
	q := c.state.CurrentQuestion
	if c.state.Phase != PhaseActive || q == nil {
		return Outcome{}, fmt.Errorf("no active question")
	}

	status := profile.StatusIncorrect
	if questiongen.CheckAnswer(q, raw) {
		status = profile.StatusCorrect
	}
	elapsed := c.now().Sub(c.state.QuestionStartTime).Milliseconds()

	out := c.resolve(q, raw, status, &elapsed)
	return out, nil
}

// Skip resolves the live question as skipped. Skips break streaks,
// reset the ramp, and count as bucket attempts without touching the
// review schedule.
func (c *Controller) Skip() (Outcome, error) {
	q := c.state.CurrentQuestion
	if c.state.Phase != PhaseActive || q == nil {
		return Outcome{}, fmt.Errorf("no active question")
	}
	return c.resolve(q, profile.SkippedAnswer, profile.StatusSkipped, nil), nil
}

func (c *Controller) resolve(q *questiongen.Question, answer string, status profile.Status, timeMs *int64) Outcome {
	c.state.Details = append(c.state.Details, profile.QuestionDetail{
		Text:       q.Text,
		UserAnswer: answer,
		Answer:     q.Answer,
		Status:     status,
		TimeMs:     timeMs,
		Type:       q.Type,
		Difficulty: q.Difficulty,
	})

	out := Outcome{Status: status, Answer: q.Answer}
	switch status {
	case profile.StatusCorrect:
		c.state.Correct++
		c.state.Streak++
		if c.state.Streak > c.state.MaxStreak {
			c.state.MaxStreak = c.state.Streak
		}
		if c.state.Settings.Mode() == ModeChallenge && q.Difficulty != questiongen.DifficultyTargeted {
			bonus := ChallengeTimeBonus(q.Difficulty)
			c.state.ChallengeScore += bonus
			c.state.RemainingSecs += int(math.Round(bonus))
			out.BonusSecs = bonus
		}
	case profile.StatusIncorrect:
		c.state.Incorrect++
		c.state.Streak = 0
	case profile.StatusSkipped:
		c.state.Skipped++
		c.state.Streak = 0
	}
	c.state.Ramp.record(status)

	if c.done() {
		c.state.CurrentQuestion = nil
		out.Done = true
		return out
	}
	out.Next = c.pose()
	return out
}

// done reports whether the end condition is met after a resolution.
func (c *Controller) done() bool {
	if c.state.TimeExpired {
		return true
	}
	switch cfg := c.state.Settings.(type) {
	case FixedQuestions:
		return c.state.Answered() >= cfg.Count
	case Adaptive:
		return !cfg.Timed() && c.state.Answered() >= cfg.Count
	case Targeted:
		return c.state.Answered() >= cfg.Count
	}
	return false
}

// Tick advances the countdown by one second. It returns true when the
// clock has run out, at which point the caller should End. Tick is a
// no-op for count-bound sessions.
func (c *Controller) Tick() bool {
	if c.state.Phase != PhaseActive || !c.timed() {
		return false
	}
	if c.state.RemainingSecs > 0 {
		c.state.RemainingSecs--
	}
	if c.state.RemainingSecs <= 0 {
		c.state.TimeExpired = true
	}
	return c.state.TimeExpired
}

func (c *Controller) timed() bool {
	switch cfg := c.state.Settings.(type) {
	case FixedTime, Challenge:
		return true
	case Adaptive:
		return cfg.Timed()
	}
	return false
}

// End closes the session, builds its record, and folds it into the
// profile. The caller is responsible for persisting the profile.
func (c *Controller) End() (*profile.SessionRecord, error) {
	switch c.state.Phase {
	case PhaseEnded:
		return c.record, nil
	case PhaseConfiguring:
		return nil, fmt.Errorf("session never started")
	}

	now := c.now()
	c.state.Phase = PhaseEnded
	c.state.CurrentQuestion = nil

	rec := &profile.SessionRecord{
		ID:        c.state.SessionID,
		StartedAt: c.state.StartTime,
		EndedAt:   now,
		Settings:  c.state.Settings.snapshot(),
		Summary:   buildSummary(c.state, now),
		Details:   c.state.Details,
	}
	c.record = rec
	c.prof.ApplySession(rec, now)
	return rec, nil
}

// pose generates and installs the next question.
func (c *Controller) pose() *questiongen.Question {
	q := c.nextQuestion()
	c.state.CurrentQuestion = q
	c.state.QuestionStartTime = c.now()
	return q
}

// nextQuestion picks the next question per the session mode. Any
// generation failure falls back to easy multiplication so the session
// never stalls.
func (c *Controller) nextQuestion() *questiongen.Question {
	switch cfg := c.state.Settings.(type) {
	case Targeted:
		q, err := questiongen.GenerateTargeted(c.rng, cfg.Spec)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: targeted generation failed, falling back: %v\n", err)
			return questiongen.Fallback(c.rng)
		}
		return q

	case Adaptive:
		// The selector picks which skill to drill; the in-session
		// ramp decides the tier actually shown.
		pick := selector.Next(c.rng, c.prof, cfg.Types, c.now())
		return questiongen.Generate(c.rng, pick.Type, c.state.Ramp.Difficulty)

	case Challenge:
		typ := cfg.Types[c.rng.Intn(len(cfg.Types))]
		return questiongen.Generate(c.rng, typ, c.state.Ramp.Difficulty)

	case FixedQuestions:
		typ := cfg.Types[c.rng.Intn(len(cfg.Types))]
		diff := cfg.Difficulties[c.rng.Intn(len(cfg.Difficulties))]
		return questiongen.Generate(c.rng, typ, diff)

	case FixedTime:
		typ := cfg.Types[c.rng.Intn(len(cfg.Types))]
		diff := cfg.Difficulties[c.rng.Intn(len(cfg.Difficulties))]
		return questiongen.Generate(c.rng, typ, diff)
	}
	return questiongen.Fallback(c.rng)
}

func formatMillis(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}
