package session

import (
	"math"

	"github.com/nkapoor/mathex/internal/profile"
	"github.com/nkapoor/mathex/internal/questiongen"
)

const (
	// DecreaseThreshold is the consecutive-incorrect count that steps
	// adaptive difficulty down one tier.
	DecreaseThreshold = 2

	// ChallengeIncreaseThreshold is the consecutive-correct count that
	// ratchets challenge difficulty up one tier.
	ChallengeIncreaseThreshold = 3

	// DefaultIncreaseThreshold is the consecutive-correct count for
	// time-bound adaptive sessions.
	DefaultIncreaseThreshold = 5
)

// IncreaseThresholdFor returns the consecutive-correct count needed to
// step up for a count-bound adaptive session: 20% of the target,
// clamped to [2, 5]. Short sessions would otherwise never ramp.
func IncreaseThresholdFor(questionCount int) int {
	t := int(math.Ceil(float64(questionCount) * 0.2))
	if t < 2 {
		t = 2
	}
	if t > 5 {
		t = 5
	}
	return t
}

// ChallengeTimeBonus returns the seconds of score credited for a
// correct answer at the given tier during a challenge.
func ChallengeTimeBonus(d questiongen.Difficulty) float64 {
	switch d {
	case questiongen.DifficultyMedium:
		return 1
	case questiongen.DifficultyHard:
		return 1.5
	case questiongen.DifficultyExpert:
		return 2
	default:
		return 0.5
	}
}

// RampState tracks the difficulty ramp during adaptive and challenge
// sessions.
type RampState struct {
	// Difficulty is the tier the next generated question uses.
	Difficulty questiongen.Difficulty

	// ConsecutiveCorrect and ConsecutiveIncorrect are the current runs
	// feeding the ramp. Each resets the other.
	ConsecutiveCorrect   int
	ConsecutiveIncorrect int

	// increaseThreshold is the run length that steps difficulty up.
	increaseThreshold int

	// ratchet disables downward steps (challenge mode).
	ratchet bool
}

func newRampState(settings Settings) RampState {
	r := RampState{Difficulty: questiongen.DifficultyEasy}
	switch cfg := settings.(type) {
	case Adaptive:
		if cfg.Timed() {
			r.increaseThreshold = DefaultIncreaseThreshold
		} else {
			r.increaseThreshold = IncreaseThresholdFor(cfg.Count)
		}
	case Challenge:
		r.increaseThreshold = ChallengeIncreaseThreshold
		r.ratchet = true
	}
	return r
}

// record feeds one question outcome into the ramp and adjusts
// difficulty. Skips reset both runs without moving the tier.
func (r *RampState) record(status profile.Status) {
	if r.increaseThreshold == 0 {
		return // fixed modes carry no ramp
	}
	switch status {
	case profile.StatusCorrect:
		r.ConsecutiveCorrect++
		r.ConsecutiveIncorrect = 0
		if r.ConsecutiveCorrect >= r.increaseThreshold {
			r.stepUp()
			r.ConsecutiveCorrect = 0
		}
	case profile.StatusIncorrect:
		r.ConsecutiveCorrect = 0
		if r.ratchet {
			return
		}
		r.ConsecutiveIncorrect++
		if r.ConsecutiveIncorrect >= DecreaseThreshold {
			r.stepDown()
			r.ConsecutiveIncorrect = 0
		}
	default: // skipped
		r.ConsecutiveCorrect = 0
		r.ConsecutiveIncorrect = 0
	}
}

// stepUp raises the tier one step, capped at expert.
func (r *RampState) stepUp() {
	idx := questiongen.TierIndex(r.Difficulty)
	tiers := questiongen.Tiers()
	if idx >= 0 && idx < len(tiers)-1 {
		r.Difficulty = tiers[idx+1]
	}
}

// stepDown lowers the tier one step, floored at easy.
func (r *RampState) stepDown() {
	idx := questiongen.TierIndex(r.Difficulty)
	if idx > 0 {
		r.Difficulty = questiongen.Tiers()[idx-1]
	}
}
