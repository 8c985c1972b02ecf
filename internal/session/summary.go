package session

import (
	"time"

	"github.com/nkapoor/mathex/internal/profile"
)

// buildSummary computes the summary for a finished session.
func buildSummary(s *State, endedAt time.Time) profile.Summary {
	sum := profile.Summary{
		Correct:      s.Correct,
		Incorrect:    s.Incorrect,
		Skipped:      s.Skipped,
		MaxStreak:    s.MaxStreak,
		DurationSecs: int(endedAt.Sub(s.StartTime).Seconds()),
	}
	if answered := s.Correct + s.Incorrect; answered > 0 {
		sum.Accuracy = float64(s.Correct) / float64(answered) * 100
	}
	sum.AvgTimeMs, sum.FastestTimeMs, sum.SlowestTimeMs = timeStats(s.Details)
	if s.Settings != nil && s.Settings.Mode() == ModeChallenge {
		sum.ChallengeScore = s.ChallengeScore
	}
	return sum
}

// timeStats computes mean, fastest, and slowest answer times across
// timed (non-skipped) questions. All zero when none were timed.
func timeStats(details []profile.QuestionDetail) (avg, fastest, slowest int64) {
	var total int64
	var n int64
	for _, d := range details {
		if d.TimeMs == nil {
			continue
		}
		t := *d.TimeMs
		total += t
		n++
		if fastest == 0 || t < fastest {
			fastest = t
		}
		if t > slowest {
			slowest = t
		}
	}
	if n > 0 {
		avg = total / n
	}
	return avg, fastest, slowest
}

// SpeedTag classifies one answer time against the session mean:
// "fast" below 75% of the mean, "slow" above 125%, "" otherwise.
func SpeedTag(timeMs, avgMs int64) string {
	if avgMs == 0 {
		return ""
	}
	t := float64(timeMs)
	a := float64(avgMs)
	switch {
	case t < a*0.75:
		return "fast"
	case t > a*1.25:
		return "slow"
	default:
		return ""
	}
}
