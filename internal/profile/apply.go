package profile

import (
	"time"

	"github.com/nkapoor/mathex/internal/questiongen"
)

// ApplySession folds a finished session into the profile: global stats,
// bounded history, per-pair performance buckets, and the review
// schedule. Targeted questions stay in history but never reach the
// lifetime question count, the buckets, or the schedule.
func (p *UserProfile) ApplySession(rec *SessionRecord, now time.Time) {
	p.LastSeenAt = now

	// Global stats.
	p.Global.Sessions++
	p.Global.TotalTimeSecs += rec.Summary.DurationSecs
	if rec.Summary.MaxStreak > p.Global.BestStreak {
		p.Global.BestStreak = rec.Summary.MaxStreak
	}
	p.Global.TotalCorrect += rec.Summary.Correct
	p.Global.TotalIncorrect += rec.Summary.Incorrect
	p.Global.TotalSkipped += rec.Summary.Skipped
	for _, d := range rec.Details {
		if d.Difficulty != questiongen.DifficultyTargeted {
			p.Global.QuestionsAnswered++
		}
		if d.TimeMs != nil {
			p.Global.TotalAnswerTimeMs += *d.TimeMs
		}
	}

	// History, newest first, bounded.
	p.History = append([]SessionRecord{*rec}, p.History...)
	if len(p.History) > MaxHistory {
		p.History = p.History[:MaxHistory]
	}

	// Performance buckets. Every non-targeted detail is an attempt,
	// skips included, so skipping dilutes mastery.
	touched := make(map[questiongen.Type]map[questiongen.Difficulty]bool)
	for _, d := range rec.Details {
		if d.Difficulty == questiongen.DifficultyTargeted {
			continue
		}
		b := p.Bucket(d.Type, d.Difficulty)
		b.TotalAttempts++
		switch d.Status {
		case StatusCorrect:
			b.Correct++
			if d.TimeMs != nil {
				b.TotalCorrectTimeMs += *d.TimeMs
			}
		case StatusIncorrect:
			b.Incorrect++
			if d.TimeMs != nil {
				b.TotalIncorrectTimeMs += *d.TimeMs
			}
			b.ErrorLog = append(b.ErrorLog, ErrorEntry{
				Text:       d.Text,
				UserAnswer: d.UserAnswer,
				Answer:     d.Answer,
				At:         now,
			})
			if len(b.ErrorLog) > MaxErrorLog {
				b.ErrorLog = b.ErrorLog[len(b.ErrorLog)-MaxErrorLog:]
			}
		case StatusSkipped:
			b.Skipped++
		}
		b.Mastery = float64(b.Correct) / float64(b.TotalAttempts)

		// Skips do not touch the review schedule.
		if d.Status == StatusSkipped {
			continue
		}
		if touched[d.Type] == nil {
			touched[d.Type] = make(map[questiongen.Difficulty]bool)
		}
		touched[d.Type][d.Difficulty] = true
	}

	// Review schedule for every pair touched this session.
	for typ, diffs := range touched {
		for diff := range diffs {
			b := p.Bucket(typ, diff)
			days := ReviewIntervalDays(b.Mastery)
			if p.ReviewSchedule[typ] == nil {
				p.ReviewSchedule[typ] = make(map[questiongen.Difficulty]time.Time)
			}
			p.ReviewSchedule[typ][diff] = now.AddDate(0, 0, days)
		}
	}
}

// ReviewIntervalDays maps a mastery ratio to the next review interval.
func ReviewIntervalDays(mastery float64) int {
	switch {
	case mastery < 0.4:
		return 1
	case mastery < 0.7:
		return 3
	case mastery < 0.9:
		return 7
	case mastery < 1.0:
		return 14
	default:
		return 30
	}
}

// DuePair is one (type, difficulty) pair whose review date has passed.
type DuePair struct {
	Type       questiongen.Type
	Difficulty questiongen.Difficulty
	Due        time.Time
}

// DueReviews returns every scheduled pair whose due time is at or
// before now, in deterministic type-then-tier order.
func (p *UserProfile) DueReviews(now time.Time) []DuePair {
	var due []DuePair
	for _, typ := range questiongen.AllTypes() {
		byDiff, ok := p.ReviewSchedule[typ]
		if !ok {
			continue
		}
		for _, diff := range questiongen.Tiers() {
			at, ok := byDiff[diff]
			if !ok {
				continue
			}
			if !at.After(now) {
				due = append(due, DuePair{Type: typ, Difficulty: diff, Due: at})
			}
		}
	}
	return due
}
