package profile

import (
	"time"

	"github.com/google/uuid"

	"github.com/nkapoor/mathex/internal/questiongen"
)

// SchemaVersion is the persisted document version. Loading a document
// with a different major version discards it.
const SchemaVersion = "3.0.0"

const (
	// MaxHistory bounds the retained session history.
	MaxHistory = 100

	// MaxErrorLog bounds the per-bucket error log.
	MaxErrorLog = 20
)

// Status classifies the outcome of a single question.
type Status string

const (
	StatusCorrect   Status = "correct"
	StatusIncorrect Status = "incorrect"
	StatusSkipped   Status = "skipped"
)

// SkippedAnswer is the recorded user answer for skipped questions.
const SkippedAnswer = "Skipped"

// QuestionDetail records one answered or skipped question within a
// session. TimeMs is nil for skipped questions.
type QuestionDetail struct {
	Text       string                 `json:"question"`
	UserAnswer string                 `json:"userAnswer"`
	Answer     string                 `json:"correctAnswer"`
	Status     Status                 `json:"status"`
	TimeMs     *int64                 `json:"timeMs"`
	Type       questiongen.Type       `json:"type"`
	Difficulty questiongen.Difficulty `json:"difficulty"`
}

// SettingsSnapshot is the flat record of the settings a session ran
// with, kept alongside the session for history display.
type SettingsSnapshot struct {
	Mode          string   `json:"mode"`
	Types         []string `json:"types,omitempty"`
	Difficulties  []string `json:"difficulties,omitempty"`
	QuestionCount int      `json:"questionCount,omitempty"`
	TimeLimitSecs int      `json:"timeLimitSecs,omitempty"`
	TargetKind    string   `json:"targetKind,omitempty"`
	Tables        []int    `json:"tables,omitempty"`
	RangeMin      int      `json:"rangeMin,omitempty"`
	RangeMax      int      `json:"rangeMax,omitempty"`
}

// Summary holds the computed results of a finished session.
type Summary struct {
	Correct        int     `json:"correct"`
	Incorrect      int     `json:"incorrect"`
	Skipped        int     `json:"skipped"`
	Accuracy       float64 `json:"accuracy"`
	MaxStreak      int     `json:"maxStreak"`
	DurationSecs   int     `json:"durationSecs"`
	AvgTimeMs      int64   `json:"avgTimeMs"`
	FastestTimeMs  int64   `json:"fastestTimeMs"`
	SlowestTimeMs  int64   `json:"slowestTimeMs"`
	ChallengeScore float64 `json:"challengeScore,omitempty"`
}

// SessionRecord is one completed session as stored in history.
type SessionRecord struct {
	ID        string           `json:"id"`
	StartedAt time.Time        `json:"startedAt"`
	EndedAt   time.Time        `json:"endedAt"`
	Settings  SettingsSnapshot `json:"settings"`
	Summary   Summary          `json:"summary"`
	Details   []QuestionDetail `json:"details"`
}

// ErrorEntry is one recorded mistake in a performance bucket.
type ErrorEntry struct {
	Text       string    `json:"question"`
	UserAnswer string    `json:"userAnswer"`
	Answer     string    `json:"correctAnswer"`
	At         time.Time `json:"at"`
}

// PerformanceBucket accumulates lifetime results for one
// (type, difficulty) pair. Skips count as attempts, so they dilute
// mastery.
type PerformanceBucket struct {
	Correct              int          `json:"correct"`
	Incorrect            int          `json:"incorrect"`
	Skipped              int          `json:"skipped"`
	TotalAttempts        int          `json:"totalAttempts"`
	TotalCorrectTimeMs   int64        `json:"totalTimeCorrect"`
	TotalIncorrectTimeMs int64        `json:"totalTimeIncorrect"`
	Mastery              float64      `json:"mastery"`
	ErrorLog             []ErrorEntry `json:"errorLog,omitempty"`
}

// AvgCorrectTimeMs returns the mean answer time across correct answers,
// or 0 when none are recorded.
func (b *PerformanceBucket) AvgCorrectTimeMs() int64 {
	if b.Correct == 0 {
		return 0
	}
	return b.TotalCorrectTimeMs / int64(b.Correct)
}

// Accuracy returns correct/(correct+incorrect) as a percentage, or 0
// when nothing has been answered.
func (b *PerformanceBucket) Accuracy() float64 {
	answered := b.Correct + b.Incorrect
	if answered == 0 {
		return 0
	}
	return float64(b.Correct) / float64(answered) * 100
}

// GlobalStats accumulates lifetime totals across all sessions.
type GlobalStats struct {
	Sessions          int   `json:"sessions"`
	TotalTimeSecs     int   `json:"totalTimeSecs"`
	BestStreak        int   `json:"bestStreak"`
	QuestionsAnswered int   `json:"questionsAnswered"`
	TotalCorrect      int   `json:"totalCorrect"`
	TotalIncorrect    int   `json:"totalIncorrect"`
	TotalSkipped      int   `json:"totalSkipped"`
	TotalAnswerTimeMs int64 `json:"totalAnswerTimeMs"`
}

// OverallAccuracy returns the lifetime accuracy percentage.
func (g *GlobalStats) OverallAccuracy() float64 {
	answered := g.TotalCorrect + g.TotalIncorrect
	if answered == 0 {
		return 0
	}
	return float64(g.TotalCorrect) / float64(answered) * 100
}

// UserProfile is the single persisted learner aggregate. All updates go
// through ApplySession; the rest of the program treats it as read-only.
type UserProfile struct {
	ProfileID  string    `json:"profileId"`
	CreatedAt  time.Time `json:"createdAt"`
	LastSeenAt time.Time `json:"lastSeenAt"`

	Global  GlobalStats     `json:"globalStats"`
	History []SessionRecord `json:"history,omitempty"`

	// Performance is keyed by type then difficulty. Targeted results
	// never land here.
	Performance map[questiongen.Type]map[questiongen.Difficulty]*PerformanceBucket `json:"performance,omitempty"`

	// ReviewSchedule maps (type, difficulty) to the next review due time.
	ReviewSchedule map[questiongen.Type]map[questiongen.Difficulty]time.Time `json:"reviewSchedule,omitempty"`
}

// New returns an empty profile with a fresh identity.
func New(now time.Time) *UserProfile {
	return &UserProfile{
		ProfileID:      uuid.NewString(),
		CreatedAt:      now,
		LastSeenAt:     now,
		Performance:    make(map[questiongen.Type]map[questiongen.Difficulty]*PerformanceBucket),
		ReviewSchedule: make(map[questiongen.Type]map[questiongen.Difficulty]time.Time),
	}
}

// Bucket returns the performance bucket for the pair, creating it if
// needed.
func (p *UserProfile) Bucket(typ questiongen.Type, d questiongen.Difficulty) *PerformanceBucket {
	if p.Performance == nil {
		p.Performance = make(map[questiongen.Type]map[questiongen.Difficulty]*PerformanceBucket)
	}
	byDiff, ok := p.Performance[typ]
	if !ok {
		byDiff = make(map[questiongen.Difficulty]*PerformanceBucket)
		p.Performance[typ] = byDiff
	}
	b, ok := byDiff[d]
	if !ok {
		b = &PerformanceBucket{}
		byDiff[d] = b
	}
	return b
}

// SessionByID returns the history record with the given ID, or nil.
func (p *UserProfile) SessionByID(id string) *SessionRecord {
	for i := range p.History {
		if p.History[i].ID == id {
			return &p.History[i]
		}
	}
	return nil
}
