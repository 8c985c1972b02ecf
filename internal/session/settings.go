package session

import (
	"fmt"

	"github.com/nkapoor/mathex/internal/profile"
	"github.com/nkapoor/mathex/internal/questiongen"
)

// Mode identifies a practice mode.
type Mode string

const (
	ModeFixedQuestions Mode = "fixedQuestions"
	ModeFixedTime      Mode = "fixedTime"
	ModeAdaptive       Mode = "adaptive"
	ModeChallenge      Mode = "challenge"
	ModeTargeted       Mode = "targeted"
)

// DisplayName returns a human-readable mode name.
func (m Mode) DisplayName() string {
	switch m {
	case ModeFixedQuestions:
		return "Fixed Questions"
	case ModeFixedTime:
		return "Timed Practice"
	case ModeAdaptive:
		return "Adaptive Practice"
	case ModeChallenge:
		return "Challenge"
	case ModeTargeted:
		return "Targeted Practice"
	default:
		return string(m)
	}
}

const (
	// MinQuestions is the smallest allowed question target.
	MinQuestions = 1

	// MinTimeSecs is the smallest allowed time limit for timed and
	// adaptive sessions.
	MinTimeSecs = 10

	// MinChallengeSecs is the smallest allowed challenge starting
	// clock.
	MinChallengeSecs = 30
)

// Settings is the validated configuration a session starts with. Each
// mode has its own concrete type; Validate rejects configurations the
// controller cannot run.
type Settings interface {
	Mode() Mode
	Validate() error
	snapshot() profile.SettingsSnapshot
}

func validateTypes(types []questiongen.Type) error {
	if len(types) == 0 {
		return fmt.Errorf("select at least one question type")
	}
	for _, t := range types {
		if !t.Valid() {
			return fmt.Errorf("unknown question type %q", t)
		}
	}
	return nil
}

func validateDifficulties(diffs []questiongen.Difficulty) error {
	if len(diffs) == 0 {
		return fmt.Errorf("select at least one difficulty")
	}
	for _, d := range diffs {
		if questiongen.TierIndex(d) < 0 {
			return fmt.Errorf("unknown difficulty %q", d)
		}
	}
	return nil
}

func typeNames(types []questiongen.Type) []string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return names
}

func difficultyNames(diffs []questiongen.Difficulty) []string {
	names := make([]string, len(diffs))
	for i, d := range diffs {
		names[i] = string(d)
	}
	return names
}

// FixedQuestions runs until a set number of questions is answered.
// Each question draws a uniform random (enabled type, enabled
// difficulty) pair.
type FixedQuestions struct {
	Types        []questiongen.Type
	Difficulties []questiongen.Difficulty
	Count        int
}

func (s FixedQuestions) Mode() Mode { return ModeFixedQuestions }

func (s FixedQuestions) Validate() error {
	if err := validateTypes(s.Types); err != nil {
		return err
	}
	if err := validateDifficulties(s.Difficulties); err != nil {
		return err
	}
	if s.Count < MinQuestions {
		return fmt.Errorf("question count must be at least %d", MinQuestions)
	}
	return nil
}

func (s FixedQuestions) snapshot() profile.SettingsSnapshot {
	return profile.SettingsSnapshot{
		Mode:          string(ModeFixedQuestions),
		Types:         typeNames(s.Types),
		Difficulties:  difficultyNames(s.Difficulties),
		QuestionCount: s.Count,
	}
}

// FixedTime runs until a countdown expires.
type FixedTime struct {
	Types        []questiongen.Type
	Difficulties []questiongen.Difficulty
	TimeSecs     int
}

func (s FixedTime) Mode() Mode { return ModeFixedTime }

func (s FixedTime) Validate() error {
	if err := validateTypes(s.Types); err != nil {
		return err
	}
	if err := validateDifficulties(s.Difficulties); err != nil {
		return err
	}
	if s.TimeSecs < MinTimeSecs {
		return fmt.Errorf("time limit must be at least %d seconds", MinTimeSecs)
	}
	return nil
}

func (s FixedTime) snapshot() profile.SettingsSnapshot {
	return profile.SettingsSnapshot{
		Mode:          string(ModeFixedTime),
		Types:         typeNames(s.Types),
		Difficulties:  difficultyNames(s.Difficulties),
		TimeLimitSecs: s.TimeSecs,
	}
}

// Adaptive lets the selector and the difficulty ramp drive the session.
// Exactly one of Count and TimeSecs is set.
type Adaptive struct {
	Types    []questiongen.Type
	Count    int
	TimeSecs int
}

func (s Adaptive) Mode() Mode { return ModeAdaptive }

// Timed reports whether the session is bounded by time rather than by
// question count.
func (s Adaptive) Timed() bool { return s.TimeSecs > 0 }

func (s Adaptive) Validate() error {
	if err := validateTypes(s.Types); err != nil {
		return err
	}
	if (s.Count > 0) == (s.TimeSecs > 0) {
		return fmt.Errorf("set either a question count or a time limit, not both")
	}
	if s.Count > 0 && s.Count < MinQuestions {
		return fmt.Errorf("question count must be at least %d", MinQuestions)
	}
	if s.TimeSecs > 0 && s.TimeSecs < MinTimeSecs {
		return fmt.Errorf("time limit must be at least %d seconds", MinTimeSecs)
	}
	return nil
}

func (s Adaptive) snapshot() profile.SettingsSnapshot {
	return profile.SettingsSnapshot{
		Mode:          string(ModeAdaptive),
		Types:         typeNames(s.Types),
		QuestionCount: s.Count,
		TimeLimitSecs: s.TimeSecs,
	}
}

// Challenge is a countdown race: correct answers add time, difficulty
// only ratchets upward.
type Challenge struct {
	Types    []questiongen.Type
	TimeSecs int
}

func (s Challenge) Mode() Mode { return ModeChallenge }

func (s Challenge) Validate() error {
	if err := validateTypes(s.Types); err != nil {
		return err
	}
	if s.TimeSecs < MinChallengeSecs {
		return fmt.Errorf("challenge clock must be at least %d seconds", MinChallengeSecs)
	}
	return nil
}

func (s Challenge) snapshot() profile.SettingsSnapshot {
	return profile.SettingsSnapshot{
		Mode:          string(ModeChallenge),
		Types:         typeNames(s.Types),
		TimeLimitSecs: s.TimeSecs,
	}
}

// Targeted drills user-chosen material: specific multiplication tables
// or a square/cube base range.
type Targeted struct {
	Spec  questiongen.TargetSpec
	Count int
}

func (s Targeted) Mode() Mode { return ModeTargeted }

func (s Targeted) Validate() error {
	if err := s.Spec.Validate(); err != nil {
		return err
	}
	if s.Count < MinQuestions {
		return fmt.Errorf("question count must be at least %d", MinQuestions)
	}
	return nil
}

func (s Targeted) snapshot() profile.SettingsSnapshot {
	return profile.SettingsSnapshot{
		Mode:          string(ModeTargeted),
		QuestionCount: s.Count,
		TargetKind:    string(s.Spec.Kind),
		Tables:        s.Spec.Tables,
		RangeMin:      s.Spec.Min,
		RangeMax:      s.Spec.Max,
	}
}
