package questiongen

// Type identifies a skill type a question can drill.
type Type string

const (
	TypeMultiplication Type = "multiplication"
	TypeSquares        Type = "squares"
	TypeCubes          Type = "cubes"
	TypeSquareRoot     Type = "sqrt"
	TypeCubeRoot       Type = "cbrt"
	TypeFractions      Type = "fractions"
)

// AllTypes returns every skill type in display order.
func AllTypes() []Type {
	return []Type{
		TypeMultiplication,
		TypeSquares,
		TypeCubes,
		TypeSquareRoot,
		TypeCubeRoot,
		TypeFractions,
	}
}

// DisplayName returns a human-readable name for a type.
func (t Type) DisplayName() string {
	switch t {
	case TypeMultiplication:
		return "Multiplication"
	case TypeSquares:
		return "Squares"
	case TypeCubes:
		return "Cubes"
	case TypeSquareRoot:
		return "Square Root"
	case TypeCubeRoot:
		return "Cube Root"
	case TypeFractions:
		return "Fractions"
	default:
		return string(t)
	}
}

// Valid reports whether t is a known skill type.
func (t Type) Valid() bool {
	for _, known := range AllTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// Difficulty is a question difficulty tag.
//
// The four tiers are totally ordered: easy < medium < hard < expert.
// DifficultyTargeted is a synthetic tag for targeted practice; it sits
// outside the tier order and is excluded from long-term statistics.
type Difficulty string

const (
	DifficultyEasy     Difficulty = "easy"
	DifficultyMedium   Difficulty = "medium"
	DifficultyHard     Difficulty = "hard"
	DifficultyExpert   Difficulty = "expert"
	DifficultyTargeted Difficulty = "targeted"
)

// Tiers returns the four ordered difficulty tiers (targeted excluded).
func Tiers() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyExpert}
}

// TierIndex returns the position of d in the tier order, or -1 for
// targeted/unknown difficulties.
func TierIndex(d Difficulty) int {
	for i, tier := range Tiers() {
		if d == tier {
			return i
		}
	}
	return -1
}

// DisplayName returns a human-readable name for a difficulty.
func (d Difficulty) DisplayName() string {
	switch d {
	case DifficultyEasy:
		return "Easy"
	case DifficultyMedium:
		return "Medium"
	case DifficultyHard:
		return "Hard"
	case DifficultyExpert:
		return "Expert"
	case DifficultyTargeted:
		return "Targeted"
	default:
		return string(d)
	}
}

// Question is a single generated question ready for display.
// Immutable once generated.
type Question struct {
	// Text is the prompt shown to the learner, e.g. "7 × 24?".
	Text string

	// Answer is the canonical correct answer as a string.
	// Fraction answers are formatted to exactly three decimal places.
	Answer string

	// Type is the skill type this question drills.
	Type Type

	// Difficulty is the tier the question was generated for, or
	// DifficultyTargeted for targeted practice.
	Difficulty Difficulty
}
