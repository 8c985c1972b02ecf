package questiongen

import (
	"fmt"
	"math/rand"
	"strconv"
)

// Generate produces a question for the given type and difficulty tier.
// Unknown types fall back to easy multiplication, the safe default served
// whenever generation cannot proceed.
func Generate(rng *rand.Rand, typ Type, difficulty Difficulty) *Question {
	switch typ {
	case TypeMultiplication:
		return Multiplication(rng, difficulty)
	case TypeSquares:
		return Square(rng, difficulty)
	case TypeCubes:
		return Cube(rng, difficulty)
	case TypeSquareRoot:
		return SquareRoot(rng, difficulty)
	case TypeCubeRoot:
		return CubeRoot(rng, difficulty)
	case TypeFractions:
		return Fraction(rng, difficulty)
	default:
		return Fallback(rng)
	}
}

// Fallback returns the safe default question: easy multiplication.
func Fallback(rng *rand.Rand) *Question {
	return Multiplication(rng, DifficultyEasy)
}

// Multiplication generates a two-operand multiplication question.
// Medium draws one operand from each range and randomizes which side the
// larger operand appears on.
func Multiplication(rng *rand.Rand, difficulty Difficulty) *Question {
	var a, b int
	switch difficulty {
	case DifficultyMedium:
		a = randomInt(rng, 1, 10)
		b = randomInt(rng, 11, 30)
		if rng.Intn(2) == 0 {
			a, b = b, a
		}
	case DifficultyHard:
		a = randomInt(rng, 11, 30)
		b = randomInt(rng, 11, 30)
	case DifficultyExpert:
		a = randomInt(rng, 31, 50)
		b = randomInt(rng, 31, 50)
	default: // easy
		a = randomInt(rng, 1, 10)
		b = randomInt(rng, 1, 10)
	}
	return &Question{
		Text:       fmt.Sprintf("%d × %d?", a, b),
		Answer:     strconv.Itoa(a * b),
		Type:       TypeMultiplication,
		Difficulty: difficulty,
	}
}

// Square generates a squaring question.
func Square(rng *rand.Rand, difficulty Difficulty) *Question {
	base := randomBase(rng, difficulty, [4][2]int{{1, 20}, {21, 30}, {31, 40}, {41, 50}})
	return &Question{
		Text:       fmt.Sprintf("%d²?", base),
		Answer:     strconv.Itoa(base * base),
		Type:       TypeSquares,
		Difficulty: difficulty,
	}
}

// Cube generates a cubing question.
func Cube(rng *rand.Rand, difficulty Difficulty) *Question {
	base := randomBase(rng, difficulty, [4][2]int{{1, 10}, {11, 20}, {21, 30}, {31, 40}})
	return &Question{
		Text:       fmt.Sprintf("%d³?", base),
		Answer:     strconv.Itoa(base * base * base),
		Type:       TypeCubes,
		Difficulty: difficulty,
	}
}

// SquareRoot generates a square-root question. The root is drawn first and
// its perfect square becomes the radicand, so the canonical answer is
// always the root.
func SquareRoot(rng *rand.Rand, difficulty Difficulty) *Question {
	root := randomBase(rng, difficulty, [4][2]int{{1, 20}, {21, 30}, {31, 40}, {41, 50}})
	return &Question{
		Text:       fmt.Sprintf("√%d?", root*root),
		Answer:     strconv.Itoa(root),
		Type:       TypeSquareRoot,
		Difficulty: difficulty,
	}
}

// CubeRoot generates a cube-root question, posed the same way as
// SquareRoot: perfect cube shown, root expected.
func CubeRoot(rng *rand.Rand, difficulty Difficulty) *Question {
	root := randomBase(rng, difficulty, [4][2]int{{1, 10}, {11, 20}, {21, 30}, {31, 40}})
	return &Question{
		Text:       fmt.Sprintf("³√%d?", root*root*root),
		Answer:     strconv.Itoa(root),
		Type:       TypeCubeRoot,
		Difficulty: difficulty,
	}
}

// Fraction generates a fraction-to-decimal conversion question. The
// denominator never evenly divides the numerator, so the decimal answer is
// never an integer. The answer is formatted to exactly three decimal
// places.
func Fraction(rng *rand.Rand, difficulty Difficulty) *Question {
	const maxNumDen = 10
	var num, den int
	for {
		num = randomInt(rng, 1, maxNumDen)
		den = randomInt(rng, 1, maxNumDen)
		if num%den != 0 {
			break
		}
	}
	return &Question{
		Text:       fmt.Sprintf("What is the decimal value of %d/%d?", num, den),
		Answer:     FormatDecimal(float64(num) / float64(den)),
		Type:       TypeFractions,
		Difficulty: difficulty,
	}
}

// FormatDecimal formats a decimal answer to exactly three decimal places,
// zero-padded, using standard fixed-point rounding.
func FormatDecimal(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

// randomInt returns a uniform random integer in [min, max], inclusive of
// both bounds.
func randomInt(rng *rand.Rand, min, max int) int {
	if max < min {
		min, max = max, min
	}
	return min + rng.Intn(max-min+1)
}

// randomBase picks a base from the tier's range. Unknown difficulties use
// the easy range.
func randomBase(rng *rand.Rand, difficulty Difficulty, ranges [4][2]int) int {
	idx := TierIndex(difficulty)
	if idx < 0 {
		idx = 0
	}
	return randomInt(rng, ranges[idx][0], ranges[idx][1])
}
