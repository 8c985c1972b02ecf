package questiongen

import (
	"math"
	"strconv"
	"strings"
)

// fractionTolerance is the absolute tolerance for fraction answers, wide
// enough that a correctly rounded 3-decimal answer always passes.
const fractionTolerance = 0.0001

// CheckAnswer reports whether the learner's raw input matches the
// question's canonical answer. Fraction answers are compared numerically
// with an absolute tolerance; everything else is exact string equality
// after trimming whitespace. Malformed numeric input is incorrect, never
// an error.
func CheckAnswer(q *Question, raw string) bool {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return false
	}
	if q.Type == TypeFractions {
		user, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return false
		}
		want, err := strconv.ParseFloat(q.Answer, 64)
		if err != nil {
			return false
		}
		return math.Abs(user-want) < fractionTolerance
	}
	return trimmed == q.Answer
}
