package questiongen

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
)

// TargetKind selects what targeted practice drills.
type TargetKind string

const (
	TargetMultiplicationTable TargetKind = "multiplicationTable"
	TargetSquareRange         TargetKind = "squareRange"
	TargetCubeRange           TargetKind = "cubeRange"
)

// targetedMultiplicand is the upper bound for the free operand when
// drilling multiplication tables.
const targetedMultiplicand = 12

// TargetSpec describes a targeted practice drill: either a set of
// multiplication tables, or a base range for squares/cubes.
type TargetSpec struct {
	Kind   TargetKind `json:"kind"`
	Tables []int      `json:"tables,omitempty"`
	Min    int        `json:"min,omitempty"`
	Max    int        `json:"max,omitempty"`
}

// Validate checks that the target can generate questions.
func (s TargetSpec) Validate() error {
	switch s.Kind {
	case TargetMultiplicationTable:
		if len(s.Tables) == 0 {
			return fmt.Errorf("no multiplication tables selected")
		}
		for _, t := range s.Tables {
			if t < 1 {
				return fmt.Errorf("invalid table number %d", t)
			}
		}
	case TargetSquareRange, TargetCubeRange:
		if s.Min < 1 || s.Max < 1 {
			return fmt.Errorf("range bounds must be at least 1")
		}
		if s.Min > s.Max {
			return fmt.Errorf("range min %d greater than max %d", s.Min, s.Max)
		}
	default:
		return fmt.Errorf("unknown target kind %q", s.Kind)
	}
	return nil
}

// Type returns the skill type targeted questions are tagged with.
func (s TargetSpec) Type() Type {
	switch s.Kind {
	case TargetSquareRange:
		return TypeSquares
	case TargetCubeRange:
		return TypeCubes
	default:
		return TypeMultiplication
	}
}

// GenerateTargeted produces a question from user-chosen tables or ranges,
// bypassing difficulty tiers. Results carry DifficultyTargeted and are
// excluded from long-term statistics by the profile.
func GenerateTargeted(rng *rand.Rand, spec TargetSpec) (*Question, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	switch spec.Kind {
	case TargetMultiplicationTable:
		table := spec.Tables[rng.Intn(len(spec.Tables))]
		other := randomInt(rng, 1, targetedMultiplicand)
		a, b := table, other
		if rng.Intn(2) == 0 {
			a, b = b, a
		}
		return &Question{
			Text:       fmt.Sprintf("%d × %d?", a, b),
			Answer:     strconv.Itoa(table * other),
			Type:       TypeMultiplication,
			Difficulty: DifficultyTargeted,
		}, nil

	case TargetSquareRange:
		base := randomInt(rng, spec.Min, spec.Max)
		return &Question{
			Text:       fmt.Sprintf("%d²?", base),
			Answer:     strconv.Itoa(base * base),
			Type:       TypeSquares,
			Difficulty: DifficultyTargeted,
		}, nil

	case TargetCubeRange:
		base := randomInt(rng, spec.Min, spec.Max)
		return &Question{
			Text:       fmt.Sprintf("%d³?", base),
			Answer:     strconv.Itoa(base * base * base),
			Type:       TypeCubes,
			Difficulty: DifficultyTargeted,
		}, nil
	}

	return nil, fmt.Errorf("unknown target kind %q", spec.Kind)
}

// ParseNumberList parses a comma-separated list of numbers and ranges,
// e.g. "2,4-6" → [2 4 5 6]. Malformed parts are dropped; values below 1
// are filtered out.
func ParseNumberList(s string) []int {
	var values []int
	for _, part := range strings.Split(s, ",") {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		if lo, hi, ok := strings.Cut(item, "-"); ok {
			start, err1 := strconv.Atoi(strings.TrimSpace(lo))
			end, err2 := strconv.Atoi(strings.TrimSpace(hi))
			if err1 != nil || err2 != nil || start > end {
				continue
			}
			for v := start; v <= end; v++ {
				if v >= 1 {
					values = append(values, v)
				}
			}
			continue
		}
		v, err := strconv.Atoi(item)
		if err != nil || v < 1 {
			continue
		}
		values = append(values, v)
	}
	return values
}
