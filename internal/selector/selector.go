// Package selector chooses the next (type, difficulty) pair for
// adaptive practice. Pairs due for review always win over everything
// else; otherwise weaker pairs are favored in proportion to how far
// their mastery is from perfect.
package selector

import (
	"math"
	"math/rand"
	"time"

	"github.com/nkapoor/mathex/internal/profile"
	"github.com/nkapoor/mathex/internal/questiongen"
)

// reviewWeight is the fixed weight for every due-review pair. Review
// draws are uniform among due pairs.
const reviewWeight = 10

// Pick is the selector's choice for the next question.
type Pick struct {
	Type       questiongen.Type
	Difficulty questiongen.Difficulty

	// Review is true when the pick came from the due-review pool.
	Review bool
}

type candidate struct {
	pick   Pick
	weight int
}

// Next selects the next pair for the given profile. Only enabled types
// participate. Due reviews strictly preempt mastery-weighted selection;
// when neither pool has candidates (every enabled pair fully mastered)
// a random enabled type at easy is returned.
func Next(rng *rand.Rand, p *profile.UserProfile, enabled []questiongen.Type, now time.Time) Pick {
	if len(enabled) == 0 {
		enabled = questiongen.AllTypes()
	}
	on := make(map[questiongen.Type]bool, len(enabled))
	for _, t := range enabled {
		on[t] = true
	}

	if pick, ok := sample(rng, reviewCandidates(p, on, now)); ok {
		return pick
	}
	if pick, ok := sample(rng, masteryCandidates(p, on)); ok {
		return pick
	}
	return Pick{
		Type:       enabled[rng.Intn(len(enabled))],
		Difficulty: questiongen.DifficultyEasy,
	}
}

func reviewCandidates(p *profile.UserProfile, on map[questiongen.Type]bool, now time.Time) []candidate {
	var cands []candidate
	for _, due := range p.DueReviews(now) {
		if !on[due.Type] {
			continue
		}
		cands = append(cands, candidate{
			pick:   Pick{Type: due.Type, Difficulty: due.Difficulty, Review: true},
			weight: reviewWeight,
		})
	}
	return cands
}

func masteryCandidates(p *profile.UserProfile, on map[questiongen.Type]bool) []candidate {
	var cands []candidate
	// The pool spans the whole enabled-types x tiers grid; pairs never
	// attempted count as mastery 0 and carry full weight. Iterate in the
	// fixed type/tier order so selection is a pure function of the
	// profile and the rng stream.
	for _, typ := range questiongen.AllTypes() {
		if !on[typ] {
			continue
		}
		for _, diff := range questiongen.Tiers() {
			mastery := 0.0
			if b, ok := p.Performance[typ][diff]; ok {
				mastery = b.Mastery
			}
			w := MasteryWeight(mastery)
			if w == 0 {
				continue
			}
			cands = append(cands, candidate{
				pick:   Pick{Type: typ, Difficulty: diff},
				weight: w,
			})
		}
	}
	return cands
}

// MasteryWeight converts a mastery ratio to a selection weight,
// ceil((1-mastery)*10). Fully mastered pairs weigh 0 and drop out.
func MasteryWeight(mastery float64) int {
	return int(math.Ceil((1 - mastery) * 10))
}

// sample draws one candidate with probability proportional to weight.
func sample(rng *rand.Rand, cands []candidate) (Pick, bool) {
	if len(cands) == 0 {
		return Pick{}, false
	}
	total := 0
	for _, c := range cands {
		total += c.weight
	}
	r := rng.Intn(total)
	for _, c := range cands {
		r -= c.weight
		if r < 0 {
			return c.pick, true
		}
	}
	return cands[len(cands)-1].pick, true
}
