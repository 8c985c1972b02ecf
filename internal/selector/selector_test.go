package selector

import (
	"math/rand"
	"testing"
	"time"

	"github.com/nkapoor/mathex/internal/profile"
	"github.com/nkapoor/mathex/internal/questiongen"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewSource(7))
}

func seedBucket(p *profile.UserProfile, typ questiongen.Type, diff questiongen.Difficulty, correct, incorrect int) {
	b := p.Bucket(typ, diff)
	b.Correct = correct
	b.Incorrect = incorrect
	b.TotalAttempts = correct + incorrect
	b.Mastery = float64(correct) / float64(b.TotalAttempts)
}

func TestNextFreshProfileDrawsWholeGrid(t *testing.T) {
	rng := testRand()
	p := profile.New(time.Now())
	enabled := []questiongen.Type{questiongen.TypeSquares, questiongen.TypeCubes}

	// Every enabled pair is unattempted (mastery 0, weight 10), so the
	// draw is uniform over the full type x tier grid.
	seen := map[questiongen.Type]map[questiongen.Difficulty]bool{}
	for i := 0; i < 500; i++ {
		pick := Next(rng, p, enabled, time.Now())
		if pick.Type != questiongen.TypeSquares && pick.Type != questiongen.TypeCubes {
			t.Fatalf("pick type %s not among enabled", pick.Type)
		}
		if pick.Review {
			t.Fatal("fresh profile produced a review pick")
		}
		if seen[pick.Type] == nil {
			seen[pick.Type] = map[questiongen.Difficulty]bool{}
		}
		seen[pick.Type][pick.Difficulty] = true
	}
	for _, typ := range enabled {
		for _, diff := range questiongen.Tiers() {
			if !seen[typ][diff] {
				t.Errorf("pair (%s, %s) never drawn from a fresh profile", typ, diff)
			}
		}
	}
}

func TestNextIncludesUnattemptedTypes(t *testing.T) {
	rng := testRand()
	now := time.Now()
	p := profile.New(now)
	// One attempted pair; squares entirely unattempted. Unattempted
	// pairs default to mastery 0 and must stay in the pool.
	seedBucket(p, questiongen.TypeMultiplication, questiongen.DifficultyEasy, 1, 1) // mastery 0.5

	enabled := []questiongen.Type{questiongen.TypeMultiplication, questiongen.TypeSquares}
	squares := 0
	for i := 0; i < 500; i++ {
		if Next(rng, p, enabled, now).Type == questiongen.TypeSquares {
			squares++
		}
	}
	// Squares carry weight 40 of 75; anywhere near zero means the
	// unattempted type fell out of the pool.
	if squares < 100 {
		t.Errorf("squares drawn %d of 500, want roughly half", squares)
	}
}

func TestNextDueReviewPreempts(t *testing.T) {
	rng := testRand()
	now := time.Now()
	p := profile.New(now)
	// A very weak bucket that would dominate mastery selection.
	seedBucket(p, questiongen.TypeMultiplication, questiongen.DifficultyEasy, 0, 10)
	// And one overdue review pair.
	p.ReviewSchedule[questiongen.TypeSquares] = map[questiongen.Difficulty]time.Time{
		questiongen.DifficultyMedium: now.Add(-time.Hour),
	}
	for i := 0; i < 50; i++ {
		pick := Next(rng, p, questiongen.AllTypes(), now)
		if !pick.Review {
			t.Fatalf("pick %+v, want due review to preempt", pick)
		}
		if pick.Type != questiongen.TypeSquares || pick.Difficulty != questiongen.DifficultyMedium {
			t.Fatalf("review pick = %+v", pick)
		}
	}
}

func TestNextIgnoresDisabledReview(t *testing.T) {
	rng := testRand()
	now := time.Now()
	p := profile.New(now)
	p.ReviewSchedule[questiongen.TypeSquares] = map[questiongen.Difficulty]time.Time{
		questiongen.DifficultyMedium: now.Add(-time.Hour),
	}
	enabled := []questiongen.Type{questiongen.TypeFractions}
	for i := 0; i < 20; i++ {
		pick := Next(rng, p, enabled, now)
		if pick.Type != questiongen.TypeFractions {
			t.Fatalf("disabled type selected: %+v", pick)
		}
	}
}

func TestNextFavorsWeakerPairs(t *testing.T) {
	rng := testRand()
	now := time.Now()
	p := profile.New(now)
	seedBucket(p, questiongen.TypeMultiplication, questiongen.DifficultyEasy, 1, 9)  // mastery 0.1, weight 9
	seedBucket(p, questiongen.TypeMultiplication, questiongen.DifficultyHard, 9, 1)  // mastery 0.9, weight 1

	counts := map[questiongen.Difficulty]int{}
	for i := 0; i < 2000; i++ {
		pick := Next(rng, p, []questiongen.Type{questiongen.TypeMultiplication}, now)
		counts[pick.Difficulty]++
	}
	if counts[questiongen.DifficultyEasy] <= counts[questiongen.DifficultyHard]*3 {
		t.Errorf("weak pair not favored: %v", counts)
	}
	if counts[questiongen.DifficultyHard] == 0 {
		t.Error("strong pair never selected; sampling should be proportional, not winner-take-all")
	}
}

func TestNextSkipsFullyMastered(t *testing.T) {
	rng := testRand()
	now := time.Now()
	p := profile.New(now)
	seedBucket(p, questiongen.TypeCubes, questiongen.DifficultyExpert, 10, 0) // mastery 1.0, weight 0
	for i := 0; i < 50; i++ {
		pick := Next(rng, p, []questiongen.Type{questiongen.TypeCubes}, now)
		if pick.Difficulty == questiongen.DifficultyExpert {
			t.Fatalf("fully mastered pair selected: %+v", pick)
		}
	}
}

func TestNextAllMasteredFallsBackToEasy(t *testing.T) {
	rng := testRand()
	now := time.Now()
	p := profile.New(now)
	for _, diff := range questiongen.Tiers() {
		seedBucket(p, questiongen.TypeCubes, diff, 10, 0) // mastery 1.0 everywhere
	}
	for i := 0; i < 50; i++ {
		pick := Next(rng, p, []questiongen.Type{questiongen.TypeCubes}, now)
		if pick.Type != questiongen.TypeCubes || pick.Difficulty != questiongen.DifficultyEasy {
			t.Fatalf("empty-pool fallback = %+v, want cubes at easy", pick)
		}
	}
}

func TestMasteryWeight(t *testing.T) {
	cases := []struct {
		mastery float64
		want    int
	}{
		{0, 10},
		{0.05, 10},
		{0.1, 9},
		{0.5, 5},
		{0.95, 1},
		{1.0, 0},
	}
	for _, tc := range cases {
		if got := MasteryWeight(tc.mastery); got != tc.want {
			t.Errorf("MasteryWeight(%v) = %d, want %d", tc.mastery, got, tc.want)
		}
	}
}
