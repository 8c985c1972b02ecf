package questiongen

import (
	"math/rand"
	"strconv"
	"strings"
	"testing"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

func TestMultiplicationRanges(t *testing.T) {
	cases := []struct {
		difficulty Difficulty
		lo, hi     int
	}{
		{DifficultyEasy, 1 * 1, 10 * 10},
		{DifficultyMedium, 1 * 11, 10 * 30},
		{DifficultyHard, 11 * 11, 30 * 30},
		{DifficultyExpert, 31 * 31, 50 * 50},
	}
	rng := testRand()
	for _, tc := range cases {
		for i := 0; i < 200; i++ {
			q := Multiplication(rng, tc.difficulty)
			got, err := strconv.Atoi(q.Answer)
			if err != nil {
				t.Fatalf("Multiplication(%s) answer %q not an integer", tc.difficulty, q.Answer)
			}
			if got < tc.lo || got > tc.hi {
				t.Errorf("Multiplication(%s) product = %d, want in [%d, %d]", tc.difficulty, got, tc.lo, tc.hi)
			}
			if q.Type != TypeMultiplication || q.Difficulty != tc.difficulty {
				t.Errorf("Multiplication(%s) tagged %s/%s", tc.difficulty, q.Type, q.Difficulty)
			}
		}
	}
}

func TestMediumMultiplicationRandomizesOrder(t *testing.T) {
	rng := testRand()
	var smallFirst, largeFirst bool
	for i := 0; i < 200; i++ {
		q := Multiplication(rng, DifficultyMedium)
		parts := strings.SplitN(strings.TrimSuffix(q.Text, "?"), "×", 2)
		a, _ := strconv.Atoi(strings.TrimSpace(parts[0]))
		if a <= 10 {
			smallFirst = true
		} else {
			largeFirst = true
		}
	}
	if !smallFirst || !largeFirst {
		t.Errorf("medium multiplication never varied operand order (smallFirst=%v largeFirst=%v)", smallFirst, largeFirst)
	}
}

func TestSquareRootRadicandIsPerfectSquare(t *testing.T) {
	rng := testRand()
	for _, d := range Tiers() {
		for i := 0; i < 100; i++ {
			q := SquareRoot(rng, d)
			root, err := strconv.Atoi(q.Answer)
			if err != nil {
				t.Fatalf("SquareRoot(%s) answer %q not an integer", d, q.Answer)
			}
			want := "√" + strconv.Itoa(root*root) + "?"
			if q.Text != want {
				t.Errorf("SquareRoot(%s) text = %q, want %q", d, q.Text, want)
			}
		}
	}
}

func TestCubeRootRadicandIsPerfectCube(t *testing.T) {
	rng := testRand()
	for _, d := range Tiers() {
		for i := 0; i < 100; i++ {
			q := CubeRoot(rng, d)
			root, err := strconv.Atoi(q.Answer)
			if err != nil {
				t.Fatalf("CubeRoot(%s) answer %q not an integer", d, q.Answer)
			}
			want := "³√" + strconv.Itoa(root*root*root) + "?"
			if q.Text != want {
				t.Errorf("CubeRoot(%s) text = %q, want %q", d, q.Text, want)
			}
		}
	}
}

func TestFractionNeverInteger(t *testing.T) {
	rng := testRand()
	for i := 0; i < 300; i++ {
		q := Fraction(rng, DifficultyEasy)
		if strings.HasSuffix(q.Answer, ".000") {
			t.Errorf("Fraction produced integer-valued answer %q from %q", q.Answer, q.Text)
		}
		if len(q.Answer) < 5 || !strings.Contains(q.Answer, ".") {
			t.Errorf("Fraction answer %q not formatted to three decimals", q.Answer)
		}
	}
}

func TestFormatDecimal(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{1.0 / 3.0, "0.333"},
		{2.0 / 3.0, "0.667"},
		{0.5, "0.500"},
		{7.0 / 4.0, "1.750"},
	}
	for _, tc := range cases {
		if got := FormatDecimal(tc.in); got != tc.want {
			t.Errorf("FormatDecimal(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestGenerateUnknownTypeFallsBack(t *testing.T) {
	rng := testRand()
	q := Generate(rng, Type("nonsense"), DifficultyExpert)
	if q.Type != TypeMultiplication || q.Difficulty != DifficultyEasy {
		t.Errorf("unknown type fell back to %s/%s, want multiplication/easy", q.Type, q.Difficulty)
	}
}

func TestTierIndex(t *testing.T) {
	if got := TierIndex(DifficultyHard); got != 2 {
		t.Errorf("TierIndex(hard) = %d, want 2", got)
	}
	if got := TierIndex(DifficultyTargeted); got != -1 {
		t.Errorf("TierIndex(targeted) = %d, want -1", got)
	}
}
