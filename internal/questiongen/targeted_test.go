package questiongen

import (
	"reflect"
	"strconv"
	"strings"
	"testing"
)

func TestGenerateTargetedTables(t *testing.T) {
	rng := testRand()
	spec := TargetSpec{Kind: TargetMultiplicationTable, Tables: []int{7}}
	for i := 0; i < 100; i++ {
		q, err := GenerateTargeted(rng, spec)
		if err != nil {
			t.Fatalf("GenerateTargeted: %v", err)
		}
		if q.Difficulty != DifficultyTargeted || q.Type != TypeMultiplication {
			t.Fatalf("targeted question tagged %s/%s", q.Type, q.Difficulty)
		}
		product, err := strconv.Atoi(q.Answer)
		if err != nil {
			t.Fatalf("answer %q not an integer", q.Answer)
		}
		if product%7 != 0 || product < 7 || product > 7*targetedMultiplicand {
			t.Errorf("table-7 product = %d, want multiple of 7 in [7, %d]", product, 7*targetedMultiplicand)
		}
	}
}

func TestGenerateTargetedSquareRange(t *testing.T) {
	rng := testRand()
	spec := TargetSpec{Kind: TargetSquareRange, Min: 15, Max: 25}
	for i := 0; i < 100; i++ {
		q, err := GenerateTargeted(rng, spec)
		if err != nil {
			t.Fatalf("GenerateTargeted: %v", err)
		}
		base, _ := strconv.Atoi(strings.TrimSuffix(q.Text, "²?"))
		if base < 15 || base > 25 {
			t.Errorf("square base = %d, want in [15, 25]", base)
		}
		if q.Answer != strconv.Itoa(base*base) {
			t.Errorf("answer %q for base %d", q.Answer, base)
		}
	}
}

func TestGenerateTargetedErrors(t *testing.T) {
	rng := testRand()
	cases := []TargetSpec{
		{Kind: "bogus"},
		{Kind: TargetMultiplicationTable},
		{Kind: TargetMultiplicationTable, Tables: []int{0}},
		{Kind: TargetSquareRange, Min: 10, Max: 5},
		{Kind: TargetCubeRange, Min: 0, Max: 5},
	}
	for _, spec := range cases {
		if _, err := GenerateTargeted(rng, spec); err == nil {
			t.Errorf("GenerateTargeted(%+v) succeeded, want error", spec)
		}
	}
}

func TestParseNumberList(t *testing.T) {
	cases := []struct {
		in   string
		want []int
	}{
		{"2,4-6", []int{2, 4, 5, 6}},
		{"7", []int{7}},
		{" 3 , 9 ", []int{3, 9}},
		{"0,1,-2", []int{1}},
		{"5-3", nil},
		{"a,b", nil},
		{"", nil},
	}
	for _, tc := range cases {
		got := ParseNumberList(tc.in)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("ParseNumberList(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
