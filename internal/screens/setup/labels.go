package setup

import (
	"github.com/nkapoor/mathex/internal/questiongen"
	"github.com/nkapoor/mathex/internal/ui/components"
)

func questionTypes() []questiongen.Type {
	return questiongen.AllTypes()
}

func difficultyTiers() []questiongen.Difficulty {
	return questiongen.Tiers()
}

// selectedTypes maps checked display names back to type values.
func selectedTypes(list components.CheckList) []questiongen.Type {
	byName := make(map[string]questiongen.Type)
	for _, t := range questionTypes() {
		byName[t.DisplayName()] = t
	}
	var out []questiongen.Type
	for _, name := range list.CheckedLabels() {
		if t, ok := byName[name]; ok {
			out = append(out, t)
		}
	}
	return out
}

// selectedDifficulties maps checked display names back to tiers.
func selectedDifficulties(list components.CheckList) []questiongen.Difficulty {
	byName := make(map[string]questiongen.Difficulty)
	for _, d := range difficultyTiers() {
		byName[d.DisplayName()] = d
	}
	var out []questiongen.Difficulty
	for _, name := range list.CheckedLabels() {
		if d, ok := byName[name]; ok {
			out = append(out, d)
		}
	}
	return out
}

// targetTables builds a table-drill spec from raw list input like
// "2,4-6".
func targetTables(raw string) questiongen.TargetSpec {
	return questiongen.TargetSpec{
		Kind:   questiongen.TargetMultiplicationTable,
		Tables: questiongen.ParseNumberList(raw),
	}
}

// targetRange builds a square or cube range spec.
func targetRange(kind string, lo, hi int) questiongen.TargetSpec {
	k := questiongen.TargetSquareRange
	if kind == "cubeRange" {
		k = questiongen.TargetCubeRange
	}
	return questiongen.TargetSpec{Kind: k, Min: lo, Max: hi}
}
