package properties

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ProteinScope/internal/domain/structure"
)

type residueSpec struct {
	name     string
	hetero   bool
	elements []string
}

// build creates one chain with one residue per entry; atoms are named after
// their element plus index.
func build(t *testing.T, specs ...residueSpec) *structure.Structure {
	t.Helper()
	b := structure.NewBuilder("PROP")
	for i, rs := range specs {
		for j, el := range rs.elements {
			require.NoError(t, b.AddAtom(structure.AtomRecord{
				ChainID:       "A",
				ResidueNumber: i + 1,
				ResidueName:   rs.name,
				Hetero:        rs.hetero,
				Name:          fmt.Sprintf("%s%d", el, j),
				Element:       el,
				Coord:         structure.Coord{X: float64(i), Y: float64(j)},
			}))
		}
	}
	return b.Build()
}

func TestCalculateWeight_KnownElements(t *testing.T) {
	s := build(t, residueSpec{name: "SER", elements: []string{"C", "C", "C", "N", "O", "O"}})
	weight, count := CalculateWeight(s)
	assert.Equal(t, 6, count)
	assert.InDelta(t, 82.04, weight, 1e-9)
}

func TestCalculateWeight_UnknownElementCountsButWeighsZero(t *testing.T) {
	s := build(t,
		residueSpec{name: "GLY", elements: []string{"C", "N"}},
		residueSpec{name: "XE", hetero: true, elements: []string{"XE"}},
	)
	weight, count := CalculateWeight(s)
	assert.Equal(t, 3, count)
	assert.InDelta(t, 26.02, weight, 1e-9)
}

func TestCalculateWeight_IncludesHeteroAndWater(t *testing.T) {
	s := build(t,
		residueSpec{name: "HEM", hetero: true, elements: []string{"FE"}},
		residueSpec{name: "ZN", hetero: true, elements: []string{"ZN"}},
		residueSpec{name: "HOH", hetero: true, elements: []string{"O", "H", "H"}},
		residueSpec{name: "PO4", hetero: true, elements: []string{"P"}},
		residueSpec{name: "MET", elements: []string{"S"}},
	)
	weight, count := CalculateWeight(s)
	assert.Equal(t, 7, count)
	assert.InDelta(t, 55.85+65.38+16.00+2*1.008+30.97+32.07, weight, 0.005)
}

func TestCalculateWeight_RoundsToTwoDecimals(t *testing.T) {
	s := build(t, residueSpec{name: "HOH", hetero: true, elements: []string{"H", "H", "H"}})
	weight, _ := CalculateWeight(s)
	assert.Equal(t, 3.02, weight)
}

func TestCalculateWeight_Additive(t *testing.T) {
	tests := []struct {
		name string
		a, b []residueSpec
	}{
		{
			name: "standard residues",
			a:    []residueSpec{{name: "ALA", elements: []string{"N", "C", "C", "O", "C"}}},
			b:    []residueSpec{{name: "CYS", elements: []string{"N", "C", "C", "O", "C", "S"}}},
		},
		{
			name: "hetero and water",
			a:    []residueSpec{{name: "GLY", elements: []string{"N", "C", "C", "O"}}},
			b: []residueSpec{
				{name: "HEM", hetero: true, elements: []string{"FE", "N", "N"}},
				{name: "HOH", hetero: true, elements: []string{"O", "H", "H"}},
			},
		},
		{
			name: "unknown elements",
			a:    []residueSpec{{name: "XE", hetero: true, elements: []string{"XE", "C"}}},
			b:    []residueSpec{{name: "UNK", hetero: true, elements: []string{"QQ", "H", "H", "H"}}},
		},
		{
			name: "empty side",
			a:    nil,
			b:    []residueSpec{{name: "MET", elements: []string{"S", "C", "N"}}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wa, ca := CalculateWeight(build(t, tt.a...))
			wb, cb := CalculateWeight(build(t, tt.b...))
			joined := append(append([]residueSpec{}, tt.a...), tt.b...)
			wab, cab := CalculateWeight(build(t, joined...))

			assert.Equal(t, ca+cb, cab)
			assert.InDelta(t, wa+wb, wab, 0.01)
		})
	}
}

func TestCalculateCharge(t *testing.T) {
	s := build(t,
		residueSpec{name: "ARG", elements: []string{"C"}},
		residueSpec{name: "LYS", elements: []string{"C"}},
		residueSpec{name: "ASP", elements: []string{"C"}},
		residueSpec{name: "HIS", elements: []string{"C"}},
		residueSpec{name: "HIS", elements: []string{"C"}},
		residueSpec{name: "HIS", elements: []string{"C"}},
	)
	assert.Equal(t, 1.3, CalculateCharge(s))
}

func TestCalculateCharge_IgnoresNonStandard(t *testing.T) {
	s := build(t,
		residueSpec{name: "GLU", elements: []string{"C"}},
		residueSpec{name: "ARG", hetero: true, elements: []string{"C"}},
		residueSpec{name: "HOH", hetero: true, elements: []string{"O"}},
		residueSpec{name: "MSE", elements: []string{"SE"}},
	)
	assert.Equal(t, -1.0, CalculateCharge(s))
}

func TestCalculateCharge_NeutralIsPositiveZero(t *testing.T) {
	s := build(t,
		residueSpec{name: "GLU", elements: []string{"C"}},
		residueSpec{name: "LYS", elements: []string{"C"}},
	)
	c := CalculateCharge(s)
	assert.Equal(t, 0.0, c)
	assert.Equal(t, "0", fmt.Sprint(c))
}

func TestComposition_SumsToResidueCount(t *testing.T) {
	s := build(t,
		residueSpec{name: "ALA", elements: []string{"C"}},
		residueSpec{name: "ALA", elements: []string{"C"}},
		residueSpec{name: "GLY", elements: []string{"C"}},
		residueSpec{name: "HOH", hetero: true, elements: []string{"O"}},
	)
	comp := Composition(s)
	assert.Equal(t, map[string]int{"ALA": 2, "GLY": 1}, comp)

	sum := Summarize(s)
	total := 0
	for _, n := range sum.Composition {
		total += n
	}
	assert.Equal(t, sum.ResidueCount, total)
	assert.Equal(t, 3, sum.ResidueCount)
	assert.Equal(t, 2, sum.UniqueResidues)
	assert.Equal(t, []string{"ALA", "GLY"}, sum.ResidueTypes)
	assert.Equal(t, 4, sum.AtomCount)
}

func TestSummarize_Empty(t *testing.T) {
	sum := Summarize(structure.NewBuilder("EMPT").Build())
	assert.Equal(t, 0.0, sum.MolecularWeight)
	assert.Equal(t, 0, sum.AtomCount)
	assert.Equal(t, 0, sum.ResidueCount)
	assert.Equal(t, 0, sum.UniqueResidues)
	assert.Equal(t, 0.0, sum.Charge)
	assert.NotNil(t, sum.ResidueTypes)
	assert.Empty(t, sum.ResidueTypes)
	assert.Empty(t, sum.Composition)
}

func TestSummarize_Deterministic(t *testing.T) {
	s := build(t,
		residueSpec{name: "TRP", elements: []string{"C", "N", "O"}},
		residueSpec{name: "CYS", elements: []string{"C", "S"}},
		residueSpec{name: "LYS", elements: []string{"C", "N"}},
	)
	before := s.AtomCount()
	first := Summarize(s)
	second := Summarize(s)
	assert.Equal(t, first, second)
	assert.Equal(t, before, s.AtomCount())
	assert.Equal(t, []string{"CYS", "LYS", "TRP"}, first.ResidueTypes)
}

func TestTables(t *testing.T) {
	w, ok := AtomicWeight("FE")
	assert.True(t, ok)
	assert.Equal(t, 55.85, w)
	_, ok = AtomicWeight("U")
	assert.False(t, ok)
	assert.Equal(t, 0.0, ResidueCharge("ALA"))
	assert.Equal(t, 0.1, ResidueCharge("HIS"))
}

//Personal.AI order the ending
