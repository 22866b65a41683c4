// Package properties derives whole-structure biochemical properties from a
// structure snapshot: molecular weight, net charge, residue composition.
// Every function is pure and never mutates its input.
package properties

import (
	"math"
	"sort"
	"strings"

	"github.com/turtacn/ProteinScope/internal/domain/structure"
)

// Summary is the property report for one structure.
type Summary struct {
	MolecularWeight float64        `json:"molecular_weight"`
	AtomCount       int            `json:"atom_count"`
	ResidueCount    int            `json:"residue_count"`
	UniqueResidues  int            `json:"unique_residues"`
	Charge          float64        `json:"charge"`
	ResidueTypes    []string       `json:"residue_types"`
	Composition     map[string]int `json:"composition"`
}

// CalculateWeight sums tabulated atomic masses over every atom, heteroatoms
// and waters included, rounded to two decimals. Atoms of unknown elements are
// counted but add no mass.
func CalculateWeight(s *structure.Structure) (weight float64, atomCount int) {
	for _, a := range s.Atoms() {
		atomCount++
		if w, ok := AtomicWeight(strings.ToUpper(a.Element)); ok {
			weight += w
		}
	}
	return round2(weight), atomCount
}

// CalculateCharge sums residue charges over standard residues, rounded to two
// decimals. The result is an approximation at pH 7.4.
func CalculateCharge(s *structure.Structure) float64 {
	var charge float64
	for _, r := range s.Residues() {
		if r.IsStandard() {
			charge += ResidueCharge(r.Name)
		}
	}
	return round2(charge)
}

// Composition counts standard residues per type code.
func Composition(s *structure.Structure) map[string]int {
	comp := make(map[string]int)
	for _, r := range s.Residues() {
		if r.IsStandard() {
			comp[r.Name]++
		}
	}
	return comp
}

// Summarize computes the full property report. A structure without atoms
// yields an all-zero summary with empty (non-nil) collections.
func Summarize(s *structure.Structure) Summary {
	weight, atoms := CalculateWeight(s)
	comp := Composition(s)

	types := make([]string, 0, len(comp))
	residues := 0
	for name, n := range comp {
		types = append(types, name)
		residues += n
	}
	sort.Strings(types)

	return Summary{
		MolecularWeight: weight,
		AtomCount:       atoms,
		ResidueCount:    residues,
		UniqueResidues:  len(types),
		Charge:          CalculateCharge(s),
		ResidueTypes:    types,
		Composition:     comp,
	}
}

func round2(v float64) float64 {
	r := math.Round(v*100) / 100
	if r == 0 {
		return 0 // normalise -0
	}
	return r
}

//Personal.AI order the ending
