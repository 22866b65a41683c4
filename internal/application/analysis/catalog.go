package analysis

import types "github.com/turtacn/ProteinScope/pkg/types/analysis"

var examples = []types.Example{
	{ID: "1HHB", Name: "Hemoglobin", Description: "Oxygen transport protein"},
	{ID: "1UBQ", Name: "Ubiquitin", Description: "Small regulatory protein"},
	{ID: "1CRN", Name: "Crambin", Description: "Plant seed protein"},
	{ID: "1GFL", Name: "Green Fluorescent Protein", Description: "Fluorescent protein"},
	{ID: "1TIM", Name: "Triosephosphate Isomerase", Description: "Enzyme"},
}

// Examples returns a copy of the example catalog.
func Examples() []types.Example {
	out := make([]types.Example, len(examples))
	copy(out, examples)
	return out
}

//Personal.AI order the ending
