package properties

// atomicWeights holds average atomic masses (Da) for the elements that occur
// in protein entries. Elements outside the table weigh nothing but still count.
var atomicWeights = map[string]float64{
	"C":  12.01,
	"N":  14.01,
	"O":  16.00,
	"S":  32.07,
	"H":  1.008,
	"P":  30.97,
	"FE": 55.85,
	"ZN": 65.38,
}

// residueCharges holds the approximate side-chain charge at pH 7.4. Histidine
// carries a fractional +0.1 to reflect partial protonation; no pKa titration
// is modelled.
var residueCharges = map[string]float64{
	"ARG": 1.0,
	"LYS": 1.0,
	"HIS": 0.1,
	"ASP": -1.0,
	"GLU": -1.0,
}

// AtomicWeight returns the tabulated mass of element and whether it is known.
func AtomicWeight(element string) (float64, bool) {
	w, ok := atomicWeights[element]
	return w, ok
}

// ResidueCharge returns the tabulated charge of a residue type, zero when
// the type carries no charge.
func ResidueCharge(name string) float64 {
	return residueCharges[name]
}

//Personal.AI order the ending
