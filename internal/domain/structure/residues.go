package structure

import "strings"

// aminoAcids maps the twenty standard amino-acid type codes to their
// one-letter codes.
var aminoAcids = map[string]byte{
	"ALA": 'A', "ARG": 'R', "ASN": 'N', "ASP": 'D', "CYS": 'C',
	"GLN": 'Q', "GLU": 'E', "GLY": 'G', "HIS": 'H', "ILE": 'I',
	"LEU": 'L', "LYS": 'K', "MET": 'M', "PHE": 'F', "PRO": 'P',
	"SER": 'S', "THR": 'T', "TRP": 'W', "TYR": 'Y', "VAL": 'V',
}

var waterNames = map[string]struct{}{
	"HOH": {}, "WAT": {}, "H2O": {}, "DOD": {}, "TIP": {}, "TIP3": {}, "SOL": {},
}

// IsAminoAcid reports whether name is one of the twenty standard amino acids.
func IsAminoAcid(name string) bool {
	_, ok := aminoAcids[strings.ToUpper(name)]
	return ok
}

// OneLetterCode returns the one-letter code for a residue type, or 'X'.
func OneLetterCode(name string) byte {
	if c, ok := aminoAcids[strings.ToUpper(name)]; ok {
		return c
	}
	return 'X'
}

// IsWaterName reports whether name denotes a water molecule.
func IsWaterName(name string) bool {
	_, ok := waterNames[strings.ToUpper(name)]
	return ok
}

//Personal.AI order the ending
