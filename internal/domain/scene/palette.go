package scene

import "strings"

// ─────────────────────────────────────────────────────────────────────────────
// Residue classes (backbone colouring)
// ─────────────────────────────────────────────────────────────────────────────

const (
	colorSmall    = "#95A5A6"
	colorBasic    = "#E74C3C"
	colorAcidic   = "#3498DB"
	colorPolar    = "#2ECC71"
	colorAromatic = "#F39C12"
	colorOther    = "#9B59B6"
)

var residueColors = map[string]string{
	"ALA": colorSmall, "GLY": colorSmall, "PRO": colorSmall,
	"ARG": colorBasic, "LYS": colorBasic, "HIS": colorBasic,
	"ASP": colorAcidic, "GLU": colorAcidic,
	"SER": colorPolar, "THR": colorPolar, "ASN": colorPolar, "GLN": colorPolar,
	"PHE": colorAromatic, "TYR": colorAromatic, "TRP": colorAromatic,
}

// ResidueColor returns the backbone colour for a residue type code.
func ResidueColor(name string) string {
	if c, ok := residueColors[name]; ok {
		return c
	}
	return colorOther
}

// ─────────────────────────────────────────────────────────────────────────────
// Element buckets (surface and atom colouring)
// ─────────────────────────────────────────────────────────────────────────────

// ElementStyle is the rendering of one element bucket.
type ElementStyle struct {
	Bucket     string
	Label      string
	SeriesName string
	Color      string
	Size       float64
	Opacity    float64
}

var (
	styleCarbon   = ElementStyle{"C", "Carbon", "Carbon Atoms", "#2E8B57", 3, 0.8}
	styleNitrogen = ElementStyle{"N", "Nitrogen", "Nitrogen Atoms", "#4169E1", 4, 1.0}
	styleOxygen   = ElementStyle{"O", "Oxygen", "Oxygen Atoms", "#DC143C", 4, 1.0}
	styleSulfur   = ElementStyle{"S", "Sulfur", "Sulfur Atoms", "#FFD700", 5, 1.0}
	styleOther    = ElementStyle{"other", "Other", "Other Atoms (Metals, etc.)", "#FF69B4", 6, 1.0}
)

// elementBuckets is the fixed series order of the atoms mode.
var elementBuckets = []ElementStyle{styleCarbon, styleNitrogen, styleOxygen, styleSulfur, styleOther}

// StyleForElement returns the bucket style of an element symbol.
func StyleForElement(element string) ElementStyle {
	switch strings.ToUpper(element) {
	case "C":
		return styleCarbon
	case "N":
		return styleNitrogen
	case "O":
		return styleOxygen
	case "S":
		return styleSulfur
	}
	return styleOther
}

//Personal.AI order the ending
