package scene

import "strings"

// Mode selects one of the closed set of scene pipelines.
type Mode string

const (
	ModeBackbone  Mode = "backbone"
	ModeSurface   Mode = "surface"
	ModeAtoms     Mode = "atoms"
	ModeSecondary Mode = "secondary"
)

// Modes lists every supported mode.
var Modes = []Mode{ModeBackbone, ModeSurface, ModeAtoms, ModeSecondary}

var viewTitles = map[Mode]string{
	ModeBackbone:  "Backbone View",
	ModeSurface:   "Surface View",
	ModeAtoms:     "Atomic View",
	ModeSecondary: "Secondary Structure View",
}

// ParseMode maps a user-supplied name onto a Mode. Unknown or empty names
// fall back to ModeBackbone.
func ParseMode(s string) Mode {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if m.Valid() {
		return m
	}
	return ModeBackbone
}

// Valid reports whether m is one of Modes.
func (m Mode) Valid() bool {
	_, ok := viewTitles[m]
	return ok
}

// ViewTitle returns the human-readable view name, e.g. "Surface View".
func (m Mode) ViewTitle() string {
	if t, ok := viewTitles[m]; ok {
		return t
	}
	return viewTitles[ModeBackbone]
}

func (m Mode) String() string { return string(m) }

//Personal.AI order the ending
