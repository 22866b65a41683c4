package scene

import (
	"github.com/turtacn/ProteinScope/internal/domain/geometry"
	"github.com/turtacn/ProteinScope/internal/domain/structure"
)

type classStyle struct {
	name    string
	label   string
	color   string
	width   float64
	size    float64
	opacity float64
}

// Line weight decreases from helix to sheet to coil.
var classStyles = map[geometry.Class]classStyle{
	geometry.Helix: {"Alpha Helices", "Alpha Helix", "#E74C3C", 8, 6, 0.9},
	geometry.Sheet: {"Beta Sheets", "Beta Sheet", "#3498DB", 6, 6, 0.9},
	geometry.Coil:  {"Random Coil", "Random Coil", "#95A5A6", 4, 4, 0.7},
}

// secondary classifies residues first, then draws one series per class by
// filtering the residue list, so each class line joins its members in
// structure order.
func (b *Builder) secondary(s *structure.Structure) ([]Series, error) {
	assignment, err := geometry.AssignSecondaryStructure(s)
	if err != nil {
		return nil, err
	}

	out := make([]Series, len(geometry.Classes))
	index := make(map[geometry.Class]int, len(geometry.Classes))
	for i, class := range geometry.Classes {
		style := classStyles[class]
		sr := newSeries(style.name, LinesMarkers)
		sr.Color = style.color
		sr.Size = style.size
		sr.Opacity = style.opacity
		sr.Line = &LineStyle{Color: style.color, Width: style.width}
		sr.HoverInfo = style.label
		out[i] = sr
		index[class] = i
	}

	for _, r := range s.Residues() {
		if !r.IsStandard() {
			continue
		}
		ca, ok := r.AlphaCarbon()
		if !ok {
			continue
		}
		sr := &out[index[assignment.Class(r)]]
		sr.Points = append(sr.Points, toPoint(ca.Coord))
		sr.HoverText = append(sr.HoverText, r.Label())
	}
	return out, nil
}

//Personal.AI order the ending
