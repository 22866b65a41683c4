package scene

import (
	"strconv"

	"github.com/turtacn/ProteinScope/internal/domain/structure"
)

// backbone traces the alpha carbons of standard residues, coloured by residue
// class, plus the N→CA bond of each residue.
func (b *Builder) backbone(s *structure.Structure) ([]Series, error) {
	trace := newSeries("Protein Backbone", LinesMarkers)
	trace.Colors = []string{}
	trace.Size = 6
	trace.Opacity = 0.9
	trace.Outline = &LineStyle{Color: "#2C3E50", Width: 1}
	trace.Line = &LineStyle{Color: "#34495E", Width: 8}

	peptide := newSeries("Peptide Bonds", Lines)
	peptide.Color = "#BDC3C7"
	peptide.Opacity = 0.6
	peptide.Line = &LineStyle{Color: "#BDC3C7", Width: 2}
	peptide.ShowLegend = false

	for _, r := range s.Residues() {
		if !r.IsStandard() {
			continue
		}
		ca, ok := r.AlphaCarbon()
		if !ok {
			continue
		}
		trace.Points = append(trace.Points, toPoint(ca.Coord))
		trace.Colors = append(trace.Colors, ResidueColor(r.Name))
		trace.HoverText = append(trace.HoverText, "Residue "+strconv.Itoa(len(trace.Points)))

		if n, ok := r.Atom("N"); ok {
			peptide.Segments = append(peptide.Segments, Segment{toPoint(n.Coord), toPoint(ca.Coord)})
		}
	}
	return []Series{trace, peptide}, nil
}

//Personal.AI order the ending
