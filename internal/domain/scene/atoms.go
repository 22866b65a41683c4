package scene

import (
	"github.com/turtacn/ProteinScope/internal/domain/structure"
)

// surface draws every atom coloured and sized by element, plus faint lines
// between atoms within the proximity threshold.
func (b *Builder) surface(s *structure.Structure) ([]Series, error) {
	atoms := s.Atoms()

	cloud := newSeries("Protein Surface (All Atoms)", Markers)
	cloud.Colors = make([]string, 0, len(atoms))
	cloud.Sizes = make([]float64, 0, len(atoms))
	cloud.Opacity = 0.7
	for _, a := range atoms {
		style := StyleForElement(a.Element)
		cloud.Points = append(cloud.Points, toPoint(a.Coord))
		cloud.Colors = append(cloud.Colors, style.Color)
		cloud.Sizes = append(cloud.Sizes, style.Size)
		cloud.HoverText = append(cloud.HoverText, atomHover(a))
	}

	segs, err := contactSegments(atoms, b.opts.ProximityThreshold)
	if err != nil {
		return nil, err
	}
	conn := newSeries("Surface Connections", Lines)
	conn.Segments = segs
	conn.Color = "rgba(100,100,100,0.3)"
	conn.Opacity = 0.3
	conn.Line = &LineStyle{Color: "rgba(100,100,100,0.3)", Width: 1}
	conn.ShowLegend = false

	return []Series{cloud, conn}, nil
}

// atoms draws one series per element bucket (carbon, nitrogen, oxygen,
// sulfur, other) plus covalent-bond lines computed over the full atom set.
func (b *Builder) atoms(s *structure.Structure) ([]Series, error) {
	all := s.Atoms()

	buckets := make(map[string]*Series, len(elementBuckets))
	out := make([]Series, 0, len(elementBuckets)+1)
	for _, style := range elementBuckets {
		sr := newSeries(style.SeriesName, Markers)
		sr.Color = style.Color
		sr.Size = style.Size
		sr.Opacity = style.Opacity
		sr.HoverInfo = "Element: " + style.Label
		out = append(out, sr)
	}
	for i, style := range elementBuckets {
		buckets[style.Bucket] = &out[i]
	}

	for _, a := range all {
		sr := buckets[StyleForElement(a.Element).Bucket]
		sr.Points = append(sr.Points, toPoint(a.Coord))
		sr.HoverText = append(sr.HoverText, atomHover(a))
	}

	segs, err := contactSegments(all, b.opts.CovalentThreshold)
	if err != nil {
		return nil, err
	}
	bonds := newSeries("Covalent Bonds", Lines)
	bonds.Segments = segs
	bonds.Color = "rgba(50,50,50,0.5)"
	bonds.Opacity = 0.5
	bonds.Line = &LineStyle{Color: "rgba(50,50,50,0.5)", Width: 1}
	bonds.ShowLegend = false

	return append(out, bonds), nil
}

//Personal.AI order the ending
