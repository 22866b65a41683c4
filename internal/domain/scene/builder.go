package scene

import (
	"github.com/turtacn/ProteinScope/internal/domain/geometry"
	"github.com/turtacn/ProteinScope/internal/domain/structure"
	"github.com/turtacn/ProteinScope/pkg/errors"
)

// Options tunes the contact thresholds used by the surface and atoms modes.
type Options struct {
	CovalentThreshold  float64
	ProximityThreshold float64
}

// DefaultOptions uses geometry.CovalentThreshold and geometry.ProximityThreshold.
func DefaultOptions() Options {
	return Options{
		CovalentThreshold:  geometry.CovalentThreshold,
		ProximityThreshold: geometry.ProximityThreshold,
	}
}

// Builder produces scenes. It holds no per-request state and is safe for
// concurrent use.
type Builder struct {
	opts Options
}

// NewBuilder returns a Builder; zero thresholds take their defaults.
func NewBuilder(opts Options) *Builder {
	def := DefaultOptions()
	if opts.CovalentThreshold == 0 {
		opts.CovalentThreshold = def.CovalentThreshold
	}
	if opts.ProximityThreshold == 0 {
		opts.ProximityThreshold = def.ProximityThreshold
	}
	return &Builder{opts: opts}
}

type pipeline func(b *Builder, s *structure.Structure) ([]Series, error)

var pipelines = map[Mode]pipeline{
	ModeBackbone:  (*Builder).backbone,
	ModeSurface:   (*Builder).surface,
	ModeAtoms:     (*Builder).atoms,
	ModeSecondary: (*Builder).secondary,
}

// Build renders s in mode. Unknown modes render as backbone. Every series of
// the mode is present even when it holds no points, so an empty structure
// yields a scene of empty series and a full layout. A nil structure, or a
// geometric computation failure, is returned as an error.
func (b *Builder) Build(s *structure.Structure, mode Mode) (*Scene, error) {
	if s == nil {
		return nil, errors.New(errors.ErrCodeSceneUnavailable, "no structure to render")
	}
	if !mode.Valid() {
		mode = ModeBackbone
	}

	series, err := pipelines[mode](b, s)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeUnknown, "failed to build "+mode.String()+" scene")
	}
	return &Scene{Mode: mode, Series: series, Layout: NewLayout(mode)}, nil
}

// Build renders s in mode with DefaultOptions.
func Build(s *structure.Structure, mode Mode) (*Scene, error) {
	return NewBuilder(DefaultOptions()).Build(s, mode)
}

func toPoint(c structure.Coord) Point { return Point{c.X, c.Y, c.Z} }

// contactSegments converts the contact pairs among atoms into line segments.
func contactSegments(atoms []*structure.Atom, threshold float64) ([]Segment, error) {
	coords := make([]structure.Coord, len(atoms))
	for i, a := range atoms {
		coords[i] = a.Coord
	}
	pairs, err := geometry.PairwiseContacts(coords, threshold)
	if err != nil {
		return nil, err
	}
	segs := make([]Segment, len(pairs))
	for k, p := range pairs {
		segs[k] = Segment{toPoint(coords[p.I]), toPoint(coords[p.J])}
	}
	return segs, nil
}

func atomHover(a *structure.Atom) string {
	if a.Residue == nil {
		return a.Name
	}
	return a.Residue.Label() + "-" + a.Name
}

//Personal.AI order the ending
