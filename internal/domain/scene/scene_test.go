package scene

import (
	"encoding/json"
	"math"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ProteinScope/internal/domain/geometry"
	"github.com/turtacn/ProteinScope/internal/domain/structure"
	"github.com/turtacn/ProteinScope/pkg/errors"
)

func loadMini(t *testing.T) *structure.Structure {
	t.Helper()
	data, err := os.ReadFile("../structure/testdata/mini.pdb")
	require.NoError(t, err)
	s, err := structure.ReadBytes(data, "0TST")
	require.NoError(t, err)
	return s
}

// caLine builds one ALA per x position, each carrying N and CA atoms.
func caLine(t *testing.T, xs ...float64) *structure.Structure {
	t.Helper()
	b := structure.NewBuilder("LINE")
	for i, x := range xs {
		for _, a := range []struct {
			name string
			el   string
			dy   float64
		}{{"N", "N", 1.0}, {"CA", "C", 0}} {
			require.NoError(t, b.AddAtom(structure.AtomRecord{
				ChainID:       "A",
				ResidueNumber: i + 1,
				ResidueName:   "ALA",
				Name:          a.name,
				Element:       a.el,
				Coord:         structure.Coord{X: x, Y: a.dy},
			}))
		}
	}
	return b.Build()
}

func names(sc *Scene) []string {
	out := make([]string, len(sc.Series))
	for i, s := range sc.Series {
		out[i] = s.Name
	}
	return out
}

func mustSeries(t *testing.T, sc *Scene, name string) *Series {
	t.Helper()
	s, ok := sc.SeriesByName(name)
	require.True(t, ok, "series %q missing", name)
	return s
}

// ─────────────────────────────────────────────────────────────────────────────
// Modes
// ─────────────────────────────────────────────────────────────────────────────

func TestParseMode(t *testing.T) {
	assert.Equal(t, ModeSurface, ParseMode(" Surface "))
	assert.Equal(t, ModeAtoms, ParseMode("atoms"))
	assert.Equal(t, ModeBackbone, ParseMode(""))
	assert.Equal(t, ModeBackbone, ParseMode("cartoon"))
	assert.False(t, Mode("cartoon").Valid())
	assert.Equal(t, "Backbone View", Mode("cartoon").ViewTitle())
}

func TestBuild_SeriesNamesPerMode(t *testing.T) {
	s := loadMini(t)
	cases := map[Mode][]string{
		ModeBackbone:  {"Protein Backbone", "Peptide Bonds"},
		ModeSurface:   {"Protein Surface (All Atoms)", "Surface Connections"},
		ModeAtoms:     {"Carbon Atoms", "Nitrogen Atoms", "Oxygen Atoms", "Sulfur Atoms", "Other Atoms (Metals, etc.)", "Covalent Bonds"},
		ModeSecondary: {"Alpha Helices", "Beta Sheets", "Random Coil"},
	}
	for mode, want := range cases {
		t.Run(mode.String(), func(t *testing.T) {
			sc, err := Build(s, mode)
			require.NoError(t, err)
			assert.Equal(t, mode, sc.Mode)
			assert.Equal(t, want, names(sc))
			assert.Equal(t, "ProteinScope 3D Structure - "+mode.ViewTitle(), sc.Layout.Title)
		})
	}
}

func TestBuild_UnknownModeFallsBackToBackbone(t *testing.T) {
	sc, err := Build(loadMini(t), Mode("ribbon"))
	require.NoError(t, err)
	assert.Equal(t, ModeBackbone, sc.Mode)
	assert.Equal(t, "ProteinScope 3D Structure - Backbone View", sc.Layout.Title)
}

func TestBuild_NilStructure(t *testing.T) {
	_, err := Build(nil, ModeBackbone)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeSceneUnavailable))
}

func TestBuild_EmptyStructureYieldsEmptySeries(t *testing.T) {
	empty := structure.NewBuilder("EMPTY").Build()
	for _, mode := range Modes {
		sc, err := Build(empty, mode)
		require.NoError(t, err, mode)
		require.NotEmpty(t, sc.Series)
		for _, s := range sc.Series {
			assert.Zero(t, s.Len(), "%s/%s", mode, s.Name)
			assert.Empty(t, s.Segments)
			assert.NotNil(t, s.Points)
		}
		assert.Equal(t, 600, sc.Layout.Height)
	}
}

func TestBuild_NonFiniteCoordinateIsComputationError(t *testing.T) {
	s := caLine(t, 0, math.NaN(), 10)
	for _, mode := range []Mode{ModeSurface, ModeAtoms, ModeSecondary} {
		_, err := Build(s, mode)
		require.Error(t, err, mode)
		assert.True(t, errors.IsCode(err, errors.ErrCodeNonFiniteCoordinate), mode)
		assert.True(t, errors.IsComputationError(err), mode)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Backbone
// ─────────────────────────────────────────────────────────────────────────────

func TestBackbone_TracesStandardAlphaCarbons(t *testing.T) {
	sc, err := Build(loadMini(t), ModeBackbone)
	require.NoError(t, err)

	trace := mustSeries(t, sc, "Protein Backbone")
	// ALA1 GLY2 LYS3 of A, HIS1 of B; MET2 has no CA, hetero and water are skipped.
	require.Equal(t, 4, trace.Len())
	assert.Equal(t, Point{1.458, 0, 0}, trace.Points[0])
	assert.Equal(t, Point{11.458, 10, 10}, trace.Points[3])
	assert.Equal(t, []string{colorSmall, colorSmall, colorBasic, colorBasic}, trace.Colors)
	assert.Equal(t, []string{"Residue 1", "Residue 2", "Residue 3", "Residue 4"}, trace.HoverText)
	assert.Equal(t, LinesMarkers, trace.Mode)
	assert.Equal(t, 6.0, trace.Size)
	assert.Equal(t, 0.9, trace.Opacity)
	assert.Equal(t, &LineStyle{Color: "#34495E", Width: 8}, trace.Line)

	bonds := mustSeries(t, sc, "Peptide Bonds")
	require.Len(t, bonds.Segments, 4)
	assert.Equal(t, Segment{{0, 0, 0}, {1.458, 0, 0}}, bonds.Segments[0])
	assert.False(t, bonds.ShowLegend)
	assert.Equal(t, Lines, bonds.Mode)
}

// ─────────────────────────────────────────────────────────────────────────────
// Surface and atoms
// ─────────────────────────────────────────────────────────────────────────────

func TestSurface_AllAtomsStyledByElement(t *testing.T) {
	s := loadMini(t)
	sc, err := Build(s, ModeSurface)
	require.NoError(t, err)

	cloud := mustSeries(t, sc, "Protein Surface (All Atoms)")
	require.Equal(t, s.AtomCount(), cloud.Len())
	require.Len(t, cloud.Colors, cloud.Len())
	require.Len(t, cloud.Sizes, cloud.Len())
	assert.Equal(t, "#4169E1", cloud.Colors[0])
	assert.Equal(t, 4.0, cloud.Sizes[0])
	assert.Equal(t, "#2E8B57", cloud.Colors[1])
	assert.Equal(t, "ALA1-N", cloud.HoverText[0])
	assert.Equal(t, 0.7, cloud.Opacity)

	conn := mustSeries(t, sc, "Surface Connections")
	pairs, err := geometry.PairwiseContacts(coordsOf(s), geometry.ProximityThreshold)
	require.NoError(t, err)
	assert.Len(t, conn.Segments, len(pairs))
	assert.False(t, conn.ShowLegend)
}

func TestBuild_HandAssembledAtomsHoverByName(t *testing.T) {
	r := &structure.Residue{
		ID:   structure.ResidueID{Number: 1},
		Name: "ALA",
		Atoms: []*structure.Atom{
			{Name: "N", Element: "N", Coord: structure.Coord{X: 1}},
			{Name: "CA", Element: "C"},
		},
	}
	s := &structure.Structure{ID: "HAND", Models: []*structure.Model{{
		Chains: []*structure.Chain{{ID: "A", Residues: []*structure.Residue{r}}},
	}}}

	for _, mode := range Modes {
		require.NotPanics(t, func() {
			_, err := Build(s, mode)
			require.NoError(t, err)
		}, mode)
	}

	sc, err := Build(s, ModeSurface)
	require.NoError(t, err)
	cloud := mustSeries(t, sc, "Protein Surface (All Atoms)")
	assert.Equal(t, []string{"N", "CA"}, cloud.HoverText)
}

func TestAtoms_BucketsPartitionAtoms(t *testing.T) {
	s := loadMini(t)
	sc, err := Build(s, ModeAtoms)
	require.NoError(t, err)

	counts := map[string]int{}
	total := 0
	for _, style := range elementBuckets {
		sr := mustSeries(t, sc, style.SeriesName)
		counts[style.Bucket] = sr.Len()
		total += sr.Len()
		assert.Equal(t, style.Color, sr.Color)
		assert.Equal(t, style.Size, sr.Size)
		assert.Equal(t, "Element: "+style.Label, sr.HoverInfo)
	}
	assert.Equal(t, s.AtomCount(), total)
	assert.Equal(t, map[string]int{"C": 8, "N": 5, "O": 5, "S": 1, "other": 1}, counts)

	bonds := mustSeries(t, sc, "Covalent Bonds")
	for _, seg := range bonds.Segments {
		d := geometry.Distance(
			structure.Coord{X: seg[0][0], Y: seg[0][1], Z: seg[0][2]},
			structure.Coord{X: seg[1][0], Y: seg[1][1], Z: seg[1][2]},
		)
		assert.Less(t, d, geometry.CovalentThreshold)
	}
	assert.NotEmpty(t, bonds.Segments)
}

func TestBuilder_CustomThresholds(t *testing.T) {
	s := caLine(t, 0, 5, 10)
	wide, err := NewBuilder(Options{CovalentThreshold: 100}).Build(s, ModeAtoms)
	require.NoError(t, err)
	narrow, err := NewBuilder(Options{}).Build(s, ModeAtoms)
	require.NoError(t, err)

	n := s.AtomCount()
	assert.Len(t, mustSeries(t, wide, "Covalent Bonds").Segments, n*(n-1)/2)
	assert.Len(t, mustSeries(t, narrow, "Covalent Bonds").Segments, 3)
}

func coordsOf(s *structure.Structure) []structure.Coord {
	atoms := s.Atoms()
	out := make([]structure.Coord, len(atoms))
	for i, a := range atoms {
		out[i] = a.Coord
	}
	return out
}

// ─────────────────────────────────────────────────────────────────────────────
// Secondary
// ─────────────────────────────────────────────────────────────────────────────

func TestSecondary_SeriesFollowClassification(t *testing.T) {
	s := caLine(t, 0, 5, 10, 15, 20)
	sc, err := Build(s, ModeSecondary)
	require.NoError(t, err)

	helix := mustSeries(t, sc, "Alpha Helices")
	sheet := mustSeries(t, sc, "Beta Sheets")
	coil := mustSeries(t, sc, "Random Coil")

	assert.Equal(t, []Point{{5, 0, 0}, {10, 0, 0}, {15, 0, 0}}, helix.Points)
	assert.Equal(t, []string{"ALA2", "ALA3", "ALA4"}, helix.HoverText)
	assert.Empty(t, sheet.Points)
	assert.Equal(t, []Point{{0, 0, 0}, {20, 0, 0}}, coil.Points)

	assert.Greater(t, helix.Line.Width, sheet.Line.Width)
	assert.Greater(t, sheet.Line.Width, coil.Line.Width)
}

func TestSecondary_MatchesAssignment(t *testing.T) {
	s := loadMini(t)
	sc, err := Build(s, ModeSecondary)
	require.NoError(t, err)

	a, err := geometry.AssignSecondaryStructure(s)
	require.NoError(t, err)

	// Only residues with a CA are drawn; MET2 of chain B has none.
	want := map[geometry.Class]int{}
	for _, r := range s.Residues() {
		if _, ok := r.AlphaCarbon(); ok && r.IsStandard() {
			want[a.Class(r)]++
		}
	}
	assert.Equal(t, want[geometry.Helix], mustSeries(t, sc, "Alpha Helices").Len())
	assert.Equal(t, want[geometry.Sheet], mustSeries(t, sc, "Beta Sheets").Len())
	assert.Equal(t, want[geometry.Coil], mustSeries(t, sc, "Random Coil").Len())
	assert.Equal(t, 4, want[geometry.Helix]+want[geometry.Sheet]+want[geometry.Coil])
}

// ─────────────────────────────────────────────────────────────────────────────
// Layout and Plotly rendering
// ─────────────────────────────────────────────────────────────────────────────

func TestNewLayout_Constants(t *testing.T) {
	l := NewLayout(ModeAtoms)
	assert.Equal(t, "ProteinScope 3D Structure - Atomic View", l.Title)
	assert.Equal(t, "X (Å)", l.Scene.XAxis.Title)
	assert.Equal(t, Eye{1.2, 1.2, 1.2}, l.Scene.Camera.Eye)
	assert.Equal(t, "cube", l.Scene.AspectMode)
	assert.Equal(t, Margin{L: 0, R: 0, B: 0, T: 30}, l.Margin)
	assert.True(t, l.ShowLegend)
}

func TestPlotly_LineSegmentsAreNullSeparated(t *testing.T) {
	sc, err := Build(caLine(t, 0, 5), ModeBackbone)
	require.NoError(t, err)

	fig := sc.Plotly()
	require.Len(t, fig.Data, 2)

	bonds := fig.Data[1]
	assert.Equal(t, "scatter3d", bonds.Type)
	require.Len(t, bonds.X, 6)
	assert.Nil(t, bonds.X[2])
	assert.Nil(t, bonds.X[5])
	assert.Equal(t, 5.0, *bonds.X[3])
	assert.Equal(t, "skip", bonds.HoverInfo)

	trace := fig.Data[0]
	require.NotNil(t, trace.Marker)
	assert.Equal(t, []string{colorSmall, colorSmall}, trace.Marker.Color)
	assert.Contains(t, trace.HoverTemplate, "%{text}")
}

func TestPlotly_JSONShape(t *testing.T) {
	sc, err := Build(caLine(t, 0, 5), ModeBackbone)
	require.NoError(t, err)

	raw, err := json.Marshal(sc.Plotly())
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Contains(t, doc, "data")
	layout := doc["layout"].(map[string]interface{})
	assert.Equal(t, "ProteinScope 3D Structure - Backbone View", layout["title"])

	data := doc["data"].([]interface{})
	bonds := data[1].(map[string]interface{})
	xs := bonds["x"].([]interface{})
	assert.Nil(t, xs[2])
}

//Personal.AI order the ending
