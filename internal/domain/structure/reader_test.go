package structure

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ProteinScope/pkg/errors"
)

func readFixture(t *testing.T, name string, opts ...ReadOption) *Structure {
	t.Helper()
	f, err := os.Open(filepath.Join("testdata", name))
	require.NoError(t, err)
	defer f.Close()

	s, err := Read(f, strings.TrimSuffix(name, ".pdb"), opts...)
	require.NoError(t, err)
	return s
}

func TestRead_Hierarchy(t *testing.T) {
	s := readFixture(t, "mini.pdb")

	assert.Equal(t, "mini", s.ID)
	require.Len(t, s.Models, 1)
	require.Len(t, s.Models[0].Chains, 2)

	chainA := s.Models[0].Chains[0]
	assert.Equal(t, "A", chainA.ID)
	names := make([]string, 0, len(chainA.Residues))
	for _, r := range chainA.Residues {
		names = append(names, r.Label())
	}
	assert.Equal(t, []string{"ALA1", "GLY2", "LYS3", "ZN101", "HOH201", "HOH202"}, names)

	assert.Equal(t, 20, s.AtomCount())
	assert.Len(t, s.Residues(), 8)
	assert.Len(t, s.Chains(), 2)
}

func TestRead_AtomFields(t *testing.T) {
	s := readFixture(t, "mini.pdb")
	ala, ok := s.Models[0].Chains[0].Residue(ResidueID{Number: 1})
	require.True(t, ok)

	ca, ok := ala.AlphaCarbon()
	require.True(t, ok)
	assert.Equal(t, 2, ca.Serial)
	assert.Equal(t, "C", ca.Element)
	assert.InDelta(t, 1.458, ca.Coord.X, 1e-9)
	assert.InDelta(t, 1.0, ca.Occupancy, 1e-9)
	assert.InDelta(t, 10.0, ca.BFactor, 1e-9)
	assert.Same(t, ala, ca.Residue)
	assert.Same(t, s.Models[0].Chains[0], ala.Chain)
}

func TestRead_KeepsFirstAltLoc(t *testing.T) {
	s := readFixture(t, "mini.pdb")
	lys, ok := s.Models[0].Chains[0].Residue(ResidueID{Number: 3})
	require.True(t, ok)

	nz, ok := lys.Atom("NZ")
	require.True(t, ok)
	assert.Equal(t, byte('A'), nz.AltLoc)
	assert.InDelta(t, 9.0, nz.Coord.X, 1e-9)
	assert.Len(t, lys.Atoms, 5)
}

func TestRead_HeteroAndWaterFlags(t *testing.T) {
	s := readFixture(t, "mini.pdb")
	standard := 0
	for _, r := range s.Residues() {
		if r.IsStandard() {
			standard++
		}
	}
	assert.Equal(t, 5, standard)

	zn, ok := s.Models[0].Chains[0].Residue(ResidueID{Number: 101})
	require.True(t, ok)
	assert.True(t, zn.Hetero)
	assert.False(t, zn.IsWater())
	assert.False(t, zn.IsStandard())
	assert.Equal(t, "ZN", zn.Atoms[0].Element, "element inferred from left-justified name")

	hoh, ok := s.Models[0].Chains[0].Residue(ResidueID{Number: 202})
	require.True(t, ok)
	assert.True(t, hoh.IsWater())
	assert.Equal(t, "O", hoh.Atoms[0].Element, "explicit element column wins over name")
}

func TestRead_Models(t *testing.T) {
	s := readFixture(t, "models.pdb")
	require.Len(t, s.Models, 2)
	assert.Equal(t, 1, s.Models[0].Serial)
	assert.Equal(t, 2, s.Models[1].Serial)
	assert.Equal(t, 4, s.AtomCount())

	first := readFixture(t, "models.pdb", WithFirstModelOnly())
	require.Len(t, first.Models, 1)
	assert.Equal(t, 2, first.AtomCount())
}

func TestRead_MaxAtoms(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "mini.pdb"))
	require.NoError(t, err)

	_, err = ReadBytes(data, "mini", WithMaxAtoms(10))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeStructureTooLarge))
	assert.True(t, errors.IsInputError(err))

	s, err := ReadBytes(data, "mini", WithMaxAtoms(20))
	require.NoError(t, err)
	assert.Equal(t, 20, s.AtomCount())
}

func TestRead_EmptyInput(t *testing.T) {
	s, err := Read(strings.NewReader(""), "EMPT")
	require.NoError(t, err)
	assert.True(t, s.Empty())
	assert.Empty(t, s.Models)

	s, err = Read(strings.NewReader("HEADER    NOTHING HERE\nREMARK 2\n"), "EMPT")
	require.NoError(t, err)
	assert.Equal(t, 0, s.AtomCount())
}

func TestRead_MalformedRecords(t *testing.T) {
	cases := map[string]string{
		"truncated":   "ATOM      1  N   ALA A   1       0.000   0.000",
		"bad x":       "ATOM      1  N   ALA A   1       abcde   0.000   0.000  1.00 10.00           N",
		"bad resseq":  "ATOM      1  N   ALA A   X       0.000   0.000   0.000  1.00 10.00           N",
		"nan z":       "ATOM      1  N   ALA A   1       0.000   0.000     NaN  1.00 10.00           N",
		"bad model":   "MODEL     abc",
	}
	for name, text := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Read(strings.NewReader(text+"\n"), "BAD1")
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrCodeStructureParseFailed), err.Error())
			assert.Contains(t, err.Error(), "line 1")
		})
	}
}

func TestRead_StopsAtEnd(t *testing.T) {
	text := "ATOM      1  CA  GLY A   1       0.000   0.000   0.000  1.00 10.00           C\n" +
		"END\n" +
		"ATOM      2  CA  GLY A   2       3.800   0.000   0.000  1.00 10.00           C\n"
	s, err := Read(strings.NewReader(text), "END1")
	require.NoError(t, err)
	assert.Equal(t, 1, s.AtomCount())
}

func TestInferElement(t *testing.T) {
	cases := []struct {
		raw    string
		hetero bool
		want   string
	}{
		{" CA ", false, "C"},
		{"CA  ", true, "CA"},
		{"FE  ", true, "FE"},
		{" N  ", false, "N"},
		{"1HB ", false, "H"},
		{"CL1 ", true, "CL"},
		{"C1  ", true, "C"},
		{"    ", false, ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, inferElement(tc.raw, tc.hetero), "%q hetero=%v", tc.raw, tc.hetero)
	}
}

//Personal.AI order the ending
