// Package structure provides the in-memory model of a macromolecular
// structure: atoms grouped into residues, residues into chains, chains into
// models. A Structure is built once, by Builder or Read, and never mutated
// afterwards; every derived view (properties, geometry, scenes) reads it.
package structure

import (
	stderrors "errors"
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/turtacn/ProteinScope/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// Coordinates
// ─────────────────────────────────────────────────────────────────────────────

// Coord is a Cartesian position in ångström.
type Coord struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// IsFinite reports whether all three components are finite numbers.
func (c Coord) IsFinite() bool {
	return !math.IsNaN(c.X) && !math.IsInf(c.X, 0) &&
		!math.IsNaN(c.Y) && !math.IsInf(c.Y, 0) &&
		!math.IsNaN(c.Z) && !math.IsInf(c.Z, 0)
}

// ─────────────────────────────────────────────────────────────────────────────
// Atom
// ─────────────────────────────────────────────────────────────────────────────

// Atom is a single located atom. Residue is a back-reference to the owning
// residue and is set by the Builder.
type Atom struct {
	Serial    int
	Name      string
	Element   string
	AltLoc    byte
	Coord     Coord
	Occupancy float64
	BFactor   float64
	Residue   *Residue
}

// ─────────────────────────────────────────────────────────────────────────────
// Residue
// ─────────────────────────────────────────────────────────────────────────────

// ResidueID identifies a residue within its chain.
type ResidueID struct {
	Number        int
	InsertionCode byte
}

func (id ResidueID) String() string {
	if id.InsertionCode == 0 || id.InsertionCode == ' ' {
		return strconv.Itoa(id.Number)
	}
	return strconv.Itoa(id.Number) + string(id.InsertionCode)
}

// Residue is an ordered group of atoms sharing one residue type code.
type Residue struct {
	ID     ResidueID
	Name   string
	Hetero bool
	Atoms  []*Atom
	Chain  *Chain

	byName map[string]*Atom
}

// Number returns the residue sequence number.
func (r *Residue) Number() int { return r.ID.Number }

// Atom looks up an atom by its unique name, e.g. "CA". Residues assembled
// outside the Builder have no index and are scanned.
func (r *Residue) Atom(name string) (*Atom, bool) {
	if r.byName == nil {
		for _, a := range r.Atoms {
			if a.Name == name {
				return a, true
			}
		}
		return nil, false
	}
	a, ok := r.byName[name]
	return a, ok
}

// AlphaCarbon returns the CA atom, the residue's backbone anchor.
func (r *Residue) AlphaCarbon() (*Atom, bool) { return r.Atom("CA") }

// IsWater reports whether the residue is a solvent water molecule.
func (r *Residue) IsWater() bool { return IsWaterName(r.Name) }

// IsStandard reports whether the residue came from polymer (ATOM) records and
// is not water. Heteroatom groups, ligands and waters are non-standard.
func (r *Residue) IsStandard() bool { return !r.Hetero && !r.IsWater() }

// Label renders the residue as type code plus number, e.g. "ALA12".
func (r *Residue) Label() string { return r.Name + r.ID.String() }

// ─────────────────────────────────────────────────────────────────────────────
// Chain / Model / Structure
// ─────────────────────────────────────────────────────────────────────────────

// Chain is an ordered list of residues.
type Chain struct {
	ID       string
	Residues []*Residue
	Model    *Model

	byID map[ResidueID]*Residue
}

// Residue looks up a residue by number and insertion code.
func (c *Chain) Residue(id ResidueID) (*Residue, bool) {
	if c.byID == nil {
		for _, r := range c.Residues {
			if r.ID == id {
				return r, true
			}
		}
		return nil, false
	}
	r, ok := c.byID[id]
	return r, ok
}

// ModelSerial returns the serial of the owning model, 0 when unset.
func (c *Chain) ModelSerial() int {
	if c.Model == nil {
		return 0
	}
	return c.Model.Serial
}

// Sequence returns the one-letter sequence of the chain's standard residues.
// Unknown types render as 'X'.
func (c *Chain) Sequence() string {
	seq := make([]byte, 0, len(c.Residues))
	for _, r := range c.Residues {
		if !r.IsStandard() {
			continue
		}
		seq = append(seq, OneLetterCode(r.Name))
	}
	return string(seq)
}

// Model is one coordinate set of the structure (NMR ensembles carry several).
type Model struct {
	Serial int
	Chains []*Chain
}

// Structure is the root of the hierarchy. Structures from Read or the
// Builder carry back-references and lookup indexes; hand-assembled ones work
// without them.
type Structure struct {
	ID     string
	Models []*Model
}

// Atoms returns every atom in model, chain, residue, atom order.
func (s *Structure) Atoms() []*Atom {
	if s == nil {
		return nil
	}
	out := make([]*Atom, 0, s.AtomCount())
	for _, r := range s.Residues() {
		out = append(out, r.Atoms...)
	}
	return out
}

// Residues returns every residue in model, chain, residue order.
func (s *Structure) Residues() []*Residue {
	if s == nil {
		return nil
	}
	var out []*Residue
	for _, m := range s.Models {
		for _, c := range m.Chains {
			out = append(out, c.Residues...)
		}
	}
	return out
}

// Chains returns every chain in model order.
func (s *Structure) Chains() []*Chain {
	if s == nil {
		return nil
	}
	var out []*Chain
	for _, m := range s.Models {
		out = append(out, m.Chains...)
	}
	return out
}

// AtomCount returns the number of atoms across all models.
func (s *Structure) AtomCount() int {
	n := 0
	for _, r := range s.Residues() {
		n += len(r.Atoms)
	}
	return n
}

// Empty reports whether the structure has no atoms.
func (s *Structure) Empty() bool { return s.AtomCount() == 0 }

// ─────────────────────────────────────────────────────────────────────────────
// Builder
// ─────────────────────────────────────────────────────────────────────────────

// AtomRecord is the flat description of one atom and its placement in the
// hierarchy, as produced by a file reader.
type AtomRecord struct {
	Model         int
	ChainID       string
	ResidueNumber int
	InsertionCode byte
	ResidueName   string
	Hetero        bool

	Serial    int
	Name      string
	Element   string
	AltLoc    byte
	Coord     Coord
	Occupancy float64
	BFactor   float64
}

// Builder assembles a Structure from atom records while enforcing the
// hierarchy invariants: atom names are unique within a residue and a residue
// number maps to one residue type within a chain.
type Builder struct {
	s      *Structure
	models map[int]*Model
	chains map[*Model]map[string]*Chain
	built  bool
}

// NewBuilder starts a structure with the given identifier.
func NewBuilder(id string) *Builder {
	return &Builder{
		s:      &Structure{ID: id},
		models: make(map[int]*Model),
		chains: make(map[*Model]map[string]*Chain),
	}
}

// Sentinel causes wrapped by AddAtom errors; match them with errors.Is.
var (
	ErrDuplicateAtom    = stderrors.New("duplicate atom name in residue")
	ErrResidueTypeClash = stderrors.New("residue number reused with a different type")
)

// AddAtom places rec in the hierarchy, creating its model, chain and residue
// on first sight.
func (b *Builder) AddAtom(rec AtomRecord) error {
	if b.built {
		return errors.Internal("structure: builder already finished")
	}
	if rec.Name == "" {
		return errors.New(errors.ErrCodeStructureParseFailed, "atom name must not be empty").
			WithDetail(fmt.Sprintf("serial=%d", rec.Serial))
	}

	m := b.model(rec.Model)
	c := b.chain(m, rec.ChainID)

	rid := ResidueID{Number: rec.ResidueNumber, InsertionCode: rec.InsertionCode}
	res, ok := c.byID[rid]
	if !ok {
		res = &Residue{
			ID:     rid,
			Name:   rec.ResidueName,
			Hetero: rec.Hetero,
			Chain:  c,
			byName: make(map[string]*Atom),
		}
		c.byID[rid] = res
		c.Residues = append(c.Residues, res)
	} else if res.Name != rec.ResidueName {
		return errors.Wrap(ErrResidueTypeClash, errors.ErrCodeStructureParseFailed, "inconsistent residue").
			WithDetail(fmt.Sprintf("chain %s residue %s: %s vs %s", c.ID, rid, res.Name, rec.ResidueName))
	}

	if _, dup := res.byName[rec.Name]; dup {
		return errors.Wrap(ErrDuplicateAtom, errors.ErrCodeStructureParseFailed, "duplicate atom").
			WithDetail(fmt.Sprintf("%s atom %s", res.Label(), rec.Name))
	}

	a := &Atom{
		Serial:    rec.Serial,
		Name:      rec.Name,
		Element:   rec.Element,
		AltLoc:    rec.AltLoc,
		Coord:     rec.Coord,
		Occupancy: rec.Occupancy,
		BFactor:   rec.BFactor,
		Residue:   res,
	}
	res.byName[rec.Name] = a
	res.Atoms = append(res.Atoms, a)
	return nil
}

// Build finishes the structure. Models are ordered by serial; chains and
// residues keep first-seen order. The builder cannot be reused.
func (b *Builder) Build() *Structure {
	b.built = true
	sort.SliceStable(b.s.Models, func(i, j int) bool {
		return b.s.Models[i].Serial < b.s.Models[j].Serial
	})
	return b.s
}

func (b *Builder) model(serial int) *Model {
	if m, ok := b.models[serial]; ok {
		return m
	}
	m := &Model{Serial: serial}
	b.models[serial] = m
	b.chains[m] = make(map[string]*Chain)
	b.s.Models = append(b.s.Models, m)
	return m
}

func (b *Builder) chain(m *Model, id string) *Chain {
	if c, ok := b.chains[m][id]; ok {
		return c
	}
	c := &Chain{ID: id, Model: m, byID: make(map[ResidueID]*Residue)}
	b.chains[m][id] = c
	m.Chains = append(m.Chains, c)
	return c
}

//Personal.AI order the ending
