package geometry

import (
	"fmt"

	"github.com/turtacn/ProteinScope/internal/domain/structure"
	"github.com/turtacn/ProteinScope/pkg/errors"
)

// Class is a coarse secondary-structure category.
type Class string

const (
	Helix Class = "helix"
	Sheet Class = "sheet"
	Coil  Class = "coil"
)

// Classes lists every class in display order.
var Classes = []Class{Helix, Sheet, Coil}

// Heuristic parameters. The two distance bands overlap on (5.5, 6.5); a
// neighbour in the overlap votes for both classes.
const (
	windowRadius = 2
	minVotes     = 2

	helixMin, helixMax = 4.5, 6.5
	sheetMin, sheetMax = 5.5, 7.5
)

// Entry is the class assigned to one residue.
type Entry struct {
	Model         int    `json:"model"`
	Chain         string `json:"chain"`
	Number        int    `json:"residue_number"`
	InsertionCode string `json:"insertion_code,omitempty"`
	Name          string `json:"residue_name"`
	Class         Class  `json:"class"`
}

// Counts tallies an assignment per class.
type Counts struct {
	Helix int `json:"helix"`
	Sheet int `json:"sheet"`
	Coil  int `json:"coil"`
}

// Assignment maps each standard residue to a class. Heteroatom residues are
// not assigned; Class reports Coil for them.
type Assignment struct {
	entries   []Entry
	byResidue map[*structure.Residue]Class
}

// Entries returns the assignment in structure order.
func (a *Assignment) Entries() []Entry {
	out := make([]Entry, len(a.entries))
	copy(out, a.entries)
	return out
}

// Len returns the number of assigned residues.
func (a *Assignment) Len() int { return len(a.entries) }

// Class returns the class of r, Coil when r was not assigned.
func (a *Assignment) Class(r *structure.Residue) Class {
	if c, ok := a.byResidue[r]; ok {
		return c
	}
	return Coil
}

// Counts tallies the assignment.
func (a *Assignment) Counts() Counts {
	var c Counts
	for _, e := range a.entries {
		switch e.Class {
		case Helix:
			c.Helix++
		case Sheet:
			c.Sheet++
		default:
			c.Coil++
		}
	}
	return c
}

// AssignSecondaryStructure labels every standard residue helix, sheet or coil
// from alpha-carbon spacing alone. This is an approximation: it uses neither
// hydrogen bonds nor backbone dihedrals and will disagree with DSSP.
//
// Within each chain, a residue with a CA looks at up to two residues either
// side that are standard and have a CA. A neighbour at distance d votes helix
// when 4.5 < d < 6.5 and sheet when 5.5 < d < 7.5. Two helix votes make a
// helix; otherwise two sheet votes make a sheet; anything else is coil.
// Standard residues without a CA are coil.
func AssignSecondaryStructure(s *structure.Structure) (*Assignment, error) {
	a := &Assignment{byResidue: make(map[*structure.Residue]Class)}
	if s == nil {
		return a, nil
	}

	for _, chain := range s.Chains() {
		anchors, err := chainAnchors(chain)
		if err != nil {
			return nil, err
		}
		for i, r := range chain.Residues {
			if !r.IsStandard() {
				continue
			}
			class := Coil
			if anchors[i] != nil {
				class = classify(anchors, i)
			}
			a.byResidue[r] = class
			a.entries = append(a.entries, Entry{
				Model:         chain.ModelSerial(),
				Chain:         chain.ID,
				Number:        r.ID.Number,
				InsertionCode: insertionCode(r.ID.InsertionCode),
				Name:          r.Name,
				Class:         class,
			})
		}
	}
	return a, nil
}

// chainAnchors returns, per residue index, the CA coordinate of eligible
// residues (standard with a CA) and nil for the rest.
func chainAnchors(chain *structure.Chain) ([]*structure.Coord, error) {
	anchors := make([]*structure.Coord, len(chain.Residues))
	for i, r := range chain.Residues {
		if !r.IsStandard() {
			continue
		}
		ca, ok := r.AlphaCarbon()
		if !ok {
			continue
		}
		if !ca.Coord.IsFinite() {
			return nil, errors.New(errors.ErrCodeNonFiniteCoordinate, "alpha carbon coordinate is not finite").
				WithDetail(fmt.Sprintf("chain %s residue %s", chain.ID, r.Label()))
		}
		c := ca.Coord
		anchors[i] = &c
	}
	return anchors, nil
}

func classify(anchors []*structure.Coord, i int) Class {
	helixVotes, sheetVotes := 0, 0
	for j := i - windowRadius; j <= i+windowRadius; j++ {
		if j == i || j < 0 || j >= len(anchors) || anchors[j] == nil {
			continue
		}
		d := Distance(*anchors[i], *anchors[j])
		if d > helixMin && d < helixMax {
			helixVotes++
		}
		if d > sheetMin && d < sheetMax {
			sheetVotes++
		}
	}
	switch {
	case helixVotes >= minVotes:
		return Helix
	case sheetVotes >= minVotes:
		return Sheet
	default:
		return Coil
	}
}

func insertionCode(c byte) string {
	if c == 0 || c == ' ' {
		return ""
	}
	return string(c)
}

//Personal.AI order the ending
