package geometry

import (
	"fmt"
	"math"
	"sort"

	"github.com/turtacn/ProteinScope/internal/domain/structure"
	"github.com/turtacn/ProteinScope/pkg/errors"
)

// Standard contact thresholds in ångström.
const (
	// CovalentThreshold approximates a bonded pair.
	CovalentThreshold = 2.0
	// ProximityThreshold approximates a close, surface-level neighbour.
	ProximityThreshold = 3.0
)

// Pair is an unordered index pair with I < J.
type Pair struct {
	I, J int
}

// PairwiseContacts returns every pair of coordinates strictly closer than
// threshold, ordered by (I, J). Points are bucketed into a uniform grid whose
// cell edge equals the threshold, so each point only visits the 27 cells
// around it.
func PairwiseContacts(coords []structure.Coord, threshold float64) ([]Pair, error) {
	if threshold <= 0 || math.IsNaN(threshold) || math.IsInf(threshold, 0) {
		return nil, errors.New(errors.ErrCodeInvalidThreshold, "contact threshold must be a positive finite distance").
			WithDetail(fmt.Sprintf("threshold=%g", threshold))
	}
	if err := checkFinite(coords); err != nil {
		return nil, err
	}
	if len(coords) < 2 {
		return []Pair{}, nil
	}

	g := newGrid(coords, threshold)
	pairs := make([]Pair, 0, len(coords))
	var near []int
	for i, c := range coords {
		near = g.neighbours(c, near[:0])
		start := len(pairs)
		for _, j := range near {
			if j <= i {
				continue
			}
			if Distance(c, coords[j]) < threshold {
				pairs = append(pairs, Pair{I: i, J: j})
			}
		}
		// Cells are visited in grid order; restore index order within i.
		row := pairs[start:]
		sort.Slice(row, func(a, b int) bool { return row[a].J < row[b].J })
	}
	return pairs, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// grid
// ─────────────────────────────────────────────────────────────────────────────

type cellKey struct {
	x, y, z int64
}

// grid is a sparse uniform spatial hash over point indices.
type grid struct {
	cell  float64
	cells map[cellKey][]int
}

func newGrid(coords []structure.Coord, cell float64) *grid {
	g := &grid{cell: cell, cells: make(map[cellKey][]int, len(coords))}
	for i, c := range coords {
		k := g.key(c)
		g.cells[k] = append(g.cells[k], i)
	}
	return g
}

func (g *grid) key(c structure.Coord) cellKey {
	return cellKey{
		x: int64(math.Floor(c.X / g.cell)),
		y: int64(math.Floor(c.Y / g.cell)),
		z: int64(math.Floor(c.Z / g.cell)),
	}
}

// neighbours appends to dst the indices stored in the 3×3×3 block of cells
// centred on c's cell.
func (g *grid) neighbours(c structure.Coord, dst []int) []int {
	k := g.key(c)
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			for dz := int64(-1); dz <= 1; dz++ {
				dst = append(dst, g.cells[cellKey{k.x + dx, k.y + dy, k.z + dz}]...)
			}
		}
	}
	return dst
}

//Personal.AI order the ending
