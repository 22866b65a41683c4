// Package geometry classifies spatial relations in a structure: pairwise
// contacts under a distance threshold, and a coarse helix/sheet/coil
// assignment derived from alpha-carbon spacing. Functions are pure and safe
// for concurrent use on distinct or shared immutable structures.
package geometry

import (
	"fmt"
	"math"

	"github.com/turtacn/ProteinScope/internal/domain/structure"
	"github.com/turtacn/ProteinScope/pkg/errors"
)

// Distance returns the Euclidean distance between a and b in ångström.
func Distance(a, b structure.Coord) float64 {
	dx, dy, dz := a.X-b.X, a.Y-b.Y, a.Z-b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// checkFinite returns a computation error naming the first non-finite
// coordinate in coords.
func checkFinite(coords []structure.Coord) error {
	for i, c := range coords {
		if !c.IsFinite() {
			return errors.New(errors.ErrCodeNonFiniteCoordinate, "coordinate is not finite").
				WithDetail(fmt.Sprintf("index=%d coord=(%g, %g, %g)", i, c.X, c.Y, c.Z))
		}
	}
	return nil
}

//Personal.AI order the ending
