package testutil

import (
	"fmt"
	"strings"
)

// atomLine renders one fixed-column PDB coordinate record.
func atomLine(record string, serial int, name, resName, chain string, resSeq int, x, y, z float64, element string) string {
	return fmt.Sprintf("%-6s%5d %-4s %3s %1s%4d    %8.3f%8.3f%8.3f%6.2f%6.2f          %2s",
		record, serial, name, resName, chain, resSeq, x, y, z, 1.0, 10.0, element)
}

// HelixPDB returns five ALA residues whose alpha carbons sit 5 Å apart on a
// line, so residues 2-4 classify as helix and 1 and 5 as coil. Each residue
// has N, CA, C and O atoms (20 atoms in total).
func HelixPDB() []byte {
	var b strings.Builder
	b.WriteString("HEADER    SYNTHETIC HELIX\n")
	serial := 1
	for i := 0; i < 5; i++ {
		x := float64(i) * 5
		for _, a := range []struct {
			name, el string
			dx, dy   float64
		}{
			{" N  ", "N", -1.0, 0.8},
			{" CA ", "C", 0, 0},
			{" C  ", "C", 1.0, 0.8},
			{" O  ", "O", 1.0, 2.0},
		} {
			b.WriteString(atomLine("ATOM", serial, a.name, "ALA", "A", i+1, x+a.dx, a.dy, 0, a.el))
			b.WriteByte('\n')
			serial++
		}
	}
	b.WriteString("END\n")
	return []byte(b.String())
}

// LigandPDB returns a structure holding only a zinc ion and one water.
func LigandPDB() []byte {
	return []byte(strings.Join([]string{
		atomLine("HETATM", 1, "ZN  ", " ZN", "A", 101, 0, 0, 0, "ZN"),
		atomLine("HETATM", 2, " O  ", "HOH", "A", 201, 3, 0, 0, "O"),
		"END",
	}, "\n") + "\n")
}

//Personal.AI order the ending
