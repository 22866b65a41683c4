package structure

import (
	"bufio"
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/turtacn/ProteinScope/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// PDB reader
//
// Fixed-column ATOM/HETATM layout (0-based, half-open):
//
//	 0:6  record    6:11 serial   12:16 name    16 altLoc   17:20 resName
//	21    chain    22:26 resSeq   26    iCode  30:38 x      38:46 y
//	46:54 z        54:60 occ      60:66 bfac   76:78 element
// ─────────────────────────────────────────────────────────────────────────────

const (
	pdbLineWidth  = 80
	minAtomLength = 54
	maxLineBytes  = 1 << 20
)

// ReadOption configures Read.
type ReadOption func(*readOptions)

type readOptions struct {
	maxAtoms       int
	firstModelOnly bool
}

// WithMaxAtoms aborts reading with a too-large input error once more than n
// atoms have been accepted. Zero disables the limit.
func WithMaxAtoms(n int) ReadOption {
	return func(o *readOptions) { o.maxAtoms = n }
}

// WithFirstModelOnly stops after the first MODEL/ENDMDL block.
func WithFirstModelOnly() ReadOption {
	return func(o *readOptions) { o.firstModelOnly = true }
}

// Read parses PDB-format text into a Structure. Alternate locations after the
// first, and atoms that would break the hierarchy invariants, are dropped.
// Input without any ATOM/HETATM record yields an empty Structure.
func Read(r io.Reader, id string, opts ...ReadOption) (*Structure, error) {
	o := &readOptions{}
	for _, opt := range opts {
		opt(o)
	}

	b := NewBuilder(id)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	model, accepted, lineNo := 0, 0, 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		record := strings.TrimSpace(field(line, 0, 6))

		switch record {
		case "MODEL":
			n, err := strconv.Atoi(strings.TrimSpace(field(line, 6, 20)))
			if err != nil {
				return nil, parseError(lineNo, "invalid MODEL serial", err)
			}
			model = n
			continue
		case "ENDMDL":
			if o.firstModelOnly {
				return b.Build(), nil
			}
			continue
		case "END":
			return b.Build(), nil
		case "ATOM", "HETATM":
		default:
			continue
		}

		rec, err := parseAtomLine(line, lineNo)
		if err != nil {
			return nil, err
		}
		rec.Model = model
		rec.Hetero = record == "HETATM"
		if rec.Element == "" {
			rec.Element = inferElement(field(line, 12, 16), rec.Hetero)
		}

		if err := b.AddAtom(rec); err != nil {
			if stderrors.Is(err, ErrDuplicateAtom) || stderrors.Is(err, ErrResidueTypeClash) {
				continue
			}
			return nil, err
		}
		accepted++
		if o.maxAtoms > 0 && accepted > o.maxAtoms {
			return nil, errors.Newf(errors.ErrCodeStructureTooLarge,
				"structure %s exceeds %d atoms", id, o.maxAtoms)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStructureParseFailed, "failed to read structure text").
			WithDetail(fmt.Sprintf("line %d", lineNo+1))
	}
	return b.Build(), nil
}

// ReadBytes is Read over an in-memory buffer.
func ReadBytes(data []byte, id string, opts ...ReadOption) (*Structure, error) {
	return Read(bytes.NewReader(data), id, opts...)
}

func parseAtomLine(line string, lineNo int) (AtomRecord, error) {
	if len(strings.TrimRight(line, " \r")) < minAtomLength {
		return AtomRecord{}, parseError(lineNo, "truncated atom record", nil)
	}

	var rec AtomRecord
	// Serials overflow five columns in very large entries; they are informative only.
	rec.Serial, _ = strconv.Atoi(strings.TrimSpace(field(line, 6, 11)))
	rec.Name = strings.TrimSpace(field(line, 12, 16))
	rec.AltLoc = column(line, 16)
	rec.ResidueName = strings.ToUpper(strings.TrimSpace(field(line, 17, 20)))
	rec.ChainID = strings.TrimSpace(field(line, 21, 22))
	rec.InsertionCode = column(line, 26)

	seq, err := strconv.Atoi(strings.TrimSpace(field(line, 22, 26)))
	if err != nil {
		return AtomRecord{}, parseError(lineNo, "invalid residue number", err)
	}
	rec.ResidueNumber = seq

	if rec.Coord.X, err = parseFloat(field(line, 30, 38)); err != nil {
		return AtomRecord{}, parseError(lineNo, "invalid x coordinate", err)
	}
	if rec.Coord.Y, err = parseFloat(field(line, 38, 46)); err != nil {
		return AtomRecord{}, parseError(lineNo, "invalid y coordinate", err)
	}
	if rec.Coord.Z, err = parseFloat(field(line, 46, 54)); err != nil {
		return AtomRecord{}, parseError(lineNo, "invalid z coordinate", err)
	}
	if !rec.Coord.IsFinite() {
		return AtomRecord{}, parseError(lineNo, "non-finite coordinate", nil)
	}

	rec.Occupancy, _ = parseFloat(field(line, 54, 60))
	rec.BFactor, _ = parseFloat(field(line, 60, 66))
	rec.Element = strings.ToUpper(strings.TrimSpace(field(line, 76, 78)))
	return rec, nil
}

// twoLetterElements lists symbols that appear left-justified in the atom
// name field of heteroatom records.
var twoLetterElements = map[string]struct{}{
	"FE": {}, "ZN": {}, "MG": {}, "MN": {}, "CU": {}, "CO": {}, "NI": {},
	"CA": {}, "NA": {}, "CL": {}, "BR": {}, "SE": {}, "CD": {}, "HG": {},
}

// inferElement derives an element symbol from the raw four-column atom name
// when the element columns are blank. Two-letter symbols are only accepted
// for heteroatoms whose name starts in column 13, which keeps " CA " (alpha
// carbon) apart from "CA  " (calcium).
func inferElement(rawName string, hetero bool) string {
	name := strings.ToUpper(strings.TrimSpace(rawName))
	if name == "" {
		return ""
	}
	if hetero && len(rawName) == 4 && rawName[0] != ' ' && !isDigit(rawName[0]) && len(name) >= 2 {
		if _, ok := twoLetterElements[name[:2]]; ok {
			return name[:2]
		}
	}
	for i := 0; i < len(name); i++ {
		if name[i] >= 'A' && name[i] <= 'Z' {
			return string(name[i])
		}
	}
	return ""
}

func parseError(lineNo int, msg string, cause error) error {
	detail := fmt.Sprintf("line %d", lineNo)
	if cause != nil {
		return errors.Wrap(cause, errors.ErrCodeStructureParseFailed, msg).WithDetail(detail)
	}
	return errors.New(errors.ErrCodeStructureParseFailed, msg).WithDetail(detail)
}

// field returns line[from:to], tolerating short lines.
func field(line string, from, to int) string {
	if from >= len(line) {
		return ""
	}
	if to > len(line) {
		to = len(line)
	}
	return line[from:to]
}

// column returns the byte at i, or 0 when blank or past the end of the line.
func column(line string, i int) byte {
	if i >= len(line) || i >= pdbLineWidth || line[i] == ' ' {
		return 0
	}
	return line[i]
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

//Personal.AI order the ending
