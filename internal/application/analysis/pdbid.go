package analysis

import (
	"regexp"
	"strings"

	"github.com/turtacn/ProteinScope/pkg/errors"
)

var pdbIDPattern = regexp.MustCompile(`^[0-9][A-Z0-9]{3}$`)

// NormalizePDBID trims and upper-cases id and checks it is a four-character
// PDB accession such as 1UBQ.
func NormalizePDBID(id string) (string, error) {
	id = strings.ToUpper(strings.TrimSpace(id))
	if id == "" {
		return "", errors.New(errors.ErrCodeInvalidPDBID, "Please provide a PDB ID")
	}
	if !pdbIDPattern.MatchString(id) {
		return "", errors.New(errors.ErrCodeInvalidPDBID, "invalid PDB ID").WithDetail(id)
	}
	return id, nil
}

//Personal.AI order the ending
