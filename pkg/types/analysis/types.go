// Package analysis holds the wire types of the ProteinScope analysis API,
// shared by the HTTP and gRPC servers, the Kafka messages and the Go client.
package analysis

import (
	"encoding/json"
	"strings"

	"github.com/turtacn/ProteinScope/pkg/types/common"
)

// Format selects the shape of plot_data.
type Format string

const (
	// FormatScene is the renderer-neutral scene (series + layout).
	FormatScene Format = "scene"
	// FormatPlotly is a Plotly figure (data + layout).
	FormatPlotly Format = "plotly"
)

// ParseFormat maps a request value onto a Format; anything unrecognised is
// FormatScene.
func ParseFormat(s string) Format {
	if Format(strings.ToLower(strings.TrimSpace(s))) == FormatPlotly {
		return FormatPlotly
	}
	return FormatScene
}

// AnalyzeRequest asks for one structure by PDB id.
type AnalyzeRequest struct {
	PDBID   string `json:"pdb_id"`
	VizMode string `json:"viz_mode,omitempty"`
	Format  Format `json:"format,omitempty"`
}

// ProteinInfo is the property summary of a structure.
type ProteinInfo struct {
	MolecularWeight float64        `json:"molecular_weight"`
	AtomCount       int            `json:"atom_count"`
	ResidueCount    int            `json:"residue_count"`
	UniqueResidues  int            `json:"unique_residues"`
	Charge          float64        `json:"charge"`
	ResidueTypes    []string       `json:"residue_types"`
	Composition     map[string]int `json:"composition"`
}

// SecondaryStructure counts classified standard residues per class.
type SecondaryStructure struct {
	Helix int `json:"helix"`
	Sheet int `json:"sheet"`
	Coil  int `json:"coil"`
}

// AnalyzeResponse is the result of one analysis. PlotData is null when the
// scene could not be built; SceneError then carries the reason.
type AnalyzeResponse struct {
	ID                 string             `json:"id"`
	PDBID              string             `json:"pdb_id"`
	VizMode            string             `json:"viz_mode"`
	Format             Format             `json:"format"`
	ProteinInfo        ProteinInfo        `json:"protein_info"`
	SecondaryStructure SecondaryStructure `json:"secondary_structure"`
	PlotData           json.RawMessage    `json:"plot_data"`
	SceneError         string             `json:"scene_error,omitempty"`
	Source             string             `json:"source,omitempty"`
	DurationMS         int64              `json:"duration_ms"`
	AnalyzedAt         common.Timestamp   `json:"analyzed_at"`
}

// Example is one entry of the example catalog.
type Example struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// BatchRequest enqueues several analyses.
type BatchRequest struct {
	PDBIDs  []string `json:"pdb_ids"`
	VizMode string   `json:"viz_mode,omitempty"`
}

// BatchRejection reports an id that was not enqueued.
type BatchRejection struct {
	PDBID   string `json:"pdb_id"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// BatchResponse lists the request ids of the enqueued analyses.
type BatchResponse struct {
	Accepted []RequestedMessage `json:"accepted"`
	Rejected []BatchRejection   `json:"rejected"`
}

// RequestedMessage is the payload of the analysis request topic.
type RequestedMessage struct {
	RequestID string `json:"request_id"`
	PDBID     string `json:"pdb_id"`
	VizMode   string `json:"viz_mode"`
}

// CompletedEvent is the payload of the analysis completion topic.
type CompletedEvent struct {
	common.BaseEvent
	RequestID  string             `json:"request_id,omitempty"`
	AnalysisID string             `json:"analysis_id,omitempty"`
	PDBID      string             `json:"pdb_id"`
	VizMode    string             `json:"viz_mode"`
	Success    bool               `json:"success"`
	ErrorCode  string             `json:"error_code,omitempty"`
	Error      string             `json:"error,omitempty"`
	AtomCount  int                `json:"atom_count"`
	Secondary  SecondaryStructure `json:"secondary_structure"`
	SceneError string             `json:"scene_error,omitempty"`
	DurationMS int64              `json:"duration_ms"`
}

// Record is a persisted analysis.
type Record struct {
	ID         string             `json:"id"`
	PDBID      string             `json:"pdb_id"`
	VizMode    string             `json:"viz_mode"`
	Summary    ProteinInfo        `json:"summary"`
	Secondary  SecondaryStructure `json:"secondary_structure"`
	AtomCount  int                `json:"atom_count"`
	SceneError string             `json:"scene_error,omitempty"`
	DurationMS int64              `json:"duration_ms"`
	CreatedAt  common.Timestamp   `json:"created_at"`
}

// LegacyResponse is the body of the unversioned POST /analyze route.
type LegacyResponse struct {
	PDBID       string          `json:"pdb_id"`
	ProteinInfo ProteinInfo     `json:"protein_info"`
	PlotData    json.RawMessage `json:"plot_data"`
	VizMode     string          `json:"viz_mode"`
}

// LegacyError is the error body of the unversioned routes.
type LegacyError struct {
	Error string `json:"error"`
}

//Personal.AI order the ending
