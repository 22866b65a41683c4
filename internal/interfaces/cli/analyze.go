package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/turtacn/ProteinScope/internal/application/analysis"
	"github.com/turtacn/ProteinScope/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ProteinScope/pkg/client"
	"github.com/turtacn/ProteinScope/pkg/errors"
	types "github.com/turtacn/ProteinScope/pkg/types/analysis"
)

type analyzeOptions struct {
	file     string
	mode     string
	format   string
	sceneOut string
}

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd(deps CommandDependencies) *cobra.Command {
	opts := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze [PDB_ID]",
		Short: "Analyze a protein structure",
		Long: `Fetch a structure from the RCSB archive (or read it with --file), summarize its
properties and secondary structure, and optionally write the visualization scene.

With --file the positional argument names the upload instead of selecting a
download. Use --file - to read PDB text from stdin.`,
		Example: `  proteinscope analyze 1CRN
  proteinscope analyze 4HHB --mode surface --scene-out hemoglobin.json
  proteinscope analyze --file model.pdb MYMODEL -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args, opts, deps)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.file, "file", "f", "", "read PDB text from a file instead of downloading")
	f.StringVarP(&opts.mode, "mode", "m", "", "visualization mode: backbone|surface|atoms|secondary (default from config)")
	f.StringVar(&opts.format, "format", string(types.FormatScene), "scene format: scene|plotly")
	f.StringVar(&opts.sceneOut, "scene-out", "", "write plot_data to this file")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string, opts *analyzeOptions, deps CommandDependencies) error {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return err
	}

	var id string
	if len(args) == 1 {
		id = strings.ToUpper(strings.TrimSpace(args[0]))
	}
	if id == "" && opts.file == "" {
		return errors.New(errors.ErrCodeInvalidPDBID, "Please provide a PDB ID")
	}
	format := types.ParseFormat(opts.format)

	var data []byte
	if opts.file != "" {
		if data, err = readStructureFile(cmd, opts.file); err != nil {
			return err
		}
	}

	ctx, cancel := commandContext(cmd, cliCtx)
	defer cancel()

	logger := cliCtx.Logger.Named("cli")
	logger.Debug("Starting analysis",
		logging.String(logging.FieldPDBID, id),
		logging.String("file", opts.file),
		logging.String(logging.FieldMode, opts.mode),
		logging.Bool("remote", cliCtx.Client != nil))

	var resp *types.AnalyzeResponse
	if cliCtx.Client != nil {
		resp, err = analyzeRemote(ctx, cliCtx.Client, id, data, opts, format)
	} else {
		resp, err = analyzeLocal(ctx, cliCtx, deps, id, data, opts, format)
	}
	if err != nil {
		return err
	}

	if opts.sceneOut != "" {
		if err := writeScene(opts.sceneOut, resp.PlotData); err != nil {
			return err
		}
	}

	return PrintResult(cmd, resp, func() error {
		printAnalysis(cmd.OutOrStdout(), resp, opts.sceneOut, cliCtx.Verbose)
		return nil
	})
}

func readStructureFile(cmd *cobra.Command, path string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStructureEmpty, "failed to read structure file").WithDetail(path)
	}
	return data, nil
}

func analyzeRemote(ctx context.Context, c *client.Client, id string, data []byte, opts *analyzeOptions, format types.Format) (*types.AnalyzeResponse, error) {
	if opts.file != "" {
		return c.Analyses().Upload(ctx, &client.UploadRequest{ID: id, VizMode: opts.mode, Format: format, Data: data})
	}
	return c.Analyses().Analyze(ctx, &types.AnalyzeRequest{PDBID: id, VizMode: opts.mode, Format: format})
}

func analyzeLocal(ctx context.Context, cliCtx *CLIContext, deps CommandDependencies, id string, data []byte, opts *analyzeOptions, format types.Format) (*types.AnalyzeResponse, error) {
	if deps.NewService == nil {
		return nil, errors.New(errors.ErrCodeFeatureDisabled, "in-process analysis is not available; use --server")
	}
	svc, cleanup, err := deps.NewService(ctx, cliCtx.Config, cliCtx.Logger)
	if err != nil {
		return nil, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	if opts.file != "" {
		return svc.AnalyzeText(ctx, &analysis.TextInput{ID: id, Data: data, VizMode: opts.mode, Format: format})
	}
	return svc.Analyze(ctx, &types.AnalyzeRequest{PDBID: id, VizMode: opts.mode, Format: format})
}

// writeScene stores plot_data indented. A missing scene is reported, not
// written.
func writeScene(path string, plot json.RawMessage) error {
	if len(plot) == 0 || bytes.Equal(plot, []byte("null")) {
		return errors.New(errors.ErrCodeSceneUnavailable, "no scene to write")
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, plot, "", "  "); err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "scene is not valid JSON")
	}
	buf.WriteByte('\n')
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write scene to %s: %w", path, err)
	}
	return nil
}

func printAnalysis(w io.Writer, resp *types.AnalyzeResponse, sceneOut string, verbose bool) {
	info := resp.ProteinInfo
	ss := resp.SecondaryStructure

	fmt.Fprintf(w, "PDB ID:            %s\n", resp.PDBID)
	fmt.Fprintf(w, "Mode:              %s\n", resp.VizMode)
	fmt.Fprintf(w, "Atoms:             %d\n", info.AtomCount)
	fmt.Fprintf(w, "Residues:          %d (%d unique)\n", info.ResidueCount, info.UniqueResidues)
	fmt.Fprintf(w, "Molecular weight:  %.2f Da\n", info.MolecularWeight)
	fmt.Fprintf(w, "Charge:            %+.1f\n", info.Charge)
	fmt.Fprintf(w, "Secondary:         helix %d, sheet %d, coil %d\n", ss.Helix, ss.Sheet, ss.Coil)
	if resp.Source != "" {
		fmt.Fprintf(w, "Source:            %s\n", resp.Source)
	}
	fmt.Fprintf(w, "Duration:          %dms\n", resp.DurationMS)

	switch {
	case resp.SceneError != "":
		fmt.Fprintf(w, "Scene:             unavailable (%s)\n", resp.SceneError)
	case sceneOut != "":
		fmt.Fprintf(w, "Scene:             written to %s\n", sceneOut)
	}

	if !verbose || len(info.Composition) == 0 {
		return
	}
	names := make([]string, 0, len(info.Composition))
	for name := range info.Composition {
		names = append(names, name)
	}
	sort.Strings(names)
	rows := make([][]string, 0, len(names))
	for _, name := range names {
		rows = append(rows, []string{name, strconv.Itoa(info.Composition[name])})
	}
	fmt.Fprintln(w)
	fmt.Fprint(w, FormatTable([]string{"RESIDUE", "COUNT"}, rows))
}

//Personal.AI order the ending
