// Package main provides the CLI entry point for qpcrtab.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hjdietz/qpcrtab-go/pkg/qpcrtab"
	"github.com/hjdietz/qpcrtab-go/pkg/qpcrtab/analysis"
	"github.com/hjdietz/qpcrtab-go/pkg/qpcrtab/models"
	"github.com/hjdietz/qpcrtab-go/pkg/qpcrtab/output"
)

var (
	sheet        string
	allSheets    bool
	multi        bool
	assay        string
	pattern      string
	col          int
	idLabel      string
	ctLabel      string
	decorator    bool
	decoratorKey string
	kind         string
	assayCol     string
	idCol        string
	ctCol        string
	replicates   int
	names        []string
	transpose    bool

	outputPath string
	pretty     bool
	saveDir    string

	anchor string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "qpcrtab",
		Short: "Extract and analyse qPCR Ct datasets from CSV and Excel files",
		Long: `qpcrtab reads cycle-threshold (Ct) datasets out of regular and
irregular CSV/Excel datafiles, including multi-assay sheets and
vertical/horizontal big tables, and runs Delta-Ct analysis.`,
	}

	rootCmd.AddCommand(newReadCmd(), newAnalyseCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addReadFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&sheet, "sheet", "", "Worksheet name for Excel files (default: first sheet)")
	cmd.Flags().BoolVar(&allSheets, "all-sheets", false, "Read all worksheets of a workbook")
	cmd.Flags().BoolVar(&multi, "multi", false, "Extract all datasets, partitioned by role")
	cmd.Flags().StringVar(&assay, "assay", "", "Select a single dataset by name")
	cmd.Flags().StringVar(&pattern, "pattern", "Rotor-Gene", "Assay header pattern preset or raw regex")
	cmd.Flags().IntVar(&col, "col", 0, "Column to scan for assay headers")
	cmd.Flags().StringVar(&idLabel, "id-label", "Name", "Replicate identifier column label")
	cmd.Flags().StringVar(&ctLabel, "ct-label", "Ct", "Ct value column label")
	cmd.Flags().BoolVar(&decorator, "decorator", false, "Use decorator-anchored header discovery")
	cmd.Flags().StringVar(&decoratorKey, "decorator-key", "", "Restrict decorator discovery to one key")
	cmd.Flags().StringVar(&kind, "kind", "", "Big table kind: vertical or horizontal")
	cmd.Flags().StringVar(&assayCol, "assay-col", "", "Assay column label (vertical big tables)")
	cmd.Flags().StringVar(&idCol, "id-col", "", "Identifier column label (big tables)")
	cmd.Flags().StringVar(&ctCol, "ct-col", "", "Ct column label (vertical big tables)")
	cmd.Flags().IntVar(&replicates, "replicates", 0, "Replicate group width (horizontal big tables)")
	cmd.Flags().StringSliceVar(&names, "names", nil, "Group names for horizontal big tables")
	cmd.Flags().BoolVar(&transpose, "transpose", false, "Swap rows and columns before header location")
}

func buildOptions() (qpcrtab.Options, error) {
	opts := qpcrtab.DefaultOptions()
	opts.Sheet = sheet
	opts.AssayPattern = pattern
	opts.Col = col
	opts.IDLabel = idLabel
	opts.CtLabel = ctLabel
	opts.Assay = assay
	opts.Decorator = decorator
	opts.DecoratorKey = decoratorKey
	opts.AssayCol = assayCol
	opts.IDCol = idCol
	opts.CtCol = ctCol
	opts.Replicates = replicates
	opts.Names = names
	opts.Transpose = transpose

	switch kind {
	case "":
	case string(models.LayoutVertical):
		opts.Kind = models.LayoutVertical
	case string(models.LayoutHorizontal):
		opts.Kind = models.LayoutHorizontal
	default:
		return opts, fmt.Errorf("invalid kind: %s (must be vertical or horizontal)", kind)
	}
	return opts, nil
}

func newReadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "read [datafile]",
		Short: "Extract datasets and output them as JSON or CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  runRead,
	}
	addReadFlags(cmd)
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	cmd.Flags().StringVar(&saveDir, "save-dir", "", "Directory for per-assay CSV files")
	return cmd
}

func runRead(cmd *cobra.Command, args []string) error {
	opts, err := buildOptions()
	if err != nil {
		return err
	}

	var payload any
	var datasets []models.Dataset
	if multi || allSheets || opts.Kind != "" {
		part, err := readPartition(args[0], opts)
		if err != nil {
			return err
		}
		payload = part
		datasets = append(append(datasets, part.Assays...), part.Normalisers...)
	} else {
		ds, err := qpcrtab.Read(args[0], opts)
		if err != nil {
			return err
		}
		payload = ds
		datasets = []models.Dataset{ds}
	}

	if saveDir != "" {
		if err := output.SaveDatasets(saveDir, datasets); err != nil {
			return fmt.Errorf("failed to save assay files: %w", err)
		}
	}

	jsonData, err := output.ToJSON(payload, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	if outputPath != "" {
		return os.WriteFile(outputPath, jsonData, 0644)
	}
	fmt.Println(string(jsonData))
	return nil
}

func readPartition(path string, opts qpcrtab.Options) (models.Partition, error) {
	if allSheets {
		return qpcrtab.ReadAllSheets(path, opts)
	}
	return qpcrtab.ReadMulti(path, opts)
}

func newAnalyseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyse [datafile]",
		Short: "Extract datasets, compute Delta-Ct and normalize against the file's normalizers",
		Args:  cobra.ExactArgs(1),
		RunE:  runAnalyse,
	}
	addReadFlags(cmd)
	cmd.Flags().StringVar(&anchor, "anchor", "first", "Delta-Ct anchor: first, mean, or a fixed Ct value")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Results CSV path (default: stdout)")
	return cmd
}

func runAnalyse(cmd *cobra.Command, args []string) error {
	opts, err := buildOptions()
	if err != nil {
		return err
	}

	var part models.Partition
	if allSheets {
		part, err = qpcrtab.ReadAllSheets(args[0], opts)
	} else {
		part, err = qpcrtab.ReadMulti(args[0], opts)
	}
	if err != nil {
		return err
	}
	if len(part.Normalisers) == 0 {
		return fmt.Errorf("no normalizer datasets found in %s; decorate one with @qpcr:normaliser", args[0])
	}

	analyser := analysis.NewAnalyser()
	switch anchor {
	case "first":
	case "mean":
		analyser.Anchor = analysis.Anchor{Kind: analysis.AnchorMean}
	default:
		v, err := strconv.ParseFloat(anchor, 64)
		if err != nil {
			return fmt.Errorf("invalid anchor: %s (must be first, mean, or a number)", anchor)
		}
		analyser.Anchor = analysis.Anchor{Kind: analysis.AnchorValue, Value: v}
	}

	deltas := func(datasets []models.Dataset) ([]analysis.Result, error) {
		results := make([]analysis.Result, 0, len(datasets))
		for _, d := range datasets {
			res, err := analyser.DeltaCt(d)
			if err != nil {
				return nil, err
			}
			results = append(results, res)
		}
		return results, nil
	}

	assayResults, err := deltas(part.Assays)
	if err != nil {
		return err
	}
	normResults, err := deltas(part.Normalisers)
	if err != nil {
		return err
	}

	normalized, err := analysis.Normalise(assayResults, normResults)
	if err != nil {
		return err
	}

	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return err
		}
		defer f.Close()
		return output.WriteResultsCSV(f, normalized)
	}
	return output.WriteResultsCSV(os.Stdout, normalized)
}
