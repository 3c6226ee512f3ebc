package core

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/huangsam/blamescope/core/agg"
	"github.com/huangsam/blamescope/core/blame"
	"github.com/huangsam/blamescope/internal/contract"
	"github.com/huangsam/blamescope/internal/iostore"
	"github.com/huangsam/blamescope/internal/outwriter"
	"github.com/huangsam/blamescope/schema"
)

// RunScan drives the scanner over the repository and blames every
// surviving file sequentially. File-level errors are collected on the
// result instead of aborting the scan; only traversal failures propagate.
func RunScan(ctx context.Context, cfg *contract.Config, client contract.GitClient) (*schema.ScanResult, error) {
	result := &schema.ScanResult{}
	for loc, err := range ScanLocations(cfg) {
		if err != nil {
			return nil, err
		}
		file, err := blame.CreateBlameFile(ctx, client, loc)
		if err != nil {
			var fileErr *blame.FileError
			if errors.As(err, &fileErr) && !fileErr.Silent {
				result.FileErrors = append(result.FileErrors, fileErr.Error())
			}
			continue
		}
		result.Files = append(result.Files, file)
	}
	return result, nil
}

// LineBlameData tabulates every parsed record with the requested columns.
func LineBlameData(result *schema.ScanResult, columns []string) schema.TabularData {
	rows := make([][]string, 0, result.NumLines())
	for _, file := range result.Files {
		for _, line := range file.Lines {
			row := make([]string, 0, len(columns))
			for _, col := range columns {
				value, _ := line.AttributeValue(col)
				row = append(row, value)
			}
			rows = append(rows, row)
		}
	}
	return schema.TabularData{Header: blame.Titles(columns), Rows: rows}
}

// BreakdownData counts records by the ordered grouping attributes and
// flattens the nested tree into rows with count and percentage columns.
func BreakdownData(result *schema.ScanResult, groupBy []string) (schema.TabularData, error) {
	lines := result.AllLines()
	tree, err := agg.CountByNestedAttributes(lines, groupBy, nil)
	if err != nil {
		return schema.TabularData{}, err
	}
	formatter := agg.PercentFormatter(len(lines))
	return agg.TabulateNestedCounts(tree, blame.Titles(groupBy), formatter), nil
}

// ExecuteLineBlame runs the line_blame analysis end to end: scan, parse,
// tabulate, write, and optionally export to the report store.
func ExecuteLineBlame(ctx context.Context, cfg *contract.Config) error {
	client := contract.NewLocalGitClient()
	start := time.Now()

	result, err := RunScan(ctx, cfg, client)
	if err != nil {
		return err
	}
	data := LineBlameData(result, cfg.Columns)
	reportScanIssues(result)

	if cfg.Output == schema.ParquetOut {
		if err := writeParquet(ctx, cfg, client, schema.LineBlameAnalysis, result); err != nil {
			return err
		}
	} else if err := writeTabular(ctx, cfg, client, schema.LineBlameAnalysis, data); err != nil {
		return err
	}
	return exportToStore(ctx, cfg, client, schema.LineBlameAnalysis, result, start)
}

// ExecuteBreakdown runs the breakdown analysis end to end.
func ExecuteBreakdown(ctx context.Context, cfg *contract.Config) error {
	if cfg.Output == schema.ParquetOut {
		return errors.New("parquet output is only supported for the lines analysis")
	}
	client := contract.NewLocalGitClient()
	start := time.Now()

	result, err := RunScan(ctx, cfg, client)
	if err != nil {
		return err
	}
	data, err := BreakdownData(result, cfg.GroupBy)
	if err != nil {
		return err
	}
	reportScanIssues(result)

	if err := writeTabular(ctx, cfg, client, schema.BreakdownAnalysis, data); err != nil {
		return err
	}
	return exportToStore(ctx, cfg, client, schema.BreakdownAnalysis, result, start)
}

// reportScanIssues surfaces non-critical warnings and summarizes dropped
// files and lines once the scan completes. A run with parse errors still
// produces a report from the records that did parse.
func reportScanIssues(result *schema.ScanResult) {
	for _, file := range result.Files {
		for _, warning := range file.Warnings {
			contract.Warnf("%s", warning)
		}
	}
	if n := len(result.FileErrors); n > 0 {
		contract.Warnf("%d file(s) could not be blamed and were dropped:", n)
		for _, msg := range result.FileErrors {
			contract.Warnf("  %s", msg)
		}
	}
	if n := result.NumLineErrors(); n > 0 {
		contract.Warnf("%d line(s) could not be parsed and were dropped:", n)
		for _, file := range result.Files {
			for _, msg := range file.Errors {
				contract.Warnf("  %s", msg)
			}
		}
	}
}

// outputPath resolves the destination file for non-text output, generating
// `<outputdir base>-<branch>-<analysis>.<ext>` when none was provided.
func outputPath(ctx context.Context, cfg *contract.Config, client contract.GitClient, analysis schema.AnalysisSlug) string {
	if cfg.OutputFile != "" {
		return cfg.OutputFile
	}
	branch, _ := client.GetBranch(ctx, cfg.RepoPath)
	name := fmt.Sprintf("%s-%s-%s.%s", filepath.Base(cfg.OutputDir), branch, analysis, cfg.Output)
	return filepath.Join(cfg.OutputDir, name)
}

// writeTabular dispatches tabular output: text goes to stdout (or the
// explicit output file), csv and json go to an output file.
func writeTabular(ctx context.Context, cfg *contract.Config, client contract.GitClient, analysis schema.AnalysisSlug, data schema.TabularData) error {
	if cfg.Output == schema.TextOut && cfg.OutputFile == "" {
		return outwriter.WriteTabularData(nil, data, cfg)
	}
	path := outputPath(ctx, cfg, client, analysis)
	contract.Infof("Writing %d row(s) to %s", data.NumRows(), path)
	if cfg.DryRun {
		return nil
	}
	return outwriter.WriteTabularDataFile(path, data, cfg)
}

// writeParquet exports the raw blame records as a parquet file.
func writeParquet(ctx context.Context, cfg *contract.Config, client contract.GitClient, analysis schema.AnalysisSlug, result *schema.ScanResult) error {
	path := outputPath(ctx, cfg, client, analysis)
	contract.Infof("Writing to %s", path)
	if cfg.DryRun {
		return nil
	}
	return outwriter.WriteParquetLines(path, result.AllLines())
}

// exportToStore persists the run and its records when a store backend is
// configured.
func exportToStore(ctx context.Context, cfg *contract.Config, client contract.GitClient, analysis schema.AnalysisSlug, result *schema.ScanResult, start time.Time) error {
	if cfg.StoreBackend == schema.NoneBackend || cfg.DryRun {
		return nil
	}
	store, err := iostore.NewStore(cfg.StoreBackend, cfg.StoreConnect)
	if err != nil {
		return fmt.Errorf("failed to open report store: %w", err)
	}
	defer func() { _ = store.Close() }()

	branch, _ := client.GetBranch(ctx, cfg.RepoPath)
	runID, err := store.InsertRun(contract.RunInfo{
		StartTime:  start,
		EndTime:    time.Now(),
		Analysis:   string(analysis),
		RepoPath:   cfg.RepoPath,
		Branch:     branch,
		TotalFiles: len(result.Files),
		TotalLines: result.NumLines(),
	})
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	if err := store.InsertLines(runID, result.AllLines()); err != nil {
		return fmt.Errorf("failed to export blame records: %w", err)
	}
	contract.Infof("Exported %d record(s) to %s store (run %d)", result.NumLines(), cfg.StoreBackend, runID)
	return nil
}
