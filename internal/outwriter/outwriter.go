// Package outwriter writes tabular analysis results to a terminal table,
// CSV, JSON or Parquet.
package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/huangsam/blamescope/internal/contract"
	"github.com/huangsam/blamescope/schema"
	"github.com/olekukonko/tablewriter"
)

// WriteTabularData outputs the tabular result, dispatching on the output
// format configured. A nil writer means stdout.
func WriteTabularData(w io.Writer, data schema.TabularData, cfg *contract.Config) error {
	if w == nil {
		w = os.Stdout
	}
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeJSONResults(w, data); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		if err := writeCSVResults(csvWriter, data); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeTable(w, data, cfg)
	}
	return nil
}

// WriteTabularDataFile writes the tabular result to the given file path.
func WriteTabularDataFile(path string, data schema.TabularData, cfg *contract.Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create output file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return WriteTabularData(f, data, cfg)
}

// writeTable renders the result as a terminal table.
func writeTable(w io.Writer, data schema.TabularData, cfg *contract.Config) error {
	header := data.Header
	if cfg.UseColors {
		cyan := color.New(color.FgCyan).SprintFunc()
		colored := make([]string, len(header))
		for i, h := range header {
			colored[i] = cyan(h)
		}
		header = colored
	}

	table := tablewriter.NewWriter(w)
	defer func() { _ = table.Close() }()
	table.Header(header)
	if err := table.Bulk(data.Rows); err != nil {
		return err
	}
	return table.Render()
}

// writeCSVResults writes the result in CSV format.
func writeCSVResults(w *csv.Writer, data schema.TabularData) error {
	if err := w.Write(data.Header); err != nil {
		return err
	}
	return w.WriteAll(data.Rows)
}

// writeJSONResults writes the result as an indented JSON document.
func writeJSONResults(w io.Writer, data schema.TabularData) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
