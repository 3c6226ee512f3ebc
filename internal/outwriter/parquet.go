package outwriter

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/blamescope/schema"
	"github.com/parquet-go/parquet-go"
)

// BlameLineRow is the typed parquet representation of one blame record.
type BlameLineRow struct {
	Commit      string     `parquet:"commit,snappy"`
	Contributor string     `parquet:"contributor,snappy"`
	LineNo      int32      `parquet:"line_no,snappy"`
	DateTime    *time.Time `parquet:"datetime,optional,snappy"`
	Date        string     `parquet:"date,snappy"`
	Code        string     `parquet:"code,snappy"`
	FileName    string     `parquet:"file_name,snappy"`
	FileType    string     `parquet:"file_type,snappy"`
	FilePath    string     `parquet:"file_path,snappy"`
}

// toBlameLineRow converts a blame record to its parquet row form.
func toBlameLineRow(line schema.BlameLine) BlameLineRow {
	row := BlameLineRow{
		Commit:      line.Commit,
		Contributor: line.Contributor,
		LineNo:      int32(line.LineNo),
		Date:        line.Date,
		Code:        line.Code,
		FileName:    line.FileName,
		FileType:    line.FileType,
		FilePath:    line.FilePath,
	}
	if !line.DateTime.IsZero() {
		dt := line.DateTime
		row.DateTime = &dt
	}
	return row
}

// WriteParquetLines exports blame records to a parquet file.
func WriteParquetLines(path string, lines []schema.BlameLine) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create parquet file: %w", err)
	}
	defer func() { _ = f.Close() }()

	writer := parquet.NewGenericWriter[BlameLineRow](f)
	rows := make([]BlameLineRow, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, toBlameLineRow(line))
	}
	if _, err := writer.Write(rows); err != nil {
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}
