package core

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/blamescope/internal/contract"
	"github.com/huangsam/blamescope/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func makeScanResult() *schema.ScanResult {
	ts := time.Date(2023, time.January, 5, 10, 20, 30, 0, time.UTC)
	return &schema.ScanResult{
		Files: []*schema.BlameFile{
			{
				Context: schema.LocationContext{FileName: "app.py"},
				Lines: []schema.BlameLine{
					{Commit: "abc123", Contributor: "Alice", LineNo: 1, DateTime: ts,
						Date: "2023-01-05", Code: "import os", FileName: "app.py",
						FileType: "py", FilePath: "app.py"},
					{Commit: "def456", Contributor: "Bob", LineNo: 2,
						Code: "main()", FileName: "app.py", FileType: "py", FilePath: "app.py"},
				},
			},
		},
	}
}

func TestRunScan(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, "app.py")
	writeTestFile(t, root, "broken.py")

	client := &contract.MockGitClient{}
	client.On("Blame", mock.Anything, root, filepath.Join(root, "app.py")).
		Return([]byte("abc123 (Alice 2023-01-05 10:20:30 -0500 1) import os\n"), nil)
	client.On("Blame", mock.Anything, root, filepath.Join(root, "broken.py")).
		Return([]byte(nil), assert.AnError)

	cfg := &contract.Config{RepoPath: root}
	result, err := RunScan(context.Background(), cfg, client)
	require.NoError(t, err)

	// The bad file is dropped with a message; the good one still parses
	require.Len(t, result.Files, 1)
	assert.Equal(t, 1, result.NumLines())
	require.Len(t, result.FileErrors, 1)
	assert.Contains(t, result.FileErrors[0], "broken.py")
	client.AssertExpectations(t)
}

func TestLineBlameData(t *testing.T) {
	result := makeScanResult()
	data := LineBlameData(result, []string{schema.AttrCommit, schema.AttrContributor, schema.AttrLineNo, schema.AttrDateTime})

	assert.Equal(t, []string{"Commit", "Contributor", "Line No.", "Date/Time"}, data.Header)
	require.Len(t, data.Rows, 2)
	assert.Equal(t, []string{"abc123", "Alice", "1", "2023-01-05 10:20:30"}, data.Rows[0])

	// A zero timestamp renders as an empty cell
	assert.Equal(t, []string{"def456", "Bob", "2", ""}, data.Rows[1])
}

func TestBreakdownData(t *testing.T) {
	result := makeScanResult()
	data, err := BreakdownData(result, []string{schema.AttrContributor})
	require.NoError(t, err)

	assert.Equal(t, []string{"Contributor", "Count", "Formatted"}, data.Header)
	require.Len(t, data.Rows, 2)
	assert.Equal(t, []string{"Alice", "1", "50.000000000000%"}, data.Rows[0])
	assert.Equal(t, []string{"Bob", "1", "50.000000000000%"}, data.Rows[1])
}

func TestBreakdownDataUnknownAttribute(t *testing.T) {
	_, err := BreakdownData(makeScanResult(), []string{"mystery"})
	require.Error(t, err)
}

func TestOutputPath(t *testing.T) {
	client := &contract.MockGitClient{}
	client.On("GetBranch", mock.Anything, "/repo").Return("main", nil)

	cfg := &contract.Config{
		RepoPath:  "/repo",
		OutputDir: "/tmp/reports",
		Output:    schema.CSVOut,
	}
	path := outputPath(context.Background(), cfg, client, schema.LineBlameAnalysis)
	assert.Equal(t, "/tmp/reports/reports-main-line_blame.csv", path)

	// An explicit output file wins over the generated name
	cfg.OutputFile = "/tmp/custom.csv"
	path = outputPath(context.Background(), cfg, client, schema.LineBlameAnalysis)
	assert.Equal(t, "/tmp/custom.csv", path)
}

func TestExecuteBreakdownRejectsParquet(t *testing.T) {
	cfg := &contract.Config{Output: schema.ParquetOut}
	err := ExecuteBreakdown(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parquet")
}
