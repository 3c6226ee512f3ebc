package iostore

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/blamescope/internal/contract"
	"github.com/huangsam/blamescope/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "reports.db")
	store, err := NewStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testRunInfo() contract.RunInfo {
	start := time.Date(2023, time.March, 1, 12, 0, 0, 0, time.UTC)
	return contract.RunInfo{
		StartTime:  start,
		EndTime:    start.Add(2 * time.Second),
		Analysis:   string(schema.LineBlameAnalysis),
		RepoPath:   "/repo",
		Branch:     "main",
		TotalFiles: 1,
		TotalLines: 2,
	}
}

func TestStoreInsertRunAndLines(t *testing.T) {
	store := newTestStore(t)

	runID, err := store.InsertRun(testRunInfo())
	require.NoError(t, err)
	assert.Positive(t, runID)

	ts := time.Date(2023, time.January, 5, 10, 20, 30, 0, time.UTC)
	lines := []schema.BlameLine{
		{Commit: "abc123", Contributor: "Alice", LineNo: 1, DateTime: ts,
			Date: "2023-01-05", Code: "import os", FileName: "app.py",
			FileType: "py", FilePath: "src/app.py"},
		{Commit: "def456", Contributor: "Bob", LineNo: 2,
			Code: "main()", FileName: "app.py", FileType: "py", FilePath: "src/app.py"},
	}
	require.NoError(t, store.InsertLines(runID, lines))

	count, err := store.CountRunLines(runID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestStoreRunIDsIncrement(t *testing.T) {
	store := newTestStore(t)

	first, err := store.InsertRun(testRunInfo())
	require.NoError(t, err)
	second, err := store.InsertRun(testRunInfo())
	require.NoError(t, err)
	assert.Greater(t, second, first)
}

func TestStoreNoneBackendIsInert(t *testing.T) {
	store, err := NewStore(schema.NoneBackend, "")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	runID, err := store.InsertRun(testRunInfo())
	require.NoError(t, err)
	assert.Zero(t, runID)
	require.NoError(t, store.InsertLines(runID, nil))
}

func TestStoreUnsupportedBackend(t *testing.T) {
	_, err := NewStore(schema.StoreBackend("oracle"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported backend")
}
