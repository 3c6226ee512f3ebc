package blame

import (
	"testing"
	"time"

	"github.com/huangsam/blamescope/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLoc = schema.LocationContext{
	Repository:     "/repo",
	RepositoryPath: "src",
	FileName:       "app.py",
}

func TestParseLineValid(t *testing.T) {
	raw := "abc123 (Alice 2023-01-05 10:20:30 -0500  12) print('hi')"
	line, warnings, err := ParseLine(raw, testLoc)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.Equal(t, "abc123", line.Commit)
	assert.Equal(t, "Alice", line.Contributor)
	assert.Equal(t, 12, line.LineNo)
	assert.Equal(t, "print('hi')", line.Code)
	assert.Equal(t, "2023-01-05", line.Date)

	expected := time.Date(2023, time.January, 5, 10, 20, 30, 0, time.UTC)
	assert.Equal(t, expected, line.DateTime)

	// Context-derived attributes come from the location, not the raw text
	assert.Equal(t, "app.py", line.FileName)
	assert.Equal(t, "py", line.FileType)
	assert.Equal(t, "src/app.py", line.FilePath)
}

func TestParseLineBoundaryCommit(t *testing.T) {
	// The caret prefix marks lines from the initial commit
	raw := "^def456 (Bob 2020-12-31 23:59:59 +0000 1) x = 1"
	line, warnings, err := ParseLine(raw, testLoc)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, "^def456", line.Commit)
	assert.Equal(t, "Bob", line.Contributor)
	assert.Equal(t, 1, line.LineNo)
	assert.Equal(t, "x = 1", line.Code)
}

func TestParseLineStructuralMismatch(t *testing.T) {
	_, _, err := ParseLine("this is not blame output", testLoc)
	require.Error(t, err)
	lineErr, ok := err.(*LineError)
	require.True(t, ok)
	assert.False(t, lineErr.Silent)
	assert.Empty(t, lineErr.Attr)
	assert.Contains(t, lineErr.Error(), "src/app.py")
}

func TestParseLineEmptyIsSilent(t *testing.T) {
	// git blame output ends with a trailing blank line
	_, _, err := ParseLine("", testLoc)
	require.Error(t, err)
	lineErr, ok := err.(*LineError)
	require.True(t, ok)
	assert.True(t, lineErr.Silent)
}

func TestParseLineCriticalFailure(t *testing.T) {
	// The timezone group swallows the numbers, leaving no line number
	raw := "abc123 (Alice 2023-01-05 10:20:30 -0500 ) x"
	_, _, err := ParseLine(raw, testLoc)
	require.Error(t, err)
	lineErr, ok := err.(*LineError)
	require.True(t, ok)
	assert.False(t, lineErr.Silent)
	assert.Equal(t, schema.AttrLineNo, lineErr.Attr)
	assert.Contains(t, lineErr.Error(), "line_no")
}

func TestParseLineNonCriticalFailure(t *testing.T) {
	// Month 13 survives the regexp but fails timestamp parsing
	raw := "abc123 (Alice 2023-13-05 10:20:30 -0500  12) print('hi')"
	line, warnings, err := ParseLine(raw, testLoc)
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "datetime")

	// The record survives with the timestamp and date zeroed
	assert.Equal(t, "abc123", line.Commit)
	assert.Equal(t, 12, line.LineNo)
	assert.True(t, line.DateTime.IsZero())
	assert.Empty(t, line.Date)
}

func TestParseLineContributorWithSpaces(t *testing.T) {
	raw := "abc123 (Mary Jane Watson 2023-01-05 10:20:30 -0500 7) pass"
	line, _, err := ParseLine(raw, testLoc)
	require.NoError(t, err)
	assert.Equal(t, "Mary Jane Watson", line.Contributor)
}

func TestParseLineEmptyCode(t *testing.T) {
	raw := "abc123 (Alice 2023-01-05 10:20:30 -0500 3) "
	line, _, err := ParseLine(raw, testLoc)
	require.NoError(t, err)
	assert.Equal(t, 3, line.LineNo)
	assert.Empty(t, line.Code)
}
