// Package schema has configs, models and global variables for all parts of blamescope.
package schema

import (
	"path/filepath"
	"strconv"
	"time"
)

// LocationContext identifies one file discovered by the repository scanner.
// It is created once per file before blaming and passed by value to every
// record produced for that file.
type LocationContext struct {
	Repository     string // Absolute path to the repository root
	RepositoryPath string // Path of the file's directory, relative to the root
	FileName       string // Base name of the file
}

// AbsolutePath returns the absolute path of the file's directory.
func (c LocationContext) AbsolutePath() string {
	return filepath.Join(c.Repository, c.RepositoryPath)
}

// AbsoluteFilePath returns the absolute path of the file itself.
func (c LocationContext) AbsoluteFilePath() string {
	return filepath.Join(c.Repository, c.RepositoryPath, c.FileName)
}

// RepositoryFilePath returns the file path relative to the repository root.
func (c LocationContext) RepositoryFilePath() string {
	return filepath.Join(c.RepositoryPath, c.FileName)
}

// BlameLine is one parsed line of git-blame output for one file.
// It is fully populated during parsing and never mutated afterwards.
type BlameLine struct {
	Commit      string    // Abbreviated commit hash
	Contributor string    // Author name as reported by git blame
	LineNo      int       // Line number within the file
	DateTime    time.Time // Commit timestamp; zero when it could not be parsed
	Date        string    // Calendar date derived from DateTime (YYYY-MM-DD)
	Code        string    // Source text of the line
	FileName    string    // Base name of the blamed file
	FileType    string    // Extension-derived file type, without the leading dot
	FilePath    string    // Repository-relative path of the blamed file
}

// AttributeValue resolves a named attribute to its display value.
// The second return value reports whether the name is a known attribute.
func (l BlameLine) AttributeValue(name string) (string, bool) {
	switch name {
	case AttrCommit:
		return l.Commit, true
	case AttrContributor:
		return l.Contributor, true
	case AttrLineNo:
		return strconv.Itoa(l.LineNo), true
	case AttrDateTime:
		if l.DateTime.IsZero() {
			return "", true
		}
		return l.DateTime.Format(DateTimeFormat), true
	case AttrDate:
		return l.Date, true
	case AttrCode:
		return l.Code, true
	case AttrFileName:
		return l.FileName, true
	case AttrFileType:
		return l.FileType, true
	case AttrFilePath:
		return l.FilePath, true
	}
	return "", false
}

// BlameFile owns the ordered records parsed from one file's blame output,
// plus the non-fatal line-level errors collected while building it.
type BlameFile struct {
	Context  LocationContext
	Lines    []BlameLine
	Errors   []string // Reportable line-level error messages
	Warnings []string // Non-critical attribute warnings for kept lines
}

// NumLines returns the number of successfully parsed records.
func (f *BlameFile) NumLines() int {
	return len(f.Lines)
}

// ScanResult aggregates the outcome of one full repository scan.
type ScanResult struct {
	Files      []*BlameFile
	FileErrors []string // Messages for files dropped from the record set
}

// NumLines returns the total record count across all scanned files.
func (r *ScanResult) NumLines() int {
	total := 0
	for _, f := range r.Files {
		total += f.NumLines()
	}
	return total
}

// NumLineErrors returns the total count of reportable line-level errors.
func (r *ScanResult) NumLineErrors() int {
	total := 0
	for _, f := range r.Files {
		total += len(f.Errors)
	}
	return total
}

// AllLines flattens the per-file record sequences into a single slice,
// preserving scan order.
func (r *ScanResult) AllLines() []BlameLine {
	lines := make([]BlameLine, 0, r.NumLines())
	for _, f := range r.Files {
		lines = append(lines, f.Lines...)
	}
	return lines
}
