package blame

import (
	"fmt"

	"github.com/huangsam/blamescope/schema"
)

// LineError reports one raw blame-output line that could not become a
// record. Silent errors are expected (git blame output ends with a blank
// line) and are dropped without being surfaced.
type LineError struct {
	Context schema.LocationContext
	Data    string // Raw line content
	Attr    string // Offending attribute name; empty for structural failures
	Silent  bool
}

func (e *LineError) Error() string {
	if e.Attr != "" {
		return fmt.Sprintf("could not parse attribute '%s' from line %q in %s",
			e.Attr, e.Data, e.Context.RepositoryFilePath())
	}
	return fmt.Sprintf("could not parse line %q in %s", e.Data, e.Context.RepositoryFilePath())
}

// FileError reports a file whose blame output could not be used at all,
// either because the blame invocation failed or because its output was not
// decodable text. The file is dropped from the record set.
type FileError struct {
	Context schema.LocationContext
	Detail  string
	Silent  bool
}

func (e *FileError) Error() string {
	return fmt.Sprintf("could not blame file %s: %s", e.Context.RepositoryFilePath(), e.Detail)
}
