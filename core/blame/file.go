package blame

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/huangsam/blamescope/internal/contract"
	"github.com/huangsam/blamescope/schema"
)

// CreateBlameFile invokes git blame for one file and drives the line
// parser over every output line. Line-level errors are collected on the
// returned BlameFile without aborting the file; only a failed blame
// invocation or undecodable output drops the whole file, reported as a
// *FileError.
func CreateBlameFile(ctx context.Context, client contract.GitClient, loc schema.LocationContext) (*schema.BlameFile, error) {
	out, err := client.Blame(ctx, loc.Repository, loc.AbsoluteFilePath())
	if err != nil {
		return nil, &FileError{Context: loc, Detail: err.Error()}
	}
	if !utf8.Valid(out) {
		return nil, &FileError{Context: loc, Detail: "blame output is not valid UTF-8"}
	}

	file := &schema.BlameFile{Context: loc}
	for _, raw := range strings.Split(string(out), "\n") {
		line, warnings, err := ParseLine(raw, loc)
		if err != nil {
			if lineErr, ok := err.(*LineError); ok && !lineErr.Silent {
				file.Errors = append(file.Errors, lineErr.Error())
			}
			continue
		}
		file.Warnings = append(file.Warnings, warnings...)
		file.Lines = append(file.Lines, line)
	}
	return file, nil
}
